// Package sheets implements grid.Store backed by the Google Sheets API.
package sheets

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/ajitpratap0/sheetsync/pkg/errors"
	"github.com/ajitpratap0/sheetsync/pkg/grid"
	"github.com/ajitpratap0/sheetsync/pkg/logger"
)

// defaultRequestsPerMinute matches the per-user write quota of the Sheets API.
const defaultRequestsPerMinute = 60

// Config identifies one worksheet and how to reach it.
type Config struct {
	SpreadsheetID   string
	Worksheet       string
	CredentialsFile string
	// RequestsPerMinute caps the client-side call rate. Zero selects the
	// default Sheets API quota.
	RequestsPerMinute int
}

// Store is a grid.Store bound to a single worksheet of a single spreadsheet.
// Every remote call blocks on the rate limiter first, then on the API call
// itself; calls are never issued concurrently by the engine.
type Store struct {
	svc     *sheetsapi.Service
	cfg     Config
	sheetID int64
	limiter *rate.Limiter
	logger  *zap.Logger
}

// New authenticates with a service-account key file and binds to the
// configured worksheet. It fails when the key file is unreadable or the
// worksheet title does not exist in the spreadsheet.
func New(ctx context.Context, cfg Config) (*Store, error) {
	data, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrorTypeConfig,
			"failed to read service account key %q", cfg.CredentialsFile)
	}

	creds, err := google.CredentialsFromJSON(ctx, data, sheetsapi.SpreadsheetsScope)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "invalid service account key")
	}

	svc, err := sheetsapi.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "failed to create sheets client")
	}

	meta, err := svc.Spreadsheets.Get(cfg.SpreadsheetID).
		Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrorTypeConnection,
			"failed to open spreadsheet %s", cfg.SpreadsheetID)
	}

	sheetID := int64(-1)
	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == cfg.Worksheet {
			sheetID = sh.Properties.SheetId
			break
		}
	}
	if sheetID < 0 {
		return nil, errors.Newf(errors.ErrorTypeNotFound,
			"worksheet %q not found in spreadsheet %s", cfg.Worksheet, cfg.SpreadsheetID)
	}

	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = defaultRequestsPerMinute
	}

	return &Store{
		svc:     svc,
		cfg:     cfg,
		sheetID: sheetID,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1),
		logger: logger.With(
			zap.String("spreadsheet", cfg.SpreadsheetID),
			zap.String("worksheet", cfg.Worksheet)),
	}, nil
}

// ReadAll implements grid.Store.
func (s *Store) ReadAll(ctx context.Context) ([][]string, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	resp, err := s.svc.Spreadsheets.Values.Get(s.cfg.SpreadsheetID, s.worksheetRange("")).
		Context(ctx).Do()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConnection, "failed to read worksheet values")
	}

	rows := make([][]string, len(resp.Values))
	for i, r := range resp.Values {
		row := make([]string, len(r))
		for j, v := range r {
			row[j] = cellString(v)
		}
		rows[i] = row
	}
	s.logger.Debug("read worksheet", zap.Int("rows", len(rows)))
	return rows, nil
}

// AppendColumns implements grid.Store.
func (s *Store) AppendColumns(ctx context.Context, n int) error {
	if err := s.wait(ctx); err != nil {
		return err
	}

	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			AppendDimension: &sheetsapi.AppendDimensionRequest{
				SheetId:   s.sheetID,
				Dimension: "COLUMNS",
				Length:    int64(n),
			},
		}},
	}
	if _, err := s.svc.Spreadsheets.BatchUpdate(s.cfg.SpreadsheetID, req).Context(ctx).Do(); err != nil {
		return errors.Wrapf(err, errors.ErrorTypeConnection, "failed to append %d columns", n)
	}
	return nil
}

// WriteHeaderCell implements grid.Store.
func (s *Store) WriteHeaderCell(ctx context.Context, col int, value string) error {
	letters, err := grid.ColumnLetters(col)
	if err != nil {
		return err
	}
	return s.update(ctx, fmt.Sprintf("%s1", letters), [][]string{{value}})
}

// WriteRange implements grid.Store.
func (s *Store) WriteRange(ctx context.Context, rng string, values [][]string) error {
	return s.update(ctx, rng, values)
}

// AppendRows implements grid.Store.
func (s *Store) AppendRows(ctx context.Context, values [][]string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}

	vr := &sheetsapi.ValueRange{Values: toInterfaceRows(values)}
	_, err := s.svc.Spreadsheets.Values.Append(s.cfg.SpreadsheetID, s.worksheetRange("A1"), vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return errors.Wrapf(err, errors.ErrorTypeConnection, "failed to append %d rows", len(values))
	}
	return nil
}

func (s *Store) update(ctx context.Context, rng string, values [][]string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}

	vr := &sheetsapi.ValueRange{Values: toInterfaceRows(values)}
	_, err := s.svc.Spreadsheets.Values.Update(s.cfg.SpreadsheetID, s.worksheetRange(rng), vr).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return errors.Wrapf(err, errors.ErrorTypeConnection, "failed to write range %s", rng)
	}
	return nil
}

func (s *Store) wait(ctx context.Context) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, errors.ErrorTypeRateLimit, "rate limiter wait aborted")
	}
	return nil
}

// worksheetRange qualifies an A1 range with the worksheet title. An empty
// range addresses the whole worksheet.
func (s *Store) worksheetRange(rng string) string {
	if rng == "" {
		return fmt.Sprintf("'%s'", s.cfg.Worksheet)
	}
	return fmt.Sprintf("'%s'!%s", s.cfg.Worksheet, rng)
}

func toInterfaceRows(values [][]string) [][]interface{} {
	rows := make([][]interface{}, len(values))
	for i, r := range values {
		row := make([]interface{}, len(r))
		for j, v := range r {
			row[j] = v
		}
		rows[i] = row
	}
	return rows
}

func cellString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
