// Package ingest flattens TruffleHog ND-JSON findings into flat rows suitable
// for appending to a grid. Malformed lines are expected noise in a findings
// stream and are dropped silently.
package ingest

import (
	"math"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"
)

// Absent is the sentinel written for any field whose path is not present in
// the source document.
const Absent = "missing"

var fieldNames = []string{
	"link",
	"repository",
	"commit",
	"file",
	"line",
	"timestamp",
	"email",
	"detector_name",
	"detector_type",
	"raw_secret",
	"verified",
}

// Header returns the column names of flattened findings, in row order.
func Header() []string {
	return append([]string(nil), fieldNames...)
}

// Finding is one flattened TruffleHog finding. All fields are strings because
// they are destined for grid cells.
type Finding struct {
	Link         string
	Repository   string
	Commit       string
	File         string
	Line         string
	Timestamp    string
	Email        string
	DetectorName string
	DetectorType string
	RawSecret    string
	Verified     string
}

// Row returns the finding's cells in Header order.
func (f *Finding) Row() []string {
	return []string{
		f.Link,
		f.Repository,
		f.Commit,
		f.File,
		f.Line,
		f.Timestamp,
		f.Email,
		f.DetectorName,
		f.DetectorType,
		f.RawSecret,
		f.Verified,
	}
}

// ParseLine flattens one ND-JSON line into a Finding. It returns false for
// blank lines and lines that do not parse as a JSON object; this is a drop,
// not an error.
func ParseLine(raw string) (*Finding, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}

	var doc map[string]interface{}
	if err := gojson.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, false
	}

	gh := dig(doc, "SourceMetadata", "Data", "Github")

	secret := field(doc, "Raw")
	if secret == Absent {
		secret = field(doc, "RawV2")
	}

	return &Finding{
		Link:         field(gh, "link"),
		Repository:   field(gh, "repository"),
		Commit:       field(gh, "commit"),
		File:         field(gh, "file"),
		Line:         field(gh, "line"),
		Timestamp:    field(gh, "timestamp"),
		Email:        field(gh, "email"),
		DetectorName: field(doc, "DetectorName"),
		DetectorType: field(doc, "DetectorType"),
		RawSecret:    secret,
		Verified:     field(doc, "Verified"),
	}, true
}

// dig walks nested objects along path, returning nil when any segment is
// absent or not an object. It never fails.
func dig(m map[string]interface{}, path ...string) map[string]interface{} {
	for _, key := range path {
		if m == nil {
			return nil
		}
		next, ok := m[key].(map[string]interface{})
		if !ok {
			return nil
		}
		m = next
	}
	return m
}

// field returns the scalar at key rendered as a string, or Absent when the
// object is nil, the key is missing, or the value is null.
func field(m map[string]interface{}, key string) string {
	if m == nil {
		return Absent
	}
	v, ok := m[key]
	if !ok || v == nil {
		return Absent
	}

	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1e15 {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return Absent
	}
}
