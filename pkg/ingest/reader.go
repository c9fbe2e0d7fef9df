package ingest

import (
	"bufio"
	"io"
	"strings"

	"github.com/ajitpratap0/sheetsync/pkg/errors"
)

// maxLineSize bounds a single ND-JSON line; findings carrying large raw
// secrets can run long.
const maxLineSize = 4 * 1024 * 1024

// ReadFindings scans an ND-JSON stream and returns one flat row per parsable
// finding, in input order, plus the count of non-blank lines that were
// dropped.
func ReadFindings(r io.Reader) (rows [][]string, skipped int, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := scanner.Text()
		f, ok := ParseLine(line)
		if !ok {
			if strings.TrimSpace(line) != "" {
				skipped++
			}
			continue
		}
		rows = append(rows, f.Row())
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrorTypeData, "failed to read findings stream")
	}
	return rows, skipped, nil
}
