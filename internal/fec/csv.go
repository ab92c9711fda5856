package fec

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/fecworks/fecreport/internal/errs"
)

// Required FEC columns. Files missing any of these are rejected before the
// aggregation core ever sees them.
var requiredColumns = []string{"EcritureNum", "CompteNum", "Debit", "Credit"}

// ReadCSV reads a FEC export. The delimiter is sniffed from the header line
// (tab, semicolon or comma; tax-software exports vary), column lookup is
// case- and whitespace-insensitive, and unknown columns are ignored.
// It fails fast on a missing required column or a file with no data rows;
// row-level problems (bad amounts, bad dates) are left for the core's
// degrade-to-zero rules.
func ReadCSV(r io.Reader) ([]Entry, error) {
	br := bufio.NewReader(r)
	headerLine, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading FEC header: %w", err)
	}
	if strings.TrimSpace(headerLine) == "" {
		return nil, errs.ErrEmptyFile
	}

	delim := sniffDelimiter(headerLine)
	cr := csv.NewReader(io.MultiReader(strings.NewReader(headerLine), br))
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("parsing FEC header: %w", err)
	}
	cols, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var out []Entry
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		if isBlank(rec) {
			continue
		}
		out = append(out, Entry{
			JournalCode:  cols.get(rec, "journalcode"),
			EcritureNum:  cols.get(rec, "ecriturenum"),
			EcritureDate: cols.get(rec, "ecrituredate"),
			CompteNum:    cols.get(rec, "comptenum"),
			CompteLib:    cols.get(rec, "comptelib"),
			EcritureLib:  cols.get(rec, "ecriturelib"),
			Debit:        cols.get(rec, "debit"),
			Credit:       cols.get(rec, "credit"),
		})
	}
	if len(out) == 0 {
		return nil, errs.ErrEmptyFile
	}
	return out, nil
}

// sniffDelimiter picks the separator occurring most in the header line.
func sniffDelimiter(header string) rune {
	best, count := ',', strings.Count(header, ",")
	if n := strings.Count(header, ";"); n > count {
		best, count = ';', n
	}
	if n := strings.Count(header, "\t"); n > count {
		best = '\t'
	}
	return best
}

// columns maps normalized header names to field positions.
type columns map[string]int

func normalizeHeader(name string) string {
	// Strip a UTF-8 BOM left on the first header cell.
	s := strings.TrimPrefix(name, "\uFEFF")
	return strings.ToLower(strings.TrimSpace(s))
}

func columnIndex(header []string) (columns, error) {
	cols := columns{}
	for i, name := range header {
		cols[normalizeHeader(name)] = i
	}
	for _, required := range requiredColumns {
		if _, ok := cols[normalizeHeader(required)]; !ok {
			return nil, fmt.Errorf("%w: %s", errs.ErrMissingColumn, required)
		}
	}
	return cols, nil
}

func (c columns) get(rec []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
