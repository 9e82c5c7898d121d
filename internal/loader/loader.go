// Package loader reads delimited statement exports into raw rows.
package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/transform"

	"github.com/cleared-dev/tx2actual/internal/dialect"
	"github.com/cleared-dev/tx2actual/internal/model"
)

const nbsp = "\u00a0"

// Load reads path with the dialect's encoding and layout.
func Load(path string, d dialect.Dialect) ([]model.RawRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data, path, d)
}

// Read is Load for an already opened source. name is used in errors.
func Read(r io.Reader, name string, d dialect.Dialect) ([]model.RawRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return Parse(data, name, d)
}

// Parse decodes data and splits it into rows keyed by the header names.
func Parse(data []byte, name string, d dialect.Dialect) ([]model.RawRow, error) {
	text, err := decode(data, d.Encoding)
	if err != nil {
		return nil, &MalformedInputError{Path: name, Reason: "cannot decode as " + d.Encoding, Err: err}
	}
	// Legacy exports sprinkle non-breaking spaces through amounts and labels.
	text = strings.ReplaceAll(text, nbsp, " ")

	body, ok := skipLines(text, d.SkipLines)
	if !ok {
		return nil, &MalformedInputError{Path: name, Reason: fmt.Sprintf("file has fewer than %d lines to skip", d.SkipLines)}
	}

	cr := csv.NewReader(strings.NewReader(body))
	cr.Comma = d.Comma()
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &MalformedInputError{Path: name, Line: d.SkipLines + 1, Reason: "no header row"}
	}
	if err != nil {
		return nil, csvError(name, d.SkipLines, err)
	}
	columns, err := headerColumns(header, d)
	if err != nil {
		return nil, &MalformedInputError{Path: name, Line: d.SkipLines + 1, Reason: err.Error()}
	}

	numbers := NewNumberFormat(d.Decimal, d.Thousands)
	var rows []model.RawRow
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(name, d.SkipLines, err)
		}
		line, _ := cr.FieldPos(0)
		line += d.SkipLines

		if len(rows) == 0 && len(rec) != len(columns) {
			return nil, &MalformedInputError{
				Path:   name,
				Line:   line,
				Reason: fmt.Sprintf("first data row has %d fields, header has %d (wrong skip_lines?)", len(rec), len(columns)),
			}
		}
		if len(rec) > len(columns) {
			return nil, &MalformedInputError{
				Path:   name,
				Line:   line,
				Reason: fmt.Sprintf("row has %d fields, header has %d", len(rec), len(columns)),
			}
		}

		rows = append(rows, makeRow(line, columns, rec, numbers))
	}
	return rows, nil
}

func makeRow(line int, columns, rec []string, numbers *NumberFormat) model.RawRow {
	fields := make(map[string]model.Value, len(columns))
	for i, col := range columns {
		if col == "" {
			continue
		}
		if i >= len(rec) {
			fields[col] = model.Missing()
			continue
		}
		fields[col] = coerce(rec[i], numbers)
	}
	return model.RawRow{Line: line, Fields: fields}
}

func coerce(raw string, numbers *NumberFormat) model.Value {
	if strings.TrimSpace(raw) == "" {
		return model.Missing()
	}
	if n, ok := numbers.Parse(raw); ok {
		return model.Number(raw, n)
	}
	return model.Text(raw)
}

// headerColumns trims the header names and checks the dialect's columns are
// present exactly once.
func headerColumns(header []string, d dialect.Dialect) ([]string, error) {
	columns := make([]string, len(header))
	count := make(map[string]int, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
		count[columns[i]]++
	}
	for _, want := range d.Columns() {
		switch count[want] {
		case 0:
			return nil, fmt.Errorf("missing column %q", want)
		case 1:
		default:
			return nil, fmt.Errorf("duplicate column %q", want)
		}
	}
	return columns, nil
}

func decode(data []byte, encodingName string) (string, error) {
	enc, err := dialect.LookupEncoding(encodingName)
	if err != nil {
		return "", err
	}
	if dialect.IsUTF8(encodingName) && !utf8.Valid(data) {
		return "", errors.New("invalid UTF-8 byte sequence")
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", err
	}
	if !dialect.IsUTF8(encodingName) && bytes.ContainsRune(out, utf8.RuneError) {
		return "", errors.New("byte has no mapping in this encoding")
	}
	return string(out), nil
}

func skipLines(text string, n int) (string, bool) {
	for i := 0; i < n; i++ {
		idx := strings.IndexByte(text, '\n')
		if idx < 0 {
			return "", false
		}
		text = text[idx+1:]
	}
	return text, true
}

func csvError(name string, skipped int, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &MalformedInputError{Path: name, Line: skipped + pe.StartLine, Reason: "invalid delimited data", Err: pe.Err}
	}
	return &MalformedInputError{Path: name, Reason: "invalid delimited data", Err: err}
}
