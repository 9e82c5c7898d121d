package normalize

import (
	"errors"
	"strings"
	"time"

	"github.com/cleared-dev/tx2actual/internal/dialect"
	"github.com/cleared-dev/tx2actual/internal/model"
)

const (
	// Date-only rows are pinned to midday so no offset can move them to
	// another calendar day.
	middayHour = 12

	isoMillisUTC  = "2006-01-02T15:04:05.000Z07:00"
	isoWithOffset = "2006-01-02T15:04:05-07:00"
)

// Date returns the canonical ISO 8601 timestamp for row.
func Date(row model.RawRow, spec dialect.DateSpec) (string, error) {
	raw := strings.TrimSpace(row.Text(spec.Column))
	day, err := time.Parse(spec.Layout, raw)
	if err != nil {
		return "", &InvalidDateError{Line: row.Line, Column: spec.Column, Value: raw, Err: err}
	}

	switch spec.Mode {
	case dialect.DateOnly:
		t := time.Date(day.Year(), day.Month(), day.Day(), middayHour, 0, 0, 0, time.UTC)
		return t.Format(isoMillisUTC), nil

	case dialect.DateTimeZone:
		rawClock := strings.TrimSpace(row.Text(spec.TimeColumn))
		clock, err := time.Parse(spec.TimeLayout, rawClock)
		if err != nil {
			return "", &InvalidDateError{Line: row.Line, Column: spec.TimeColumn, Value: rawClock, Err: err}
		}
		zone := strings.TrimSpace(row.Text(spec.ZoneColumn))
		loc, err := ZoneLocation(zone, spec.Zones)
		if err != nil {
			var utz *UnknownTimezoneError
			if errors.As(err, &utz) {
				utz.Line = row.Line
				utz.Column = spec.ZoneColumn
			}
			return "", err
		}
		t := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), clock.Second(), 0, loc)
		return t.Format(isoWithOffset), nil

	default:
		return "", &InvalidDateError{Line: row.Line, Column: spec.Column, Value: raw, Err: errors.New("unknown date mode " + string(spec.Mode))}
	}
}

// ZoneLocation resolves a zone abbreviation through an explicit table.
// Abbreviations are matched exactly; anything else is an UnknownTimezoneError.
func ZoneLocation(abbrev string, zones map[string]string) (*time.Location, error) {
	off, ok := zones[abbrev]
	if !ok {
		return nil, &UnknownTimezoneError{Zone: abbrev}
	}
	secs, err := dialect.ParseOffset(off)
	if err != nil {
		return nil, err
	}
	return time.FixedZone(abbrev, secs), nil
}
