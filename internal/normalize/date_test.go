package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tx2actual/internal/dialect"
	"github.com/cleared-dev/tx2actual/internal/model"
)

func TestDate_DateOnly(t *testing.T) {
	spec := dialect.CreditAgricole().Date

	tests := []struct {
		in   string
		want string
	}{
		{"31/12/2019", "2019-12-31T12:00:00.000Z"},
		{"01/01/2020", "2020-01-01T12:00:00.000Z"},
		{"5/3/2021", "2021-03-05T12:00:00.000Z"},
		{"29/02/2024", "2024-02-29T12:00:00.000Z"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Date(rawRow(12, map[string]model.Value{"Date": text(tt.in)}), spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDate_InvalidCalendarDate(t *testing.T) {
	spec := dialect.CreditAgricole().Date

	for _, in := range []string{"31/02/2019", "29/02/2023", "2019-12-31", ""} {
		_, err := Date(rawRow(30, map[string]model.Value{"Date": text(in)}), spec)
		var dateErr *InvalidDateError
		require.ErrorAs(t, err, &dateErr, "input %q", in)
		assert.Equal(t, 30, dateErr.Line)
		assert.Equal(t, "Date", dateErr.Column)
	}
}

func paypalRow(line int, date, clock, zone string) model.RawRow {
	return rawRow(line, map[string]model.Value{
		"Date":           text(date),
		"Heure":          text(clock),
		"Fuseau horaire": text(zone),
	})
}

func TestDate_DateTimeZone(t *testing.T) {
	spec := dialect.PayPal().Date

	tests := []struct {
		zone string
		want string
	}{
		{"CEST", "2020-07-15T14:03:22+02:00"},
		{"CET", "2020-07-15T14:03:22+01:00"},
		{"UTC", "2020-07-15T14:03:22+00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.zone, func(t *testing.T) {
			got, err := Date(paypalRow(2, "15/07/2020", "14:03:22", tt.zone), spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDate_UnknownTimezone(t *testing.T) {
	spec := dialect.PayPal().Date

	for _, zone := range []string{"PST", "cest", ""} {
		_, err := Date(paypalRow(7, "15/07/2020", "14:03:22", zone), spec)
		var zoneErr *UnknownTimezoneError
		require.ErrorAs(t, err, &zoneErr, "zone %q", zone)
		assert.Equal(t, 7, zoneErr.Line)
		assert.Equal(t, "Fuseau horaire", zoneErr.Column)
		assert.Equal(t, zone, zoneErr.Zone)
	}
}

func TestDate_InvalidTime(t *testing.T) {
	_, err := Date(paypalRow(9, "15/07/2020", "25:00:00", "CET"), dialect.PayPal().Date)
	var dateErr *InvalidDateError
	require.ErrorAs(t, err, &dateErr)
	assert.Equal(t, "Heure", dateErr.Column)
	assert.Equal(t, "25:00:00", dateErr.Value)
}

func TestZoneLocation(t *testing.T) {
	loc, err := ZoneLocation("CEST", map[string]string{"CEST": "+02:00"})
	require.NoError(t, err)
	assert.Equal(t, "CEST", loc.String())

	_, err = ZoneLocation("CEST", map[string]string{"CEST": "2h"})
	assert.Error(t, err)
}
