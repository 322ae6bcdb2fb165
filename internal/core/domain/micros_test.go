package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMicrosUnitsRoundTrip(t *testing.T) {
	for _, units := range []float64{0, 1, 3, 300, 500, 1_000_000} {
		assert.Equal(t, units, UnitsToMicros(units).Units())
	}
}

func TestMicrosDecodeForms(t *testing.T) {
	cases := []struct {
		in   string
		want Micros
	}{
		{`"300000000"`, 300_000_000}, // int64-as-string, the usual REST form
		{`5000000`, 5_000_000},       // plain number
		{`1234567.89`, 1_234_567},    // fractional micros (average_cpc)
		{`null`, 0},
		{`""`, 0},
	}
	for _, tc := range cases {
		var m Micros
		require.NoError(t, json.Unmarshal([]byte(tc.in), &m), tc.in)
		assert.Equal(t, tc.want, m, tc.in)
	}
}

func TestMicrosAbsentFieldIsZero(t *testing.T) {
	var row struct {
		AmountMicros Micros `json:"amountMicros"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &row))
	assert.Equal(t, 0.0, row.AmountMicros.Units())
}

func TestInt64DecodeForms(t *testing.T) {
	cases := []struct {
		in   string
		want Int64
	}{
		{`"1000"`, 1000},
		{`42`, 42},
		{`null`, 0},
	}
	for _, tc := range cases {
		var i Int64
		require.NoError(t, json.Unmarshal([]byte(tc.in), &i), tc.in)
		assert.Equal(t, tc.want, i, tc.in)
	}
}
