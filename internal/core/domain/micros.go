package domain

import (
	"bytes"
	"strconv"
)

// Micros is a fixed-point monetary amount: actual value = micros / 1e6.
// The REST API serialises int64 fields as JSON strings, older report rows
// as plain numbers, and omits absent amounts entirely, so decoding accepts
// all three; null and absent both read as 0.
type Micros int64

// Units converts the micro amount into currency units.
func (m Micros) Units() float64 {
	return float64(m) / 1_000_000
}

// UnitsToMicros converts a currency amount into micros, truncating
// sub-micro precision.
func UnitsToMicros(units float64) Micros {
	return Micros(units * 1_000_000)
}

func (m *Micros) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*m = 0
		return nil
	}
	s := string(data)
	if len(data) >= 2 && data[0] == '"' {
		var err error
		s, err = strconv.Unquote(s)
		if err != nil {
			return err
		}
		if s == "" {
			*m = 0
			return nil
		}
	}
	// average_cpc and friends arrive as fractional micros on some API
	// versions, hence the float parse.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*m = Micros(f)
	return nil
}

func (m Micros) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(m), 10)), nil
}

// Int64 decodes the REST API's int64-as-string encoding for counters such
// as impressions and clicks. Null and absent values read as 0.
type Int64 int64

func (i *Int64) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*i = 0
		return nil
	}
	s := string(data)
	if len(data) >= 2 && data[0] == '"' {
		var err error
		s, err = strconv.Unquote(s)
		if err != nil {
			return err
		}
		if s == "" {
			*i = 0
			return nil
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	*i = Int64(n)
	return nil
}

func (i Int64) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(i), 10)), nil
}
