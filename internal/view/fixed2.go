package view

import "strconv"

// Fixed2 serializes a fixed-point value with exactly two fractional
// digits, matching the DECIMAL(5,2) benchmark columns. Plain float64
// marshaling would emit 29.1 for a stored 29.10 and occasionally a long
// binary-rounding tail; formatting with a fixed precision keeps the
// wire value identical to the stored one.
type Fixed2 float64

// MarshalJSON emits the value as a JSON number with two decimals.
func (f Fixed2) MarshalJSON() ([]byte, error) {
	return strconv.AppendFloat(nil, float64(f), 'f', 2, 64), nil
}

// UnmarshalJSON accepts any JSON number.
func (f *Fixed2) UnmarshalJSON(b []byte) error {
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*f = Fixed2(v)
	return nil
}

// NewFixed2 wraps an optional float, preserving nil as JSON null.
func NewFixed2(p *float64) *Fixed2 {
	if p == nil {
		return nil
	}
	f := Fixed2(*p)
	return &f
}
