package interval

import (
	"encoding/json"
	"fmt"

	"github.com/specialistvlad/gridplan/internal/quantity"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// record is the external two-field form of an interval. Values are raw
// numbers in the interval's unit.
type record struct {
	Start float64 `json:"start" cty:"start"`
	End   float64 `json:"end" cty:"end"`
}

// CtyType is the cty object type an interval converts to and from.
var CtyType = cty.Object(map[string]cty.Type{
	"start": cty.Number,
	"end":   cty.Number,
})

// MarshalJSON encodes the interval as {"start": x, "end": y}.
func (iv Interval[U]) MarshalJSON() ([]byte, error) {
	return json.Marshal(record{Start: iv.start.Value(), End: iv.end.Value()})
}

// UnmarshalJSON decodes {"start": x, "end": y}, rejecting start > end.
func (iv *Interval[U]) UnmarshalJSON(data []byte) error {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	parsed, err := FromFloat[U](r.Start, r.End)
	if err != nil {
		return err
	}
	*iv = parsed
	return nil
}

// MarshalJSON encodes the set as an array of two-field records.
func (s Set[U]) MarshalJSON() ([]byte, error) {
	if s.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.items)
}

// UnmarshalJSON decodes an array of records and canonicalizes it.
func (s *Set[U]) UnmarshalJSON(data []byte) error {
	var items []Interval[U]
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*s = NewSet(items...)
	return nil
}

// CtyValue converts the interval to a cty object {start, end}.
func (iv Interval[U]) CtyValue() (cty.Value, error) {
	return gocty.ToCtyValue(record{Start: iv.start.Value(), End: iv.end.Value()}, CtyType)
}

// FromCtyValue decodes a cty object {start, end}, or a two-element tuple or
// list [start, end], into an interval.
func FromCtyValue[U quantity.Unit](v cty.Value) (Interval[U], error) {
	start, end, err := DecodeCtyBounds(v)
	if err != nil {
		return Interval[U]{}, err
	}
	return FromFloat[U](start, end)
}

// DecodeCtyBounds extracts the raw bounds accepted by FromCtyValue without
// validating their order.
func DecodeCtyBounds(v cty.Value) (start, end float64, err error) {
	if v.IsNull() || !v.IsKnown() {
		return 0, 0, fmt.Errorf("interval value must be known and non-null")
	}

	ty := v.Type()
	if ty.IsTupleType() || ty.IsListType() {
		list, err := convert.Convert(v, cty.List(cty.Number))
		if err != nil {
			return 0, 0, fmt.Errorf("cannot convert interval pair to a list of numbers: %w", err)
		}
		var pair []float64
		if err := gocty.FromCtyValue(list, &pair); err != nil {
			return 0, 0, fmt.Errorf("cannot decode interval pair: %w", err)
		}
		if len(pair) != 2 {
			return 0, 0, fmt.Errorf("interval pair must have exactly 2 elements, got %d", len(pair))
		}
		return pair[0], pair[1], nil
	}

	var r record
	if err := gocty.FromCtyValue(v, &r); err != nil {
		return 0, 0, fmt.Errorf("cannot decode interval object: %w", err)
	}
	return r.Start, r.End, nil
}
