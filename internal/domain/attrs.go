package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// AttrKind discriminates the value held by an AttrValue.
type AttrKind int

// Attribute value kinds.
const (
	AttrString AttrKind = iota
	AttrNumber
	AttrBool
)

// AttrValue is a loosely typed attribute value: string, number, or bool.
// The union is closed so that attributes survive a JSON round-trip without
// collapsing into a fully dynamic type.
type AttrValue struct {
	kind AttrKind
	str  string
	num  float64
	b    bool
}

// StringAttr creates a string attribute value.
func StringAttr(s string) AttrValue { return AttrValue{kind: AttrString, str: s} }

// NumberAttr creates a numeric attribute value.
func NumberAttr(f float64) AttrValue { return AttrValue{kind: AttrNumber, num: f} }

// BoolAttr creates a boolean attribute value.
func BoolAttr(b bool) AttrValue { return AttrValue{kind: AttrBool, b: b} }

// AttrFromAny converts a decoded JSON primitive into an AttrValue.
// Returns false for non-primitive values (objects, arrays, null).
func AttrFromAny(v any) (AttrValue, bool) {
	switch t := v.(type) {
	case string:
		return StringAttr(t), true
	case float64:
		return NumberAttr(t), true
	case bool:
		return BoolAttr(t), true
	default:
		return AttrValue{}, false
	}
}

// Kind returns the discriminator.
func (v AttrValue) Kind() AttrKind { return v.kind }

// Str returns the string payload (zero value unless Kind is AttrString).
func (v AttrValue) Str() string { return v.str }

// Num returns the numeric payload (zero value unless Kind is AttrNumber).
func (v AttrValue) Num() float64 { return v.num }

// Bool returns the boolean payload (zero value unless Kind is AttrBool).
func (v AttrValue) Bool() bool { return v.b }

// Text renders the value for substring matching and display.
func (v AttrValue) Text() string {
	switch v.kind {
	case AttrNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case AttrBool:
		return strconv.FormatBool(v.b)
	default:
		return v.str
	}
}

// Equal reports kind-and-payload equality.
func (v AttrValue) Equal(o AttrValue) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case AttrNumber:
		return v.num == o.num
	case AttrBool:
		return v.b == o.b
	default:
		return v.str == o.str
	}
}

// MarshalJSON encodes the underlying primitive directly.
func (v AttrValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case AttrNumber:
		return json.Marshal(v.num)
	case AttrBool:
		return json.Marshal(v.b)
	default:
		return json.Marshal(v.str)
	}
}

// UnmarshalJSON decodes a JSON primitive into the union.
func (v *AttrValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	av, ok := AttrFromAny(raw)
	if !ok {
		return fmt.Errorf("attribute value must be string, number, or bool, got %T", raw)
	}
	*v = av
	return nil
}
