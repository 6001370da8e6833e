package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

type AttributeType string

const (
	AttributeString  AttributeType = "string"
	AttributeNumber  AttributeType = "number"
	AttributeBoolean AttributeType = "boolean"
	AttributeDate    AttributeType = "date"
)

func (t AttributeType) Valid() bool {
	switch t {
	case AttributeString, AttributeNumber, AttributeBoolean, AttributeDate:
		return true
	}
	return false
}

// AttributeValue is the tagged union behind a product's dynamic attribute
// map. On the wire it is a plain JSON scalar; the declared AttributeType of
// the category schema decides how a string is interpreted (dates arrive as
// RFC 3339 or YYYY-MM-DD strings and are promoted by the validator).
type AttributeValue struct {
	Kind AttributeType
	Str  string
	Num  float64
	Bool bool
	Date time.Time
}

func StringValue(s string) AttributeValue  { return AttributeValue{Kind: AttributeString, Str: s} }
func NumberValue(f float64) AttributeValue { return AttributeValue{Kind: AttributeNumber, Num: f} }
func BooleanValue(b bool) AttributeValue   { return AttributeValue{Kind: AttributeBoolean, Bool: b} }
func DateValue(t time.Time) AttributeValue { return AttributeValue{Kind: AttributeDate, Date: t} }

func (v AttributeValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case AttributeNumber:
		return json.Marshal(v.Num)
	case AttributeBoolean:
		return json.Marshal(v.Bool)
	case AttributeDate:
		return json.Marshal(v.Date.Format(time.RFC3339))
	default:
		return json.Marshal(v.Str)
	}
}

func (v *AttributeValue) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		return fmt.Errorf("attribute value must not be null")
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = BooleanValue(b)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*v = NumberValue(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = StringValue(s)
		return nil
	}
	return fmt.Errorf("attribute value must be a string, number or boolean")
}

// AsDate reinterprets a string value as a date when the schema declares one.
func (v AttributeValue) AsDate() (time.Time, bool) {
	if v.Kind == AttributeDate {
		return v.Date, true
	}
	if v.Kind != AttributeString {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v.Str); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Matches reports whether the value satisfies the declared type.
func (v AttributeValue) Matches(t AttributeType) bool {
	switch t {
	case AttributeDate:
		_, ok := v.AsDate()
		return ok
	case AttributeString:
		return v.Kind == AttributeString
	case AttributeNumber:
		return v.Kind == AttributeNumber
	case AttributeBoolean:
		return v.Kind == AttributeBoolean
	}
	return false
}

// AttributeMap holds a product's dynamic attribute values keyed by the
// attribute name declared in the category schema.
type AttributeMap map[string]AttributeValue
