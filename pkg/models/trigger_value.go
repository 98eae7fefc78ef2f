package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ValueKind tags the variant held by a TriggerValue.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindString
	KindInteger
	KindNumber
	KindBool
	KindID
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindID:
		return "id"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// TriggerValue is a single fact captured from the event that fired a workflow.
// The zero value is a null.
type TriggerValue struct {
	kind ValueKind
	str  string
	num  float64
	i    int64
	b    bool
	id   uuid.UUID
}

func NullValue() TriggerValue { return TriggerValue{} }
func StringValue(s string) TriggerValue { return TriggerValue{kind: KindString, str: s} }
func IntValue(i int64) TriggerValue { return TriggerValue{kind: KindInteger, i: i} }
func NumberValue(f float64) TriggerValue { return TriggerValue{kind: KindNumber, num: f} }
func BoolValue(b bool) TriggerValue { return TriggerValue{kind: KindBool, b: b} }
func IDValue(id uuid.UUID) TriggerValue { return TriggerValue{kind: KindID, id: id} }
func (v TriggerValue) Kind() ValueKind { return v.kind }
func (v TriggerValue) IsNull() bool { return v.kind == KindNull }

// String renders the value the way it is substituted into templates.
// Null renders as the empty string.
func (v TriggerValue) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindID:
		return v.id.String()
	default:
		return ""
	}
}

// AsID reports the value as an identifier. Identifier values always succeed,
// strings succeed when they parse as a UUID, every other kind fails.
func (v TriggerValue) AsID() (uuid.UUID, bool) {
	switch v.kind {
	case KindID:
		return v.id, v.id != uuid.Nil
	case KindString:
		id, err := uuid.Parse(strings.TrimSpace(v.str))
		if err != nil || id == uuid.Nil {
			return uuid.Nil, false
		}

		return id, true
	default:
		return uuid.Nil, false
	}
}

// Any converts the value to its natural Go representation.
func (v TriggerValue) Any() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindInteger:
		return v.i
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindID:
		return v.id.String()
	default:
		return nil
	}
}

func (v TriggerValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Any())
}

// UnmarshalJSON accepts any JSON value. Objects and arrays are kept as
// strings holding their raw JSON text.
func (v *TriggerValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*v = NullValue()

		return nil
	}

	switch data[0] {
	case 'n':
		*v = NullValue()
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid trigger string value: %w", err)
		}

		*v = StringValue(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return fmt.Errorf("invalid trigger bool value: %w", err)
		}

		*v = BoolValue(b)
	case '{', '[':
		if !json.Valid(data) {
			return fmt.Errorf("invalid trigger value: %s", data)
		}

		*v = StringValue(string(data))
	default:
		if i, err := strconv.ParseInt(string(data), 10, 64); err == nil {
			*v = IntValue(i)

			return nil
		}

		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("invalid trigger number value %s: %w", data, err)
		}

		*v = NumberValue(f)
	}

	return nil
}

// TriggerData maps trigger fact names to their values.
type TriggerData map[string]TriggerValue

// Clone returns an independent copy.
func (d TriggerData) Clone() TriggerData {
	if d == nil {
		return TriggerData{}
	}

	return maps.Clone(d)
}

// Keys returns the keys in lexical order.
func (d TriggerData) Keys() []string {
	return slices.Sorted(maps.Keys(d))
}

// Map converts the data to plain Go values, e.g. for JSON payloads.
func (d TriggerData) Map() map[string]any {
	out := make(map[string]any, len(d))
	for k, v := range d {
		out[k] = v.Any()
	}

	return out
}

// TriggerDataFromMap converts loosely typed event data. Unsupported values
// are rendered with fmt and stored as strings.
func TriggerDataFromMap(raw map[string]any) TriggerData {
	data := make(TriggerData, len(raw))

	for k, value := range raw {
		switch val := value.(type) {
		case nil:
			data[k] = NullValue()
		case TriggerValue:
			data[k] = val
		case string:
			data[k] = StringValue(val)
		case bool:
			data[k] = BoolValue(val)
		case int:
			data[k] = IntValue(int64(val))
		case int32:
			data[k] = IntValue(int64(val))
		case int64:
			data[k] = IntValue(val)
		case float32:
			data[k] = NumberValue(float64(val))
		case float64:
			if val == float64(int64(val)) {
				data[k] = IntValue(int64(val))
			} else {
				data[k] = NumberValue(val)
			}
		case json.Number:
			var tv TriggerValue
			if err := tv.UnmarshalJSON([]byte(val.String())); err == nil {
				data[k] = tv
			} else {
				data[k] = StringValue(val.String())
			}
		case uuid.UUID:
			data[k] = IDValue(val)
		default:
			data[k] = StringValue(fmt.Sprintf("%v", val))
		}
	}

	return data
}
