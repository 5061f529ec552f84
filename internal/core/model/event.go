package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RandomColor is the bgcolor sentinel asking for a palette color at load time.
const RandomColor = "random"

// HiddenPolicy controls when a record is left out of the label list.
type HiddenPolicy int

const (
	HiddenNever HiddenPolicy = iota
	HiddenAlways
	HiddenAuto
)

// ParseHiddenPolicy parses "false", "true" or "auto".
func ParseHiddenPolicy(value string) (HiddenPolicy, error) {
	trimmed := strings.TrimSpace(value)
	if strings.EqualFold(trimmed, "auto") {
		return HiddenAuto, nil
	}
	hidden, err := strconv.ParseBool(trimmed)
	if err != nil {
		return HiddenNever, fmt.Errorf("parse hidden policy %q: want true, false or auto", value)
	}
	if hidden {
		return HiddenAlways, nil
	}
	return HiddenNever, nil
}

func (policy HiddenPolicy) String() string {
	switch policy {
	case HiddenAlways:
		return "true"
	case HiddenAuto:
		return "auto"
	default:
		return "false"
	}
}

// MarshalJSON writes the policy back as true, false or "auto".
func (policy HiddenPolicy) MarshalJSON() ([]byte, error) {
	switch policy {
	case HiddenAlways:
		return []byte("true"), nil
	case HiddenAuto:
		return []byte(`"auto"`), nil
	default:
		return []byte("false"), nil
	}
}

// UnmarshalJSON accepts booleans, strings and numbers. The number 1 counts
// as true. Anything unrecognized means never hidden.
func (policy *HiddenPolicy) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("true")):
		*policy = HiddenAlways
		return nil
	case bytes.Equal(data, []byte("false")), bytes.Equal(data, []byte("null")):
		*policy = HiddenNever
		return nil
	}

	if number, err := strconv.ParseFloat(string(data), 64); err == nil {
		*policy = HiddenNever
		if number == 1 {
			*policy = HiddenAlways
		}
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		*policy = HiddenNever
		return nil
	}
	parsed, err := ParseHiddenPolicy(text)
	if err != nil {
		parsed = HiddenNever
	}
	*policy = parsed
	return nil
}

// EventRecord is one countdown entry in dates.json. A record decoded from
// JSON remembers its members as written, so encoding it again keeps unknown
// keys and the original spelling of every field that was not changed.
type EventRecord struct {
	Name    string       `json:"name"`
	Year    int          `json:"year"`
	Month   int          `json:"month"`
	Day     int          `json:"day"`
	Hidden  HiddenPolicy `json:"hidden"`
	BgColor string       `json:"bgcolor,omitempty"`

	members []rawMember
	decoded eventFields
}

type eventFields struct {
	Name    string       `json:"name"`
	Year    int          `json:"year"`
	Month   int          `json:"month"`
	Day     int          `json:"day"`
	Hidden  HiddenPolicy `json:"hidden"`
	BgColor string       `json:"bgcolor,omitempty"`
}

type rawMember struct {
	key   string
	value json.RawMessage
}

var recordKeys = []string{"name", "year", "month", "day", "hidden", "bgcolor"}

// UnmarshalJSON decodes the known fields and keeps every member in file order.
func (record *EventRecord) UnmarshalJSON(data []byte) error {
	var fields eventFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	members, err := objectMembers(data)
	if err != nil {
		return err
	}
	*record = fields.record()
	record.members = members
	record.decoded = fields
	return nil
}

// MarshalJSON writes the remembered members back, replacing only the fields
// whose values changed since decoding. New records encode their fields only.
func (record EventRecord) MarshalJSON() ([]byte, error) {
	current := record.fields()
	if record.members == nil {
		return json.Marshal(current)
	}

	changed, err := changedMembers(record.decoded, current)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	written := make(map[string]bool, len(record.members))
	for _, member := range record.members {
		value := member.value
		if replacement, ok := changed[member.key]; ok {
			if replacement == nil {
				continue
			}
			value = replacement
		}
		writeMember(&buf, member.key, value)
		written[member.key] = true
	}
	for _, key := range recordKeys {
		if replacement := changed[key]; replacement != nil && !written[key] {
			writeMember(&buf, key, replacement)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Equal reports whether both records describe the same countdown.
func (record EventRecord) Equal(other EventRecord) bool {
	return record.fields() == other.fields()
}

func (record EventRecord) fields() eventFields {
	return eventFields{
		Name:    record.Name,
		Year:    record.Year,
		Month:   record.Month,
		Day:     record.Day,
		Hidden:  record.Hidden,
		BgColor: record.BgColor,
	}
}

func (fields eventFields) record() EventRecord {
	return EventRecord{
		Name:    fields.Name,
		Year:    fields.Year,
		Month:   fields.Month,
		Day:     fields.Day,
		Hidden:  fields.Hidden,
		BgColor: fields.BgColor,
	}
}

// changedMembers encodes every field that differs between before and after.
// A nil value means the member is removed.
func changedMembers(before, after eventFields) (map[string]json.RawMessage, error) {
	values := map[string][2]any{
		"name":   {before.Name, after.Name},
		"year":   {before.Year, after.Year},
		"month":  {before.Month, after.Month},
		"day":    {before.Day, after.Day},
		"hidden": {before.Hidden, after.Hidden},
	}
	changed := make(map[string]json.RawMessage)
	for key, pair := range values {
		if pair[0] == pair[1] {
			continue
		}
		encoded, err := json.Marshal(pair[1])
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", key, err)
		}
		changed[key] = encoded
	}
	if before.BgColor != after.BgColor {
		changed["bgcolor"] = nil
		if after.BgColor != "" {
			encoded, err := json.Marshal(after.BgColor)
			if err != nil {
				return nil, fmt.Errorf("marshal bgcolor: %w", err)
			}
			changed["bgcolor"] = encoded
		}
	}
	return changed, nil
}

func objectMembers(data []byte) ([]rawMember, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, nil
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("event record must be a JSON object")
	}

	members := []rawMember{}
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyToken.(string)
		var value json.RawMessage
		if err := decoder.Decode(&value); err != nil {
			return nil, err
		}
		members = append(members, rawMember{key: key, value: value})
	}
	return members, nil
}

func writeMember(buf *bytes.Buffer, key string, value json.RawMessage) {
	if buf.Len() > 1 {
		buf.WriteByte(',')
	}
	encodedKey, _ := json.Marshal(key)
	buf.Write(encodedKey)
	buf.WriteByte(':')
	buf.Write(value)
}

// Date returns the record date at UTC midnight. The second result is false
// when year, month and day do not name a real calendar day.
func (record EventRecord) Date() (time.Time, bool) {
	date := time.Date(record.Year, time.Month(record.Month), record.Day, 0, 0, 0, 0, time.UTC)
	if date.Year() != record.Year || int(date.Month()) != record.Month || date.Day() != record.Day {
		return time.Time{}, false
	}
	return date, true
}

// NeedsColor reports whether bgcolor is absent or the random sentinel.
func (record EventRecord) NeedsColor() bool {
	return record.BgColor == "" || strings.EqualFold(strings.TrimSpace(record.BgColor), RandomColor)
}

// Label is a display-ready countdown line.
type Label struct {
	Text  string `json:"text"`
	Color string `json:"color"`
	Tip   string `json:"tip"`
}
