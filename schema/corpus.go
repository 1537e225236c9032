package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Reserved keys of class and member records.
const (
	nameKey   = "name"
	typeKey   = "$type"
	ignoreKey = "ignore"
	itemsKey  = "items"
)

// ClassRecord is one class entry of a documentation corpus.
type ClassRecord struct {
	Name       string
	Named      bool
	Type       string
	Ignore     bool
	Containers []MemberContainer
	Fields     map[string]any // every raw field, used for scalar comparison
}

// MemberContainer groups the members of one category.
type MemberContainer struct {
	Category string
	Members  []MemberRecord
}

// MemberRecord is one member of a class, or one nested item of a member.
type MemberRecord struct {
	Name     string
	Named    bool
	Ignore   bool
	Fields   map[string]any
	Items    []MemberRecord
	HasItems bool
}

// UnmarshalJSON decodes a class record, keeping every raw field.
func (c *ClassRecord) UnmarshalJSON(data []byte) error {
	raw, err := decodeObject(data)
	if err != nil {
		return err
	}
	*c = ClassFromMap(raw)
	return nil
}

// UnmarshalJSON decodes a member record, keeping every raw field.
func (m *MemberRecord) UnmarshalJSON(data []byte) error {
	raw, err := decodeObject(data)
	if err != nil {
		return err
	}
	*m = MemberFromValue(raw)
	return nil
}

// Container returns the container for the given category.
func (c ClassRecord) Container(category string) (MemberContainer, bool) {
	for _, mc := range c.Containers {
		if mc.Category == category {
			return mc, true
		}
	}
	return MemberContainer{}, false
}

// IsClass reports whether the record is a real class rather than a detached comment or other entry.
func (c ClassRecord) IsClass() bool {
	return c.Type == ClassType
}

// ClassFromMap builds a ClassRecord from a decoded JSON object.
func ClassFromMap(raw map[string]any) ClassRecord {
	c := ClassRecord{Fields: raw}
	c.Name, c.Named = nameOf(raw)
	c.Type, _ = raw[typeKey].(string)
	c.Ignore = Truthy(raw[ignoreKey])

	items, _ := raw[itemsKey].([]any)
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		category, _ := obj[typeKey].(string)
		if category == "" {
			continue
		}
		mc := MemberContainer{Category: category}
		members, _ := obj[itemsKey].([]any)
		for _, member := range members {
			mc.Members = append(mc.Members, MemberFromValue(member))
		}
		c.Containers = append(c.Containers, mc)
	}
	return c
}

// MemberFromValue builds a MemberRecord from a decoded JSON value.
// A value that is not an object yields a record without a name.
func MemberFromValue(v any) MemberRecord {
	raw, ok := v.(map[string]any)
	if !ok {
		return MemberRecord{Fields: map[string]any{}}
	}
	m := MemberRecord{Fields: raw}
	m.Name, m.Named = nameOf(raw)
	m.Ignore = Truthy(raw[ignoreKey])
	if items, ok := raw[itemsKey].([]any); ok {
		m.HasItems = true
		m.Items = make([]MemberRecord, 0, len(items))
		for _, item := range items {
			m.Items = append(m.Items, MemberFromValue(item))
		}
	}
	return m
}

// Truthy reports whether a decoded JSON value counts as set.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case json.Number:
		return t.String() != "0"
	default:
		return true
	}
}

func nameOf(raw map[string]any) (string, bool) {
	name, ok := raw[nameKey].(string)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

func decodeObject(data []byte) (map[string]any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: entry must be a JSON object", ErrInvalidDocument)
	}
	var raw map[string]any
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
