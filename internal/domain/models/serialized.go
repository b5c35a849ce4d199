package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ImageList is an ordered set of image URIs stored as a JSON array in a
// single text column.
type ImageList []string

// Value implements driver.Valuer.
func (l ImageList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	raw, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal image list: %w", err)
	}
	return string(raw), nil
}

// Scan implements sql.Scanner.
func (l *ImageList) Scan(src interface{}) error {
	return scanJSONList(src, l)
}

// IDList is a list of entity ids stored as a JSON array in a single text
// column. Used for the denormalized product index kept on each farm.
type IDList []uint

// Value implements driver.Valuer.
func (l IDList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	raw, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal id list: %w", err)
	}
	return string(raw), nil
}

// Scan implements sql.Scanner.
func (l *IDList) Scan(src interface{}) error {
	return scanJSONList(src, l)
}

// Contains reports whether id is present in the list.
func (l IDList) Contains(id uint) bool {
	for _, candidate := range l {
		if candidate == id {
			return true
		}
	}
	return false
}

// Without returns a copy of the list with every occurrence of id removed.
func (l IDList) Without(id uint) IDList {
	out := make(IDList, 0, len(l))
	for _, candidate := range l {
		if candidate != id {
			out = append(out, candidate)
		}
	}
	return out
}

func scanJSONList(src, dest interface{}) error {
	if src == nil {
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported column type %T for serialized list", src)
	}

	if len(raw) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("unmarshal serialized list: %w", err)
	}
	return nil
}
