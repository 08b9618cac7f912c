package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// IDList stores a set of numeric IDs as a jsonb column.
type IDList []uint

// Value implements the driver.Valuer interface.
func (l IDList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]uint{})
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface.
func (l *IDList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("idlist: expected []byte")
	}
	return json.Unmarshal(bytes, l)
}

// Contains reports whether id is in the list.
func (l IDList) Contains(id uint) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Intersects reports whether the two lists share any element.
func (l IDList) Intersects(other IDList) bool {
	for _, v := range other {
		if l.Contains(v) {
			return true
		}
	}
	return false
}
