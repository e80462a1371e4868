package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSON stores free-form transaction metadata in a jsonb column.
type JSON map[string]interface{}

// Value implements driver.Valuer.
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(map[string]interface{}(j))
}

// Scan implements sql.Scanner.
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	data, ok := value.([]byte)
	if !ok {
		return errors.New("unsupported jsonb source type")
	}
	return json.Unmarshal(data, (*map[string]interface{})(j))
}

// MarshalJSON renders nil metadata as JSON null.
func (j JSON) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("null"), nil
	}
	return json.Marshal(map[string]interface{}(j))
}

func (j *JSON) UnmarshalJSON(data []byte) error {
	if j == nil {
		return errors.New("cannot unmarshal into nil JSON")
	}
	return json.Unmarshal(data, (*map[string]interface{})(j))
}
