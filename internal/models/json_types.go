package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// CartItems is a custom type for storing cart lines as JSONB in PostgreSQL
type CartItems []CartItem

// Value implements the driver.Valuer interface
func (c CartItems) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	return json.Marshal(c)
}

// Scan implements the sql.Scanner interface
func (c *CartItems) Scan(src interface{}) error {
	if src == nil {
		*c = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("unsupported type for CartItems: %T", src)
	}
}

// Value implements the driver.Valuer interface
func (e EmergencyContact) Value() (driver.Value, error) {
	return json.Marshal(e)
}

// Scan implements the sql.Scanner interface
func (e *EmergencyContact) Scan(src interface{}) error {
	if src == nil {
		*e = EmergencyContact{}
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, e)
	case string:
		return json.Unmarshal([]byte(v), e)
	default:
		return fmt.Errorf("unsupported type for EmergencyContact: %T", src)
	}
}
