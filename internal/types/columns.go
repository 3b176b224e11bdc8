package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// StringList is an ordered list of strings stored as a JSON array in a TEXT column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("marshal string list: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}

	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}

	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("unmarshal string list: %w", err)
	}
	*l = out
	return nil
}

// MarshalJSON always emits an array, never null.
func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// Contains reports whether v is an exact member of the list.
func (l StringList) Contains(v string) bool {
	return slices.Contains(l, v)
}

// Address is the structured shipping address of an order. JSON keys follow the
// storefront checkout form.
type Address struct {
	Region    string `json:"departamento"`
	Province  string `json:"provincia"`
	District  string `json:"distrito"`
	Street    string `json:"direccion"`
	Reference string `json:"referencia,omitempty"`
}

// IsZero reports whether no address field carries a value.
func (a Address) IsZero() bool {
	return strings.TrimSpace(a.Region) == "" &&
		strings.TrimSpace(a.Province) == "" &&
		strings.TrimSpace(a.District) == "" &&
		strings.TrimSpace(a.Street) == "" &&
		strings.TrimSpace(a.Reference) == ""
}

// Locality returns "District, Province" skipping empty parts.
func (a Address) Locality() string {
	parts := make([]string, 0, 2)
	for _, p := range []string{a.District, a.Province} {
		if s := strings.TrimSpace(p); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// Value implements driver.Valuer.
func (a Address) Value() (driver.Value, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal address: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (a *Address) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*a = Address{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("cannot scan %T into Address", src)
	}

	if err := json.Unmarshal(raw, a); err != nil {
		return fmt.Errorf("unmarshal address: %w", err)
	}
	return nil
}
