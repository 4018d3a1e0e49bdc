package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Quantity stores an ingredient amount exactly as dictated ("2", "1/2",
// "1.5"). The structuring service sometimes emits numbers instead of strings,
// so unmarshalling accepts both and normalizes to a string.
type Quantity string

func (q *Quantity) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*q = ""
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*q = Quantity(str)
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*q = Quantity(strconv.FormatFloat(num, 'f', -1, 64))
		return nil
	}

	return fmt.Errorf("invalid quantity format: %s", data)
}

// RecipeItem is one ingredient line: a name plus optional quantity and unit.
type RecipeItem struct {
	ItemName string   `json:"itemName"`
	Quantity Quantity `json:"quantity,omitempty"`
	Unit     string   `json:"unit,omitempty"`
}

// RecipeItems is the ordered list of line items, stored as JSONB.
type RecipeItems []RecipeItem

// Value implements the driver.Valuer interface
func (items RecipeItems) Value() (driver.Value, error) {
	if len(items) == 0 {
		return "[]", nil
	}
	return json.Marshal(items)
}

// Scan implements the sql.Scanner interface
func (items *RecipeItems) Scan(value interface{}) error {
	if value == nil {
		*items = RecipeItems{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, items)
}

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

type Recipe struct {
	ID         uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
	Name       string           `gorm:"size:100;not null;index" json:"recipe_name"`
	Provenance string           `gorm:"size:255" json:"provenance,omitempty"`
	Items      RecipeItems      `gorm:"type:jsonb;not null;default:'[]'" json:"items"`
	ChefNotes  JSONBStringArray `gorm:"type:jsonb" json:"chef_notes,omitempty"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
