package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vector is one generated test record. A generate request stores one row per
// ENCRYPT and DECRYPT record, sharing a BatchID.
type Vector struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	BatchID   string `gorm:"type:uuid;index;not null" json:"batch_id"`
	UserID    string `gorm:"type:uuid;index;not null" json:"user_id"`
	Algorithm string `gorm:"not null" json:"algorithm"`
	Mode      string `gorm:"not null" json:"mode"`
	TestMode  string `gorm:"not null" json:"test_mode"`
	KeyBits   int    `json:"key_bits"`
	Direction string `json:"direction"` // ENCRYPT or DECRYPT
	Count     int    `json:"count"`

	KeyHex    string  `json:"key_hex"`
	IVHex     string  `json:"iv_hex,omitempty"`
	InputHex  string  `json:"input_hex"`
	OutputHex *string `json:"output_hex,omitempty"` // nil when expected values were withheld

	Params    JSONB     `gorm:"type:jsonb" json:"params"`
	CreatedAt time.Time `json:"created_at"`
}

func (Vector) TableName() string { return "vectors" }

func (v *Vector) BeforeCreate(*gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
