package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/0uma0tieno/BLITZ/pkg/enums"
)

// Confirmation is the proof record an agent attaches when picking up or
// delivering an order. It is stored verbatim as jsonb and never mutated
// after the transition that wrote it.
type Confirmation struct {
	Timestamp         time.Time                `json:"timestamp"`
	Method            enums.ConfirmationMethod `json:"method"`
	PhotoFileName     *string                  `json:"photoFileName,omitempty"`
	Message           *string                  `json:"message,omitempty"`
	SignatureReceived *bool                    `json:"signatureReceived,omitempty"`
	ConfirmedBy       uuid.UUID                `json:"confirmedBy"`
}

// Validate checks the record is internally consistent for its method.
func (c Confirmation) Validate() error {
	if !c.Method.IsValid() {
		return fmt.Errorf("confirmation: invalid method %q", c.Method)
	}
	if c.ConfirmedBy == uuid.Nil {
		return fmt.Errorf("confirmation: confirming actor required")
	}
	if c.Timestamp.IsZero() {
		return fmt.Errorf("confirmation: timestamp required")
	}
	return nil
}

// Value marshals the confirmation into a jsonb column.
func (c Confirmation) Value() (driver.Value, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("confirmation: marshal: %w", err)
	}
	return string(raw), nil
}

// Scan unmarshals a jsonb column back into the confirmation.
func (c *Confirmation) Scan(src any) error {
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
		return fmt.Errorf("confirmation: unsupported scan type %T", src)
	}
	return json.Unmarshal(raw, c)
}
