package database

import (
	"time"
)

// Preference is one persisted key/value setting of a visitor.
type Preference struct {
	VisitorID string
	Key       string
	Value     string
	UpdatedAt time.Time
}
