package models

import (
	"fmt"
	"time"
)

// Table represents a restaurant table. Ids are assigned by the database,
// never computed client-side from a possibly-stale list.
type Table struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Seats          int       `json:"seats"`
	IsOccupied     bool      `json:"isOccupied"`
	CurrentOrderID string    `json:"currentOrderId,omitempty"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
}

// CreateTableRequest represents the request to add a table. Any
// client-supplied id is ignored.
type CreateTableRequest struct {
	Name  string `json:"name"`
	Seats int    `json:"seats"`
}

// Validate validates the create table request
func (req *CreateTableRequest) Validate() error {
	if req.Name == "" {
		return fmt.Errorf("name is required")
	}
	if req.Seats < 1 {
		return fmt.Errorf("seats must be positive")
	}
	return nil
}
