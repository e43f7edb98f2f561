package entity

import (
	"time"

	"github.com/google/uuid"
)

// Address is owned by the principal referencing it and deleted with it.
type Address struct {
	ID           uuid.UUID // Primary key.
	Line         string    // Street line, optional.
	ZipCode      int       // Postal code.
	City         string    // City name.
	State        string    // State or province.
	Neighborhood string    // Neighborhood name.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
