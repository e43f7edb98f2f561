package entity

import (
	"time"

	"github.com/google/uuid"
)

// OtherBreed is always offered when the breed catalog has no match.
const OtherBreed = "Other"

// Dog belongs to exactly one owner.
type Dog struct {
	ID          uuid.UUID // Primary key.
	OwnerID     uuid.UUID // Owning principal (KindOwner).
	Name        string    // Dog's name.
	Breed       string    // Catalog breed name or free text.
	Weight      int       // In pounds.
	Age         int       // In years.
	Color       string    // Optional.
	Description string    // Optional, filled from the breed temperament when empty.
	Photo       string    // Photo URL, DefaultPhoto when unset.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
