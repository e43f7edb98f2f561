package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultPhoto is used for principals and dogs without an uploaded photo.
const DefaultPhoto = "/static/images/profile_no_photo.jpg"

// Principal is an Owner or a Walker. Walker is non-nil exactly when Kind is KindWalker.
type Principal struct {
	ID           uuid.UUID      // Unique within its kind.
	Kind         Kind           // Discriminant of the union.
	FirstName    string         // Given name.
	LastName     string         // Family name.
	Email        string         // Login identifier, unique per kind.
	PasswordHash string         // bcrypt hash, never serialised.
	Cellphone    string         // Optional contact number.
	Photo        string         // Photo URL, DefaultPhoto when unset.
	AddressID    *uuid.UUID     // Optional address reference.
	Address      *Address       // Loaded address, nil when absent or not preloaded.
	Walker       *WalkerProfile // Walker-only data.
	CreatedAt    time.Time      // Timestamp of signup.
	UpdatedAt    time.Time      // Timestamp of the last profile change.
}

// WalkerProfile holds data only walkers carry.
type WalkerProfile struct {
	Description string   // Free text, at most 450 characters.
	Rate        *float64 // Mean of received review rates, nil until the first review.
}

// NewPrincipal builds a principal of the given kind with defaults applied.
func NewPrincipal(kind Kind, firstName, lastName, email string) *Principal {
	p := &Principal{
		ID:        uuid.New(),
		Kind:      kind,
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Email:     NormalizeEmail(email),
		Photo:     DefaultPhoto,
	}
	if kind == KindWalker {
		p.Walker = &WalkerProfile{}
	}

	return p
}

// FullName is the first and last name joined by a space.
func (p *Principal) FullName() string {
	return p.FirstName + " " + p.LastName
}

// IsWalker reports whether the principal is a walker.
func (p *Principal) IsWalker() bool {
	return p.Kind == KindWalker
}

// Actor returns the session payload for this principal.
func (p *Principal) Actor() *AuthenticatedPrincipal {
	return &AuthenticatedPrincipal{ID: p.ID, Kind: p.Kind}
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
