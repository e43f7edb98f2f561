// Package entity contains the core business objects of the project.
package entity

import "github.com/google/uuid"

// Kind discriminates the two principal kinds.
type Kind string

const (
	// KindOwner is a principal who owns dogs and books walks.
	KindOwner Kind = "owner"
	// KindWalker is a principal who offers walks and manages appointments.
	KindWalker Kind = "walker"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the Kind is a valid value.
func (k Kind) IsValid() bool {
	switch k {
	case KindOwner, KindWalker:
		return true
	default:
		return false
	}
}

// AuthenticatedPrincipal is the session payload carried by every authenticated request.
type AuthenticatedPrincipal struct {
	ID   uuid.UUID
	Kind Kind
}

// Is reports whether the actor is exactly the principal (kind, id).
func (p *AuthenticatedPrincipal) Is(kind Kind, id uuid.UUID) bool {
	return p != nil && p.Kind == kind && p.ID == id
}

// IsOwner reports whether the actor is the owner with the given id.
func (p *AuthenticatedPrincipal) IsOwner(id uuid.UUID) bool {
	return p.Is(KindOwner, id)
}

// IsWalker reports whether the actor is the walker with the given id.
func (p *AuthenticatedPrincipal) IsWalker(id uuid.UUID) bool {
	return p.Is(KindWalker, id)
}
