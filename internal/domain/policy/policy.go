// Package policy decides which principal may view, message, book or rate which other
// principal. Decisions combine the actor's kind, ownership of the target and the
// owner/walker relationship graph.
package policy

import (
	"context"

	"doggywalk/internal/domain/entity"
	domainerrors "doggywalk/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Action is something an actor attempts on a target.
type Action string

const (
	ViewOwner         Action = "owner:view"
	ViewOwnerDogs     Action = "owner:dogs:view"
	ViewDog           Action = "dog:view"
	EditOwner         Action = "owner:edit" // profile, address, account deletion, adding dogs
	EditDog           Action = "dog:edit"   // editing and deleting a dog
	ViewWalker        Action = "walker:view"
	EditWalker        Action = "walker:edit" // profile, address, account deletion
	ViewInbox         Action = "inbox:view"
	ViewAppointments  Action = "appointments:view"
	ViewThread        Action = "thread:view"
	SendMessage       Action = "thread:send"
	CreateAppointment Action = "appointment:create"
	CompleteAppt      Action = "appointment:complete"
	DeleteAppt        Action = "appointment:delete"
	CreateReview      Action = "review:create"
	ViewReview        Action = "review:view"
)

// Target describes what an action is applied to. Only the fields relevant to the
// action are read.
type Target struct {
	OwnerID     uuid.UUID
	WalkerID    uuid.UUID
	Principal   *entity.AuthenticatedPrincipal // whose inbox or appointment list
	Appointment *entity.Appointment
	Reviewed    bool // the appointment already carries a review
}

// OwnerTarget targets an owner's profile, dogs or account.
func OwnerTarget(ownerID uuid.UUID) Target {
	return Target{OwnerID: ownerID}
}

// WalkerTarget targets a walker's profile or account.
func WalkerTarget(walkerID uuid.UUID) Target {
	return Target{WalkerID: walkerID}
}

// DogTarget targets a dog through its owner.
func DogTarget(dog *entity.Dog) Target {
	return Target{OwnerID: dog.OwnerID}
}

// ThreadTarget targets the message thread of a pair.
func ThreadTarget(ownerID, walkerID uuid.UUID) Target {
	return Target{OwnerID: ownerID, WalkerID: walkerID}
}

// ListTarget targets a principal's inbox or appointment list.
func ListTarget(kind entity.Kind, id uuid.UUID) Target {
	return Target{Principal: &entity.AuthenticatedPrincipal{ID: id, Kind: kind}}
}

// AppointmentTarget targets an existing appointment.
func AppointmentTarget(appointment *entity.Appointment, reviewed bool) Target {
	return Target{
		OwnerID:     appointment.OwnerID,
		WalkerID:    appointment.WalkerID,
		Appointment: appointment,
		Reviewed:    reviewed,
	}
}

// ConnectionChecker answers relationship graph queries.
type ConnectionChecker interface {
	IsConnected(ctx context.Context, ownerID, walkerID uuid.UUID) (bool, error)
}

// Engine evaluates access rules. It is cheap to build, so callers create one per
// transaction around a transaction-bound ConnectionChecker.
type Engine struct {
	graph ConnectionChecker
}

// NewEngine builds an Engine reading connections from graph.
func NewEngine(graph ConnectionChecker) *Engine {
	return &Engine{graph: graph}
}

// CanAccess reports whether actor may perform action on target. A nil actor is
// anonymous and is denied everything. The error is non-nil only when the
// relationship graph could not be read.
func (e *Engine) CanAccess(ctx context.Context, actor *entity.AuthenticatedPrincipal, action Action, target Target) (bool, error) {
	if actor == nil || !actor.Kind.IsValid() {
		return false, nil
	}

	switch action {
	case ViewOwner, ViewOwnerDogs, ViewDog:
		if actor.IsOwner(target.OwnerID) {
			return true, nil
		}

		return e.walkerConnectedTo(ctx, actor, target.OwnerID)

	case EditOwner, EditDog:
		return actor.IsOwner(target.OwnerID), nil

	case ViewWalker:
		return true, nil

	case EditWalker:
		return actor.IsWalker(target.WalkerID), nil

	case ViewInbox, ViewAppointments:
		return target.Principal != nil && actor.Is(target.Principal.Kind, target.Principal.ID), nil

	case ViewThread:
		return actor.IsOwner(target.OwnerID) || actor.IsWalker(target.WalkerID), nil

	case SendMessage:
		// Owners open threads; walkers can only answer.
		if actor.IsOwner(target.OwnerID) {
			return true, nil
		}
		if !actor.IsWalker(target.WalkerID) {
			return false, nil
		}

		return e.walkerConnectedTo(ctx, actor, target.OwnerID)

	case CreateAppointment:
		return e.walkerConnectedTo(ctx, actor, target.OwnerID)

	case CompleteAppt:
		return target.Appointment != nil && actor.IsWalker(target.Appointment.WalkerID), nil

	case DeleteAppt:
		appt := target.Appointment

		return appt != nil && actor.IsWalker(appt.WalkerID) && appt.CanDelete(), nil

	case CreateReview:
		appt := target.Appointment

		return appt != nil && actor.IsOwner(appt.OwnerID) && appt.Completed && !target.Reviewed, nil

	case ViewReview:
		appt := target.Appointment

		return appt != nil && (actor.IsOwner(appt.OwnerID) || actor.IsWalker(appt.WalkerID)), nil
	}

	return false, nil
}

// Authorize is CanAccess turned into an error: ErrAccessDenied on denial.
func (e *Engine) Authorize(ctx context.Context, actor *entity.AuthenticatedPrincipal, action Action, target Target) error {
	allowed, err := e.CanAccess(ctx, actor, action, target)
	if err != nil {
		return errors.Wrapf(err, "failed to evaluate %s", action)
	}
	if !allowed {
		return errors.Wrapf(domainerrors.ErrAccessDenied, "%s denied", action)
	}

	return nil
}

func (e *Engine) walkerConnectedTo(ctx context.Context, actor *entity.AuthenticatedPrincipal, ownerID uuid.UUID) (bool, error) {
	if actor.Kind != entity.KindWalker || ownerID == uuid.Nil {
		return false, nil
	}

	connected, err := e.graph.IsConnected(ctx, ownerID, actor.ID)
	if err != nil {
		return false, errors.Wrap(err, "failed to read connection")
	}

	return connected, nil
}
