// Package impl contains the implementation of the application's business logic.
package impl

import (
	"doggywalk/internal/domain/entity"
	domainerrors "doggywalk/internal/domain/errors"
	"doggywalk/internal/domain/repository"

	"github.com/pkg/errors"
)

// translateRepoError maps repository sentinels to the domain error taxonomy.
// Unknown errors pass through unchanged.
func translateRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrPrincipalNotFound):
		return domainerrors.ErrNotFound.WrapMessage("principal not found")
	case errors.Is(err, repository.ErrDogNotFound):
		return domainerrors.ErrNotFound.WrapMessage("dog not found")
	case errors.Is(err, repository.ErrAppointmentNotFound):
		return domainerrors.ErrNotFound.WrapMessage("appointment not found")
	case errors.Is(err, repository.ErrReviewNotFound):
		return domainerrors.ErrNotFound.WrapMessage("review not found")
	case errors.Is(err, repository.ErrAddressNotFound):
		return domainerrors.ErrNotFound.WrapMessage("address not found")
	case errors.Is(err, repository.ErrEmailTaken):
		return domainerrors.ErrDuplicateEmail.WrapMessage("email already registered")
	case errors.Is(err, repository.ErrReviewExists):
		return domainerrors.ErrReviewConflict.WrapMessage("appointment already reviewed")
	}

	return err
}

func invalid(details string) error {
	return domainerrors.ErrValidationFailed.WithDetails(details)
}

func requireKind(kind entity.Kind) error {
	if !kind.IsValid() {
		return invalid("kind must be owner or walker")
	}

	return nil
}
