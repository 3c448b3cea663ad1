package service

import (
	"errors"
	"time"

	"bookstore-backend/internal/apperr"
	"bookstore-backend/internal/repository"
)

// Clock returns the current time; tests substitute a fixed one.
type Clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}

// lookupErr turns a repository error into a domain error: ErrNotFound
// becomes a 404 with notFoundMsg, anything else a 500 with internalMsg.
func lookupErr(err error, notFoundMsg, internalMsg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(notFoundMsg)
	}
	return apperr.Internal(err, internalMsg)
}
