package errors

import "errors"

var (
	ErrArtifactNotFound        = errors.New("artifact not found")
	ErrInvalidArtifactInput    = errors.New("invalid artifact input")
	ErrInvalidStatusTransition = errors.New("invalid artifact status transition")
	ErrRevisionConflict        = errors.New("a revision round is already pending")
	ErrRevisionNotPending      = errors.New("revision is not pending")
	ErrArtifactIncomplete      = errors.New("artifact payload is incomplete")
	ErrDuplicateArtifact       = errors.New("duplicate artifact")
	ErrStageLocked             = errors.New("campaign stage does not allow this operation")
	ErrUnauthorizedActor       = errors.New("actor is not authorized")
)
