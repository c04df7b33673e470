package errors

import "errors"

var (
	ErrSettlementNotFound      = errors.New("settlement not found")
	ErrSettlementExists        = errors.New("settlement already exists for campaign")
	ErrInvalidSettlementInput  = errors.New("invalid settlement input")
	ErrInvalidStatusTransition = errors.New("invalid settlement status transition")
	ErrStageLocked             = errors.New("campaign stage does not allow settlement")
	ErrUnauthorizedActor       = errors.New("actor is not authorized")
)
