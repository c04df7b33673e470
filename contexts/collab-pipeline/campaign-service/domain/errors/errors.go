package errors

import "errors"

var (
	ErrCampaignNotFound     = errors.New("campaign not found")
	ErrSubjectNotFound      = errors.New("subject not found")
	ErrInvalidCampaignInput = errors.New("invalid campaign input")
	ErrInvalidSubjectInput  = errors.New("invalid subject input")
	ErrInvalidSubjectStatus = errors.New("invalid subject status transition")
	ErrDuplicateSubject     = errors.New("duplicate subject")
	ErrUnauthorizedActor    = errors.New("actor is not authorized")
)
