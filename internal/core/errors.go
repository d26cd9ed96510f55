package core

import "errors"

var (
	// ErrNoEmails is returned when an analysis request carries no emails
	ErrNoEmails = errors.New("no emails provided")
	// ErrTooManyEmails is returned when a request exceeds the configured email limit
	ErrTooManyEmails = errors.New("too many emails in request")
	// ErrTooManySenders is returned when a request exceeds the configured sender group limit
	ErrTooManySenders = errors.New("too many sender groups in request")
)
