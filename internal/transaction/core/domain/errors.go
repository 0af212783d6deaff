package domain

import "errors"

var (
	// ErrAuthenticationFailed means the upstream Authentication Service
	// rejected the credential, or answered in a form we do not trust.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrAuthServiceUnavailable means the Authentication Service could not
	// be reached at all. Distinct from ErrAuthenticationFailed so callers
	// can tell "you're not allowed" from "we can't currently tell".
	ErrAuthServiceUnavailable = errors.New("authentication service unavailable")

	ErrForbidden           = errors.New("access forbidden")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidStatus       = errors.New("invalid transaction status")
)
