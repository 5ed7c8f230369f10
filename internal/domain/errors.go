package domain

import "errors"

var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrEmptyText          = errors.New("text to summarize is empty")
	ErrSummaryNotFound    = errors.New("summary not found")
	ErrPageOutOfRange     = errors.New("page out of range")
	ErrInvalidPageSize    = errors.New("page size not in the allowed set")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrWeakPassword       = errors.New("password is too weak")
	ErrInvalidResetToken  = errors.New("reset token is invalid or expired")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
)
