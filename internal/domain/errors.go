package domain

import "errors"

// Domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrViewActive          = errors.New("dashboard view already active")
	ErrViewInactive        = errors.New("dashboard view is not active")
	ErrViewNotFound        = errors.New("dashboard view not found")
	ErrChartLengthMismatch = errors.New("chart labels and values differ in length")
	ErrSnapshotUnavailable = errors.New("snapshot source unavailable")
	ErrSubjectRequired     = errors.New("subject is required")
)
