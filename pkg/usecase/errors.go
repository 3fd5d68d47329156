package usecase

import "errors"

// Sentinel errors for the use case layer
var (
	ErrInvalidInput = errors.New("invalid input")
)

// Context keys for error values
const (
	ProjectIDKey = "project_id"
	RiskIDKey    = "risk_id"
)
