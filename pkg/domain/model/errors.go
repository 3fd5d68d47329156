package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors shared across repository backends. Both the memory and
// firestore implementations wrap these so callers can branch on error kind
// without knowing the backend.
var (
	ErrProjectNotFound = goerr.New("project not found")
	ErrRiskNotFound    = goerr.New("risk not found")
)
