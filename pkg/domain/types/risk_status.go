package types

import (
	"fmt"
	"strings"
)

// RiskStatus represents the workflow status of a persisted risk record
type RiskStatus string

const (
	RiskStatusIdentified RiskStatus = "Identified"
	RiskStatusMitigating RiskStatus = "Mitigating"
	RiskStatusClosed     RiskStatus = "Closed"
)

// AllRiskStatuses returns all valid risk statuses
func AllRiskStatuses() []RiskStatus {
	return []RiskStatus{
		RiskStatusIdentified,
		RiskStatusMitigating,
		RiskStatusClosed,
	}
}

// IsValid checks if the risk status is valid
func (s RiskStatus) IsValid() bool {
	switch s {
	case RiskStatusIdentified,
		RiskStatusMitigating,
		RiskStatusClosed:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as RiskStatusIdentified.
func (s RiskStatus) Normalize() RiskStatus {
	if s == "" {
		return RiskStatusIdentified
	}
	return s
}

// String returns the string representation of the risk status
func (s RiskStatus) String() string {
	return string(s)
}

// ParseRiskStatus parses a string into a RiskStatus. Matching is
// case-insensitive; the canonical form is returned.
func ParseRiskStatus(s string) (RiskStatus, error) {
	for _, status := range AllRiskStatuses() {
		if strings.EqualFold(s, status.String()) {
			return status, nil
		}
	}
	return "", fmt.Errorf("invalid risk status: %s", s)
}
