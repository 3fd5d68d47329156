package types

import (
	"fmt"
	"strings"
)

// ProjectStatus represents the status of a construction project
type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "Planning"
	ProjectStatusActive    ProjectStatus = "Active"
	ProjectStatusCompleted ProjectStatus = "Completed"
)

// AllProjectStatuses returns all valid project statuses
func AllProjectStatuses() []ProjectStatus {
	return []ProjectStatus{
		ProjectStatusPlanning,
		ProjectStatusActive,
		ProjectStatusCompleted,
	}
}

// IsValid checks if the project status is valid
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusPlanning,
		ProjectStatusActive,
		ProjectStatusCompleted:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as ProjectStatusPlanning.
func (s ProjectStatus) Normalize() ProjectStatus {
	if s == "" {
		return ProjectStatusPlanning
	}
	return s
}

// String returns the string representation of the project status
func (s ProjectStatus) String() string {
	return string(s)
}

// ParseProjectStatus parses a string into a ProjectStatus. Matching is
// case-insensitive; the canonical form is returned.
func ParseProjectStatus(s string) (ProjectStatus, error) {
	for _, status := range AllProjectStatuses() {
		if strings.EqualFold(s, status.String()) {
			return status, nil
		}
	}
	return "", fmt.Errorf("invalid project status: %s", s)
}
