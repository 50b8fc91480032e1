package domain

import (
	"fmt"
	"time"
)

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ArchivalStatus is the lifecycle flag used instead of nullable deletion markers.
type ArchivalStatus string

const (
	ArchivalActive   ArchivalStatus = "ACTIVE"
	ArchivalArchived ArchivalStatus = "ARCHIVED"
)

func (s ArchivalStatus) Valid() bool {
	switch s {
	case ArchivalActive, ArchivalArchived:
		return true
	}
	return false
}

// ArchivalState records whether an entity is active or archived, and if
// archived, why, when and by whom.
type ArchivalState struct {
	Status     ArchivalStatus `json:"status"`
	Reason     string         `json:"reason,omitempty"`
	ArchivedAt *time.Time     `json:"archivedAt,omitempty"`
	ArchivedBy string         `json:"archivedBy,omitempty"`
}

// Active returns the state of a live entity.
func Active() ArchivalState {
	return ArchivalState{Status: ArchivalActive}
}

// Archived returns the terminal archival state.
func Archived(reason string, at time.Time, by string) ArchivalState {
	return ArchivalState{Status: ArchivalArchived, Reason: reason, ArchivedAt: &at, ArchivedBy: by}
}

func (a ArchivalState) IsActive() bool {
	switch a.Status {
	case ArchivalActive:
		return true
	case ArchivalArchived:
		return false
	}
	return false
}

// Archive transitions an active state to archived.
func (a ArchivalState) Archive(reason string, at time.Time, by string) (ArchivalState, error) {
	switch a.Status {
	case ArchivalActive:
		return Archived(reason, at, by), nil
	case ArchivalArchived:
		return a, fmt.Errorf("already archived at %s", a.ArchivedAt.Format(time.RFC3339))
	}
	return a, fmt.Errorf("unknown archival status %q", a.Status)
}
