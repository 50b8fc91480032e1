package domain

import (
	"fmt"
	"strings"
	"time"
)

// ApproverRole is a role that can decide an approval level.
type ApproverRole string

const (
	RoleAccountant ApproverRole = "ACCOUNTANT"
	RoleNazer      ApproverRole = "NAZER"
	RoleAuditor    ApproverRole = "AUDITOR"
	RoleBoard      ApproverRole = "BOARD"
)

func (r ApproverRole) Valid() bool {
	switch r {
	case RoleAccountant, RoleNazer, RoleAuditor, RoleBoard:
		return true
	}
	return false
}

func ParseApproverRole(s string) (ApproverRole, error) {
	r := ApproverRole(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown approver role %q", s)
	}
	return r, nil
}

// ApprovalStatus is the state of one approval record.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

func (s ApprovalStatus) Valid() bool {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

func (s ApprovalStatus) IsDecided() bool {
	switch s {
	case ApprovalApproved, ApprovalRejected:
		return true
	case ApprovalPending:
		return false
	}
	return false
}

// ApprovalDecision is what an approver submits.
type ApprovalDecision string

const (
	DecisionApprove ApprovalDecision = "APPROVE"
	DecisionReject  ApprovalDecision = "REJECT"
)

func (d ApprovalDecision) Valid() bool {
	switch d {
	case DecisionApprove, DecisionReject:
		return true
	}
	return false
}

// ResultingStatus maps a decision to the approval status it produces.
func (d ApprovalDecision) ResultingStatus() (ApprovalStatus, error) {
	switch d {
	case DecisionApprove:
		return ApprovalApproved, nil
	case DecisionReject:
		return ApprovalRejected, nil
	}
	return "", fmt.Errorf("unknown decision %q", d)
}

func ParseApprovalDecision(s string) (ApprovalDecision, error) {
	d := ApprovalDecision(strings.ToUpper(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("unknown decision %q", s)
	}
	return d, nil
}

// ApprovalMode decides whether levels must be decided in order.
type ApprovalMode string

const (
	ApprovalSequential ApprovalMode = "SEQUENTIAL"
	ApprovalParallel   ApprovalMode = "PARALLEL"
)

func (m ApprovalMode) Valid() bool {
	switch m {
	case ApprovalSequential, ApprovalParallel:
		return true
	}
	return false
}

// Approval is one role's decision on one revision of a distribution.
// Records are appended per revision and never rewritten once decided.
type Approval struct {
	ApprovalID     string         `json:"approvalID"`
	DistributionID string         `json:"distributionID"`
	Revision       int            `json:"revision"`
	Level          int            `json:"level"`
	Role           ApproverRole   `json:"role"`
	Status         ApprovalStatus `json:"status"`
	DecidedBy      string         `json:"decidedBy"`
	DecidedAt      *time.Time     `json:"decidedAt"`
	Note           string         `json:"note"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// ApprovalPolicy is the ordered list of required roles plus the mode.
type ApprovalPolicy struct {
	Roles []ApproverRole
	Mode  ApprovalMode
}

// NewApprovals creates fresh pending records for a revision, one per level.
func (p ApprovalPolicy) NewApprovals(distributionID string, revision int, now time.Time, newID func() string) []Approval {
	out := make([]Approval, len(p.Roles))
	for i, role := range p.Roles {
		out[i] = Approval{
			ApprovalID:     newID(),
			DistributionID: distributionID,
			Revision:       revision,
			Level:          i + 1,
			Role:           role,
			Status:         ApprovalPending,
			CreatedAt:      now,
		}
	}
	return out
}

// CheckOrder verifies that, in sequential mode, every level below target is approved.
func (p ApprovalPolicy) CheckOrder(current []Approval, target Approval) error {
	switch p.Mode {
	case ApprovalParallel:
		return nil
	case ApprovalSequential:
		for _, a := range current {
			if a.Level < target.Level && a.Status != ApprovalApproved {
				return fmt.Errorf("level %d (%s) must be approved before level %d (%s)", a.Level, a.Role, target.Level, target.Role)
			}
		}
		return nil
	}
	return fmt.Errorf("unknown approval mode %q", p.Mode)
}

// Outcome derives the distribution status from the current revision's approvals.
// Any rejection rejects; all approved approves; otherwise pending.
func Outcome(current []Approval) DistributionStatus {
	if len(current) == 0 {
		return DistributionPending
	}
	allApproved := true
	for _, a := range current {
		switch a.Status {
		case ApprovalRejected:
			return DistributionRejected
		case ApprovalPending:
			allApproved = false
		case ApprovalApproved:
		}
	}
	if allApproved {
		return DistributionApproved
	}
	return DistributionPending
}

// Actor is the authenticated caller and the roles granted by their token.
type Actor struct {
	UserID string
	Roles  []ApproverRole
}

func (a Actor) HasRole(role ApproverRole) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}
