package domain

import "time"

type ActivityStatus string

const (
	ActivityStatusPending    ActivityStatus = "PENDING"
	ActivityStatusInProgress ActivityStatus = "IN_PROGRESS"
	ActivityStatusCompleted  ActivityStatus = "COMPLETED"
)

type ActivityAssignee string

const (
	AssigneePartner ActivityAssignee = "PARTNER"
	AssigneeInsa    ActivityAssignee = "INSA"
	AssigneeBoth    ActivityAssignee = "BOTH"
)

func ValidActivityAssignee(a ActivityAssignee) bool {
	switch a {
	case AssigneePartner, AssigneeInsa, AssigneeBoth:
		return true
	}
	return false
}

// PartnershipActivity is a task tracked against a signed partner. The
// deadline is anchored at the partner's signing date plus the partnership
// duration.
type PartnershipActivity struct {
	ID          int32            `json:"id"`
	PartnerID   int32            `json:"partner_id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	AssignedTo  ActivityAssignee `json:"assigned_to"`
	Status      ActivityStatus   `json:"status"`
	Deadline    time.Time        `json:"deadline"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
	CreatedBy   int32            `json:"created_by"`
	CreatedOn   string           `json:"created_on"`
	UpdatedOn   string           `json:"updated_on"`
}
