package domain

import "time"

type PartnerStatus string

const (
	PartnerStatusActive  PartnerStatus = "ACTIVE"
	PartnerStatusExpired PartnerStatus = "EXPIRED"
)

// ApprovalAttachment is a ledger attachment flattened onto the partner at
// promotion time, normalized to the bare filename.
type ApprovalAttachment struct {
	FileName   string      `json:"file_name"`
	ApprovedBy int32       `json:"approved_by"`
	Stage      ReviewStage `json:"stage"`
	Date       time.Time   `json:"date"`
}

// Partner is the snapshot created exactly once from an approved request.
type Partner struct {
	ID                  int32                `json:"id"`
	RequestID           int32                `json:"request_id"`
	CompanyDetails      CompanyDetails       `json:"company_details"`
	FrameworkType       string               `json:"framework_type,omitempty"`
	PartnershipType     PartnershipType      `json:"partnership_request_type"`
	Duration            Duration             `json:"duration"`
	ApprovalAttachments []ApprovalAttachment `json:"approval_attachments,omitempty"`
	Status              PartnerStatus        `json:"status"`
	IsSigned            bool                 `json:"is_signed"`
	SignedAt            *time.Time           `json:"signed_at,omitempty"`
	SignedBy            *int32               `json:"signed_by,omitempty"`
	// Privileges gates per-role access to operational partnerships. An
	// absent entry is an allow; only an explicit false denies.
	Privileges map[string]bool `json:"privileges,omitempty"`
	CreatedOn  string          `json:"created_on"`
	UpdatedOn  string          `json:"updated_on"`
}

// CanAccess applies the privilege overlay. The overlay is inert for
// non-operational partnerships and for partners with no privilege map.
func (p *Partner) CanAccess(role ReviewStage) bool {
	if p.PartnershipType != PartnershipTypeOperational {
		return true
	}
	if p.Privileges == nil {
		return true
	}
	allowed, found := p.Privileges[string(role)]
	if !found {
		return true
	}
	return allowed
}
