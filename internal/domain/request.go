package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

type RequestStatus string

const (
	RequestStatusPending     RequestStatus = "PENDING"
	RequestStatusInReview    RequestStatus = "IN_REVIEW"
	RequestStatusApproved    RequestStatus = "APPROVED"
	RequestStatusDisapproved RequestStatus = "DISAPPROVED"
)

// Terminal reports whether the status admits no further review decisions.
func (s RequestStatus) Terminal() bool {
	return s == RequestStatusApproved || s == RequestStatusDisapproved
}

// ReviewStage is the reviewer role a request is currently waiting on. The
// same values name reviewer roles throughout the system (privileges, tokens).
type ReviewStage string

const (
	StagePartnershipDivision ReviewStage = "PARTNERSHIP_DIVISION"
	StageLawService          ReviewStage = "LAW_SERVICE"
	StageLawResearch         ReviewStage = "LAW_RESEARCH"
	StageDirector            ReviewStage = "DIRECTOR"
	StageGeneralDirector     ReviewStage = "GENERAL_DIRECTOR"
)

// ReviewerRoles lists every role a privilege map must cover.
var ReviewerRoles = []ReviewStage{
	StagePartnershipDivision,
	StageLawService,
	StageLawResearch,
	StageDirector,
	StageGeneralDirector,
}

func ValidReviewStage(s ReviewStage) bool {
	switch s {
	case StagePartnershipDivision, StageLawService, StageLawResearch, StageDirector, StageGeneralDirector:
		return true
	}
	return false
}

type Decision string

const (
	DecisionApprove    Decision = "APPROVE"
	DecisionDisapprove Decision = "DISAPPROVE"
	DecisionForward    Decision = "FORWARD"
)

type RequestType string

const (
	RequestTypeInternal RequestType = "INTERNAL"
	RequestTypeExternal RequestType = "EXTERNAL"
)

type PartnershipType string

const (
	PartnershipTypeStrategic   PartnershipType = "STRATEGIC"
	PartnershipTypeOperational PartnershipType = "OPERATIONAL"
	PartnershipTypeProject     PartnershipType = "PROJECT"
	PartnershipTypeTactical    PartnershipType = "TACTICAL"
)

type DurationUnit string

const (
	DurationUnitMonths DurationUnit = "MONTHS"
	DurationUnitYears  DurationUnit = "YEARS"
)

// Duration is a partnership duration. Legacy records stored a bare number
// meaning years; UnmarshalJSON accepts both forms and normalizes.
type Duration struct {
	Value int          `json:"value"`
	Unit  DurationUnit `json:"unit"`
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		d.Value = n
		d.Unit = DurationUnitYears
		return nil
	}

	type durationAlias Duration
	var a durationAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return fmt.Errorf("invalid duration: %w", err)
	}
	if a.Unit == "" {
		a.Unit = DurationUnitYears
	}
	*d = Duration(a)
	return nil
}

// IsZero reports whether the duration is absent.
func (d Duration) IsZero() bool {
	return d.Value == 0
}

type CompanyDetails struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type Attachment struct {
	Path        string `json:"path"`
	UploadedBy  int32  `json:"uploaded_by"`
	Description string `json:"description"`
}

// RoutingFlags is the immutable routing decision captured once, at the
// partnership-division pass. Later stages read it but never change it, so a
// downstream reviewer cannot reroute a request other reviewers already
// approved under a different assumed path.
type RoutingFlags struct {
	IsLawServiceRelated  bool `json:"is_law_service_related"`
	IsLawResearchRelated bool `json:"is_law_research_related"`
	ForDirector          bool `json:"for_director"`
	IsLawRelated         bool `json:"is_law_related"`
}

// CaptureRoutingFlags derives the law-related convenience flag and returns
// the frozen routing decision for a request.
func CaptureRoutingFlags(lawService, lawResearch, forDirector bool) RoutingFlags {
	return RoutingFlags{
		IsLawServiceRelated:  lawService,
		IsLawResearchRelated: lawResearch,
		ForDirector:          forDirector,
		IsLawRelated:         lawService || lawResearch,
	}
}

// NextStage returns the stage that follows current on an approve decision.
// The rule table is ordered; the first matching condition wins. ok is false
// when current is the general-director stage, which is terminal.
func (f RoutingFlags) NextStage(current ReviewStage) (next ReviewStage, ok bool) {
	switch current {
	case StagePartnershipDivision:
		switch {
		case f.IsLawServiceRelated:
			return StageLawService, true
		case f.IsLawResearchRelated:
			return StageLawResearch, true
		case f.ForDirector:
			return StageDirector, true
		default:
			return StageGeneralDirector, true
		}
	case StageLawService:
		switch {
		case f.IsLawResearchRelated:
			return StageLawResearch, true
		case f.ForDirector:
			return StageDirector, true
		default:
			return StageGeneralDirector, true
		}
	case StageLawResearch:
		if f.ForDirector {
			return StageDirector, true
		}
		return StageGeneralDirector, true
	case StageDirector:
		return StageGeneralDirector, true
	}
	return "", false
}

// RequiredApprovals is the approval threshold at the general-director stage.
func (f RoutingFlags) RequiredApprovals() int {
	if f.IsLawRelated {
		return 3
	}
	return 2
}

type Request struct {
	ID                  int32           `json:"id"`
	SubmitterID         int32           `json:"submitter_id"`
	Type                RequestType     `json:"type"`
	Status              RequestStatus   `json:"status"`
	CurrentStage        ReviewStage     `json:"current_stage"`
	FlagsSet            bool            `json:"flags_set"`
	Flags               RoutingFlags    `json:"flags"`
	PartnershipType     PartnershipType `json:"partnership_request_type,omitempty"`
	FrameworkType       string          `json:"framework_type,omitempty"`
	Duration            Duration        `json:"duration"`
	CompanyDetails      CompanyDetails  `json:"company_details"`
	Attachments         []Attachment    `json:"attachments,omitempty"`
	Approvals           []Approval      `json:"approvals,omitempty"`
	// Revision is compared-and-swapped on every update; a stale write is a
	// conflict the caller must retry.
	Revision  int32  `json:"revision"`
	CreatedOn string `json:"created_on"`
	UpdatedOn string `json:"updated_on"`
}

// ApproveCount is the number of approve decisions across the whole ledger,
// any stage.
func (r *Request) ApproveCount() int {
	n := 0
	for _, a := range r.Approvals {
		if a.Decision == DecisionApprove {
			n++
		}
	}
	return n
}

// HasStageApproval reports whether the ledger already holds an approval
// record for the given stage, and whether one of them is by approverID.
func (r *Request) HasStageApproval(stage ReviewStage, approverID int32) (anyActor, sameActor bool) {
	for _, a := range r.Approvals {
		if a.Stage != stage || a.Decision != DecisionApprove {
			continue
		}
		anyActor = true
		if a.ApprovedBy == approverID {
			sameActor = true
		}
	}
	return anyActor, sameActor
}

// AppendApproval records a reviewer decision in the ledger. The ledger is
// append-only; entries are never mutated or removed.
func (r *Request) AppendApproval(a Approval) {
	if a.Date.IsZero() {
		a.Date = time.Now()
	}
	r.Approvals = append(r.Approvals, a)
}
