package service

import (
	"context"
	"time"

	"insa-partnership-backend/internal/domain"
)

// SubmitReviewInput carries one reviewer decision on a request. Flags is
// only honored at the partnership-division stage, on the first pass; once
// captured the routing decision is immutable.
type SubmitReviewInput struct {
	RequestID       int32
	ActorID         int32
	ActorRole       domain.ReviewStage
	Decision        domain.Decision
	Message         string
	Flags           *RoutingFlagsInput
	PartnershipType domain.PartnershipType
	FrameworkType   string
	Attachments     []domain.Attachment
}

// RoutingFlagsInput is the routing questionnaire answered by the
// partnership-division reviewer at the entry stage.
type RoutingFlagsInput struct {
	IsLawServiceRelated  bool `json:"is_law_service_related"`
	IsLawResearchRelated bool `json:"is_law_research_related"`
	ForDirector          bool `json:"for_director"`
}

type SubmitRequestInput struct {
	FrameworkType  string
	Duration       domain.Duration
	CompanyDetails domain.CompanyDetails
	Attachments    []domain.Attachment
}

type WorkflowService interface {
	SubmitReview(ctx context.Context, in SubmitReviewInput) (*domain.Request, error)
	// DecideGeneralDirector handles the terminal stage: threshold counting,
	// single-approval guards, and synchronous partner promotion. The
	// returned partner is non-nil only when the decision crossed the
	// threshold.
	DecideGeneralDirector(ctx context.Context, requestID, actorID int32, decision domain.Decision, message string) (*domain.Request, *domain.Partner, error)
	GetRequest(ctx context.Context, id int32) (*domain.Request, error)
	ListByStage(ctx context.Context, stage domain.ReviewStage, page, pageSize int32) ([]domain.Request, int32, error)
	ApprovalHistory(ctx context.Context, requestID int32) ([]domain.Approval, error)
}

type RequestService interface {
	SubmitRequest(ctx context.Context, submitterID int32, in SubmitRequestInput) (*domain.Request, error)
	UpdateRequest(ctx context.Context, submitterID, requestID int32, in SubmitRequestInput) (*domain.Request, error)
	DeleteRequest(ctx context.Context, submitterID, requestID int32) error
	ListMyRequests(ctx context.Context, submitterID int32, page, pageSize int32) ([]domain.Request, int32, error)
}

type PartnerService interface {
	SignPartner(ctx context.Context, partnerID, actorID int32) (*domain.Partner, error)
	SetPrivileges(ctx context.Context, partnerID int32, privileges map[string]interface{}) (*domain.Partner, error)
	CheckAccess(ctx context.Context, partnerID int32, role domain.ReviewStage) (bool, error)
	GetPartner(ctx context.Context, partnerID int32, role domain.ReviewStage) (*domain.Partner, error)
	ListPartners(ctx context.Context, role domain.ReviewStage, page, pageSize int32) ([]domain.Partner, int32, error)
	// PartnershipEndDate is recomputed on demand so it always reflects the
	// current duration value; it is never stored.
	PartnershipEndDate(ctx context.Context, partnerID int32) (time.Time, error)
}

// RegisterUserInput carries a new account profile. Role is set only for
// reviewers; submitters leave it empty.
type RegisterUserInput struct {
	Name        string
	Email       string
	PhoneNumber string
	UserType    domain.UserType
	Role        domain.ReviewStage
}

type UserService interface {
	RegisterUser(ctx context.Context, in RegisterUserInput) (*domain.User, error)
}

type ActivityService interface {
	CreateActivity(ctx context.Context, partnerID int32, title, description string, assignedTo domain.ActivityAssignee, actorID int32) (*domain.PartnershipActivity, error)
	StartActivity(ctx context.Context, activityID, actorID int32) (*domain.PartnershipActivity, error)
	CompleteActivity(ctx context.Context, activityID, actorID int32) (*domain.PartnershipActivity, error)
	ListActivities(ctx context.Context, partnerID int32, role domain.ReviewStage) ([]domain.PartnershipActivity, error)
}

type EmailService interface {
	SendDecisionNotification(ctx context.Context, email, companyName string, stage domain.ReviewStage, decision domain.Decision, message string) error
	SendStageAssignmentNotification(ctx context.Context, email, companyName string, stage domain.ReviewStage) error
	SendPromotionNotification(ctx context.Context, email, companyName string) error
	SendSigningNotification(ctx context.Context, email, companyName string) error
	SendDeadlineReminder(ctx context.Context, email, activityTitle, companyName string, deadline time.Time) error
}
