package service

import (
	"context"
	"time"

	"insa-partnership-backend/internal/apperr"
	"insa-partnership-backend/internal/domain"
	"insa-partnership-backend/internal/logger"
	"insa-partnership-backend/internal/repository"
	"insa-partnership-backend/internal/utils"
)

type workflowService struct {
	reqRepo     repository.RequestRepository
	partnerRepo repository.PartnerRepository
	userRepo    repository.UserRepository
	emailSvc    EmailService
}

func NewWorkflowService(
	reqRepo repository.RequestRepository,
	partnerRepo repository.PartnerRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
) WorkflowService {
	return &workflowService{
		reqRepo:     reqRepo,
		partnerRepo: partnerRepo,
		userRepo:    userRepo,
		emailSvc:    emailSvc,
	}
}

// SubmitReview applies one reviewer decision at any stage before the
// general-director stage. All guards run before any mutation; a failed guard
// leaves the persisted request untouched.
func (s *workflowService) SubmitReview(ctx context.Context, in SubmitReviewInput) (*domain.Request, error) {
	if !domain.ValidReviewStage(in.ActorRole) {
		return nil, apperr.InvalidInput("actor_role", "unknown reviewer role")
	}
	if in.ActorRole == domain.StageGeneralDirector {
		return nil, apperr.New(apperr.KindWrongStage, "general-director decisions go through the general-director endpoint")
	}
	if in.Decision != domain.DecisionApprove && in.Decision != domain.DecisionDisapprove && in.Decision != domain.DecisionForward {
		return nil, apperr.InvalidInput("decision", "unknown decision")
	}

	req, err := s.reqRepo.GetByID(ctx, in.RequestID)
	if err != nil {
		return nil, err
	}
	if req.Status.Terminal() {
		return nil, apperr.Newf(apperr.KindAlreadyTerminal, "request %d is already %s", req.ID, req.Status)
	}
	if req.CurrentStage != in.ActorRole {
		return nil, apperr.Newf(apperr.KindWrongStage, "request %d is waiting on %s, not %s", req.ID, req.CurrentStage, in.ActorRole)
	}

	// The routing decision is captured exactly once, at the entry stage.
	// Later stages cannot alter the route, so a reviewer downstream cannot
	// silently reroute a request others approved under a different path.
	if req.CurrentStage == domain.StagePartnershipDivision && !req.FlagsSet {
		if in.Decision != domain.DecisionDisapprove {
			if in.Flags == nil {
				return nil, apperr.InvalidInput("flags", "routing flags are required at the partnership-division stage")
			}
			req.Flags = domain.CaptureRoutingFlags(in.Flags.IsLawServiceRelated, in.Flags.IsLawResearchRelated, in.Flags.ForDirector)
			req.FlagsSet = true
		}
	}

	// Classification fields are carried to the eventual partner; they are
	// set during review at the entry stage.
	if req.CurrentStage == domain.StagePartnershipDivision {
		if in.PartnershipType != "" {
			req.PartnershipType = in.PartnershipType
		}
		if in.FrameworkType != "" {
			req.FrameworkType = in.FrameworkType
		}
	}

	// Record the decision against the stage being left, before advancing.
	req.AppendApproval(domain.Approval{
		Stage:       req.CurrentStage,
		ApprovedBy:  in.ActorID,
		Decision:    in.Decision,
		Message:     in.Message,
		Attachments: normalizeAttachments(in.Attachments),
		Date:        time.Now(),
	})

	switch in.Decision {
	case domain.DecisionDisapprove:
		// Kick back to start: control returns to the originating role for
		// resubmission.
		req.Status = domain.RequestStatusDisapproved
		req.CurrentStage = domain.StagePartnershipDivision
	default:
		next, ok := req.Flags.NextStage(req.CurrentStage)
		if !ok {
			return nil, apperr.Newf(apperr.KindInvalidState, "no stage follows %s", req.CurrentStage)
		}
		req.CurrentStage = next
		req.Status = domain.RequestStatusInReview
	}

	if err := s.reqRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	s.notifyDecision(ctx, req, in.Decision, in.Message)
	return req, nil
}

// DecideGeneralDirector is the terminal counting decision. Guards run in a
// fixed order; each is a hard rejection leaving the request unchanged.
func (s *workflowService) DecideGeneralDirector(ctx context.Context, requestID, actorID int32, decision domain.Decision, message string) (*domain.Request, *domain.Partner, error) {
	req, err := s.reqRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, nil, err
	}

	if decision == domain.DecisionDisapprove {
		if req.Status.Terminal() {
			return nil, nil, apperr.Newf(apperr.KindAlreadyTerminal, "request %d is already %s", req.ID, req.Status)
		}
		if req.CurrentStage != domain.StageGeneralDirector {
			return nil, nil, apperr.Newf(apperr.KindInvalidState, "request %d is waiting on %s", req.ID, req.CurrentStage)
		}
		req.AppendApproval(domain.Approval{
			Stage:      domain.StageGeneralDirector,
			ApprovedBy: actorID,
			Decision:   domain.DecisionDisapprove,
			Message:    message,
			Date:       time.Now(),
		})
		req.Status = domain.RequestStatusDisapproved
		req.CurrentStage = domain.StagePartnershipDivision
		if err := s.reqRepo.Update(ctx, req); err != nil {
			return nil, nil, err
		}
		s.notifyDecision(ctx, req, decision, message)
		return req, nil, nil
	}

	if decision != domain.DecisionApprove {
		return nil, nil, apperr.InvalidInput("decision", "general director may approve or disapprove")
	}

	// Idempotency guards, in order.
	if req.Status == domain.RequestStatusApproved {
		return nil, nil, apperr.New(apperr.KindAlreadyApproved, "request is already approved")
	}
	if req.Status.Terminal() {
		return nil, nil, apperr.Newf(apperr.KindAlreadyTerminal, "request %d is already %s", req.ID, req.Status)
	}
	if req.CurrentStage != domain.StageGeneralDirector {
		return nil, nil, apperr.Newf(apperr.KindInvalidState, "request %d is waiting on %s", req.ID, req.CurrentStage)
	}
	anyGD, sameGD := req.HasStageApproval(domain.StageGeneralDirector, actorID)
	if sameGD {
		return nil, nil, apperr.New(apperr.KindDuplicateApprover, "you already approved this request")
	}
	if anyGD {
		return nil, nil, apperr.New(apperr.KindAlreadyApproved, "request was already approved by another general director")
	}

	req.AppendApproval(domain.Approval{
		Stage:      domain.StageGeneralDirector,
		ApprovedBy: actorID,
		Decision:   domain.DecisionApprove,
		Message:    message,
		Date:       time.Now(),
	})

	required := req.Flags.RequiredApprovals()
	if req.ApproveCount() < required {
		// Threshold not yet met; the ledger entry is still recorded.
		if err := s.reqRepo.Update(ctx, req); err != nil {
			return nil, nil, err
		}
		return req, nil, nil
	}

	// Threshold met: promote. The duplicate guard runs before any write;
	// the CAS on the request admits a single winner under concurrent
	// approvals, and the unique index on partners.request_id backs it up.
	// Approval and partner insert commit together, so a failed insert
	// never strands a durable approved request without a partner.
	existing, err := s.partnerRepo.GetByRequestID(ctx, req.ID)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, apperr.Conflict("partner already exists for this request")
	}

	req.Status = domain.RequestStatusApproved
	partner := buildPartnerSnapshot(req)
	if err := s.reqRepo.ApproveAndPromote(ctx, req, partner); err != nil {
		return nil, nil, err
	}

	logger.Info("Request approved and promoted to partner",
		"request_id", req.ID, "partner_id", partner.ID, "approvals", req.ApproveCount(), "required", required)

	s.notifyPromotion(ctx, req)
	return req, partner, nil
}

func (s *workflowService) GetRequest(ctx context.Context, id int32) (*domain.Request, error) {
	return s.reqRepo.GetByID(ctx, id)
}

func (s *workflowService) ListByStage(ctx context.Context, stage domain.ReviewStage, page, pageSize int32) ([]domain.Request, int32, error) {
	if !domain.ValidReviewStage(stage) {
		return nil, 0, apperr.InvalidInput("stage", "unknown review stage")
	}
	return s.reqRepo.ListByStage(ctx, stage, page, pageSize)
}

func (s *workflowService) ApprovalHistory(ctx context.Context, requestID int32) ([]domain.Approval, error) {
	req, err := s.reqRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return req.Approvals, nil
}

// buildPartnerSnapshot copies the request into a new active, unsigned
// partner. Ledger attachments across all stages are flattened, normalized to
// bare filenames.
func buildPartnerSnapshot(req *domain.Request) *domain.Partner {
	var attachments []domain.ApprovalAttachment
	for _, a := range req.Approvals {
		for _, att := range a.Attachments {
			attachments = append(attachments, domain.ApprovalAttachment{
				FileName:   utils.NormalizeFileName(att.Path),
				ApprovedBy: a.ApprovedBy,
				Stage:      a.Stage,
				Date:       a.Date,
			})
		}
	}

	return &domain.Partner{
		RequestID:           req.ID,
		CompanyDetails:      req.CompanyDetails,
		FrameworkType:       req.FrameworkType,
		PartnershipType:     req.PartnershipType,
		Duration:            req.Duration,
		ApprovalAttachments: attachments,
		Status:              domain.PartnerStatusActive,
		IsSigned:            false,
	}
}

func normalizeAttachments(atts []domain.Attachment) []domain.Attachment {
	if len(atts) == 0 {
		return nil
	}
	out := make([]domain.Attachment, len(atts))
	for i, a := range atts {
		a.Path = utils.NormalizeFileName(a.Path)
		out[i] = a
	}
	return out
}

// notifyDecision emails the submitter about the outcome and, when the
// request advanced, the reviewers now holding it. Best-effort only.
func (s *workflowService) notifyDecision(ctx context.Context, req *domain.Request, decision domain.Decision, message string) {
	if submitter, err := s.userRepo.GetByID(ctx, req.SubmitterID); err == nil {
		_ = s.emailSvc.SendDecisionNotification(ctx, submitter.Email, req.CompanyDetails.Name, req.CurrentStage, decision, message)
	}
	if req.Status.Terminal() {
		return
	}
	reviewers, err := s.userRepo.ListByRole(ctx, req.CurrentStage)
	if err != nil {
		logger.Warn("Could not list reviewers for stage notification", "stage", req.CurrentStage, "error", err)
		return
	}
	for _, rv := range reviewers {
		_ = s.emailSvc.SendStageAssignmentNotification(ctx, rv.Email, req.CompanyDetails.Name, req.CurrentStage)
	}
}

func (s *workflowService) notifyPromotion(ctx context.Context, req *domain.Request) {
	if submitter, err := s.userRepo.GetByID(ctx, req.SubmitterID); err == nil {
		_ = s.emailSvc.SendPromotionNotification(ctx, submitter.Email, req.CompanyDetails.Name)
	}
	if req.CompanyDetails.Email != "" {
		_ = s.emailSvc.SendPromotionNotification(ctx, req.CompanyDetails.Email, req.CompanyDetails.Name)
	}
}
