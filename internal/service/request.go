package service

import (
	"context"

	"insa-partnership-backend/internal/apperr"
	"insa-partnership-backend/internal/domain"
	"insa-partnership-backend/internal/repository"
)

type requestService struct {
	reqRepo  repository.RequestRepository
	userRepo repository.UserRepository
}

func NewRequestService(
	reqRepo repository.RequestRepository,
	userRepo repository.UserRepository,
) RequestService {
	return &requestService{
		reqRepo:  reqRepo,
		userRepo: userRepo,
	}
}

// SubmitRequest creates a new partnership request. The request type comes
// from the submitter's profile and never changes afterwards.
func (s *requestService) SubmitRequest(ctx context.Context, submitterID int32, in SubmitRequestInput) (*domain.Request, error) {
	if in.CompanyDetails.Name == "" {
		return nil, apperr.InvalidInput("company_details.name", "company name is required")
	}

	submitter, err := s.userRepo.GetByID(ctx, submitterID)
	if err != nil {
		return nil, err
	}

	req := &domain.Request{
		SubmitterID:    submitterID,
		Type:           submitter.RequestTypeFor(),
		Status:         domain.RequestStatusPending,
		CurrentStage:   domain.StagePartnershipDivision,
		FrameworkType:  in.FrameworkType,
		Duration:       in.Duration,
		CompanyDetails: in.CompanyDetails,
		Attachments:    in.Attachments,
	}
	if err := s.reqRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// UpdateRequest is allowed while the request is pending or disapproved, and
// only by its submitter. Once review starts the engine owns the record.
/// Editing a disapproved request is the resubmission path: the status flips
// back to pending at the stage the disapproval reset it to, with the ledger
// and routing flags carried over.
func (s *requestService) UpdateRequest(ctx context.Context, submitterID, requestID int32, in SubmitRequestInput) (*domain.Request, error) {
	req, err := s.getOwnEditable(ctx, submitterID, requestID)
	if err != nil {
		return nil, err
	}

	if req.Status == domain.RequestStatusDisapproved {
		req.Status = domain.RequestStatusPending
	}

	if in.CompanyDetails.Name != "" {
		req.CompanyDetails = in.CompanyDetails
	}
	if in.FrameworkType != "" {
		req.FrameworkType = in.FrameworkType
	}
	if !in.Duration.IsZero() {
		req.Duration = in.Duration
	}
	if in.Attachments != nil {
		req.Attachments = in.Attachments
	}

	if err := s.reqRepo.Update(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

/// DeleteRequest removes a request the submitter still controls: pending, or
// disapproved and abandoned rather than resubmitted.
func (s *requestService) DeleteRequest(ctx context.Context, submitterID, requestID int32) error {
	if _, err := s.getOwnEditable(ctx, submitterID, requestID); err != nil {
		return err
	}
	return s.reqRepo.Delete(ctx, requestID)
}

func (s *requestService) ListMyRequests(ctx context.Context, submitterID int32, page, pageSize int32) ([]domain.Request, int32, error) {
	return s.reqRepo.ListBySubmitter(ctx, submitterID, page, pageSize)
}

func (s *requestService) getOwnEditable(ctx context.Context, submitterID, requestID int32) (*domain.Request, error) {
	req, err := s.reqRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.SubmitterID != submitterID {
		return nil, apperr.Forbidden("request belongs to another submitter")
	}
	if req.Status != domain.RequestStatusPending && req.Status != domain.RequestStatusDisapproved {
		return nil, apperr.Newf(apperr.KindInvalidState, "request is %s; only pending or disapproved requests can be edited", req.Status)
	}
	return req, nil
}
