package service

import (
	"context"
	"time"

	"insa-partnership-backend/internal/apperr"
	"insa-partnership-backend/internal/domain"
	"insa-partnership-backend/internal/repository"
	"insa-partnership-backend/internal/utils"
)

type activityService struct {
	activityRepo repository.ActivityRepository
	partnerRepo  repository.PartnerRepository
}

func NewActivityService(
	activityRepo repository.ActivityRepository,
	partnerRepo repository.PartnerRepository,
) ActivityService {
	return &activityService{
		activityRepo: activityRepo,
		partnerRepo:  partnerRepo,
	}
}

// CreateActivity opens a task against a signed partner. The deadline is the
// signing date plus the partnership duration.
func (s *activityService) CreateActivity(ctx context.Context, partnerID int32, title, description string, assignedTo domain.ActivityAssignee, actorID int32) (*domain.PartnershipActivity, error) {
	if title == "" {
		return nil, apperr.InvalidInput("title", "title is required")
	}
	if !domain.ValidActivityAssignee(assignedTo) {
		return nil, apperr.InvalidInput("assigned_to", "must be PARTNER, INSA or BOTH")
	}

	partner, err := s.partnerRepo.GetByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	if !partner.IsSigned || partner.SignedAt == nil {
		return nil, apperr.New(apperr.KindPartnerNotSigned, "activities require a signed partnership")
	}
	if partner.Duration.IsZero() {
		return nil, apperr.New(apperr.KindDurationMissing, "partnership has no duration to derive a deadline from")
	}

	activity := &domain.PartnershipActivity{
		PartnerID:   partnerID,
		Title:       title,
		Description: description,
		AssignedTo:  assignedTo,
		Status:      domain.ActivityStatusPending,
		Deadline:    utils.AddDuration(*partner.SignedAt, partner.Duration),
		CreatedBy:   actorID,
	}
	if err := s.activityRepo.Create(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *activityService) StartActivity(ctx context.Context, activityID, actorID int32) (*domain.PartnershipActivity, error) {
	activity, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if activity.Status != domain.ActivityStatusPending {
		return nil, apperr.Newf(apperr.KindInvalidState, "activity is %s, not pending", activity.Status)
	}
	activity.Status = domain.ActivityStatusInProgress
	if err := s.activityRepo.Update(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *activityService) CompleteActivity(ctx context.Context, activityID, actorID int32) (*domain.PartnershipActivity, error) {
	activity, err := s.activityRepo.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if activity.Status == domain.ActivityStatusCompleted {
		return nil, apperr.New(apperr.KindInvalidState, "activity is already completed")
	}
	now := time.Now()
	activity.Status = domain.ActivityStatusCompleted
	activity.CompletedAt = &now
	if err := s.activityRepo.Update(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

// ListActivities applies the partner's privilege overlay before exposing any
// partner-scoped sub-resource.
func (s *activityService) ListActivities(ctx context.Context, partnerID int32, role domain.ReviewStage) ([]domain.PartnershipActivity, error) {
	partner, err := s.partnerRepo.GetByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	if !partner.CanAccess(role) {
		return nil, apperr.Forbidden("role is not privileged for this partnership")
	}
	return s.activityRepo.ListByPartner(ctx, partnerID)
}
