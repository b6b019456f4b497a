package service

import (
	"context"
	"time"

	"insa-partnership-backend/internal/apperr"
	"insa-partnership-backend/internal/domain"
	"insa-partnership-backend/internal/repository"
	"insa-partnership-backend/internal/utils"
)

type partnerService struct {
	partnerRepo repository.PartnerRepository
	userRepo    repository.UserRepository
	emailSvc    EmailService
}

func NewPartnerService(
	partnerRepo repository.PartnerRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
) PartnerService {
	return &partnerService{
		partnerRepo: partnerRepo,
		userRepo:    userRepo,
		emailSvc:    emailSvc,
	}
}

// SignPartner marks the partnership agreement as signed. Only a general
// director may sign, and a partner is signed at most once; the signing date
// anchors all activity deadlines.
func (s *partnerService) SignPartner(ctx context.Context, partnerID, actorID int32) (*domain.Partner, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.StageGeneralDirector {
		return nil, apperr.Forbidden("only a general director may sign a partnership")
	}

	partner, err := s.partnerRepo.GetByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	if partner.IsSigned {
		return nil, apperr.New(apperr.KindInvalidState, "partner is already signed")
	}

	now := time.Now()
	partner.IsSigned = true
	partner.SignedAt = &now
	partner.SignedBy = &actorID
	if err := s.partnerRepo.Update(ctx, partner); err != nil {
		return nil, err
	}

	if partner.CompanyDetails.Email != "" {
		_ = s.emailSvc.SendSigningNotification(ctx, partner.CompanyDetails.Email, partner.CompanyDetails.Name)
	}
	return partner, nil
}

// SetPrivileges replaces the partner's privilege map. Only operational
// partnerships carry privileges, and the map must cover every reviewer role
// with a boolean.
func (s *partnerService) SetPrivileges(ctx context.Context, partnerID int32, privileges map[string]interface{}) (*domain.Partner, error) {
	partner, err := s.partnerRepo.GetByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	if partner.PartnershipType != domain.PartnershipTypeOperational {
		return nil, apperr.New(apperr.KindNotOperational, "privileges apply only to operational partnerships")
	}

	validated, err := validatePrivileges(privileges)
	if err != nil {
		return nil, err
	}

	partner.Privileges = validated
	if err := s.partnerRepo.Update(ctx, partner); err != nil {
		return nil, err
	}
	return partner, nil
}

func validatePrivileges(privileges map[string]interface{}) (map[string]bool, error) {
	validated := make(map[string]bool, len(domain.ReviewerRoles))
	for _, role := range domain.ReviewerRoles {
		raw, found := privileges[string(role)]
		if !found {
			return nil, apperr.Newf(apperr.KindInvalidPrivilege, "missing privilege entry for role %s", role)
		}
		allowed, ok := raw.(bool)
		if !ok {
			return nil, apperr.Newf(apperr.KindInvalidPrivilege, "privilege for role %s must be a boolean", role)
		}
		validated[string(role)] = allowed
	}
	if len(privileges) != len(domain.ReviewerRoles) {
		return nil, apperr.New(apperr.KindInvalidPrivilege, "privilege map contains unknown roles")
	}
	return validated, nil
}

func (s *partnerService) CheckAccess(ctx context.Context, partnerID int32, role domain.ReviewStage) (bool, error) {
	partner, err := s.partnerRepo.GetByID(ctx, partnerID)
	if err != nil {
		return false, err
	}
	return partner.CanAccess(role), nil
}

func (s *partnerService) GetPartner(ctx context.Context, partnerID int32, role domain.ReviewStage) (*domain.Partner, error) {
	partner, err := s.partnerRepo.GetByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	if !partner.CanAccess(role) {
		return nil, apperr.Forbidden("role is not privileged for this partnership")
	}
	return partner, nil
}

// ListPartners filters the listing through the privilege overlay, so a
// denied role never sees the operational partnerships it is excluded from.
// Filtering happens in the query itself, keeping the total accurate across
// pages.
func (s *partnerService) ListPartners(ctx context.Context, role domain.ReviewStage, page, pageSize int32) ([]domain.Partner, int32, error) {
	return s.partnerRepo.ListVisibleTo(ctx, role, page, pageSize)
}

func (s *partnerService) PartnershipEndDate(ctx context.Context, partnerID int32) (time.Time, error) {
	partner, err := s.partnerRepo.GetByID(ctx, partnerID)
	if err != nil {
		return time.Time{}, err
	}
	if !partner.IsSigned || partner.SignedAt == nil {
		return time.Time{}, apperr.New(apperr.KindPartnerNotSigned, "partnership has no signing date yet")
	}
	if partner.Duration.IsZero() {
		return time.Time{}, apperr.New(apperr.KindDurationMissing, "partnership has no duration")
	}
	return utils.AddDuration(*partner.SignedAt, partner.Duration), nil
}
