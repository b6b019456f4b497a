package repository

import (
	"context"

	"insa-partnership-backend/internal/domain"
)

type RequestRepository interface {
	Create(ctx context.Context, req *domain.Request) error
	GetByID(ctx context.Context, id int32) (*domain.Request, error)
	// Update compares-and-swaps on (id, revision) and increments the
	// revision. A stale revision yields apperr.Conflict.
	Update(ctx context.Context, req *domain.Request) error
	// ApproveAndPromote persists the approved request and inserts its
	// partner in one transaction, so a failed insert never leaves a
	// durable approved request without a partner. Same CAS rules as
	// Update; a duplicate partner yields apperr.Conflict.
	ApproveAndPromote(ctx context.Context, req *domain.Request, partner *domain.Partner) error
	Delete(ctx context.Context, id int32) error
	ListByStage(ctx context.Context, stage domain.ReviewStage, page, pageSize int32) ([]domain.Request, int32, error)
	ListBySubmitter(ctx context.Context, submitterID int32, page, pageSize int32) ([]domain.Request, int32, error)
}

type PartnerRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Partner, error)
	// GetByRequestID returns (nil, nil) when no partner references the
	// request. Promotion uses this as its duplicate guard.
	GetByRequestID(ctx context.Context, requestID int32) (*domain.Partner, error)
	Update(ctx context.Context, p *domain.Partner) error
	List(ctx context.Context, page, pageSize int32) ([]domain.Partner, int32, error)
	// ListVisibleTo filters the privilege overlay in SQL so both the page
	// and the total reflect what the role may see.
	ListVisibleTo(ctx context.Context, role domain.ReviewStage, page, pageSize int32) ([]domain.Partner, int32, error)
}

type ActivityRepository interface {
	Create(ctx context.Context, a *domain.PartnershipActivity) error
	GetByID(ctx context.Context, id int32) (*domain.PartnershipActivity, error)
	Update(ctx context.Context, a *domain.PartnershipActivity) error
	ListByPartner(ctx context.Context, partnerID int32) ([]domain.PartnershipActivity, error)
	ListDueWithin(ctx context.Context, days int) ([]domain.PartnershipActivity, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListByRole(ctx context.Context, role domain.ReviewStage) ([]domain.User, error)
}
