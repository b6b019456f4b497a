package service

import (
	"context"
	"time"

	"insa-partnership-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockRequestRepo
type MockRequestRepo struct {
	mock.Mock
}

func (m *MockRequestRepo) Create(ctx context.Context, req *domain.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockRequestRepo) GetByID(ctx context.Context, id int32) (*domain.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}
func (m *MockRequestRepo) Update(ctx context.Context, req *domain.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockRequestRepo) ApproveAndPromote(ctx context.Context, req *domain.Request, partner *domain.Partner) error {
	args := m.Called(ctx, req, partner)
	return args.Error(0)
}
func (m *MockRequestRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockRequestRepo) ListByStage(ctx context.Context, stage domain.ReviewStage, page, pageSize int32) ([]domain.Request, int32, error) {
	args := m.Called(ctx, stage, page, pageSize)
	return args.Get(0).([]domain.Request), args.Get(1).(int32), args.Error(2)
}
func (m *MockRequestRepo) ListBySubmitter(ctx context.Context, submitterID int32, page, pageSize int32) ([]domain.Request, int32, error) {
	args := m.Called(ctx, submitterID, page, pageSize)
	return args.Get(0).([]domain.Request), args.Get(1).(int32), args.Error(2)
}

// MockPartnerRepo
type MockPartnerRepo struct {
	mock.Mock
}

func (m *MockPartnerRepo) GetByID(ctx context.Context, id int32) (*domain.Partner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Partner), args.Error(1)
}
func (m *MockPartnerRepo) GetByRequestID(ctx context.Context, requestID int32) (*domain.Partner, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Partner), args.Error(1)
}
func (m *MockPartnerRepo) Update(ctx context.Context, p *domain.Partner) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPartnerRepo) List(ctx context.Context, page, pageSize int32) ([]domain.Partner, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Partner), args.Get(1).(int32), args.Error(2)
}
func (m *MockPartnerRepo) ListVisibleTo(ctx context.Context, role domain.ReviewStage, page, pageSize int32) ([]domain.Partner, int32, error) {
	args := m.Called(ctx, role, page, pageSize)
	return args.Get(0).([]domain.Partner), args.Get(1).(int32), args.Error(2)
}

// MockActivityRepo
type MockActivityRepo struct {
	mock.Mock
}

func (m *MockActivityRepo) Create(ctx context.Context, a *domain.PartnershipActivity) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockActivityRepo) GetByID(ctx context.Context, id int32) (*domain.PartnershipActivity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PartnershipActivity), args.Error(1)
}
func (m *MockActivityRepo) Update(ctx context.Context, a *domain.PartnershipActivity) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockActivityRepo) ListByPartner(ctx context.Context, partnerID int32) ([]domain.PartnershipActivity, error) {
	args := m.Called(ctx, partnerID)
	return args.Get(0).([]domain.PartnershipActivity), args.Error(1)
}
func (m *MockActivityRepo) ListDueWithin(ctx context.Context, days int) ([]domain.PartnershipActivity, error) {
	args := m.Called(ctx, days)
	return args.Get(0).([]domain.PartnershipActivity), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) ListByRole(ctx context.Context, role domain.ReviewStage) ([]domain.User, error) {
	args := m.Called(ctx, role)
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendDecisionNotification(ctx context.Context, email, companyName string, stage domain.ReviewStage, decision domain.Decision, message string) error {
	args := m.Called(ctx, email, companyName, stage, decision, message)
	return args.Error(0)
}
func (m *MockEmailService) SendStageAssignmentNotification(ctx context.Context, email, companyName string, stage domain.ReviewStage) error {
	args := m.Called(ctx, email, companyName, stage)
	return args.Error(0)
}
func (m *MockEmailService) SendPromotionNotification(ctx context.Context, email, companyName string) error {
	args := m.Called(ctx, email, companyName)
	return args.Error(0)
}
func (m *MockEmailService) SendSigningNotification(ctx context.Context, email, companyName string) error {
	args := m.Called(ctx, email, companyName)
	return args.Error(0)
}
func (m *MockEmailService) SendDeadlineReminder(ctx context.Context, email, activityTitle, companyName string, deadline time.Time) error {
	args := m.Called(ctx, email, activityTitle, companyName, deadline)
	return args.Error(0)
}
