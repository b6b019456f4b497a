package service

import (
	"context"
	"strings"

	"insa-partnership-backend/internal/apperr"
	"insa-partnership-backend/internal/domain"
	"insa-partnership-backend/internal/logger"
	"insa-partnership-backend/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// RegisterUser creates an account. Email is the login identity and must be
// unique; a non-empty role must be one of the reviewer roles.
func (s *userService) RegisterUser(ctx context.Context, in RegisterUserInput) (*domain.User, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Name == "" {
		return nil, apperr.InvalidInput("name", "name is required")
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return nil, apperr.InvalidInput("email", "a valid email address is required")
	}
	if in.UserType != domain.UserTypeInternal && in.UserType != domain.UserTypeExternal {
		return nil, apperr.InvalidInput("user_type", "must be INTERNAL or EXTERNAL")
	}
	if in.Role != "" && !domain.ValidReviewStage(in.Role) {
		return nil, apperr.InvalidInput("role", "unknown reviewer role")
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil && !apperr.IsKind(err, apperr.KindNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("a user with this email already exists")
	}

	user := &domain.User{
		Name:        in.Name,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		UserType:    in.UserType,
		Role:        in.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "User registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}
