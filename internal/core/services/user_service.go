package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lifeos-app/lifeos-backend/internal/core/domain"
	portsrepo "github.com/lifeos-app/lifeos-backend/internal/core/ports/repositories"
	portssvc "github.com/lifeos-app/lifeos-backend/internal/core/ports/services"
	"github.com/lifeos-app/lifeos-backend/internal/dto"
	"github.com/lifeos-app/lifeos-backend/internal/utils"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepository
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo portsrepo.UserRepository) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// UpdateProfile applies name/email/password changes and, when avatarURL is
// non-empty, replaces the stored avatar reference. Omitted fields keep their
// stored values.
func (s *userService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest, avatarURL string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil && *req.Email != "" {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		user.Email = &email
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = &hash
	}
	if avatarURL != "" {
		user.Avatar = avatarURL
	}

	user.UpdatedAt = time.Now()
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "profile updated", "user_id", userID)
	return user, nil
}

// DeleteAccount removes the user; tasks, habits, moods and push subscriptions
// cascade in the store.
func (s *userService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		return err
	}
	s.LogInfo(ctx, "account deleted", "user_id", userID)
	return nil
}
