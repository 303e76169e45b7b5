package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	commonerrors "github.com/WooodHead/everpost-backend/internal/common/errors"
	"github.com/WooodHead/everpost-backend/internal/common/logger"
	"github.com/WooodHead/everpost-backend/internal/common/validation"
	"github.com/WooodHead/everpost-backend/internal/user/domain"
	userrepo "github.com/WooodHead/everpost-backend/internal/user/repository"
)

var ErrValidationProfileImage = commonerrors.NewValidationError(
	"VALIDATION_PROFILE_IMAGE",
	"profileImage must be an absolute URL",
)

type UpdateProfileInput struct {
	Username     *string
	Email        *string
	ProfileImage *string
}

type profileRules struct {
	Username     *string `validate:"omitnil,max=64"`
	Email        *string `validate:"omitnil,email,max=255"`
	ProfileImage *string `validate:"omitnil,url,max=2048"`
}

type Service struct {
	repo userrepo.Repository
	log  *logger.Logger
}

func NewService(repo userrepo.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) GetByID(ctx context.Context, id int64) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return domain.User{}, commonerrors.ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// UpdateProfile applies the non-nil fields of input. An empty input is a
// read.
func (s *Service) UpdateProfile(ctx context.Context, id int64, input UpdateProfileInput) (domain.User, error) {
	if input.Email != nil {
		trimmed := strings.TrimSpace(*input.Email)
		input.Email = &trimmed
	}

	if err := validateProfile(input); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": id,
			"action":  "profile_update_validation_failed",
		}).Warnf("profile update validation failed: %v", err)
		return domain.User{}, err
	}

	update := domain.ProfileUpdate{
		Username:     input.Username,
		Email:        input.Email,
		ProfileImage: input.ProfileImage,
	}
	if update.IsEmpty() {
		return s.GetByID(ctx, id)
	}

	user, err := s.repo.Update(ctx, id, update)
	if err != nil {
		switch {
		case errors.Is(err, userrepo.ErrUserNotFound):
			return domain.User{}, commonerrors.ErrUserNotFound
		case errors.Is(err, userrepo.ErrEmailAlreadyExists):
			return domain.User{}, commonerrors.ErrEmailTaken
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id": id,
			"action":  "profile_update_failed",
		}).Errorf("profile update failed: %v", err)
		return domain.User{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": id,
		"action":  "profile_updated",
	}).Info("profile updated")
	return user, nil
}

// Delete removes the user; credentials and posts go with it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return commonerrors.ErrUserNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id": id,
			"action":  "user_delete_failed",
		}).Errorf("user delete failed: %v", err)
		return err
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": id,
		"action":  "user_deleted",
	}).Info("user deleted")
	return nil
}

func validateProfile(input UpdateProfileInput) error {
	fe, err := validation.Struct(profileRules{
		Username:     input.Username,
		Email:        input.Email,
		ProfileImage: input.ProfileImage,
	})
	if err != nil {
		return fmt.Errorf("validate profile: %w", err)
	}
	if fe == nil {
		return nil
	}
	switch fe.Field {
	case "Username":
		return commonerrors.ErrValidationUsernameLength
	case "Email":
		return commonerrors.ErrValidationEmail
	default:
		return ErrValidationProfileImage
	}
}
