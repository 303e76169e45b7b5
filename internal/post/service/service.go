package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/WooodHead/everpost-backend/internal/common/constants"
	commonerrors "github.com/WooodHead/everpost-backend/internal/common/errors"
	"github.com/WooodHead/everpost-backend/internal/common/logger"
	"github.com/WooodHead/everpost-backend/internal/common/validation"
	"github.com/WooodHead/everpost-backend/internal/observability/metrics"
	"github.com/WooodHead/everpost-backend/internal/post/domain"
	postrepo "github.com/WooodHead/everpost-backend/internal/post/repository"
)

var (
	ErrPostNotFound = commonerrors.NewNotFoundError("POST_NOT_FOUND", "Post not found")

	ErrValidationPage = commonerrors.NewValidationError(
		"VALIDATION_PAGE",
		"page is out of range",
	)

	ErrValidationTitle = commonerrors.NewValidationError(
		"VALIDATION_TITLE_LENGTH",
		"title must be between 1 and 512 characters",
	)

	ErrValidationContent = commonerrors.NewValidationError(
		"VALIDATION_CONTENT_LENGTH",
		"content must be between 1 and 65535 characters",
	)

	ErrValidationFileName = commonerrors.NewValidationError(
		"VALIDATION_FILE_NAME",
		"name must be between 1 and 255 characters",
	)

	ErrValidationFileURL = commonerrors.NewValidationError(
		"VALIDATION_FILE_URL",
		"url must be an absolute URL",
	)

	ErrNotPostOwner = commonerrors.NewForbiddenError(
		"NOT_POST_OWNER",
		"only the author can attach files to a post",
	)
)

type CreatePostInput struct {
	Title   string
	Content string
}

type AttachFileInput struct {
	Name string
	URL  string
}

type postRules struct {
	Title   string `validate:"min=1,max=512"`
	Content string `validate:"min=1,max=65535"`
}

type fileRules struct {
	Name string `validate:"min=1,max=255"`
	URL  string `validate:"required,url"`
}

type Service struct {
	repo postrepo.Repository
	log  *logger.Logger
}

func NewService(repo postrepo.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// ListByUser pages through a user's posts. size falls back to the default
// when zero and is capped; page is 1-based and 0 means the first page. A page
// whose offset would pass MaxInt32 is rejected before it reaches the query.
func (s *Service) ListByUser(ctx context.Context, userID int64, page, size int) (domain.PostPage, error) {
	if size <= 0 {
		size = constants.DefaultPageSize
	}
	if size > constants.MaxPageSize {
		size = constants.MaxPageSize
	}
	offset := 0
	if page > 0 {
		if page-1 > math.MaxInt32/size {
			return domain.PostPage{}, ErrValidationPage
		}
		offset = (page - 1) * size
	}

	posts, total, err := s.repo.ListByUser(ctx, userID, offset, size)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": userID,
			"action":  "list_posts_failed",
		}).Errorf("list posts failed: %v", err)
		return domain.PostPage{}, err
	}

	return domain.PostPage{
		Meta: domain.PageMeta{
			Page:     page,
			Count:    total,
			MaxCount: size,
		},
		Documents: posts,
	}, nil
}

func (s *Service) Create(ctx context.Context, userID int64, input CreatePostInput) (domain.Post, error) {
	fe, err := validation.Struct(postRules(input))
	if err != nil {
		return domain.Post{}, fmt.Errorf("validate post: %w", err)
	}
	if fe != nil {
		if fe.Field == "Title" {
			return domain.Post{}, ErrValidationTitle
		}
		return domain.Post{}, ErrValidationContent
	}

	post, err := s.repo.Create(ctx, userID, input.Title, input.Content)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": userID,
			"action":  "create_post_failed",
		}).Errorf("create post failed: %v", err)
		return domain.Post{}, err
	}

	metrics.PostsCreated.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": userID,
		"post_id": post.ID,
		"action":  "post_created",
	}).Info("post created")
	return post, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (domain.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, postrepo.ErrPostNotFound) {
			return domain.Post{}, ErrPostNotFound
		}
		return domain.Post{}, err
	}
	return post, nil
}

// ListFileResources is the only way to load a post's attachments.
func (s *Service) ListFileResources(ctx context.Context, postID int64) ([]domain.FileResource, error) {
	if _, err := s.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.repo.ListFileResources(ctx, postID)
}

func (s *Service) AttachFileResource(ctx context.Context, userID, postID int64, input AttachFileInput) (domain.FileResource, error) {
	fe, err := validation.Struct(fileRules(input))
	if err != nil {
		return domain.FileResource{}, fmt.Errorf("validate file resource: %w", err)
	}
	if fe != nil {
		if fe.Field == "Name" {
			return domain.FileResource{}, ErrValidationFileName
		}
		return domain.FileResource{}, ErrValidationFileURL
	}

	post, err := s.GetByID(ctx, postID)
	if err != nil {
		return domain.FileResource{}, err
	}
	if post.UserID != userID {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": userID,
			"post_id": postID,
			"action":  "attach_file_forbidden",
		}).Warn("attach file rejected: caller is not the author")
		return domain.FileResource{}, ErrNotPostOwner
	}

	file, err := s.repo.CreateFileResource(ctx, postID, input.Name, input.URL)
	if err != nil {
		return domain.FileResource{}, err
	}

	metrics.FileResourcesAttached.Inc()
	return file, nil
}
