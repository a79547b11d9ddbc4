// Package service contains the business logic between the HTTP handlers and
// the repositories.
package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"civicvoice/internal/middleware"
	"civicvoice/internal/models"
	"civicvoice/internal/observability"
	"civicvoice/internal/repository"
	"civicvoice/internal/voting"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 2000
	maxImages         = 5
)

type PostService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	Caller      models.Caller
	Title       string
	Description string
	Category    string
	Locality    string
	Address     string
	Images      []string
}

type ListPostsInput struct {
	Caller   models.Caller
	Locality string
	Category string
	UserID   uint
	Limit    int
	Offset   int
}

type UpdatePostInput struct {
	Caller      models.Caller
	PostID      uint
	Title       string
	Description string
	Category    string
	Images      []string
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if utf8.RuneCountInString(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 200 characters)")
	}
	if in.Description == "" {
		return nil, models.NewValidationError("Description is required")
	}
	if utf8.RuneCountInString(in.Description) > maxDescriptionLen {
		return nil, models.NewValidationError("Description too long (max 2000 characters)")
	}
	if in.Locality == "" {
		return nil, models.NewValidationError("Locality is required")
	}
	if len(in.Images) > maxImages {
		return nil, models.NewValidationError("Too many images (max 5)")
	}
	category, err := models.ParseCategory(in.Category)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:      in.Caller.ID,
		Title:       in.Title,
		Description: in.Description,
		Category:    category,
		Locality:    in.Locality,
		Address:     in.Address,
		Images:      in.Images,
		IsActive:    true,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, in.Caller.ID)
}

func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id, currentUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, err
	}
	if !post.IsActive {
		return nil, models.NewNotFoundError("Post", id)
	}
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, int64, error) {
	filter := repository.PostFilter{
		Locality: in.Locality,
		UserID:   in.UserID,
	}
	if in.Category != "" {
		category, err := models.ParseCategory(in.Category)
		if err != nil {
			return nil, 0, err
		}
		filter.Category = category
	}

	posts, err := s.postRepo.List(ctx, filter, in.Limit, in.Offset, in.Caller.ID)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.postRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.GetPost(ctx, in.PostID, in.Caller.ID)
	if err != nil {
		return nil, err
	}
	if post.UserID != in.Caller.ID && !in.Caller.IsAdmin() {
		return nil, models.NewForbiddenError("You can only edit your own posts")
	}

	if in.Title != "" {
		if utf8.RuneCountInString(in.Title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 200 characters)")
		}
		post.Title = in.Title
	}
	if in.Description != "" {
		if utf8.RuneCountInString(in.Description) > maxDescriptionLen {
			return nil, models.NewValidationError("Description too long (max 2000 characters)")
		}
		post.Description = in.Description
	}
	if in.Category != "" {
		category, err := models.ParseCategory(in.Category)
		if err != nil {
			return nil, err
		}
		post.Category = category
	}
	if in.Images != nil {
		if len(in.Images) > maxImages {
			return nil, models.NewValidationError("Too many images (max 5)")
		}
		post.Images = in.Images
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.GetPost(ctx, post.ID, in.Caller.ID)
}

// DeletePost deactivates a post. The row and its votes stay in place.
func (s *PostService) DeletePost(ctx context.Context, caller models.Caller, postID uint) error {
	post, err := s.GetPost(ctx, postID, caller.ID)
	if err != nil {
		return err
	}
	if post.UserID != caller.ID && !caller.IsAdmin() {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	return s.postRepo.SoftDelete(ctx, postID)
}

// Vote applies the caller's stance on a post and returns the fresh tally.
// Repeating an identical stance leaves the vote in place.
func (s *PostService) Vote(ctx context.Context, caller models.Caller, postID uint, stance string) (*models.VoteResult, error) {
	span, ctx := observability.NewSpan(ctx, "post.vote")
	defer span.End()
	span.AddAttributes(
		attribute.Int("post.id", int(postID)),
		attribute.String("vote.stance", stance),
	)

	st := voting.Stance(stance)
	if !st.Valid() {
		return nil, models.NewValidationError("Vote type must be 'upvote' or 'downvote'")
	}

	if _, err := s.GetPost(ctx, postID, caller.ID); err != nil {
		span.SetError(err)
		return nil, err
	}

	result, err := s.postRepo.CastVote(ctx, postID, caller.ID, st)
	if err != nil {
		span.SetError(err)
		middleware.VoteOperations.WithLabelValues("post", "error").Inc()
		return nil, err
	}
	middleware.VoteOperations.WithLabelValues("post", "ok").Inc()
	return result, nil
}

// PinPost marks or unmarks a post as pinned. Admin only.
func (s *PostService) PinPost(ctx context.Context, caller models.Caller, postID uint, pinned bool) (*models.Post, error) {
	if !caller.IsAdmin() {
		return nil, models.NewForbiddenError("Only admins can pin posts")
	}
	if _, err := s.GetPost(ctx, postID, caller.ID); err != nil {
		return nil, err
	}
	if err := s.postRepo.SetPinned(ctx, postID, pinned); err != nil {
		return nil, err
	}
	return s.GetPost(ctx, postID, caller.ID)
}
