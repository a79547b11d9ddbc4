package service

import (
	"context"
	"errors"

	"civicvoice/internal/models"
	"civicvoice/internal/repository"

	"gorm.io/gorm"
)

type CommentService struct {
	commentRepo   repository.CommentRepository
	postRepo      repository.PostRepository
	complaintRepo repository.ComplaintRepository
}

type CreateCommentInput struct {
	Caller      models.Caller
	PostID      *uint
	ComplaintID *uint
	ParentID    *uint
	Text        string
}

type UpdateCommentInput struct {
	Caller    models.Caller
	CommentID uint
	Text      string
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	complaintRepo repository.ComplaintRepository,
) *CommentService {
	return &CommentService{
		commentRepo:   commentRepo,
		postRepo:      postRepo,
		complaintRepo: complaintRepo,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	comment := &models.Comment{
		UserID:      in.Caller.ID,
		PostID:      in.PostID,
		ComplaintID: in.ComplaintID,
		ParentID:    in.ParentID,
		Text:        in.Text,
		IsActive:    true,
	}
	if err := comment.Validate(); err != nil {
		return nil, err
	}

	// The parent must exist and, for posts, still be active.
	if in.PostID != nil {
		post, err := s.postRepo.GetByID(ctx, *in.PostID, 0)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewNotFoundError("Post", *in.PostID)
			}
			return nil, err
		}
		if !post.IsActive {
			return nil, models.NewNotFoundError("Post", *in.PostID)
		}
	}
	if in.ComplaintID != nil {
		if _, err := s.complaintRepo.GetByID(ctx, *in.ComplaintID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewNotFoundError("Complaint", *in.ComplaintID)
			}
			return nil, err
		}
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) ListPostComments(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID, limit, offset)
}

func (s *CommentService) ListComplaintComments(ctx context.Context, complaintID uint, limit, offset int) ([]*models.Comment, error) {
	return s.commentRepo.ListByComplaint(ctx, complaintID, limit, offset)
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.getComment(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != in.Caller.ID && !in.Caller.IsAdmin() {
		return nil, models.NewForbiddenError("You can only edit your own comments")
	}

	comment.Text = in.Text
	if err := comment.Validate(); err != nil {
		return nil, err
	}
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment deactivates a comment. The row stays in place.
func (s *CommentService) DeleteComment(ctx context.Context, caller models.Caller, commentID uint) error {
	comment, err := s.getComment(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != caller.ID && !caller.IsAdmin() {
		return models.NewForbiddenError("You can only delete your own comments")
	}
	return s.commentRepo.SoftDelete(ctx, commentID)
}

func (s *CommentService) getComment(ctx context.Context, id uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, err
	}
	if !comment.IsActive {
		return nil, models.NewNotFoundError("Comment", id)
	}
	return comment, nil
}
