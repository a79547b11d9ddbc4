package repository

import (
	"context"

	"civicvoice/internal/cache"
	"civicvoice/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error)
	ListByComplaint(ctx context.Context, complaintID uint, limit, offset int) ([]*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	SoftDelete(ctx context.Context, id uint) error
}

// commentRepository implements CommentRepository
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts a comment and, for post comments, refreshes the post's
// stored comment count in the same transaction.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("User").Create(comment).Error; err != nil {
			return err
		}
		if comment.PostID != nil {
			return recountPostComments(tx, *comment.PostID)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if comment.PostID != nil {
		cache.InvalidatePost(ctx, *comment.PostID)
	}
	if comment.ComplaintID != nil {
		cache.InvalidateComplaint(ctx, *comment.ComplaintID)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ? AND is_active = ?", postID, true).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) ListByComplaint(ctx context.Context, complaintID uint, limit, offset int) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("complaint_id = ? AND is_active = ?", complaintID, true).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Omit("User").Save(comment).Error
}

// SoftDelete deactivates a comment and, for post comments, refreshes the
// post's stored comment count. The row itself is kept.
func (r *commentRepository) SoftDelete(ctx context.Context, id uint) error {
	var comment models.Comment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&comment, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Comment{}).Where("id = ?", id).Update("is_active", false).Error; err != nil {
			return err
		}
		if comment.PostID != nil {
			return recountPostComments(tx, *comment.PostID)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if comment.PostID != nil {
		cache.InvalidatePost(ctx, *comment.PostID)
	}
	if comment.ComplaintID != nil {
		cache.InvalidateComplaint(ctx, *comment.ComplaintID)
	}
	return nil
}

// recountPostComments recomputes the denormalized comment count from the
// active comment rows.
func recountPostComments(tx *gorm.DB, postID uint) error {
	var count int64
	if err := tx.Model(&models.Comment{}).
		Where("post_id = ? AND is_active = ?", postID, true).
		Count(&count).Error; err != nil {
		return err
	}
	return tx.Model(&models.Post{}).Where("id = ?", postID).
		Update("comment_count", count).Error
}
