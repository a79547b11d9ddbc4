package repository

import (
	"context"
	"fmt"

	"civicvoice/internal/cache"
	"civicvoice/internal/models"
	"civicvoice/internal/voting"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostFilter narrows post listings. Zero-valued fields are ignored.
type PostFilter struct {
	Locality string
	Category models.Category
	UserID   uint
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	List(ctx context.Context, filter PostFilter, limit, offset int, currentUserID uint) ([]*models.Post, error)
	Count(ctx context.Context, filter PostFilter) (int64, error)
	Update(ctx context.Context, post *models.Post) error
	SoftDelete(ctx context.Context, id uint) error
	SetPinned(ctx context.Context, id uint, pinned bool) error
	CastVote(ctx context.Context, postID, userID uint, stance voting.Stance) (*models.VoteResult, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Create(post).Error
	if err == nil {
		cache.InvalidatePostLists(ctx)
	}
	return err
}

// GetByID loads a post with its author and vote details. The anonymous view
// carries no per-viewer fields, so it is served cache-aside; logged-in reads
// include my_vote and always hit the database.
func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	load := func() (*models.Post, error) {
		var post models.Post
		err := r.applyVoteDetails(r.db.WithContext(ctx), currentUserID).
			Preload("User").
			First(&post, id).Error
		if err != nil {
			return nil, err
		}
		return &post, nil
	}
	if currentUserID != 0 {
		return load()
	}
	return cache.Aside(ctx, cache.PostKey(id), cache.PostTTL, load)
}

func (r *postRepository) List(ctx context.Context, filter PostFilter, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	load := func() ([]*models.Post, error) {
		var posts []*models.Post
		err := r.applyFilter(r.applyVoteDetails(r.db.WithContext(ctx), currentUserID), filter).
			Preload("User").
			Order("is_pinned DESC, created_at DESC").
			Limit(limit).
			Offset(offset).
			Find(&posts).Error
		return posts, err
	}
	if currentUserID != 0 {
		return load()
	}
	key := cache.PostsListKey(fmt.Sprintf("%s:%s:%d:%d:%d",
		filter.Locality, filter.Category, filter.UserID, limit, offset))
	return cache.Aside(ctx, key, cache.PostsListTTL, load)
}

func (r *postRepository) Count(ctx context.Context, filter PostFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.Post{}), filter).
		Count(&count).Error
	return count, err
}

// applyFilter narrows the query to active posts matching the filter.
func (r *postRepository) applyFilter(db *gorm.DB, filter PostFilter) *gorm.DB {
	db = db.Where("posts.is_active = ?", true)
	if filter.Locality != "" {
		db = db.Where("posts.locality = ?", filter.Locality)
	}
	if filter.Category != "" {
		db = db.Where("posts.category = ?", filter.Category)
	}
	if filter.UserID != 0 {
		db = db.Where("posts.user_id = ?", filter.UserID)
	}
	return db
}

// applyVoteDetails adds subqueries to fetch stance counts and the current
// user's vote in a single query.
func (r *postRepository) applyVoteDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM post_votes WHERE post_votes.post_id = posts.id AND post_votes.stance = 'upvote') as upvotes, " +
		"(SELECT COUNT(*) FROM post_votes WHERE post_votes.post_id = posts.id AND post_votes.stance = 'downvote') as downvotes"

	if currentUserID != 0 {
		return db.Select(selectQuery+", COALESCE((SELECT stance FROM post_votes WHERE post_votes.post_id = posts.id AND post_votes.user_id = ?), '') as my_vote", currentUserID)
	}

	return db.Select(selectQuery + ", '' as my_vote")
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Omit("User").Save(post).Error; err != nil {
		return err
	}
	cache.InvalidatePost(ctx, post.ID)
	cache.InvalidatePostLists(ctx)
	return nil
}

// SoftDelete deactivates a post and its comments. Rows are kept so vote and
// comment history remains queryable.
func (r *postRepository) SoftDelete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).Where("id = ?", id).Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.Comment{}).Where("post_id = ?", id).Update("is_active", false).Error
	})
	if err != nil {
		return err
	}
	cache.InvalidatePost(ctx, id)
	cache.InvalidatePostLists(ctx)
	return nil
}

func (r *postRepository) SetPinned(ctx context.Context, id uint, pinned bool) error {
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Update("is_pinned", pinned).Error
	if err != nil {
		return err
	}
	cache.InvalidatePost(ctx, id)
	cache.InvalidatePostLists(ctx)
	return nil
}

// CastVote applies a stance for one voter and returns the fresh tally. The
// post row is locked for the duration of the transaction so concurrent
// read-modify-write cycles serialize instead of interleaving. Repeating an
// identical stance is a no-op, not a toggle.
func (r *postRepository) CastVote(ctx context.Context, postID, userID uint, stance voting.Stance) (*models.VoteResult, error) {
	var result models.VoteResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&post, postID).Error; err != nil {
			return err
		}

		var upvoters, downvoters []uint
		if err := tx.Model(&models.PostVote{}).
			Where("post_id = ? AND stance = ?", postID, voting.StanceUpvote).
			Pluck("user_id", &upvoters).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.PostVote{}).
			Where("post_id = ? AND stance = ?", postID, voting.StanceDownvote).
			Pluck("user_id", &downvoters).Error; err != nil {
			return err
		}

		upvoters, downvoters = voting.Cast(upvoters, downvoters, userID, stance)

		// Sync the voter's row with the computed membership.
		if err := tx.Where("post_id = ? AND user_id = ?", postID, userID).
			Delete(&models.PostVote{}).Error; err != nil {
			return err
		}
		var newStance voting.Stance
		switch {
		case voting.Contains(upvoters, userID):
			newStance = voting.StanceUpvote
		case voting.Contains(downvoters, userID):
			newStance = voting.StanceDownvote
		}
		if newStance != "" {
			vote := models.PostVote{PostID: postID, UserID: userID, Stance: newStance}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
		}

		result = models.VoteResult{
			VoteCount: voting.Score(upvoters, downvoters),
			Upvotes:   len(upvoters),
			Downvotes: len(downvoters),
		}
		return tx.Model(&models.Post{}).Where("id = ?", postID).
			Update("vote_count", result.VoteCount).Error
	})
	if err != nil {
		return nil, err
	}
	cache.InvalidatePost(ctx, postID)
	cache.InvalidatePostLists(ctx)
	return &result, nil
}
