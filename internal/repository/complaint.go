package repository

import (
	"context"

	"civicvoice/internal/cache"
	"civicvoice/internal/models"
	"civicvoice/internal/voting"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ComplaintFilter narrows complaint listings. Zero-valued fields are ignored.
type ComplaintFilter struct {
	Locality     string
	Category     models.Category
	Status       models.Status
	Priority     models.Priority
	Department   models.Department
	UserID       uint
	AssignedToID uint
}

// ComplaintRepository defines the interface for complaint data operations
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *models.Complaint) error
	GetByID(ctx context.Context, id uint) (*models.Complaint, error)
	List(ctx context.Context, filter ComplaintFilter, limit, offset int) ([]*models.Complaint, error)
	Count(ctx context.Context, filter ComplaintFilter) (int64, error)
	Update(ctx context.Context, complaint *models.Complaint) error
	UpdateWithStatus(ctx context.Context, complaint *models.Complaint, change *models.StatusChange) error
	Delete(ctx context.Context, id uint) error
	ToggleVote(ctx context.Context, complaintID, userID uint) (*models.ComplaintVoteResult, error)
}

// complaintRepository implements ComplaintRepository
type complaintRepository struct {
	db *gorm.DB
}

// NewComplaintRepository creates a new complaint repository
func NewComplaintRepository(db *gorm.DB) ComplaintRepository {
	return &complaintRepository{db: db}
}

func (r *complaintRepository) Create(ctx context.Context, complaint *models.Complaint) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(complaint).Error
}

// GetByID loads a complaint with its author, assignee, and ordered status
// history. Complaint details carry no per-viewer fields, so the read is
// served cache-aside; every mutation path invalidates the key.
func (r *complaintRepository) GetByID(ctx context.Context, id uint) (*models.Complaint, error) {
	return cache.Aside(ctx, cache.ComplaintKey(id), cache.ComplaintTTL, func() (*models.Complaint, error) {
		var complaint models.Complaint
		err := r.applyVoteDetails(r.db.WithContext(ctx)).
			Preload("User").
			Preload("AssignedTo").
			Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
				return db.Order("status_changes.created_at ASC")
			}).
			Preload("StatusHistory.UpdatedBy").
			First(&complaint, id).Error
		if err != nil {
			return nil, err
		}
		return &complaint, nil
	})
}

func (r *complaintRepository) List(ctx context.Context, filter ComplaintFilter, limit, offset int) ([]*models.Complaint, error) {
	var complaints []*models.Complaint
	err := r.applyFilter(r.applyVoteDetails(r.db.WithContext(ctx)), filter).
		Preload("User").
		Preload("AssignedTo").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&complaints).Error
	return complaints, err
}

func (r *complaintRepository) Count(ctx context.Context, filter ComplaintFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.Complaint{}), filter).
		Count(&count).Error
	return count, err
}

func (r *complaintRepository) applyFilter(db *gorm.DB, filter ComplaintFilter) *gorm.DB {
	if filter.Locality != "" {
		db = db.Where("complaints.locality = ?", filter.Locality)
	}
	if filter.Category != "" {
		db = db.Where("complaints.category = ?", filter.Category)
	}
	if filter.Status != "" {
		db = db.Where("complaints.status = ?", filter.Status)
	}
	if filter.Priority != "" {
		db = db.Where("complaints.priority = ?", filter.Priority)
	}
	if filter.Department != "" {
		db = db.Where("complaints.department = ?", filter.Department)
	}
	if filter.UserID != 0 {
		db = db.Where("complaints.user_id = ?", filter.UserID)
	}
	if filter.AssignedToID != 0 {
		db = db.Where("complaints.assigned_to_id = ?", filter.AssignedToID)
	}
	return db
}

// applyVoteDetails adds a subquery to fetch the supporter count in a single query.
func (r *complaintRepository) applyVoteDetails(db *gorm.DB) *gorm.DB {
	return db.Select("complaints.*, " +
		"(SELECT COUNT(*) FROM complaint_votes WHERE complaint_votes.complaint_id = complaints.id) as upvotes")
}

func (r *complaintRepository) Update(ctx context.Context, complaint *models.Complaint) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(complaint).Error; err != nil {
		return err
	}
	cache.InvalidateComplaint(ctx, complaint.ID)
	return nil
}

// UpdateWithStatus persists a status transition: the mutated complaint and
// its new history entry are written in one transaction.
func (r *complaintRepository) UpdateWithStatus(ctx context.Context, complaint *models.Complaint, change *models.StatusChange) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(complaint).Error; err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(change).Error
	})
	if err != nil {
		return err
	}
	cache.InvalidateComplaint(ctx, complaint.ID)
	return nil
}

// Delete removes a complaint permanently along with its votes, status
// history, and comments.
func (r *complaintRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("complaint_id = ?", id).Delete(&models.ComplaintVote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("complaint_id = ?", id).Delete(&models.StatusChange{}).Error; err != nil {
			return err
		}
		if err := tx.Where("complaint_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Complaint{}, id).Error
	})
	if err != nil {
		return err
	}
	cache.InvalidateComplaint(ctx, id)
	return nil
}

// ToggleVote flips one user's support for a complaint and returns the fresh
// tally. The complaint row is locked for the duration of the transaction so
// concurrent toggles serialize instead of interleaving.
func (r *complaintRepository) ToggleVote(ctx context.Context, complaintID, userID uint) (*models.ComplaintVoteResult, error) {
	var result models.ComplaintVoteResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var complaint models.Complaint
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&complaint, complaintID).Error; err != nil {
			return err
		}

		var voters []uint
		if err := tx.Model(&models.ComplaintVote{}).
			Where("complaint_id = ?", complaintID).
			Pluck("user_id", &voters).Error; err != nil {
			return err
		}

		voters = voting.Toggle(voters, userID)

		if voting.Contains(voters, userID) {
			vote := models.ComplaintVote{ComplaintID: complaintID, UserID: userID}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("complaint_id = ? AND user_id = ?", complaintID, userID).
				Delete(&models.ComplaintVote{}).Error; err != nil {
				return err
			}
		}

		result = models.ComplaintVoteResult{
			VoteCount: len(voters),
			Upvotes:   len(voters),
		}
		return tx.Model(&models.Complaint{}).Where("id = ?", complaintID).
			Update("vote_count", result.VoteCount).Error
	})
	if err != nil {
		return nil, err
	}
	cache.InvalidateComplaint(ctx, complaintID)
	return &result, nil
}
