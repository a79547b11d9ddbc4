package models

import (
	"time"
	"unicode/utf8"

	"gorm.io/gorm"
)

// MaxCommentLen is the maximum comment text length.
const MaxCommentLen = 500

// Comment is free text attached to exactly one post or one complaint.
// ParentID allows threading; controllers do not currently expose it beyond
// accepting the reference.
type Comment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"userId"`
	User        User       `gorm:"foreignKey:UserID" json:"user"`
	PostID      *uint      `gorm:"index" json:"postId,omitempty"`
	ComplaintID *uint      `gorm:"index" json:"complaintId,omitempty"`
	ParentID    *uint      `json:"parentId,omitempty"`
	Text        string     `gorm:"not null" json:"text"`
	IsActive    bool       `gorm:"not null;default:true" json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Validate enforces the comment invariants: non-empty bounded text and
// association with exactly one of post or complaint.
func (c *Comment) Validate() error {
	if c.Text == "" {
		return NewValidationError("Comment cannot be empty")
	}
	if utf8.RuneCountInString(c.Text) > MaxCommentLen {
		return NewValidationError("Comment cannot be more than 500 characters")
	}
	if c.PostID == nil && c.ComplaintID == nil {
		return NewValidationError("Comment must be associated with a post or complaint")
	}
	if c.PostID != nil && c.ComplaintID != nil {
		return NewValidationError("Comment cannot be associated with both post and complaint")
	}
	return nil
}

// BeforeSave runs Validate at persist time so the invariant holds for every
// caller, not just the API layer.
func (c *Comment) BeforeSave(_ *gorm.DB) error {
	return c.Validate()
}
