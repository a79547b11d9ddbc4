package models

import (
	"fmt"
	"time"

	"civicvoice/internal/voting"
)

// Category classifies posts and complaints by civic concern.
type Category string

const (
	CategoryHealth         Category = "Health"
	CategoryEducation      Category = "Education"
	CategoryInfrastructure Category = "Infrastructure"
	CategoryEnvironment    Category = "Environment"
	CategorySafety         Category = "Safety"
	CategorySanitation     Category = "Sanitation"
	CategoryWater          Category = "Water"
	CategoryElectricity    Category = "Electricity"
	CategoryTransportation Category = "Transportation"
	CategoryOther          Category = "Other"
)

// Valid reports whether c is a recognized category.
func (c Category) Valid() bool {
	switch c {
	case CategoryHealth, CategoryEducation, CategoryInfrastructure,
		CategoryEnvironment, CategorySafety, CategorySanitation,
		CategoryWater, CategoryElectricity, CategoryTransportation,
		CategoryOther:
		return true
	}
	return false
}

// ParseCategory converts s into a Category, failing on unknown values.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", NewValidationError(fmt.Sprintf("Invalid category %q", s))
	}
	return c, nil
}

// Post is a civic issue raised by a user for public discussion and voting.
//
// VoteCount and CommentCount are denormalized: every vote or comment mutation
// recomputes and stores them. Upvotes, Downvotes and MyVote are computed at
// query time from the post_votes table.
type Post struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"userId"`
	User         User      `gorm:"foreignKey:UserID" json:"user"`
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	Category     Category  `gorm:"type:varchar(32);not null;index" json:"category"`
	Locality     string    `gorm:"not null;index" json:"locality"`
	Address      string    `json:"address,omitempty"`
	Images       []string  `gorm:"serializer:json" json:"images"`
	VoteCount    int       `gorm:"not null;default:0" json:"voteCount"`
	CommentCount int       `gorm:"not null;default:0" json:"commentCount"`
	IsPinned     bool      `gorm:"not null;default:false" json:"isPinned"`
	IsActive     bool      `gorm:"not null;default:true" json:"isActive"`
	// Upvotes and Downvotes are not persisted; computed at query time.
	Upvotes   int `gorm:"->" json:"upvotes"`
	Downvotes int `gorm:"->" json:"downvotes"`
	// MyVote is the requesting user's stance on this post, if any (computed).
	MyVote    string    `gorm:"->" json:"myVote,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostVote records one user's stance on one post. The unique (post, user)
// index guarantees a voter is in at most one of the two stance sets.
type PostVote struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	PostID    uint          `gorm:"not null;uniqueIndex:idx_post_voter" json:"postId"`
	UserID    uint          `gorm:"not null;uniqueIndex:idx_post_voter" json:"userId"`
	Stance    voting.Stance `gorm:"type:varchar(16);not null" json:"stance"`
	CreatedAt time.Time     `json:"createdAt"`
}

// VoteResult is the tally returned by post vote operations.
type VoteResult struct {
	VoteCount int `json:"voteCount"`
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
}
