package models

import (
	"fmt"
	"time"
)

// Priority is the urgency assigned to a complaint.
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// Valid reports whether p is a recognized priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// ParsePriority converts s into a Priority, failing on unknown values.
func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.Valid() {
		return "", NewValidationError(fmt.Sprintf("Invalid priority %q", s))
	}
	return p, nil
}

// Status is a complaint's position in the triage workflow.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusResolved   Status = "Resolved"
	StatusRejected   Status = "Rejected"
)

// Valid reports whether s is a recognized status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// ParseStatus converts s into a Status, failing on unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", NewValidationError(fmt.Sprintf("Invalid status %q", s))
	}
	return st, nil
}

// Department is the municipal body a complaint can be routed to.
type Department string

const (
	DepartmentMunicipal   Department = "Municipal Corporation"
	DepartmentHealth      Department = "Health Department"
	DepartmentEducation   Department = "Education Department"
	DepartmentPolice      Department = "Police"
	DepartmentFire        Department = "Fire Department"
	DepartmentPublicWorks Department = "Public Works"
	DepartmentElectricity Department = "Electricity Board"
	DepartmentWater       Department = "Water Authority"
	DepartmentOther       Department = "Other"
)

// Valid reports whether d is a recognized department.
func (d Department) Valid() bool {
	switch d {
	case DepartmentMunicipal, DepartmentHealth, DepartmentEducation,
		DepartmentPolice, DepartmentFire, DepartmentPublicWorks,
		DepartmentElectricity, DepartmentWater, DepartmentOther:
		return true
	}
	return false
}

// ParseDepartment converts s into a Department, failing on unknown values.
func ParseDepartment(s string) (Department, error) {
	d := Department(s)
	if !d.Valid() {
		return "", NewValidationError(fmt.Sprintf("Invalid department %q", s))
	}
	return d, nil
}

// Complaint is a formal grievance filed with the municipality. Unlike posts,
// complaints carry a triage workflow (priority, status, assignment) and an
// append-only status history, and are removed by hard delete.
type Complaint struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	UserID      uint        `gorm:"not null;index" json:"userId"`
	User        User        `gorm:"foreignKey:UserID" json:"user"`
	Title       string      `gorm:"not null" json:"title"`
	Description string      `gorm:"type:text;not null" json:"description"`
	Category    Category    `gorm:"type:varchar(32);not null;index" json:"category"`
	Priority    Priority    `gorm:"type:varchar(16);not null;default:'Medium'" json:"priority"`
	Status      Status      `gorm:"type:varchar(16);not null;default:'Pending';index" json:"status"`
	Locality    string      `gorm:"not null;index" json:"locality"`
	Address     string      `gorm:"not null" json:"address"`
	Latitude    *float64    `json:"latitude,omitempty"`
	Longitude   *float64    `json:"longitude,omitempty"`
	Images      []string    `gorm:"serializer:json" json:"images"`
	Department  Department  `gorm:"type:varchar(32)" json:"department,omitempty"`
	AssignedToID *uint      `json:"assignedToId,omitempty"`
	AssignedTo  *User       `gorm:"foreignKey:AssignedToID" json:"assignedTo,omitempty"`
	// StatusHistory is append-only: entries are created by status transitions
	// and never edited or removed.
	StatusHistory []StatusChange `gorm:"foreignKey:ComplaintID" json:"statusHistory"`
	ResolvedAt    *time.Time     `json:"resolvedAt,omitempty"`
	VoteCount     int            `gorm:"not null;default:0" json:"voteCount"`
	// Upvotes is not persisted; computed at query time.
	Upvotes   int       `gorm:"->" json:"upvotes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StatusChange is one entry in a complaint's status history.
type StatusChange struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ComplaintID uint      `gorm:"not null;index" json:"complaintId"`
	Status      Status    `gorm:"type:varchar(16);not null" json:"status"`
	Comment     string    `json:"comment"`
	UpdatedByID uint      `gorm:"not null" json:"updatedById"`
	UpdatedBy   User      `gorm:"foreignKey:UpdatedByID" json:"updatedBy"`
	CreatedAt   time.Time `json:"updatedAt"`
}

// Transition moves the complaint to newStatus and returns the history entry
// recording the change. Any transition is legal; there is no state-machine
// guard, so e.g. Resolved -> Pending is allowed. ResolvedAt is stamped on a
// Resolved transition and kept even if the complaint is later un-resolved.
func (c *Complaint) Transition(newStatus Status, comment string, updatedBy uint, assignedTo *uint, now time.Time) StatusChange {
	c.Status = newStatus

	if newStatus == StatusResolved {
		t := now
		c.ResolvedAt = &t
	}
	if assignedTo != nil {
		c.AssignedToID = assignedTo
	}

	change := StatusChange{
		ComplaintID: c.ID,
		Status:      newStatus,
		Comment:     comment,
		UpdatedByID: updatedBy,
		CreatedAt:   now,
	}
	c.StatusHistory = append(c.StatusHistory, change)
	return change
}

// ComplaintVote records one user's upvote on one complaint. Complaints have
// no downvotes; voting is a pure toggle.
type ComplaintVote struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ComplaintID uint      `gorm:"not null;uniqueIndex:idx_complaint_voter" json:"complaintId"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_complaint_voter" json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ComplaintVoteResult is the tally returned by complaint vote operations.
type ComplaintVoteResult struct {
	VoteCount int `json:"voteCount"`
	Upvotes   int `json:"upvotes"`
}
