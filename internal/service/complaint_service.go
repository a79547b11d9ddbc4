package service

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"civicvoice/internal/middleware"
	"civicvoice/internal/models"
	"civicvoice/internal/observability"
	"civicvoice/internal/repository"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

type ComplaintService struct {
	complaintRepo repository.ComplaintRepository
	userRepo      repository.UserRepository
}

type CreateComplaintInput struct {
	Caller      models.Caller
	Title       string
	Description string
	Category    string
	Priority    string
	Locality    string
	Address     string
	Latitude    *float64
	Longitude   *float64
	Images      []string
	Department  string
}

type ListComplaintsInput struct {
	Caller     models.Caller
	Locality   string
	Category   string
	Status     string
	Priority   string
	Department string
	UserID     uint
	AssignedTo uint
	Limit      int
	Offset     int
}

type UpdateComplaintInput struct {
	Caller      models.Caller
	ComplaintID uint
	Title       string
	Description string
	Category    string
	Priority    string
	Images      []string
}

type TransitionStatusInput struct {
	Caller      models.Caller
	ComplaintID uint
	Status      string
	Comment     string
	AssignedTo  *uint
	Department  string
}

func NewComplaintService(complaintRepo repository.ComplaintRepository, userRepo repository.UserRepository) *ComplaintService {
	return &ComplaintService{complaintRepo: complaintRepo, userRepo: userRepo}
}

func (s *ComplaintService) CreateComplaint(ctx context.Context, in CreateComplaintInput) (*models.Complaint, error) {
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
	if in.Address == "" {
		return nil, models.NewValidationError("Address is required")
	}
	if (in.Latitude == nil) != (in.Longitude == nil) {
		return nil, models.NewValidationError("Latitude and longitude must be provided together")
	}
	if len(in.Images) > maxImages {
		return nil, models.NewValidationError("Too many images (max 5)")
	}

	category, err := models.ParseCategory(in.Category)
	if err != nil {
		return nil, err
	}

	priority := models.PriorityMedium
	if in.Priority != "" {
		priority, err = models.ParsePriority(in.Priority)
		if err != nil {
			return nil, err
		}
	}

	var department models.Department
	if in.Department != "" {
		department, err = models.ParseDepartment(in.Department)
		if err != nil {
			return nil, err
		}
	}

	complaint := &models.Complaint{
		UserID:      in.Caller.ID,
		Title:       in.Title,
		Description: in.Description,
		Category:    category,
		Priority:    priority,
		Status:      models.StatusPending,
		Locality:    in.Locality,
		Address:     in.Address,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Images:      in.Images,
		Department:  department,
	}
	if err := s.complaintRepo.Create(ctx, complaint); err != nil {
		return nil, err
	}
	return s.GetComplaint(ctx, complaint.ID)
}

func (s *ComplaintService) GetComplaint(ctx context.Context, id uint) (*models.Complaint, error) {
	complaint, err := s.complaintRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Complaint", id)
		}
		return nil, err
	}
	return complaint, nil
}

func (s *ComplaintService) ListComplaints(ctx context.Context, in ListComplaintsInput) ([]*models.Complaint, int64, error) {
	filter := repository.ComplaintFilter{
		Locality:     in.Locality,
		UserID:       in.UserID,
		AssignedToID: in.AssignedTo,
	}
	var err error
	if in.Category != "" {
		if filter.Category, err = models.ParseCategory(in.Category); err != nil {
			return nil, 0, err
		}
	}
	if in.Status != "" {
		if filter.Status, err = models.ParseStatus(in.Status); err != nil {
			return nil, 0, err
		}
	}
	if in.Priority != "" {
		if filter.Priority, err = models.ParsePriority(in.Priority); err != nil {
			return nil, 0, err
		}
	}
	if in.Department != "" {
		if filter.Department, err = models.ParseDepartment(in.Department); err != nil {
			return nil, 0, err
		}
	}

	complaints, err := s.complaintRepo.List(ctx, filter, in.Limit, in.Offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.complaintRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return complaints, total, nil
}

func (s *ComplaintService) UpdateComplaint(ctx context.Context, in UpdateComplaintInput) (*models.Complaint, error) {
	complaint, err := s.GetComplaint(ctx, in.ComplaintID)
	if err != nil {
		return nil, err
	}
	if complaint.UserID != in.Caller.ID && !in.Caller.IsAdmin() {
		return nil, models.NewForbiddenError("You can only edit your own complaints")
	}

	if in.Title != "" {
		if utf8.RuneCountInString(in.Title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 200 characters)")
		}
		complaint.Title = in.Title
	}
	if in.Description != "" {
		if utf8.RuneCountInString(in.Description) > maxDescriptionLen {
			return nil, models.NewValidationError("Description too long (max 2000 characters)")
		}
		complaint.Description = in.Description
	}
	if in.Category != "" {
		if complaint.Category, err = models.ParseCategory(in.Category); err != nil {
			return nil, err
		}
	}
	if in.Priority != "" {
		if complaint.Priority, err = models.ParsePriority(in.Priority); err != nil {
			return nil, err
		}
	}
	if in.Images != nil {
		if len(in.Images) > maxImages {
			return nil, models.NewValidationError("Too many images (max 5)")
		}
		complaint.Images = in.Images
	}

	// Save the scalar fields only; history rows are managed by transitions.
	complaint.StatusHistory = nil
	if err := s.complaintRepo.Update(ctx, complaint); err != nil {
		return nil, err
	}
	return s.GetComplaint(ctx, complaint.ID)
}

// DeleteComplaint removes a complaint and everything attached to it.
func (s *ComplaintService) DeleteComplaint(ctx context.Context, caller models.Caller, complaintID uint) error {
	complaint, err := s.GetComplaint(ctx, complaintID)
	if err != nil {
		return err
	}
	if complaint.UserID != caller.ID && !caller.IsAdmin() {
		return models.NewForbiddenError("You can only delete your own complaints")
	}
	return s.complaintRepo.Delete(ctx, complaintID)
}

// Vote toggles the caller's support for a complaint and returns the fresh tally.
func (s *ComplaintService) Vote(ctx context.Context, caller models.Caller, complaintID uint) (*models.ComplaintVoteResult, error) {
	span, ctx := observability.NewSpan(ctx, "complaint.vote")
	defer span.End()
	span.AddAttributes(attribute.Int("complaint.id", int(complaintID)))

	if _, err := s.GetComplaint(ctx, complaintID); err != nil {
		span.SetError(err)
		return nil, err
	}

	result, err := s.complaintRepo.ToggleVote(ctx, complaintID, caller.ID)
	if err != nil {
		span.SetError(err)
		middleware.VoteOperations.WithLabelValues("complaint", "error").Inc()
		return nil, err
	}
	middleware.VoteOperations.WithLabelValues("complaint", "ok").Inc()
	return result, nil
}

// TransitionStatus moves a complaint through the triage workflow and records
// the change in its history. Admin only. Any target status is accepted.
func (s *ComplaintService) TransitionStatus(ctx context.Context, in TransitionStatusInput) (*models.Complaint, error) {
	span, ctx := observability.NewSpan(ctx, "complaint.transition")
	defer span.End()
	span.AddAttributes(
		attribute.Int("complaint.id", int(in.ComplaintID)),
		attribute.String("complaint.status", in.Status),
	)

	if !in.Caller.IsAdmin() {
		return nil, models.NewForbiddenError("Only admins can update complaint status")
	}

	status, err := models.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	complaint, err := s.GetComplaint(ctx, in.ComplaintID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	if in.Department != "" {
		if complaint.Department, err = models.ParseDepartment(in.Department); err != nil {
			return nil, err
		}
	}
	if in.AssignedTo != nil {
		// The assignee must exist; its role is deliberately not checked, so a
		// complaint can be assigned to any account.
		if _, err := s.userRepo.GetByID(ctx, *in.AssignedTo); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewNotFoundError("User", *in.AssignedTo)
			}
			return nil, err
		}
	}

	change := complaint.Transition(status, in.Comment, in.Caller.ID, in.AssignedTo, time.Now().UTC())

	// UpdateWithStatus writes the complaint and the history row together;
	// drop the in-memory history so the ORM does not insert it twice.
	complaint.StatusHistory = nil
	if err := s.complaintRepo.UpdateWithStatus(ctx, complaint, &change); err != nil {
		span.SetError(err)
		return nil, err
	}

	middleware.StatusTransitions.WithLabelValues(string(status)).Inc()
	return s.GetComplaint(ctx, complaint.ID)
}
