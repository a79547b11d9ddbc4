package server

import (
	"civicvoice/internal/models"
	"civicvoice/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComplaints handles GET /api/complaints
func (s *Server) GetComplaints(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	complaints, total, err := s.complaintService.ListComplaints(c.Context(), service.ListComplaintsInput{
		Locality:   c.Query("locality"),
		Category:   c.Query("category"),
		Status:     c.Query("status"),
		Priority:   c.Query("priority"),
		Department: c.Query("department"),
		UserID:     uint(c.QueryInt("userId", 0)),
		AssignedTo: uint(c.QueryInt("assignedTo", 0)),
		Limit:      p.Limit,
		Offset:     p.Offset,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(pageResponse(complaints, total, p))
}

// GetComplaint handles GET /api/complaints/:id
func (s *Server) GetComplaint(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	complaint, err := s.complaintService.GetComplaint(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(complaint)
}

// CreateComplaint handles POST /api/complaints
func (s *Server) CreateComplaint(c *fiber.Ctx) error {
	var req struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Category    string   `json:"category"`
		Priority    string   `json:"priority"`
		Locality    string   `json:"locality"`
		Address     string   `json:"address"`
		Latitude    *float64 `json:"latitude"`
		Longitude   *float64 `json:"longitude"`
		Images      []string `json:"images"`
		Department  string   `json:"department"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	complaint, err := s.complaintService.CreateComplaint(c.Context(), service.CreateComplaintInput{
		Caller:      caller(c),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		Locality:    req.Locality,
		Address:     req.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Images:      req.Images,
		Department:  req.Department,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(complaint)
}

// UpdateComplaint handles PUT /api/complaints/:id
func (s *Server) UpdateComplaint(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Category    string   `json:"category"`
		Priority    string   `json:"priority"`
		Images      []string `json:"images"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	complaint, err := s.complaintService.UpdateComplaint(c.Context(), service.UpdateComplaintInput{
		Caller:      caller(c),
		ComplaintID: id,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		Images:      req.Images,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(complaint)
}

// DeleteComplaint handles DELETE /api/complaints/:id
func (s *Server) DeleteComplaint(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.complaintService.DeleteComplaint(c.Context(), caller(c), id); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(fiber.Map{"message": "Complaint deleted"})
}

// VoteComplaint handles POST /api/complaints/:id/vote. Voting is a toggle:
// a second vote from the same user retracts the first.
func (s *Server) VoteComplaint(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.complaintService.Vote(c.Context(), caller(c), id)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(result)
}

// UpdateComplaintStatus handles PATCH /api/complaints/:id/status (admin only)
func (s *Server) UpdateComplaintStatus(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status     string `json:"status"`
		Comment    string `json:"comment"`
		AssignedTo *uint  `json:"assignedTo"`
		Department string `json:"department"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	complaint, err := s.complaintService.TransitionStatus(c.Context(), service.TransitionStatusInput{
		Caller:      caller(c),
		ComplaintID: id,
		Status:      req.Status,
		Comment:     req.Comment,
		AssignedTo:  req.AssignedTo,
		Department:  req.Department,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(complaint)
}
