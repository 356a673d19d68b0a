package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fixtrack/repair-shop-api/internal/dto"
	apierrors "github.com/fixtrack/repair-shop-api/internal/errors"
	"github.com/fixtrack/repair-shop-api/internal/middleware"
	"github.com/fixtrack/repair-shop-api/internal/models"
	"github.com/fixtrack/repair-shop-api/internal/services"
	"github.com/fixtrack/repair-shop-api/internal/utils"
)

// TicketHandler coordinates repair ticket HTTP handlers.
type TicketHandler struct {
	ticketService *services.TicketService
}

// NewTicketHandler creates a new TicketHandler.
func NewTicketHandler(ticketService *services.TicketService) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
	}
}

// ListTickets returns all tickets in insertion order.
// An optional assignee_id query filters to one worker's tickets.
func (h *TicketHandler) ListTickets(c *gin.Context) {
	var (
		tickets []models.Ticket
		err     error
	)

	if assigneeID := c.Query("assignee_id"); assigneeID != "" {
		tickets, err = h.ticketService.ListTicketsByAssignee(assigneeID)
	} else {
		tickets, err = h.ticketService.ListTickets()
	}
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tickets")
		return
	}

	params := utils.GetPaginationParams(c)
	start, end := params.Slice(len(tickets))

	c.JSON(http.StatusOK, dto.TicketListResponse{
		Tickets:    dto.ToTicketDTOs(tickets[start:end]),
		Page:       params.Page,
		Limit:      params.Limit,
		TotalCount: len(tickets),
	})
}

// GetTicket returns a specific ticket by ID.
func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticket, err := h.ticketService.GetTicket(c.Param("id"))
	if err != nil {
		respondTicketError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTicketDTO(*ticket))
}

// CreateTicket creates a new ticket in the initial status.
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	if _, exists := middleware.GetUserID(c); !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTicketRequest struct {
		Title         string  `json:"title" binding:"required"`
		Description   string  `json:"description" binding:"required"`
		CustomerName  string  `json:"customer_name" binding:"required"`
		CustomerEmail string  `json:"customer_email"`
		CustomerPhone string  `json:"customer_phone" binding:"required"`
		ItemsReceived string  `json:"items_received" binding:"required"`
		AssigneeID    *string `json:"assignee_id"`
	}

	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	ticket, err := h.ticketService.CreateTicket(services.CreateTicketInput{
		Title:         req.Title,
		Description:   req.Description,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		ItemsReceived: req.ItemsReceived,
		AssigneeID:    req.AssigneeID,
	})
	if err != nil {
		respondTicketError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTicketDTO(*ticket))
}

// UpdateTicketStatus advances a ticket through its lifecycle.
func (h *TicketHandler) UpdateTicketStatus(c *gin.Context) {
	type UpdateStatusRequest struct {
		Status models.TicketStatus `json:"status" binding:"required"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	ticket, err := h.ticketService.UpdateStatus(c.Param("id"), req.Status)
	if err != nil {
		respondTicketError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTicketDTO(*ticket))
}

// UpdateTicket merges a partial update over an existing ticket.
// Sending "assignee_id": null unassigns it; omitting the key leaves the
// assignee untouched.
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	// Raw map so "assignee_id": null can be told apart from an absent key.
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var input services.UpdateTicketInput
	if v, ok := raw["title"]; ok {
		input.Title = toStringPtr(v)
	}
	if v, ok := raw["description"]; ok {
		input.Description = toStringPtr(v)
	}
	if v, ok := raw["customer_name"]; ok {
		input.CustomerName = toStringPtr(v)
	}
	if v, ok := raw["customer_email"]; ok {
		input.CustomerEmail = toStringPtr(v)
	}
	if v, ok := raw["customer_phone"]; ok {
		input.CustomerPhone = toStringPtr(v)
	}
	if v, ok := raw["items_received"]; ok {
		input.ItemsReceived = toStringPtr(v)
	}
	if v, ok := raw["assignee_id"]; ok {
		if v == nil {
			input.ClearAssignee = true
		} else {
			input.AssigneeID = toStringPtr(v)
		}
	}

	ticket, err := h.ticketService.UpdateTicket(c.Param("id"), input)
	if err != nil {
		respondTicketError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTicketDTO(*ticket))
}

func toStringPtr(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

func respondTicketError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTicketNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrMissingTicketFields),
		errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrUnknownStatus):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidTransition):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
