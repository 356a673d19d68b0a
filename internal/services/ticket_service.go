package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fixtrack/repair-shop-api/internal/models"
	"github.com/fixtrack/repair-shop-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrMissingTicketFields = errors.New("title, description, items received, customer name and customer phone are required")
	ErrTitleEmpty          = errors.New("title cannot be empty")
	ErrUnknownStatus       = errors.New("unknown ticket status")
	ErrInvalidTransition   = errors.New("status transition not allowed")
)

// TicketService handles repair ticket business logic
type TicketService struct {
	ticketRepo repository.TicketRepository
	userRepo   repository.UserRepository
}

// NewTicketService creates a new TicketService
func NewTicketService(ticketRepo repository.TicketRepository, userRepo repository.UserRepository) *TicketService {
	return &TicketService{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
	}
}

// CreateTicketInput represents input for creating a ticket
type CreateTicketInput struct {
	Title         string
	Description   string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	ItemsReceived string
	AssigneeID    *string
}

// UpdateTicketInput represents input for a partial ticket update.
// Nil fields are left untouched; ClearAssignee unassigns the ticket.
type UpdateTicketInput struct {
	Title         *string
	Description   *string
	CustomerName  *string
	CustomerEmail *string
	CustomerPhone *string
	ItemsReceived *string
	AssigneeID    *string
	ClearAssignee bool
}

// CreateTicket creates a new ticket in the initial status
func (s *TicketService) CreateTicket(input CreateTicketInput) (*models.Ticket, error) {
	if strings.TrimSpace(input.Title) == "" ||
		strings.TrimSpace(input.Description) == "" ||
		strings.TrimSpace(input.ItemsReceived) == "" ||
		strings.TrimSpace(input.CustomerName) == "" ||
		strings.TrimSpace(input.CustomerPhone) == "" {
		return nil, ErrMissingTicketFields
	}

	ticket := &models.Ticket{
		Title:         input.Title,
		Description:   input.Description,
		Status:        models.TicketStatusNew,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		ItemsReceived: input.ItemsReceived,
		AssigneeID:    input.AssigneeID,
		AssigneeName:  s.resolveAssigneeName(input.AssigneeID),
	}

	if err := s.ticketRepo.Create(ticket); err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	return ticket, nil
}

// GetTicket returns a ticket by ID
func (s *TicketService) GetTicket(ticketID string) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.FindByID(ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return ticket, nil
}

// ListTickets returns all tickets in insertion order
func (s *TicketService) ListTickets() ([]models.Ticket, error) {
	tickets, err := s.ticketRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	return tickets, nil
}

// ListTicketsByAssignee returns the tickets assigned to a user
func (s *TicketService) ListTicketsByAssignee(userID string) ([]models.Ticket, error) {
	tickets, err := s.ticketRepo.ListByAssignee(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	return tickets, nil
}

// UpdateStatus advances a ticket through the lifecycle. Only the
// new -> in-progress and in-progress -> done transitions are accepted.
func (s *TicketService) UpdateStatus(ticketID string, newStatus models.TicketStatus) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.FindByID(ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	switch newStatus {
	case models.TicketStatusNew, models.TicketStatusInProgress, models.TicketStatusDone:
	default:
		return nil, ErrUnknownStatus
	}

	if !ticket.Status.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, ticket.Status, newStatus)
	}

	ticket.Status = newStatus

	if err := s.ticketRepo.Update(ticket); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	return ticket, nil
}

// UpdateTicket merges the provided fields over an existing ticket.
// When the assignee changes, the cached assignee name is recomputed from
// the user directory; an unresolvable assignee keeps the previous name.
func (s *TicketService) UpdateTicket(ticketID string, input UpdateTicketInput) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.FindByID(ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleEmpty
		}
		ticket.Title = *input.Title
	}
	if input.Description != nil {
		ticket.Description = *input.Description
	}
	if input.CustomerName != nil {
		ticket.CustomerName = *input.CustomerName
	}
	if input.CustomerEmail != nil {
		ticket.CustomerEmail = *input.CustomerEmail
	}
	if input.CustomerPhone != nil {
		ticket.CustomerPhone = *input.CustomerPhone
	}
	if input.ItemsReceived != nil {
		ticket.ItemsReceived = *input.ItemsReceived
	}

	if input.ClearAssignee {
		ticket.AssigneeID = nil
		ticket.AssigneeName = nil
	} else if input.AssigneeID != nil && !sameAssignee(ticket.AssigneeID, input.AssigneeID) {
		ticket.AssigneeID = input.AssigneeID
		if name := s.resolveAssigneeName(input.AssigneeID); name != nil {
			ticket.AssigneeName = name
		}
		// Unresolvable assignee: previous cached name is kept.
	}

	if err := s.ticketRepo.Update(ticket); err != nil {
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}

	return ticket, nil
}

// resolveAssigneeName looks up the current name for an assignee ID.
// Returns nil when the ID is nil or does not resolve to a user.
func (s *TicketService) resolveAssigneeName(assigneeID *string) *string {
	if assigneeID == nil {
		return nil
	}

	user, err := s.userRepo.FindByID(*assigneeID)
	if err != nil {
		return nil
	}

	name := user.Name
	return &name
}

func sameAssignee(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
