package dto

import (
	"time"

	"github.com/fixtrack/repair-shop-api/internal/models"
)

// TicketDTO represents a repair ticket in API responses
type TicketDTO struct {
	ID            string              `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Status        models.TicketStatus `json:"status"`
	CustomerName  string              `json:"customer_name"`
	CustomerEmail string              `json:"customer_email,omitempty"`
	CustomerPhone string              `json:"customer_phone"`
	ItemsReceived string              `json:"items_received"`
	AssigneeID    *string             `json:"assignee_id"`
	AssigneeName  *string             `json:"assignee_name"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// TicketListResponse represents a paginated list of tickets
type TicketListResponse struct {
	Tickets    []TicketDTO `json:"tickets"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalCount int         `json:"total_count"`
}

// ToTicketDTO converts a Ticket model to TicketDTO
func ToTicketDTO(ticket models.Ticket) TicketDTO {
	return TicketDTO{
		ID:            ticket.ID,
		Title:         ticket.Title,
		Description:   ticket.Description,
		Status:        ticket.Status,
		CustomerName:  ticket.CustomerName,
		CustomerEmail: ticket.CustomerEmail,
		CustomerPhone: ticket.CustomerPhone,
		ItemsReceived: ticket.ItemsReceived,
		AssigneeID:    ticket.AssigneeID,
		AssigneeName:  ticket.AssigneeName,
		CreatedAt:     ticket.CreatedAt,
		UpdatedAt:     ticket.UpdatedAt,
	}
}

// ToTicketDTOs converts a slice of tickets, preserving order
func ToTicketDTOs(tickets []models.Ticket) []TicketDTO {
	dtos := make([]TicketDTO, len(tickets))
	for i, ticket := range tickets {
		dtos[i] = ToTicketDTO(ticket)
	}
	return dtos
}
