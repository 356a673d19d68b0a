package repository

import (
	"github.com/fixtrack/repair-shop-api/internal/models"
)

// TicketRepository defines the interface for ticket data access
type TicketRepository interface {
	// Create creates a new ticket
	Create(ticket *models.Ticket) error

	// FindByID finds a ticket by ID
	FindByID(id string) (*models.Ticket, error)

	// List retrieves all tickets in insertion order
	List() ([]models.Ticket, error)

	// ListByAssignee retrieves tickets assigned to a user, in insertion order
	ListByAssignee(userID string) ([]models.Ticket, error)

	// Update persists changes to a ticket
	Update(ticket *models.Ticket) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id string) (*models.User, error)

	// FindByEmail finds a user by case-insensitive email match
	FindByEmail(email string) (*models.User, error)

	// List retrieves all users in insertion order
	List() ([]models.User, error)

	// Delete removes a user
	Delete(id string) error

	// CountByRole counts users holding the given role
	CountByRole(role models.UserRole) (int64, error)
}
