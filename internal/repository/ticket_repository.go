package repository

import (
	"github.com/fixtrack/repair-shop-api/internal/models"
	"gorm.io/gorm"
)

// GormTicketRepository is a GORM implementation of TicketRepository
type GormTicketRepository struct {
	db *gorm.DB
}

// NewTicketRepository creates a new TicketRepository
func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &GormTicketRepository{db: db}
}

// Create creates a new ticket
func (r *GormTicketRepository) Create(ticket *models.Ticket) error {
	return r.db.Create(ticket).Error
}

// FindByID finds a ticket by ID
func (r *GormTicketRepository) FindByID(id string) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := r.db.Where("id = ?", id).First(&ticket).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

// List retrieves all tickets ordered by creation time
func (r *GormTicketRepository) List() ([]models.Ticket, error) {
	var tickets []models.Ticket
	if err := r.db.Order("created_at ASC").Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

// ListByAssignee retrieves tickets assigned to a user, same ordering as List
func (r *GormTicketRepository) ListByAssignee(userID string) ([]models.Ticket, error) {
	var tickets []models.Ticket
	if err := r.db.Where("assignee_id = ?", userID).
		Order("created_at ASC").
		Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

// Update persists changes to a ticket
func (r *GormTicketRepository) Update(ticket *models.Ticket) error {
	return r.db.Save(ticket).Error
}
