package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TicketStatus string

const (
	TicketStatusNew        TicketStatus = "new"
	TicketStatusInProgress TicketStatus = "in-progress"
	TicketStatusDone       TicketStatus = "done"
)

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
// Tickets move new -> in-progress -> done; done is terminal.
func (s TicketStatus) CanTransitionTo(next TicketStatus) bool {
	switch s {
	case TicketStatusNew:
		return next == TicketStatusInProgress
	case TicketStatusInProgress:
		return next == TicketStatusDone
	default:
		return false
	}
}

// Ticket is a repair job tracked through the status lifecycle.
// AssigneeName is a write-time cache of the assignee's name, not a live
// join: it stays as written if the referenced user is renamed or deleted.
type Ticket struct {
	ID            string       `gorm:"type:varchar(36);primarykey" json:"id"`
	Title         string       `gorm:"not null" json:"title"`
	Description   string       `gorm:"type:text;not null" json:"description"`
	Status        TicketStatus `gorm:"type:varchar(20);not null;default:'new'" json:"status"`
	CustomerName  string       `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerEmail string       `gorm:"type:varchar(255)" json:"customer_email"`
	CustomerPhone string       `gorm:"type:varchar(50);not null" json:"customer_phone"`
	ItemsReceived string       `gorm:"type:text;not null" json:"items_received"`
	AssigneeID    *string      `gorm:"type:varchar(36);index" json:"assignee_id"`
	AssigneeName  *string      `gorm:"type:varchar(255)" json:"assignee_name"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
