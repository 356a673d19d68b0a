package database

import (
	"fmt"
	"log"

	"github.com/fixtrack/repair-shop-api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Seed populates an empty database with demo staff accounts and a few
// sample tickets so a fresh install has something to show.
func Seed() error {
	var count int64
	if err := DB.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check seed state: %w", err)
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding demo data...")

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	owner := models.User{
		Name:         "John Doe",
		Email:        "owner@example.com",
		Role:         models.RoleOwner,
		PasswordHash: string(hash),
	}
	worker := models.User{
		Name:         "Jane Smith",
		Email:        "worker@example.com",
		Role:         models.RoleWorker,
		PasswordHash: string(hash),
	}

	if err := DB.Create(&owner).Error; err != nil {
		return fmt.Errorf("failed to seed owner: %w", err)
	}
	if err := DB.Create(&worker).Error; err != nil {
		return fmt.Errorf("failed to seed worker: %w", err)
	}

	workerName := worker.Name
	tickets := []models.Ticket{
		{
			Title:         "Laptop Screen Repair",
			Description:   "Customer's laptop screen is cracked and needs replacement.",
			Status:        models.TicketStatusNew,
			CustomerName:  "Michael Johnson",
			CustomerEmail: "michael@example.com",
			CustomerPhone: "(555) 123-4567",
			ItemsReceived: "Dell XPS 13 laptop, charger",
			AssigneeID:    &worker.ID,
			AssigneeName:  &workerName,
		},
		{
			Title:         "Desktop PC Not Booting",
			Description:   "Customer's desktop won't turn on. Possible power supply issue.",
			Status:        models.TicketStatusInProgress,
			CustomerName:  "Sarah Williams",
			CustomerEmail: "sarah@example.com",
			CustomerPhone: "(555) 987-6543",
			ItemsReceived: "Custom built desktop PC, power cable",
			AssigneeID:    &worker.ID,
			AssigneeName:  &workerName,
		},
		{
			Title:         "Virus Removal",
			Description:   "Customer's computer is running slow and showing pop-ups.",
			Status:        models.TicketStatusDone,
			CustomerName:  "Robert Brown",
			CustomerEmail: "robert@example.com",
			CustomerPhone: "(555) 456-7890",
			ItemsReceived: "HP Pavilion laptop",
			AssigneeID:    &worker.ID,
			AssigneeName:  &workerName,
		},
	}

	for i := range tickets {
		if err := DB.Create(&tickets[i]).Error; err != nil {
			return fmt.Errorf("failed to seed ticket %q: %w", tickets[i].Title, err)
		}
	}

	log.Println("Demo data seeded")
	return nil
}
