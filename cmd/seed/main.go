package main

import (
	"log"
	"time"

	"servicehub/internal/database"
	"servicehub/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	db, err := database.Connect("servicehub.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (booking/favorite rows reference services)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM favorites")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM services")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")
	providerHash, _ := bcrypt.GenerateFromPassword([]byte("provider123"), bcrypt.DefaultCost)
	provider := domain.User{
		Name:         "Aliya Cleaning Co",
		Email:        "aliya@cleanco.kz",
		PasswordHash: string(providerHash),
	}
	db.Create(&provider)

	customerHash, _ := bcrypt.GenerateFromPassword([]byte("customer123"), bcrypt.DefaultCost)
	customer := domain.User{
		Name:         "Daniyar",
		Email:        "daniyar@example.com",
		PasswordHash: string(customerHash),
	}
	db.Create(&customer)

	log.Println("Creating services...")
	services := []domain.Service{
		{
			Name:          "Deep Cleaning",
			Slug:          "deep-cleaning",
			Category:      "cleaning",
			Description:   "Full apartment deep clean, supplies included",
			Price:         3000,
			ProviderName:  provider.Name,
			ProviderEmail: provider.Email,
			Reviews:       domain.ReviewList{},
		},
		{
			Name:          "Office Cleaning",
			Slug:          "office-cleaning",
			Category:      "cleaning",
			Description:   "After-hours office cleaning",
			Price:         5000,
			ProviderName:  provider.Name,
			ProviderEmail: provider.Email,
			Reviews:       domain.ReviewList{},
		},
	}
	for i := range services {
		db.Create(&services[i])
	}

	log.Println("Creating bookings...")
	db.Create(&domain.Booking{
		ServiceID:     services[0].ID,
		CustomerEmail: customer.Email,
		Date:          time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Price:         services[0].Price,
	})

	log.Println("Seed complete.")
}
