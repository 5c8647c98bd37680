package db

import (
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/counselbook/counsel-booking/models"
)

// Seed provisions the default counselor accounts. It is an explicit
// bootstrap step called once from main, idempotent via a count guard.
func Seed() {
	var count int64
	if err := DB.Model(&models.Counselor{}).Count(&count).Error; err != nil {
		log.Fatal("Failed to check counselor count: ", err)
	}
	if count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash seed password: ", err)
	}

	counselors := []models.Counselor{
		{Email: "counselor1@example.com", Password: string(hashed), Name: "Kim Counselor"},
		{Email: "counselor2@example.com", Password: string(hashed), Name: "Lee Counselor"},
	}
	if err := DB.Create(&counselors).Error; err != nil {
		log.Fatal("Failed to seed counselors: ", err)
	}
	log.Println("Seeded default counselor accounts")
}
