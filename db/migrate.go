package db

import (
	"fmt"
	"log"

	"github.com/counselbook/counsel-booking/models"
)

func Migrate() {
	err := DB.AutoMigrate(
		&models.Counselor{},
		&models.Schedule{},
		&models.Booking{},
		&models.InvitationLink{},
		&models.ConsultationRecord{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
