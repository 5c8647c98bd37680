package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/counselbook/counsel-booking/db"
	"github.com/counselbook/counsel-booking/models"
	"github.com/counselbook/counsel-booking/utils"
)

// StartCronJobs initializes and starts the cron scheduler for session reminders
func StartCronJobs() {
	c := cron.New()
	// Run every minute to check for sessions starting in the next hour
	_, err := c.AddFunc("* * * * *", sendSessionReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for session reminders")
}

// sendSessionReminders emails clients whose confirmed session starts in
// roughly one hour.
func sendSessionReminders() {
	now := time.Now()
	startWindow := now.Add(55 * time.Minute)
	endWindow := now.Add(65 * time.Minute)

	var bookings []models.Booking
	err := db.DB.Preload("Schedule").
		Joins("JOIN schedules ON schedules.id = bookings.schedule_id").
		Where("bookings.status = ?", models.StatusConfirmed).
		Where("(schedules.date || ' ' || schedules.start_time)::timestamp BETWEEN ? AND ?", startWindow, endWindow).
		Find(&bookings).Error
	if err != nil {
		log.Printf("Error fetching bookings for reminders: %v", err)
		return
	}

	for _, booking := range bookings {
		if err := sendReminderEmail(&booking); err != nil {
			log.Printf("Failed to send reminder for booking %s: %v", booking.ID, err)
			continue
		}
		log.Printf("Sent reminder for booking %s to %s", booking.ID, booking.ClientEmail)
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(booking *models.Booking) error {
	subject := "Reminder: Upcoming Consultation Session"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your consultation session scheduled in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Start Time:</strong> %s</li>
			<li><strong>End Time:</strong> %s</li>
		</ul>
		<p>Please be on time. If you need to cancel, contact your counselor as soon as possible.</p>
	`, booking.ClientName, booking.Schedule.Date, booking.Schedule.StartTime, booking.Schedule.EndTime)

	return utils.SendEmail(booking.ClientEmail, subject, body)
}
