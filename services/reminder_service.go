// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"photostudio-backend/models"
	"photostudio-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// ReminderService texts customers the day before an approved session.
type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
	from   string
}

func NewReminderService(db *gorm.DB) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: os.Getenv("TWILIO_FROM_NUMBER"),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.SendSessionReminders)

	c.Start()
	log.Println("Session reminder scheduler started")
}

// SendSessionReminders processes every approved booking scheduled for
// tomorrow that has not been reminded yet.
func (s *ReminderService) SendSessionReminders() {
	log.Println("Starting session reminder processing...")

	tomorrow := utils.BeginningOfDay(time.Now()).AddDate(0, 0, 1).Format(utils.BookingDateLayout)

	var bookings []models.Booking
	if err := s.db.Preload("User").Preload("Service").
		Where("status = ? AND deleted_by_user = ? AND date = ?",
			models.BookingApproved, false, tomorrow).
		Find(&bookings).Error; err != nil {
		log.Printf("Failed to fetch upcoming bookings: %v", err)
		return
	}

	for _, booking := range bookings {
		s.processBooking(booking)
	}

	log.Println("Session reminder processing completed")
}

func (s *ReminderService) processBooking(booking models.Booking) {
	var count int64
	s.db.Model(&models.ReminderLog{}).
		Where("booking_id = ? AND status = ?", booking.ID, "sent").
		Count(&count)
	if count > 0 {
		return // already reminded
	}

	entry := models.ReminderLog{
		BookingID: booking.ID,
		UserID:    booking.UserID,
		Channel:   "sms",
		SentAt:    time.Now(),
	}

	if booking.User == nil || booking.User.Phone == "" {
		entry.Status = "skipped"
		entry.ErrorMessage = "no phone number on file"
	} else if err := s.sendSMS(booking); err != nil {
		log.Printf("Booking %s: reminder SMS failed: %v", booking.ID, err)
		entry.Status = "failed"
		entry.ErrorMessage = err.Error()
	} else {
		entry.Status = "sent"
	}

	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("Booking %s: failed to log reminder: %v", booking.ID, err)
	}
}

func (s *ReminderService) sendSMS(booking models.Booking) error {
	serviceName := "your session"
	if booking.Service != nil {
		serviceName = booking.Service.Name
	}

	body := fmt.Sprintf("Hi %s, a reminder that %s is booked for %s at %s (%s). See you there!",
		booking.User.Name, serviceName, booking.Date, booking.Time, booking.Location)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(booking.User.Phone)
	params.SetFrom(s.from)
	params.SetBody(body)

	_, err := s.client.Api.CreateMessage(params)
	return err
}
