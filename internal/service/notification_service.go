package service

import (
	"fmt"
	"log"

	"readquest/internal/models"
	"readquest/internal/repository"
)

// NotificationList is the notifications endpoint payload
type NotificationList struct {
	UnreadCount   int                   `json:"unread_count"`
	Notifications []models.Notification `json:"notifications"`
}

// Mailer sends transactional email; satisfied by EmailService
type Mailer interface {
	SendNotificationEmail(toEmail, subject, body string) error
}

// NotificationService manages persisted per-user notifications and their
// optional email delivery
type NotificationService struct {
	repo   *repository.NotificationRepository
	mailer Mailer
}

// NewNotificationService creates a notification service; mailer may be nil
// when email is not configured
func NewNotificationService(repo *repository.NotificationRepository, mailer Mailer) *NotificationService {
	return &NotificationService{repo: repo, mailer: mailer}
}

// List returns the user's notifications with the unread count
func (s *NotificationService) List(userID int64) (*NotificationList, error) {
	notifications, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	unread, err := s.repo.CountUnread(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread: %w", err)
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return &NotificationList{UnreadCount: unread, Notifications: notifications}, nil
}

// MarkRead flips a notification to read
func (s *NotificationService) MarkRead(notificationID, userID int64) error {
	return s.repo.MarkRead(notificationID, userID)
}

// Notify persists a notification for the user
func (s *NotificationService) Notify(userID int64, message, kind string) error {
	return s.repo.Create(userID, message, kind)
}

// NotifyWithEmail persists a notification and also emails it when a mailer
// is configured. Email failure is logged, never propagated: the stored
// notification is the source of truth.
func (s *NotificationService) NotifyWithEmail(userID int64, email, subject, message, kind string) error {
	if err := s.repo.Create(userID, message, kind); err != nil {
		return err
	}
	if s.mailer != nil && email != "" {
		if err := s.mailer.SendNotificationEmail(email, subject, message); err != nil {
			log.Printf("failed to email notification to user %d: %v", userID, err)
		}
	}
	return nil
}
