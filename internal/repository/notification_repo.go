package repository

import (
	"readquest/internal/database"
	"readquest/internal/models"
)

// NotificationRepository handles persisted per-user notifications
type NotificationRepository struct {
	db database.DBTX
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db database.DBTX) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create persists a notification
func (r *NotificationRepository) Create(userID int64, message, kind string) error {
	_, err := r.db.Exec(
		"INSERT INTO notifications (user_id, message, kind, is_read) VALUES (?, ?, ?, ?)",
		userID, message, kind, false,
	)
	return err
}

// ListByUser returns the user's notifications, newest first
func (r *NotificationRepository) ListByUser(userID int64) ([]models.Notification, error) {
	query := `
		SELECT id, user_id, message, kind, is_read, created_at
		FROM notifications
		WHERE user_id = ?
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Kind, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// CountUnread returns how many notifications the user has not read
func (r *NotificationRepository) CountUnread(userID int64) (int, error) {
	var count int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = ?",
		userID, false,
	).Scan(&count)
	return count, err
}

// MarkRead flips a notification to read; ErrNotFound when it does not exist
func (r *NotificationRepository) MarkRead(notificationID, userID int64) error {
	result, err := r.db.Exec(
		"UPDATE notifications SET is_read = ? WHERE id = ? AND user_id = ?",
		true, notificationID, userID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
