package domain

import "time"

type NotificationType string

const (
	NotificationTypeBooking NotificationType = "booking"
	NotificationTypePayment NotificationType = "payment"
	NotificationTypeSystem  NotificationType = "system"
	NotificationTypeAdmin   NotificationType = "admin"
	NotificationTypeOther   NotificationType = "other"
)

type Notification struct {
	ID        int32             `json:"id"`
	UserID    int32             `json:"user_id"`
	Type      NotificationType  `json:"type"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Data      map[string]string `json:"data,omitempty"`
	BookingID *int32            `json:"booking_id,omitempty"`
	IsRead    bool              `json:"is_read"`
	ReadAt    *time.Time        `json:"read_at,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
