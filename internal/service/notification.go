package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"rentwheels-backend/internal/apperr"
	"rentwheels-backend/internal/domain"
	"rentwheels-backend/internal/logger"
	"rentwheels-backend/internal/push"
	"rentwheels-backend/internal/repository"
)

type notificationService struct {
	noteRepo repository.NotificationRepository
	userRepo repository.UserRepository
	sender   push.Sender
}

func NewNotificationService(
	noteRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	sender push.Sender,
) NotificationService {
	return &notificationService{
		noteRepo: noteRepo,
		userRepo: userRepo,
		sender:   sender,
	}
}

func (s *notificationService) Notify(ctx context.Context, n *domain.Notification) error {
	if n.Type == "" {
		n.Type = domain.NotificationTypeOther
	}
	if err := s.noteRepo.Create(ctx, n); err != nil {
		return apperr.Internal(err)
	}
	s.pushToDevices(ctx, n)
	return nil
}

// pushToDevices delivers the persisted notification to the user's devices and
// prunes tokens FCM reports as dead. Push is best effort end to end.
func (s *notificationService) pushToDevices(ctx context.Context, n *domain.Notification) {
	if s.sender == nil || !s.sender.Enabled() {
		return
	}
	tokens, err := s.userRepo.ListPushTokens(ctx, n.UserID)
	if err != nil {
		logger.Warn("push skipped, token lookup failed", "user_id", n.UserID, "error", err)
		return
	}
	if len(tokens) == 0 {
		return
	}

	data := map[string]string{"type": string(n.Type)}
	for k, v := range n.Data {
		data[k] = v
	}

	invalid, err := s.sender.Send(ctx, tokens, n.Title, n.Message, data)
	if err != nil {
		logger.Warn("push delivery failed", "user_id", n.UserID, "error", err)
		return
	}
	if len(invalid) > 0 {
		if err := s.userRepo.RemovePushTokens(ctx, n.UserID, invalid); err != nil {
			logger.Warn("failed to prune invalid push tokens", "user_id", n.UserID, "error", err)
		} else {
			logger.Info("pruned invalid push tokens", "user_id", n.UserID, "count", len(invalid))
		}
	}
}

func (s *notificationService) List(ctx context.Context, userID int32, unreadOnly bool, page, pageSize int32) ([]domain.Notification, int32, int32, error) {
	page = normalizePage(page)
	pageSize = normalizePageSize(pageSize)

	notifications, total, err := s.noteRepo.ListByUser(ctx, userID, unreadOnly, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, 0, apperr.Internal(err)
	}
	unread, err := s.noteRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, 0, apperr.Internal(err)
	}
	return notifications, total, unread, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, id int32) error {
	if err := s.noteRepo.MarkAsRead(ctx, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("notification not found")
		}
		return apperr.Internal(err)
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID int32) (int32, error) {
	n, err := s.noteRepo.MarkAllAsRead(ctx, userID)
	if err != nil {
		return 0, apperr.Internal(err)
	}
	return n, nil
}

func (s *notificationService) Delete(ctx context.Context, userID, id int32) error {
	if err := s.noteRepo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("notification not found")
		}
		return apperr.Internal(err)
	}
	return nil
}

func (s *notificationService) ClearRead(ctx context.Context, userID int32) (int32, error) {
	n, err := s.noteRepo.DeleteRead(ctx, userID)
	if err != nil {
		return 0, apperr.Internal(err)
	}
	return n, nil
}

func (s *notificationService) RegisterPushToken(ctx context.Context, userID int32, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return apperr.Validation("push token is required")
	}
	if err := s.userRepo.AddPushToken(ctx, userID, token); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *notificationService) RemovePushToken(ctx context.Context, userID int32, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return apperr.Validation("push token is required")
	}
	if err := s.userRepo.RemovePushTokens(ctx, userID, []string{token}); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
