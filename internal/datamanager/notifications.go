package datamanager

import (
	"context"

	"github.com/openkcm/selfservice-datamanager/internal/model"
)

// Notifications returns the notifications stored for the session client.
func (m *Manager) Notifications(ctx context.Context) ([]model.Notification, error) {
	return readScoped[model.Notification](ctx, m, opNotifications)
}

func (m *Manager) UnreadNotificationsCount(ctx context.Context) (int, error) {
	notifications, err := readScoped[model.Notification](ctx, m, opUnreadNotificationsCount)
	if err != nil {
		return 0, err
	}

	unread := 0
	for _, n := range notifications {
		if !n.Read {
			unread++
		}
	}

	return unread, nil
}

func (m *Manager) RegisterNotification(ctx context.Context, payload model.Document) (model.Document, error) {
	return passthrough(ctx, m, opRegisterNotification, 0, func(ctx context.Context, _ int64) (model.Document, error) {
		return m.gateway.RegisterNotification(ctx, payload)
	})
}

func (m *Manager) UpdateRegisterNotification(ctx context.Context, id int64, payload model.Document) (model.Document, error) {
	return passthrough(ctx, m, opUpdateRegisterNotification, id, func(ctx context.Context, id int64) (model.Document, error) {
		return m.gateway.UpdateRegisterNotification(ctx, id, payload)
	})
}

func (m *Manager) UserNotificationID(ctx context.Context, id int64) (model.Document, error) {
	return passthrough(ctx, m, opUserNotificationID, id, m.gateway.UserNotificationID)
}
