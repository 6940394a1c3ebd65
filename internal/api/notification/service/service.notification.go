// Package notifsvc - notification feed service.
package notifsvc

import (
	"context"
	"fmt"

	notifdto "nova_crm/internal/api/notification/dto"
	models "nova_crm/internal/api/notification/models"
	basesvc "nova_crm/internal/api/base/service"
	"nova_crm/internal/common"
	"nova_crm/internal/global"
	"nova_crm/internal/logger"
	"nova_crm/internal/realtime"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationService persists per-user notifications and pushes them
// over the websocket hub.
type NotificationService struct {
	*basesvc.BaseServiceMongoImpl[models.Notification]
	hub *realtime.Hub
}

// NewNotificationService creates a NotificationService bound to the
// notifications collection. hub may be nil in tests.
func NewNotificationService(hub *realtime.Hub) (*NotificationService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Notifications)
	if !exist {
		return nil, fmt.Errorf("failed to get collection %s: %w", global.MongoDB_ColNames.Notifications, common.ErrNotFound)
	}
	return &NotificationService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Notification](coll),
		hub:                  hub,
	}, nil
}

// Dispatch persists a notification for a user and broadcasts it. Delivery
// is best effort: failures are logged and never surfaced to the caller's
// request.
func (s *NotificationService) Dispatch(ctx context.Context, userID primitive.ObjectID, notifType, title, message string, metadata map[string]interface{}) {
	if !models.ValidNotificationType(notifType) {
		notifType = models.NotificationTypeSystem
	}

	created, err := s.InsertOne(ctx, models.Notification{
		User:     userID,
		Type:     notifType,
		Title:    title,
		Message:  message,
		Metadata: metadata,
	})
	if err != nil {
		logger.GetErrorLogger().WithFields(logrus.Fields{
			"user_id": userID.Hex(),
			"title":   title,
		}).WithError(err).Error("failed to persist notification")
		return
	}

	if s.hub != nil {
		s.hub.Broadcast("notification", created)
	}
}

// ListForUser returns a page of the user's notifications, newest first,
// together with the unread count across the whole feed.
func (s *NotificationService) ListForUser(ctx context.Context, userID primitive.ObjectID, page, limit int64) (*notifdto.NotificationListResult, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	result, err := s.FindWithPagination(ctx, bson.M{"userId": userID}, page, limit, opts)
	if err != nil {
		return nil, err
	}

	unread, err := s.CountDocuments(ctx, bson.M{"userId": userID, "isRead": false})
	if err != nil {
		return nil, err
	}

	items := result.Items
	if items == nil {
		items = []models.Notification{}
	}
	return &notifdto.NotificationListResult{Items: items, UnreadCount: unread}, nil
}

// MarkRead marks one notification read. Another user's notification is
// reported as not found rather than forbidden.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID primitive.ObjectID) (models.Notification, error) {
	var zero models.Notification

	notification, err := s.FindOneById(ctx, id)
	if err != nil {
		return zero, err
	}
	if notification.User != userID {
		return zero, common.ErrNotFound
	}
	if notification.IsRead {
		return notification, nil
	}

	return s.UpdateById(ctx, id, basesvc.UpdateData{
		Set: map[string]interface{}{"isRead": true},
	})
}

// MarkAllRead marks every unread notification of a user read and returns
// how many were updated.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.UpdateMany(ctx, bson.M{"userId": userID, "isRead": false}, basesvc.UpdateData{
		Set: map[string]interface{}{"isRead": true},
	})
}
