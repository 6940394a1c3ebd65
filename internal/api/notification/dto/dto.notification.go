// Package notifdto - request/response shapes for the notification feed.
package notifdto

import (
	models "nova_crm/internal/api/notification/models"
)

// NotificationListResult is one page of a user's feed plus the unread
// count across the whole feed.
type NotificationListResult struct {
	Items       []models.Notification `json:"notifications"`
	UnreadCount int64                 `json:"unreadCount"`
}
