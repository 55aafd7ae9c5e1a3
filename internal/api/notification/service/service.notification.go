// Package notificationsvc - service tạo và đọc thông báo người dùng.
package notificationsvc

import (
	"context"
	"fmt"

	basesvc "atom_video/internal/api/base/service"
	"atom_video/internal/api/notification/models"
	"atom_video/internal/common"
	"atom_video/internal/global"
	"atom_video/internal/logger"
	"atom_video/internal/memstore"
)

// NotificationService quản lý bảng notifications
type NotificationService struct {
	*basesvc.BaseServiceMemory[models.Notification]
}

// NewNotificationService tạo service thông báo trên bảng dùng chung
func NewNotificationService() *NotificationService {
	table := memstore.TableOf[models.Notification](global.Store, global.TableNames.Notifications, global.IDPrefixes.Notification)
	return &NotificationService{
		BaseServiceMemory: basesvc.NewBaseServiceMemory(table),
	}
}

// Notify tạo một thông báo mới cho người nhận.
// Thông báo là side effect của thao tác khác; lỗi tạo chỉ log warning.
func (s *NotificationService) Notify(ctx context.Context, recipientID, category, title, message, relatedID string) {
	relatedURL := ""
	if global.ServerConfig != nil && global.ServerConfig.FrontendURL != "" && relatedID != "" {
		relatedURL = fmt.Sprintf("%s/%s", global.ServerConfig.FrontendURL, relatedID)
	}
	_, err := s.InsertOne(ctx, models.Notification{
		RecipientID: recipientID,
		Category:    category,
		Title:       title,
		Message:     message,
		RelatedID:   relatedID,
		RelatedURL:  relatedURL,
	})
	if err != nil {
		logger.GetAppLogger().WithError(err).WithField("category", category).Warn("Không tạo được thông báo")
	}
}

// FindForRecipient trả về thông báo của một người dùng, mới nhất trước
func (s *NotificationService) FindForRecipient(ctx context.Context, recipientID string, page, limit int64) (*memstore.PaginateResult[models.Notification], error) {
	filter := memstore.NewFilter().Eq("recipientId", recipientID)
	return s.FindWithPagination(ctx, filter, memstore.DefaultSort(), page, limit)
}

// UnreadCount đếm số thông báo chưa đọc của một người dùng
func (s *NotificationService) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	return s.Count(ctx, memstore.NewFilter().Eq("recipientId", recipientID).Eq("read", false))
}

// MarkRead đánh dấu một thông báo là đã đọc.
// Chỉ người nhận được đánh dấu thông báo của mình.
//
// Parameters:
//   - ctx: Context của request
//   - id: ID của thông báo
//   - recipientID: ID của người đang thao tác
//
// Returns:
//   - models.Notification: Thông báo sau khi đánh dấu
//   - error: common.ErrNotFound hoặc common.ErrPermission
func (s *NotificationService) MarkRead(ctx context.Context, id, recipientID string) (models.Notification, error) {
	return s.UpdateById(ctx, id, func(n *models.Notification) error {
		if n.RecipientID != recipientID {
			return common.ErrPermission
		}
		n.Read = true
		return nil
	})
}

// MarkAllRead đánh dấu mọi thông báo của một người dùng là đã đọc.
//
// Returns:
//   - int64: Số thông báo vừa được đánh dấu
//   - error: Lỗi nếu có
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	var count int64
	err := s.Table().Mutate(func(tx *memstore.Tx[models.Notification]) error {
		for _, n := range tx.All() {
			if n.RecipientID == recipientID && !n.Read {
				n.Read = true
				tx.Put(n)
				count++
			}
		}
		return nil
	})
	return count, err
}
