// Package activitysvc - service ghi và đọc nhật ký hoạt động.
package activitysvc

import (
	"context"

	"atom_video/internal/api/activity/models"
	basesvc "atom_video/internal/api/base/service"
	"atom_video/internal/global"
	"atom_video/internal/logger"
	"atom_video/internal/memstore"
)

// ActivityService quản lý bảng activity_logs.
// Mỗi thao tác thay đổi trạng thái của hệ thống ghi đúng một entry.
type ActivityService struct {
	*basesvc.BaseServiceMemory[models.ActivityEntry]
}

// NewActivityService tạo service nhật ký hoạt động trên bảng dùng chung
func NewActivityService() *ActivityService {
	table := memstore.TableOf[models.ActivityEntry](global.Store, global.TableNames.ActivityLogs, global.IDPrefixes.Activity)
	return &ActivityService{
		BaseServiceMemory: basesvc.NewBaseServiceMemory(table),
	}
}

// Record ghi một entry hoạt động mới.
// Lỗi ghi nhật ký chỉ log warning, không làm hỏng thao tác chính đã xong.
//
// Parameters:
//   - ctx: Context của request
//   - actorID: Người thực hiện
//   - action: Tên hành động (ví dụ: media.like)
//   - target: Loại đối tượng (models.TargetMedia, ...)
//   - targetID: ID của đối tượng
func (s *ActivityService) Record(ctx context.Context, actorID, action, target, targetID string) {
	_, err := s.InsertOne(ctx, models.ActivityEntry{
		ActorID:  actorID,
		Action:   action,
		Target:   target,
		TargetID: targetID,
	})
	if err != nil {
		logger.GetAppLogger().WithError(err).WithField("action", action).Warn("Không ghi được nhật ký hoạt động")
	}
}

// FindByActor trả về nhật ký của một người dùng, mới nhất trước
func (s *ActivityService) FindByActor(ctx context.Context, actorID string, page, limit int64) (*memstore.PaginateResult[models.ActivityEntry], error) {
	filter := memstore.NewFilter().Eq("actorId", actorID)
	return s.FindWithPagination(ctx, filter, memstore.DefaultSort(), page, limit)
}

// FindByTarget trả về nhật ký trỏ tới một đối tượng, mới nhất trước
func (s *ActivityService) FindByTarget(ctx context.Context, target, targetID string, page, limit int64) (*memstore.PaginateResult[models.ActivityEntry], error) {
	filter := memstore.NewFilter().Eq("target", target).Eq("targetId", targetID)
	return s.FindWithPagination(ctx, filter, memstore.DefaultSort(), page, limit)
}
