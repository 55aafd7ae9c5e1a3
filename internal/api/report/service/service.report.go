// Package reportsvc - service nhận và xử lý báo cáo vi phạm.
package reportsvc

import (
	"context"

	activitymodels "atom_video/internal/api/activity/models"
	activitysvc "atom_video/internal/api/activity/service"
	authmodels "atom_video/internal/api/auth/models"
	authsvc "atom_video/internal/api/auth/service"
	basesvc "atom_video/internal/api/base/service"
	commentmodels "atom_video/internal/api/comment/models"
	commentsvc "atom_video/internal/api/comment/service"
	mediamodels "atom_video/internal/api/media/models"
	"atom_video/internal/api/report/dto"
	"atom_video/internal/api/report/models"
	"atom_video/internal/common"
	"atom_video/internal/global"
	"atom_video/internal/memstore"
)

// ReportService quản lý bảng reports
type ReportService struct {
	*basesvc.BaseServiceMemory[models.Report]
	media    *memstore.Table[mediamodels.MediaItem]
	comments *commentsvc.CommentService
	users    *memstore.Table[authmodels.User]
	activity *activitysvc.ActivityService
}

// NewReportService tạo service báo cáo trên các bảng dùng chung
func NewReportService() *ReportService {
	return &ReportService{
		BaseServiceMemory: basesvc.NewBaseServiceMemory(
			memstore.TableOf[models.Report](global.Store, global.TableNames.Reports, global.IDPrefixes.Report)),
		media:    memstore.TableOf[mediamodels.MediaItem](global.Store, global.TableNames.MediaItems, global.IDPrefixes.Media),
		comments: commentsvc.NewCommentService(),
		users:    authsvc.UserTable(),
		activity: activitysvc.NewActivityService(),
	}
}

// Create gửi một báo cáo vi phạm mới.
// Đối tượng bị báo cáo phải tồn tại; sai ID là common.ErrNotFound.
//
// Parameters:
//   - ctx: Context của request
//   - reporterID: Người báo cáo
//   - input: Thông tin báo cáo đã validate
//
// Returns:
//   - models.Report: Báo cáo vừa tạo ở trạng thái pending
//   - error: Lỗi nếu có
func (s *ReportService) Create(ctx context.Context, reporterID string, input *dto.CreateReportInput) (models.Report, error) {
	if err := s.checkSubject(ctx, input.SubjectKind, input.SubjectID); err != nil {
		return models.Report{}, err
	}

	report, err := s.InsertOne(ctx, models.Report{
		SubjectKind: input.SubjectKind,
		SubjectID:   input.SubjectID,
		ReporterID:  reporterID,
		ReasonCode:  input.ReasonCode,
		Description: input.Description,
		Status:      models.StatusPending,
	})
	if err != nil {
		return report, err
	}

	s.activity.Record(ctx, reporterID, "report.create", activitymodels.TargetReport, report.GetID())
	return report, nil
}

// checkSubject kiểm tra đối tượng bị báo cáo tồn tại theo loại
func (s *ReportService) checkSubject(ctx context.Context, kind, id string) error {
	var exists bool
	switch kind {
	case models.SubjectMedia:
		exists = s.media.Exists(id)
	case models.SubjectComment:
		exists, _ = s.comments.Exists(ctx, id)
	case models.SubjectIdentity:
		exists = s.users.Exists(id)
	default:
		return common.ErrInvalidInput
	}
	if !exists {
		return common.ErrNotFound
	}
	return nil
}

// FindPending trả về báo cáo chưa xử lý, cũ nhất trước
func (s *ReportService) FindPending(ctx context.Context, page, limit int64) (*memstore.PaginateResult[models.Report], error) {
	filter := memstore.NewFilter().Eq("status", models.StatusPending)
	return s.FindWithPagination(ctx, filter, memstore.Sort{Field: "createdAt", Desc: false}, page, limit)
}

// Resolve xử lý một báo cáo pending: chuyển sang resolved hoặc ignored.
// Báo cáo đã xử lý rồi là common.ErrInvalidOperation. Với báo cáo bình
// luận, HideSubject ẩn luôn bình luận bị báo cáo.
//
// Parameters:
//   - ctx: Context của request
//   - id: ID báo cáo
//   - adminID: Admin xử lý
//   - input: Hành động xử lý
//
// Returns:
//   - models.Report: Báo cáo sau khi xử lý
//   - error: Lỗi nếu có
func (s *ReportService) Resolve(ctx context.Context, id, adminID string, input *dto.ResolveReportInput) (models.Report, error) {
	report, err := s.UpdateById(ctx, id, func(r *models.Report) error {
		if r.Status != models.StatusPending {
			return common.ErrInvalidOperation
		}
		r.Status = input.Action
		r.ResolvedBy = adminID
		return nil
	})
	if err != nil {
		return report, err
	}

	if input.HideSubject && input.Action == models.StatusResolved && report.SubjectKind == models.SubjectComment {
		s.comments.SetStatus(ctx, report.SubjectID, commentmodels.StatusHidden)
	}

	s.activity.Record(ctx, adminID, "report.resolve", activitymodels.TargetReport, id)
	return report, nil
}
