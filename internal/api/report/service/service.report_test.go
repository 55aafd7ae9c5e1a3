package reportsvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"atom_video/config"
	authdto "atom_video/internal/api/auth/dto"
	authmodels "atom_video/internal/api/auth/models"
	authsvc "atom_video/internal/api/auth/service"
	commentmodels "atom_video/internal/api/comment/models"
	mediamodels "atom_video/internal/api/media/models"
	"atom_video/internal/api/report/dto"
	"atom_video/internal/api/report/models"
	"atom_video/internal/common"
	"atom_video/internal/global"
	"atom_video/internal/memstore"
)

// newTestReportService dựng service báo cáo trên một store mới tinh
func newTestReportService(t *testing.T) *ReportService {
	t.Helper()
	global.ServerConfig = &config.Configuration{BcryptCost: bcrypt.MinCost}
	global.Store = memstore.NewStore()
	global.Store.BindSessions(authsvc.IsUserActive)
	return NewReportService()
}

func registerReporter(t *testing.T, handle string) authmodels.User {
	t.Helper()
	user, err := authsvc.NewUserService().Register(context.Background(), &authdto.RegisterInput{
		Handle:      handle,
		Email:       handle + "@example.com",
		Password:    "matkhau12345",
		DisplayName: "Người dùng " + handle,
	})
	require.NoError(t, err)
	return user
}

func TestCreateReportChecksSubjectExists(t *testing.T) {
	service := newTestReportService(t)
	ctx := context.Background()
	reporter := registerReporter(t, "reporter")

	media, err := service.media.InsertOne(mediamodels.MediaItem{
		OwnerID:    reporter.ID,
		Title:      "bị báo cáo",
		Status:     mediamodels.StatusPublished,
		Visibility: mediamodels.VisibilityPublic,
	})
	require.NoError(t, err)

	report, err := service.Create(ctx, reporter.ID, &dto.CreateReportInput{
		SubjectKind: models.SubjectMedia,
		SubjectID:   media.ID,
		ReasonCode:  "spam",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, report.Status)
	assert.Empty(t, report.ResolvedBy)

	// Đối tượng không tồn tại
	_, err = service.Create(ctx, reporter.ID, &dto.CreateReportInput{
		SubjectKind: models.SubjectMedia,
		SubjectID:   "vid_khong_ton_tai",
		ReasonCode:  "spam",
	})
	assert.ErrorIs(t, err, common.ErrNotFound)

	// Loại đối tượng lạ
	_, err = service.Create(ctx, reporter.ID, &dto.CreateReportInput{
		SubjectKind: "playlist",
		SubjectID:   media.ID,
		ReasonCode:  "spam",
	})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestResolveOncePendingOnly(t *testing.T) {
	service := newTestReportService(t)
	ctx := context.Background()
	reporter := registerReporter(t, "reporter")

	report, err := service.Create(ctx, reporter.ID, &dto.CreateReportInput{
		SubjectKind: models.SubjectIdentity,
		SubjectID:   reporter.ID,
		ReasonCode:  "abuse",
	})
	require.NoError(t, err)

	resolved, err := service.Resolve(ctx, report.ID, "usr_admin", &dto.ResolveReportInput{
		Action: models.StatusIgnored,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusIgnored, resolved.Status)
	assert.Equal(t, "usr_admin", resolved.ResolvedBy)

	// Xử lý lại báo cáo đã xử lý
	_, err = service.Resolve(ctx, report.ID, "usr_admin", &dto.ResolveReportInput{
		Action: models.StatusResolved,
	})
	assert.ErrorIs(t, err, common.ErrInvalidOperation)
}

func TestResolveWithHideSubjectHidesComment(t *testing.T) {
	service := newTestReportService(t)
	ctx := context.Background()
	owner := registerReporter(t, "creator")
	reporter := registerReporter(t, "reporter")

	media, err := service.media.InsertOne(mediamodels.MediaItem{
		OwnerID:    owner.ID,
		Title:      "video",
		Status:     mediamodels.StatusPublished,
		Visibility: mediamodels.VisibilityPublic,
	})
	require.NoError(t, err)
	comment, err := service.comments.Add(ctx, reporter.ID, media.ID, "nội dung xấu", "")
	require.NoError(t, err)

	report, err := service.Create(ctx, reporter.ID, &dto.CreateReportInput{
		SubjectKind: models.SubjectComment,
		SubjectID:   comment.ID,
		ReasonCode:  "abuse",
	})
	require.NoError(t, err)

	_, err = service.Resolve(ctx, report.ID, "usr_admin", &dto.ResolveReportInput{
		Action:      models.StatusResolved,
		HideSubject: true,
	})
	require.NoError(t, err)

	hidden, err := service.comments.FindOneById(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, commentmodels.StatusHidden, hidden.Status, "xử lý với hideSubject phải ẩn bình luận")
}

func TestFindPendingOldestFirst(t *testing.T) {
	service := newTestReportService(t)
	ctx := context.Background()
	reporter := registerReporter(t, "reporter")

	var reports []models.Report
	for i := 0; i < 3; i++ {
		report, err := service.Create(ctx, reporter.ID, &dto.CreateReportInput{
			SubjectKind: models.SubjectIdentity,
			SubjectID:   reporter.ID,
			ReasonCode:  "spam",
		})
		require.NoError(t, err)
		reports = append(reports, report)
	}
	// Một báo cáo đã xử lý không vào hàng đợi
	_, err := service.Resolve(ctx, reports[1].ID, "usr_admin", &dto.ResolveReportInput{Action: models.StatusIgnored})
	require.NoError(t, err)

	pending, err := service.FindPending(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), pending.Total)
	for _, report := range pending.Items {
		assert.Equal(t, models.StatusPending, report.Status)
	}
}
