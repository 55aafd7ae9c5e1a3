package mediasvc

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
	collectionsvc "atom_video/internal/api/collection/service"
	commentmodels "atom_video/internal/api/comment/models"
	ledgersvc "atom_video/internal/api/ledger/service"
	"atom_video/internal/api/media/dto"
	"atom_video/internal/api/media/models"
	"atom_video/internal/common"
	"atom_video/internal/global"
	"atom_video/internal/memstore"
)

// newTestMediaService dựng service media trên một store mới tinh
func newTestMediaService(t *testing.T) *MediaService {
	t.Helper()
	global.ServerConfig = &config.Configuration{BcryptCost: bcrypt.MinCost}
	global.Store = memstore.NewStore()
	global.Store.BindSessions(authsvc.IsUserActive)
	return NewMediaService()
}

func registerViewer(t *testing.T, handle string) authmodels.User {
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

func publishTestMedia(t *testing.T, service *MediaService, ownerID, title string) models.MediaItem {
	t.Helper()
	ctx := context.Background()
	media, err := service.Create(ctx, ownerID, &dto.CreateMediaInput{
		Title:       title,
		Category:    "education",
		Tags:        []string{"go"},
		PlaybackURL: "https://cdn.example.com/" + title + ".m3u8",
		Visibility:  models.VisibilityPublic,
	})
	require.NoError(t, err)
	media, err = service.Publish(ctx, media.ID, ownerID)
	require.NoError(t, err)
	return media
}

func TestCreateStartsAsDraftAndCountsForOwner(t *testing.T) {
	service := newTestMediaService(t)
	ctx := context.Background()
	owner := registerViewer(t, "creator")

	media, err := service.Create(ctx, owner.ID, &dto.CreateMediaInput{
		Title:       "Video nháp",
		Category:    "education",
		Tags:        []string{"go", "GO", "tutorial"},
		PlaybackURL: "https://cdn.example.com/nhap.m3u8",
		Visibility:  models.VisibilityPublic,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, media.Status)
	assert.Nil(t, media.PublishedAt)
	assert.Equal(t, []string{"go", "tutorial"}, media.Tags, "tag trùng (không phân biệt hoa thường) phải bị loại")

	ownerAfter, err := authsvc.UserTable().FindOneByID(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), ownerAfter.MediaCount)
}

func TestPublishLifecycle(t *testing.T) {
	service := newTestMediaService(t)
	ctx := context.Background()
	owner := registerViewer(t, "creator")

	media, err := service.Create(ctx, owner.ID, &dto.CreateMediaInput{
		Title:       "Sắp phát hành",
		Category:    "education",
		PlaybackURL: "https://cdn.example.com/v.m3u8",
		Visibility:  models.VisibilityPublic,
	})
	require.NoError(t, err)

	published, err := service.Publish(ctx, media.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)
	assert.Greater(t, int64(*published.PublishedAt), int64(0))

	// Phát hành lại media đã phát hành là thao tác không hợp lệ
	_, err = service.Publish(ctx, media.ID, owner.ID)
	assert.ErrorIs(t, err, common.ErrInvalidOperation)

	// Từ chối media đã phát hành cũng vậy
	_, err = service.Reject(ctx, media.ID, "usr_admin")
	assert.ErrorIs(t, err, common.ErrInvalidOperation)
}

func TestPublishOnlyOwner(t *testing.T) {
	service := newTestMediaService(t)
	ctx := context.Background()
	owner := registerViewer(t, "creator")
	other := registerViewer(t, "other")

	media, err := service.Create(ctx, owner.ID, &dto.CreateMediaInput{
		Title:       "Của creator",
		Category:    "education",
		PlaybackURL: "https://cdn.example.com/v.m3u8",
		Visibility:  models.VisibilityPublic,
	})
	require.NoError(t, err)

	_, err = service.Publish(ctx, media.ID, other.ID)
	assert.ErrorIs(t, err, common.ErrPermission)
}

func TestFindVisibleRules(t *testing.T) {
	service := newTestMediaService(t)
	ctx := context.Background()
	owner := registerViewer(t, "creator")
	other := registerViewer(t, "other")

	draft, err := service.Create(ctx, owner.ID, &dto.CreateMediaInput{
		Title:       "Nháp",
		Category:    "education",
		PlaybackURL: "https://cdn.example.com/v.m3u8",
		Visibility:  models.VisibilityPublic,
	})
	require.NoError(t, err)

	// Chủ sở hữu thấy media ở mọi trạng thái; người khác thì không
	_, err = service.FindVisible(ctx, draft.ID, owner.ID)
	assert.NoError(t, err)
	_, err = service.FindVisible(ctx, draft.ID, other.ID)
	assert.ErrorIs(t, err, common.ErrPermission)
	_, err = service.FindVisible(ctx, draft.ID, "")
	assert.ErrorIs(t, err, common.ErrPermission)

	published := publishTestMedia(t, service, owner.ID, "cong-khai")
	_, err = service.FindVisible(ctx, published.ID, "")
	assert.NoError(t, err, "media published + public ai cũng thấy")
}

func TestToggleLikeIdempotentPair(t *testing.T) {
	service := newTestMediaService(t)
	ctx := context.Background()
	owner := registerViewer(t, "creator")
	viewer := registerViewer(t, "viewer")
	media := publishTestMedia(t, service, owner.ID, "video")

	liked, err := service.ToggleLike(ctx, viewer.ID, media.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	after, err := service.FindOneById(ctx, media.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), after.LikeCount)

	// Toggle lần hai đưa mọi thứ về trạng thái ban đầu
	liked, err = service.ToggleLike(ctx, viewer.ID, media.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	after, err = service.FindOneById(ctx, media.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), after.LikeCount)

	viewerAfter, err := authsvc.UserTable().FindOneByID(viewer.ID)
	require.NoError(t, err)
	assert.Empty(t, viewerAfter.LikedMediaIDs)
}

func TestLikeAndDislikeAreMutuallyExclusive(t *testing.T) {
	service := newTestMediaService(t)
	ctx := context.Background()
	owner := registerViewer(t, "creator")
	viewer := registerViewer(t, "viewer")
	media := publishTestMedia(t, service, owner.ID, "video")

	_, err := service.ToggleLike(ctx, viewer.ID, media.ID)
	require.NoError(t, err)

	// Bật dislike phải gỡ like
	disliked, err := service.ToggleDislike(ctx, viewer.ID, media.ID)
	require.NoError(t, err)
	assert.True(t, disliked)

	after, err := service.FindOneById(ctx, media.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), after.LikeCount)
	assert.Equal(t, int64(1), after.DislikeCount)

	viewerAfter, err := authsvc.UserTable().FindOneByID(viewer.ID)
	require.NoError(t, err)
	assert.Empty(t, viewerAfter.LikedMediaIDs)
	assert.Equal(t, []string{media.ID}, viewerAfter.DislikedMediaIDs)
}

func TestCountersMatchMembershipRecount(t *testing.T) {
	service := newTestMediaService(t)
	ctx := context.Background()
	owner := registerViewer(t, "creator")
	media := publishTestMedia(t, service, owner.ID, "video")

	viewers := []authmodels.User{
		registerViewer(t, "viewer1"),
		registerViewer(t, "viewer2"),
		registerViewer(t, "viewer3"),
	}
	for _, viewer := range viewers {
		_, err := service.ToggleLike(ctx, viewer.ID, media.ID)
		require.NoError(t, err)
		_, err = service.ToggleFavorite(ctx, viewer.ID, media.ID)
		require.NoError(t, err)
	}
	// Một người đổi ý
	_, err := service.ToggleLike(ctx, viewers[0].ID, media.ID)
	require.NoError(t, err)

	after, err := service.FindOneById(ctx, media.ID)
	require.NoError(t, err)

	// Counter denormalize phải khớp với đếm lại từ membership
	var likes, favorites int64
	for _, user := range authsvc.UserTable().Find(nil, memstore.DefaultSort()) {
		for _, id := range user.LikedMediaIDs {
			if id == media.ID {
				likes++
			}
		}
		for _, id := range user.FavoriteMediaIDs {
			if id == media.ID {
				favorites++
			}
		}
	}
	assert.Equal(t, likes, after.LikeCount)
	assert.Equal(t, favorites, after.FavoriteCount)
}

func TestRecordViewCreditsOwner(t *testing.T) {
	service := newTestMediaService(t)
	ctx := context.Background()
	owner := registerViewer(t, "creator")
	viewer := registerViewer(t, "viewer")
	media := publishTestMedia(t, service, owner.ID, "video")

	_, err := service.RecordView(ctx, media.ID, viewer.ID)
	require.NoError(t, err)
	// Lượt xem ẩn danh vẫn tính
	_, err = service.RecordView(ctx, media.ID, "")
	require.NoError(t, err)

	after, err := service.FindOneById(ctx, media.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), after.ViewCount)

	ownerAfter, err := authsvc.UserTable().FindOneByID(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), ownerAfter.TotalViews)

	balance, err := ledgersvc.NewLedgerService().Balance(ctx, owner.ID, "")
	require.NoError(t, err)
	assert.InDelta(t, 2*ledgersvc.ViewCreditAmount, balance, 1e-9, "mỗi lượt xem ghi có một bút toán cho creator")
}

func TestUpdateProgressAndWatchHistory(t *testing.T) {
	service := newTestMediaService(t)
	ctx := context.Background()
	owner := registerViewer(t, "creator")
	viewer := registerViewer(t, "viewer")

	first := publishTestMedia(t, service, owner.ID, "video-1")
	second := publishTestMedia(t, service, owner.ID, "video-2")

	require.NoError(t, service.UpdateProgress(ctx, viewer.ID, first.ID, &dto.UpdateProgressInput{
		PositionSeconds: 30, DurationSeconds: 120,
	}))
	require.NoError(t, service.UpdateProgress(ctx, viewer.ID, second.ID, &dto.UpdateProgressInput{
		PositionSeconds: 10, DurationSeconds: 60,
	}))
	// Xem tiếp video đầu: mục được cập nhật và nhảy lên mới nhất
	require.NoError(t, service.UpdateProgress(ctx, viewer.ID, first.ID, &dto.UpdateProgressInput{
		PositionSeconds: 90, DurationSeconds: 120,
	}))

	history, err := service.WatchHistory(ctx, viewer.ID, 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(2), history.Total, "mỗi media có tối đa một mục lịch sử")
	assert.Equal(t, first.ID, history.Items[0].MediaID, "mới nhất trước")
	assert.InDelta(t, 0.75, history.Items[0].Progress, 1e-9)
	assert.Equal(t, second.ID, history.Items[1].MediaID)
}

func TestDeleteCascades(t *testing.T) {
	service := newTestMediaService(t)
	ctx := context.Background()
	owner := registerViewer(t, "creator")
	viewer := registerViewer(t, "viewer")
	media := publishTestMedia(t, service, owner.ID, "video")

	// Một bình luận và một mục danh sách phát trỏ tới media
	_, err := service.comments.InsertOne(commentmodels.Comment{
		MediaID:  media.ID,
		AuthorID: viewer.ID,
		Text:     "bình luận mồ côi nếu cascade hỏng",
		Status:   commentmodels.StatusNormal,
	})
	require.NoError(t, err)

	collections := collectionsvc.NewCollectionService()
	col, err := collections.Create(ctx, viewer.ID, "Danh sách", "", "public")
	require.NoError(t, err)
	_, err = collections.AddItem(ctx, col.ID, viewer.ID, media.ID)
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, media.ID, owner.ID))

	_, err = service.FindOneById(ctx, media.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	comments := service.comments.FindFunc(func(c commentmodels.Comment) bool {
		return c.MediaID == media.ID
	})
	assert.Empty(t, comments, "xóa media phải xóa bình luận của nó")

	items, err := collections.Items(ctx, col.ID, viewer.ID)
	require.NoError(t, err)
	assert.Empty(t, items, "xóa media phải gỡ nó khỏi mọi danh sách phát")

	ownerAfter, err := authsvc.UserTable().FindOneByID(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), ownerAfter.MediaCount)
}

func TestSearchFiltersPublishedPublicOnly(t *testing.T) {
	service := newTestMediaService(t)
	ctx := context.Background()
	owner := registerViewer(t, "creator")

	publishTestMedia(t, service, owner.ID, "Go tutorial")
	draft, err := service.Create(ctx, owner.ID, &dto.CreateMediaInput{
		Title:       "Go draft",
		Category:    "education",
		PlaybackURL: "https://cdn.example.com/d.m3u8",
		Visibility:  models.VisibilityPublic,
	})
	require.NoError(t, err)
	_ = draft

	result, err := service.Search(ctx, "go", "", nil, memstore.DefaultSort(), 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), result.Total, "chỉ media published + public vào kết quả tìm kiếm")
	assert.Equal(t, "Go tutorial", result.Items[0].Title)
	assert.Equal(t, owner.ID, result.Items[0].Author.ID, "kết quả kèm projection công khai của tác giả")

	// Lọc theo category không khớp
	empty, err := service.Search(ctx, "go", "music", nil, memstore.DefaultSort(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), empty.Total)
}
