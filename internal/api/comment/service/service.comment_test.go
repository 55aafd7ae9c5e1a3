package commentsvc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"atom_video/config"
	authdto "atom_video/internal/api/auth/dto"
	authmodels "atom_video/internal/api/auth/models"
	authsvc "atom_video/internal/api/auth/service"
	"atom_video/internal/api/comment/models"
	mediamodels "atom_video/internal/api/media/models"
	"atom_video/internal/common"
	"atom_video/internal/global"
	"atom_video/internal/memstore"
)

// newTestCommentService dựng service bình luận trên một store mới tinh
func newTestCommentService(t *testing.T) *CommentService {
	t.Helper()
	global.ServerConfig = &config.Configuration{BcryptCost: bcrypt.MinCost}
	global.Store = memstore.NewStore()
	global.Store.BindSessions(authsvc.IsUserActive)
	return NewCommentService()
}

func registerCommenter(t *testing.T, handle string) authmodels.User {
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

func seedPublishedMedia(t *testing.T, service *CommentService, ownerID string) mediamodels.MediaItem {
	t.Helper()
	media, err := service.media.InsertOne(mediamodels.MediaItem{
		OwnerID:    ownerID,
		Title:      "Video test",
		Status:     mediamodels.StatusPublished,
		Visibility: mediamodels.VisibilityPublic,
	})
	require.NoError(t, err)
	return media
}

func TestAddRootCommentUpdatesCommentCount(t *testing.T) {
	service := newTestCommentService(t)
	ctx := context.Background()
	owner := registerCommenter(t, "creator")
	viewer := registerCommenter(t, "viewer")
	media := seedPublishedMedia(t, service, owner.ID)

	comment, err := service.Add(ctx, viewer.ID, media.ID, "Bình luận đầu tiên", "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusNormal, comment.Status)
	assert.Empty(t, comment.ParentID)

	mediaAfter, err := service.media.FindOneByID(media.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), mediaAfter.CommentCount)
}

func TestAddReplyOneLevelOnly(t *testing.T) {
	service := newTestCommentService(t)
	ctx := context.Background()
	owner := registerCommenter(t, "creator")
	viewer := registerCommenter(t, "viewer")
	media := seedPublishedMedia(t, service, owner.ID)

	root, err := service.Add(ctx, viewer.ID, media.ID, "Bình luận gốc", "")
	require.NoError(t, err)
	reply, err := service.Add(ctx, owner.ID, media.ID, "Trả lời", root.ID)
	require.NoError(t, err)
	assert.Equal(t, root.ID, reply.ParentID)

	// Trả lời của trả lời bị chặn
	_, err = service.Add(ctx, viewer.ID, media.ID, "Trả lời của trả lời", reply.ID)
	assert.ErrorIs(t, err, common.ErrInvalidOperation)

	// Bình luận cha phải thuộc cùng media
	other := seedPublishedMedia(t, service, owner.ID)
	_, err = service.Add(ctx, viewer.ID, other.ID, "Cha ở media khác", root.ID)
	assert.ErrorIs(t, err, common.ErrInvalidOperation)
}

func TestAddCommentOnMissingMedia(t *testing.T) {
	service := newTestCommentService(t)
	ctx := context.Background()
	viewer := registerCommenter(t, "viewer")

	_, err := service.Add(ctx, viewer.ID, "vid_khong_ton_tai", "rơi vào hư không", "")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestToggleLikeKeepsCountInSync(t *testing.T) {
	service := newTestCommentService(t)
	ctx := context.Background()
	owner := registerCommenter(t, "creator")
	viewer := registerCommenter(t, "viewer")
	media := seedPublishedMedia(t, service, owner.ID)

	comment, err := service.Add(ctx, viewer.ID, media.ID, "Bình luận", "")
	require.NoError(t, err)

	liked, err := service.ToggleLike(ctx, owner.ID, comment.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	after, err := service.FindOneById(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(len(after.LikedByIDs)), after.LikeCount, "likeCount luôn bằng kích thước likedByIds")
	assert.Equal(t, int64(1), after.LikeCount)

	liked, err = service.ToggleLike(ctx, owner.ID, comment.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	after, err = service.FindOneById(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), after.LikeCount)
	assert.Empty(t, after.LikedByIDs)
}

func TestDeleteRootCascadesReplies(t *testing.T) {
	service := newTestCommentService(t)
	ctx := context.Background()
	owner := registerCommenter(t, "creator")
	viewer := registerCommenter(t, "viewer")
	media := seedPublishedMedia(t, service, owner.ID)

	root, err := service.Add(ctx, viewer.ID, media.ID, "Gốc", "")
	require.NoError(t, err)
	_, err = service.Add(ctx, owner.ID, media.ID, "Trả lời 1", root.ID)
	require.NoError(t, err)
	_, err = service.Add(ctx, viewer.ID, media.ID, "Trả lời 2", root.ID)
	require.NoError(t, err)
	standalone, err := service.Add(ctx, viewer.ID, media.ID, "Gốc khác", "")
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, root.ID, viewer.ID))

	remaining := service.Table().FindFunc(func(cmt models.Comment) bool {
		return cmt.MediaID == media.ID
	})
	require.Len(t, remaining, 1, "xóa gốc kéo theo mọi trả lời của nó")
	assert.Equal(t, standalone.ID, remaining[0].ID)

	mediaAfter, err := service.media.FindOneByID(media.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), mediaAfter.CommentCount, "commentCount giảm đúng số bình luận đã xóa")
}

func TestDeleteByMediaOwnerAllowed(t *testing.T) {
	service := newTestCommentService(t)
	ctx := context.Background()
	owner := registerCommenter(t, "creator")
	viewer := registerCommenter(t, "viewer")
	stranger := registerCommenter(t, "stranger")
	media := seedPublishedMedia(t, service, owner.ID)

	comment, err := service.Add(ctx, viewer.ID, media.ID, "Bình luận", "")
	require.NoError(t, err)

	assert.ErrorIs(t, service.Delete(ctx, comment.ID, stranger.ID), common.ErrPermission)
	assert.NoError(t, service.Delete(ctx, comment.ID, owner.ID), "chủ media xóa được bình luận trên media của mình")
}

func TestFindForMediaThreadsAndHidesHidden(t *testing.T) {
	service := newTestCommentService(t)
	ctx := context.Background()
	owner := registerCommenter(t, "creator")
	viewer := registerCommenter(t, "viewer")
	media := seedPublishedMedia(t, service, owner.ID)

	first, err := service.Add(ctx, viewer.ID, media.ID, "Gốc 1", "")
	require.NoError(t, err)
	replyA, err := service.Add(ctx, owner.ID, media.ID, "Trả lời A", first.ID)
	require.NoError(t, err)
	// Timestamp tính bằng millisecond; tách hai trả lời ra để thứ tự xác định
	time.Sleep(2 * time.Millisecond)
	replyB, err := service.Add(ctx, viewer.ID, media.ID, "Trả lời B", first.ID)
	require.NoError(t, err)
	hiddenRoot, err := service.Add(ctx, viewer.ID, media.ID, "Sắp bị ẩn", "")
	require.NoError(t, err)
	require.NoError(t, service.SetStatus(ctx, hiddenRoot.ID, models.StatusHidden))

	result, err := service.FindForMedia(ctx, media.ID, viewer.ID, 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), result.Total, "chỉ bình luận gốc normal được phân trang, trả lời không tính riêng")

	root := result.Items[0]
	assert.Equal(t, first.ID, root.ID)
	assert.Equal(t, "viewer", root.Author.Handle)
	require.Len(t, root.Replies, 2)
	assert.Equal(t, replyA.ID, root.Replies[0].ID, "trả lời xếp cũ nhất trước")
	assert.Equal(t, replyB.ID, root.Replies[1].ID)
}

func TestFindForMediaMissingMedia(t *testing.T) {
	service := newTestCommentService(t)

	_, err := service.FindForMedia(context.Background(), "vid_khong_ton_tai", "", 1, 10)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
