package collectionsvc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	activitymodels "atom_video/internal/api/activity/models"
	"atom_video/internal/api/collection/models"
	mediamodels "atom_video/internal/api/media/models"
	"atom_video/internal/common"
	"atom_video/internal/global"
	"atom_video/internal/memstore"
)

// newTestService dựng service trên một store mới tinh cho mỗi test
func newTestService(t *testing.T) *CollectionService {
	t.Helper()
	global.Store = memstore.NewStore()
	return NewCollectionService()
}

// seedMedia chèn media thẳng vào bảng media dùng chung
func seedMedia(t *testing.T, title string) mediamodels.MediaItem {
	t.Helper()
	table := memstore.TableOf[mediamodels.MediaItem](global.Store, global.TableNames.MediaItems, global.IDPrefixes.Media)
	media, err := table.InsertOne(mediamodels.MediaItem{
		OwnerID:    "usr_owner",
		Title:      title,
		Status:     mediamodels.StatusPublished,
		Visibility: mediamodels.VisibilityPublic,
	})
	require.NoError(t, err)
	return media
}

// itemOrder trả về media của danh sách theo thứ tự position
func itemOrder(t *testing.T, service *CollectionService, collectionID, viewerID string) []string {
	t.Helper()
	views, err := service.Items(context.Background(), collectionID, viewerID)
	require.NoError(t, err)
	order := make([]string, len(views))
	for i, view := range views {
		require.Equal(t, int64(i+1), view.Position, "position phải liên tục 1..N theo thứ tự trả về")
		order[i] = view.MediaID
	}
	return order
}

func TestAddItemAppendsAtEnd(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	col, err := service.Create(ctx, "usr_1", "Danh sách của tôi", "", models.VisibilityPublic)
	require.NoError(t, err)

	a := seedMedia(t, "A")
	b := seedMedia(t, "B")

	first, err := service.AddItem(ctx, col.ID, "usr_1", a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Position)

	second, err := service.AddItem(ctx, col.ID, "usr_1", b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Position)

	updated, err := service.FindOneById(ctx, col.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.ItemCount, "itemCount phải khớp số mục thật")
}

func TestAddItemRejectsDuplicateAndMissingMedia(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	col, err := service.Create(ctx, "usr_1", "Danh sách", "", models.VisibilityPublic)
	require.NoError(t, err)
	a := seedMedia(t, "A")

	_, err = service.AddItem(ctx, col.ID, "usr_1", a.ID)
	require.NoError(t, err)

	_, err = service.AddItem(ctx, col.ID, "usr_1", a.ID)
	assert.ErrorIs(t, err, common.ErrDuplicate, "cùng một media không vào danh sách hai lần")

	_, err = service.AddItem(ctx, col.ID, "usr_1", "vid_khong_ton_tai")
	assert.ErrorIs(t, err, common.ErrNotFound)

	updated, err := service.FindOneById(ctx, col.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.ItemCount, "thao tác thất bại không được đổi itemCount")
}

func TestAddItemOnlyOwner(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	col, err := service.Create(ctx, "usr_1", "Danh sách", "", models.VisibilityPublic)
	require.NoError(t, err)
	a := seedMedia(t, "A")

	_, err = service.AddItem(ctx, col.ID, "usr_2", a.ID)
	assert.ErrorIs(t, err, common.ErrPermission)
}

func TestRemoveItemRenumbersFollowing(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	col, err := service.Create(ctx, "usr_1", "Danh sách", "", models.VisibilityPublic)
	require.NoError(t, err)

	a, b, c := seedMedia(t, "A"), seedMedia(t, "B"), seedMedia(t, "C")
	for _, media := range []mediamodels.MediaItem{a, b, c} {
		_, err := service.AddItem(ctx, col.ID, "usr_1", media.ID)
		require.NoError(t, err)
	}

	require.NoError(t, service.RemoveItem(ctx, col.ID, "usr_1", b.ID))
	assert.Equal(t, []string{a.ID, c.ID}, itemOrder(t, service, col.ID, "usr_1"), "mục phía sau phải dồn lên")

	err = service.RemoveItem(ctx, col.ID, "usr_1", b.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestMoveItemHonorsTargetAndClampsOutOfRange(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	col, err := service.Create(ctx, "usr_1", "Danh sách", "", models.VisibilityPublic)
	require.NoError(t, err)

	a, b, c, d := seedMedia(t, "A"), seedMedia(t, "B"), seedMedia(t, "C"), seedMedia(t, "D")
	for _, media := range []mediamodels.MediaItem{a, b, c, d} {
		_, err := service.AddItem(ctx, col.ID, "usr_1", media.ID)
		require.NoError(t, err)
	}

	// Kéo D lên vị trí 2
	require.NoError(t, service.MoveItem(ctx, col.ID, "usr_1", d.ID, 2))
	assert.Equal(t, []string{a.ID, d.ID, b.ID, c.ID}, itemOrder(t, service, col.ID, "usr_1"))

	// Vị trí vượt quá N clamp về cuối
	require.NoError(t, service.MoveItem(ctx, col.ID, "usr_1", a.ID, 99))
	assert.Equal(t, []string{d.ID, b.ID, c.ID, a.ID}, itemOrder(t, service, col.ID, "usr_1"))

	// Vị trí dưới 1 clamp về đầu
	require.NoError(t, service.MoveItem(ctx, col.ID, "usr_1", c.ID, 0))
	assert.Equal(t, []string{c.ID, d.ID, b.ID, a.ID}, itemOrder(t, service, col.ID, "usr_1"))

	// Media không có trong danh sách
	other := seedMedia(t, "khác")
	err = service.MoveItem(ctx, col.ID, "usr_1", other.ID, 1)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestContiguityHoldsUnderMixedOperations(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	col, err := service.Create(ctx, "usr_1", "Danh sách", "", models.VisibilityPublic)
	require.NoError(t, err)

	var mediaIDs []string
	for i := 0; i < 6; i++ {
		media := seedMedia(t, "media")
		mediaIDs = append(mediaIDs, media.ID)
		_, err := service.AddItem(ctx, col.ID, "usr_1", media.ID)
		require.NoError(t, err)
	}

	require.NoError(t, service.MoveItem(ctx, col.ID, "usr_1", mediaIDs[5], 1))
	require.NoError(t, service.RemoveItem(ctx, col.ID, "usr_1", mediaIDs[2]))
	require.NoError(t, service.MoveItem(ctx, col.ID, "usr_1", mediaIDs[0], 5))
	require.NoError(t, service.RemoveItem(ctx, col.ID, "usr_1", mediaIDs[5]))

	// itemOrder tự kiểm tra position 1..N liên tục
	order := itemOrder(t, service, col.ID, "usr_1")
	assert.Len(t, order, 4)

	updated, err := service.FindOneById(ctx, col.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), updated.ItemCount)
}

func TestMoveItemSamePositionIsNoop(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	col, err := service.Create(ctx, "usr_1", "Danh sách", "", models.VisibilityPublic)
	require.NoError(t, err)
	a := seedMedia(t, "A")
	b := seedMedia(t, "B")
	_, err = service.AddItem(ctx, col.ID, "usr_1", a.ID)
	require.NoError(t, err)
	_, err = service.AddItem(ctx, col.ID, "usr_1", b.ID)
	require.NoError(t, err)

	before, err := service.FindOneById(ctx, col.ID)
	require.NoError(t, err)
	moveLogs := func() int64 {
		return activityTable().Count(memstore.NewFilter().
			Eq("action", "collection.item.move").
			Eq("targetId", col.ID))
	}
	logsBefore := moveLogs()

	// Timestamp tính bằng millisecond nên phải để mốc thời gian trôi qua
	// trước khi kiểm tra updatedAt không đổi
	time.Sleep(2 * time.Millisecond)

	// A đang ở vị trí 1, di chuyển về 1 là no-op
	require.NoError(t, service.MoveItem(ctx, col.ID, "usr_1", a.ID, 1))

	after, err := service.FindOneById(ctx, col.ID)
	require.NoError(t, err)
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt, "no-op không được chạm updatedAt")
	assert.Equal(t, logsBefore, moveLogs(), "no-op không được ghi nhật ký hoạt động")
	assert.Equal(t, []string{a.ID, b.ID}, itemOrder(t, service, col.ID, "usr_1"))
}

// activityTable trả về bảng nhật ký hoạt động dùng chung
func activityTable() *memstore.Table[activitymodels.ActivityEntry] {
	return memstore.TableOf[activitymodels.ActivityEntry](global.Store, global.TableNames.ActivityLogs, global.IDPrefixes.Activity)
}

func TestSystemCollectionRejectsAllMutation(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	watchLater, err := service.CreateWatchLater(ctx, "usr_1")
	require.NoError(t, err)

	// Metadata và xóa bị chặn
	_, err = service.Update(ctx, watchLater.ID, "usr_1", func(col *models.Collection) error {
		col.Title = "tên khác"
		return nil
	})
	assert.ErrorIs(t, err, common.ErrSystemCollection)
	assert.ErrorIs(t, service.Delete(ctx, watchLater.ID, "usr_1"), common.ErrSystemCollection)

	// Thao tác trên mục cũng bị chặn, kể cả với chủ sở hữu
	a := seedMedia(t, "A")
	_, err = service.AddItem(ctx, watchLater.ID, "usr_1", a.ID)
	assert.ErrorIs(t, err, common.ErrSystemCollection)
	assert.ErrorIs(t, service.RemoveItem(ctx, watchLater.ID, "usr_1", a.ID), common.ErrSystemCollection)
	assert.ErrorIs(t, service.MoveItem(ctx, watchLater.ID, "usr_1", a.ID, 1), common.ErrSystemCollection)
}

func TestFindVisiblePrivateCollection(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	col, err := service.Create(ctx, "usr_1", "Riêng tư", "", models.VisibilityPrivate)
	require.NoError(t, err)

	_, err = service.FindVisible(ctx, col.ID, "usr_1")
	assert.NoError(t, err, "chủ sở hữu luôn thấy danh sách private của mình")

	_, err = service.FindVisible(ctx, col.ID, "usr_2")
	assert.ErrorIs(t, err, common.ErrPermission)

	_, err = service.FindVisible(ctx, col.ID, "")
	assert.ErrorIs(t, err, common.ErrPermission, "khách không thấy danh sách private")
}

func TestDeleteCollectionCascadesItems(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	col, err := service.Create(ctx, "usr_1", "Sắp xóa", "", models.VisibilityPublic)
	require.NoError(t, err)
	a := seedMedia(t, "A")
	_, err = service.AddItem(ctx, col.ID, "usr_1", a.ID)
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, col.ID, "usr_1"))

	orphans := service.items.FindFunc(func(item models.CollectionItem) bool {
		return item.CollectionID == col.ID
	})
	assert.Empty(t, orphans, "xóa danh sách phải xóa hết mục bên trong")
}

func TestRemoveMediaEverywhere(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	colA, err := service.Create(ctx, "usr_1", "A", "", models.VisibilityPublic)
	require.NoError(t, err)
	colB, err := service.Create(ctx, "usr_2", "B", "", models.VisibilityPublic)
	require.NoError(t, err)

	shared := seedMedia(t, "chung")
	other := seedMedia(t, "khác")

	_, err = service.AddItem(ctx, colA.ID, "usr_1", shared.ID)
	require.NoError(t, err)
	_, err = service.AddItem(ctx, colA.ID, "usr_1", other.ID)
	require.NoError(t, err)
	_, err = service.AddItem(ctx, colB.ID, "usr_2", shared.ID)
	require.NoError(t, err)

	service.RemoveMediaEverywhere(ctx, shared.ID)

	assert.Equal(t, []string{other.ID}, itemOrder(t, service, colA.ID, "usr_1"))
	assert.Empty(t, itemOrder(t, service, colB.ID, "usr_2"))

	updatedA, err := service.FindOneById(ctx, colA.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updatedA.ItemCount)
}
