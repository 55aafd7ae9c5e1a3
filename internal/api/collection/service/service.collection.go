// Package collectionsvc - service quản lý danh sách phát có thứ tự.
// Position của các mục trong một danh sách luôn là 1..N liên tục; mọi
// thao tác đánh lại số chạy trọn vẹn dưới một write lock của bảng item.
package collectionsvc

import (
	"context"
	"fmt"
	"sort"

	activitymodels "atom_video/internal/api/activity/models"
	activitysvc "atom_video/internal/api/activity/service"
	basesvc "atom_video/internal/api/base/service"
	"atom_video/internal/api/collection/models"
	mediamodels "atom_video/internal/api/media/models"
	"atom_video/internal/common"
	"atom_video/internal/global"
	"atom_video/internal/memstore"
)

// CollectionService quản lý bảng collections và collection_items
type CollectionService struct {
	*basesvc.BaseServiceMemory[models.Collection]
	items    *memstore.Table[models.CollectionItem]
	media    *memstore.Table[mediamodels.MediaItem]
	activity *activitysvc.ActivityService
}

// NewCollectionService tạo service danh sách phát trên các bảng dùng chung
func NewCollectionService() *CollectionService {
	return &CollectionService{
		BaseServiceMemory: basesvc.NewBaseServiceMemory(
			memstore.TableOf[models.Collection](global.Store, global.TableNames.Collections, global.IDPrefixes.Collection)),
		items:    memstore.TableOf[models.CollectionItem](global.Store, global.TableNames.CollectionItems, global.IDPrefixes.CollectionItem),
		media:    memstore.TableOf[mediamodels.MediaItem](global.Store, global.TableNames.MediaItems, global.IDPrefixes.Media),
		activity: activitysvc.NewActivityService(),
	}
}

// ItemView là một mục danh sách phát kèm projection gọn của media
type ItemView struct {
	models.CollectionItem
	Media mediamodels.Snapshot `json:"media"`
}

// ====================================
// CRUD DANH SÁCH PHÁT
// ====================================

// Create tạo danh sách phát mới cho chủ sở hữu.
//
// Parameters:
//   - ctx: Context của request
//   - ownerID: Chủ sở hữu
//   - title, description, visibility: Thông tin danh sách
//
// Returns:
//   - models.Collection: Danh sách vừa tạo
//   - error: Lỗi nếu có
func (s *CollectionService) Create(ctx context.Context, ownerID, title, description, visibility string) (models.Collection, error) {
	created, err := s.InsertOne(ctx, models.Collection{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Visibility:  visibility,
	})
	if err != nil {
		return created, err
	}
	s.activity.Record(ctx, ownerID, "collection.create", activitymodels.TargetCollection, created.GetID())
	return created, nil
}

// CreateWatchLater tạo danh sách "Xem sau" hệ thống cho người dùng mới.
// Gọi đúng một lần khi đăng ký tài khoản.
func (s *CollectionService) CreateWatchLater(ctx context.Context, ownerID string) (models.Collection, error) {
	return s.InsertOne(ctx, models.Collection{
		OwnerID:    ownerID,
		Title:      models.WatchLaterTitle,
		Visibility: models.VisibilityPrivate,
		IsSystem:   true,
	})
}

// Update cập nhật thông tin danh sách phát.
// Chỉ chủ sở hữu được sửa; danh sách hệ thống không sửa được.
//
// Parameters:
//   - ctx: Context của request
//   - id: ID danh sách
//   - ownerID: Người đang thao tác
//   - apply: Hàm áp thay đổi lên danh sách
//
// Returns:
//   - models.Collection: Danh sách sau khi sửa
//   - error: common.ErrNotFound, common.ErrPermission hoặc common.ErrSystemCollection
func (s *CollectionService) Update(ctx context.Context, id, ownerID string, apply func(*models.Collection) error) (models.Collection, error) {
	updated, err := s.UpdateById(ctx, id, func(col *models.Collection) error {
		if col.OwnerID != ownerID {
			return common.ErrPermission
		}
		if col.IsSystem {
			return common.ErrSystemCollection
		}
		return apply(col)
	})
	if err != nil {
		return updated, err
	}
	s.activity.Record(ctx, ownerID, "collection.update", activitymodels.TargetCollection, id)
	return updated, nil
}

// Delete xóa danh sách phát và toàn bộ mục bên trong.
// Chỉ chủ sở hữu được xóa; danh sách hệ thống không xóa được.
func (s *CollectionService) Delete(ctx context.Context, id, ownerID string) error {
	col, err := s.FindOneById(ctx, id)
	if err != nil {
		return err
	}
	if col.OwnerID != ownerID {
		return common.ErrPermission
	}
	if col.IsSystem {
		return common.ErrSystemCollection
	}

	if err := s.DeleteById(ctx, id); err != nil {
		return err
	}

	// Cascade: xóa mọi mục của danh sách
	s.items.Mutate(func(tx *memstore.Tx[models.CollectionItem]) error {
		for _, item := range tx.All() {
			if item.CollectionID == id {
				tx.Delete(item.GetID())
			}
		}
		return nil
	})

	s.activity.Record(ctx, ownerID, "collection.delete", activitymodels.TargetCollection, id)
	return nil
}

// FindVisible tìm danh sách phát theo ID với kiểm tra hiển thị:
// danh sách private chỉ chủ sở hữu thấy; unlisted và public ai cũng thấy.
func (s *CollectionService) FindVisible(ctx context.Context, id, viewerID string) (models.Collection, error) {
	col, err := s.FindOneById(ctx, id)
	if err != nil {
		return col, err
	}
	if col.Visibility == models.VisibilityPrivate && col.OwnerID != viewerID {
		return models.Collection{}, common.ErrPermission
	}
	return col, nil
}

// FindByOwner trả về danh sách phát của một người dùng, mới nhất trước.
// Người xem khác chủ sở hữu chỉ thấy danh sách public.
func (s *CollectionService) FindByOwner(ctx context.Context, ownerID, viewerID string, page, limit int64) (*memstore.PaginateResult[models.Collection], error) {
	filter := memstore.NewFilter().Eq("ownerId", ownerID)
	if viewerID != ownerID {
		filter = filter.Eq("visibility", models.VisibilityPublic)
	}
	return s.FindWithPagination(ctx, filter, memstore.DefaultSort(), page, limit)
}

// ====================================
// CÁC THAO TÁC TRÊN MỤC
// ====================================

// Items trả về các mục của danh sách theo đúng thứ tự position, kèm
// projection gọn của media.
func (s *CollectionService) Items(ctx context.Context, collectionID, viewerID string) ([]ItemView, error) {
	if _, err := s.FindVisible(ctx, collectionID, viewerID); err != nil {
		return nil, err
	}

	items := s.items.FindFunc(func(item models.CollectionItem) bool {
		return item.CollectionID == collectionID
	})
	sort.Slice(items, func(i, j int) bool { return items[i].Position < items[j].Position })

	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		view := ItemView{CollectionItem: item}
		if media, err := s.media.FindOneByID(item.MediaID); err == nil {
			view.Media = media.ToSnapshot()
		}
		views = append(views, view)
	}
	return views, nil
}

// AddItem thêm media vào cuối danh sách phát.
// Media phải tồn tại; media đã có trong danh sách là common.ErrDuplicate.
//
// Parameters:
//   - ctx: Context của request
//   - collectionID: Danh sách đích
//   - ownerID: Người đang thao tác, phải là chủ sở hữu
//   - mediaID: Media cần thêm
//
// Returns:
//   - models.CollectionItem: Mục vừa thêm với position = N+1
//   - error: Lỗi nếu có
func (s *CollectionService) AddItem(ctx context.Context, collectionID, ownerID, mediaID string) (models.CollectionItem, error) {
	var added models.CollectionItem
	if err := s.checkItemMutation(ctx, collectionID, ownerID); err != nil {
		return added, err
	}
	if !s.media.Exists(mediaID) {
		return added, common.ErrNotFound
	}

	err := s.items.Mutate(func(tx *memstore.Tx[models.CollectionItem]) error {
		var max int64
		for _, item := range tx.All() {
			if item.CollectionID != collectionID {
				continue
			}
			if item.MediaID == mediaID {
				return common.ErrDuplicate
			}
			if item.Position > max {
				max = item.Position
			}
		}
		added = tx.Insert(models.CollectionItem{
			CollectionID: collectionID,
			MediaID:      mediaID,
			Position:     max + 1,
		})
		return nil
	})
	if err != nil {
		return added, err
	}

	s.adjustItemCount(ctx, collectionID, 1)
	s.activity.Record(ctx, ownerID, "collection.item.add", activitymodels.TargetCollection, collectionID)
	return added, nil
}

// RemoveItem xóa media khỏi danh sách phát và dồn các mục phía sau lên.
//
// Returns:
//   - error: common.ErrNotFound nếu media không có trong danh sách
func (s *CollectionService) RemoveItem(ctx context.Context, collectionID, ownerID, mediaID string) error {
	if err := s.checkItemMutation(ctx, collectionID, ownerID); err != nil {
		return err
	}

	err := s.items.Mutate(func(tx *memstore.Tx[models.CollectionItem]) error {
		var removed *models.CollectionItem
		for _, item := range tx.All() {
			if item.CollectionID == collectionID && item.MediaID == mediaID {
				removed = &item
				break
			}
		}
		if removed == nil {
			return common.ErrNotFound
		}

		tx.Delete(removed.GetID())
		for _, item := range tx.All() {
			if item.CollectionID == collectionID && item.Position > removed.Position {
				item.Position--
				tx.Put(item)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.adjustItemCount(ctx, collectionID, -1)
	s.activity.Record(ctx, ownerID, "collection.item.remove", activitymodels.TargetCollection, collectionID)
	return nil
}

// MoveItem di chuyển media tới vị trí mới trong danh sách phát.
// newPosition nằm ngoài [1, N] được clamp về biên gần nhất; vị trí mới
// trùng vị trí cũ là no-op.
//
// Returns:
//   - error: common.ErrNotFound nếu media không có trong danh sách
func (s *CollectionService) MoveItem(ctx context.Context, collectionID, ownerID, mediaID string, newPosition int64) error {
	if err := s.checkItemMutation(ctx, collectionID, ownerID); err != nil {
		return err
	}

	var moved bool
	err := s.items.Mutate(func(tx *memstore.Tx[models.CollectionItem]) error {
		var listItems []models.CollectionItem
		for _, item := range tx.All() {
			if item.CollectionID == collectionID {
				listItems = append(listItems, item)
			}
		}

		var fromPos int64
		for _, item := range listItems {
			if item.MediaID == mediaID {
				fromPos = item.Position
				break
			}
		}
		if fromPos == 0 {
			return common.ErrNotFound
		}

		assertContiguous(collectionID, listItems)

		n := int64(len(listItems))
		toPos := newPosition
		if toPos < 1 {
			toPos = 1
		}
		if toPos > n {
			toPos = n
		}
		if toPos == fromPos {
			return nil
		}

		for _, item := range ReorderPositions(listItems, fromPos, toPos) {
			tx.Put(item)
		}
		moved = true
		return nil
	})
	if err != nil {
		return err
	}
	// No-op không chạm updatedAt và không ghi nhật ký
	if !moved {
		return nil
	}

	// Danh sách đổi thứ tự cũng tính là thay đổi
	s.UpdateById(ctx, collectionID, func(*models.Collection) error { return nil })
	s.activity.Record(ctx, ownerID, "collection.item.move", activitymodels.TargetCollection, collectionID)
	return nil
}

// RemoveMediaEverywhere xóa media khỏi mọi danh sách phát và dồn position.
// Dùng khi media bị xóa khỏi hệ thống.
func (s *CollectionService) RemoveMediaEverywhere(ctx context.Context, mediaID string) {
	touched := make(map[string]int64)
	s.items.Mutate(func(tx *memstore.Tx[models.CollectionItem]) error {
		for _, item := range tx.All() {
			if item.MediaID != mediaID {
				continue
			}
			tx.Delete(item.GetID())
			touched[item.CollectionID] = item.Position
		}
		for collectionID, removedPos := range touched {
			for _, item := range tx.All() {
				if item.CollectionID == collectionID && item.Position > removedPos {
					item.Position--
					tx.Put(item)
				}
			}
		}
		return nil
	})
	for collectionID := range touched {
		s.adjustItemCount(ctx, collectionID, -1)
	}
}

// checkItemMutation kiểm tra quyền thao tác mục: danh sách phải tồn tại,
// người thao tác phải là chủ sở hữu và không phải danh sách hệ thống.
// Danh sách hệ thống từ chối mọi thao tác ghi từ phía người gọi; chỉ
// cascade nội bộ (RemoveMediaEverywhere) được đụng vào các mục của nó.
func (s *CollectionService) checkItemMutation(ctx context.Context, collectionID, ownerID string) error {
	col, err := s.FindOneById(ctx, collectionID)
	if err != nil {
		return err
	}
	if col.OwnerID != ownerID {
		return common.ErrPermission
	}
	if col.IsSystem {
		return common.ErrSystemCollection
	}
	return nil
}

// adjustItemCount cộng delta vào itemCount của danh sách
func (s *CollectionService) adjustItemCount(ctx context.Context, collectionID string, delta int64) {
	s.UpdateById(ctx, collectionID, func(col *models.Collection) error {
		col.ItemCount += delta
		return nil
	})
}

// assertContiguous panic nếu position của danh sách không còn 1..N liên tục.
// Gap ở đây nghĩa là bất biến của bảng đã hỏng, không phải lỗi nghiệp vụ.
func assertContiguous(collectionID string, items []models.CollectionItem) {
	seen := make(map[int64]bool, len(items))
	for _, item := range items {
		seen[item.Position] = true
	}
	for p := int64(1); p <= int64(len(items)); p++ {
		if !seen[p] {
			panic(fmt.Sprintf("collection %s: position %d bị hổng, bất biến 1..N đã hỏng", collectionID, p))
		}
	}
}
