// Package mediasvc - service quản lý vòng đời media: đăng, sửa, phát hành,
// xóa cascade, tìm kiếm và projection chi tiết cho người xem.
package mediasvc

import (
	"context"
	"sort"

	activitymodels "atom_video/internal/api/activity/models"
	activitysvc "atom_video/internal/api/activity/service"
	authmodels "atom_video/internal/api/auth/models"
	authsvc "atom_video/internal/api/auth/service"
	basesvc "atom_video/internal/api/base/service"
	collectionsvc "atom_video/internal/api/collection/service"
	commentmodels "atom_video/internal/api/comment/models"
	ledgersvc "atom_video/internal/api/ledger/service"
	"atom_video/internal/api/media/dto"
	"atom_video/internal/api/media/models"
	"atom_video/internal/common"
	"atom_video/internal/global"
	"atom_video/internal/memstore"
	"atom_video/internal/utility"
)

// MediaService quản lý bảng media_items và các quan hệ xung quanh nó
type MediaService struct {
	*basesvc.BaseServiceMemory[models.MediaItem]
	users       *memstore.Table[authmodels.User]
	comments    *memstore.Table[commentmodels.Comment]
	collections *collectionsvc.CollectionService
	ledger      *ledgersvc.LedgerService
	activity    *activitysvc.ActivityService
}

// NewMediaService tạo service media trên các bảng dùng chung
func NewMediaService() *MediaService {
	return &MediaService{
		BaseServiceMemory: basesvc.NewBaseServiceMemory(
			memstore.TableOf[models.MediaItem](global.Store, global.TableNames.MediaItems, global.IDPrefixes.Media)),
		users:       authsvc.UserTable(),
		comments:    memstore.TableOf[commentmodels.Comment](global.Store, global.TableNames.MediaComments, global.IDPrefixes.Comment),
		collections: collectionsvc.NewCollectionService(),
		ledger:      ledgersvc.NewLedgerService(),
		activity:    activitysvc.NewActivityService(),
	}
}

// MediaView là projection chi tiết của media cho một người xem cụ thể.
// Author chỉ chứa các trường công khai; các cờ membership mặc định false
// với người xem ẩn danh.
type MediaView struct {
	models.MediaItem
	Author       authmodels.PublicUser `json:"author"`
	IsLiked      bool                  `json:"isLiked"`
	IsDisliked   bool                  `json:"isDisliked"`
	IsFavorited  bool                  `json:"isFavorited"`
	IsSubscribed bool                  `json:"isSubscribed"`
}

// ====================================
// VÒNG ĐỜI MEDIA
// ====================================

// Create đăng media mới ở trạng thái draft.
//
// Parameters:
//   - ctx: Context của request
//   - ownerID: Creator đăng media
//   - input: Thông tin media đã validate
//
// Returns:
//   - models.MediaItem: Media vừa tạo
//   - error: Lỗi nếu có
func (s *MediaService) Create(ctx context.Context, ownerID string, input *dto.CreateMediaInput) (models.MediaItem, error) {
	media, err := s.InsertOne(ctx, models.MediaItem{
		Title:           input.Title,
		Description:     input.Description,
		OwnerID:         ownerID,
		Category:        input.Category,
		Tags:            dedupeTags(input.Tags),
		Status:          models.StatusDraft,
		Visibility:      input.Visibility,
		PlaybackURL:     input.PlaybackURL,
		ThumbnailURL:    input.ThumbnailURL,
		DurationSeconds: input.DurationSeconds,
	})
	if err != nil {
		return media, err
	}

	s.users.UpdateByID(ownerID, func(u *authmodels.User) error {
		u.MediaCount++
		return nil
	})
	s.activity.Record(ctx, ownerID, "media.create", activitymodels.TargetMedia, media.GetID())
	return media, nil
}

// Update cập nhật thông tin media; chỉ chủ sở hữu được sửa
func (s *MediaService) Update(ctx context.Context, id, ownerID string, input *dto.UpdateMediaInput) (models.MediaItem, error) {
	media, err := s.UpdateById(ctx, id, func(m *models.MediaItem) error {
		if m.OwnerID != ownerID {
			return common.ErrPermission
		}
		if input.Title != nil {
			m.Title = *input.Title
		}
		if input.Description != nil {
			m.Description = *input.Description
		}
		if input.Category != nil {
			m.Category = *input.Category
		}
		if input.Tags != nil {
			m.Tags = dedupeTags(*input.Tags)
		}
		if input.ThumbnailURL != nil {
			m.ThumbnailURL = *input.ThumbnailURL
		}
		if input.Visibility != nil {
			m.Visibility = *input.Visibility
		}
		return nil
	})
	if err != nil {
		return media, err
	}
	s.activity.Record(ctx, ownerID, "media.update", activitymodels.TargetMedia, id)
	return media, nil
}

// Publish phát hành media: draft hoặc pending chuyển sang published và
// ghi nhận thời điểm phát hành. Trạng thái khác là common.ErrInvalidOperation.
func (s *MediaService) Publish(ctx context.Context, id, ownerID string) (models.MediaItem, error) {
	media, err := s.UpdateById(ctx, id, func(m *models.MediaItem) error {
		if m.OwnerID != ownerID {
			return common.ErrPermission
		}
		if m.Status != models.StatusDraft && m.Status != models.StatusPending {
			return common.ErrInvalidOperation
		}
		m.Status = models.StatusPublished
		now := memstore.Timestamp(utility.CurrentTimeInMilli())
		m.PublishedAt = &now
		return nil
	})
	if err != nil {
		return media, err
	}
	s.activity.Record(ctx, ownerID, "media.publish", activitymodels.TargetMedia, id)
	return media, nil
}

// Reject từ chối media đang chờ duyệt; thao tác của admin.
func (s *MediaService) Reject(ctx context.Context, id, adminID string) (models.MediaItem, error) {
	media, err := s.UpdateById(ctx, id, func(m *models.MediaItem) error {
		if m.Status != models.StatusPending && m.Status != models.StatusDraft {
			return common.ErrInvalidOperation
		}
		m.Status = models.StatusRejected
		return nil
	})
	if err != nil {
		return media, err
	}
	s.activity.Record(ctx, adminID, "media.reject", activitymodels.TargetMedia, id)
	return media, nil
}

// Delete xóa media cùng mọi dữ liệu phụ thuộc: bình luận của nó và mục
// trong mọi danh sách phát. Chỉ chủ sở hữu được xóa.
func (s *MediaService) Delete(ctx context.Context, id, ownerID string) error {
	media, err := s.FindOneById(ctx, id)
	if err != nil {
		return err
	}
	if media.OwnerID != ownerID {
		return common.ErrPermission
	}

	if err := s.DeleteById(ctx, id); err != nil {
		return err
	}

	// Cascade: bình luận của media
	s.comments.Mutate(func(tx *memstore.Tx[commentmodels.Comment]) error {
		for _, cmt := range tx.All() {
			if cmt.MediaID == id {
				tx.Delete(cmt.GetID())
			}
		}
		return nil
	})

	// Cascade: mục trong mọi danh sách phát
	s.collections.RemoveMediaEverywhere(ctx, id)

	s.users.UpdateByID(ownerID, func(u *authmodels.User) error {
		u.MediaCount--
		return nil
	})
	s.activity.Record(ctx, ownerID, "media.delete", activitymodels.TargetMedia, id)
	return nil
}

// ====================================
// ĐỌC VÀ TÌM KIẾM
// ====================================

// FindVisible tìm media theo ID với kiểm tra hiển thị: media private hoặc
// chưa phát hành chỉ chủ sở hữu thấy.
func (s *MediaService) FindVisible(ctx context.Context, id, viewerID string) (models.MediaItem, error) {
	media, err := s.FindOneById(ctx, id)
	if err != nil {
		return media, err
	}
	if media.OwnerID == viewerID {
		return media, nil
	}
	if media.Status != models.StatusPublished || media.Visibility == models.VisibilityPrivate {
		return models.MediaItem{}, common.ErrPermission
	}
	return media, nil
}

// Detail trả về projection chi tiết của media cho một người xem
func (s *MediaService) Detail(ctx context.Context, id, viewerID string) (MediaView, error) {
	media, err := s.FindVisible(ctx, id, viewerID)
	if err != nil {
		return MediaView{}, err
	}
	return s.project(media, viewerID), nil
}

// Search tìm media đã phát hành public: keyword so khớp chuỗi con trên
// title không phân biệt hoa thường, category so khớp chính xác, tags so
// khớp tập. Tham số rỗng bỏ qua điều kiện tương ứng.
func (s *MediaService) Search(ctx context.Context, keyword, category string, tags []string, sortBy memstore.Sort, page, limit int64) (*memstore.PaginateResult[MediaView], error) {
	filter := memstore.NewFilter().
		Eq("status", models.StatusPublished).
		Eq("visibility", models.VisibilityPublic).
		Contains("title", keyword).
		Eq("category", category).
		In("tags", tags)

	result, err := s.FindWithPagination(ctx, filter, sortBy, page, limit)
	if err != nil {
		return nil, err
	}
	return s.projectPage(result, ""), nil
}

// FindByOwner trả về media của một kênh. Người xem khác chủ sở hữu chỉ
// thấy media đã phát hành public.
func (s *MediaService) FindByOwner(ctx context.Context, ownerID, viewerID string, page, limit int64) (*memstore.PaginateResult[MediaView], error) {
	filter := memstore.NewFilter().Eq("ownerId", ownerID)
	if viewerID != ownerID {
		filter = filter.Eq("status", models.StatusPublished).Eq("visibility", models.VisibilityPublic)
	}
	result, err := s.FindWithPagination(ctx, filter, memstore.DefaultSort(), page, limit)
	if err != nil {
		return nil, err
	}
	return s.projectPage(result, viewerID), nil
}

// ListTags trả về mọi tag xuất hiện trên media đã phát hành, theo thứ tự
// từ điển
func (s *MediaService) ListTags(ctx context.Context) ([]string, error) {
	published := s.Table().FindFunc(func(m models.MediaItem) bool {
		return m.Status == models.StatusPublished
	})
	seen := make(map[string]bool)
	var tags []string
	for _, media := range published {
		for _, tag := range media.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags, nil
}

// ====================================
// PROJECTION
// ====================================

// project gắn thông tin tác giả và các cờ membership của người xem vào media.
// Chạy lại trên mỗi lần đọc, không cache.
func (s *MediaService) project(media models.MediaItem, viewerID string) MediaView {
	view := MediaView{MediaItem: media}
	if author, err := s.users.FindOneByID(media.OwnerID); err == nil {
		view.Author = author.Public()
	}
	if viewerID == "" {
		return view
	}
	viewer, err := s.users.FindOneByID(viewerID)
	if err != nil {
		return view
	}
	view.IsLiked = utility.Contains(viewer.LikedMediaIDs, media.GetID())
	view.IsDisliked = utility.Contains(viewer.DislikedMediaIDs, media.GetID())
	view.IsFavorited = utility.Contains(viewer.FavoriteMediaIDs, media.GetID())
	view.IsSubscribed = utility.Contains(viewer.FollowingIDs, media.OwnerID)
	return view
}

// projectPage áp projection lên từng phần tử của một trang kết quả
func (s *MediaService) projectPage(result *memstore.PaginateResult[models.MediaItem], viewerID string) *memstore.PaginateResult[MediaView] {
	views := make([]MediaView, 0, len(result.Items))
	for _, media := range result.Items {
		views = append(views, s.project(media, viewerID))
	}
	return &memstore.PaginateResult[MediaView]{
		Items:     views,
		Page:      result.Page,
		Limit:     result.Limit,
		ItemCount: result.ItemCount,
		Total:     result.Total,
		TotalPage: result.TotalPage,
		HasMore:   result.HasMore,
	}
}

// dedupeTags loại tag trùng lặp, giữ thứ tự xuất hiện đầu tiên
func dedupeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag != "" && !seen[tag] {
			seen[tag] = true
			result = append(result, tag)
		}
	}
	return result
}
