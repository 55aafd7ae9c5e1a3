package mediasvc

import (
	"context"

	activitymodels "atom_video/internal/api/activity/models"
	authmodels "atom_video/internal/api/auth/models"
	"atom_video/internal/api/media/dto"
	"atom_video/internal/api/media/models"
	"atom_video/internal/memstore"
	"atom_video/internal/utility"
)

// maxWatchHistory là số mục tối đa trong lịch sử xem của một người dùng;
// mục cũ nhất bị cắt khi vượt quá
const maxWatchHistory = 200

// ====================================
// TOGGLE LIKE / DISLIKE / FAVORITE
// ====================================

// ToggleLike đảo trạng thái thích media của người dùng.
// Thích một media đang không thích sẽ đồng thời gỡ không thích; toggle hai
// lần đưa mọi counter về trạng thái ban đầu.
//
// Parameters:
//   - ctx: Context của request
//   - userID: Người thao tác
//   - mediaID: Media đích, phải nhìn thấy được với người thao tác
//
// Returns:
//   - bool: true nếu sau thao tác media đang được thích
//   - error: Lỗi nếu có
func (s *MediaService) ToggleLike(ctx context.Context, userID, mediaID string) (bool, error) {
	if _, err := s.FindVisible(ctx, mediaID, userID); err != nil {
		return false, err
	}

	var liked, droppedDislike bool
	if _, err := s.users.UpdateByID(userID, func(u *authmodels.User) error {
		u.LikedMediaIDs, liked = utility.Toggle(u.LikedMediaIDs, mediaID)
		if liked {
			u.DislikedMediaIDs, droppedDislike = utility.Remove(u.DislikedMediaIDs, mediaID)
		}
		return nil
	}); err != nil {
		return false, err
	}

	if _, err := s.UpdateById(ctx, mediaID, func(m *models.MediaItem) error {
		if liked {
			m.LikeCount++
		} else {
			m.LikeCount--
		}
		if droppedDislike {
			m.DislikeCount--
		}
		return nil
	}); err != nil {
		return liked, err
	}

	action := "media.like"
	if !liked {
		action = "media.unlike"
	}
	s.activity.Record(ctx, userID, action, activitymodels.TargetMedia, mediaID)
	return liked, nil
}

// ToggleDislike đảo trạng thái không thích media của người dùng.
// Đối xứng với ToggleLike: bật không thích sẽ gỡ thích nếu có.
func (s *MediaService) ToggleDislike(ctx context.Context, userID, mediaID string) (bool, error) {
	if _, err := s.FindVisible(ctx, mediaID, userID); err != nil {
		return false, err
	}

	var disliked, droppedLike bool
	if _, err := s.users.UpdateByID(userID, func(u *authmodels.User) error {
		u.DislikedMediaIDs, disliked = utility.Toggle(u.DislikedMediaIDs, mediaID)
		if disliked {
			u.LikedMediaIDs, droppedLike = utility.Remove(u.LikedMediaIDs, mediaID)
		}
		return nil
	}); err != nil {
		return false, err
	}

	if _, err := s.UpdateById(ctx, mediaID, func(m *models.MediaItem) error {
		if disliked {
			m.DislikeCount++
		} else {
			m.DislikeCount--
		}
		if droppedLike {
			m.LikeCount--
		}
		return nil
	}); err != nil {
		return disliked, err
	}

	action := "media.dislike"
	if !disliked {
		action = "media.undislike"
	}
	s.activity.Record(ctx, userID, action, activitymodels.TargetMedia, mediaID)
	return disliked, nil
}

// ToggleFavorite đảo trạng thái lưu yêu thích media của người dùng
func (s *MediaService) ToggleFavorite(ctx context.Context, userID, mediaID string) (bool, error) {
	if _, err := s.FindVisible(ctx, mediaID, userID); err != nil {
		return false, err
	}

	var favorited bool
	if _, err := s.users.UpdateByID(userID, func(u *authmodels.User) error {
		u.FavoriteMediaIDs, favorited = utility.Toggle(u.FavoriteMediaIDs, mediaID)
		return nil
	}); err != nil {
		return false, err
	}

	if _, err := s.UpdateById(ctx, mediaID, func(m *models.MediaItem) error {
		if favorited {
			m.FavoriteCount++
		} else {
			m.FavoriteCount--
		}
		return nil
	}); err != nil {
		return favorited, err
	}

	action := "media.favorite"
	if !favorited {
		action = "media.unfavorite"
	}
	s.activity.Record(ctx, userID, action, activitymodels.TargetMedia, mediaID)
	return favorited, nil
}

// ====================================
// LƯỢT XEM VÀ TIẾN ĐỘ
// ====================================

// RecordView ghi nhận một lượt xem media: tăng viewCount của media,
// totalViews của kênh và ghi có cho creator một bút toán.
// viewerID rỗng là lượt xem ẩn danh, vẫn được tính.
func (s *MediaService) RecordView(ctx context.Context, mediaID, viewerID string) (models.MediaItem, error) {
	media, err := s.FindVisible(ctx, mediaID, viewerID)
	if err != nil {
		return media, err
	}

	media, err = s.UpdateById(ctx, mediaID, func(m *models.MediaItem) error {
		m.ViewCount++
		return nil
	})
	if err != nil {
		return media, err
	}

	s.users.UpdateByID(media.OwnerID, func(u *authmodels.User) error {
		u.TotalViews++
		return nil
	})
	s.ledger.CreditView(ctx, media.OwnerID, mediaID)

	if viewerID != "" {
		s.activity.Record(ctx, viewerID, "media.view", activitymodels.TargetMedia, mediaID)
	}
	return media, nil
}

// UpdateProgress cập nhật vị trí đang xem dở của người dùng trên media.
// Mục của media đã có trong lịch sử được cập nhật và đưa về cuối (mới
// nhất); lịch sử dài quá maxWatchHistory bị cắt bớt mục cũ nhất.
func (s *MediaService) UpdateProgress(ctx context.Context, userID, mediaID string, input *dto.UpdateProgressInput) error {
	if _, err := s.FindVisible(ctx, mediaID, userID); err != nil {
		return err
	}

	progress := input.PositionSeconds / input.DurationSeconds
	if progress > 1 {
		progress = 1
	}
	entry := authmodels.WatchEntry{
		MediaID:         mediaID,
		WatchedAt:       memstore.Timestamp(utility.CurrentTimeInMilli()),
		PositionSeconds: input.PositionSeconds,
		DurationSeconds: input.DurationSeconds,
		Progress:        progress,
	}

	if _, err := s.users.UpdateByID(userID, func(u *authmodels.User) error {
		history := make([]authmodels.WatchEntry, 0, len(u.WatchHistory)+1)
		for _, e := range u.WatchHistory {
			if e.MediaID != mediaID {
				history = append(history, e)
			}
		}
		history = append(history, entry)
		if len(history) > maxWatchHistory {
			history = history[len(history)-maxWatchHistory:]
		}
		u.WatchHistory = history
		return nil
	}); err != nil {
		return err
	}

	s.activity.Record(ctx, userID, "media.progress", activitymodels.TargetMedia, mediaID)
	return nil
}

// HistoryEntry là một mục lịch sử xem kèm projection gọn của media
type HistoryEntry struct {
	authmodels.WatchEntry
	Media models.Snapshot `json:"media"`
}

// WatchHistory trả về lịch sử xem của người dùng, mới nhất trước.
// Mục trỏ tới media đã xóa vẫn được trả về với snapshot rỗng.
func (s *MediaService) WatchHistory(ctx context.Context, userID string, page, limit int64) (*memstore.PaginateResult[HistoryEntry], error) {
	user, err := s.users.FindOneByID(userID)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(user.WatchHistory))
	for i := len(user.WatchHistory) - 1; i >= 0; i-- {
		e := HistoryEntry{WatchEntry: user.WatchHistory[i]}
		if media, err := s.FindOneById(ctx, e.MediaID); err == nil {
			e.Media = media.ToSnapshot()
		}
		entries = append(entries, e)
	}
	return memstore.PaginateSlice(entries, page, limit), nil
}

// Favorites trả về các media người dùng đã lưu yêu thích, có projection
func (s *MediaService) Favorites(ctx context.Context, userID string, page, limit int64) (*memstore.PaginateResult[MediaView], error) {
	user, err := s.users.FindOneByID(userID)
	if err != nil {
		return nil, err
	}

	views := make([]MediaView, 0, len(user.FavoriteMediaIDs))
	for i := len(user.FavoriteMediaIDs) - 1; i >= 0; i-- {
		if media, err := s.FindOneById(ctx, user.FavoriteMediaIDs[i]); err == nil {
			views = append(views, s.project(media, userID))
		}
	}
	return memstore.PaginateSlice(views, page, limit), nil
}
