package authsvc

import (
	"context"
	"fmt"

	activitymodels "atom_video/internal/api/activity/models"
	"atom_video/internal/api/auth/models"
	notificationmodels "atom_video/internal/api/notification/models"
	"atom_video/internal/common"
	"atom_video/internal/utility"
)

// Subscribe đăng ký kênh của một người dùng khác.
// Tự đăng ký kênh của mình là common.ErrInvalidOperation; đăng ký lại
// kênh đã đăng ký là common.ErrDuplicate. Cập nhật counter ở cả hai phía
// và gửi thông báo cho chủ kênh.
//
// Parameters:
//   - ctx: Context của request
//   - userID: Người đăng ký
//   - channelID: Kênh được đăng ký
//
// Returns:
//   - error: Lỗi nếu có
func (s *UserService) Subscribe(ctx context.Context, userID, channelID string) error {
	if userID == channelID {
		return common.ErrInvalidOperation
	}
	if err := s.MustExist(ctx, channelID); err != nil {
		return err
	}

	user, err := s.UpdateById(ctx, userID, func(u *models.User) error {
		if utility.Contains(u.FollowingIDs, channelID) {
			return common.ErrDuplicate
		}
		u.FollowingIDs = append(u.FollowingIDs, channelID)
		u.SubscribingCount++
		return nil
	})
	if err != nil {
		return err
	}

	if _, err := s.UpdateById(ctx, channelID, func(u *models.User) error {
		u.SubscriberCount++
		return nil
	}); err != nil {
		return err
	}

	s.notifications.Notify(ctx, channelID,
		notificationmodels.CategorySubscribe,
		"Người đăng ký mới",
		fmt.Sprintf("%s vừa đăng ký kênh của bạn", user.DisplayName),
		userID)
	s.activity.Record(ctx, userID, "user.subscribe", activitymodels.TargetUser, channelID)
	return nil
}

// Unsubscribe hủy đăng ký một kênh.
// Hủy kênh chưa đăng ký là common.ErrNotFound.
func (s *UserService) Unsubscribe(ctx context.Context, userID, channelID string) error {
	if userID == channelID {
		return common.ErrInvalidOperation
	}

	if _, err := s.UpdateById(ctx, userID, func(u *models.User) error {
		next, removed := utility.Remove(u.FollowingIDs, channelID)
		if !removed {
			return common.ErrNotFound
		}
		u.FollowingIDs = next
		u.SubscribingCount--
		return nil
	}); err != nil {
		return err
	}

	// Kênh có thể đã bị khóa nhưng counter vẫn phải giảm nếu còn record
	s.UpdateById(ctx, channelID, func(u *models.User) error {
		u.SubscriberCount--
		return nil
	})

	s.activity.Record(ctx, userID, "user.unsubscribe", activitymodels.TargetUser, channelID)
	return nil
}

// IsSubscribed kiểm tra user có đang đăng ký kênh không.
// Trả về false cho người xem ẩn danh.
func (s *UserService) IsSubscribed(ctx context.Context, userID, channelID string) bool {
	if userID == "" {
		return false
	}
	user, err := s.FindOneById(ctx, userID)
	if err != nil {
		return false
	}
	return utility.Contains(user.FollowingIDs, channelID)
}
