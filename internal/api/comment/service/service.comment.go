// Package commentsvc - service bình luận: viết, thích, liệt kê theo
// thread một cấp và xóa cascade.
package commentsvc

import (
	"context"
	"fmt"
	"sort"

	activitymodels "atom_video/internal/api/activity/models"
	activitysvc "atom_video/internal/api/activity/service"
	authmodels "atom_video/internal/api/auth/models"
	authsvc "atom_video/internal/api/auth/service"
	basesvc "atom_video/internal/api/base/service"
	"atom_video/internal/api/comment/models"
	mediamodels "atom_video/internal/api/media/models"
	notificationmodels "atom_video/internal/api/notification/models"
	notificationsvc "atom_video/internal/api/notification/service"
	"atom_video/internal/common"
	"atom_video/internal/global"
	"atom_video/internal/memstore"
	"atom_video/internal/utility"
)

// CommentService quản lý bảng media_comments
type CommentService struct {
	*basesvc.BaseServiceMemory[models.Comment]
	media         *memstore.Table[mediamodels.MediaItem]
	users         *memstore.Table[authmodels.User]
	notifications *notificationsvc.NotificationService
	activity      *activitysvc.ActivityService
}

// NewCommentService tạo service bình luận trên các bảng dùng chung
func NewCommentService() *CommentService {
	return &CommentService{
		BaseServiceMemory: basesvc.NewBaseServiceMemory(
			memstore.TableOf[models.Comment](global.Store, global.TableNames.MediaComments, global.IDPrefixes.Comment)),
		media:         memstore.TableOf[mediamodels.MediaItem](global.Store, global.TableNames.MediaItems, global.IDPrefixes.Media),
		users:         authsvc.UserTable(),
		notifications: notificationsvc.NewNotificationService(),
		activity:      activitysvc.NewActivityService(),
	}
}

// CommentView là projection của bình luận cho một người xem: tác giả
// công khai, cờ isLiked và danh sách trả lời (chỉ với bình luận gốc)
type CommentView struct {
	models.Comment
	Author  authmodels.PublicUser `json:"author"`
	IsLiked bool                  `json:"isLiked"`
	Replies []CommentView         `json:"replies,omitempty"`
}

// Add viết bình luận mới trên media.
// ParentID khác rỗng phải trỏ tới một bình luận gốc của cùng media;
// trả lời của trả lời là common.ErrInvalidOperation. Cập nhật commentCount
// của media và thông báo cho chủ media.
//
// Parameters:
//   - ctx: Context của request
//   - userID: Người viết
//   - mediaID: Media được bình luận
//   - text: Nội dung
//   - parentID: Bình luận cha, rỗng nếu là bình luận gốc
//
// Returns:
//   - models.Comment: Bình luận vừa tạo
//   - error: Lỗi nếu có
func (s *CommentService) Add(ctx context.Context, userID, mediaID, text, parentID string) (models.Comment, error) {
	media, err := s.media.FindOneByID(mediaID)
	if err != nil {
		return models.Comment{}, err
	}

	if parentID != "" {
		parent, err := s.FindOneById(ctx, parentID)
		if err != nil {
			return models.Comment{}, err
		}
		if parent.MediaID != mediaID || parent.ParentID != "" {
			return models.Comment{}, common.ErrInvalidOperation
		}
	}

	comment, err := s.InsertOne(ctx, models.Comment{
		MediaID:  mediaID,
		AuthorID: userID,
		ParentID: parentID,
		Text:     text,
		Status:   models.StatusNormal,
	})
	if err != nil {
		return comment, err
	}

	s.media.UpdateByID(mediaID, func(m *mediamodels.MediaItem) error {
		m.CommentCount++
		return nil
	})

	if media.OwnerID != userID {
		author, _ := s.users.FindOneByID(userID)
		s.notifications.Notify(ctx, media.OwnerID,
			notificationmodels.CategoryComment,
			"Bình luận mới",
			fmt.Sprintf("%s vừa bình luận trên \"%s\"", author.DisplayName, media.Title),
			mediaID)
	}

	s.activity.Record(ctx, userID, "comment.create", activitymodels.TargetComment, comment.GetID())
	return comment, nil
}

// ToggleLike đảo trạng thái thích bình luận của người dùng.
// LikeCount luôn bằng kích thước LikedByIDs.
func (s *CommentService) ToggleLike(ctx context.Context, userID, commentID string) (bool, error) {
	if !s.users.Exists(userID) {
		return false, common.ErrNotFound
	}

	var liked bool
	_, err := s.UpdateById(ctx, commentID, func(cmt *models.Comment) error {
		cmt.LikedByIDs, liked = utility.Toggle(cmt.LikedByIDs, userID)
		cmt.LikeCount = int64(len(cmt.LikedByIDs))
		return nil
	})
	if err != nil {
		return false, err
	}

	action := "comment.like"
	if !liked {
		action = "comment.unlike"
	}
	s.activity.Record(ctx, userID, action, activitymodels.TargetComment, commentID)
	return liked, nil
}

// Delete xóa bình luận; bình luận gốc kéo theo mọi trả lời của nó.
// Chỉ tác giả hoặc chủ media được xóa. commentCount của media giảm đúng
// số bình luận đã xóa.
func (s *CommentService) Delete(ctx context.Context, commentID, userID string) error {
	comment, err := s.FindOneById(ctx, commentID)
	if err != nil {
		return err
	}
	media, err := s.media.FindOneByID(comment.MediaID)
	if err != nil {
		return err
	}
	if comment.AuthorID != userID && media.OwnerID != userID {
		return common.ErrPermission
	}

	var deleted int64
	s.Table().Mutate(func(tx *memstore.Tx[models.Comment]) error {
		tx.Delete(commentID)
		deleted++
		if comment.ParentID == "" {
			for _, reply := range tx.All() {
				if reply.ParentID == commentID {
					tx.Delete(reply.GetID())
					deleted++
				}
			}
		}
		return nil
	})

	s.media.UpdateByID(comment.MediaID, func(m *mediamodels.MediaItem) error {
		m.CommentCount -= deleted
		return nil
	})
	s.activity.Record(ctx, userID, "comment.delete", activitymodels.TargetComment, commentID)
	return nil
}

// SetStatus đổi trạng thái hiển thị của bình luận; dùng khi xử lý báo cáo
func (s *CommentService) SetStatus(ctx context.Context, commentID, status string) error {
	_, err := s.UpdateById(ctx, commentID, func(cmt *models.Comment) error {
		cmt.Status = status
		return nil
	})
	return err
}

// FindForMedia trả về bình luận gốc của media phân trang, mới nhất trước,
// mỗi bình luận kèm trả lời theo thứ tự cũ nhất trước.
// Bình luận hidden không xuất hiện.
func (s *CommentService) FindForMedia(ctx context.Context, mediaID, viewerID string, page, limit int64) (*memstore.PaginateResult[CommentView], error) {
	if !s.media.Exists(mediaID) {
		return nil, common.ErrNotFound
	}

	// Filter coi chuỗi rỗng là no-op nên "bình luận gốc" (parentId rỗng)
	// phải lọc bằng predicate
	rootComments := s.Table().FindFunc(func(cmt models.Comment) bool {
		return cmt.MediaID == mediaID && cmt.ParentID == "" && cmt.Status == models.StatusNormal
	})
	sort.Slice(rootComments, func(i, j int) bool {
		return rootComments[i].GetCreatedAt() > rootComments[j].GetCreatedAt()
	})
	roots := memstore.PaginateSlice(rootComments, page, limit)

	views := make([]CommentView, 0, len(roots.Items))
	for _, root := range roots.Items {
		view := s.project(root, viewerID)
		replies := s.Table().FindFunc(func(cmt models.Comment) bool {
			return cmt.ParentID == root.GetID() && cmt.Status == models.StatusNormal
		})
		sort.Slice(replies, func(i, j int) bool {
			return replies[i].GetCreatedAt() < replies[j].GetCreatedAt()
		})
		for _, reply := range replies {
			view.Replies = append(view.Replies, s.project(reply, viewerID))
		}
		views = append(views, view)
	}

	return &memstore.PaginateResult[CommentView]{
		Items:     views,
		Page:      roots.Page,
		Limit:     roots.Limit,
		ItemCount: roots.ItemCount,
		Total:     roots.Total,
		TotalPage: roots.TotalPage,
		HasMore:   roots.HasMore,
	}, nil
}

// project gắn tác giả công khai và cờ isLiked của người xem vào bình luận
func (s *CommentService) project(comment models.Comment, viewerID string) CommentView {
	view := CommentView{Comment: comment}
	if author, err := s.users.FindOneByID(comment.AuthorID); err == nil {
		view.Author = author.Public()
	}
	if viewerID != "" {
		view.IsLiked = utility.Contains(comment.LikedByIDs, viewerID)
	}
	return view
}
