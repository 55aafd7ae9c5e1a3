// Package authsvc - service định danh: đăng ký, đăng nhập bằng token mờ,
// hồ sơ người dùng và quan hệ đăng ký kênh.
package authsvc

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	activitymodels "atom_video/internal/api/activity/models"
	activitysvc "atom_video/internal/api/activity/service"
	"atom_video/internal/api/auth/dto"
	"atom_video/internal/api/auth/models"
	basesvc "atom_video/internal/api/base/service"
	collectionsvc "atom_video/internal/api/collection/service"
	notificationsvc "atom_video/internal/api/notification/service"
	"atom_video/internal/common"
	"atom_video/internal/global"
	"atom_video/internal/memstore"
	"atom_video/internal/utility"
)

// UserService quản lý bảng auth_users và registry phiên
type UserService struct {
	*basesvc.BaseServiceMemory[models.User]
	collections   *collectionsvc.CollectionService
	notifications *notificationsvc.NotificationService
	activity      *activitysvc.ActivityService
}

// NewUserService tạo service người dùng trên các bảng dùng chung
func NewUserService() *UserService {
	return &UserService{
		BaseServiceMemory: basesvc.NewBaseServiceMemory(UserTable()),
		collections:       collectionsvc.NewCollectionService(),
		notifications:     notificationsvc.NewNotificationService(),
		activity:          activitysvc.NewActivityService(),
	}
}

// UserTable trả về bảng người dùng dùng chung.
// Hàm này cũng được dùng để bind liveness check cho registry phiên khi
// khởi tạo ứng dụng.
func UserTable() *memstore.Table[models.User] {
	return memstore.TableOf[models.User](global.Store, global.TableNames.AuthUsers, global.IDPrefixes.User)
}

// IsUserActive kiểm tra user còn tồn tại và chưa bị khóa.
// Dùng làm liveness check của registry phiên: token của user đã mất hoặc
// bị khóa sẽ hết hiệu lực ngay.
func IsUserActive(userID string) bool {
	user, err := UserTable().FindOneByID(userID)
	if err != nil {
		return false
	}
	return user.Status != models.StatusDisabled
}

// ====================================
// ĐĂNG KÝ VÀ ĐĂNG NHẬP
// ====================================

// Register tạo tài khoản mới.
// Handle và email là duy nhất, không phân biệt hoa thường; người dùng mới
// được seed sẵn danh sách phát "Xem sau" hệ thống.
//
// Parameters:
//   - ctx: Context của request
//   - input: Thông tin đăng ký đã validate
//
// Returns:
//   - models.User: Tài khoản vừa tạo
//   - error: common.ErrDuplicate nếu handle hoặc email đã dùng
func (s *UserService) Register(ctx context.Context, input *dto.RegisterInput) (models.User, error) {
	handle := strings.ToLower(strings.TrimSpace(input.Handle))
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if err := utility.ValidateEmail(email); err != nil {
		return models.User{}, err
	}

	taken := s.Table().FindFunc(func(u models.User) bool {
		return strings.EqualFold(u.Handle, handle) || strings.EqualFold(u.Email, email)
	})
	if len(taken) > 0 {
		return models.User{}, common.ErrDuplicate
	}

	cost := bcrypt.DefaultCost
	if global.ServerConfig != nil && global.ServerConfig.BcryptCost > 0 {
		cost = global.ServerConfig.BcryptCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), cost)
	if err != nil {
		return models.User{}, common.NewError(common.ErrCodeInternalServer, "Không tạo được mật khẩu", common.StatusInternalServerError, nil)
	}

	user, err := s.InsertOne(ctx, models.User{
		Handle:       handle,
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  input.DisplayName,
		Role:         models.RoleMember,
		Status:       models.StatusActive,
	})
	if err != nil {
		return user, err
	}

	if _, err := s.collections.CreateWatchLater(ctx, user.GetID()); err != nil {
		return user, err
	}

	s.activity.Record(ctx, user.GetID(), "user.register", activitymodels.TargetUser, user.GetID())
	return user, nil
}

// Login xác thực và cấp token phiên mới.
// Login nhận handle hoặc email; sai thông tin nào cũng trả về cùng một lỗi
// để không lộ tài khoản nào tồn tại.
//
// Parameters:
//   - ctx: Context của request
//   - login: Handle hoặc email
//   - password: Mật khẩu
//
// Returns:
//   - string: Token phiên mờ
//   - models.User: Tài khoản đã đăng nhập
//   - error: common.ErrInvalidCredentials hoặc common.ErrAccountDisabled
func (s *UserService) Login(ctx context.Context, login, password string) (string, models.User, error) {
	login = strings.TrimSpace(login)
	matches := s.Table().FindFunc(func(u models.User) bool {
		return strings.EqualFold(u.Handle, login) || strings.EqualFold(u.Email, login)
	})
	if len(matches) == 0 {
		return "", models.User{}, common.ErrInvalidCredentials
	}
	user := matches[0]

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", models.User{}, common.ErrInvalidCredentials
	}
	if user.Status == models.StatusDisabled {
		return "", models.User{}, common.ErrAccountDisabled
	}

	user, err := s.UpdateById(ctx, user.GetID(), func(u *models.User) error {
		u.LastLoginAt = memstore.Timestamp(utility.CurrentTimeInMilli())
		return nil
	})
	if err != nil {
		return "", models.User{}, err
	}

	token := global.Store.Sessions.IssueToken(user.GetID())
	s.activity.Record(ctx, user.GetID(), "user.login", activitymodels.TargetUser, user.GetID())
	return token, user, nil
}

// Logout thu hồi token của phiên hiện tại
func (s *UserService) Logout(ctx context.Context, token string) {
	global.Store.Sessions.Revoke(token)
}

// ====================================
// HỒ SƠ
// ====================================

// UpdateProfile cập nhật hồ sơ người dùng; trường nil giữ nguyên
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input *dto.UpdateProfileInput) (models.User, error) {
	return s.UpdateById(ctx, userID, func(u *models.User) error {
		if input.DisplayName != nil {
			u.DisplayName = *input.DisplayName
		}
		if input.AvatarURL != nil {
			u.AvatarURL = *input.AvatarURL
		}
		if input.Bio != nil {
			u.Bio = *input.Bio
		}
		return nil
	})
}

// ChangePassword đổi mật khẩu sau khi xác nhận mật khẩu cũ, rồi thu hồi
// mọi token đang hiệu lực của tài khoản
func (s *UserService) ChangePassword(ctx context.Context, userID string, input *dto.ChangePasswordInput) error {
	user, err := s.FindOneById(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.OldPassword)); err != nil {
		return common.ErrInvalidCredentials
	}

	cost := bcrypt.DefaultCost
	if global.ServerConfig != nil && global.ServerConfig.BcryptCost > 0 {
		cost = global.ServerConfig.BcryptCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), cost)
	if err != nil {
		return common.NewError(common.ErrCodeInternalServer, "Không tạo được mật khẩu", common.StatusInternalServerError, nil)
	}

	if _, err := s.UpdateById(ctx, userID, func(u *models.User) error {
		u.PasswordHash = string(hash)
		return nil
	}); err != nil {
		return err
	}

	global.Store.Sessions.RevokeAll(userID)
	return nil
}

// PublicProfile trả về projection công khai của một người dùng
func (s *UserService) PublicProfile(ctx context.Context, userID string) (models.PublicUser, error) {
	user, err := s.FindOneById(ctx, userID)
	if err != nil {
		return models.PublicUser{}, err
	}
	return user.Public(), nil
}
