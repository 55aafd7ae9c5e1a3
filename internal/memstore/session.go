package memstore

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"atom_video/internal/common"
)

// SessionRegistry quản lý phiên đăng nhập bằng token mờ (opaque).
// Token chỉ là một chuỗi ngẫu nhiên tra cứu được trong registry, không mang
// thông tin giải mã được. Registry sống cùng tiến trình, không bền vững.
type SessionRegistry struct {
	mu     sync.RWMutex
	tokens map[string]string // token -> userID
	alive  func(userID string) bool
}

// NewSessionRegistry tạo registry phiên mới.
//
// Parameters:
//   - alive: Hàm kiểm tra identity còn tồn tại và còn hoạt động không;
//     token của identity đã mất sẽ bị thu hồi ngay khi resolve
//
// Returns:
//   - *SessionRegistry: Registry rỗng sẵn sàng sử dụng
func NewSessionRegistry(alive func(userID string) bool) *SessionRegistry {
	return &SessionRegistry{
		tokens: make(map[string]string),
		alive:  alive,
	}
}

// IssueToken cấp token mới cho identity. Mỗi lần gọi cấp một token độc lập;
// đăng nhập ở nhiều nơi giữ nhiều token song song.
//
// Parameters:
//   - userID: ID của identity
//
// Returns:
//   - string: Token mờ vừa cấp
func (r *SessionRegistry) IssueToken(userID string) string {
	token := strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = userID
	return token
}

// Resolve đổi token lấy ID của identity.
// Token không tồn tại, hoặc identity đứng sau đã mất, đều trả về
// common.ErrTokenInvalid; trường hợp sau token bị thu hồi luôn.
//
// Parameters:
//   - token: Token cần tra cứu
//
// Returns:
//   - string: ID của identity nắm token
//   - error: common.ErrTokenInvalid nếu token không còn hiệu lực
func (r *SessionRegistry) Resolve(token string) (string, error) {
	r.mu.RLock()
	userID, exists := r.tokens[token]
	r.mu.RUnlock()
	if !exists {
		return "", common.ErrTokenInvalid
	}

	if r.alive != nil && !r.alive(userID) {
		r.mu.Lock()
		delete(r.tokens, token)
		r.mu.Unlock()
		return "", common.ErrTokenInvalid
	}
	return userID, nil
}

// Revoke thu hồi một token, bỏ qua nếu không tồn tại
func (r *SessionRegistry) Revoke(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, token)
}

// RevokeAll thu hồi mọi token của một identity
func (r *SessionRegistry) RevokeAll(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for token, id := range r.tokens {
		if id == userID {
			delete(r.tokens, token)
		}
	}
}

// Count trả về số token đang hiệu lực
func (r *SessionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tokens)
}
