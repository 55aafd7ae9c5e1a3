package memstore

import (
	"atom_video/internal/registry"
)

// Store là kho dữ liệu trong bộ nhớ của ứng dụng: một registry các bảng
// record theo tên cộng với registry phiên đăng nhập. Mỗi bảng được tạo
// đúng một lần cho mỗi tên; các lần lấy sau trả về cùng một bảng.
type Store struct {
	tables   *registry.Registry[any]
	Sessions *SessionRegistry
}

// NewStore tạo store rỗng. Registry phiên được gắn hàm kiểm tra liveness
// sau, qua BindSessions, vì bảng user chỉ tồn tại khi domain auth đăng ký.
func NewStore() *Store {
	return &Store{
		tables: registry.NewRegistry[any](),
	}
}

// BindSessions gắn registry phiên với hàm kiểm tra identity còn sống.
// Gọi một lần khi khởi tạo ứng dụng, trước khi nhận request.
func (s *Store) BindSessions(alive func(userID string) bool) {
	s.Sessions = NewSessionRegistry(alive)
}

// TableNames trả về tên của tất cả bảng đã đăng ký
func (s *Store) TableNames() []string {
	return s.tables.Names()
}

// TableOf lấy bảng kiểu T theo tên, tạo mới nếu chưa tồn tại.
// Tên bảng phải luôn đi cùng một kiểu T duy nhất; gọi lại với kiểu khác
// sẽ panic vì đó là lỗi lập trình, không phải lỗi runtime.
//
// Parameters:
//   - s: Store chứa bảng
//   - name: Tên bảng
//   - prefix: Tiền tố ID cho record của bảng (chỉ dùng khi tạo mới)
//
// Returns:
//   - *Table[T]: Bảng dùng chung cho mọi caller cùng tên
func TableOf[T Entity](s *Store, name, prefix string) *Table[T] {
	item, err := s.tables.GetOrCreate(name, func() (any, error) {
		return NewTable[T](name, prefix), nil
	})
	if err != nil {
		panic(err)
	}
	table, ok := item.(*Table[T])
	if !ok {
		panic("memstore: table " + name + " registered with a different record type")
	}
	return table
}
