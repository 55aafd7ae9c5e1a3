// Package basesvc cung cấp base service generic cho các domain service.
// Base service bọc một bảng trong memstore và chuẩn hóa các thao tác CRUD;
// domain service embed base service và bổ sung nghiệp vụ riêng.
package basesvc

import (
	"context"

	"atom_video/internal/common"
	"atom_video/internal/memstore"
)

// BaseServiceMemory là base service generic thao tác trên một bảng memstore.
// Type parameter T là model của bảng, phải nhúng memstore.Base.
type BaseServiceMemory[T memstore.Entity] struct {
	table *memstore.Table[T]
}

// NewBaseServiceMemory tạo base service mới trên một bảng.
//
// Parameters:
//   - table: Bảng memstore mà service thao tác
//
// Returns:
//   - *BaseServiceMemory[T]: Service instance mới
func NewBaseServiceMemory[T memstore.Entity](table *memstore.Table[T]) *BaseServiceMemory[T] {
	return &BaseServiceMemory[T]{table: table}
}

// Table trả về bảng mà service đang thao tác
func (s *BaseServiceMemory[T]) Table() *memstore.Table[T] {
	return s.table
}

// InsertOne thêm một record mới vào bảng.
//
// Parameters:
//   - ctx: Context của request
//   - data: Record cần thêm (ID và timestamp sẽ được tự gán)
//
// Returns:
//   - T: Record đã thêm
//   - error: Lỗi nếu có
func (s *BaseServiceMemory[T]) InsertOne(ctx context.Context, data T) (T, error) {
	return s.table.InsertOne(data)
}

// FindOneById tìm record theo ID.
//
// Parameters:
//   - ctx: Context của request
//   - id: ID của record
//
// Returns:
//   - T: Record tìm thấy
//   - error: common.ErrNotFound nếu không tồn tại
func (s *BaseServiceMemory[T]) FindOneById(ctx context.Context, id string) (T, error) {
	return s.table.FindOneByID(id)
}

// FindOne tìm record đầu tiên thỏa filter
func (s *BaseServiceMemory[T]) FindOne(ctx context.Context, filter *memstore.Filter) (T, error) {
	return s.table.FindOne(filter)
}

// Find trả về tất cả record thỏa filter theo thứ tự sort
func (s *BaseServiceMemory[T]) Find(ctx context.Context, filter *memstore.Filter, sort memstore.Sort) ([]T, error) {
	return s.table.Find(filter, sort), nil
}

// FindWithPagination lọc, sắp xếp rồi phân trang.
//
// Parameters:
//   - ctx: Context của request
//   - filter: Điều kiện lọc
//   - sort: Thứ tự sắp xếp (field lạ fallback về createdAt giảm dần)
//   - page: Trang cần lấy (1-based)
//   - limit: Kích thước trang (chặn tại memstore.MaxPageLimit)
//
// Returns:
//   - *memstore.PaginateResult[T]: Kết quả phân trang
//   - error: Lỗi nếu có
func (s *BaseServiceMemory[T]) FindWithPagination(ctx context.Context, filter *memstore.Filter, sort memstore.Sort, page, limit int64) (*memstore.PaginateResult[T], error) {
	return s.table.FindWithPagination(filter, sort, page, limit), nil
}

// UpdateById sửa record theo ID qua callback mutate.
//
// Parameters:
//   - ctx: Context của request
//   - id: ID của record
//   - mutate: Hàm sửa record, trả lỗi để hủy thay đổi
//
// Returns:
//   - T: Record sau khi sửa
//   - error: common.ErrNotFound nếu không tồn tại, hoặc lỗi từ mutate
func (s *BaseServiceMemory[T]) UpdateById(ctx context.Context, id string, mutate func(*T) error) (T, error) {
	return s.table.UpdateByID(id, mutate)
}

// DeleteById xóa record theo ID.
//
// Parameters:
//   - ctx: Context của request
//   - id: ID của record
//
// Returns:
//   - error: common.ErrNotFound nếu không tồn tại
func (s *BaseServiceMemory[T]) DeleteById(ctx context.Context, id string) error {
	return s.table.DeleteByID(id)
}

// Count đếm số record thỏa filter
func (s *BaseServiceMemory[T]) Count(ctx context.Context, filter *memstore.Filter) (int64, error) {
	return s.table.Count(filter), nil
}

// Exists kiểm tra record có tồn tại theo ID không
func (s *BaseServiceMemory[T]) Exists(ctx context.Context, id string) (bool, error) {
	return s.table.Exists(id), nil
}

// MustExist trả về common.ErrNotFound nếu record không tồn tại
func (s *BaseServiceMemory[T]) MustExist(ctx context.Context, id string) error {
	if !s.table.Exists(id) {
		return common.ErrNotFound
	}
	return nil
}
