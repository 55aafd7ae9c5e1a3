package memstore

import (
	"sync"
	"time"

	"atom_video/internal/common"
)

// Table là một bảng record trong bộ nhớ, an toàn với truy cập đồng thời.
// Mọi thao tác đọc trả về bản sao giá trị; caller không được sửa trực tiếp
// mà phải đi qua UpdateByID hoặc Mutate.
//
// Bảng giữ thứ tự chèn: order là danh sách ID theo thứ tự chèn và là thứ
// tự duyệt của mọi thao tác đọc. Map của Go duyệt theo thứ tự ngẫu nhiên
// nên nếu duyệt thẳng map, hai lần đọc cùng một trạng thái có thể trả về
// thứ tự khác nhau khi sort key bằng nhau (cùng một millisecond).
type Table[T Entity] struct {
	name   string
	prefix string
	mu     sync.RWMutex
	items  map[string]T
	order  []string
}

// NewTable tạo bảng mới với tên và prefix cho ID của record.
//
// Parameters:
//   - name: Tên bảng
//   - prefix: Tiền tố ID của record trong bảng (ví dụ "vid")
//
// Returns:
//   - *Table[T]: Bảng rỗng sẵn sàng sử dụng
func NewTable[T Entity](name, prefix string) *Table[T] {
	return &Table[T]{
		name:   name,
		prefix: prefix,
		items:  make(map[string]T),
	}
}

// Name trả về tên bảng
func (t *Table[T]) Name() string {
	return t.name
}

// InsertOne chèn một record mới vào bảng, tự sinh ID và timestamp.
//
// Parameters:
//   - item: Record cần chèn (ID và timestamp sẽ bị ghi đè)
//
// Returns:
//   - T: Record đã chèn với ID và timestamp đã gán
//   - error: Lỗi nếu record không nhúng Base
func (t *Table[T]) InsertOne(item T) (T, error) {
	now := time.Now().UnixMilli()
	s, ok := any(&item).(stamper)
	if !ok {
		var zero T
		return zero, common.ErrInvalidInput
	}
	s.stampNew(NewID(t.prefix), now)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.items[item.GetID()] = item
	t.order = append(t.order, item.GetID())
	return item, nil
}

// FindOneByID tìm record theo ID.
//
// Parameters:
//   - id: ID của record
//
// Returns:
//   - T: Bản sao record tìm thấy
//   - error: common.ErrNotFound nếu không tồn tại
func (t *Table[T]) FindOneByID(id string) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	item, exists := t.items[id]
	if !exists {
		var zero T
		return zero, common.ErrNotFound
	}
	return item, nil
}

// FindOne tìm record đầu tiên thỏa filter theo thứ tự mặc định.
//
// Parameters:
//   - filter: Điều kiện lọc
//
// Returns:
//   - T: Bản sao record đầu tiên thỏa filter
//   - error: common.ErrNotFound nếu không record nào thỏa
func (t *Table[T]) FindOne(filter *Filter) (T, error) {
	results := t.Find(filter, DefaultSort())
	if len(results) == 0 {
		var zero T
		return zero, common.ErrNotFound
	}
	return results[0], nil
}

// Find trả về tất cả record thỏa filter theo thứ tự s.
// Record có sort key bằng nhau giữ nguyên thứ tự chèn (sort ổn định trên
// thứ tự chèn), nên cùng một trạng thái luôn cho cùng một kết quả.
func (t *Table[T]) Find(filter *Filter, s Sort) []T {
	t.mu.RLock()
	matched := make([]row[T], 0, len(t.items))
	for _, id := range t.order {
		item := t.items[id]
		rec := toRecordMap(item)
		if filter.Matches(rec) {
			matched = append(matched, row[T]{item: item, rec: rec})
		}
	}
	t.mu.RUnlock()

	return sortRows(matched, s)
}

// FindFunc trả về tất cả record thỏa predicate theo thứ tự chèn.
// Dùng cho các điều kiện không diễn đạt được bằng Filter.
func (t *Table[T]) FindFunc(pred func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var results []T
	for _, id := range t.order {
		if item := t.items[id]; pred(item) {
			results = append(results, item)
		}
	}
	return results
}

// FindWithPagination lọc, sắp xếp rồi cắt trang.
//
// Parameters:
//   - filter: Điều kiện lọc
//   - s: Thứ tự sắp xếp
//   - page: Trang cần lấy (1-based, < 1 sẽ về 1)
//   - limit: Số record tối đa trên trang (chặn tại MaxPageLimit)
//
// Returns:
//   - *PaginateResult[T]: Kết quả phân trang
func (t *Table[T]) FindWithPagination(filter *Filter, s Sort, page, limit int64) *PaginateResult[T] {
	results := t.Find(filter, s)
	return paginate(results, page, limit)
}

// UpdateByID sửa record theo ID qua callback, giữ write lock trong suốt
// quá trình sửa. Callback nhận con trỏ tới bản sao; nếu trả về lỗi thì
// record không thay đổi.
//
// Parameters:
//   - id: ID của record cần sửa
//   - mutate: Hàm sửa record
//
// Returns:
//   - T: Bản sao record sau khi sửa
//   - error: common.ErrNotFound nếu không tồn tại, hoặc lỗi từ mutate
func (t *Table[T]) UpdateByID(id string, mutate func(*T) error) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	item, exists := t.items[id]
	if !exists {
		var zero T
		return zero, common.ErrNotFound
	}

	if err := mutate(&item); err != nil {
		var zero T
		return zero, err
	}

	if s, ok := any(&item).(stamper); ok {
		s.touch(time.Now().UnixMilli())
	}
	t.items[id] = item
	return item, nil
}

// DeleteByID xóa record theo ID.
//
// Parameters:
//   - id: ID của record cần xóa
//
// Returns:
//   - error: common.ErrNotFound nếu không tồn tại
func (t *Table[T]) DeleteByID(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.items[id]; !exists {
		return common.ErrNotFound
	}
	delete(t.items, id)
	t.removeFromOrder(id)
	return nil
}

// removeFromOrder bỏ id khỏi danh sách thứ tự chèn. Caller phải đang giữ
// write lock.
func (t *Table[T]) removeFromOrder(id string) {
	for i, existing := range t.order {
		if existing == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			return
		}
	}
}

// Count đếm số record thỏa filter
func (t *Table[T]) Count(filter *Filter) int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if filter == nil || len(filter.conds) == 0 {
		return int64(len(t.items))
	}
	var count int64
	for _, id := range t.order {
		if filter.Matches(toRecordMap(t.items[id])) {
			count++
		}
	}
	return count
}

// Exists kiểm tra record có tồn tại theo ID không
func (t *Table[T]) Exists(id string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, exists := t.items[id]
	return exists
}

// ====================================
// MUTATE: SỬA NHIỀU RECORD TRONG MỘT LẦN KHÓA
// ====================================

// Tx là handle thao tác trên bảng bên trong Mutate, khi write lock đang
// được giữ. Không dùng Tx ngoài callback của Mutate.
type Tx[T Entity] struct {
	table *Table[T]
	now   int64
}

// Mutate chạy fn dưới một write lock duy nhất của bảng, cho phép đọc và
// sửa nhiều record như một thao tác nguyên tử với các goroutine khác.
// Dùng cho các thao tác phải nhất quán trên nhiều record, ví dụ đánh lại
// số thứ tự của danh sách có thứ tự.
//
// Parameters:
//   - fn: Hàm thao tác, nhận Tx để đọc/ghi; trả lỗi để báo thất bại
//
// Returns:
//   - error: Lỗi từ fn, nguyên vẹn
func (t *Table[T]) Mutate(fn func(tx *Tx[T]) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	tx := &Tx[T]{table: t, now: time.Now().UnixMilli()}
	return fn(tx)
}

// All trả về bản sao tất cả record trong bảng theo thứ tự chèn
func (tx *Tx[T]) All() []T {
	results := make([]T, 0, len(tx.table.items))
	for _, id := range tx.table.order {
		results = append(results, tx.table.items[id])
	}
	return results
}

// Get tìm record theo ID
func (tx *Tx[T]) Get(id string) (T, bool) {
	item, exists := tx.table.items[id]
	return item, exists
}

// Put ghi đè record theo ID của nó, cập nhật updatedAt
func (tx *Tx[T]) Put(item T) {
	if s, ok := any(&item).(stamper); ok {
		s.touch(tx.now)
	}
	if _, exists := tx.table.items[item.GetID()]; !exists {
		tx.table.order = append(tx.table.order, item.GetID())
	}
	tx.table.items[item.GetID()] = item
}

// Insert chèn record mới, tự sinh ID và timestamp
func (tx *Tx[T]) Insert(item T) T {
	if s, ok := any(&item).(stamper); ok {
		s.stampNew(NewID(tx.table.prefix), tx.now)
	}
	tx.table.items[item.GetID()] = item
	tx.table.order = append(tx.table.order, item.GetID())
	return item
}

// Delete xóa record theo ID, bỏ qua nếu không tồn tại
func (tx *Tx[T]) Delete(id string) {
	if _, exists := tx.table.items[id]; !exists {
		return
	}
	delete(tx.table.items, id)
	tx.table.removeFromOrder(id)
}

// ====================================
// SẮP XẾP NỘI BỘ
// ====================================

// row ghép record với bản đồ field của nó để lọc và sắp xếp
type row[T any] struct {
	item T
	rec  map[string]any
}

// sortRows sắp xếp các row theo s rồi trả về danh sách record
func sortRows[T any](rows []row[T], s Sort) []T {
	recs := make([]map[string]any, len(rows))
	for i := range rows {
		recs[i] = rows[i].rec
	}

	// Sắp xếp chỉ số để giữ cặp (item, rec) đi cùng nhau
	order := make([]int, len(rows))
	for i := range order {
		order[i] = i
	}
	sortIndexes(order, recs, s)

	results := make([]T, len(rows))
	for i, idx := range order {
		results[i] = rows[idx].item
	}
	return results
}
