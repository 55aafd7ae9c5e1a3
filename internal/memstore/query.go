package memstore

import (
	"sort"
	"strings"
)

// DefaultMaxPageLimit là trần mặc định cho page size khi cấu hình không
// đặt giá trị khác.
const DefaultMaxPageLimit int64 = 100

// DefaultPageLimit là page size mặc định khi caller không truyền limit
const DefaultPageLimit = 10

// MaxPageLimit là trần hiện hành cho page size, chặn mỗi lần đọc không
// vượt quá lượng bộ nhớ cho phép. Đặt lại qua SetMaxPageLimit khi đọc
// cấu hình lúc khởi động.
var MaxPageLimit = DefaultMaxPageLimit

// SetMaxPageLimit đặt trần page size từ cấu hình. Giá trị <= 0 quay về
// trần mặc định.
func SetMaxPageLimit(limit int64) {
	if limit <= 0 {
		limit = DefaultMaxPageLimit
	}
	MaxPageLimit = limit
}

// ====================================
// FILTER: HỘI CÁC ĐIỀU KIỆN SO KHỚP
// ====================================

// condOp là loại điều kiện so khớp của filter
type condOp int

const (
	opEq       condOp = iota // So khớp chính xác
	opContains               // Chứa chuỗi con, không phân biệt hoa thường
	opIn                     // Thuộc tập giá trị
	opRange                  // Khoảng số [min, max]
)

// cond là một điều kiện đơn trong filter
type cond struct {
	field string
	op    condOp
	value any
	set   []string
	min   *float64
	max   *float64
}

// Filter là hội (AND) các điều kiện so khớp trên record.
// Filter rỗng khớp mọi record. Điều kiện với giá trị rỗng là no-op
// (pass-through), không bao giờ là lỗi vì filter đến từ query params
// không tin cậy được.
type Filter struct {
	conds []cond
}

// NewFilter tạo filter rỗng (khớp tất cả)
func NewFilter() *Filter {
	return &Filter{}
}

// Eq thêm điều kiện so khớp chính xác trên field.
// Giá trị rỗng ("" hoặc nil) là no-op.
func (f *Filter) Eq(field string, value any) *Filter {
	if value == nil {
		return f
	}
	if s, ok := value.(string); ok && s == "" {
		return f
	}
	f.conds = append(f.conds, cond{field: field, op: opEq, value: value})
	return f
}

// Contains thêm điều kiện chứa chuỗi con (case-insensitive) trên field.
// Keyword rỗng là no-op.
func (f *Filter) Contains(field string, keyword string) *Filter {
	if keyword == "" {
		return f
	}
	f.conds = append(f.conds, cond{field: field, op: opContains, value: keyword})
	return f
}

// In thêm điều kiện thuộc tập giá trị trên field.
// Tập rỗng là no-op. Nếu field của record là mảng (ví dụ tags), điều kiện
// khớp khi mảng chứa ít nhất một giá trị trong tập.
func (f *Filter) In(field string, values []string) *Filter {
	if len(values) == 0 {
		return f
	}
	f.conds = append(f.conds, cond{field: field, op: opIn, set: values})
	return f
}

// Range thêm điều kiện khoảng số [min, max] trên field.
// min/max nil nghĩa là không chặn phía đó; cả hai nil là no-op.
func (f *Filter) Range(field string, min, max *float64) *Filter {
	if min == nil && max == nil {
		return f
	}
	f.conds = append(f.conds, cond{field: field, op: opRange, min: min, max: max})
	return f
}

// Matches kiểm tra record map có thỏa mãn tất cả điều kiện của filter không
func (f *Filter) Matches(record map[string]any) bool {
	if f == nil {
		return true
	}
	for _, c := range f.conds {
		if !c.matches(record) {
			return false
		}
	}
	return true
}

// matches kiểm tra một điều kiện đơn trên record map
func (c cond) matches(record map[string]any) bool {
	value, exists := record[c.field]
	if !exists || value == nil {
		return false
	}

	switch c.op {
	case opEq:
		return equalValues(value, c.value)
	case opContains:
		s, ok := value.(string)
		if !ok {
			return false
		}
		keyword, _ := c.value.(string)
		return strings.Contains(strings.ToLower(s), strings.ToLower(keyword))
	case opIn:
		// Field là mảng: khớp khi mảng chứa ít nhất một giá trị trong tập
		if arr, ok := value.([]any); ok {
			for _, item := range arr {
				itemStr, ok := item.(string)
				if !ok {
					continue
				}
				for _, want := range c.set {
					if foldEqual(itemStr, want) {
						return true
					}
				}
			}
			return false
		}
		// Field là giá trị đơn: khớp khi thuộc tập
		valueStr, ok := value.(string)
		if !ok {
			return false
		}
		for _, want := range c.set {
			if foldEqual(valueStr, want) {
				return true
			}
		}
		return false
	case opRange:
		num, ok := toFloat(value)
		if !ok {
			return false
		}
		if c.min != nil && num < *c.min {
			return false
		}
		if c.max != nil && num > *c.max {
			return false
		}
		return true
	}

	return false
}

// equalValues so sánh hai giá trị với quy ước JSON: số so sánh dưới dạng
// float64, còn lại so sánh trực tiếp
func equalValues(a, b any) bool {
	if na, ok := toFloat(a); ok {
		if nb, ok := toFloat(b); ok {
			return na == nb
		}
		return false
	}
	return a == b
}

// toFloat ép một giá trị số bất kỳ sang float64
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// ====================================
// SORT: MỘT CẶP (FIELD, DIRECTION)
// ====================================

// Sort xác định thứ tự sắp xếp một trường.
// Trường không tồn tại trong record sẽ fallback về (createdAt, desc);
// sort key đến từ query params không tin cậy được nên không bao giờ là lỗi.
type Sort struct {
	Field string // Tên field theo json tag
	Desc  bool   // true: giảm dần
}

// DefaultSort là thứ tự mặc định: mới tạo trước
func DefaultSort() Sort {
	return Sort{Field: "createdAt", Desc: true}
}

// sortIndexes sắp xếp ổn định slice chỉ số theo giá trị field trong recs.
// Field không so sánh được (không phải số/chuỗi, hoặc vắng mặt trong record
// đầu tiên) fallback về DefaultSort.
func sortIndexes(order []int, recs []map[string]any, s Sort) {
	if s.Field == "" {
		s = DefaultSort()
	}
	if len(recs) > 0 {
		if !sortableField(recs[0], s.Field) {
			s = DefaultSort()
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		a, b := recs[order[i]][s.Field], recs[order[j]][s.Field]
		if s.Desc {
			return lessValue(b, a)
		}
		return lessValue(a, b)
	})
}

// sortableField kiểm tra field có tồn tại và so sánh được trong record không
func sortableField(record map[string]any, field string) bool {
	v, exists := record[field]
	if !exists || v == nil {
		return false
	}
	if _, ok := toFloat(v); ok {
		return true
	}
	_, ok := v.(string)
	return ok
}

// lessValue so sánh hai giá trị record: số theo giá trị, chuỗi theo thứ tự từ điển
func lessValue(a, b any) bool {
	if na, ok := toFloat(a); ok {
		nb, _ := toFloat(b)
		return na < nb
	}
	sa, _ := a.(string)
	sb, _ := b.(string)
	return sa < sb
}

// ====================================
// PAGINATE: CẮT TRANG 1-BASED
// ====================================

// PaginateResult thể hiện kết quả phân trang
type PaginateResult[T any] struct {
	Items     []T   `json:"items"`     // Danh sách record trong trang
	Page      int64 `json:"page"`      // Trang hiện tại (1-based)
	Limit     int64 `json:"limit"`     // Số record tối đa trên một trang
	ItemCount int64 `json:"itemCount"` // Số record thực tế trong trang
	Total     int64 `json:"total"`     // Tổng số record thỏa filter
	TotalPage int64 `json:"totalPage"` // Tổng số trang
	HasMore   bool  `json:"hasMore"`   // Còn trang sau không
}

// clampPage chuẩn hóa page và limit: page >= 1, limit trong [1, MaxPageLimit]
func clampPage(page, limit int64) (int64, int64) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

// PaginateSlice cắt trang một danh sách đã sắp xếp sẵn ngoài bảng.
// Dùng cho dữ liệu dẫn xuất (ví dụ lịch sử xem) không sống trong bảng nào.
func PaginateSlice[T any](items []T, page, limit int64) *PaginateResult[T] {
	return paginate(items, page, limit)
}

// paginate cắt trang [(page-1)*limit, page*limit) trên danh sách đã lọc + sắp xếp
func paginate[T any](items []T, page, limit int64) *PaginateResult[T] {
	page, limit = clampPage(page, limit)
	total := int64(len(items))

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	pageItems := make([]T, end-start)
	copy(pageItems, items[start:end])

	// Tổng số trang: làm tròn lên (total + limit - 1) / limit; total = 0 → 0 trang
	var totalPage int64
	if total > 0 {
		totalPage = (total + limit - 1) / limit
	}

	return &PaginateResult[T]{
		Items:     pageItems,
		Page:      page,
		Limit:     limit,
		ItemCount: int64(len(pageItems)),
		Total:     total,
		TotalPage: totalPage,
		HasMore:   page*limit < total,
	}
}
