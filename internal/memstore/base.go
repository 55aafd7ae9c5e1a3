package memstore

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"atom_video/internal/utility"
)

// Timestamp là một thời điểm Unix milliseconds. Trong bộ nhớ vẫn là số để
// so sánh rẻ; serialize ra JSON dưới dạng chuỗi ISO-8601 UTC cho client.
// Chuỗi có độ rộng cố định (millisecond luôn đủ 3 chữ số) nên thứ tự từ
// điển trùng với thứ tự thời gian, sort trên record map vẫn đúng.
type Timestamp int64

// MarshalJSON serialize timestamp thành chuỗi ISO-8601 UTC
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(utility.FormatTimeISO(int64(ts)))
}

// UnmarshalJSON chấp nhận cả chuỗi ISO-8601 lẫn số millisecond
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return err
		}
		*ts = Timestamp(parsed.UnixMilli())
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*ts = Timestamp(n)
	return nil
}

// Base chứa các trường chung của mọi record: định danh và timestamps.
// Mọi model của kho dữ liệu đều embed Base. ID là chuỗi opaque có tiền tố
// theo loại record (ví dụ usr_, vid_); tiền tố chỉ để debug, caller không
// được parse ý nghĩa từ đó.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

// GetID trả về định danh của record
func (b Base) GetID() string {
	return b.ID
}

// GetCreatedAt trả về thời điểm tạo record (Unix milliseconds)
func (b Base) GetCreatedAt() int64 {
	return int64(b.CreatedAt)
}

// GetUpdatedAt trả về thời điểm cập nhật cuối (Unix milliseconds)
func (b Base) GetUpdatedAt() int64 {
	return int64(b.UpdatedAt)
}

// stampNew gán ID và timestamps khi record được insert lần đầu
func (b *Base) stampNew(id string, now int64) {
	b.ID = id
	b.CreatedAt = Timestamp(now)
	b.UpdatedAt = Timestamp(now)
}

// touch cập nhật UpdatedAt khi record bị mutate
func (b *Base) touch(now int64) {
	b.UpdatedAt = Timestamp(now)
}

// Entity là interface mà mọi model của kho dữ liệu thỏa mãn (qua embed Base)
type Entity interface {
	GetID() string
	GetCreatedAt() int64
	GetUpdatedAt() int64
}

// stamper là interface nội bộ chỉ thỏa mãn được bằng cách embed Base,
// đảm bảo chỉ kho dữ liệu mới gán được ID và timestamps.
type stamper interface {
	stampNew(id string, now int64)
	touch(now int64)
}

// NewID sinh định danh mới cho record với tiền tố loại.
// Ví dụ: NewID("usr") → "usr_1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed"
func NewID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

// toRecordMap chuyển record sang map[string]any theo json tag (round-trip JSON).
// Pipeline truy vấn dùng map này để so khớp filter và lấy sort key mà không cần
// biết kiểu cụ thể của record. Mọi số trong map là float64 theo quy ước JSON.
func toRecordMap(item any) map[string]any {
	raw, err := json.Marshal(item)
	if err != nil {
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return map[string]any{}
	}
	return m
}

// foldEqual so sánh hai chuỗi không phân biệt hoa thường
func foldEqual(a, b string) bool {
	return strings.EqualFold(a, b)
}
