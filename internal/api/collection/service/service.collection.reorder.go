package collectionsvc

import (
	"atom_video/internal/api/collection/models"
)

// ReorderPositions di chuyển mục đang ở fromPos tới toPos và dịch các mục
// trong khoảng bị ảnh hưởng đi một bước, giữ position 1..N liên tục.
// Hàm thuần: không sửa input, trả về slice mới; fromPos == toPos trả về
// bản sao nguyên trạng. Caller phải clamp toPos về [1, N] trước khi gọi.
//
// Parameters:
//   - items: Các mục của một danh sách, thứ tự bất kỳ
//   - fromPos: Vị trí hiện tại của mục cần di chuyển
//   - toPos: Vị trí đích, đã clamp về [1, N]
//
// Returns:
//   - []models.CollectionItem: Các mục với position mới
func ReorderPositions(items []models.CollectionItem, fromPos, toPos int64) []models.CollectionItem {
	result := make([]models.CollectionItem, len(items))
	copy(result, items)
	if fromPos == toPos {
		return result
	}

	for i := range result {
		p := result[i].Position
		switch {
		case p == fromPos:
			result[i].Position = toPos
		case fromPos < toPos && p > fromPos && p <= toPos:
			// Mục giữa vị trí cũ và vị trí đích dịch lên một bước
			result[i].Position = p - 1
		case toPos < fromPos && p >= toPos && p < fromPos:
			// Mục giữa vị trí đích và vị trí cũ dịch xuống một bước
			result[i].Position = p + 1
		}
	}
	return result
}
