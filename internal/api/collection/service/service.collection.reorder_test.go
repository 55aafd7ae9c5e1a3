package collectionsvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atom_video/internal/api/collection/models"
	"atom_video/internal/memstore"
)

// makeItems dựng các mục A..N với position 1..N
func makeItems(mediaIDs ...string) []models.CollectionItem {
	items := make([]models.CollectionItem, len(mediaIDs))
	for i, mediaID := range mediaIDs {
		items[i] = models.CollectionItem{
			Base:         memstore.Base{ID: "cli_" + mediaID},
			CollectionID: "col_1",
			MediaID:      mediaID,
			Position:     int64(i + 1),
		}
	}
	return items
}

// orderOf trả về media theo thứ tự position tăng dần
func orderOf(t *testing.T, items []models.CollectionItem) []string {
	t.Helper()
	byPos := make(map[int64]string, len(items))
	for _, item := range items {
		require.NotContains(t, byPos, item.Position, "position %d bị trùng", item.Position)
		byPos[item.Position] = item.MediaID
	}
	order := make([]string, 0, len(items))
	for p := int64(1); p <= int64(len(items)); p++ {
		mediaID, ok := byPos[p]
		require.True(t, ok, "thiếu position %d, các position phải liên tục 1..N", p)
		order = append(order, mediaID)
	}
	return order
}

func TestReorderPositionsMoveBackward(t *testing.T) {
	items := makeItems("A", "B", "C", "D")

	// Kéo D từ vị trí 4 lên vị trí 2: B và C dịch xuống một bước
	moved := ReorderPositions(items, 4, 2)
	assert.Equal(t, []string{"A", "D", "B", "C"}, orderOf(t, moved))
}

func TestReorderPositionsMoveForward(t *testing.T) {
	items := makeItems("A", "B", "C", "D")

	// Đẩy A từ vị trí 1 xuống vị trí 4: B, C, D dịch lên một bước
	moved := ReorderPositions(items, 1, 4)
	assert.Equal(t, []string{"B", "C", "D", "A"}, orderOf(t, moved))
}

func TestReorderPositionsSamePositionIsNoop(t *testing.T) {
	items := makeItems("A", "B", "C")

	moved := ReorderPositions(items, 2, 2)
	assert.Equal(t, []string{"A", "B", "C"}, orderOf(t, moved))
}

func TestReorderPositionsDoesNotMutateInput(t *testing.T) {
	items := makeItems("A", "B", "C")

	_ = ReorderPositions(items, 1, 3)
	assert.Equal(t, []string{"A", "B", "C"}, orderOf(t, items), "hàm thuần không được sửa input")
}

func TestReorderPositionsKeepsContiguityUnderSequences(t *testing.T) {
	items := makeItems("A", "B", "C", "D", "E")

	// Một chuỗi di chuyển bất kỳ không bao giờ được phá vỡ 1..N
	moves := [][2]int64{{1, 5}, {3, 1}, {5, 2}, {2, 4}, {4, 4}, {5, 1}}
	for _, m := range moves {
		items = ReorderPositions(items, m[0], m[1])
		orderOf(t, items) // tự kiểm tra liên tục và không trùng
	}
	assert.Len(t, items, 5)
}

func TestReorderPositionsSingleItem(t *testing.T) {
	items := makeItems("A")

	moved := ReorderPositions(items, 1, 1)
	assert.Equal(t, []string{"A"}, orderOf(t, moved))
}
