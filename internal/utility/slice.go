package utility

// Contains kiểm tra một phần tử có trong slice hay không
func Contains[T comparable](slice []T, item T) bool {
	for _, v := range slice {
		if v == item {
			return true
		}
	}
	return false
}

// Remove xóa tất cả các phần tử bằng item khỏi slice.
// Trả về slice mới và true nếu có ít nhất một phần tử bị xóa.
func Remove[T comparable](slice []T, item T) ([]T, bool) {
	result := make([]T, 0, len(slice))
	removed := false
	for _, v := range slice {
		if v != item {
			result = append(result, v)
		} else {
			removed = true
		}
	}
	return result, removed
}

// Toggle thêm item vào slice nếu chưa có, xóa nếu đã có.
// Trả về slice mới và true nếu item được thêm vào (false nếu bị xóa).
// Dùng cho các tập hợp liked/favorited: toggle hai lần trả về trạng thái ban đầu.
func Toggle[T comparable](slice []T, item T) ([]T, bool) {
	if Contains(slice, item) {
		next, _ := Remove(slice, item)
		return next, false
	}
	return append(slice, item), true
}
