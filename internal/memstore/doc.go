// Package memstore là kho dữ liệu nhúng trong bộ nhớ của ứng dụng.
//
// Kho gồm các bảng record có thứ tự chèn (Table), pipeline truy vấn
// filter → sort → paginate thuần (không mutation), và registry phiên đăng nhập
// ánh xạ opaque token → identity. Mỗi bảng có một RWMutex riêng; mọi thao tác
// nhiều dòng trên cùng một bảng (ví dụ đánh lại position của danh sách phát)
// chạy trọn vẹn dưới write lock của bảng đó thông qua Mutate.
//
// Dữ liệu chỉ sống trong vòng đời process: không durability, không truy cập
// đa process. Mọi kết quả đọc là bản sao; caller không bao giờ giữ con trỏ
// vào dòng dữ liệu bên trong bảng.
package memstore
