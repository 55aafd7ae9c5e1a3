package basehdl

import (
	"github.com/gofiber/fiber/v3"

	"atom_video/internal/api/base/service"
	"atom_video/internal/memstore"
)

// BaseHandler là handler generic cung cấp các endpoint CRUD cơ bản.
// Type parameters:
//   - T: Model của bảng
//   - CreateInput: DTO cho request tạo mới
//   - UpdateInput: DTO cho request cập nhật
//
// Domain handler embed BaseHandler và gán ToModel/ApplyUpdate để định nghĩa
// cách chuyển DTO sang model. Endpoint nào cần nghiệp vụ riêng thì domain
// handler tự định nghĩa, không dùng bản generic.
type BaseHandler[T memstore.Entity, CreateInput any, UpdateInput any] struct {
	Service *basesvc.BaseServiceMemory[T]

	// ToModel chuyển DTO tạo mới sang model
	ToModel func(input *CreateInput) (T, error)

	// ApplyUpdate áp DTO cập nhật lên model hiện có
	ApplyUpdate func(input *UpdateInput, model *T) error
}

// NewBaseHandler tạo base handler trên một base service
func NewBaseHandler[T memstore.Entity, CreateInput any, UpdateInput any](service *basesvc.BaseServiceMemory[T]) *BaseHandler[T, CreateInput, UpdateInput] {
	return &BaseHandler[T, CreateInput, UpdateInput]{Service: service}
}

// InsertOne thêm mới một record.
// Body được parse thành CreateInput, validate rồi chuyển sang model qua ToModel.
func (h *BaseHandler[T, CreateInput, UpdateInput]) InsertOne(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		var input CreateInput
		if err := ParseRequestBody(c, &input); err != nil {
			return HandleResponse(c, nil, err)
		}
		if err := ValidateInput(&input); err != nil {
			return HandleResponse(c, nil, err)
		}

		model, err := h.ToModel(&input)
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		data, err := h.Service.InsertOne(c.Context(), model)
		return HandleResponse(c, data, err)
	})
}

// FindOneById tìm record theo ID trong path param
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindOneById(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		id, err := RequireParam(c, "id")
		if err != nil {
			return HandleResponse(c, nil, err)
		}
		data, err := h.Service.FindOneById(c.Context(), id)
		return HandleResponse(c, data, err)
	})
}

// FindWithPagination tìm record với phân trang.
// Query params: page, limit, sortBy, sortDir; thiếu hoặc sai về mặc định.
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindWithPagination(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		page, limit, sort := ParsePagination(c)
		data, err := h.Service.FindWithPagination(c.Context(), memstore.NewFilter(), sort, page, limit)
		return HandleResponse(c, data, err)
	})
}

// UpdateById cập nhật record theo ID qua UpdateInput và ApplyUpdate
func (h *BaseHandler[T, CreateInput, UpdateInput]) UpdateById(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		id, err := RequireParam(c, "id")
		if err != nil {
			return HandleResponse(c, nil, err)
		}

		var input UpdateInput
		if err := ParseRequestBody(c, &input); err != nil {
			return HandleResponse(c, nil, err)
		}
		if err := ValidateInput(&input); err != nil {
			return HandleResponse(c, nil, err)
		}

		data, err := h.Service.UpdateById(c.Context(), id, func(model *T) error {
			return h.ApplyUpdate(&input, model)
		})
		return HandleResponse(c, data, err)
	})
}

// DeleteById xóa record theo ID trong path param
func (h *BaseHandler[T, CreateInput, UpdateInput]) DeleteById(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		id, err := RequireParam(c, "id")
		if err != nil {
			return HandleResponse(c, nil, err)
		}
		err = h.Service.DeleteById(c.Context(), id)
		return HandleResponse(c, nil, err)
	})
}

// Count đếm tổng số record trong bảng
func (h *BaseHandler[T, CreateInput, UpdateInput]) Count(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		total, err := h.Service.Count(c.Context(), nil)
		return HandleResponse(c, fiber.Map{"total": total}, err)
	})
}
