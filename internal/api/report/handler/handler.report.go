// Package reporthdl - handler cho các route báo cáo vi phạm.
package reporthdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "atom_video/internal/api/base/handler"
	"atom_video/internal/api/report/dto"
	reportsvc "atom_video/internal/api/report/service"
)

// ReportHandler xử lý các route báo cáo
type ReportHandler struct {
	service *reportsvc.ReportService
}

// NewReportHandler tạo một instance mới của ReportHandler
func NewReportHandler() *ReportHandler {
	return &ReportHandler{service: reportsvc.NewReportService()}
}

// HandleCreate gửi báo cáo vi phạm mới
func (h *ReportHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.UserIDFromContext(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		var input dto.CreateReportInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		if err := basehdl.ValidateInput(&input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		report, err := h.service.Create(c.Context(), userID, &input)
		return basehdl.HandleResponse(c, report, err)
	})
}

// HandleListPending trả về báo cáo chưa xử lý; route nằm sau middleware admin
func (h *ReportHandler) HandleListPending(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		page, limit, _ := basehdl.ParsePagination(c)
		data, err := h.service.FindPending(c.Context(), page, limit)
		return basehdl.HandleResponse(c, data, err)
	})
}

// HandleResolve xử lý một báo cáo; route nằm sau middleware admin
func (h *ReportHandler) HandleResolve(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		adminID, err := basehdl.UserIDFromContext(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		id, err := basehdl.RequireParam(c, "id")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		var input dto.ResolveReportInput
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		if err := basehdl.ValidateInput(&input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		report, err := h.service.Resolve(c.Context(), id, adminID, &input)
		return basehdl.HandleResponse(c, report, err)
	})
}
