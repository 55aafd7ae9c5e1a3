// Package ledgerhdl - handler cho các route ledger của creator.
package ledgerhdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "atom_video/internal/api/base/handler"
	ledgersvc "atom_video/internal/api/ledger/service"
)

// LedgerHandler xử lý các route ledger
type LedgerHandler struct {
	service *ledgersvc.LedgerService
}

// NewLedgerHandler tạo một instance mới của LedgerHandler
func NewLedgerHandler() *LedgerHandler {
	return &LedgerHandler{service: ledgersvc.NewLedgerService()}
}

// HandleListMine trả về bút toán của người dùng đang đăng nhập.
// Query param settlement lọc theo trạng thái quyết toán, rỗng là tất cả.
func (h *LedgerHandler) HandleListMine(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.UserIDFromContext(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		page, limit, _ := basehdl.ParsePagination(c)
		data, err := h.service.FindByBeneficiary(c.Context(), userID, c.Query("settlement"), page, limit)
		return basehdl.HandleResponse(c, data, err)
	})
}

// HandleBalance trả về số dư của người dùng đang đăng nhập
func (h *LedgerHandler) HandleBalance(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.UserIDFromContext(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		pending, err := h.service.Balance(c.Context(), userID, "pending")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		settled, err := h.service.Balance(c.Context(), userID, "settled")
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		return basehdl.HandleResponse(c, fiber.Map{
			"pending": pending,
			"settled": settled,
			"total":   pending + settled,
		}, nil)
	})
}

// HandleSettleAll quyết toán mọi bút toán pending của người dùng đang đăng nhập
func (h *LedgerHandler) HandleSettleAll(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID, err := basehdl.UserIDFromContext(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		count, err := h.service.SettleAll(c.Context(), userID)
		return basehdl.HandleResponse(c, fiber.Map{"settled": count}, err)
	})
}
