// Package models - model bút toán thuộc domain ledger.
package models

import (
	"atom_video/internal/memstore"
)

// Trạng thái quyết toán của bút toán
const (
	SettlementPending = "pending"
	SettlementSettled = "settled"
)

// Nguồn phát sinh bút toán
const (
	SourceView = "view" // Ghi có cho creator khi media được xem
)

// LedgerEntry là một bút toán ghi có cho người thụ hưởng.
// Bút toán không bị xóa; quyết toán chỉ chuyển settlement sang settled.
type LedgerEntry struct {
	memstore.Base
	BeneficiaryID string  `json:"beneficiaryId"` // Người thụ hưởng
	Amount        float64 `json:"amount"`        // Số tiền ghi có
	Source        string  `json:"source"`        // Nguồn phát sinh
	RelatedID     string  `json:"relatedId"`     // ID đối tượng phát sinh (ví dụ media)
	Settlement    string  `json:"settlement"`    // pending | settled
}
