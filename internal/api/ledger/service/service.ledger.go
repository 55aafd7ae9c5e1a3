// Package ledgersvc - service ghi có và quyết toán bút toán cho creator.
package ledgersvc

import (
	"context"

	basesvc "atom_video/internal/api/base/service"
	"atom_video/internal/api/ledger/models"
	"atom_video/internal/common"
	"atom_video/internal/global"
	"atom_video/internal/memstore"
)

// ViewCreditAmount là số tiền ghi có cho creator mỗi lượt xem hợp lệ
const ViewCreditAmount = 0.001

// LedgerService quản lý bảng ledger_entries
type LedgerService struct {
	*basesvc.BaseServiceMemory[models.LedgerEntry]
}

// NewLedgerService tạo service ledger trên bảng dùng chung
func NewLedgerService() *LedgerService {
	table := memstore.TableOf[models.LedgerEntry](global.Store, global.TableNames.LedgerEntries, global.IDPrefixes.Ledger)
	return &LedgerService{
		BaseServiceMemory: basesvc.NewBaseServiceMemory(table),
	}
}

// CreditView ghi có cho creator một khoản tương ứng một lượt xem media.
//
// Parameters:
//   - ctx: Context của request
//   - beneficiaryID: ID của creator được ghi có
//   - mediaID: ID của media phát sinh lượt xem
//
// Returns:
//   - models.LedgerEntry: Bút toán vừa ghi
//   - error: Lỗi nếu có
func (s *LedgerService) CreditView(ctx context.Context, beneficiaryID, mediaID string) (models.LedgerEntry, error) {
	return s.InsertOne(ctx, models.LedgerEntry{
		BeneficiaryID: beneficiaryID,
		Amount:        ViewCreditAmount,
		Source:        models.SourceView,
		RelatedID:     mediaID,
		Settlement:    models.SettlementPending,
	})
}

// FindByBeneficiary trả về bút toán của một người thụ hưởng, mới nhất trước.
// settlement rỗng nghĩa là không lọc theo trạng thái.
func (s *LedgerService) FindByBeneficiary(ctx context.Context, beneficiaryID, settlement string, page, limit int64) (*memstore.PaginateResult[models.LedgerEntry], error) {
	filter := memstore.NewFilter().Eq("beneficiaryId", beneficiaryID).Eq("settlement", settlement)
	return s.FindWithPagination(ctx, filter, memstore.DefaultSort(), page, limit)
}

// Balance tính tổng số dư của người thụ hưởng theo trạng thái quyết toán.
// settlement rỗng nghĩa là tổng tất cả.
func (s *LedgerService) Balance(ctx context.Context, beneficiaryID, settlement string) (float64, error) {
	filter := memstore.NewFilter().Eq("beneficiaryId", beneficiaryID).Eq("settlement", settlement)
	entries, err := s.Find(ctx, filter, memstore.DefaultSort())
	if err != nil {
		return 0, err
	}
	var total float64
	for _, entry := range entries {
		total += entry.Amount
	}
	return total, nil
}

// Settle chuyển một bút toán sang trạng thái settled.
// Bút toán đã settled không quyết toán lại được.
//
// Parameters:
//   - ctx: Context của request
//   - id: ID của bút toán
//
// Returns:
//   - models.LedgerEntry: Bút toán sau khi quyết toán
//   - error: common.ErrNotFound hoặc common.ErrInvalidOperation
func (s *LedgerService) Settle(ctx context.Context, id string) (models.LedgerEntry, error) {
	return s.UpdateById(ctx, id, func(entry *models.LedgerEntry) error {
		if entry.Settlement == models.SettlementSettled {
			return common.ErrInvalidOperation
		}
		entry.Settlement = models.SettlementSettled
		return nil
	})
}

// SettleAll quyết toán mọi bút toán pending của một người thụ hưởng.
//
// Returns:
//   - int64: Số bút toán đã quyết toán
//   - error: Lỗi nếu có
func (s *LedgerService) SettleAll(ctx context.Context, beneficiaryID string) (int64, error) {
	var count int64
	err := s.Table().Mutate(func(tx *memstore.Tx[models.LedgerEntry]) error {
		for _, entry := range tx.All() {
			if entry.BeneficiaryID == beneficiaryID && entry.Settlement == models.SettlementPending {
				entry.Settlement = models.SettlementSettled
				tx.Put(entry)
				count++
			}
		}
		return nil
	})
	return count, err
}
