package ledger

import (
	"github.com/Jlford67/landlord-sub001/internal/models"

	"go.uber.org/zap"
)

// SignPolicy is the engine's single sign-normalization policy: before an
// amount contributes to any total, it is forced onto its category kind's
// sign convention (income non-negative, expense non-positive, transfers
// untouched). This is a data-quality workaround for inconsistently
// signed source rows, not a business rule, and every correction is
// logged so silently "fixed" data stays visible.
type SignPolicy struct {
	log *zap.SugaredLogger
}

// NewSignPolicy creates a SignPolicy that reports corrections to log.
func NewSignPolicy(log *zap.SugaredLogger) SignPolicy {
	return SignPolicy{log: log}
}

// Normalize returns amount on the sign convention for kind. categoryID
// is only used for the correction log.
func (p SignPolicy) Normalize(kind models.CategoryKind, categoryID string, amount int64) int64 {
	switch kind {
	case models.CategoryKindIncome:
		if amount < 0 {
			p.logCorrection(kind, categoryID, amount)
			return -amount
		}
	case models.CategoryKindExpense:
		if amount > 0 {
			p.logCorrection(kind, categoryID, amount)
			return -amount
		}
	}
	return amount
}

func (p SignPolicy) logCorrection(kind models.CategoryKind, categoryID string, amount int64) {
	if p.log == nil {
		return
	}
	p.log.Warnw("sign-mismatched amount corrected",
		"category_id", categoryID,
		"kind", kind,
		"amount", amount,
	)
}
