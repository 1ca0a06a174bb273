package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Jlford67/landlord-sub001/internal/dates"
	apperrors "github.com/Jlford67/landlord-sub001/internal/errors"
	"github.com/Jlford67/landlord-sub001/internal/ledger"
	"github.com/Jlford67/landlord-sub001/internal/models"
)

// errAlreadyPosted signals that another writer materialized the
// (definition, month) pair first. It is resolved as a no-op, never
// surfaced to the caller.
var errAlreadyPosted = errors.New("recurring item already posted")

// postingService materializes due recurring items into ledger entries,
// exactly once per (definition, month).
type postingService struct {
	db         *gorm.DB
	recurring  RecurringServicer
	properties PropertyServicer
	policy     ledger.SignPolicy
	log        *zap.SugaredLogger
}

// NewPostingService creates a new PostingServicer.
func NewPostingService(db *gorm.DB, recurring RecurringServicer, properties PropertyServicer, policy ledger.SignPolicy, log *zap.SugaredLogger) PostingServicer {
	return &postingService{
		db:         db,
		recurring:  recurring,
		properties: properties,
		policy:     policy,
		log:        log,
	}
}

// PostForMonth materializes every due-and-unposted item for the property
// and month, each as its own all-or-nothing unit of work, and returns
// the count of newly posted items. A failing item (missing category,
// lost idempotency race) is skipped; the rest of the batch proceeds.
func (s *postingService) PostForMonth(ctx context.Context, propertyID string, month dates.YearMonth) (int, error) {
	if _, err := s.properties.GetPropertyByID(propertyID); err != nil {
		return 0, err
	}

	items, err := s.recurring.ScheduledForMonth(propertyID, month, false)
	if err != nil {
		return 0, err
	}

	posted := 0
	for _, item := range items {
		if item.AlreadyPosted {
			continue
		}
		if err := ctx.Err(); err != nil {
			return posted, err
		}

		err := s.postItem(item, month)
		switch {
		case err == nil:
			posted++
		case errors.Is(err, errAlreadyPosted):
			// Concurrent caller won the race; their posting stands.
		case isReferentialError(err):
			s.log.Warnw("skipping recurring item",
				"recurring_transaction_id", item.Definition.ID,
				"month", month.String(),
				"reason", err.Error(),
			)
		default:
			return posted, err
		}
	}
	return posted, nil
}

// postItem runs the check-then-create sequence for one item inside a
// single storage transaction. The composite unique index on
// (recurring_transaction_id, month) is the last line of defense against
// concurrent writers.
func (s *postingService) postItem(item ScheduledItem, month dates.YearMonth) error {
	def := item.Definition
	return s.db.Transaction(func(tx *gorm.DB) error {
		// Re-check immediately before insert; the schedule snapshot may
		// be stale under concurrent posting calls.
		var existing models.RecurringPosting
		err := tx.Where("recurring_transaction_id = ? AND month = ?", def.ID, month.String()).
			First(&existing).Error
		switch {
		case err == nil:
			var live int64
			if err := tx.Model(&models.Transaction{}).
				Where("id = ?", existing.TransactionID).
				Count(&live).Error; err != nil {
				return storageError(err)
			}
			if live > 0 {
				return errAlreadyPosted
			}
			// Dangling record: its transaction was deleted, so the month
			// is re-postable. Replace the row to keep the pair unique.
			if err := tx.Delete(&models.RecurringPosting{}, "id = ?", existing.ID).Error; err != nil {
				return storageError(err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Unposted, proceed.
		default:
			return storageError(err)
		}

		var category models.Category
		if err := tx.Where("id = ?", def.CategoryID).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrCategoryNotFound
			}
			return storageError(err)
		}

		memo := def.Memo
		if memo == "" {
			memo = category.Name
		}
		transaction := &models.Transaction{
			PropertyID: def.PropertyID,
			CategoryID: def.CategoryID,
			Date:       item.DueDate,
			Amount:     s.policy.Normalize(category.Kind, category.ID, def.Amount),
			Memo:       memo,
			Source:     models.TransactionSourceRecurring,
		}
		if err := tx.Create(transaction).Error; err != nil {
			return storageError(err)
		}

		posting := &models.RecurringPosting{
			RecurringTransactionID: def.ID,
			Month:                  month.String(),
			TransactionID:          transaction.ID,
		}
		if err := tx.Create(posting).Error; err != nil {
			if isDuplicateKey(err) {
				// A concurrent writer inserted the pair between our check
				// and this insert; rolling back leaves their row as the
				// single posting.
				return errAlreadyPosted
			}
			return storageError(err)
		}
		return nil
	})
}

// PostCatchUp posts every month from the earliest active start month
// through throughMonth, inclusive. Each month commits independently, so
// an interrupted catch-up resumes safely: completed months are never
// re-posted. Returns 0 without error when the property has no active
// definitions.
func (s *postingService) PostCatchUp(ctx context.Context, propertyID string, throughMonth dates.YearMonth) (int, error) {
	if _, err := s.properties.GetPropertyByID(propertyID); err != nil {
		return 0, err
	}

	earliest, ok, err := s.earliestStartMonth(propertyID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}

	total := 0
	for _, month := range earliest.MonthsThrough(throughMonth) {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		n, err := s.PostForMonth(ctx, propertyID, month)
		total += n
		if err != nil {
			return total, err
		}
	}

	s.log.Infow("recurring catch-up complete",
		"property_id", propertyID,
		"from", earliest.String(),
		"through", throughMonth.String(),
		"posted", total,
	)
	return total, nil
}

// earliestStartMonth finds the earliest parseable start month among the
// property's active definitions.
func (s *postingService) earliestStartMonth(propertyID string) (dates.YearMonth, bool, error) {
	var startMonths []string
	err := s.db.Model(&models.RecurringTransactionDefinition{}).
		Where("property_id = ? AND is_active = ?", propertyID, true).
		Pluck("start_month", &startMonths).Error
	if err != nil {
		return dates.YearMonth{}, false, storageError(err)
	}

	var earliest dates.YearMonth
	found := false
	for _, raw := range startMonths {
		ym, err := dates.ParseYearMonth(raw)
		if err != nil {
			s.log.Warnw("definition has malformed start month", "start_month", raw)
			continue
		}
		if !found || ym.Before(earliest) {
			earliest = ym
			found = true
		}
	}
	return earliest, found, nil
}

// isReferentialError reports whether err is a referential failure that
// aborts only the affected item, not the whole batch.
func isReferentialError(err error) bool {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return false
	}
	switch appErr.Code {
	case apperrors.ErrCategoryNotFound.Code, apperrors.ErrPropertyNotFound.Code, apperrors.ErrInvalidInput.Code:
		return true
	}
	return false
}

// isDuplicateKey recognizes a uniqueness-constraint violation across the
// drivers in use (gorm's translated error, postgres 23505, sqlite).
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
