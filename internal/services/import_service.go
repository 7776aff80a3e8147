package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"budgetly/internal/calendar"
	apperrors "budgetly/internal/errors"
	"budgetly/internal/logger"
	"budgetly/internal/models"
	"budgetly/internal/money"
)

// DefaultImportMaxRecords is used when the service is built without a limit.
const DefaultImportMaxRecords = 5000

// ImportResult aggregates the outcome of a batch.
type ImportResult struct {
	Success           int      `json:"success"`
	Failed            int      `json:"failed"`
	CategoriesCreated int      `json:"categories_created"`
	MonthsCreated     int      `json:"months_created"`
	Errors            []string `json:"errors"`
}

// importService loads loosely typed records into budget items.
type importService struct {
	db         *gorm.DB
	maxRecords int
}

// NewImportService creates a new ImportServicer accepting at most maxRecords
// records per batch.
func NewImportService(db *gorm.DB, maxRecords int) ImportServicer {
	if maxRecords <= 0 {
		maxRecords = DefaultImportMaxRecords
	}
	return &importService{db: db, maxRecords: maxRecords}
}

// ImportBatch imports records into target (or each record's own month). A
// failing record is rolled back on its own and reported in the result; the
// rest of the batch still commits.
func (s *importService) ImportBatch(ownerID string, target calendar.YearMonth, records []ImportRecord) (*ImportResult, error) {
	if !target.Valid() {
		return nil, apperrors.ErrInvalidMonth
	}
	if len(records) > s.maxRecords {
		return nil, apperrors.ErrTooManyRecords
	}

	result := &ImportResult{Errors: []string{}}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing []models.Category
		if err := tx.Find(&existing).Error; err != nil {
			return err
		}
		b := &importBatch{
			tx:       tx,
			ownerID:  ownerID,
			target:   target,
			resolver: newCategoryResolver(existing),
			months:   make(map[string]*models.BudgetMonth),
			result:   result,
		}
		for i, rec := range records {
			b.apply(i+1, rec)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Named("import").Infow("import batch finished",
		"owner_id", ownerID,
		"target", target.Key(),
		"success", result.Success,
		"failed", result.Failed,
		"categories_created", result.CategoriesCreated,
		"months_created", result.MonthsCreated,
	)
	return result, nil
}

// importBatch is the per-call state folded over the records.
type importBatch struct {
	tx       *gorm.DB
	ownerID  string
	target   calendar.YearMonth
	resolver *categoryResolver
	months   map[string]*models.BudgetMonth
	result   *ImportResult
}

// staged holds what a record resolved; it only reaches the batch caches
// once the record's savepoint is kept.
type staged struct {
	month           *models.BudgetMonth
	monthCreated    bool
	category        *models.Category
	categoryCreated bool
}

func (b *importBatch) apply(n int, rec ImportRecord) {
	var st staged
	err := b.tx.Transaction(func(tx *gorm.DB) error {
		return b.importRecord(tx, rec, &st)
	})
	if err != nil {
		b.result.Failed++
		b.result.Errors = append(b.result.Errors, rec.label(n)+": "+describe(err))
		logger.Named("import").Debugw("import record rejected", "record", n, "error", err)
		return
	}

	if st.month != nil {
		b.months[st.month.Period().Key()] = st.month
		if st.monthCreated {
			b.result.MonthsCreated++
		}
	}
	if st.category != nil {
		b.resolver.remember(st.category)
		if st.categoryCreated {
			b.result.CategoriesCreated++
		}
	}
	b.result.Success++
}

func (b *importBatch) importRecord(tx *gorm.DB, rec ImportRecord, st *staged) error {
	name, err := rec.Name()
	if err != nil {
		return err
	}
	categoryType, err := rec.CategoryType()
	if err != nil {
		return err
	}

	ym := b.target
	if parsed, ok := rec.Month(); ok {
		ym = parsed
	}
	month, ok := b.months[ym.Key()]
	if !ok {
		month, st.monthCreated, err = resolveMonth(tx, b.ownerID, ym)
		if err != nil {
			return err
		}
	}
	st.month = month

	st.category, st.categoryCreated, err = b.resolver.Resolve(tx, rec.CategoryName(categoryType), categoryType)
	if err != nil {
		return err
	}

	expected := money.Normalize(rec.ExpectedAmountRaw(), categoryType)
	actual := money.Normalize(rec.ActualAmountRaw(), categoryType)
	if !money.InRange(expected) || !money.InRange(actual) {
		return fmt.Errorf("amount exceeds %s", money.MaxAmount.StringFixed(money.Scale))
	}

	item := &models.BudgetItem{
		BudgetMonthID:  month.ID,
		CategoryID:     st.category.ID,
		Name:           name,
		ExpectedAmount: expected,
		ActualAmount:   actual,
		DueDate:        rec.DueDate(),
		IsPaid:         rec.IsPaid(),
	}
	if err := tx.Create(item).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// describe renders err for the client-facing error list. Internal causes are
// not exposed.
func describe(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
