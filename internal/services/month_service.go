package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"budgetly/internal/calendar"
	apperrors "budgetly/internal/errors"
	"budgetly/internal/logger"
	"budgetly/internal/models"
	"budgetly/internal/pagination"
)

// MaxHistoryMonths bounds the range accepted by history queries.
const MaxHistoryMonths = 36

const carryForwardBatchSize = 100

// monthService handles the budget month lifecycle.
type monthService struct {
	db  *gorm.DB
	now func() time.Time
}

// MonthOption configures a month service.
type MonthOption func(*monthService)

// WithClock replaces the clock used to determine the current month.
func WithClock(now func() time.Time) MonthOption {
	return func(s *monthService) { s.now = now }
}

// NewMonthService creates a new MonthServicer.
func NewMonthService(db *gorm.DB, opts ...MonthOption) MonthServicer {
	s := &monthService{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ResolveMonth returns the month for (ownerID, ym), creating it and carrying
// items forward from the previous month when it does not exist yet.
func (s *monthService) ResolveMonth(ownerID string, ym calendar.YearMonth) (*models.BudgetMonth, bool, error) {
	return resolveMonth(s.db, ownerID, ym)
}

// resolveMonth is the get-or-create shared by the month service and the
// importer. tx may be a transaction; creation runs in a nested one.
func resolveMonth(tx *gorm.DB, ownerID string, ym calendar.YearMonth) (*models.BudgetMonth, bool, error) {
	if !ym.Valid() {
		return nil, false, apperrors.ErrInvalidMonth
	}

	month, err := findMonth(tx, ownerID, ym)
	if err == nil {
		return month, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	month = &models.BudgetMonth{
		Year:     ym.Year,
		Month:    int(ym.Month),
		OwnerID:  ownerID,
		IsActive: true,
	}
	var carried int
	err = tx.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(month).Error; err != nil {
			return err
		}
		n, err := carryForward(tx, month)
		carried = n
		return err
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the race: another writer created the month first.
		existing, findErr := findMonth(tx, ownerID, ym)
		if findErr != nil {
			return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, findErr)
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Named("months").Infow("budget month created",
		"month", ym.Key(),
		"owner_id", ownerID,
		"carried_items", carried,
	)
	return month, true, nil
}

// carryForward copies the previous month's items into month with actual
// amounts reset and paid flags cleared. Due dates are copied unchanged.
func carryForward(tx *gorm.DB, month *models.BudgetMonth) (int, error) {
	previous, err := findMonth(tx, month.OwnerID, month.Period().Prev())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var items []models.BudgetItem
	if err := tx.Where("budget_month_id = ?", previous.ID).
		Order("created_at ASC, id ASC").
		Find(&items).Error; err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, nil
	}

	copies := make([]models.BudgetItem, 0, len(items))
	for _, item := range items {
		copies = append(copies, models.BudgetItem{
			BudgetMonthID:  month.ID,
			CategoryID:     item.CategoryID,
			Name:           item.Name,
			ExpectedAmount: item.ExpectedAmount,
			ActualAmount:   decimal.Zero,
			DueDate:        item.DueDate,
			IsPaid:         false,
		})
	}
	if err := tx.CreateInBatches(&copies, carryForwardBatchSize).Error; err != nil {
		return 0, err
	}
	return len(copies), nil
}

func findMonth(db *gorm.DB, ownerID string, ym calendar.YearMonth) (*models.BudgetMonth, error) {
	var month models.BudgetMonth
	err := db.Where("year = ? AND month = ? AND owner_id = ?", ym.Year, int(ym.Month), ownerID).
		First(&month).Error
	if err != nil {
		return nil, err
	}
	return &month, nil
}

func loadItems(db *gorm.DB, monthIDs ...string) ([]models.BudgetItem, error) {
	var items []models.BudgetItem
	err := db.Preload("Category").
		Where("budget_month_id IN ?", monthIDs).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	return items, err
}

// GetMonthView resolves the month and computes its aggregated view.
func (s *monthService) GetMonthView(ownerID string, ym calendar.YearMonth) (*MonthView, error) {
	month, _, err := s.ResolveMonth(ownerID, ym)
	if err != nil {
		return nil, err
	}
	items, err := loadItems(s.db, month.ID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return ComputeMonthView(*month, items), nil
}

// GetCurrentMonthView returns the view of the month containing the service clock's now.
func (s *monthService) GetCurrentMonthView(ownerID string) (*MonthView, error) {
	return s.GetMonthView(ownerID, calendar.Of(s.now()))
}

// GetAdjacentMonthView returns the view of the month before or after ym.
func (s *monthService) GetAdjacentMonthView(ownerID string, ym calendar.YearMonth, dir Direction) (*MonthView, error) {
	if !ym.Valid() {
		return nil, apperrors.ErrInvalidMonth
	}
	target := ym.Next()
	if dir == Previous {
		target = ym.Prev()
	}
	return s.GetMonthView(ownerID, target)
}

// ListMonths returns materialized months, newest first.
func (s *monthService) ListMonths(ownerID string, page pagination.PageRequest, isActive *bool) (*pagination.PageResponse[models.BudgetMonth], error) {
	page.Defaults()

	query := s.db.Model(&models.BudgetMonth{}).Where("owner_id = ?", ownerID)
	if isActive != nil {
		query = query.Where("is_active = ?", *isActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var months []models.BudgetMonth
	if err := query.Scopes(pagination.Paginate(page)).
		Order("year DESC, month DESC").
		Find(&months).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(months, page.Page, page.PageSize, total)
	return &resp, nil
}

// DeleteMonth removes a month and all of its items.
func (s *monthService) DeleteMonth(ownerID string, ym calendar.YearMonth) error {
	if !ym.Valid() {
		return apperrors.ErrInvalidMonth
	}
	month, err := findMonth(s.db, ownerID, ym)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrBudgetMonthNotFound
	}
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("budget_month_id = ?", month.ID).Delete(&models.BudgetItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(month).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Named("months").Infow("budget month deleted", "month", ym.Key(), "owner_id", ownerID)
	return nil
}

// GetHistory returns the headline totals of every existing month in
// [from, to]. Months are never created by this call.
func (s *monthService) GetHistory(ownerID string, from, to calendar.YearMonth) ([]MonthSummary, error) {
	views, err := s.GetExistingMonthViews(ownerID, from, to)
	if err != nil {
		return nil, err
	}
	summaries := make([]MonthSummary, 0, len(views))
	for _, v := range views {
		summaries = append(summaries, MonthSummary{
			Year:    v.Month.Year,
			Month:   v.Month.Month,
			Label:   v.Month.Label,
			Summary: v.Summary,
		})
	}
	return summaries, nil
}

// GetExistingMonthViews computes views for every existing month in [from, to],
// in chronological order.
func (s *monthService) GetExistingMonthViews(ownerID string, from, to calendar.YearMonth) ([]*MonthView, error) {
	if !from.Valid() || !to.Valid() {
		return nil, apperrors.ErrInvalidMonth
	}
	if to.Before(from) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "from must not be after to")
	}
	if from.MonthsUntil(to) > MaxHistoryMonths {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
			fmt.Sprintf("history range cannot exceed %d months", MaxHistoryMonths))
	}

	var months []models.BudgetMonth
	if err := s.db.
		Where("owner_id = ? AND (year * 100 + month) BETWEEN ? AND ?",
			ownerID, periodKey(from), periodKey(to)).
		Order("year ASC, month ASC").
		Find(&months).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(months) == 0 {
		return []*MonthView{}, nil
	}

	ids := make([]string, len(months))
	for i, m := range months {
		ids[i] = m.ID
	}
	items, err := loadItems(s.db, ids...)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	byMonth := make(map[string][]models.BudgetItem, len(months))
	for _, item := range items {
		byMonth[item.BudgetMonthID] = append(byMonth[item.BudgetMonthID], item)
	}

	views := make([]*MonthView, 0, len(months))
	for _, m := range months {
		views = append(views, ComputeMonthView(m, byMonth[m.ID]))
	}
	return views, nil
}

func periodKey(ym calendar.YearMonth) int {
	return ym.Year*100 + int(ym.Month)
}
