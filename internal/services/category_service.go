package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "budgetly/internal/errors"
	"budgetly/internal/logger"
	"budgetly/internal/models"
)

// defaultCategories are seeded on startup when missing.
var defaultCategories = []models.Category{
	{Name: models.CategoryNameRevenue, DisplayName: "Revenue", Type: models.CategoryTypeRevenue, SortOrder: 0},
	{Name: "housing", DisplayName: "Housing", Type: models.CategoryTypeExpense, SortOrder: 10},
	{Name: "utilities", DisplayName: "Utilities", Type: models.CategoryTypeExpense, SortOrder: 20},
	{Name: "transportation", DisplayName: "Transportation", Type: models.CategoryTypeExpense, SortOrder: 30},
	{Name: "food", DisplayName: "Food", Type: models.CategoryTypeExpense, SortOrder: 40},
	{Name: "insurance", DisplayName: "Insurance", Type: models.CategoryTypeExpense, SortOrder: 50},
	{Name: "healthcare", DisplayName: "Healthcare", Type: models.CategoryTypeExpense, SortOrder: 60},
	{Name: "debt", DisplayName: "Debt", Type: models.CategoryTypeExpense, SortOrder: 70},
	{Name: "savings", DisplayName: "Savings", Type: models.CategoryTypeExpense, SortOrder: 80},
	{Name: "personal", DisplayName: "Personal", Type: models.CategoryTypeExpense, SortOrder: 90},
	{Name: models.CategoryNameOther, DisplayName: "Other", Type: models.CategoryTypeExpense, SortOrder: 1000},
}

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// ListCategories returns all categories, revenue first, optionally filtered by type.
func (s *categoryService) ListCategories(categoryType *models.CategoryType) ([]models.Category, error) {
	query := s.db.Model(&models.Category{})
	if categoryType != nil {
		if !categoryType.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid category type")
		}
		query = query.Where("type = ?", *categoryType)
	}

	var categories []models.Category
	// "revenue" sorts after "expense", hence DESC.
	if err := query.Order("type DESC, sort_order ASC, display_name ASC, id ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

// GetCategoryByID retrieves a category by ID.
func (s *categoryService) GetCategoryByID(id string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// CreateCategory creates a new category. An empty display name is derived
// from the name and a nil sort order takes the per-type default.
func (s *categoryService) CreateCategory(name, displayName string, categoryType models.CategoryType, sortOrder *int) (*models.Category, error) {
	key := NormalizeCategoryName(name)
	if key == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if !categoryType.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid category type")
	}

	if err := s.checkUnique(key, categoryType, ""); err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:        key,
		DisplayName: displayName,
		Type:        categoryType,
		SortOrder:   defaultSortOrder(categoryType),
	}
	if category.DisplayName == "" {
		category.DisplayName = DisplayNameFor(name)
	}
	if sortOrder != nil {
		category.SortOrder = *sortOrder
	}

	if err := s.db.Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateCategory
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// UpdateCategory updates the provided fields. Protected categories keep their name.
func (s *categoryService) UpdateCategory(id, name, displayName string, sortOrder *int) (*models.Category, error) {
	category, err := s.GetCategoryByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if key := NormalizeCategoryName(name); key != "" && key != category.Name {
		if category.IsProtected() {
			return nil, apperrors.WithMessage(apperrors.ErrCategoryProtected, "this category cannot be renamed")
		}
		if err := s.checkUnique(key, category.Type, category.ID); err != nil {
			return nil, err
		}
		updates["name"] = key
	}
	if displayName != "" {
		updates["display_name"] = displayName
	}
	if sortOrder != nil {
		updates["sort_order"] = *sortOrder
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperrors.ErrDuplicateCategory
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetCategoryByID(id)
}

// DeleteCategory removes a category together with every item that uses it.
func (s *categoryService) DeleteCategory(id string) error {
	category, err := s.GetCategoryByID(id)
	if err != nil {
		return err
	}
	if category.IsProtected() {
		return apperrors.ErrCategoryProtected
	}

	var removed int64
	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("category_id = ?", category.ID).Delete(&models.BudgetItem{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected
		return tx.Delete(category).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Named("categories").Infow("category deleted", "category", category.Name, "items_removed", removed)
	return nil
}

// ResolveCategory finds a category by case-insensitive name and type,
// creating it when absent.
func (s *categoryService) ResolveCategory(name string, categoryType models.CategoryType) (*models.Category, bool, error) {
	var existing []models.Category
	if err := s.db.Where("name = ? AND type = ?", NormalizeCategoryName(name), categoryType).Find(&existing).Error; err != nil {
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return newCategoryResolver(existing).Resolve(s.db, name, categoryType)
}

// EnsureDefaults inserts any missing default category. Existing rows are
// left as they are.
func (s *categoryService) EnsureDefaults() error {
	created := 0
	for _, def := range defaultCategories {
		var count int64
		if err := s.db.Model(&models.Category{}).
			Where("name = ? AND type = ?", def.Name, def.Type).
			Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			continue
		}
		category := def
		if err := s.db.Create(&category).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		created++
	}
	if created > 0 {
		logger.Named("categories").Infow("default categories seeded", "created", created)
	}
	return nil
}

func (s *categoryService) checkUnique(key string, t models.CategoryType, exceptID string) error {
	query := s.db.Model(&models.Category{}).Where("name = ? AND type = ?", key, t)
	if exceptID != "" {
		query = query.Where("id <> ?", exceptID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrDuplicateCategory
	}
	return nil
}
