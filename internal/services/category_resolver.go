package services

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	apperrors "budgetly/internal/errors"
	"budgetly/internal/models"
)

// NormalizeCategoryName returns the internal key for a free-form category name.
func NormalizeCategoryName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DisplayNameFor derives a human label from a raw category name:
// "side_income" becomes "Side Income".
func DisplayNameFor(name string) string {
	tokens := strings.FieldsFunc(strings.TrimSpace(name), func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})
	caser := cases.Title(language.English)
	for i, tok := range tokens {
		tokens[i] = caser.String(tok)
	}
	return strings.Join(tokens, " ")
}

func defaultSortOrder(t models.CategoryType) int {
	if t == models.CategoryTypeRevenue {
		return models.DefaultRevenueSortOrder
	}
	return models.DefaultExpenseSortOrder
}

func categoryKey(name string, t models.CategoryType) string {
	return string(t) + ":" + name
}

// categoryResolver finds or creates categories by case-insensitive name and
// type against a candidate set loaded once per batch.
type categoryResolver struct {
	known map[string]*models.Category
}

func newCategoryResolver(existing []models.Category) *categoryResolver {
	r := &categoryResolver{known: make(map[string]*models.Category, len(existing))}
	for i := range existing {
		r.remember(&existing[i])
	}
	return r
}

// remember adds c to the candidate set. Callers using savepoints only do this
// once the creating record has been kept.
func (r *categoryResolver) remember(c *models.Category) {
	r.known[categoryKey(NormalizeCategoryName(c.Name), c.Type)] = c
}

// Resolve returns the matching category, creating it inside tx when no
// candidate matches. The boolean reports whether a row was inserted.
func (r *categoryResolver) Resolve(tx *gorm.DB, name string, t models.CategoryType) (*models.Category, bool, error) {
	key := NormalizeCategoryName(name)
	if key == "" {
		return nil, false, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if !t.Valid() {
		return nil, false, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid category type")
	}
	if c, ok := r.known[categoryKey(key, t)]; ok {
		return c, false, nil
	}

	category := &models.Category{
		Name:        key,
		DisplayName: DisplayNameFor(name),
		Type:        t,
		SortOrder:   defaultSortOrder(t),
	}
	err := tx.Transaction(func(tx *gorm.DB) error {
		return tx.Create(category).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Created concurrently since the candidate set was loaded.
		var existing models.Category
		if err := tx.Where("name = ? AND type = ?", key, t).First(&existing).Error; err != nil {
			return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &existing, false, nil
	}
	if err != nil {
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, true, nil
}
