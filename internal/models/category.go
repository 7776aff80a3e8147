package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeRevenue CategoryType = "revenue"
	CategoryTypeExpense CategoryType = "expense"
)

// Valid reports whether t is one of the known category types.
func (t CategoryType) Valid() bool {
	return t == CategoryTypeRevenue || t == CategoryTypeExpense
}

// Names of categories that can never be deleted or renamed.
const (
	CategoryNameRevenue = "revenue"
	CategoryNameOther   = "other"
)

// Default sort orders for categories created without an explicit position.
const (
	DefaultRevenueSortOrder = 0
	DefaultExpenseSortOrder = 100
)

// Category groups budget items. Name is the lower-cased internal key and is
// unique together with Type.
type Category struct {
	Base
	Name        string       `gorm:"not null;size:100;uniqueIndex:idx_categories_name_type" json:"name"`
	DisplayName string       `gorm:"not null;size:100" json:"display_name"`
	Type        CategoryType `gorm:"not null;size:16;uniqueIndex:idx_categories_name_type" json:"type"`
	SortOrder   int          `gorm:"not null" json:"sort_order"`
}

// IsProtected reports whether the category is one of the anchors that the
// application relies on.
func (c *Category) IsProtected() bool {
	return IsProtectedCategoryName(c.Name)
}

// IsProtectedCategoryName reports whether name refers to a protected category.
func IsProtectedCategoryName(name string) bool {
	return name == CategoryNameRevenue || name == CategoryNameOther
}
