package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "budgetly/internal/errors"
	"budgetly/internal/models"
	"budgetly/internal/services"
	"budgetly/internal/uuid"
)

// --- mock category service ---

type mockCategoryService struct {
	listCategoriesFn  func(categoryType *models.CategoryType) ([]models.Category, error)
	getCategoryByIDFn func(id string) (*models.Category, error)
	createCategoryFn  func(name, displayName string, categoryType models.CategoryType, sortOrder *int) (*models.Category, error)
	updateCategoryFn  func(id, name, displayName string, sortOrder *int) (*models.Category, error)
	deleteCategoryFn  func(id string) error
}

func (m *mockCategoryService) ListCategories(categoryType *models.CategoryType) ([]models.Category, error) {
	if m.listCategoriesFn != nil {
		return m.listCategoriesFn(categoryType)
	}
	return []models.Category{}, nil
}

func (m *mockCategoryService) GetCategoryByID(id string) (*models.Category, error) {
	if m.getCategoryByIDFn != nil {
		return m.getCategoryByIDFn(id)
	}
	return &models.Category{Base: models.Base{ID: id}}, nil
}

func (m *mockCategoryService) CreateCategory(name, displayName string, categoryType models.CategoryType, sortOrder *int) (*models.Category, error) {
	if m.createCategoryFn != nil {
		return m.createCategoryFn(name, displayName, categoryType, sortOrder)
	}
	return &models.Category{Base: models.Base{ID: uuid.New()}, Name: name, DisplayName: displayName, Type: categoryType}, nil
}

func (m *mockCategoryService) UpdateCategory(id, name, displayName string, sortOrder *int) (*models.Category, error) {
	if m.updateCategoryFn != nil {
		return m.updateCategoryFn(id, name, displayName, sortOrder)
	}
	return &models.Category{Base: models.Base{ID: id}, Name: name, DisplayName: displayName}, nil
}

func (m *mockCategoryService) DeleteCategory(id string) error {
	if m.deleteCategoryFn != nil {
		return m.deleteCategoryFn(id)
	}
	return nil
}

func (m *mockCategoryService) ResolveCategory(name string, categoryType models.CategoryType) (*models.Category, bool, error) {
	return &models.Category{Name: name, Type: categoryType}, false, nil
}

func (m *mockCategoryService) EnsureDefaults() error { return nil }

var _ services.CategoryServicer = (*mockCategoryService)(nil)

func setupCategoryRouter(handler *CategoryHandler) *gin.Engine {
	r := gin.New()
	api := r.Group("", injectOwnerID(""))
	api.GET("/categories", handler.ListCategories)
	api.POST("/categories", handler.CreateCategory)
	api.GET("/categories/:id", handler.GetCategory)
	api.PUT("/categories/:id", handler.UpdateCategory)
	api.DELETE("/categories/:id", handler.DeleteCategory)
	return r
}

func TestCategoryHandler_ListCategories(t *testing.T) {
	t.Run("passes type filter", func(t *testing.T) {
		var gotType *models.CategoryType
		svc := &mockCategoryService{
			listCategoriesFn: func(categoryType *models.CategoryType) ([]models.Category, error) {
				gotType = categoryType
				return []models.Category{{Name: "housing", DisplayName: "Housing", Type: models.CategoryTypeExpense}}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodGet, "/categories?type=expense", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotType == nil || *gotType != models.CategoryTypeExpense {
			t.Errorf("expected expense filter, got %v", gotType)
		}
		categories := parseJSON(t, rec)["categories"].([]interface{})
		if len(categories) != 1 {
			t.Errorf("expected 1 category, got %d", len(categories))
		}
	})

	t.Run("no filter", func(t *testing.T) {
		called := false
		svc := &mockCategoryService{
			listCategoriesFn: func(categoryType *models.CategoryType) ([]models.Category, error) {
				called = true
				if categoryType != nil {
					t.Errorf("expected nil filter, got %v", *categoryType)
				}
				return []models.Category{}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		rec := doRequest(r, http.MethodGet, "/categories", "")
		if rec.Code != http.StatusOK || !called {
			t.Fatalf("expected 200 and a service call, got %d", rec.Code)
		}
	})

	t.Run("returns 400 for unknown type", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, &mockAuditService{}))
		rec := doRequest(r, http.MethodGet, "/categories?type=income", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestCategoryHandler_CreateCategory(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var gotSort *int
		svc := &mockCategoryService{
			createCategoryFn: func(name, displayName string, categoryType models.CategoryType, sortOrder *int) (*models.Category, error) {
				gotSort = sortOrder
				return &models.Category{Base: models.Base{ID: uuid.New()}, Name: name, DisplayName: "Pets", Type: categoryType}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupCategoryRouter(NewCategoryHandler(svc, audit))

		rec := doRequest(r, http.MethodPost, "/categories", `{"name":"pets","type":"expense","sort_order":55}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotSort == nil || *gotSort != 55 {
			t.Errorf("expected sort order 55, got %v", gotSort)
		}
		if parseJSON(t, rec)["display_name"] != "Pets" {
			t.Error("expected display name in response")
		}
		if len(audit.entries) != 1 || audit.entries[0].action != "CREATE_CATEGORY" {
			t.Errorf("unexpected audit entries: %+v", audit.entries)
		}
	})

	t.Run("returns 400 on invalid type", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, &mockAuditService{}))
		rec := doRequest(r, http.MethodPost, "/categories", `{"name":"pets","type":"asset"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "VALIDATION_FAILED")
		details := result["error"].(map[string]interface{})["details"].([]interface{})
		if details[0].(map[string]interface{})["field"] != "type" {
			t.Errorf("expected type field error, got %v", details)
		}
	})

	t.Run("returns 409 on duplicate", func(t *testing.T) {
		svc := &mockCategoryService{
			createCategoryFn: func(string, string, models.CategoryType, *int) (*models.Category, error) {
				return nil, apperrors.ErrDuplicateCategory
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))
		rec := doRequest(r, http.MethodPost, "/categories", `{"name":"housing","type":"expense"}`)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_CATEGORY")
	})
}

func TestCategoryHandler_GetCategory(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockCategoryService{
			getCategoryByIDFn: func(string) (*models.Category, error) { return nil, apperrors.ErrCategoryNotFound },
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))
		rec := doRequest(r, http.MethodGet, "/categories/"+uuid.New(), "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CATEGORY_NOT_FOUND")
	})

	t.Run("returns 400 on bad id", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, &mockAuditService{}))
		rec := doRequest(r, http.MethodGet, "/categories/not-an-id", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestCategoryHandler_UpdateCategory(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		id := uuid.New()
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, &mockAuditService{}))
		rec := doRequest(r, http.MethodPut, "/categories/"+id, `{"display_name":"Home"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if parseJSON(t, rec)["display_name"] != "Home" {
			t.Error("expected updated display name")
		}
	})

	t.Run("returns 409 when renaming a protected category", func(t *testing.T) {
		svc := &mockCategoryService{
			updateCategoryFn: func(string, string, string, *int) (*models.Category, error) {
				return nil, apperrors.ErrCategoryProtected
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))
		rec := doRequest(r, http.MethodPut, "/categories/"+uuid.New(), `{"name":"misc"}`)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CATEGORY_PROTECTED")
	})
}

func TestCategoryHandler_DeleteCategory(t *testing.T) {
	t.Run("returns 200 and audits", func(t *testing.T) {
		audit := &mockAuditService{}
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, audit))
		rec := doRequest(r, http.MethodDelete, "/categories/"+uuid.New(), "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if len(audit.entries) != 1 || audit.entries[0].action != "DELETE_CATEGORY" {
			t.Errorf("unexpected audit entries: %+v", audit.entries)
		}
	})

	t.Run("returns 409 for protected category", func(t *testing.T) {
		audit := &mockAuditService{}
		svc := &mockCategoryService{
			deleteCategoryFn: func(string) error { return apperrors.ErrCategoryProtected },
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, audit))
		rec := doRequest(r, http.MethodDelete, "/categories/"+uuid.New(), "")
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		if len(audit.entries) != 0 {
			t.Error("expected no audit entry on failure")
		}
	})
}
