package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestCategoryFlow_CRUD(t *testing.T) {
	app := setupApp(t)

	// Step 1: Defaults are seeded
	rec := app.request(http.MethodGet, "/api/v1/categories", "", "")
	mustStatus(t, rec, http.StatusOK)
	all := parseJSON(t, rec)["categories"].([]interface{})
	if len(all) != 11 {
		t.Fatalf("expected 11 default categories, got %d", len(all))
	}
	if first := all[0].(map[string]interface{}); first["type"] != "revenue" {
		t.Errorf("expected revenue categories first, got %v", first)
	}

	// Step 2: Create a custom category; display name is derived
	rec = app.request(http.MethodPost, "/api/v1/categories", `{"name":"  Pet_Care ","type":"expense"}`, "")
	mustStatus(t, rec, http.StatusCreated)
	created := parseJSON(t, rec)
	if created["name"] != "pet_care" || created["display_name"] != "Pet Care" {
		t.Errorf("unexpected category: %v", created)
	}
	id := created["id"].(string)

	// Step 3: Same name and type conflicts; same name as revenue does not
	rec = app.request(http.MethodPost, "/api/v1/categories", `{"name":"PET_CARE","type":"expense"}`, "")
	mustStatus(t, rec, http.StatusConflict)
	rec = app.request(http.MethodPost, "/api/v1/categories", `{"name":"pet_care","type":"revenue"}`, "")
	mustStatus(t, rec, http.StatusCreated)

	// Step 4: Update
	rec = app.request(http.MethodPut, "/api/v1/categories/"+id, `{"display_name":"Pets","sort_order":15}`, "")
	mustStatus(t, rec, http.StatusOK)
	if updated := parseJSON(t, rec); updated["display_name"] != "Pets" || updated["sort_order"].(float64) != 15 {
		t.Errorf("unexpected update result: %v", updated)
	}

	// Step 5: Delete
	rec = app.request(http.MethodDelete, "/api/v1/categories/"+id, "", "")
	mustStatus(t, rec, http.StatusOK)
	rec = app.request(http.MethodGet, "/api/v1/categories/"+id, "", "")
	mustStatus(t, rec, http.StatusNotFound)
}

func TestCategoryFlow_ProtectedCategories(t *testing.T) {
	app := setupApp(t)
	other := app.categoryID(t, "other", "expense")
	revenue := app.categoryID(t, "revenue", "revenue")

	for _, id := range []string{other, revenue} {
		rec := app.request(http.MethodDelete, "/api/v1/categories/"+id, "", "")
		mustStatus(t, rec, http.StatusConflict)

		rec = app.request(http.MethodPut, "/api/v1/categories/"+id, `{"name":"renamed"}`, "")
		mustStatus(t, rec, http.StatusConflict)
	}

	// Display name and order may still change
	rec := app.request(http.MethodPut, "/api/v1/categories/"+other, `{"display_name":"Everything Else"}`, "")
	mustStatus(t, rec, http.StatusOK)
}

func TestCategoryFlow_DeleteRemovesItems(t *testing.T) {
	app := setupApp(t)

	rec := app.request(http.MethodPost, "/api/v1/categories", `{"name":"hobbies","type":"expense"}`, "")
	mustStatus(t, rec, http.StatusCreated)
	hobbies := parseJSON(t, rec)["id"].(string)
	item := app.createItem(t, "", 2024, 3, fmt.Sprintf(`{"category_id":%q,"name":"Guitar","expected_amount":80}`, hobbies))

	rec = app.request(http.MethodDelete, "/api/v1/categories/"+hobbies, "", "")
	mustStatus(t, rec, http.StatusOK)

	rec = app.request(http.MethodGet, "/api/v1/items/"+item["id"].(string), "", "")
	mustStatus(t, rec, http.StatusNotFound)
}
