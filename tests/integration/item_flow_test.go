package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestItemFlow_UpdateAndDelete(t *testing.T) {
	app := setupApp(t)
	food := app.categoryID(t, "food", "expense")
	utilities := app.categoryID(t, "utilities", "expense")

	item := app.createItem(t, "", 2024, 3, fmt.Sprintf(
		`{"category_id":%q,"name":"Groceries","expected_amount":"400","due_date":"March 20, 2024"}`, food))
	id := item["id"].(string)
	assertAmount(t, item, "expected_amount", "400")

	// Step 1: Record spending and move the item
	rec := app.request(http.MethodPut, "/api/v1/items/"+id, fmt.Sprintf(
		`{"actual_amount":"432.10","is_paid":true,"category_id":%q,"due_date":""}`, utilities), "")
	mustStatus(t, rec, http.StatusOK)
	updated := parseJSON(t, rec)
	assertAmount(t, updated, "actual_amount", "432.10")
	if updated["category_id"] != utilities {
		t.Errorf("expected category change, got %v", updated["category_id"])
	}
	if _, ok := updated["due_date"]; ok {
		t.Errorf("expected due date cleared, got %v", updated["due_date"])
	}

	// Step 2: The month view reflects it
	rec = app.request(http.MethodGet, "/api/v1/months/2024/3", "", "")
	mustStatus(t, rec, http.StatusOK)
	groups := section(t, parseJSON(t, rec), "expenses")["categories"].([]interface{})
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	group := groups[0].(map[string]interface{})
	if group["name"] != "utilities" {
		t.Errorf("expected utilities group, got %v", group["name"])
	}
	assertAmount(t, group, "variance", "32.10")

	// Step 3: Unknown category is rejected
	rec = app.request(http.MethodPut, "/api/v1/items/"+id,
		`{"category_id":"0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b"}`, "")
	mustStatus(t, rec, http.StatusNotFound)

	// Step 4: Delete
	rec = app.request(http.MethodDelete, "/api/v1/items/"+id, "", "")
	mustStatus(t, rec, http.StatusOK)
	rec = app.request(http.MethodGet, "/api/v1/items/"+id, "", "")
	mustStatus(t, rec, http.StatusNotFound)
}

func TestItemFlow_Validation(t *testing.T) {
	app := setupApp(t)

	rec := app.request(http.MethodPost, "/api/v1/months/2024/3/items", `{"name":"No category"}`, "")
	mustStatus(t, rec, http.StatusBadRequest)
	errObj := parseJSON(t, rec)["error"].(map[string]interface{})
	if errObj["code"] != "VALIDATION_FAILED" {
		t.Errorf("expected VALIDATION_FAILED, got %v", errObj["code"])
	}
	details := errObj["details"].([]interface{})
	if len(details) != 1 || details[0].(map[string]interface{})["field"] != "category_id" {
		t.Errorf("unexpected details: %v", details)
	}
}
