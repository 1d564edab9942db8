package handlers_test

import (
	"net/http"
	"testing"
)

func TestAdminRoutesRequireAdmin(t *testing.T) {
	app := newTestApp(t)
	cashier := app.login(t, "cashier@shopdesk.test")

	logs := captureLogs(t, func() {
		app.expect(t, http.StatusForbidden, "GET", "/api/v1/admin/stock", cashier, nil)
	})
	if _, ok := findLog(logs, "access.denied.admin"); !ok {
		t.Fatal("denied admin access was not logged")
	}
	app.expect(t, http.StatusForbidden, "POST", "/api/v1/admin/stock", cashier, map[string]any{"product_id": "itel-a70", "qty": 50})
	app.expect(t, http.StatusForbidden, "GET", "/api/v1/reports/summary", cashier, nil)
	app.expect(t, http.StatusUnauthorized, "GET", "/api/v1/admin/sales", "", nil)

	admin := app.login(t, "admin@shopdesk.test")
	body := app.expect(t, http.StatusOK, "GET", "/api/v1/admin/stock", admin, nil)
	if rows, _ := body["stock"].([]any); len(rows) != 6 {
		t.Fatalf("want 6 stock rows, got %v", body)
	}
}

func TestAdminStockUpdateIsAudited(t *testing.T) {
	app := newTestApp(t)
	admin := app.login(t, "admin@shopdesk.test")

	var body map[string]any
	logs := captureLogs(t, func() {
		body = app.expect(t, http.StatusOK, "POST", "/api/v1/admin/stock", admin, map[string]any{
			"product_id": "power-bank-10k", "qty": 4, "is_available": true,
		})
	})
	if body["status"] != "LOW_STOCK" || body["qty"] != float64(4) {
		t.Fatalf("unexpected availability %v", body)
	}
	e, ok := findLog(logs, "admin.inventory.save")
	if !ok || e.Level != "audit" || e.UserID != "u-admin" || e.Fields["qty"] != float64(4) {
		t.Fatalf("audit entry missing or wrong: %+v", e)
	}

	app.expect(t, http.StatusBadRequest, "POST", "/api/v1/admin/stock", admin, map[string]any{"product_id": "itel-a70", "qty": -1})
	app.expect(t, http.StatusBadRequest, "POST", "/api/v1/admin/stock", admin, map[string]any{"product_id": "itel-a70"})
	app.expect(t, http.StatusNotFound, "POST", "/api/v1/admin/stock", admin, map[string]any{"product_id": "ghost", "qty": 1})
}

func TestSalesReport(t *testing.T) {
	app := newTestApp(t)
	admin := app.login(t, "admin@shopdesk.test")

	app.expect(t, http.StatusOK, "POST", "/api/v1/cart/items", admin, map[string]string{"product_id": "usb-c-cable"})
	app.expect(t, http.StatusOK, "PATCH", "/api/v1/cart/items/usb-c-cable", admin, map[string]any{"quantity": 4})
	app.expect(t, http.StatusOK, "PUT", "/api/v1/cart/customer", admin, map[string]any{"kind": "existing", "customer_id": "cus-kofi"})
	receipt := app.expect(t, http.StatusCreated, "POST", "/api/v1/cart/submit", admin, nil)

	sales := app.expect(t, http.StatusOK, "GET", "/api/v1/admin/sales", admin, nil)
	list, _ := sales["sales"].([]any)
	if len(list) != 1 || list[0].(map[string]any)["id"] != receipt["sale_id"] {
		t.Fatalf("sale not listed: %v", sales)
	}
	day := list[0].(map[string]any)["created_at"].(string)[:10]

	sum := app.expect(t, http.StatusOK, "GET", "/api/v1/reports/summary?from="+day+"&to="+day, admin, nil)
	// 4 cables at 35, cost 12.50 each
	if sum["sales"] != float64(1) || sum["revenue"] != float64(140) || sum["cost"] != float64(50) || sum["profit"] != float64(90) {
		t.Fatalf("unexpected summary %v", sum)
	}

	app.expect(t, http.StatusBadRequest, "GET", "/api/v1/reports/summary?from=yesterday", admin, nil)
}
