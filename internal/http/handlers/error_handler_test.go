package handlers_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"shopdesk/internal/http/handlers"
)

func TestErrorHandlerFriendlyMessage(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Use(requestid.New())

	app.Get("/err", func(c *fiber.Ctx) error {
		return errors.New("db timeout: secret trace")
	})
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})

	var s string
	logs := captureLogs(t, func() {
		resp, err := app.Test(httptest.NewRequest("GET", "/err", nil))
		if err != nil {
			t.Fatalf("test request failed: %v", err)
		}
		if resp.StatusCode != fiber.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", resp.StatusCode)
		}
		body, _ := io.ReadAll(resp.Body)
		s = string(body)
	})
	if !strings.Contains(s, "Something went wrong") {
		t.Fatalf("friendly message missing; body=%s", s)
	}
	if strings.Contains(s, "db timeout") || strings.Contains(s, "secret") {
		t.Fatalf("internal details leaked to user; body=%s", s)
	}
	if _, ok := findLog(logs, "server.error"); !ok {
		t.Fatal("server error not logged")
	}

	resp, _ := app.Test(httptest.NewRequest("GET", "/teapot", nil))
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != fiber.StatusTeapot || !strings.Contains(string(body), "short and stout") {
		t.Fatalf("client error rewritten: %d %s", resp.StatusCode, body)
	}
}

func TestBodySizeLimit(t *testing.T) {
	app := newTestApp(t)
	sid := app.login(t, "cashier@shopdesk.test")

	big := strings.Repeat("x", (1<<20)+1)
	req := httptest.NewRequest("PUT", "/api/v1/cart/details", strings.NewReader(`{"notes":"`+big+`"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	resp, err := app.Test(req, -1)
	if err != nil {
		// fasthttp may drop the connection outright
		return
	}
	if resp.StatusCode != fiber.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", resp.StatusCode)
	}
}
