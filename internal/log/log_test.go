package log_test

import (
	"bytes"
	"encoding/json"
	"errors"
	stdlog "log"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"shopdesk/internal/domain"
	applog "shopdesk/internal/log"
)

type line struct {
	Level  string         `json:"level"`
	ReqID  string         `json:"req_id"`
	UserID string         `json:"user_id"`
	Action string         `json:"action"`
	Status int            `json:"status"`
	Path   string         `json:"path"`
	Err    string         `json:"err"`
	Fields map[string]any `json:"fields"`
}

func capture(t *testing.T, fn func()) []line {
	t.Helper()
	var buf bytes.Buffer
	oldW, oldFlags := stdlog.Writer(), stdlog.Flags()
	stdlog.SetOutput(&buf)
	stdlog.SetFlags(0)
	defer func() {
		stdlog.SetOutput(oldW)
		stdlog.SetFlags(oldFlags)
	}()

	fn()

	var out []line
	for _, s := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var l line
		if err := json.Unmarshal([]byte(s), &l); err == nil {
			out = append(out, l)
		}
	}
	return out
}

func TestWriteWithoutRequest(t *testing.T) {
	lines := capture(t, func() {
		applog.Info(nil, "checkout.session.expired", map[string]any{"sid": "abc"})
		applog.Error(nil, "boom", errors.New("disk full"), nil)
	})
	if len(lines) != 2 {
		t.Fatalf("want 2 lines, got %d", len(lines))
	}
	if lines[0].Level != "info" || lines[0].Fields["sid"] != "abc" || lines[0].Path != "" {
		t.Fatalf("unexpected line %+v", lines[0])
	}
	if lines[1].Level != "error" || lines[1].Err != "disk full" {
		t.Fatalf("unexpected line %+v", lines[1])
	}
}

func TestAccessLogCarriesRequestContext(t *testing.T) {
	app := fiber.New()
	app.Use(requestid.New())
	app.Use(applog.Access())
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", &domain.User{ID: "u-cashier"})
		return c.Next()
	})
	app.Get("/ok", func(c *fiber.Ctx) error {
		applog.Audit(c, "thing.done", nil)
		return c.SendStatus(fiber.StatusAccepted)
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})

	lines := capture(t, func() {
		if _, err := app.Test(httptest.NewRequest("GET", "/ok", nil)); err != nil {
			t.Fatal(err)
		}
		if _, err := app.Test(httptest.NewRequest("GET", "/missing", nil)); err != nil {
			t.Fatal(err)
		}
	})
	if len(lines) != 3 {
		t.Fatalf("want 3 lines, got %+v", lines)
	}
	audit, access := lines[0], lines[1]
	if audit.Action != "thing.done" || audit.UserID != "u-cashier" || audit.ReqID == "" {
		t.Fatalf("audit line missing request context: %+v", audit)
	}
	if access.Action != "http.access" || access.Status != fiber.StatusAccepted || access.ReqID != audit.ReqID {
		t.Fatalf("unexpected access line %+v", access)
	}
	if lines[2].Status != fiber.StatusNotFound || lines[2].Path != "/missing" {
		t.Fatalf("error status not captured: %+v", lines[2])
	}
}
