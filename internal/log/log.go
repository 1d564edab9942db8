// Package log writes JSON-line events through the standard logger so they
// follow whatever output main configures.
package log

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"shopdesk/internal/domain"
)

type entry struct {
	TS        string         `json:"ts"`
	Level     string         `json:"level"`
	ReqID     string         `json:"req_id,omitempty"`
	IP        string         `json:"ip,omitempty"`
	Method    string         `json:"method,omitempty"`
	Path      string         `json:"path,omitempty"`
	UserID    string         `json:"user_id,omitempty"`
	Action    string         `json:"action,omitempty"`
	Status    int            `json:"status,omitempty"`
	LatencyMs int64          `json:"latency_ms,omitempty"`
	Err       string         `json:"err,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
}

func newEntry(level string, c *fiber.Ctx, action string) entry {
	e := entry{TS: time.Now().UTC().Format(time.RFC3339), Level: level, Action: action}
	if c == nil {
		return e
	}
	e.IP = c.IP()
	e.Method = c.Method()
	e.Path = c.Path()
	e.Status = c.Response().StatusCode()
	if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
		e.ReqID = rid
	}
	if u, ok := c.Locals("user").(*domain.User); ok && u != nil {
		e.UserID = u.ID
	}
	return e
}

func emit(e entry) {
	b, _ := json.Marshal(e)
	log.Println(string(b))
}

// c may be nil for events raised outside a request, e.g. session expiry.
func write(level string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	e := newEntry(level, c, action)
	e.Fields = fields
	if err != nil {
		e.Err = err.Error()
	}
	emit(e)
}

func Info(c *fiber.Ctx, action string, fields map[string]any) { write("info", c, action, nil, fields) }
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write("audit", c, action, nil, fields)
}
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write("warn", c, action, nil, fields)
}
func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write("error", c, action, err, fields)
}

// Access logs one "http.access" line per request once the handler chain has
// finished. Register it after requestid so the id is attached.
func Access() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// let the app error handler set the final status
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		e := newEntry("info", c, "http.access")
		e.LatencyMs = time.Since(start).Milliseconds()
		emit(e)
		return nil
	}
}
