package services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"pod-tracker/constants"
	"pod-tracker/middleware"

	"github.com/gofiber/fiber/v2"
)

// A signed token must survive the auth middleware as typed claims so the
// identity helpers keep working inside controllers.
func TestSessionClaimsReachControllers(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := middleware.SignToken(
		"uuid-ops-1",
		"ops@freighttiger.com",
		"Ops Admin",
		"control_tower",
		[]string{constants.PermControlTowerFull},
	)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	ps := NewPermissionService()

	var (
		name, uuid     string
		nameOK, uuidOK bool
		dispatcher     bool
	)

	app := fiber.New()
	app.Get("/whoami", middleware.RequireAnyPermission(), func(c *fiber.Ctx) error {
		name, nameOK = ps.GetUsername(c)
		uuid, uuidOK = ps.GetUserUuid(c)
		dispatcher = ps.IsDispatcher(c)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from middleware, got %d", resp.StatusCode)
	}

	if !nameOK || name != "Ops Admin" {
		t.Fatalf("username lost in claims: %q ok=%v", name, nameOK)
	}
	if !uuidOK || uuid != "uuid-ops-1" {
		t.Fatalf("uuid lost in claims: %q ok=%v", uuid, uuidOK)
	}
	if !dispatcher {
		t.Fatalf("control tower session should count as dispatcher")
	}
}

func TestRunnerSessionIsNotDispatcher(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := middleware.SignToken(
		"uuid-run-1",
		"lokesh@freighttiger.com",
		"Lokesh",
		"runner",
		[]string{constants.PermRunnerFull},
	)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	ps := NewPermissionService()
	var dispatcher bool

	app := fiber.New()
	app.Get("/whoami", middleware.RequireAnyPermission(), func(c *fiber.Ctx) error {
		dispatcher = ps.IsDispatcher(c)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from middleware, got %d", resp.StatusCode)
	}
	if dispatcher {
		t.Fatalf("runner session must not count as dispatcher")
	}
}
