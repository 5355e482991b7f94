package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/staffpulse/internal/db"
	"github.com/terraincognita07/staffpulse/internal/i18n"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "staffpulse-api-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	manager, err := i18n.NewManager(i18n.LangEN, testLocalesDir(t))
	if err != nil {
		t.Fatalf("i18n init: %v", err)
	}

	handler, err := NewHandler(database, "test-secret", time.UTC, manager, false)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app
}

func testLocalesDir(t *testing.T) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("resolve test file path: runtime.Caller failed")
	}
	return filepath.Join(filepath.Dir(thisFile), "..", "i18n", "locales")
}

func jsonRequest(t *testing.T, method string, path string, payload any, authCookie string) *http.Request {
	t.Helper()

	var body io.Reader
	if payload != nil {
		serialized, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(serialized)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if authCookie != "" {
		request.AddCookie(&http.Cookie{Name: authCookieName, Value: authCookie})
	}
	return request
}

func performJSON(t *testing.T, app *fiber.App, request *http.Request) (*http.Response, map[string]any) {
	t.Helper()

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("perform request %s %s: %v", request.Method, request.URL.Path, err)
	}

	payload := map[string]any{}
	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			t.Fatalf("parse response body %q: %v", string(raw), err)
		}
	}
	return response, payload
}

func authCookieValue(t *testing.T, response *http.Response) string {
	t.Helper()

	for _, cookie := range response.Cookies() {
		if cookie.Name == authCookieName && cookie.Value != "" {
			return cookie.Value
		}
	}
	t.Fatalf("expected %s cookie in response", authCookieName)
	return ""
}

func registerTestCompany(t *testing.T, app *fiber.App, companyName string, email string) string {
	t.Helper()

	response, _ := performJSON(t, app, jsonRequest(t, http.MethodPost, "/api/auth/register", fiber.Map{
		"company_name": companyName,
		"display_name": "Manager",
		"email":        email,
		"password":     "Sunrise42x",
	}, ""))
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("register company: expected 201, got %d", response.StatusCode)
	}
	return authCookieValue(t, response)
}

func createTestChecklist(t *testing.T, app *fiber.App, managerCookie string, title string, frequency string) uint {
	t.Helper()

	response, payload := performJSON(t, app, jsonRequest(t, http.MethodPost, "/api/checklists", fiber.Map{
		"title":     title,
		"frequency": frequency,
	}, managerCookie))
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("create checklist: expected 201, got %d", response.StatusCode)
	}
	checklist, ok := payload["checklist"].(map[string]any)
	if !ok {
		t.Fatalf("expected checklist in response, got %#v", payload)
	}
	return uint(checklist["id"].(float64))
}

func createTestTask(t *testing.T, app *fiber.App, managerCookie string, checklistID uint, title string, required bool) uint {
	t.Helper()

	response, payload := performJSON(t, app, jsonRequest(t, http.MethodPost, checklistTasksPath(checklistID), fiber.Map{
		"title":       title,
		"is_required": required,
	}, managerCookie))
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("create task: expected 201, got %d", response.StatusCode)
	}
	task, ok := payload["task"].(map[string]any)
	if !ok {
		t.Fatalf("expected task in response, got %#v", payload)
	}
	return uint(task["id"].(float64))
}
