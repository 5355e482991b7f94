package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestFinalizeRaisesAndResolvesAlerts(t *testing.T) {
	app := newTestApp(t)

	managerCookie := registerTestCompany(t, app, "Padaria Central", "manager@padaria.test")
	checklistID := createTestChecklist(t, app, managerCookie, "Closing routine", "daily")
	requiredTaskID := createTestTask(t, app, managerCookie, checklistID, "Lock the doors", true)
	createTestTask(t, app, managerCookie, checklistID, "Water the plants", false)

	// Only the required task is pending, so one alert is raised.
	response, payload := performJSON(t, app, jsonRequest(t, http.MethodPost, fmt.Sprintf("/api/checklists/%d/finalize", checklistID), nil, managerCookie))
	if response.StatusCode != http.StatusOK {
		t.Fatalf("finalize: expected 200, got %d", response.StatusCode)
	}
	if payload["total_missing"].(float64) != 1 || payload["alerts_created"].(float64) != 1 {
		t.Fatalf("expected one missing required task and one alert, got %#v", payload)
	}

	// Finalizing again in the same period must not duplicate alerts.
	response, payload = performJSON(t, app, jsonRequest(t, http.MethodPost, fmt.Sprintf("/api/checklists/%d/finalize", checklistID), nil, managerCookie))
	if response.StatusCode != http.StatusOK {
		t.Fatalf("second finalize: expected 200, got %d", response.StatusCode)
	}
	if payload["alerts_created"].(float64) != 0 {
		t.Fatalf("expected no new alerts on re-finalize, got %#v", payload)
	}

	response, payload = performJSON(t, app, jsonRequest(t, http.MethodGet, "/api/alerts?unresolved=true", nil, managerCookie))
	if response.StatusCode != http.StatusOK {
		t.Fatalf("list alerts: expected 200, got %d", response.StatusCode)
	}
	alerts := payload["alerts"].([]any)
	if len(alerts) != 1 {
		t.Fatalf("expected one unresolved alert, got %d", len(alerts))
	}
	alert := alerts[0].(map[string]any)
	if uint(alert["task_id"].(float64)) != requiredTaskID {
		t.Fatalf("expected the alert to point at the required task, got %#v", alert)
	}
	alertID := uint(alert["id"].(float64))

	response, _ = performJSON(t, app, jsonRequest(t, http.MethodPost, fmt.Sprintf("/api/alerts/%d/resolve", alertID), nil, managerCookie))
	if response.StatusCode != http.StatusOK {
		t.Fatalf("resolve: expected 200, got %d", response.StatusCode)
	}

	response, _ = performJSON(t, app, jsonRequest(t, http.MethodPost, fmt.Sprintf("/api/alerts/%d/resolve", alertID), nil, managerCookie))
	if response.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 on second resolve, got %d", response.StatusCode)
	}

	response, payload = performJSON(t, app, jsonRequest(t, http.MethodGet, "/api/alerts?unresolved=true", nil, managerCookie))
	if response.StatusCode != http.StatusOK {
		t.Fatalf("list alerts: expected 200, got %d", response.StatusCode)
	}
	if len(payload["alerts"].([]any)) != 0 {
		t.Fatalf("expected no unresolved alerts after resolution, got %#v", payload)
	}
}

func TestFinalizeCompleteChecklistRaisesNothing(t *testing.T) {
	app := newTestApp(t)

	managerCookie := registerTestCompany(t, app, "Padaria Central", "manager@padaria.test")
	checklistID := createTestChecklist(t, app, managerCookie, "Closing routine", "daily")
	taskID := createTestTask(t, app, managerCookie, checklistID, "Lock the doors", true)

	response, _ := performJSON(t, app, jsonRequest(t, http.MethodPost, togglePath(taskID), nil, managerCookie))
	if response.StatusCode != http.StatusOK {
		t.Fatalf("toggle: expected 200, got %d", response.StatusCode)
	}

	response, payload := performJSON(t, app, jsonRequest(t, http.MethodPost, fmt.Sprintf("/api/checklists/%d/finalize", checklistID), nil, managerCookie))
	if response.StatusCode != http.StatusOK {
		t.Fatalf("finalize: expected 200, got %d", response.StatusCode)
	}
	if payload["total_missing"].(float64) != 0 || payload["alerts_created"].(float64) != 0 {
		t.Fatalf("expected a clean finalize, got %#v", payload)
	}
}

func TestAlertsRequireManagerRole(t *testing.T) {
	app := newTestApp(t)

	managerCookie := registerTestCompany(t, app, "Padaria Central", "manager@padaria.test")
	response, _ := performJSON(t, app, jsonRequest(t, http.MethodPost, "/api/users", fiber.Map{
		"display_name": "Marco",
		"email":        "marco@padaria.test",
		"password":     "Sunrise42x",
	}, managerCookie))
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("create collaborator: expected 201, got %d", response.StatusCode)
	}

	response, _ = performJSON(t, app, jsonRequest(t, http.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "marco@padaria.test",
		"password": "Sunrise42x",
	}, ""))
	collaboratorCookie := authCookieValue(t, response)

	response, _ = performJSON(t, app, jsonRequest(t, http.MethodGet, "/api/alerts", nil, collaboratorCookie))
	if response.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for collaborator alerts, got %d", response.StatusCode)
	}
}
