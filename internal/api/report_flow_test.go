package api

import (
	"net/http"
	"testing"
)

func TestSummaryReflectsCompletions(t *testing.T) {
	app := newTestApp(t)

	managerCookie := registerTestCompany(t, app, "Padaria Central", "manager@padaria.test")
	checklistID := createTestChecklist(t, app, managerCookie, "Opening routine", "daily")
	taskID := createTestTask(t, app, managerCookie, checklistID, "Turn on the ovens", true)

	response, _ := performJSON(t, app, jsonRequest(t, http.MethodPost, togglePath(taskID), nil, managerCookie))
	if response.StatusCode != http.StatusOK {
		t.Fatalf("toggle: expected 200, got %d", response.StatusCode)
	}

	response, payload := performJSON(t, app, jsonRequest(t, http.MethodGet, "/api/reports/summary", nil, managerCookie))
	if response.StatusCode != http.StatusOK {
		t.Fatalf("summary: expected 200, got %d", response.StatusCode)
	}
	summary := payload["summary"].(map[string]any)
	if summary["task_completions"].(float64) != 1 {
		t.Fatalf("expected one task completion, got %#v", summary["task_completions"])
	}
	if summary["checklist_completions"].(float64) != 1 {
		t.Fatalf("expected one checklist completion, got %#v", summary["checklist_completions"])
	}
	if summary["points_awarded"].(float64) != 10 {
		t.Fatalf("expected 10 points awarded, got %#v", summary["points_awarded"])
	}
	if summary["unresolved_alerts"].(float64) != 0 {
		t.Fatalf("expected no open alerts, got %#v", summary["unresolved_alerts"])
	}

	leaderboard := summary["leaderboard"].([]any)
	if len(leaderboard) != 1 {
		t.Fatalf("expected one leaderboard entry, got %d", len(leaderboard))
	}
	top := leaderboard[0].(map[string]any)
	if top["display_name"] != "Manager" || top["total_points"].(float64) != 10 {
		t.Fatalf("unexpected leaderboard entry %#v", top)
	}
}
