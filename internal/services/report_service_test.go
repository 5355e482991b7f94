package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/staffpulse/internal/models"
)

type reportCompletionSourceStub struct {
	count    int64
	points   int64
	countErr error
	sumErr   error
}

func (stub *reportCompletionSourceStub) CountByCompany(uint) (int64, error) {
	if stub.countErr != nil {
		return 0, stub.countErr
	}
	return stub.count, nil
}

func (stub *reportCompletionSourceStub) SumPointsByCompany(uint) (int64, error) {
	if stub.sumErr != nil {
		return 0, stub.sumErr
	}
	return stub.points, nil
}

type reportTaskCompletionSourceStub struct {
	count int64
	err   error
}

func (stub *reportTaskCompletionSourceStub) CountByCompany(uint) (int64, error) {
	if stub.err != nil {
		return 0, stub.err
	}
	return stub.count, nil
}

type reportAlertSourceStub struct {
	unresolved int64
	err        error
}

func (stub *reportAlertSourceStub) CountUnresolvedByCompany(uint) (int64, error) {
	if stub.err != nil {
		return 0, stub.err
	}
	return stub.unresolved, nil
}

type reportUserSourceStub struct {
	users     []models.User
	lastLimit int
	err       error
}

func (stub *reportUserSourceStub) ListByCompanyOrderedByPoints(_ uint, limit int) ([]models.User, error) {
	if stub.err != nil {
		return nil, stub.err
	}
	stub.lastLimit = limit
	if limit < len(stub.users) {
		return stub.users[:limit], nil
	}
	return stub.users, nil
}

func TestCompanySummaryAggregatesCounters(t *testing.T) {
	users := &reportUserSourceStub{
		users: []models.User{
			{ID: 2, DisplayName: "Rita", TotalPoints: 120},
			{ID: 5, DisplayName: "Marco", TotalPoints: 80},
		},
	}
	service := NewReportService(
		&reportCompletionSourceStub{count: 14, points: 140},
		&reportTaskCompletionSourceStub{count: 63},
		&reportAlertSourceStub{unresolved: 4},
		users,
	)

	summary, err := service.CompanySummary(1, 10)
	if err != nil {
		t.Fatalf("CompanySummary() unexpected error: %v", err)
	}
	if summary.TaskCompletions != 63 || summary.ChecklistCompletions != 14 {
		t.Fatalf("unexpected completion counters: %+v", summary)
	}
	if summary.PointsAwarded != 140 || summary.UnresolvedAlerts != 4 {
		t.Fatalf("unexpected points or alert counters: %+v", summary)
	}
	if users.lastLimit != 10 {
		t.Fatalf("expected leaderboard limit 10, got %d", users.lastLimit)
	}
	if len(summary.Leaderboard) != 2 {
		t.Fatalf("expected two leaderboard entries, got %d", len(summary.Leaderboard))
	}
	if summary.Leaderboard[0].DisplayName != "Rita" || summary.Leaderboard[0].TotalPoints != 120 {
		t.Fatalf("expected Rita on top, got %+v", summary.Leaderboard[0])
	}
}

func TestCompanySummaryReturnsTypedLoadError(t *testing.T) {
	service := NewReportService(
		&reportCompletionSourceStub{sumErr: errors.New("sum failed")},
		&reportTaskCompletionSourceStub{},
		&reportAlertSourceStub{},
		&reportUserSourceStub{},
	)

	_, err := service.CompanySummary(1, 10)
	if !errors.Is(err, ErrReportLoadFailed) {
		t.Fatalf("expected ErrReportLoadFailed, got %v", err)
	}
}
