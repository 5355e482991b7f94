package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/staffpulse/internal/models"
)

var ErrRewardSaveFailed = errors.New("save reward failed")

type CompletionLedger interface {
	CreateIfAbsent(completion *models.ChecklistCompletion) (bool, error)
}

type PointsAccount interface {
	AddPoints(userID uint, points int) error
}

// RewardService grants the checklist's point value exactly once per
// (checklist, user, period). The completion ledger is append-only: the row
// survives later un-toggles within the same period, which is what makes
// toggle flapping harmless.
type RewardService struct {
	completions CompletionLedger
	users       PointsAccount
}

func NewRewardService(completions CompletionLedger, users PointsAccount) *RewardService {
	return &RewardService{
		completions: completions,
		users:       users,
	}
}

// MaybeReward records the completion and credits the user when, and only
// when, no completion row existed yet for this period. The point value is
// snapshotted into the row; a later price change on the checklist does not
// rewrite history. A lost insert race counts as "someone else rewarded
// first" and is a no-op success.
func (service *RewardService) MaybeReward(checklist models.Checklist, userID uint, periodKey string, now time.Time) (bool, int, error) {
	completion := models.ChecklistCompletion{
		ChecklistID:  checklist.ID,
		UserID:       userID,
		PeriodKey:    periodKey,
		PointsEarned: checklist.PointsPerCompletion,
		CompletedAt:  now,
	}

	created, err := service.completions.CreateIfAbsent(&completion)
	if err != nil {
		return false, 0, ErrRewardSaveFailed
	}
	if !created {
		return false, 0, nil
	}

	if err := service.users.AddPoints(userID, checklist.PointsPerCompletion); err != nil {
		return false, 0, ErrRewardSaveFailed
	}
	return true, checklist.PointsPerCompletion, nil
}
