package models

import "time"

const (
	FrequencyDaily    = "daily"
	FrequencyWeekly   = "weekly"
	FrequencyBiweekly = "biweekly"
	FrequencyMonthly  = "monthly"
)

// Checklist is a recurring task list scoped to one company. An empty
// AssignedUserIDs set means the checklist applies to every active
// collaborator of the company.
type Checklist struct {
	ID                  uint   `gorm:"primaryKey"`
	CompanyID           uint   `gorm:"not null;index"`
	Title               string `gorm:"not null"`
	Description         string
	Frequency           string `gorm:"not null;default:daily"`
	IsActive            bool   `gorm:"not null;default:true"`
	SortOrder           int    `gorm:"not null;default:0"`
	PointsPerCompletion int    `gorm:"not null;default:10"`
	AssignedUserIDs     []uint `gorm:"serializer:json"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type ChecklistTask struct {
	ID          uint   `gorm:"primaryKey"`
	ChecklistID uint   `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	IsActive    bool `gorm:"not null;default:true"`
	IsRequired  bool `gorm:"not null;default:true"`
	SortOrder   int  `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskCompletion records one user's completion of one task within one
// period. The period key is pinned at creation time from the checklist's
// frequency and never recomputed afterwards.
type TaskCompletion struct {
	ID          uint   `gorm:"primaryKey"`
	TaskID      uint   `gorm:"not null;uniqueIndex:uidx_task_user_period"`
	UserID      uint   `gorm:"not null;uniqueIndex:uidx_task_user_period"`
	PeriodKey   string `gorm:"not null;uniqueIndex:uidx_task_user_period"`
	Notes       string
	CompletedAt time.Time `gorm:"not null"`
}

// ChecklistCompletion is an append-only fact: the user completed every
// active task of the checklist within the period. It is created at most
// once per (checklist, user, period) and never deleted when a task is
// un-toggled later in the same period.
type ChecklistCompletion struct {
	ID           uint   `gorm:"primaryKey"`
	ChecklistID  uint   `gorm:"not null;uniqueIndex:uidx_checklist_user_period"`
	UserID       uint   `gorm:"not null;uniqueIndex:uidx_checklist_user_period"`
	PeriodKey    string `gorm:"not null;uniqueIndex:uidx_checklist_user_period"`
	PointsEarned int    `gorm:"not null;default:0"`
	CompletedAt  time.Time `gorm:"not null"`
}

// ChecklistAlert is one required task a user left pending when finalizing
// a checklist. The unique index includes is_resolved so a new alert can be
// raised for the same gap after a manager resolves the previous one.
type ChecklistAlert struct {
	ID          uint   `gorm:"primaryKey"`
	CompanyID   uint   `gorm:"not null;index"`
	ChecklistID uint   `gorm:"not null;uniqueIndex:uidx_alert_identity"`
	TaskID      uint   `gorm:"not null;uniqueIndex:uidx_alert_identity"`
	UserID      uint   `gorm:"not null;uniqueIndex:uidx_alert_identity"`
	PeriodKey   string `gorm:"not null;uniqueIndex:uidx_alert_identity"`
	IsResolved  bool   `gorm:"not null;default:false;uniqueIndex:uidx_alert_identity"`
	ResolvedAt  *time.Time
	ResolvedBy  *uint
	CreatedAt   time.Time
}
