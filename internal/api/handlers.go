package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/staffpulse/internal/db"
	"github.com/terraincognita07/staffpulse/internal/i18n"
	"github.com/terraincognita07/staffpulse/internal/services"
	"gorm.io/gorm"
)

const (
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour
)

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	i18n         *i18n.Manager
	loginLimiter *attemptLimiter

	repositories *db.Repositories
	accounts     *services.AccountService
	catalog      *services.ChecklistService
	tracker      *services.CompletionService
	overdue      *services.OverdueService
	alerts       *services.AlertService
	reports      *services.ReportService
}

func NewHandler(database *gorm.DB, secret string, location *time.Location, i18nManager *i18n.Manager, cookieSecure bool) (*Handler, error) {
	if location == nil {
		location = time.Local
	}
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}

	handler := &Handler{
		db:           database,
		secretKey:    []byte(secret),
		location:     location,
		cookieSecure: cookieSecure,
		i18n:         i18nManager,
		loginLimiter: newAttemptLimiter(),
	}
	return handler.withDependencies(database), nil
}
