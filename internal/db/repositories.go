package db

import "gorm.io/gorm"

type Repositories struct {
	Companies            *CompanyRepository
	Users                *UserRepository
	Checklists           *ChecklistRepository
	Tasks                *ChecklistTaskRepository
	TaskCompletions      *TaskCompletionRepository
	ChecklistCompletions *ChecklistCompletionRepository
	Alerts               *AlertRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Companies:            NewCompanyRepository(database),
		Users:                NewUserRepository(database),
		Checklists:           NewChecklistRepository(database),
		Tasks:                NewChecklistTaskRepository(database),
		TaskCompletions:      NewTaskCompletionRepository(database),
		ChecklistCompletions: NewChecklistCompletionRepository(database),
		Alerts:               NewAlertRepository(database),
	}
}
