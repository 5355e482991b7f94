package models

import "time"

const (
	RoleAdmin        = "admin"
	RoleManager      = "manager"
	RoleCollaborator = "collaborator"
)

type User struct {
	ID           uint      `gorm:"primaryKey"`
	CompanyID    uint      `gorm:"not null;index"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	DisplayName  string    `gorm:"not null"`
	Role         string    `gorm:"not null;default:collaborator"`
	TotalPoints  int       `gorm:"not null;default:0"`
	IsActive     bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time
}

func (user User) IsManagerOrAbove() bool {
	return user.Role == RoleManager || user.Role == RoleAdmin
}
