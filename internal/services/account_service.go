package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/terraincognita07/staffpulse/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrCompanyNameRequired = errors.New("company name required")
	ErrDisplayNameRequired = errors.New("display name required")
	ErrInvalidEmail        = errors.New("invalid email")
	ErrWeakPassword        = errors.New("weak password")
	ErrEmailTaken          = errors.New("email already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountDisabled     = errors.New("account disabled")
	ErrInvalidRole         = errors.New("invalid role")
	ErrAccountSaveFailed   = errors.New("save account failed")
	ErrAccountLoadFailed   = errors.New("load account failed")
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
var slugCleanupRegex = regexp.MustCompile(`[^a-z0-9]+`)

type AccountCompanyStore interface {
	FindByID(companyID uint) (models.Company, error)
	ExistsBySlug(slug string) (bool, error)
	Create(company *models.Company) error
}

type AccountUserStore interface {
	FindByID(userID uint) (models.User, error)
	FindByNormalizedEmail(email string) (models.User, error)
	ExistsByNormalizedEmail(email string) (bool, error)
	Create(user *models.User) error
	ListActiveByCompany(companyID uint) ([]models.User, error)
}

type AccountService struct {
	companies AccountCompanyStore
	users     AccountUserStore
}

func NewAccountService(companies AccountCompanyStore, users AccountUserStore) *AccountService {
	return &AccountService{companies: companies, users: users}
}

func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ValidatePasswordStrength requires at least 8 characters with an upper
// case letter, a lower case letter and a digit.
func ValidatePasswordStrength(password string) error {
	if len([]rune(password)) < 8 {
		return ErrWeakPassword
	}

	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}

	if hasUpper && hasLower && hasDigit {
		return nil
	}
	return ErrWeakPassword
}

// Slugify derives a URL-safe company slug, appending a numeric suffix
// until it is unique.
func (service *AccountService) Slugify(name string) (string, error) {
	base := slugCleanupRegex.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	base = strings.Trim(base, "-")
	if base == "" {
		base = "company"
	}

	candidate := base
	for suffix := 2; ; suffix++ {
		taken, err := service.companies.ExistsBySlug(candidate)
		if err != nil {
			return "", ErrAccountLoadFailed
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, suffix)
	}
}

type RegistrationInput struct {
	CompanyName string
	DisplayName string
	Email       string
	Password    string
}

// RegisterCompany creates a new tenant and its first manager account in
// one step. The first registered user always gets the manager role.
func (service *AccountService) RegisterCompany(input RegistrationInput, now time.Time) (models.Company, models.User, error) {
	companyName := strings.TrimSpace(input.CompanyName)
	if companyName == "" {
		return models.Company{}, models.User{}, ErrCompanyNameRequired
	}
	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		return models.Company{}, models.User{}, ErrDisplayNameRequired
	}
	email := NormalizeEmail(input.Email)
	if !emailRegex.MatchString(email) {
		return models.Company{}, models.User{}, ErrInvalidEmail
	}
	if err := ValidatePasswordStrength(input.Password); err != nil {
		return models.Company{}, models.User{}, err
	}

	taken, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.Company{}, models.User{}, ErrAccountLoadFailed
	}
	if taken {
		return models.Company{}, models.User{}, ErrEmailTaken
	}

	slug, err := service.Slugify(companyName)
	if err != nil {
		return models.Company{}, models.User{}, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Company{}, models.User{}, ErrAccountSaveFailed
	}

	company := models.Company{
		Name:      companyName,
		Slug:      slug,
		IsActive:  true,
		CreatedAt: now,
	}
	if err := service.companies.Create(&company); err != nil {
		return models.Company{}, models.User{}, ErrAccountSaveFailed
	}

	user := models.User{
		CompanyID:    company.ID,
		Email:        email,
		PasswordHash: string(passwordHash),
		DisplayName:  displayName,
		Role:         models.RoleManager,
		IsActive:     true,
		CreatedAt:    now,
	}
	if err := service.users.Create(&user); err != nil {
		// The email unique index may have caught a concurrent signup.
		return models.Company{}, models.User{}, ErrEmailTaken
	}

	return company, user, nil
}

// Authenticate resolves the user by email and verifies the password.
// Lookup and comparison failures collapse into one error so responses
// never reveal whether the email exists.
func (service *AccountService) Authenticate(email string, password string) (models.User, error) {
	user, err := service.users.FindByNormalizedEmail(NormalizeEmail(email))
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return models.User{}, ErrAccountDisabled
	}
	return user, nil
}

type NewUserInput struct {
	DisplayName string
	Email       string
	Password    string
	Role        string
}

// CreateUser adds a staff member to an existing company. Managers can
// create collaborators and other managers, never admins.
func (service *AccountService) CreateUser(companyID uint, input NewUserInput, now time.Time) (models.User, error) {
	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		return models.User{}, ErrDisplayNameRequired
	}
	email := NormalizeEmail(input.Email)
	if !emailRegex.MatchString(email) {
		return models.User{}, ErrInvalidEmail
	}
	if err := ValidatePasswordStrength(input.Password); err != nil {
		return models.User{}, err
	}

	role := strings.TrimSpace(input.Role)
	if role == "" {
		role = models.RoleCollaborator
	}
	if role != models.RoleCollaborator && role != models.RoleManager {
		return models.User{}, ErrInvalidRole
	}

	taken, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, ErrAccountLoadFailed
	}
	if taken {
		return models.User{}, ErrEmailTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, ErrAccountSaveFailed
	}

	user := models.User{
		CompanyID:    companyID,
		Email:        email,
		PasswordHash: string(passwordHash),
		DisplayName:  displayName,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, ErrEmailTaken
	}
	return user, nil
}

func (service *AccountService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}

func (service *AccountService) FindCompany(companyID uint) (models.Company, error) {
	return service.companies.FindByID(companyID)
}

func (service *AccountService) ListCompanyUsers(companyID uint) ([]models.User, error) {
	users, err := service.users.ListActiveByCompany(companyID)
	if err != nil {
		return nil, ErrAccountLoadFailed
	}
	return users, nil
}
