package service

import (
	"errors"
	"fmt"
	"strings"

	"readquest/internal/database"
	"readquest/internal/models"
	"readquest/internal/repository"
	"readquest/internal/security"
	"readquest/internal/validation"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrProfileMissing     = errors.New("account has no reading profile")
)

// RegisterInput carries the registration form
type RegisterInput struct {
	Username         string `json:"username"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	ProfileName      string `json:"profile_name"`
	Age              int    `json:"age"`
	EducationLevelID int64  `json:"education_level_id"`
}

// AuthResult is returned from register and login
type AuthResult struct {
	Token   string          `json:"token"`
	User    *models.User    `json:"-"`
	Profile *models.Profile `json:"-"`
}

// AuthService handles registration and login
type AuthService struct {
	db       *database.DB
	users    *repository.UserRepository
	profiles *repository.ProfileRepository
	stats    *repository.StatsRepository
	tokens   *security.TokenManager
}

// NewAuthService creates a new auth service
func NewAuthService(db *database.DB, users *repository.UserRepository, profiles *repository.ProfileRepository, stats *repository.StatsRepository, tokens *security.TokenManager) *AuthService {
	return &AuthService{db: db, users: users, profiles: profiles, stats: stats, tokens: tokens}
}

// Register creates the account, its first reading profile and the zeroed
// statistics row in one transaction, then issues an access token.
func (s *AuthService) Register(input RegisterInput) (*AuthResult, error) {
	if err := s.validateRegistration(input); err != nil {
		return nil, err
	}

	username := strings.TrimSpace(input.Username)
	existing, err := s.users.GetUserByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	user, err := s.users.WithTx(tx).CreateUser(username, strings.TrimSpace(input.Email), hash, "user")
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	profileName := strings.TrimSpace(input.ProfileName)
	if profileName == "" {
		profileName = username
	}
	profile, err := s.profiles.WithTx(tx).CreateProfile(user.ID, profileName, input.Age, input.EducationLevelID)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	if err := s.stats.WithTx(tx).CreateEmpty(user.ID); err != nil {
		return nil, fmt.Errorf("failed to create stats: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit registration: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, profile.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &AuthResult{Token: token, User: user, Profile: profile}, nil
}

// Login verifies credentials and issues a token bound to the user's first
// reading profile. The profile's last session timestamp is refreshed.
func (s *AuthService) Login(username, password string) (*AuthResult, error) {
	user, err := s.users.GetUserByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !security.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	profile, err := s.profiles.GetFirstProfileByUserID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up profile: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileMissing
	}

	if err := s.profiles.TouchLastSession(profile.ID); err != nil {
		return nil, fmt.Errorf("failed to record session: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, profile.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &AuthResult{Token: token, User: user, Profile: profile}, nil
}

func (s *AuthService) validateRegistration(input RegisterInput) error {
	if err := validation.ValidateUsername(input.Username); err != nil {
		return err
	}
	if err := validation.ValidateEmail(input.Email); err != nil {
		return err
	}
	return validation.ValidatePassword(input.Password)
}
