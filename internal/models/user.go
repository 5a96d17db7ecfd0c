package models

import "time"

// User is an account that can own one or more reading profiles
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// IsAdmin reports whether the user can manage the catalog
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

// Profile is a reading persona belonging to a user account. A household
// account may have several profiles; all reading activity, streaks and
// missions attach to a profile, not the account.
type Profile struct {
	ID               int64
	UserID           int64
	Name             string
	Age              int
	EducationLevelID int64
	CreatedAt        time.Time
	LastSessionAt    time.Time
}

// ProfileData combines profile, account and aggregate statistics for the
// profile screen
type ProfileData struct {
	Username       string  `json:"username"`
	ProfileName    string  `json:"profile_name"`
	Age            int     `json:"age"`
	EducationLevel string  `json:"education_level"`
	MemberSince    string  `json:"member_since"`
	ReadingSpeed   float64 `json:"reading_speed"`
	BooksRead      int     `json:"books_read"`
	TestsCompleted int     `json:"tests_completed"`
	AccuracyPct    float64 `json:"accuracy_pct"`
	StreakDays     int     `json:"streak_days"`
}

// UserStats holds the aggregate counters updated on each evaluation submit
type UserStats struct {
	ID             int64
	UserID         int64
	ReadingSpeed   float64
	BooksRead      int
	TestsCompleted int
	AccuracyPct    float64
}
