package models

import (
	"fmt"
	"time"
)

// MissionFrequency controls how often a mission can be (re-)assigned
type MissionFrequency string

const (
	FrequencyDaily   MissionFrequency = "daily"
	FrequencyMonthly MissionFrequency = "monthly"
	FrequencyGeneral MissionFrequency = "general" // one-time, ever
)

// ParseMissionFrequency validates a frequency tag from external input
func ParseMissionFrequency(s string) (MissionFrequency, error) {
	switch MissionFrequency(s) {
	case FrequencyDaily, FrequencyMonthly, FrequencyGeneral:
		return MissionFrequency(s), nil
	}
	return "", fmt.Errorf("unknown mission frequency %q", s)
}

// ObjectiveType names the profile metric an objective measures. Unrecognized
// types resolve to a current value of 0 during progress updates.
type ObjectiveType string

const (
	ObjectiveTestsCompleted ObjectiveType = "tests_completed"
	ObjectivePagesRead      ObjectiveType = "pages_read"
)

// Mission is a catalog entry describing a repeatable or one-time challenge.
// The catalog is managed by an admin process and read-only here.
type Mission struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Frequency   MissionFrequency `json:"frequency"`
}

// MissionObjective is one measurable target within a mission
type MissionObjective struct {
	ID        int64         `json:"id"`
	MissionID int64         `json:"mission_id"`
	Type      ObjectiveType `json:"type"`
	Target    int           `json:"target"`
}

// ProfileMission is the assignment of a mission to a profile for one
// eligibility period. PeriodKey encodes the period (a date for daily, a
// year-month for monthly, a constant for one-time missions) and carries a
// uniqueness constraint together with profile and mission, which makes
// assignment idempotent at the store layer.
type ProfileMission struct {
	ID          int64      `json:"id"`
	ProfileID   int64      `json:"profile_id"`
	MissionID   int64      `json:"mission_id"`
	PeriodKey   string     `json:"-"`
	Progress    int        `json:"progress"`
	Completed   bool       `json:"completed"`
	AssignedAt  time.Time  `json:"assigned_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// OpenMission is an incomplete assignment joined with its objectives, the
// unit of work for the progress engine
type OpenMission struct {
	AssignmentID int64
	MissionID    int64
	Progress     int
	Objectives   []MissionObjective
}

// ActiveMission is the client-facing view of an assignment
type ActiveMission struct {
	AssignmentID int64              `json:"assignment_id"`
	MissionID    int64              `json:"mission_id"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Frequency    MissionFrequency   `json:"frequency"`
	Progress     int                `json:"progress"`
	Completed    bool               `json:"completed"`
	AssignedAt   time.Time          `json:"assigned_at"`
	Objectives   []MissionObjective `json:"objectives"`
}

// MetricsSnapshot is the transient read of a profile's current metric
// values consumed by the progress engine. It is never persisted.
type MetricsSnapshot struct {
	TestsCompleted int
	MaxPagesRead   int
}

// Value resolves the current value for an objective type, 0 for types this
// snapshot does not know about
func (m MetricsSnapshot) Value(t ObjectiveType) (int, bool) {
	switch t {
	case ObjectiveTestsCompleted:
		return m.TestsCompleted, true
	case ObjectivePagesRead:
		return m.MaxPagesRead, true
	}
	return 0, false
}
