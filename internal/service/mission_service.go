package service

import (
	"fmt"
	"log"
	"time"

	"readquest/internal/models"
	"readquest/internal/repository"
)

// MissionCatalog reads the mission catalog, which an external admin process
// owns. Implemented by the mission repository.
type MissionCatalog interface {
	ListMissionIDsByFrequency(freq models.MissionFrequency) ([]int64, error)
	ListObjectives(missionID int64) ([]models.MissionObjective, error)
}

// AssignmentStore reads and writes per-profile mission assignments.
// Implemented by the mission repository.
type AssignmentStore interface {
	InsertAssignment(profileID, missionID int64, periodKey string) (bool, error)
	ListOpenMissions(profileID int64) ([]models.OpenMission, error)
	UpdateProgress(assignmentID int64, progress int, completed bool, completedAt *time.Time) error
	ListActiveMissions(profileID int64) ([]models.ActiveMission, error)
	GetAssignment(assignmentID int64) (*models.ProfileMission, error)
	CompleteAssignment(assignmentID int64, completedAt time.Time) error
}

// MetricsCollector produces the profile's current metric values on demand.
// Implemented by the stats repository.
type MetricsCollector interface {
	CountCompletedEvaluations(profileID int64) (int, error)
	MaxPagesRead(profileID int64) (int, error)
}

// MissionService implements mission assignment and mission progress.
// Both engines run as best-effort background work: callers dispatch them
// through the task runner and never see their errors.
type MissionService struct {
	catalog MissionCatalog
	store   AssignmentStore
	metrics MetricsCollector
	loc     *time.Location
	now     func() time.Time
}

// NewMissionService creates a mission service using loc as the canonical
// timezone for assignment windows
func NewMissionService(catalog MissionCatalog, store AssignmentStore, metrics MetricsCollector, loc *time.Location) *MissionService {
	return &MissionService{
		catalog: catalog,
		store:   store,
		metrics: metrics,
		loc:     loc,
		now:     time.Now,
	}
}

// PeriodKey encodes the eligibility window a frequency maps to at a given
// moment. One assignment may exist per (profile, mission, period key);
// daily missions get one per calendar day, monthly one per year-month and
// one-time missions a constant key, so they can only ever be assigned once.
func PeriodKey(freq models.MissionFrequency, now time.Time) string {
	switch freq {
	case models.FrequencyDaily:
		return now.Format("2006-01-02")
	case models.FrequencyMonthly:
		return now.Format("2006-01")
	default:
		return "once"
	}
}

// AssignMissions assigns every catalog mission of the given frequency that
// the profile does not already hold for the current eligibility window, and
// returns the IDs of missions actually assigned. Repeat calls inside the
// same window insert nothing: the period-key uniqueness constraint absorbs
// them, so concurrent invocations for the same profile are safe too.
func (s *MissionService) AssignMissions(profileID int64, freq models.MissionFrequency) ([]int64, error) {
	missionIDs, err := s.catalog.ListMissionIDsByFrequency(freq)
	if err != nil {
		return nil, fmt.Errorf("failed to read mission catalog: %w", err)
	}
	if len(missionIDs) == 0 {
		return nil, nil
	}

	periodKey := PeriodKey(freq, s.now().In(s.loc))

	var assigned []int64
	for _, missionID := range missionIDs {
		inserted, err := s.store.InsertAssignment(profileID, missionID, periodKey)
		if err != nil {
			return assigned, fmt.Errorf("failed to assign mission %d: %w", missionID, err)
		}
		if inserted {
			assigned = append(assigned, missionID)
		}
	}
	return assigned, nil
}

// UpdateAllMissionProgress recomputes progress and completion for every
// open mission of the profile from the current metric snapshot. Writes are
// skipped when nothing changed, so a repeat call with unchanged metrics
// leaves stored rows untouched.
func (s *MissionService) UpdateAllMissionProgress(profileID int64) error {
	open, err := s.store.ListOpenMissions(profileID)
	if err != nil {
		return fmt.Errorf("failed to load open missions: %w", err)
	}
	if len(open) == 0 {
		return nil
	}

	snapshot, err := s.collectMetrics(profileID)
	if err != nil {
		return err
	}

	for _, mission := range open {
		progress, completed := EvaluateMission(mission.Objectives, snapshot)

		if progress == mission.Progress && !completed {
			continue
		}

		var completedAt *time.Time
		if completed {
			now := s.now().In(s.loc)
			completedAt = &now
		}
		if err := s.store.UpdateProgress(mission.AssignmentID, progress, completed, completedAt); err != nil {
			return fmt.Errorf("failed to update mission %d progress: %w", mission.MissionID, err)
		}
	}
	return nil
}

// EvaluateMission computes an assignment's progress value and completion
// flag from its objectives and a metric snapshot.
//
// Progress tracks the single most-advanced objective: the one whose current
// value covers the largest fraction of its target, reported as
// min(current, target). Ties go to the larger capped value. Completion is
// stricter and requires every objective to have reached its target, so a
// compound mission can display partial progress while still incomplete.
func EvaluateMission(objectives []models.MissionObjective, snapshot models.MetricsSnapshot) (int, bool) {
	if len(objectives) == 0 {
		return 0, false
	}

	progress := 0
	bestRatio := -1.0
	completed := true
	for _, obj := range objectives {
		current, known := snapshot.Value(obj.Type)
		if !known {
			log.Printf("unrecognized objective type %q, treating current value as 0", obj.Type)
		}

		capped := current
		if capped > obj.Target {
			capped = obj.Target
		}
		ratio := 0.0
		if obj.Target > 0 {
			ratio = float64(capped) / float64(obj.Target)
		}
		if ratio > bestRatio || (ratio == bestRatio && capped > progress) {
			bestRatio = ratio
			progress = capped
		}
		if current < obj.Target {
			completed = false
		}
	}
	return progress, completed
}

func (s *MissionService) collectMetrics(profileID int64) (models.MetricsSnapshot, error) {
	tests, err := s.metrics.CountCompletedEvaluations(profileID)
	if err != nil {
		return models.MetricsSnapshot{}, fmt.Errorf("failed to count evaluations: %w", err)
	}
	pages, err := s.metrics.MaxPagesRead(profileID)
	if err != nil {
		return models.MetricsSnapshot{}, fmt.Errorf("failed to read max pages: %w", err)
	}
	return models.MetricsSnapshot{TestsCompleted: tests, MaxPagesRead: pages}, nil
}

// ActiveMissions returns the profile's assignment list for display
func (s *MissionService) ActiveMissions(profileID int64) ([]models.ActiveMission, error) {
	return s.store.ListActiveMissions(profileID)
}

// CompleteMission marks an assignment complete on behalf of the client.
// Assignments are scoped to the caller's profile; a foreign or missing
// assignment is indistinguishable from one that does not exist.
func (s *MissionService) CompleteMission(profileID, assignmentID int64) error {
	assignment, err := s.store.GetAssignment(assignmentID)
	if err != nil {
		return err
	}
	if assignment == nil || assignment.ProfileID != profileID {
		return repository.ErrNotFound
	}
	return s.store.CompleteAssignment(assignmentID, s.now().In(s.loc))
}
