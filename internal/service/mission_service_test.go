package service

import (
	"fmt"
	"testing"
	"time"

	"readquest/internal/models"
	"readquest/internal/repository"
)

type fakeCatalog struct {
	missions   map[models.MissionFrequency][]int64
	objectives map[int64][]models.MissionObjective
}

func (f *fakeCatalog) ListMissionIDsByFrequency(freq models.MissionFrequency) ([]int64, error) {
	return f.missions[freq], nil
}

func (f *fakeCatalog) ListObjectives(missionID int64) ([]models.MissionObjective, error) {
	return f.objectives[missionID], nil
}

type storedAssignment struct {
	profileID   int64
	progress    int
	completed   bool
	completedAt *time.Time
	objectives  []models.MissionObjective
}

type fakeStore struct {
	assigned    map[string]bool
	assignments map[int64]*storedAssignment
	writes      int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		assigned:    make(map[string]bool),
		assignments: make(map[int64]*storedAssignment),
	}
}

func (f *fakeStore) key(profileID, missionID int64, periodKey string) string {
	return fmt.Sprintf("%d/%d/%s", profileID, missionID, periodKey)
}

func (f *fakeStore) InsertAssignment(profileID, missionID int64, periodKey string) (bool, error) {
	k := f.key(profileID, missionID, periodKey)
	if f.assigned[k] {
		return false, nil
	}
	f.assigned[k] = true
	return true, nil
}

func (f *fakeStore) ListOpenMissions(profileID int64) ([]models.OpenMission, error) {
	var open []models.OpenMission
	for id, a := range f.assignments {
		if a.completed {
			continue
		}
		open = append(open, models.OpenMission{
			AssignmentID: id,
			MissionID:    id,
			Progress:     a.progress,
			Objectives:   a.objectives,
		})
	}
	return open, nil
}

func (f *fakeStore) UpdateProgress(assignmentID int64, progress int, completed bool, completedAt *time.Time) error {
	a := f.assignments[assignmentID]
	a.progress = progress
	a.completed = completed
	a.completedAt = completedAt
	f.writes++
	return nil
}

func (f *fakeStore) ListActiveMissions(profileID int64) ([]models.ActiveMission, error) {
	return nil, nil
}

func (f *fakeStore) GetAssignment(assignmentID int64) (*models.ProfileMission, error) {
	a, ok := f.assignments[assignmentID]
	if !ok {
		return nil, nil
	}
	return &models.ProfileMission{
		ID:        assignmentID,
		ProfileID: a.profileID,
		Progress:  a.progress,
		Completed: a.completed,
	}, nil
}

func (f *fakeStore) CompleteAssignment(assignmentID int64, completedAt time.Time) error {
	a, ok := f.assignments[assignmentID]
	if !ok || a.completed {
		return repository.ErrNotFound
	}
	a.completed = true
	a.completedAt = &completedAt
	f.writes++
	return nil
}

type fakeMetrics struct {
	tests int
	pages int
}

func (f *fakeMetrics) CountCompletedEvaluations(profileID int64) (int, error) {
	return f.tests, nil
}

func (f *fakeMetrics) MaxPagesRead(profileID int64) (int, error) {
	return f.pages, nil
}

func newTestMissionService(catalog *fakeCatalog, store *fakeStore, metrics *fakeMetrics, at time.Time) *MissionService {
	s := NewMissionService(catalog, store, metrics, time.UTC)
	s.now = func() time.Time { return at }
	return s
}

func TestPeriodKey(t *testing.T) {
	at := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		freq models.MissionFrequency
		want string
	}{
		{models.FrequencyDaily, "2026-03-10"},
		{models.FrequencyMonthly, "2026-03"},
		{models.FrequencyGeneral, "once"},
	}

	for _, tt := range tests {
		t.Run(string(tt.freq), func(t *testing.T) {
			if got := PeriodKey(tt.freq, at); got != tt.want {
				t.Errorf("PeriodKey(%s) = %q, want %q", tt.freq, got, tt.want)
			}
		})
	}
}

func TestAssignMissionsIdempotentWithinWindow(t *testing.T) {
	catalog := &fakeCatalog{missions: map[models.MissionFrequency][]int64{
		models.FrequencyDaily: {1, 2},
	}}
	store := newFakeStore()
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	s := newTestMissionService(catalog, store, &fakeMetrics{}, at)

	assigned, err := s.AssignMissions(7, models.FrequencyDaily)
	if err != nil {
		t.Fatalf("first assign: %v", err)
	}
	if len(assigned) != 2 {
		t.Fatalf("expected 2 assignments, got %d", len(assigned))
	}

	assigned, err = s.AssignMissions(7, models.FrequencyDaily)
	if err != nil {
		t.Fatalf("second assign: %v", err)
	}
	if len(assigned) != 0 {
		t.Fatalf("repeat assign in same window should insert nothing, got %d", len(assigned))
	}
}

func TestAssignMissionsNewWindowAssignsAgain(t *testing.T) {
	catalog := &fakeCatalog{missions: map[models.MissionFrequency][]int64{
		models.FrequencyDaily: {1},
	}}
	store := newFakeStore()
	s := newTestMissionService(catalog, store, &fakeMetrics{}, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	if _, err := s.AssignMissions(7, models.FrequencyDaily); err != nil {
		t.Fatal(err)
	}

	// next day, same mission becomes eligible again
	s.now = func() time.Time { return time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC) }
	assigned, err := s.AssignMissions(7, models.FrequencyDaily)
	if err != nil {
		t.Fatal(err)
	}
	if len(assigned) != 1 {
		t.Fatalf("expected re-assignment on the next day, got %d", len(assigned))
	}
}

func TestEvaluateMission(t *testing.T) {
	compound := []models.MissionObjective{
		{Type: models.ObjectiveTestsCompleted, Target: 5},
		{Type: models.ObjectivePagesRead, Target: 100},
	}

	tests := []struct {
		name          string
		objectives    []models.MissionObjective
		snapshot      models.MetricsSnapshot
		wantProgress  int
		wantCompleted bool
	}{
		{
			name:          "no objectives never completes",
			objectives:    nil,
			snapshot:      models.MetricsSnapshot{TestsCompleted: 10, MaxPagesRead: 500},
			wantProgress:  0,
			wantCompleted: false,
		},
		{
			name:          "single objective below target",
			objectives:    []models.MissionObjective{{Type: models.ObjectivePagesRead, Target: 5}},
			snapshot:      models.MetricsSnapshot{MaxPagesRead: 3},
			wantProgress:  3,
			wantCompleted: false,
		},
		{
			name:          "single objective at target",
			objectives:    []models.MissionObjective{{Type: models.ObjectivePagesRead, Target: 5}},
			snapshot:      models.MetricsSnapshot{MaxPagesRead: 5},
			wantProgress:  5,
			wantCompleted: true,
		},
		{
			name:          "progress capped at target",
			objectives:    []models.MissionObjective{{Type: models.ObjectivePagesRead, Target: 5}},
			snapshot:      models.MetricsSnapshot{MaxPagesRead: 40},
			wantProgress:  5,
			wantCompleted: true,
		},
		{
			// progress follows the met tests objective (5/5), not the
			// numerically larger pages value (40/100)
			name:          "compound mission with one objective met",
			objectives:    compound,
			snapshot:      models.MetricsSnapshot{TestsCompleted: 5, MaxPagesRead: 40},
			wantProgress:  5,
			wantCompleted: false,
		},
		{
			name:          "compound mission follows furthest-along objective",
			objectives:    compound,
			snapshot:      models.MetricsSnapshot{TestsCompleted: 3, MaxPagesRead: 40},
			wantProgress:  3,
			wantCompleted: false,
		},
		{
			name:          "compound mission with all objectives met",
			objectives:    compound,
			snapshot:      models.MetricsSnapshot{TestsCompleted: 5, MaxPagesRead: 100},
			wantProgress:  100,
			wantCompleted: true,
		},
		{
			name:          "unknown objective type counts as zero",
			objectives:    []models.MissionObjective{{Type: "minutes_listened", Target: 30}},
			snapshot:      models.MetricsSnapshot{TestsCompleted: 10, MaxPagesRead: 500},
			wantProgress:  0,
			wantCompleted: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progress, completed := EvaluateMission(tt.objectives, tt.snapshot)
			if progress != tt.wantProgress || completed != tt.wantCompleted {
				t.Errorf("EvaluateMission() = (%d, %v), want (%d, %v)",
					progress, completed, tt.wantProgress, tt.wantCompleted)
			}
		})
	}
}

func TestUpdateAllMissionProgressSetsCompletedAtOnTransition(t *testing.T) {
	store := newFakeStore()
	store.assignments[1] = &storedAssignment{
		objectives: []models.MissionObjective{{Type: models.ObjectivePagesRead, Target: 5}},
	}
	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s := newTestMissionService(&fakeCatalog{}, store, &fakeMetrics{pages: 8}, at)

	if err := s.UpdateAllMissionProgress(7); err != nil {
		t.Fatal(err)
	}

	a := store.assignments[1]
	if !a.completed {
		t.Fatal("expected assignment to be completed")
	}
	if a.progress != 5 {
		t.Errorf("progress = %d, want 5", a.progress)
	}
	if a.completedAt == nil || !a.completedAt.Equal(at) {
		t.Errorf("completedAt = %v, want %v", a.completedAt, at)
	}
}

func TestUpdateAllMissionProgressSkipsUnchanged(t *testing.T) {
	store := newFakeStore()
	store.assignments[1] = &storedAssignment{
		progress:   3,
		objectives: []models.MissionObjective{{Type: models.ObjectivePagesRead, Target: 5}},
	}
	s := newTestMissionService(&fakeCatalog{}, store, &fakeMetrics{pages: 3}, time.Now())

	if err := s.UpdateAllMissionProgress(7); err != nil {
		t.Fatal(err)
	}
	if store.writes != 0 {
		t.Errorf("expected no writes for unchanged metrics, got %d", store.writes)
	}

	// once completed, the assignment is no longer open and never rewritten
	store.assignments[1].completed = true
	if err := s.UpdateAllMissionProgress(7); err != nil {
		t.Fatal(err)
	}
	if store.writes != 0 {
		t.Errorf("expected completed assignment to be skipped, got %d writes", store.writes)
	}
}

func TestCompleteMissionOwnAssignment(t *testing.T) {
	store := newFakeStore()
	store.assignments[1] = &storedAssignment{profileID: 7}
	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s := newTestMissionService(&fakeCatalog{}, store, &fakeMetrics{}, at)

	if err := s.CompleteMission(7, 1); err != nil {
		t.Fatalf("CompleteMission: %v", err)
	}
	a := store.assignments[1]
	if !a.completed {
		t.Fatal("expected assignment to be completed")
	}
	if a.completedAt == nil || !a.completedAt.Equal(at) {
		t.Errorf("completedAt = %v, want %v", a.completedAt, at)
	}
}

func TestCompleteMissionRejectsForeignAssignment(t *testing.T) {
	store := newFakeStore()
	store.assignments[1] = &storedAssignment{profileID: 7}
	s := newTestMissionService(&fakeCatalog{}, store, &fakeMetrics{}, time.Now())

	// profile 8 targeting profile 7's assignment looks like a missing row
	if err := s.CompleteMission(8, 1); err != repository.ErrNotFound {
		t.Fatalf("expected ErrNotFound for foreign assignment, got %v", err)
	}
	if store.assignments[1].completed {
		t.Error("foreign assignment must not be completed")
	}

	if err := s.CompleteMission(8, 99); err != repository.ErrNotFound {
		t.Fatalf("expected ErrNotFound for absent assignment, got %v", err)
	}
}
