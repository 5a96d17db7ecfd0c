package repository

import (
	"database/sql"
	"time"

	"readquest/internal/database"
	"readquest/internal/models"
)

// MissionRepository handles the mission catalog and per-profile assignments
type MissionRepository struct {
	db database.DBTX
}

// NewMissionRepository creates a new mission repository
func NewMissionRepository(db database.DBTX) *MissionRepository {
	return &MissionRepository{db: db}
}

// ListMissionIDsByFrequency returns the catalog mission IDs for a frequency
func (r *MissionRepository) ListMissionIDsByFrequency(freq models.MissionFrequency) ([]int64, error) {
	rows, err := r.db.Query("SELECT id FROM missions WHERE frequency = ?", string(freq))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListObjectives returns a mission's objectives
func (r *MissionRepository) ListObjectives(missionID int64) ([]models.MissionObjective, error) {
	query := `
		SELECT id, mission_id, objective_type, target
		FROM mission_objectives
		WHERE mission_id = ?
		ORDER BY id ASC
	`
	rows, err := r.db.Query(query, missionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var objectives []models.MissionObjective
	for rows.Next() {
		var o models.MissionObjective
		if err := rows.Scan(&o.ID, &o.MissionID, &o.Type, &o.Target); err != nil {
			return nil, err
		}
		objectives = append(objectives, o)
	}
	return objectives, rows.Err()
}

// InsertAssignment creates one assignment row for the eligibility period.
// The (profile_id, mission_id, period_key) uniqueness constraint makes the
// insert idempotent; the return value reports whether a new row appeared.
func (r *MissionRepository) InsertAssignment(profileID, missionID int64, periodKey string) (bool, error) {
	query := `
		INSERT INTO profile_missions (profile_id, mission_id, period_key, progress, completed)
		VALUES (?, ?, ?, 0, ?)
	`
	affected, err := r.db.ExecInsertIgnore(query, profileID, missionID, periodKey, false)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ListOpenMissions returns the profile's incomplete assignments joined with
// their mission objectives
func (r *MissionRepository) ListOpenMissions(profileID int64) ([]models.OpenMission, error) {
	query := `
		SELECT pm.id, pm.mission_id, pm.progress, o.id, o.objective_type, o.target
		FROM profile_missions pm
		JOIN mission_objectives o ON o.mission_id = pm.mission_id
		WHERE pm.profile_id = ? AND pm.completed = ?
		ORDER BY pm.id ASC, o.id ASC
	`
	rows, err := r.db.Query(query, profileID, false)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var open []models.OpenMission
	index := make(map[int64]int)
	for rows.Next() {
		var (
			assignmentID, missionID int64
			progress                int
			obj                     models.MissionObjective
		)
		if err := rows.Scan(&assignmentID, &missionID, &progress, &obj.ID, &obj.Type, &obj.Target); err != nil {
			return nil, err
		}
		obj.MissionID = missionID

		i, seen := index[assignmentID]
		if !seen {
			open = append(open, models.OpenMission{
				AssignmentID: assignmentID,
				MissionID:    missionID,
				Progress:     progress,
			})
			i = len(open) - 1
			index[assignmentID] = i
		}
		open[i].Objectives = append(open[i].Objectives, obj)
	}
	return open, rows.Err()
}

// UpdateProgress persists a recomputed progress value and completion flag.
// completedAt is written only on the transition to complete.
func (r *MissionRepository) UpdateProgress(assignmentID int64, progress int, completed bool, completedAt *time.Time) error {
	if completedAt != nil {
		query := `
			UPDATE profile_missions
			SET progress = ?, completed = ?, completed_at = ?
			WHERE id = ?
		`
		_, err := r.db.Exec(query, progress, completed, *completedAt, assignmentID)
		return err
	}

	_, err := r.db.Exec(
		"UPDATE profile_missions SET progress = ?, completed = ? WHERE id = ?",
		progress, completed, assignmentID,
	)
	return err
}

// ListActiveMissions returns the client-facing mission list for a profile
func (r *MissionRepository) ListActiveMissions(profileID int64) ([]models.ActiveMission, error) {
	query := `
		SELECT pm.id, m.id, m.name, m.description, m.frequency,
		       pm.progress, pm.completed, pm.assigned_at
		FROM profile_missions pm
		JOIN missions m ON m.id = pm.mission_id
		WHERE pm.profile_id = ?
		ORDER BY m.frequency ASC, pm.assigned_at DESC
	`
	rows, err := r.db.Query(query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var missions []models.ActiveMission
	for rows.Next() {
		var am models.ActiveMission
		err := rows.Scan(
			&am.AssignmentID, &am.MissionID, &am.Name, &am.Description, &am.Frequency,
			&am.Progress, &am.Completed, &am.AssignedAt,
		)
		if err != nil {
			return nil, err
		}
		missions = append(missions, am)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range missions {
		objectives, err := r.ListObjectives(missions[i].MissionID)
		if err != nil {
			return nil, err
		}
		missions[i].Objectives = objectives
	}
	return missions, nil
}

// CompleteAssignment marks an assignment complete by hand (client-driven).
// ErrNotFound when the assignment does not exist or is already complete.
func (r *MissionRepository) CompleteAssignment(assignmentID int64, completedAt time.Time) error {
	result, err := r.db.Exec(
		"UPDATE profile_missions SET completed = ?, completed_at = ? WHERE id = ? AND completed = ?",
		true, completedAt, assignmentID, false,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetAssignment returns one assignment row, nil when absent
func (r *MissionRepository) GetAssignment(assignmentID int64) (*models.ProfileMission, error) {
	query := `
		SELECT id, profile_id, mission_id, period_key, progress, completed, assigned_at, completed_at
		FROM profile_missions
		WHERE id = ?
	`
	pm := &models.ProfileMission{}
	var completedAt sql.NullTime
	err := r.db.QueryRow(query, assignmentID).Scan(
		&pm.ID, &pm.ProfileID, &pm.MissionID, &pm.PeriodKey,
		&pm.Progress, &pm.Completed, &pm.AssignedAt, &completedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if completedAt.Valid {
		pm.CompletedAt = &completedAt.Time
	}
	return pm, nil
}
