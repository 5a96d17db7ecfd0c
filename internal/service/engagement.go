package service

import (
	"fmt"

	"readquest/internal/models"
	"readquest/internal/tasks"
)

// Engagement dispatches the best-effort background work that user actions
// trigger: mission assignment, mission progress recomputation, activity
// logging and welcome email. Everything here goes through the task runner,
// so none of it can fail or slow down the request that triggered it.
type Engagement struct {
	runner        *tasks.Runner
	missions      *MissionService
	stats         *StatsService
	notifications *NotificationService
	email         *EmailService
}

// NewEngagement creates the engagement dispatcher
func NewEngagement(runner *tasks.Runner, missions *MissionService, stats *StatsService, notifications *NotificationService, email *EmailService) *Engagement {
	return &Engagement{
		runner:        runner,
		missions:      missions,
		stats:         stats,
		notifications: notifications,
		email:         email,
	}
}

// OnRegistration seeds a new profile with its one-time and monthly missions
// and sends the welcome email
func (e *Engagement) OnRegistration(user models.User, profileID int64) {
	e.assign(user.ID, profileID, models.FrequencyGeneral, models.FrequencyMonthly)

	e.runner.Enqueue("welcome-email", func() error {
		return e.email.SendWelcomeEmail(user.Email, user.Username)
	})
}

// OnLogin tops up the profile's missions for the current day and month
func (e *Engagement) OnLogin(userID, profileID int64) {
	e.assign(userID, profileID, models.FrequencyDaily, models.FrequencyMonthly, models.FrequencyGeneral)
}

// OnQualifyingActivity runs after an evaluation submit or a reading
// progress update: it records the activity day for the streak, recomputes
// mission progress from fresh metrics, and makes sure today's daily
// missions exist.
func (e *Engagement) OnQualifyingActivity(userID, profileID int64) {
	e.runner.Enqueue("record-activity", func() error {
		return e.stats.RecordActivity(profileID)
	})
	e.runner.Enqueue("mission-progress", func() error {
		return e.missions.UpdateAllMissionProgress(profileID)
	})
	e.assign(userID, profileID, models.FrequencyDaily)
}

// assign enqueues one assignment task per frequency and notifies the user
// about newly assigned missions
func (e *Engagement) assign(userID, profileID int64, freqs ...models.MissionFrequency) {
	for _, freq := range freqs {
		freq := freq
		e.runner.Enqueue("assign-missions-"+string(freq), func() error {
			assigned, err := e.missions.AssignMissions(profileID, freq)
			if err != nil {
				return err
			}
			if len(assigned) == 0 {
				return nil
			}
			message := fmt.Sprintf("You have %d new missions waiting", len(assigned))
			if len(assigned) == 1 {
				message = "You have a new mission waiting"
			}
			return e.notifications.Notify(userID, message, models.NotificationMission)
		})
	}
}
