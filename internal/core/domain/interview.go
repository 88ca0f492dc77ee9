package domain

import "time"

// InterviewStatus represents the lifecycle state of a scheduled interview.
type InterviewStatus string

const (
	InterviewScheduled InterviewStatus = "scheduled"
	InterviewCompleted InterviewStatus = "completed"
	InterviewCancelled InterviewStatus = "cancelled"
)

var interviewTransitions = map[InterviewStatus][]InterviewStatus{
	InterviewScheduled: {InterviewCompleted, InterviewCancelled},
}

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s InterviewStatus) CanTransitionTo(next InterviewStatus) bool {
	for _, allowed := range interviewTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Participant is someone attending the interview, referenced either by
// account id or by bare email for external attendees.
type Participant struct {
	UserID string `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Email  string `json:"email,omitempty" bson:"email,omitempty"`
}

// Evaluation holds the outcome recorded when an interview completes.
type Evaluation struct {
	Scores map[string]float64 `json:"scores,omitempty" bson:"scores,omitempty"`
	Notes  string             `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Interview is a scheduled meeting for one application.
type Interview struct {
	ID              string          `json:"id" bson:"_id,omitempty"`
	ApplicationID   string          `json:"application_id" bson:"application_id"`
	ScheduledAt     time.Time       `json:"scheduled_at" bson:"scheduled_at"`
	DurationMinutes int             `json:"duration_minutes" bson:"duration_minutes"`
	Participants    []Participant   `json:"participants" bson:"participants"`
	Location        string          `json:"location,omitempty" bson:"location,omitempty"`
	Status          InterviewStatus `json:"status" bson:"status"`
	Evaluation      Evaluation      `json:"evaluation" bson:"evaluation"`
	CreatedAt       time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" bson:"updated_at"`
	DeletedAt       *time.Time      `json:"-" bson:"deleted_at,omitempty"`
}

// EndsAt returns the end of the interview slot.
func (i *Interview) EndsAt() time.Time {
	return i.ScheduledAt.Add(time.Duration(i.DurationMinutes) * time.Minute)
}
