package domain

import "time"

// Notification types mirror the events pushed over the real-time channel.
const (
	NotifNewApplication     = "new_application"
	NotifStatusUpdate       = "status_update"
	NotifNewJob             = "new_job"
	NotifJobPublished       = "job_published"
	NotifJobClosed          = "job_closed"
	NotifInterviewScheduled = "interview_scheduled"
)

// Notification is a persisted message for one user, shown until marked read.
type Notification struct {
	ID        string         `json:"id" bson:"_id,omitempty"`
	UserID    string         `json:"user_id" bson:"user_id"`
	Type      string         `json:"type" bson:"type"`
	Payload   map[string]any `json:"payload" bson:"payload"`
	Read      bool           `json:"read" bson:"read"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" bson:"updated_at"`
}
