package domain

import "time"

// Audit actions. One constant per mutating operation.
const (
	ActionRegisterUser    = "register_user"
	ActionCreateUser      = "create_user"
	ActionUpdateUser      = "update_user"
	ActionDeleteUser      = "delete_user"
	ActionCreateJob       = "create_job"
	ActionUpdateJob       = "update_job"
	ActionDeleteJob       = "delete_job"
	ActionPublishJob      = "publish_job"
	ActionCloseJob        = "close_job"
	ActionCreateApp       = "create_application"
	ActionUpdateAppStatus = "update_application_status"
	ActionAddAppNote      = "add_application_note"
	ActionCreateInterview = "create_interview"
	ActionUpdateInterview = "update_interview"
	ActionCompleteIntw    = "complete_interview"
)

// AuditRecord is an immutable trace of who did what to which entity.
// Written exactly once per successful mutating operation, never updated.
type AuditRecord struct {
	ID         string         `json:"id" bson:"_id,omitempty"`
	ActorID    string         `json:"actor_id" bson:"actor_id"`
	Action     string         `json:"action" bson:"action"`
	TargetType string         `json:"target_type" bson:"target_type"`
	TargetID   string         `json:"target_id" bson:"target_id"`
	Details    map[string]any `json:"details,omitempty" bson:"details,omitempty"`
	CreatedAt  time.Time      `json:"created_at" bson:"created_at"`
}
