package domain

import "time"

// JobStatus represents the lifecycle state of a job posting.
type JobStatus string

const (
	JobDraft     JobStatus = "draft"
	JobPublished JobStatus = "published"
	JobClosed    JobStatus = "closed"
)

// jobTransitions defines the allowed state machine transitions.
// A posting only moves forward: draft → published → closed.
var jobTransitions = map[JobStatus][]JobStatus{
	JobDraft:     {JobPublished},
	JobPublished: {JobClosed},
}

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	for _, allowed := range jobTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

const (
	VisibilityInternal = "internal"
	VisibilityPublic   = "public"
)

// Job is a published (or draft) position candidates apply to.
type Job struct {
	ID           string     `json:"id" bson:"_id,omitempty"`
	Title        string     `json:"title" bson:"title"`
	Description  string     `json:"description" bson:"description"`
	Department   string     `json:"department" bson:"department"`
	Location     string     `json:"location" bson:"location"`
	SalaryRange  string     `json:"salary_range,omitempty" bson:"salary_range,omitempty"`
	Type         string     `json:"type" bson:"type"`
	Requirements []string   `json:"requirements" bson:"requirements"`
	Benefits     []string   `json:"benefits" bson:"benefits"`
	Tags         []string   `json:"tags" bson:"tags"`
	CreatedBy    string     `json:"created_by" bson:"created_by"`
	Status       JobStatus  `json:"status" bson:"status"`
	Visibility   string     `json:"visibility" bson:"visibility"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
	DeletedAt    *time.Time `json:"-" bson:"deleted_at,omitempty"`
}
