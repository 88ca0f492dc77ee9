package domain

import "time"

// ApplicationStatus represents the pipeline stage of a candidate application.
type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationInReview  ApplicationStatus = "in_review"
	ApplicationInterview ApplicationStatus = "interview"
	ApplicationOffer     ApplicationStatus = "offer"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationAccepted  ApplicationStatus = "accepted"
)

// applicationTransitions defines the allowed pipeline moves. Forward skips
// are permitted (a strong candidate may go straight to interview); moving
// backwards is not. A candidate can be rejected from any active stage and
// accepted only from offer.
var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationPending:   {ApplicationInReview, ApplicationInterview, ApplicationRejected},
	ApplicationInReview:  {ApplicationInterview, ApplicationOffer, ApplicationRejected},
	ApplicationInterview: {ApplicationOffer, ApplicationRejected},
	ApplicationOffer:     {ApplicationAccepted, ApplicationRejected},
}

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	for _, allowed := range applicationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CandidateInfo is a snapshot of the applicant taken at submission time, so
// exports remain usable even if the account is later removed.
type CandidateInfo struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	Phone string `json:"phone,omitempty" bson:"phone,omitempty"`
}

// ApplicationNote is a free-form remark added by a recruiter.
type ApplicationNote struct {
	Text    string    `json:"text" bson:"text"`
	AddedBy string    `json:"added_by" bson:"added_by"`
	AddedAt time.Time `json:"added_at" bson:"added_at"`
}

// Application ties an applicant to a job with an uploaded resume.
type Application struct {
	ID            string             `json:"id" bson:"_id,omitempty"`
	ApplicantID   string             `json:"applicant_id" bson:"applicant_id"`
	JobID         string             `json:"job_id" bson:"job_id"`
	ResumePath    string             `json:"resume_path" bson:"resume_path"`
	CoverLetter   string             `json:"cover_letter,omitempty" bson:"cover_letter,omitempty"`
	CandidateInfo CandidateInfo      `json:"candidate_info" bson:"candidate_info"`
	Status        ApplicationStatus  `json:"status" bson:"status"`
	Notes         []ApplicationNote  `json:"notes" bson:"notes"`
	Scores        map[string]float64 `json:"scores,omitempty" bson:"scores,omitempty"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
	DeletedAt     *time.Time         `json:"-" bson:"deleted_at,omitempty"`
}
