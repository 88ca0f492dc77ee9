package domain

import "time"

const (
	RoleAdmin     = "admin"
	RoleHR        = "hr"
	RoleEmployee  = "employee"
	RoleApplicant = "applicant"
)

// ValidRole reports whether role belongs to the fixed enumeration.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleHR, RoleEmployee, RoleApplicant:
		return true
	}
	return false
}

// User models an account in the system. PasswordHash never leaves the server.
type User struct {
	ID              string     `json:"id" bson:"_id,omitempty"`
	FirstName       string     `json:"first_name" bson:"first_name"`
	LastName        string     `json:"last_name" bson:"last_name"`
	Email           string     `json:"email" bson:"email"`
	PasswordHash    string     `json:"-" bson:"password_hash"`
	Role            string     `json:"role" bson:"role"`
	Department      string     `json:"department,omitempty" bson:"department,omitempty"`
	ManagerID       string     `json:"manager_id,omitempty" bson:"manager_id,omitempty"`
	ProfilePhotoURL string     `json:"profile_photo_url,omitempty" bson:"profile_photo_url,omitempty"`
	IsActive        bool       `json:"is_active" bson:"is_active"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty" bson:"last_login_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" bson:"updated_at"`
	DeletedAt       *time.Time `json:"-" bson:"deleted_at,omitempty"`
}

// FullName is the display name used in notifications and exports.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Privileged reports whether the role may act on resources it does not own.
func Privileged(role string) bool {
	return role == RoleAdmin || role == RoleHR
}
