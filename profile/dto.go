// Package profile, as part of the profile module.
// Request payloads for profile upsert and the experience/education entries.
// Skills arrive as a single comma-delimited string and are split server-side.
package profile

import "time"

// UpsertProfileRequest is the create-or-update payload for the caller's profile.
type UpsertProfileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	Status         string `json:"status" validate:"required" example:"Developer"`
	GithubUsername string `json:"githubusername"`
	Skills         string `json:"skills" validate:"required" example:"Go,JavaScript,SQL"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

// AddExperienceRequest is the payload for prepending a work-history entry.
type AddExperienceRequest struct {
	Title       string     `json:"title" validate:"required"`
	Company     string     `json:"company" validate:"required"`
	Location    string     `json:"location"`
	From        time.Time  `json:"from" validate:"required"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

// AddEducationRequest is the payload for prepending an education entry.
type AddEducationRequest struct {
	School       string     `json:"school" validate:"required"`
	Degree       string     `json:"degree" validate:"required"`
	FieldOfStudy string     `json:"fieldofstudy" validate:"required"`
	From         time.Time  `json:"from" validate:"required"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}
