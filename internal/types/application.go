// Package types provides type definitions for structured data used throughout the job tracker.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// JobApplication represents a single tracked job application
type JobApplication struct {
	ID              string          `json:"id"`
	Company         string          `json:"company"`
	Role            string          `json:"role"`
	SalaryRange     *SalaryRange    `json:"salary_range,omitempty"`
	WorkLocation    string          `json:"work_location"`
	JobType         JobType         `json:"job_type"`
	WorkMode        WorkMode        `json:"work_mode"`
	Status          Status          `json:"status"`
	AppliedDate     string          `json:"applied_date"` // YYYY-MM-DD, RFC3339 also accepted
	InterviewLink   string          `json:"interview_link,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Category        string          `json:"category,omitempty"`
	ExperienceLevel ExperienceLevel `json:"experience_level,omitempty"`
	JobPostingURL   string          `json:"job_posting_url,omitempty"`
	InterviewDate   string          `json:"interview_date,omitempty"`
	FollowUpDate    string          `json:"follow_up_date,omitempty"`
	Priority        Priority        `json:"priority,omitempty"`
	Archived        bool            `json:"archived"`

	StatusHistory []StatusChange `json:"status_history"`
	Contacts      []Contact      `json:"contacts,omitempty"`
	Documents     []Document     `json:"documents,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SalaryRange holds the advertised salary bounds as entered by the user
type SalaryRange struct {
	Min      string `json:"min,omitempty"`
	Max      string `json:"max,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// IsEmpty reports whether neither bound is set
func (s *SalaryRange) IsEmpty() bool {
	return s == nil || (s.Min == "" && s.Max == "")
}

// StatusChange is one entry of the append-only status audit trail
type StatusChange struct {
	Status Status    `json:"status"`
	Date   time.Time `json:"date"`
	Note   string    `json:"note,omitempty"`
}

// Contact is a person associated with an application
type Contact struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Title    string      `json:"title,omitempty"`
	Type     ContactType `json:"type"`
	Email    string      `json:"email,omitempty"`
	Phone    string      `json:"phone,omitempty"`
	LinkedIn string      `json:"linkedin,omitempty"`
	Notes    string      `json:"notes,omitempty"`
}

// Document is a file linked to an application, or held unattached in the library
type Document struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Type          DocumentType `json:"type"`
	UploadDate    time.Time    `json:"upload_date"`
	MimeType      string       `json:"mime_type,omitempty"`
	Size          int          `json:"size"`
	Content       []byte       `json:"content,omitempty"` // base64 in JSON
	ApplicationID string       `json:"application_id,omitempty"`
}

// HasInterview reports whether the application shows any sign of an interview
func (a *JobApplication) HasInterview() bool {
	return a.Status == StatusInterview || a.InterviewDate != "" || a.InterviewLink != ""
}

// LatestStatusChange returns the most recent history entry, or nil when history is empty
func (a *JobApplication) LatestStatusChange() *StatusChange {
	if len(a.StatusHistory) == 0 {
		return nil
	}
	return &a.StatusHistory[len(a.StatusHistory)-1]
}

// Clone returns a deep copy so callers can mutate without touching stored slices
func (a JobApplication) Clone() JobApplication {
	out := a
	if a.SalaryRange != nil {
		sr := *a.SalaryRange
		out.SalaryRange = &sr
	}
	out.StatusHistory = append([]StatusChange(nil), a.StatusHistory...)
	out.Contacts = append([]Contact(nil), a.Contacts...)
	out.Documents = make([]Document, len(a.Documents))
	for i, d := range a.Documents {
		d.Content = append([]byte(nil), d.Content...)
		out.Documents[i] = d
	}
	if len(a.Documents) == 0 {
		out.Documents = nil
	}
	return out
}
