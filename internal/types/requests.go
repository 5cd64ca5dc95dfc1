//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// CreateApplicationRequest carries the fields accepted when creating an application.
type CreateApplicationRequest struct {
	Company         string          `json:"company" validate:"required"`
	Role            string          `json:"role" validate:"required"`
	SalaryRange     *SalaryRange    `json:"salary_range,omitempty"`
	WorkLocation    string          `json:"work_location"`
	JobType         JobType         `json:"job_type" validate:"required,oneof=full-time part-time contract freelance internship"`
	WorkMode        WorkMode        `json:"work_mode" validate:"required,oneof=remote on-site hybrid"`
	Status          Status          `json:"status" validate:"omitempty,oneof=applied shortlisted interview rejected offered"`
	AppliedDate     string          `json:"applied_date" validate:"required,trackerdate"`
	InterviewLink   string          `json:"interview_link,omitempty" validate:"omitempty,url"`
	Notes           string          `json:"notes,omitempty"`
	Category        string          `json:"category,omitempty"`
	ExperienceLevel ExperienceLevel `json:"experience_level,omitempty" validate:"omitempty,oneof=entry mid senior lead executive"`
	JobPostingURL   string          `json:"job_posting_url,omitempty" validate:"omitempty,url"`
	InterviewDate   string          `json:"interview_date,omitempty" validate:"omitempty,trackerdate"`
	FollowUpDate    string          `json:"follow_up_date,omitempty" validate:"omitempty,trackerdate"`
	Priority        Priority        `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
}

// UpdateApplicationRequest is a partial update; nil fields are left untouched
// and a pointer to "" clears an optional field.
type UpdateApplicationRequest struct {
	Company         *string          `json:"company,omitempty" validate:"omitempty,min=1"`
	Role            *string          `json:"role,omitempty" validate:"omitempty,min=1"`
	SalaryRange     *SalaryRange     `json:"salary_range,omitempty"`
	WorkLocation    *string          `json:"work_location,omitempty"`
	JobType         *JobType         `json:"job_type,omitempty" validate:"omitempty,oneof=full-time part-time contract freelance internship"`
	WorkMode        *WorkMode        `json:"work_mode,omitempty" validate:"omitempty,oneof=remote on-site hybrid"`
	Status          *Status          `json:"status,omitempty" validate:"omitempty,oneof=applied shortlisted interview rejected offered"`
	StatusNote      string           `json:"status_note,omitempty"`
	AppliedDate     *string          `json:"applied_date,omitempty" validate:"omitempty,min=1,trackerdate"`
	InterviewLink   *string          `json:"interview_link,omitempty" validate:"omitempty,url|len=0"`
	Notes           *string          `json:"notes,omitempty"`
	Category        *string          `json:"category,omitempty"`
	ExperienceLevel *ExperienceLevel `json:"experience_level,omitempty" validate:"omitempty,oneof=entry mid senior lead executive|len=0"`
	JobPostingURL   *string          `json:"job_posting_url,omitempty" validate:"omitempty,url|len=0"`
	InterviewDate   *string          `json:"interview_date,omitempty" validate:"omitempty,trackerdate"`
	FollowUpDate    *string          `json:"follow_up_date,omitempty" validate:"omitempty,trackerdate"`
	Priority        *Priority        `json:"priority,omitempty" validate:"omitempty,oneof=low medium high|len=0"`
}

// ContactRequest carries the fields accepted when adding a contact.
type ContactRequest struct {
	Name     string      `json:"name" validate:"required"`
	Title    string      `json:"title,omitempty"`
	Type     ContactType `json:"type" validate:"required,oneof=recruiter hiring-manager team-member other"`
	Email    string      `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string      `json:"phone,omitempty"`
	LinkedIn string      `json:"linkedin,omitempty" validate:"omitempty,url"`
	Notes    string      `json:"notes,omitempty"`
}

// DocumentUploadRequest carries a new document for the library.
type DocumentUploadRequest struct {
	Name     string       `json:"name" validate:"required"`
	Type     DocumentType `json:"type" validate:"required,oneof=resume cover-letter portfolio other"`
	MimeType string       `json:"mime_type,omitempty"`
	Content  []byte       `json:"content,omitempty"`
}

// newValidator returns a validator with the tracker-specific tags registered.
func newValidator() *validator.Validate {
	validate := validator.New()
	// Registration only fails for an empty tag or nil func.
	_ = validate.RegisterValidation("trackerdate", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, ok := ParseDate(s)
		return ok
	})
	return validate
}

// Validate validates the CreateApplicationRequest using the validator.
func (r *CreateApplicationRequest) Validate() error {
	return newValidator().Struct(r)
}

// Validate validates the UpdateApplicationRequest using the validator.
func (r *UpdateApplicationRequest) Validate() error {
	return newValidator().Struct(r)
}

// Validate validates the ContactRequest using the validator.
func (r *ContactRequest) Validate() error {
	return newValidator().Struct(r)
}

// Validate validates the DocumentUploadRequest using the validator.
func (r *DocumentUploadRequest) Validate() error {
	return newValidator().Struct(r)
}
