//nolint:revive // types is a standard Go package name pattern
package types

// All is the sentinel filter value meaning "no constraint"
const All = "all"

// Status is the pipeline stage of an application
type Status string

// Status constants
const (
	StatusApplied     Status = "applied"
	StatusShortlisted Status = "shortlisted"
	StatusInterview   Status = "interview"
	StatusRejected    Status = "rejected"
	StatusOffered     Status = "offered"
)

// Statuses lists every valid status in pipeline order
var Statuses = []Status{StatusApplied, StatusShortlisted, StatusInterview, StatusRejected, StatusOffered}

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// JobType is the employment type of the position
type JobType string

// JobType constants
const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeFreelance  JobType = "freelance"
	JobTypeInternship JobType = "internship"
)

// WorkMode is where the work happens
type WorkMode string

// WorkMode constants
const (
	WorkModeRemote WorkMode = "remote"
	WorkModeOnSite WorkMode = "on-site"
	WorkModeHybrid WorkMode = "hybrid"
)

// ExperienceLevel is the seniority the position targets
type ExperienceLevel string

// ExperienceLevel constants
const (
	LevelEntry     ExperienceLevel = "entry"
	LevelMid       ExperienceLevel = "mid"
	LevelSenior    ExperienceLevel = "senior"
	LevelLead      ExperienceLevel = "lead"
	LevelExecutive ExperienceLevel = "executive"
)

// Priority is the user's own ranking of an application
type Priority string

// Priority constants
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank maps a priority onto high=3, medium=2, low=1; anything else is 0
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// ContactType classifies a contact
type ContactType string

// ContactType constants
const (
	ContactRecruiter     ContactType = "recruiter"
	ContactHiringManager ContactType = "hiring-manager"
	ContactTeamMember    ContactType = "team-member"
	ContactOther         ContactType = "other"
)

// DocumentType classifies a document
type DocumentType string

// DocumentType constants
const (
	DocumentResume      DocumentType = "resume"
	DocumentCoverLetter DocumentType = "cover-letter"
	DocumentPortfolio   DocumentType = "portfolio"
	DocumentOther       DocumentType = "other"
)
