//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validCreateRequest() CreateApplicationRequest {
	return CreateApplicationRequest{
		Company:     "Acme",
		Role:        "Engineer",
		JobType:     JobTypeFullTime,
		WorkMode:    WorkModeHybrid,
		AppliedDate: "2024-01-01",
	}
}

func TestCreateApplicationRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *CreateApplicationRequest)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid request",
			mutate:  func(_ *CreateApplicationRequest) {},
			wantErr: false,
		},
		{
			name: "valid with optional fields",
			mutate: func(r *CreateApplicationRequest) {
				r.Status = StatusInterview
				r.InterviewDate = "2024-02-01T14:00"
				r.InterviewLink = "https://meet.example.com/abc"
				r.Priority = PriorityHigh
				r.ExperienceLevel = LevelSenior
			},
			wantErr: false,
		},
		{
			name:    "missing company",
			mutate:  func(r *CreateApplicationRequest) { r.Company = "" },
			wantErr: true,
			errMsg:  "Company",
		},
		{
			name:    "unknown job type",
			mutate:  func(r *CreateApplicationRequest) { r.JobType = "gig" },
			wantErr: true,
			errMsg:  "oneof",
		},
		{
			name:    "unknown status",
			mutate:  func(r *CreateApplicationRequest) { r.Status = "ghosted" },
			wantErr: true,
			errMsg:  "Status",
		},
		{
			name:    "unparsable applied date",
			mutate:  func(r *CreateApplicationRequest) { r.AppliedDate = "yesterday" },
			wantErr: true,
			errMsg:  "trackerdate",
		},
		{
			name:    "bad posting url",
			mutate:  func(r *CreateApplicationRequest) { r.JobPostingURL = "not a url" },
			wantErr: true,
			errMsg:  "JobPostingURL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateApplicationRequest_Validation(t *testing.T) {
	empty := UpdateApplicationRequest{}
	assert.NoError(t, empty.Validate())

	status := StatusOffered
	ok := UpdateApplicationRequest{Status: &status}
	assert.NoError(t, ok.Validate())

	bad := Status("ghosted")
	assert.Error(t, (&UpdateApplicationRequest{Status: &bad}).Validate())

	blank := ""
	assert.Error(t, (&UpdateApplicationRequest{Company: &blank}).Validate())

	badDate := "31/12/2024"
	assert.Error(t, (&UpdateApplicationRequest{FollowUpDate: &badDate}).Validate())

	// optional fields may be cleared, the applied date may not
	assert.NoError(t, (&UpdateApplicationRequest{FollowUpDate: &blank, InterviewLink: &blank, JobPostingURL: &blank}).Validate())
	assert.Error(t, (&UpdateApplicationRequest{AppliedDate: &blank}).Validate())

	badURL := "not a url"
	assert.Error(t, (&UpdateApplicationRequest{InterviewLink: &badURL}).Validate())

	noPriority, noLevel := Priority(""), ExperienceLevel("")
	assert.NoError(t, (&UpdateApplicationRequest{Priority: &noPriority, ExperienceLevel: &noLevel}).Validate())
	badPriority, badLevel := Priority("urgent"), ExperienceLevel("principal")
	assert.Error(t, (&UpdateApplicationRequest{Priority: &badPriority}).Validate())
	assert.Error(t, (&UpdateApplicationRequest{ExperienceLevel: &badLevel}).Validate())
}

func TestContactRequest_Validation(t *testing.T) {
	ok := ContactRequest{Name: "Ada", Type: ContactRecruiter, Email: "ada@example.com"}
	assert.NoError(t, ok.Validate())

	badEmail := ContactRequest{Name: "Ada", Type: ContactRecruiter, Email: "ada-at-example"}
	assert.Error(t, badEmail.Validate())

	badType := ContactRequest{Name: "Ada", Type: "friend"}
	assert.Error(t, badType.Validate())
}

func TestDocumentUploadRequest_Validation(t *testing.T) {
	ok := DocumentUploadRequest{Name: "cv.pdf", Type: DocumentResume, Content: []byte("x")}
	assert.NoError(t, ok.Validate())

	missing := DocumentUploadRequest{Type: DocumentResume}
	assert.Error(t, missing.Validate())
}
