package main

import (
	"github.com/spf13/pflag"

	"github.com/jonathan/job-tracker/internal/types"
)

// appFlags holds the record fields shared by add and update
type appFlags struct {
	company       string
	role          string
	jobType       string
	workMode      string
	status        string
	applied       string
	location      string
	salaryMin     string
	salaryMax     string
	currency      string
	notes         string
	category      string
	level         string
	priority      string
	interviewDate string
	followUp      string
	interviewLink string
	postingURL    string
}

func (f *appFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.company, "company", "", "Company name")
	fs.StringVar(&f.role, "role", "", "Role or job title")
	fs.StringVar(&f.jobType, "job-type", "", "full-time, part-time, contract, freelance or internship")
	fs.StringVar(&f.workMode, "work-mode", "", "remote, on-site or hybrid")
	fs.StringVar(&f.status, "status", "", "applied, shortlisted, interview, rejected or offered")
	fs.StringVar(&f.applied, "applied", "", "Applied date (YYYY-MM-DD)")
	fs.StringVar(&f.location, "location", "", "Work location")
	fs.StringVar(&f.salaryMin, "salary-min", "", "Lower salary bound, e.g. 90000 or 90k")
	fs.StringVar(&f.salaryMax, "salary-max", "", "Upper salary bound")
	fs.StringVar(&f.currency, "currency", "", "Salary currency")
	fs.StringVar(&f.notes, "notes", "", "Free-form notes")
	fs.StringVar(&f.category, "category", "", "Category label")
	fs.StringVar(&f.level, "level", "", "entry, mid, senior, lead or executive")
	fs.StringVar(&f.priority, "priority", "", "low, medium or high")
	fs.StringVar(&f.interviewDate, "interview-date", "", "Interview date")
	fs.StringVar(&f.followUp, "follow-up", "", "Follow-up date")
	fs.StringVar(&f.interviewLink, "interview-link", "", "Interview meeting link")
	fs.StringVar(&f.postingURL, "posting-url", "", "Job posting URL")
}

// overlay copies every non-empty flag onto req
func (f *appFlags) overlay(req *types.CreateApplicationRequest) {
	setIf := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setIf(&req.Company, f.company)
	setIf(&req.Role, f.role)
	setIf(&req.AppliedDate, f.applied)
	setIf(&req.WorkLocation, f.location)
	setIf(&req.Notes, f.notes)
	setIf(&req.Category, f.category)
	setIf(&req.InterviewDate, f.interviewDate)
	setIf(&req.FollowUpDate, f.followUp)
	setIf(&req.InterviewLink, f.interviewLink)
	setIf(&req.JobPostingURL, f.postingURL)

	if f.jobType != "" {
		req.JobType = types.JobType(f.jobType)
	}
	if f.workMode != "" {
		req.WorkMode = types.WorkMode(f.workMode)
	}
	if f.status != "" {
		req.Status = types.Status(f.status)
	}
	if f.level != "" {
		req.ExperienceLevel = types.ExperienceLevel(f.level)
	}
	if f.priority != "" {
		req.Priority = types.Priority(f.priority)
	}

	if f.salaryMin != "" || f.salaryMax != "" || f.currency != "" {
		sr := types.SalaryRange{}
		if req.SalaryRange != nil {
			sr = *req.SalaryRange
		}
		setIf(&sr.Min, f.salaryMin)
		setIf(&sr.Max, f.salaryMax)
		setIf(&sr.Currency, f.currency)
		req.SalaryRange = &sr
	}
}

// update builds a partial update from the flags the user actually passed, so
// an explicit empty value clears a field
func (f *appFlags) update(fs *pflag.FlagSet) types.UpdateApplicationRequest {
	var req types.UpdateApplicationRequest
	str := func(name, v string) *string {
		if !fs.Changed(name) {
			return nil
		}
		return &v
	}

	req.Company = str("company", f.company)
	req.Role = str("role", f.role)
	req.AppliedDate = str("applied", f.applied)
	req.WorkLocation = str("location", f.location)
	req.Notes = str("notes", f.notes)
	req.Category = str("category", f.category)
	req.InterviewDate = str("interview-date", f.interviewDate)
	req.FollowUpDate = str("follow-up", f.followUp)
	req.InterviewLink = str("interview-link", f.interviewLink)
	req.JobPostingURL = str("posting-url", f.postingURL)

	if fs.Changed("job-type") {
		v := types.JobType(f.jobType)
		req.JobType = &v
	}
	if fs.Changed("work-mode") {
		v := types.WorkMode(f.workMode)
		req.WorkMode = &v
	}
	if fs.Changed("status") {
		v := types.Status(f.status)
		req.Status = &v
	}
	if fs.Changed("level") {
		v := types.ExperienceLevel(f.level)
		req.ExperienceLevel = &v
	}
	if fs.Changed("priority") {
		v := types.Priority(f.priority)
		req.Priority = &v
	}
	if fs.Changed("salary-min") || fs.Changed("salary-max") || fs.Changed("currency") {
		req.SalaryRange = &types.SalaryRange{Min: f.salaryMin, Max: f.salaryMax, Currency: f.currency}
	}
	return req
}
