package tracker

import (
	"context"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/job-tracker/internal/automation"
	"github.com/jonathan/job-tracker/internal/store"
	"github.com/jonathan/job-tracker/internal/types"
)

// CreatedNote is the history note written when an application is created
const CreatedNote = "Application created"

// Tracker manages the application collection. Every mutation is a
// read-modify-write of the whole collection under the lock shared by every
// Tracker and Library over the same store.
type Tracker struct {
	kv    store.KV
	now   func() time.Time
	newID func() string
	mu    *sync.Mutex
}

// New creates a Tracker over kv using the wall clock and random UUIDs
func New(kv store.KV) *Tracker {
	return &Tracker{
		kv:    kv,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
		mu:    lockFor(kv),
	}
}

// WithClock replaces the clock used for timestamps and history entries
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.now = now
	return t
}

// List returns every stored application in insertion order
func (t *Tracker) List(ctx context.Context) ([]types.JobApplication, error) {
	return loadApplications(ctx, t.kv)
}

// Get returns one application by id
func (t *Tracker) Get(ctx context.Context, id string) (*types.JobApplication, error) {
	apps, err := loadApplications(ctx, t.kv)
	if err != nil {
		return nil, err
	}
	i := indexOf(apps, id)
	if i < 0 {
		return nil, &NotFoundError{Kind: "application", ID: id}
	}
	return &apps[i], nil
}

// Create validates req and appends a new application with a fresh id and an
// initial history entry
func (t *Tracker) Create(ctx context.Context, req types.CreateApplicationRequest) (*types.JobApplication, error) {
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Message: "invalid application", Cause: err}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	apps, err := loadApplications(ctx, t.kv)
	if err != nil {
		return nil, err
	}

	now := t.now()
	status := req.Status
	if status == "" {
		status = types.StatusApplied
	}
	app := types.JobApplication{
		ID:              t.newID(),
		Company:         req.Company,
		Role:            req.Role,
		SalaryRange:     req.SalaryRange,
		WorkLocation:    req.WorkLocation,
		JobType:         req.JobType,
		WorkMode:        req.WorkMode,
		Status:          status,
		AppliedDate:     req.AppliedDate,
		InterviewLink:   req.InterviewLink,
		Notes:           req.Notes,
		Category:        req.Category,
		ExperienceLevel: req.ExperienceLevel,
		JobPostingURL:   req.JobPostingURL,
		InterviewDate:   req.InterviewDate,
		FollowUpDate:    req.FollowUpDate,
		Priority:        req.Priority,
		StatusHistory:   []types.StatusChange{{Status: status, Date: now, Note: CreatedNote}},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	apps = append(apps, app)
	if err := saveApplications(ctx, t.kv, apps); err != nil {
		return nil, err
	}
	return &app, nil
}

// Update applies the non-nil fields of req. A status change appends to the
// history, using req.StatusNote when given.
func (t *Tracker) Update(ctx context.Context, id string, req types.UpdateApplicationRequest) (*types.JobApplication, error) {
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Message: "invalid update", Cause: err}
	}

	var updated types.JobApplication
	err := t.mutate(ctx, id, func(app *types.JobApplication) error {
		applyUpdate(app, req, t.now())
		updated = app.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func applyUpdate(app *types.JobApplication, req types.UpdateApplicationRequest, now time.Time) {
	setString(&app.Company, req.Company)
	setString(&app.Role, req.Role)
	setString(&app.WorkLocation, req.WorkLocation)
	setString(&app.AppliedDate, req.AppliedDate)
	setString(&app.InterviewLink, req.InterviewLink)
	setString(&app.Notes, req.Notes)
	setString(&app.Category, req.Category)
	setString(&app.JobPostingURL, req.JobPostingURL)
	setString(&app.InterviewDate, req.InterviewDate)
	setString(&app.FollowUpDate, req.FollowUpDate)

	if req.SalaryRange != nil {
		if req.SalaryRange.IsEmpty() {
			app.SalaryRange = nil
		} else {
			sr := *req.SalaryRange
			app.SalaryRange = &sr
		}
	}
	if req.JobType != nil {
		app.JobType = *req.JobType
	}
	if req.WorkMode != nil {
		app.WorkMode = *req.WorkMode
	}
	if req.ExperienceLevel != nil {
		app.ExperienceLevel = *req.ExperienceLevel
	}
	if req.Priority != nil {
		app.Priority = *req.Priority
	}

	if req.Status != nil && *req.Status != app.Status {
		note := req.StatusNote
		if note == "" {
			note = fmt.Sprintf("Status changed from %s to %s", app.Status, *req.Status)
		}
		app.StatusHistory = append(app.StatusHistory, types.StatusChange{
			Status: *req.Status,
			Date:   now,
			Note:   note,
		})
		app.Status = *req.Status
	}

	app.UpdatedAt = now
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// Delete removes an application. Its documents go back to the library
// unattached.
func (t *Tracker) Delete(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	apps, err := loadApplications(ctx, t.kv)
	if err != nil {
		return err
	}
	i := indexOf(apps, id)
	if i < 0 {
		return &NotFoundError{Kind: "application", ID: id}
	}

	docs := apps[i].Documents
	if len(docs) == 0 {
		return saveApplications(ctx, t.kv, slices.Delete(apps, i, i+1))
	}

	library, err := loadLibrary(ctx, t.kv)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		doc.ApplicationID = ""
		library = append(library, doc)
	}

	before := snapshot(apps)
	apps = slices.Delete(apps, i, i+1)
	return t.saveDocumentMove(ctx, before, apps, library)
}

// Archive hides an application from the default view without deleting it
func (t *Tracker) Archive(ctx context.Context, id string) error {
	return t.setArchived(ctx, id, true)
}

// Unarchive restores an archived application to the default view
func (t *Tracker) Unarchive(ctx context.Context, id string) error {
	return t.setArchived(ctx, id, false)
}

func (t *Tracker) setArchived(ctx context.Context, id string, archived bool) error {
	return t.mutate(ctx, id, func(app *types.JobApplication) error {
		app.Archived = archived
		app.UpdatedAt = t.now()
		return nil
	})
}

// AddContact validates req and attaches a new contact to the application
func (t *Tracker) AddContact(ctx context.Context, appID string, req types.ContactRequest) (*types.Contact, error) {
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Message: "invalid contact", Cause: err}
	}

	contact := types.Contact{
		ID:       t.newID(),
		Name:     req.Name,
		Title:    req.Title,
		Type:     req.Type,
		Email:    req.Email,
		Phone:    req.Phone,
		LinkedIn: req.LinkedIn,
		Notes:    req.Notes,
	}
	err := t.mutate(ctx, appID, func(app *types.JobApplication) error {
		app.Contacts = append(app.Contacts, contact)
		app.UpdatedAt = t.now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// RemoveContact deletes a contact from the application
func (t *Tracker) RemoveContact(ctx context.Context, appID, contactID string) error {
	return t.mutate(ctx, appID, func(app *types.JobApplication) error {
		i := slices.IndexFunc(app.Contacts, func(c types.Contact) bool { return c.ID == contactID })
		if i < 0 {
			return &NotFoundError{Kind: "contact", ID: contactID}
		}
		app.Contacts = slices.Delete(app.Contacts, i, i+1)
		app.UpdatedAt = t.now()
		return nil
	})
}

// AttachDocument moves a document out of the library and onto the application
func (t *Tracker) AttachDocument(ctx context.Context, appID, docID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	apps, err := loadApplications(ctx, t.kv)
	if err != nil {
		return err
	}
	i := indexOf(apps, appID)
	if i < 0 {
		return &NotFoundError{Kind: "application", ID: appID}
	}

	library, err := loadLibrary(ctx, t.kv)
	if err != nil {
		return err
	}
	j := slices.IndexFunc(library, func(d types.Document) bool { return d.ID == docID })
	if j < 0 {
		return &NotFoundError{Kind: "document", ID: docID}
	}

	before := snapshot(apps)
	doc := library[j]
	doc.ApplicationID = appID
	apps[i].Documents = append(apps[i].Documents, doc)
	apps[i].UpdatedAt = t.now()
	library = slices.Delete(library, j, j+1)

	return t.saveDocumentMove(ctx, before, apps, library)
}

// DetachDocument moves a document from the application back to the library
func (t *Tracker) DetachDocument(ctx context.Context, appID, docID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	apps, err := loadApplications(ctx, t.kv)
	if err != nil {
		return err
	}
	i := indexOf(apps, appID)
	if i < 0 {
		return &NotFoundError{Kind: "application", ID: appID}
	}
	j := slices.IndexFunc(apps[i].Documents, func(d types.Document) bool { return d.ID == docID })
	if j < 0 {
		return &NotFoundError{Kind: "document", ID: docID}
	}

	library, err := loadLibrary(ctx, t.kv)
	if err != nil {
		return err
	}
	before := snapshot(apps)
	doc := apps[i].Documents[j]
	doc.ApplicationID = ""
	library = append(library, doc)
	apps[i].Documents = slices.Delete(apps[i].Documents, j, j+1)
	apps[i].UpdatedAt = t.now()

	return t.saveDocumentMove(ctx, before, apps, library)
}

// saveDocumentMove writes apps and then library. If the library write fails
// the applications are rolled back to before, leaving both keys as they were.
func (t *Tracker) saveDocumentMove(ctx context.Context, before, apps []types.JobApplication, library []types.Document) error {
	if err := saveApplications(ctx, t.kv, apps); err != nil {
		return err
	}
	if err := saveLibrary(ctx, t.kv, library); err != nil {
		if rerr := saveApplications(ctx, t.kv, before); rerr != nil {
			log.Printf("[tracker] failed to roll back applications: %v", rerr)
		}
		return err
	}
	return nil
}

// snapshot copies apps deeply enough to survive in-place edits of the
// collection and of each record's documents
func snapshot(apps []types.JobApplication) []types.JobApplication {
	out := slices.Clone(apps)
	for i := range out {
		out[i].Documents = slices.Clone(out[i].Documents)
	}
	return out
}

// AutoProgress applies the suggestions eligible for automatic application and
// returns the ids of the applications whose status changed. Suggestions that
// would keep the current status, or whose application has since moved on or
// been deleted, are skipped.
func (t *Tracker) AutoProgress(ctx context.Context, suggestions []automation.StatusSuggestion) ([]string, error) {
	eligible := automation.Eligible(suggestions)
	if len(eligible) == 0 {
		return nil, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	apps, err := loadApplications(ctx, t.kv)
	if err != nil {
		return nil, err
	}

	now := t.now()
	var changed []string
	for _, s := range eligible {
		if s.SuggestedStatus == s.CurrentStatus {
			continue
		}
		i := indexOf(apps, s.ApplicationID)
		if i < 0 || apps[i].Status != s.CurrentStatus {
			continue
		}
		status := s.SuggestedStatus
		applyUpdate(&apps[i], types.UpdateApplicationRequest{
			Status:     &status,
			StatusNote: fmt.Sprintf("Automatically updated by rule %s: %s", s.RuleID, s.Reason),
		}, now)
		changed = append(changed, s.ApplicationID)
		log.Printf("[tracker] auto-progressed %s from %s to %s (confidence %.2f)",
			s.ApplicationID, s.CurrentStatus, s.SuggestedStatus, s.Confidence)
	}

	if len(changed) == 0 {
		return nil, nil
	}
	if err := saveApplications(ctx, t.kv, apps); err != nil {
		return nil, err
	}
	return changed, nil
}

// Import adds apps to the collection keeping their ids. With replace set the
// existing collection is discarded first; otherwise an id that is already
// stored is rejected and nothing is written.
func (t *Tracker) Import(ctx context.Context, apps []types.JobApplication, replace bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var existing []types.JobApplication
	if !replace {
		var err error
		existing, err = loadApplications(ctx, t.kv)
		if err != nil {
			return err
		}
	}

	seen := make(map[string]struct{}, len(existing)+len(apps))
	for _, app := range existing {
		seen[app.ID] = struct{}{}
	}

	now := t.now()
	merged := existing
	for _, app := range apps {
		if app.ID == "" {
			app.ID = t.newID()
		}
		if _, dup := seen[app.ID]; dup {
			return &DuplicateError{ID: app.ID}
		}
		seen[app.ID] = struct{}{}

		if !app.Status.Valid() {
			return &ValidationError{Message: fmt.Sprintf("application %s has invalid status %q", app.ID, app.Status)}
		}
		if len(app.StatusHistory) == 0 {
			app.StatusHistory = []types.StatusChange{{Status: app.Status, Date: now, Note: "Imported"}}
		}
		for k := range app.Documents {
			app.Documents[k].ApplicationID = app.ID
		}
		if app.CreatedAt.IsZero() {
			app.CreatedAt = now
		}
		if app.UpdatedAt.IsZero() {
			app.UpdatedAt = now
		}
		merged = append(merged, app)
	}

	return saveApplications(ctx, t.kv, merged)
}

// mutate loads the collection, applies fn to the application with id and
// saves the collection if fn succeeds
func (t *Tracker) mutate(ctx context.Context, id string, fn func(*types.JobApplication) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	apps, err := loadApplications(ctx, t.kv)
	if err != nil {
		return err
	}
	i := indexOf(apps, id)
	if i < 0 {
		return &NotFoundError{Kind: "application", ID: id}
	}
	if err := fn(&apps[i]); err != nil {
		return err
	}
	return saveApplications(ctx, t.kv, apps)
}

// collectionLocks maps each store.KV to the mutex guarding its application
// and library keys
var collectionLocks sync.Map

func lockFor(kv store.KV) *sync.Mutex {
	mu, _ := collectionLocks.LoadOrStore(kv, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func indexOf(apps []types.JobApplication, id string) int {
	return slices.IndexFunc(apps, func(a types.JobApplication) bool { return a.ID == id })
}

func loadApplications(ctx context.Context, kv store.KV) ([]types.JobApplication, error) {
	var apps []types.JobApplication
	if _, err := store.GetJSON(ctx, kv, store.KeyApplications, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func saveApplications(ctx context.Context, kv store.KV, apps []types.JobApplication) error {
	if apps == nil {
		apps = []types.JobApplication{}
	}
	return store.SetJSON(ctx, kv, store.KeyApplications, apps)
}
