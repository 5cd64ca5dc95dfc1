package tracker

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-tracker/internal/automation"
	"github.com/jonathan/job-tracker/internal/store"
	"github.com/jonathan/job-tracker/internal/types"
)

// Workspace is a read-only snapshot of everything the tracker stores
type Workspace struct {
	Applications []types.JobApplication
	Rules        []automation.StatusRule
	Library      []types.Document
}

// LoadWorkspace reads the three collections concurrently. Rules fall back to
// the defaults without writing them.
func LoadWorkspace(ctx context.Context, kv store.KV) (*Workspace, error) {
	ws := &Workspace{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		apps, err := loadApplications(gctx, kv)
		ws.Applications = apps
		return err
	})
	g.Go(func() error {
		rules, err := loadRules(gctx, kv, false)
		ws.Rules = rules
		return err
	})
	g.Go(func() error {
		docs, err := loadLibrary(gctx, kv)
		ws.Library = docs
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ws, nil
}
