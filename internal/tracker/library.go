package tracker

import (
	"context"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/job-tracker/internal/store"
	"github.com/jonathan/job-tracker/internal/types"
)

// Library holds documents that are not attached to any application
type Library struct {
	kv    store.KV
	now   func() time.Time
	newID func() string
	mu    *sync.Mutex
}

// NewLibrary creates a Library over kv
func NewLibrary(kv store.KV) *Library {
	return &Library{
		kv:    kv,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
		mu:    lockFor(kv),
	}
}

// Upload validates req and adds the document to the library. A missing MIME
// type is sniffed from the content.
func (l *Library) Upload(ctx context.Context, req types.DocumentUploadRequest) (*types.Document, error) {
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Message: "invalid document", Cause: err}
	}

	mime := req.MimeType
	if mime == "" && len(req.Content) > 0 {
		mime = http.DetectContentType(req.Content)
	}
	doc := types.Document{
		ID:         l.newID(),
		Name:       req.Name,
		Type:       req.Type,
		UploadDate: l.now(),
		MimeType:   mime,
		Size:       len(req.Content),
		Content:    req.Content,
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	docs, err := loadLibrary(ctx, l.kv)
	if err != nil {
		return nil, err
	}
	docs = append(docs, doc)
	if err := saveLibrary(ctx, l.kv, docs); err != nil {
		return nil, err
	}
	return &doc, nil
}

// List returns the unattached documents
func (l *Library) List(ctx context.Context) ([]types.Document, error) {
	return loadLibrary(ctx, l.kv)
}

// Delete removes a document from the library
func (l *Library) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	docs, err := loadLibrary(ctx, l.kv)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(docs, func(d types.Document) bool { return d.ID == id })
	if i < 0 {
		return &NotFoundError{Kind: "document", ID: id}
	}
	return saveLibrary(ctx, l.kv, slices.Delete(docs, i, i+1))
}

func loadLibrary(ctx context.Context, kv store.KV) ([]types.Document, error) {
	var docs []types.Document
	if _, err := store.GetJSON(ctx, kv, store.KeyDocumentLibrary, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func saveLibrary(ctx context.Context, kv store.KV, docs []types.Document) error {
	if docs == nil {
		docs = []types.Document{}
	}
	return store.SetJSON(ctx, kv, store.KeyDocumentLibrary, docs)
}
