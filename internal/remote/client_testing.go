package remote

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	apperrors "github.com/triplogapp/triplog-server/internal/errors"
)

// FakeClient is an in-memory Client for tests. It records every call and
// can be told to fail specific paths, either a fixed number of times
// (transient failures) or with a permission-denied error.
type FakeClient struct {
	mu   sync.Mutex
	docs map[string]map[string]any

	// Call counters.
	SetCalls    int
	DeleteCalls int
	ListCalls   int

	failRemaining       map[string]int  // path -> remaining transient failures
	failDeleteRemaining map[string]int  // path -> remaining Delete-only failures
	denyPaths           map[string]bool // path -> always permission denied
	denyAll             bool
}

// NewFakeClient creates an empty fake document store.
func NewFakeClient() *FakeClient {
	return &FakeClient{
		docs:                make(map[string]map[string]any),
		failRemaining:       make(map[string]int),
		failDeleteRemaining: make(map[string]int),
		denyPaths:           make(map[string]bool),
	}
}

// FailNext makes the next n Set calls on path fail with a transient error.
func (f *FakeClient) FailNext(path string, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failRemaining[path] = n
}

// FailNextDelete makes the next n Delete calls on path fail with a
// transient error. Set and List on the same path stay unaffected.
func (f *FakeClient) FailNextDelete(path string, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failDeleteRemaining[path] = n
}

// DenyPath makes every operation on path fail with permission denied.
func (f *FakeClient) DenyPath(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.denyPaths[path] = true
}

// DenyAll makes every operation fail with permission denied, simulating a
// security-rule misconfiguration for the whole namespace.
func (f *FakeClient) DenyAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.denyAll = true
}

// Doc returns a copy of the stored document at path, or nil.
func (f *FakeClient) Doc(path string) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[path]
	if !ok {
		return nil
	}
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

// DocCount returns the number of stored documents.
func (f *FakeClient) DocCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.docs)
}

// SeedDoc stores a document directly, bypassing failure injection.
func (f *FakeClient) SeedDoc(path string, data map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[path] = data
}

func (f *FakeClient) checkFail(verb, path string) error {
	if f.denyAll || f.denyPaths[path] {
		return apperrors.PermissionDeniedf("%s %s", verb, path).
			WithCause(errors.New("rpc error: code = PermissionDenied desc = Missing or insufficient permissions."))
	}
	if n := f.failRemaining[path]; n > 0 {
		f.failRemaining[path] = n - 1
		return apperrors.Unavailablef("%s %s", verb, path).
			WithCause(errors.New("transport is closing"))
	}
	return nil
}

// Set implements Client.
func (f *FakeClient) Set(_ context.Context, path string, data map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SetCalls++

	if err := f.checkFail("write", path); err != nil {
		return err
	}

	// Resolve server timestamps the way Firestore would.
	stored := make(map[string]any, len(data))
	for k, v := range data {
		if v == firestore.ServerTimestamp {
			stored[k] = time.Now()
			continue
		}
		stored[k] = v
	}
	f.docs[path] = stored
	return nil
}

// Delete implements Client. Deleting a missing document succeeds.
func (f *FakeClient) Delete(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls++

	if err := f.checkFail("delete", path); err != nil {
		return err
	}
	if n := f.failDeleteRemaining[path]; n > 0 {
		f.failDeleteRemaining[path] = n - 1
		return apperrors.Unavailablef("delete %s", path).
			WithCause(errors.New("transport is closing"))
	}
	delete(f.docs, path)
	return nil
}

// List implements Client, returning documents directly inside path.
func (f *FakeClient) List(_ context.Context, path string) ([]Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++

	if err := f.checkFail("list", path); err != nil {
		return nil, err
	}

	prefix := path + "/"
	var docs []Document
	for docPath, data := range f.docs {
		if !strings.HasPrefix(docPath, prefix) {
			continue
		}
		id := strings.TrimPrefix(docPath, prefix)
		if strings.Contains(id, "/") {
			continue // document of a nested collection
		}
		// Copy so callers cannot mutate the stored document.
		out := make(map[string]any, len(data))
		for k, v := range data {
			out[k] = v
		}
		docs = append(docs, Document{ID: id, Data: out})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

// Close implements Client.
func (f *FakeClient) Close() error { return nil }
