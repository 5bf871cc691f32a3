// Package docstore provides document-store engines implementing the
// persistence collaborator contract, plus typed repositories built on top.
package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"hive/internal/domain/service"

	"github.com/pkg/errors"
)

// memoryStore is the in-process engine. It reproduces the near-real-time
// semantics of a search store: Put lands in a pending generation that point
// Gets observe immediately, while Query only sees documents promoted by a
// Barrier. It doubles as the canonical fake for tests.
type memoryStore struct {
	mu      sync.RWMutex
	visible map[service.Collection]map[string]json.RawMessage
	pending map[service.Collection]map[string]json.RawMessage
	logger  *slog.Logger
}

// NewMemoryStore creates an empty in-process document store.
func NewMemoryStore(logger *slog.Logger) service.DocumentStore {
	return &memoryStore{
		visible: make(map[service.Collection]map[string]json.RawMessage),
		pending: make(map[service.Collection]map[string]json.RawMessage),
		logger:  logger,
	}
}

func (s *memoryStore) Put(ctx context.Context, collection service.Collection, key string, record any) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	raw, err := json.Marshal(record)
	if err != nil {
		return errors.Wrapf(err, "marshal document %s/%s", collection, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending[collection] == nil {
		s.pending[collection] = make(map[string]json.RawMessage)
	}
	s.pending[collection][key] = raw

	return nil
}

func (s *memoryStore) Get(ctx context.Context, collection service.Collection, key string, out any) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	s.mu.RLock()
	raw, ok := s.pending[collection][key]
	if !ok {
		raw, ok = s.visible[collection][key]
	}
	s.mu.RUnlock()

	if !ok {
		return service.ErrDocumentNotFound
	}

	return errors.Wrapf(json.Unmarshal(raw, out), "decode document %s/%s", collection, key)
}

func (s *memoryStore) Query(ctx context.Context, collection service.Collection, filter service.Filter, out any) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	s.mu.RLock()
	matched := make([]json.RawMessage, 0)
	for _, raw := range s.visible[collection] {
		ok, err := matchesFilter(raw, filter)
		if err != nil {
			s.mu.RUnlock()

			return err
		}
		if ok {
			matched = append(matched, raw)
		}
	}
	s.mu.RUnlock()

	return decodeDocuments(matched, out)
}

func (s *memoryStore) Barrier(ctx context.Context, collections ...service.Collection) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, collection := range collections {
		staged := s.pending[collection]
		if len(staged) == 0 {
			continue
		}
		if s.visible[collection] == nil {
			s.visible[collection] = make(map[string]json.RawMessage)
		}
		for key, raw := range staged {
			s.visible[collection][key] = raw
		}
		s.pending[collection] = nil
	}

	return nil
}

func (s *memoryStore) Close() error {
	return nil
}

// matchesFilter reports whether the document's top-level fields equal every
// filter value. Values are compared through their JSON encoding so numeric
// types from Go and decoded documents agree.
func matchesFilter(raw json.RawMessage, filter service.Filter) (bool, error) {
	if len(filter) == 0 {
		return true, nil
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return false, errors.Wrap(err, "decode document for filtering")
	}

	for field, want := range filter {
		got, ok := doc[field]
		if !ok {
			return false, nil
		}
		wantRaw, err := json.Marshal(want)
		if err != nil {
			return false, errors.Wrapf(err, "marshal filter value for %s", field)
		}
		if !bytes.Equal(bytes.TrimSpace(got), bytes.TrimSpace(wantRaw)) {
			return false, nil
		}
	}

	return true, nil
}

// decodeDocuments assembles raw documents into a JSON array and decodes it
// into out, which must be a pointer to a slice.
func decodeDocuments(docs []json.RawMessage, out any) error {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, raw := range docs {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(raw)
	}
	buf.WriteByte(']')

	return errors.Wrap(json.Unmarshal(buf.Bytes(), out), "decode query results")
}
