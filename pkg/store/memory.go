package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ekalosak/graph3d/pkg/errors"
)

// MemStore is an in-memory Store for tests and ephemeral sessions.
type MemStore struct {
	mu   sync.RWMutex
	docs map[string]*SceneDoc
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{docs: make(map[string]*SceneDoc)}
}

// Save implements [Store].
func (s *MemStore) Save(ctx context.Context, doc *SceneDoc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.docs[doc.Name]; ok {
		doc.ID = prev.ID
		doc.CreatedAt = prev.CreatedAt
	}
	doc.UpdatedAt = time.Now().UTC()
	s.docs[doc.Name] = doc
	return nil
}

// Load implements [Store].
func (s *MemStore) Load(ctx context.Context, name string) (*SceneDoc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeSceneNotFound, "no scene named %q", name)
	}
	return doc, nil
}

// List implements [Store].
func (s *MemStore) List(ctx context.Context) ([]SceneInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	infos := make([]SceneInfo, 0, len(s.docs))
	for _, doc := range s.docs {
		infos = append(infos, SceneInfo{
			Name:      doc.Name,
			Kind:      doc.Kind,
			NodeCount: len(doc.Nodes),
			EdgeCount: len(doc.Edges),
			UpdatedAt: doc.UpdatedAt,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// Delete implements [Store].
func (s *MemStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[name]; !ok {
		return errors.New(errors.ErrCodeSceneNotFound, "no scene named %q", name)
	}
	delete(s.docs, name)
	return nil
}

// Close implements [Store].
func (s *MemStore) Close(ctx context.Context) error { return nil }

// Ensure MemStore implements Store.
var _ Store = (*MemStore)(nil)
