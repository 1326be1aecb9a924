package store

import (
	"fmt"
	"sync"

	kerrors "github.com/ramiz7171/NoteMe-sub001/internal/errors"
)

// In-memory implementations used by tests and as collaborator fakes.

type MemoryPreferenceStore struct {
	mu   sync.Mutex
	docs map[string]map[string]any
}

func NewMemoryPreferenceStore() *MemoryPreferenceStore {
	return &MemoryPreferenceStore{docs: make(map[string]map[string]any)}
}

func (s *MemoryPreferenceStore) Get(userID string) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]any, len(s.docs[userID]))
	for k, v := range s.docs[userID] {
		out[k] = v
	}
	return out, nil
}

func (s *MemoryPreferenceStore) Merge(userID string, patch map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.docs[userID]
	if doc == nil {
		doc = make(map[string]any)
		s.docs[userID] = doc
	}
	for k, v := range patch {
		doc[k] = v
	}
	return nil
}

func (s *MemoryPreferenceStore) Delete(userID string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.docs[userID], k)
	}
	return nil
}

// MemoryContentRepository is an ordered in-memory content repository. An
// optional UpdateErr hook injects per-item persist failures for migration
// tests.
type MemoryContentRepository struct {
	mu    sync.Mutex
	order []string
	items map[string]string

	// UpdateErr, when set, is consulted before each Update.
	UpdateErr func(id string) error
	// Updates counts Update calls, including failed ones.
	Updates int
}

func NewMemoryContentRepository(items ...Item) *MemoryContentRepository {
	r := &MemoryContentRepository{items: make(map[string]string)}
	for _, it := range items {
		r.order = append(r.order, it.ID)
		r.items[it.ID] = it.Content
	}
	return r
}

func (r *MemoryContentRepository) List(userID string) ([]Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Item, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, Item{ID: id, Content: r.items[id]})
	}
	return out, nil
}

func (r *MemoryContentRepository) Update(id, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Updates++
	if r.UpdateErr != nil {
		if err := r.UpdateErr(id); err != nil {
			return err
		}
	}
	if _, ok := r.items[id]; !ok {
		r.order = append(r.order, id)
	}
	r.items[id] = content
	return nil
}

// Content returns the stored content for direct assertions.
func (r *MemoryContentRepository) Content(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id]
}

type MemoryFileRepository struct {
	mu    sync.Mutex
	order []string
	blobs map[string]FileBlob
}

func NewMemoryFileRepository(blobs ...FileBlob) *MemoryFileRepository {
	r := &MemoryFileRepository{blobs: make(map[string]FileBlob)}
	for _, b := range blobs {
		r.order = append(r.order, b.ID)
		r.blobs[b.ID] = b
	}
	return r
}

func (r *MemoryFileRepository) List(userID string) ([]FileBlob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]FileBlob, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.blobs[id])
	}
	return out, nil
}

func (r *MemoryFileRepository) Update(id string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.blobs[id]
	if !ok {
		return fmt.Errorf("file not found: %s", id)
	}
	b.Data = data
	r.blobs[id] = b
	return nil
}

func (r *MemoryFileRepository) Get(id string) (FileBlob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.blobs[id]
	if !ok {
		return FileBlob{}, fmt.Errorf("file not found: %s", id)
	}
	return b, nil
}

type MemorySecretStore struct {
	mu   sync.Mutex
	hash string
}

func NewMemorySecretStore() *MemorySecretStore {
	return &MemorySecretStore{}
}

func (s *MemorySecretStore) PinHash() (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hash, s.hash != "", nil
}

func (s *MemorySecretStore) SetPinHash(hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hash = hash
	return nil
}

func (s *MemorySecretStore) DeletePinHash() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hash = ""
	return nil
}

type MemoryShareLinkStore struct {
	mu    sync.Mutex
	links map[string]ShareLink
}

func NewMemoryShareLinkStore() *MemoryShareLinkStore {
	return &MemoryShareLinkStore{links: make(map[string]ShareLink)}
}

func (s *MemoryShareLinkStore) Create(link ShareLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links[link.ShareID] = link
	return nil
}

func (s *MemoryShareLinkStore) Get(shareID string) (ShareLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	link, ok := s.links[shareID]
	if !ok {
		return ShareLink{}, kerrors.ErrShareNotFound
	}
	return link, nil
}

func (s *MemoryShareLinkStore) SetPasswordHash(resourceID, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	found := false
	for id, link := range s.links {
		if link.ResourceID == resourceID {
			link.PasswordHash = hash
			s.links[id] = link
			found = true
		}
	}
	if !found {
		return kerrors.ErrResourceNotShared
	}
	return nil
}

type MemoryRecoveryCodeStore struct {
	mu      sync.Mutex
	batches map[string]recoveryBatch
}

func NewMemoryRecoveryCodeStore() *MemoryRecoveryCodeStore {
	return &MemoryRecoveryCodeStore{batches: make(map[string]recoveryBatch)}
}

func (s *MemoryRecoveryCodeStore) Replace(userID, batchID string, hashes []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	batch := recoveryBatch{BatchID: batchID}
	for _, h := range hashes {
		batch.Codes = append(batch.Codes, recoveryCode{Hash: h})
	}
	s.batches[userID] = batch
	return nil
}

func (s *MemoryRecoveryCodeStore) Consume(userID, hash string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	batch, ok := s.batches[userID]
	if !ok {
		return false, kerrors.ErrNoRecoveryCodes
	}
	for i, c := range batch.Codes {
		if c.Hash == hash && !c.Used {
			batch.Codes[i].Used = true
			s.batches[userID] = batch
			return true, nil
		}
	}
	return false, nil
}
