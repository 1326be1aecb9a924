package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	kerrors "github.com/ramiz7171/NoteMe-sub001/internal/errors"
)

// FSPreferenceStore keeps every user's preference document in one JSON file.
type FSPreferenceStore struct {
	mu   sync.Mutex
	path string
}

func NewFSPreferenceStore(path string) *FSPreferenceStore {
	return &FSPreferenceStore{path: path}
}

func (s *FSPreferenceStore) load() (map[string]map[string]any, error) {
	docs := make(map[string]map[string]any)
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return docs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read preference store: %w", err)
	}
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to parse preference store: %w", err)
	}
	return docs, nil
}

func (s *FSPreferenceStore) save(docs map[string]map[string]any) error {
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

func (s *FSPreferenceStore) Get(userID string) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, err := s.load()
	if err != nil {
		return nil, err
	}
	doc := docs[userID]
	if doc == nil {
		doc = make(map[string]any)
	}
	return doc, nil
}

func (s *FSPreferenceStore) Merge(userID string, patch map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, err := s.load()
	if err != nil {
		return err
	}
	doc := docs[userID]
	if doc == nil {
		doc = make(map[string]any)
		docs[userID] = doc
	}
	for k, v := range patch {
		doc[k] = v
	}
	return s.save(docs)
}

func (s *FSPreferenceStore) Delete(userID string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, err := s.load()
	if err != nil {
		return err
	}
	doc := docs[userID]
	if doc == nil {
		return nil
	}
	for _, k := range keys {
		delete(doc, k)
	}
	return s.save(docs)
}

// FSContentRepository stores each item as one file in a notes directory. The
// file name is the item ID.
type FSContentRepository struct {
	dir string
}

func NewFSContentRepository(dir string) *FSContentRepository {
	return &FSContentRepository{dir: dir}
}

func (r *FSContentRepository) List(userID string) ([]Item, error) {
	entries, err := os.ReadDir(r.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	var items []Item
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		content, err := os.ReadFile(filepath.Join(r.dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read note %s: %w", e.Name(), err)
		}
		items = append(items, Item{ID: e.Name(), Content: string(content)})
	}
	// Deterministic order keeps migration progress reproducible.
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *FSContentRepository) Update(id, content string) error {
	if err := os.MkdirAll(r.dir, 0700); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(r.dir, id), []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to update note %s: %w", id, err)
	}
	return nil
}

// FSFileRepository stores attachment blobs in a directory with one JSON
// metadata sidecar carrying content types.
type FSFileRepository struct {
	mu  sync.Mutex
	dir string
}

func NewFSFileRepository(dir string) *FSFileRepository {
	return &FSFileRepository{dir: dir}
}

func (r *FSFileRepository) metaPath() string {
	return filepath.Join(r.dir, ".filemeta.json")
}

func (r *FSFileRepository) loadMeta() (map[string]string, error) {
	meta := make(map[string]string)
	data, err := os.ReadFile(r.metaPath())
	if os.IsNotExist(err) {
		return meta, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return meta, nil
}

func (r *FSFileRepository) saveMeta(meta map[string]string) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.metaPath(), data, 0600)
}

func (r *FSFileRepository) List(userID string) ([]FileBlob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries, err := os.ReadDir(r.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	meta, err := r.loadMeta()
	if err != nil {
		return nil, err
	}
	var blobs []FileBlob
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(r.dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", e.Name(), err)
		}
		blobs = append(blobs, FileBlob{ID: e.Name(), Data: data, ContentType: meta[e.Name()]})
	}
	sort.Slice(blobs, func(i, j int) bool { return blobs[i].ID < blobs[j].ID })
	return blobs, nil
}

func (r *FSFileRepository) Update(id string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := os.MkdirAll(r.dir, 0700); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(r.dir, id), data, 0600)
}

func (r *FSFileRepository) Get(id string) (FileBlob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	data, err := os.ReadFile(filepath.Join(r.dir, id))
	if err != nil {
		return FileBlob{}, fmt.Errorf("failed to read file %s: %w", id, err)
	}
	meta, err := r.loadMeta()
	if err != nil {
		return FileBlob{}, err
	}
	return FileBlob{ID: id, Data: data, ContentType: meta[id]}, nil
}

// Put stores a blob with its content type. Used to seed workspaces.
func (r *FSFileRepository) Put(id string, data []byte, contentType string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := os.MkdirAll(r.dir, 0700); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(r.dir, id), data, 0600); err != nil {
		return err
	}
	meta, err := r.loadMeta()
	if err != nil {
		return err
	}
	meta[id] = contentType
	return r.saveMeta(meta)
}

// deviceSecrets is the TOML document in the device-local secret store.
type deviceSecrets struct {
	Pin struct {
		Hash string `toml:"hash"`
	} `toml:"pin"`
}

// FSSecretStore persists the PIN hash in a 0600 TOML file under the user's
// config directory. It stands in for platform keychain storage.
type FSSecretStore struct {
	mu   sync.Mutex
	path string
}

func NewFSSecretStore(path string) *FSSecretStore {
	return &FSSecretStore{path: path}
}

func (s *FSSecretStore) load() (deviceSecrets, error) {
	var doc deviceSecrets
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return doc, nil
	}
	if _, err := toml.DecodeFile(s.path, &doc); err != nil {
		return doc, fmt.Errorf("failed to read device secrets: %w", err)
	}
	return doc, nil
}

func (s *FSSecretStore) save(doc deviceSecrets) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(doc)
}

func (s *FSSecretStore) PinHash() (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return "", false, err
	}
	return doc.Pin.Hash, doc.Pin.Hash != "", nil
}

func (s *FSSecretStore) SetPinHash(hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return err
	}
	doc.Pin.Hash = hash
	return s.save(doc)
}

func (s *FSSecretStore) DeletePinHash() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return err
	}
	doc.Pin.Hash = ""
	return s.save(doc)
}

// FSShareLinkStore persists share links in one JSON file. In production this
// table lives behind the server RPC boundary; the file plays that role here.
type FSShareLinkStore struct {
	mu   sync.Mutex
	path string
}

func NewFSShareLinkStore(path string) *FSShareLinkStore {
	return &FSShareLinkStore{path: path}
}

func (s *FSShareLinkStore) load() (map[string]ShareLink, error) {
	links := make(map[string]ShareLink)
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return links, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &links); err != nil {
		return nil, err
	}
	return links, nil
}

func (s *FSShareLinkStore) save(links map[string]ShareLink) error {
	data, err := json.MarshalIndent(links, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

func (s *FSShareLinkStore) Create(link ShareLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	links, err := s.load()
	if err != nil {
		return err
	}
	links[link.ShareID] = link
	return s.save(links)
}

func (s *FSShareLinkStore) Get(shareID string) (ShareLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	links, err := s.load()
	if err != nil {
		return ShareLink{}, err
	}
	link, ok := links[shareID]
	if !ok {
		return ShareLink{}, kerrors.ErrShareNotFound
	}
	return link, nil
}

func (s *FSShareLinkStore) SetPasswordHash(resourceID, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	links, err := s.load()
	if err != nil {
		return err
	}
	found := false
	for id, link := range links {
		if link.ResourceID == resourceID {
			link.PasswordHash = hash
			links[id] = link
			found = true
		}
	}
	if !found {
		return kerrors.ErrResourceNotShared
	}
	return s.save(links)
}

type recoveryBatch struct {
	BatchID string         `json:"batch_id"`
	Codes   []recoveryCode `json:"codes"`
}

type recoveryCode struct {
	Hash string `json:"hash"`
	Used bool   `json:"used"`
}

// FSRecoveryCodeStore persists hashed recovery code batches per user.
type FSRecoveryCodeStore struct {
	mu   sync.Mutex
	path string
}

func NewFSRecoveryCodeStore(path string) *FSRecoveryCodeStore {
	return &FSRecoveryCodeStore{path: path}
}

func (s *FSRecoveryCodeStore) load() (map[string]recoveryBatch, error) {
	batches := make(map[string]recoveryBatch)
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return batches, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &batches); err != nil {
		return nil, err
	}
	return batches, nil
}

func (s *FSRecoveryCodeStore) save(batches map[string]recoveryBatch) error {
	data, err := json.MarshalIndent(batches, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

func (s *FSRecoveryCodeStore) Replace(userID, batchID string, hashes []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	batches, err := s.load()
	if err != nil {
		return err
	}
	batch := recoveryBatch{BatchID: batchID}
	for _, h := range hashes {
		batch.Codes = append(batch.Codes, recoveryCode{Hash: h})
	}
	batches[userID] = batch
	return s.save(batches)
}

func (s *FSRecoveryCodeStore) Consume(userID, hash string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	batches, err := s.load()
	if err != nil {
		return false, err
	}
	batch, ok := batches[userID]
	if !ok {
		return false, kerrors.ErrNoRecoveryCodes
	}
	for i, c := range batch.Codes {
		if c.Hash == hash && !c.Used {
			batch.Codes[i].Used = true
			batches[userID] = batch
			if err := s.save(batches); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}
