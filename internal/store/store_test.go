package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	kerrors "github.com/ramiz7171/NoteMe-sub001/internal/errors"
)

func prefStores(t *testing.T) map[string]PreferenceStore {
	t.Helper()
	tempDir := t.TempDir()
	return map[string]PreferenceStore{
		"memory": NewMemoryPreferenceStore(),
		"fs":     NewFSPreferenceStore(filepath.Join(tempDir, "prefs.json")),
	}
}

func TestPreferenceStore_MergePreservesUnrelatedKeys(t *testing.T) {
	for name, prefs := range prefStores(t) {
		t.Run(name, func(t *testing.T) {
			if err := prefs.Merge("u1", map[string]any{"theme": "dark", "language": "en"}); err != nil {
				t.Fatalf("Merge failed: %v", err)
			}
			if err := prefs.Merge("u1", map[string]any{
				KeyEncryptionEnabled: true,
				KeyEncryptionSalt:    "c2FsdA==",
			}); err != nil {
				t.Fatalf("Merge failed: %v", err)
			}

			doc, err := prefs.Get("u1")
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if doc["theme"] != "dark" || doc["language"] != "en" {
				t.Errorf("merge clobbered unrelated keys: %v", doc)
			}
			if enabled, _ := doc[KeyEncryptionEnabled].(bool); !enabled {
				t.Error("merged key missing")
			}

			if err := prefs.Delete("u1", KeyEncryptionEnabled, KeyEncryptionSalt); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
			doc, _ = prefs.Get("u1")
			if _, present := doc[KeyEncryptionEnabled]; present {
				t.Error("Delete left the key behind instead of removing it")
			}
			if doc["theme"] != "dark" {
				t.Error("Delete removed an unrelated key")
			}
		})
	}
}

func TestReadEncryptionSettings(t *testing.T) {
	prefs := NewMemoryPreferenceStore()
	s, err := ReadEncryptionSettings(prefs, "u1")
	if err != nil {
		t.Fatalf("ReadEncryptionSettings failed: %v", err)
	}
	if s.Enabled || s.SaltB64 != "" || s.FileEncryptionEnabled {
		t.Errorf("empty document produced non-zero settings: %+v", s)
	}

	_ = prefs.Merge("u1", map[string]any{
		KeyEncryptionEnabled: true,
		KeyEncryptionSalt:    "c2FsdA==",
		KeyFileEncryption:    true,
	})
	s, _ = ReadEncryptionSettings(prefs, "u1")
	if !s.Enabled || s.SaltB64 != "c2FsdA==" || !s.FileEncryptionEnabled {
		t.Errorf("settings not read back: %+v", s)
	}
}

func TestReadIdleTimeout_JSONNumberDecoding(t *testing.T) {
	tempDir := t.TempDir()
	prefs := NewFSPreferenceStore(filepath.Join(tempDir, "prefs.json"))
	if err := prefs.Merge("u1", map[string]any{KeyIdleTimeoutMinutes: 15}); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	// Reload through a fresh store so the value round-trips JSON and comes
	// back as float64.
	reloaded := NewFSPreferenceStore(filepath.Join(tempDir, "prefs.json"))
	minutes, err := ReadIdleTimeoutMinutes(reloaded, "u1")
	if err != nil {
		t.Fatalf("ReadIdleTimeoutMinutes failed: %v", err)
	}
	if minutes != 15 {
		t.Errorf("minutes = %d, want 15", minutes)
	}
}

func TestFSContentRepository_ListAndUpdate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "notes")
	repo := NewFSContentRepository(dir)

	items, err := repo.List("u1")
	if err != nil || len(items) != 0 {
		t.Fatalf("empty dir List = %v, %v", items, err)
	}

	if err := repo.Update("b.md", "beta"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if err := repo.Update("a.md", "alpha"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	items, err = repo.List("u1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 2 || items[0].ID != "a.md" || items[1].ID != "b.md" {
		t.Errorf("List order wrong: %v", items)
	}
	if items[0].Content != "alpha" {
		t.Errorf("content = %q, want alpha", items[0].Content)
	}
}

func TestFSFileRepository_ContentTypeMetadata(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "files")
	repo := NewFSFileRepository(dir)

	if err := repo.Put("scan.pdf", []byte{0x25, 0x50, 0x44, 0x46}, "application/pdf"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	blob, err := repo.Get("scan.pdf")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if blob.ContentType != "application/pdf" {
		t.Errorf("content type = %q, want application/pdf", blob.ContentType)
	}

	// Updating the data must not disturb the content type.
	if err := repo.Update("scan.pdf", []byte{0xDE, 0xAD}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	blob, _ = repo.Get("scan.pdf")
	if blob.ContentType != "application/pdf" {
		t.Error("Update lost the content type metadata")
	}

	// The metadata sidecar must not surface as a blob.
	blobs, err := repo.List("u1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(blobs) != 1 {
		t.Errorf("List returned %d blobs, want 1", len(blobs))
	}
}

func TestFSSecretStore_PinLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device_secrets.toml")
	secrets := NewFSSecretStore(path)

	if _, ok, _ := secrets.PinHash(); ok {
		t.Fatal("fresh store reports a PIN")
	}
	if err := secrets.SetPinHash("$2a$10$fakehash"); err != nil {
		t.Fatalf("SetPinHash failed: %v", err)
	}
	hash, ok, err := secrets.PinHash()
	if err != nil || !ok || hash != "$2a$10$fakehash" {
		t.Fatalf("PinHash = %q, %v, %v", hash, ok, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("secret store permissions = %o, want 600", info.Mode().Perm())
	}

	if err := secrets.DeletePinHash(); err != nil {
		t.Fatalf("DeletePinHash failed: %v", err)
	}
	if _, ok, _ := secrets.PinHash(); ok {
		t.Error("PIN survived DeletePinHash")
	}
}

func TestRecoveryCodeStore_ConsumeOnce(t *testing.T) {
	stores := map[string]RecoveryCodeStore{
		"memory": NewMemoryRecoveryCodeStore(),
		"fs":     NewFSRecoveryCodeStore(filepath.Join(t.TempDir(), "recovery.json")),
	}
	for name, codes := range stores {
		t.Run(name, func(t *testing.T) {
			if _, err := codes.Consume("u1", "h1"); !errors.Is(err, kerrors.ErrNoRecoveryCodes) {
				t.Errorf("Consume before Replace error = %v, want ErrNoRecoveryCodes", err)
			}

			if err := codes.Replace("u1", "batch-1", []string{"h1", "h2"}); err != nil {
				t.Fatalf("Replace failed: %v", err)
			}
			ok, err := codes.Consume("u1", "h1")
			if err != nil || !ok {
				t.Fatalf("first Consume = %v, %v", ok, err)
			}
			ok, err = codes.Consume("u1", "h1")
			if err != nil || ok {
				t.Fatalf("replayed Consume = %v, %v, want false", ok, err)
			}

			// Replacing the batch invalidates remaining codes.
			if err := codes.Replace("u1", "batch-2", []string{"h3"}); err != nil {
				t.Fatalf("Replace failed: %v", err)
			}
			ok, _ = codes.Consume("u1", "h2")
			if ok {
				t.Error("code from a replaced batch still consumable")
			}
		})
	}
}

func TestShareLinkStore_SetPasswordHash(t *testing.T) {
	stores := map[string]ShareLinkStore{
		"memory": NewMemoryShareLinkStore(),
		"fs":     NewFSShareLinkStore(filepath.Join(t.TempDir(), "shares.json")),
	}
	for name, links := range stores {
		t.Run(name, func(t *testing.T) {
			if _, err := links.Get("missing"); !errors.Is(err, kerrors.ErrShareNotFound) {
				t.Errorf("Get missing error = %v, want ErrShareNotFound", err)
			}
			if err := links.SetPasswordHash("res-1", "h"); !errors.Is(err, kerrors.ErrResourceNotShared) {
				t.Errorf("SetPasswordHash on unshared resource error = %v, want ErrResourceNotShared", err)
			}

			if err := links.Create(ShareLink{ShareID: "s1", ResourceID: "res-1"}); err != nil {
				t.Fatalf("Create failed: %v", err)
			}
			if err := links.SetPasswordHash("res-1", "hash-value"); err != nil {
				t.Fatalf("SetPasswordHash failed: %v", err)
			}
			link, err := links.Get("s1")
			if err != nil || link.PasswordHash != "hash-value" {
				t.Fatalf("Get = %+v, %v", link, err)
			}

			// Empty hash clears the password.
			if err := links.SetPasswordHash("res-1", ""); err != nil {
				t.Fatalf("clearing failed: %v", err)
			}
			link, _ = links.Get("s1")
			if link.PasswordHash != "" {
				t.Error("password hash not cleared")
			}
		})
	}
}
