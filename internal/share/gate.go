// Package share implements the password gate for externally shared file
// links. The password hash lives behind the server RPC boundary and the
// verify call returns only a boolean, so the hash never reaches a client.
package share

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ramiz7171/NoteMe-sub001/internal/store"
)

// Gate is the server-side password check for share links.
type Gate struct {
	links store.ShareLinkStore
	now   func() time.Time
}

func NewGate(links store.ShareLinkStore) *Gate {
	return &Gate{links: links, now: time.Now}
}

// NewGateAt injects a clock for expiry tests.
func NewGateAt(links store.ShareLinkStore, now func() time.Time) *Gate {
	return &Gate{links: links, now: now}
}

// CreateLink mints a share link for a resource. Link ownership belongs to the
// files collaborator; this constructor exists so the gate can be exercised
// end to end.
func (g *Gate) CreateLink(resourceID string, expiresAt *time.Time) (store.ShareLink, error) {
	link := store.ShareLink{
		ShareID:    uuid.New().String(),
		ResourceID: resourceID,
		ExpiresAt:  expiresAt,
	}
	if err := g.links.Create(link); err != nil {
		return store.ShareLink{}, fmt.Errorf("failed to create share link: %w", err)
	}
	return link, nil
}

// SetPassword hashes and stores a password for every link of the resource.
// An empty password clears the gate.
func (g *Gate) SetPassword(resourceID, password string) error {
	if password == "" {
		return g.links.SetPasswordHash(resourceID, "")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return g.links.SetPasswordHash(resourceID, string(hash))
}

// Verify answers whether the supplied password opens the link. Expiry is
// checked first: an expired link is denied regardless of password. A link
// with no password set is open. Unknown links surface ErrShareNotFound;
// everything else is collapsed into the boolean so callers learn nothing
// about the stored hash.
func (g *Gate) Verify(shareID, password string) (bool, error) {
	link, err := g.links.Get(shareID)
	if err != nil {
		return false, err
	}
	if link.ExpiresAt != nil && !g.now().Before(*link.ExpiresAt) {
		return false, nil
	}
	if link.PasswordHash == "" {
		return true, nil
	}
	return bcrypt.CompareHashAndPassword([]byte(link.PasswordHash), []byte(password)) == nil, nil
}

// Protected reports whether a link currently requires a password. Used by
// status displays; does not reveal the hash.
func (g *Gate) Protected(shareID string) (bool, error) {
	link, err := g.links.Get(shareID)
	if err != nil {
		return false, err
	}
	return link.PasswordHash != "", nil
}
