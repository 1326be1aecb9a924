package workflows

import (
	"time"

	"github.com/ramiz7171/NoteMe-sub001/internal/audit"
	"github.com/ramiz7171/NoteMe-sub001/internal/store"
)

// CreateShare mints a share link for a file resource, optionally expiring.
func (s *Session) CreateShare(resourceID string, expiresAt *time.Time) (store.ShareLink, error) {
	link, err := s.Share.CreateLink(resourceID, expiresAt)
	if err != nil {
		return store.ShareLink{}, err
	}
	s.Trail.Log(audit.Entry{
		Operation:  "share.create",
		Outcome:    "ok",
		ShareID:    link.ShareID,
		ResourceID: resourceID,
	})
	return link, nil
}

// SetSharePassword sets or clears the password gate on every link for the
// resource. An empty password clears the gate.
func (s *Session) SetSharePassword(resourceID, password string) error {
	if err := s.Share.SetPassword(resourceID, password); err != nil {
		return err
	}
	op := "share.set_password"
	if password == "" {
		op = "share.clear_password"
	}
	s.Trail.Log(audit.Entry{Operation: op, Outcome: "ok", ResourceID: resourceID})
	return nil
}

// VerifyShare answers whether the password opens the link. Expired links
// are denied regardless of password; links without a password are open.
func (s *Session) VerifyShare(shareID, password string) (bool, error) {
	ok, err := s.Share.Verify(shareID, password)
	if err != nil {
		return false, err
	}
	outcome := "failed"
	if ok {
		outcome = "ok"
	}
	s.Trail.Log(audit.Entry{Operation: "share.verify", Outcome: outcome, ShareID: shareID})
	return ok, nil
}
