package workflows

import (
	"github.com/ramiz7171/NoteMe-sub001/internal/audit"
	"github.com/ramiz7171/NoteMe-sub001/internal/recovery"
)

// GenerateRecoveryCodes mints a fresh batch of one-time recovery codes,
// invalidating any previous batch. The plaintext codes are returned exactly
// once; only their hashes are stored.
func (s *Session) GenerateRecoveryCodes() ([]string, error) {
	codes, err := s.Recovery.Generate(s.UserID)
	if err != nil {
		return nil, err
	}
	s.Trail.Log(audit.Entry{
		Operation:   "recovery.generate",
		Outcome:     "ok",
		CodesIssued: len(codes),
	})
	return codes, nil
}

// VerifyRecoveryCode consumes a recovery code. A code verifies at most
// once: replaying a consumed code fails even if it is otherwise correct.
func (s *Session) VerifyRecoveryCode(code string) (bool, error) {
	ok, err := s.Recovery.Verify(s.UserID, code)
	if err != nil {
		return false, err
	}
	outcome := "failed"
	if ok {
		outcome = "ok"
	}
	s.Trail.Log(audit.Entry{Operation: "recovery.verify", Outcome: outcome})
	return ok, nil
}

// RecoveryBatchSize is the number of codes issued per batch.
const RecoveryBatchSize = recovery.BatchSize
