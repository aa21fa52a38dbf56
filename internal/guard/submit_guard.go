package guard

import "sync"

// SubmitGuard prevents duplicate submissions: while a mutation identified by
// a key is outstanding, further attempts with the same key are rejected
// instead of dispatching a second backend request.
type SubmitGuard struct {
	mutex    sync.Mutex
	inFlight map[string]struct{}
}

// NewSubmitGuard constructs an empty SubmitGuard.
func NewSubmitGuard() *SubmitGuard {
	return &SubmitGuard{inFlight: make(map[string]struct{})}
}

// Begin marks the key as in flight. It reports false when an identical
// submission is already outstanding, in which case the caller must not
// dispatch and must not call End.
func (guard *SubmitGuard) Begin(submissionKey string) bool {
	guard.mutex.Lock()
	defer guard.mutex.Unlock()
	if _, outstanding := guard.inFlight[submissionKey]; outstanding {
		return false
	}
	guard.inFlight[submissionKey] = struct{}{}
	return true
}

// End releases the key after the submission settles. Releasing a key that is
// not outstanding is a no-op.
func (guard *SubmitGuard) End(submissionKey string) {
	guard.mutex.Lock()
	defer guard.mutex.Unlock()
	delete(guard.inFlight, submissionKey)
}
