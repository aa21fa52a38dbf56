package console

import (
	"sync"

	"github.com/google/uuid"
)

// draftVault holds unsaved client-wizard drafts in memory, keyed by a draft
// identifier carried in the wizard URLs. Drafts never reach the backend
// until the final step submits.
type draftVault struct {
	mutex  sync.Mutex
	drafts map[string]map[string]string
}

func newDraftVault() *draftVault {
	return &draftVault{drafts: make(map[string]map[string]string)}
}

// Open returns the draft for the identifier, creating an empty one when the
// identifier is blank or unknown. The returned identifier is always usable.
func (vault *draftVault) Open(draftID string) (string, map[string]string) {
	vault.mutex.Lock()
	defer vault.mutex.Unlock()

	if draftID != "" {
		if draft, known := vault.drafts[draftID]; known {
			return draftID, copyDraft(draft)
		}
	}
	newID := uuid.NewString()
	vault.drafts[newID] = make(map[string]string)
	return newID, make(map[string]string)
}

// Merge folds the submitted step fields into the draft.
func (vault *draftVault) Merge(draftID string, fields map[string]string) {
	vault.mutex.Lock()
	defer vault.mutex.Unlock()

	draft, known := vault.drafts[draftID]
	if !known {
		draft = make(map[string]string)
		vault.drafts[draftID] = draft
	}
	for name, value := range fields {
		draft[name] = value
	}
}

// Discard removes the draft after the wizard completes or is abandoned.
func (vault *draftVault) Discard(draftID string) {
	vault.mutex.Lock()
	defer vault.mutex.Unlock()
	delete(vault.drafts, draftID)
}

func copyDraft(draft map[string]string) map[string]string {
	copied := make(map[string]string, len(draft))
	for name, value := range draft {
		copied[name] = value
	}
	return copied
}
