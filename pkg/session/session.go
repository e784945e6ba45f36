// Package session provides the identity that scopes a document conversation.
package session

import (
	"sync"

	"github.com/google/uuid"
)

// Identity holds the opaque session identifier and the document it is
// currently bound to. The identifier is generated once per process and
// survives document rebinding; Reset issues a fresh one.
type Identity struct {
	mu         sync.RWMutex
	id         string
	documentID string
}

// New creates an Identity with a freshly generated session identifier
// and no bound document.
func New() *Identity {
	return &Identity{id: uuid.NewString()}
}

// ID returns the session identifier.
func (i *Identity) ID() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.id
}

// DocumentID returns the currently bound document identifier, or empty
// if no analysis has completed yet.
func (i *Identity) DocumentID() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.documentID
}

// BindDocument rebinds the identity to a newly analyzed document.
func (i *Identity) BindDocument(documentID string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.documentID = documentID
}

// Reset generates a new session identifier and unbinds the document.
func (i *Identity) Reset() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.id = uuid.NewString()
	i.documentID = ""
}
