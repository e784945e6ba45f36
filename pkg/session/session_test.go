package session_test

import (
	"testing"

	"github.com/contractiq/console/pkg/session"
)

func TestNewGeneratesID(t *testing.T) {
	id := session.New()
	if id.ID() == "" {
		t.Fatal("session id is empty")
	}
	if id.DocumentID() != "" {
		t.Errorf("new identity has document %q bound", id.DocumentID())
	}
}

func TestBindDocument(t *testing.T) {
	id := session.New()
	original := id.ID()

	id.BindDocument("d1")
	if id.DocumentID() != "d1" {
		t.Errorf("DocumentID() = %q, want d1", id.DocumentID())
	}
	if id.ID() != original {
		t.Error("binding a document must not change the session id")
	}

	// rebinding on a new analysis replaces the document
	id.BindDocument("d2")
	if id.DocumentID() != "d2" {
		t.Errorf("DocumentID() = %q, want d2", id.DocumentID())
	}
}

func TestReset(t *testing.T) {
	id := session.New()
	original := id.ID()
	id.BindDocument("d1")

	id.Reset()

	if id.ID() == original {
		t.Error("Reset() must generate a new session id")
	}
	if id.ID() == "" {
		t.Error("Reset() produced an empty session id")
	}
	if id.DocumentID() != "" {
		t.Error("Reset() must unbind the document")
	}
}
