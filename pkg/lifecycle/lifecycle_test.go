package lifecycle_test

import (
	"testing"
	"time"

	"github.com/contractiq/console/pkg/lifecycle"
)

func TestContextCancelledOnShutdown(t *testing.T) {
	c := lifecycle.New()

	select {
	case <-c.Context().Done():
		t.Fatal("context cancelled before shutdown")
	default:
	}

	if err := c.Shutdown(time.Second); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}

	select {
	case <-c.Context().Done():
	default:
		t.Fatal("context not cancelled after shutdown")
	}
}

func TestShutdownRunsHooks(t *testing.T) {
	c := lifecycle.New()

	ran := make(chan struct{})
	c.OnShutdown(func() {
		<-c.Context().Done()
		close(ran)
	})

	if err := c.Shutdown(time.Second); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("shutdown hook did not run")
	}
}

func TestShutdownTimeout(t *testing.T) {
	c := lifecycle.New()

	block := make(chan struct{})
	defer close(block)
	c.OnShutdown(func() {
		<-block
	})

	if err := c.Shutdown(10 * time.Millisecond); err == nil {
		t.Fatal("expected timeout error from hung hook")
	}
}
