// Package console assembles the client subsystems into a single
// controller. It owns the service client, the analysis pipeline, the
// chat session, and the recorded analysis history, and holds the
// dashboard view for the most recent completed analysis.
package console

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/contractiq/console/internal/chat"
	"github.com/contractiq/console/internal/config"
	"github.com/contractiq/console/internal/dashboard"
	"github.com/contractiq/console/internal/history"
	"github.com/contractiq/console/internal/pipeline"
	"github.com/contractiq/console/internal/service"
	"github.com/contractiq/console/pkg/lifecycle"
	"github.com/contractiq/console/pkg/session"
)

// Console holds the client systems required by every command.
type Console struct {
	Config    *config.Config
	Logger    *slog.Logger
	Lifecycle *lifecycle.Coordinator
	Service   *service.Client
	Pipeline  *pipeline.Pipeline
	Chat      *chat.Session
	Identity  *session.Identity
	History   *history.Store

	mu   sync.RWMutex
	view *dashboard.View
}

// New creates a Console from the application configuration. The
// observer receives pipeline progress updates and may be nil.
func New(cfg *config.Config, observer pipeline.Observer) (*Console, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	svc, err := service.New(&cfg.Service, logger)
	if err != nil {
		return nil, fmt.Errorf("service init failed: %w", err)
	}

	store, err := history.Open(&cfg.History, logger)
	if err != nil {
		return nil, fmt.Errorf("history init failed: %w", err)
	}

	identity := session.New()
	lc := lifecycle.New()
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		if err := store.Close(); err != nil {
			logger.Error("history close failed", "error", err)
		}
	})

	return &Console{
		Config:    cfg,
		Logger:    logger,
		Lifecycle: lc,
		Service:   svc,
		Pipeline:  pipeline.New(svc, &cfg.Pipeline, logger, observer),
		Chat:      chat.New(svc, identity, &cfg.Chat, logger),
		Identity:  identity,
		History:   store,
	}, nil
}

// Analyze runs the full pipeline for a contract file, projects the
// result into a dashboard view, binds the chat session to the new
// document, and records the analysis. Recording failures are logged
// but do not fail the analysis.
func (c *Console) Analyze(ctx context.Context, file pipeline.File) (*dashboard.View, error) {
	result, err := c.Pipeline.Run(ctx, file)
	if err != nil {
		return nil, err
	}

	view := dashboard.Project(result)

	c.mu.Lock()
	c.view = &view
	c.mu.Unlock()

	c.Chat.BindDocument(result.DocumentID)

	if _, err := c.History.Record(ctx, result); err != nil {
		c.Logger.Error("failed to record analysis", "doc_id", result.DocumentID, "error", err)
	}

	return &view, nil
}

// View returns the dashboard view for the most recent completed
// analysis, or nil when no analysis has completed.
func (c *Console) View() *dashboard.View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.view
}
