// Package pipeline drives a document through the staged analysis run:
// upload, text extraction, clause analysis, risk calculation, completion.
// One run is active at a time; a run that fails stays failed until Reset.
package pipeline

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/contractiq/console/internal/service"
	"github.com/contractiq/console/pkg/risk"
)

// DocumentService is the collaborator contract the pipeline consumes.
type DocumentService interface {
	Upload(ctx context.Context, filename string, data io.Reader) (*service.UploadResult, error)
	Extract(ctx context.Context, documentID string) (*service.AnalysisResult, error)
}

// Observer receives each stage transition with its display step (1..5)
// and progress percentage. Transitions are delivered in order from the
// run's goroutine; observers must not call back into the pipeline.
type Observer func(stage Stage, step, percent int)

// File is the input to a run.
type File struct {
	Name string
	Size int64
	Data io.Reader
}

// Pipeline is the analysis run state machine.
type Pipeline struct {
	svc      DocumentService
	logger   *slog.Logger
	observer Observer

	maxUpload     int64
	dwellUpload   time.Duration
	dwellExtract  time.Duration
	dwellRisk     time.Duration
	dwellComplete time.Duration

	mu      sync.Mutex
	stage   Stage
	running bool
	failure error
}

// New creates a Pipeline. A nil observer disables progress reporting.
func New(svc DocumentService, cfg *Config, logger *slog.Logger, observer Observer) *Pipeline {
	return &Pipeline{
		svc:           svc,
		logger:        logger.With("component", "pipeline"),
		observer:      observer,
		maxUpload:     cfg.MaxUploadBytes(),
		dwellUpload:   cfg.DwellUploadDuration(),
		dwellExtract:  cfg.DwellExtractDuration(),
		dwellRisk:     cfg.DwellRiskDuration(),
		dwellComplete: cfg.DwellCompleteDuration(),
		stage:         StageIdle,
	}
}

// Stage returns the current stage.
func (p *Pipeline) Stage() Stage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stage
}

// Failure returns the error that moved the pipeline to Failed, if any.
func (p *Pipeline) Failure() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.failure
}

// Reset returns a terminal pipeline to Idle. Resetting an active run is
// rejected.
func (p *Pipeline) Reset() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return ErrRunActive
	}
	p.stage = StageIdle
	p.failure = nil
	return nil
}

// Run executes one complete analysis. The file is validated before any
// network activity; validation failures leave the pipeline in Idle. Any
// stage failure moves it to Failed, where it stays until Reset.
func (p *Pipeline) Run(ctx context.Context, file File) (*service.AnalysisResult, error) {
	if err := p.acquire(); err != nil {
		return nil, err
	}
	defer p.release()

	if err := validate(file, p.maxUpload); err != nil {
		p.logger.Warn("rejected file", "filename", file.Name, "size", file.Size, "error", err)
		return nil, err
	}

	p.transition(StageUploading)
	upload, err := p.svc.Upload(ctx, file.Name, file.Data)
	if err != nil {
		return nil, p.fail(StageUploading, "upload failed", err)
	}
	p.logger.Info("document uploaded",
		"document_id", upload.DocumentID,
		"pages", upload.PageCount,
	)
	if err := dwell(ctx, p.dwellUpload); err != nil {
		return nil, p.fail(StageUploading, "analysis cancelled", err)
	}

	// The extraction request is issued as soon as the stage begins; the
	// dwell only paces the visible step from text extraction to clause
	// analysis while the call is in flight.
	p.transition(StageExtractingText)

	var result *service.AnalysisResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := p.svc.Extract(gctx, upload.DocumentID)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	g.Go(func() error {
		if err := dwell(gctx, p.dwellExtract); err != nil {
			// extraction failed or the run was cancelled; that error wins
			return nil
		}
		p.transition(StageAnalyzingClauses)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, p.fail(p.Stage(), "clause extraction failed", err)
	}

	p.transition(StageCalculatingRisk)
	if err := dwell(ctx, p.dwellRisk); err != nil {
		return nil, p.fail(StageCalculatingRisk, "analysis cancelled", err)
	}

	p.transition(StageComplete)
	if err := dwell(ctx, p.dwellComplete); err != nil {
		// the result is already in hand; a cancelled completion dwell
		// does not fail the run
		p.logger.Debug("completion dwell interrupted", "error", err)
	}

	tier := risk.TierFor(result.OverallRiskLevel)
	p.logger.Info("analysis complete",
		"document_id", result.DocumentID,
		"clauses", len(result.Clauses),
		"overall_score", result.OverallRiskScore,
		"overall_tier", tier.Label,
	)
	return result, nil
}

func (p *Pipeline) acquire() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return ErrRunActive
	}
	p.running = true
	p.stage = StageIdle
	p.failure = nil
	return nil
}

func (p *Pipeline) release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.running = false
	if !p.stage.Terminal() {
		p.stage = StageIdle
	}
}

func (p *Pipeline) transition(stage Stage) {
	p.mu.Lock()
	p.stage = stage
	observer := p.observer
	p.mu.Unlock()

	p.logger.Debug("stage", "stage", stage.String(), "step", stage.Step())
	if observer != nil && stage.Step() > 0 {
		observer(stage, stage.Step(), stage.Percent())
	}
}

func (p *Pipeline) fail(at Stage, fallback string, err error) error {
	stageErr := stageError(at, fallback, err)

	p.mu.Lock()
	p.stage = StageFailed
	p.failure = stageErr
	p.mu.Unlock()

	p.logger.Error("run failed", "stage", at.String(), "error", err)
	return stageErr
}

func validate(file File, maxUpload int64) error {
	if file.Name == "" || file.Data == nil {
		return ErrEmptyFile
	}
	if !strings.EqualFold(filepath.Ext(file.Name), ".pdf") {
		return ErrNotPDF
	}
	// strict greater-than: a file exactly at the ceiling is accepted
	if file.Size > maxUpload {
		return ErrFileTooLarge
	}
	return nil
}

// dwell pauses for the stage's pacing budget, returning early only if
// the run is cancelled.
func dwell(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
