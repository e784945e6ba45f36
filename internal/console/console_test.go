package console_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/contractiq/console/internal/config"
	"github.com/contractiq/console/internal/console"
	"github.com/contractiq/console/internal/pipeline"
	"github.com/contractiq/console/internal/service"
	"github.com/contractiq/console/pkg/pagination"
	"github.com/contractiq/console/pkg/risk"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/upload/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(service.UploadResult{
			DocumentID: "d1",
			Filename:   "msa.pdf",
			FileSize:   2 * 1024 * 1024,
			PageCount:  12,
			Status:     "uploaded",
		})
	})
	mux.HandleFunc("/api/extract/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(service.AnalysisResult{
			DocumentID:       "d1",
			Filename:         "msa.pdf",
			OverallRiskScore: 72,
			OverallRiskLevel: risk.LevelHigh,
			PageCount:        12,
			Clauses: []service.ClauseFinding{
				{ClauseType: "Indemnification", Found: true, RiskScore: 85, RiskLevel: "HIGH", ExtractedText: "Party A shall indemnify"},
				{ClauseType: "Limitation of Liability", Found: true, RiskScore: 45, RiskLevel: "MEDIUM", ExtractedText: "Liability capped at fees paid"},
				{ClauseType: "Termination", Found: false, RiskLevel: "NOT_FOUND"},
			},
			HighCount:            1,
			MediumCount:          1,
			LowCount:             0,
			MissingCriticalCount: 1,
		})
	})
	mux.HandleFunc("/api/chat/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var req service.ChatRequest
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(service.ChatAnswer{
			SessionID:  req.SessionID,
			DocumentID: req.DocumentID,
			Answer:     "The indemnification clause is broad.",
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func fastConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()

	cfg := &config.Config{}
	cfg.Service.BaseURL = baseURL
	cfg.Pipeline.DwellUpload = "1ms"
	cfg.Pipeline.DwellExtract = "1ms"
	cfg.Pipeline.DwellRisk = "1ms"
	cfg.Pipeline.DwellComplete = "1ms"
	cfg.History.Path = filepath.Join(t.TempDir(), "history.db")
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	return cfg
}

func TestAnalyzeProjectsDashboard(t *testing.T) {
	srv := newBackend(t)
	cfg := fastConfig(t, srv.URL)

	var mu sync.Mutex
	var steps []int
	c, err := console.New(cfg, func(stage pipeline.Stage, step, percent int) {
		mu.Lock()
		steps = append(steps, step)
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer c.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration())

	if c.View() != nil {
		t.Error("View() before analysis should be nil")
	}

	view, err := c.Analyze(context.Background(), pipeline.File{
		Name: "msa.pdf",
		Size: 2 * 1024 * 1024,
		Data: strings.NewReader("%PDF-1.7 fake"),
	})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if view.OverallScore != 72 || view.OverallTier.Level != risk.LevelHigh {
		t.Errorf("view = score %.0f tier %s, want 72 HIGH", view.OverallScore, view.OverallTier.Level)
	}
	if view.GaugeRatio != 0.72 {
		t.Errorf("GaugeRatio = %v, want 0.72", view.GaugeRatio)
	}

	var order []risk.Level
	for _, row := range view.Clauses {
		order = append(order, row.Tier.Level)
	}
	want := []risk.Level{risk.LevelHigh, risk.LevelMedium, risk.LevelNotFound}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("clause order = %v, want %v", order, want)
		}
	}

	mu.Lock()
	gotSteps := append([]int(nil), steps...)
	mu.Unlock()
	for i, step := range gotSteps {
		if step != i+1 {
			t.Fatalf("progress steps = %v, want 1..5", gotSteps)
		}
	}
	if len(gotSteps) != 5 {
		t.Fatalf("got %d progress steps, want 5", len(gotSteps))
	}

	if c.View() == nil || c.View().DocumentID != "d1" {
		t.Error("View() not updated after analysis")
	}
}

func TestAnalyzeBindsChatAndRecordsHistory(t *testing.T) {
	srv := newBackend(t)
	cfg := fastConfig(t, srv.URL)

	c, err := console.New(cfg, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer c.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration())

	if _, err := c.Analyze(context.Background(), pipeline.File{
		Name: "msa.pdf",
		Size: 64,
		Data: bytes.NewReader(make([]byte, 64)),
	}); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if got, want := c.Identity.DocumentID(), "d1"; got != want {
		t.Errorf("Identity.DocumentID() = %q, want %q", got, want)
	}

	turn, err := c.Chat.Send(context.Background(), "How risky is indemnification?")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if turn.Text != "The indemnification clause is broad." {
		t.Errorf("answer = %q", turn.Text)
	}

	page, err := c.History.List(context.Background(), pagination.PageRequest{})
	if err != nil {
		t.Fatalf("History.List() error = %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("history total = %d, want 1", page.Total)
	}
	if page.Data[0].DocumentID != "d1" || page.Data[0].OverallRiskLevel != "HIGH" {
		t.Errorf("history record = %+v", page.Data[0])
	}
}

func TestAnalyzeValidationKeepsViewIntact(t *testing.T) {
	srv := newBackend(t)
	cfg := fastConfig(t, srv.URL)

	c, err := console.New(cfg, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer c.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration())

	if _, err := c.Analyze(context.Background(), pipeline.File{
		Name: "notes.txt",
		Size: 10,
		Data: strings.NewReader("not a pdf"),
	}); err == nil {
		t.Fatal("Analyze() accepted a non-PDF file")
	}
	if c.View() != nil {
		t.Error("View() should stay nil after a rejected file")
	}
}
