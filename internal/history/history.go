// Package history records completed analysis runs in a local embedded
// database so past results remain listable after the console exits.
// Conversation history is not stored here; that persistence belongs to
// the analysis service.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/contractiq/console/internal/service"
	"github.com/contractiq/console/pkg/pagination"
	"github.com/contractiq/console/pkg/risk"
)

const schema = `
CREATE TABLE IF NOT EXISTS analyses (
	id TEXT PRIMARY KEY,
	doc_id TEXT NOT NULL,
	filename TEXT NOT NULL,
	page_count INTEGER NOT NULL,
	overall_risk_score REAL NOT NULL,
	overall_risk_level TEXT NOT NULL,
	high_count INTEGER NOT NULL,
	medium_count INTEGER NOT NULL,
	low_count INTEGER NOT NULL,
	missing_critical_count INTEGER NOT NULL,
	analyzed_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analyses_analyzed_at ON analyses (analyzed_at DESC);
`

// Record is one completed analysis run.
type Record struct {
	ID                   uuid.UUID  `json:"id"`
	DocumentID           string     `json:"doc_id"`
	Filename             string     `json:"filename"`
	PageCount            int        `json:"page_count"`
	OverallRiskScore     float64    `json:"overall_risk_score"`
	OverallRiskLevel     risk.Level `json:"overall_risk_level"`
	HighCount            int        `json:"high_count"`
	MediumCount          int        `json:"medium_count"`
	LowCount             int        `json:"low_count"`
	MissingCriticalCount int        `json:"missing_critical_count"`
	AnalyzedAt           time.Time  `json:"analyzed_at"`
}

// Store is the sqlite-backed run history.
type Store struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// Open opens (creating if necessary) the history database at the
// configured path.
func Open(cfg *Config, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}

	return &Store{
		db:         db,
		logger:     logger.With("component", "history"),
		pagination: cfg.Pagination,
	}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record persists one completed analysis.
func (s *Store) Record(ctx context.Context, result *service.AnalysisResult) (*Record, error) {
	rec := &Record{
		ID:                   uuid.New(),
		DocumentID:           result.DocumentID,
		Filename:             result.Filename,
		PageCount:            result.PageCount,
		OverallRiskScore:     result.OverallRiskScore,
		OverallRiskLevel:     result.OverallRiskLevel,
		HighCount:            result.HighCount,
		MediumCount:          result.MediumCount,
		LowCount:             result.LowCount,
		MissingCriticalCount: result.MissingCriticalCount,
		AnalyzedAt:           time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO analyses (
			id, doc_id, filename, page_count,
			overall_risk_score, overall_risk_level,
			high_count, medium_count, low_count, missing_critical_count,
			analyzed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID.String(), rec.DocumentID, rec.Filename, rec.PageCount,
		rec.OverallRiskScore, string(rec.OverallRiskLevel),
		rec.HighCount, rec.MediumCount, rec.LowCount, rec.MissingCriticalCount,
		rec.AnalyzedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("record analysis: %w", err)
	}

	s.logger.Info("analysis recorded",
		"document_id", rec.DocumentID,
		"filename", rec.Filename,
		"level", rec.OverallRiskLevel,
	)
	return rec, nil
}

// List returns a page of past runs, most recent first.
func (s *Store) List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Record], error) {
	page.Normalize(s.pagination)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM analyses`).Scan(&total); err != nil {
		return nil, fmt.Errorf("count analyses: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, doc_id, filename, page_count,
			overall_risk_score, overall_risk_level,
			high_count, medium_count, low_count, missing_critical_count,
			analyzed_at
		FROM analyses
		ORDER BY analyzed_at DESC
		LIMIT ? OFFSET ?`,
		page.PageSize, page.Offset(),
	)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var id, level string
		if err := rows.Scan(
			&id, &rec.DocumentID, &rec.Filename, &rec.PageCount,
			&rec.OverallRiskScore, &level,
			&rec.HighCount, &rec.MediumCount, &rec.LowCount, &rec.MissingCriticalCount,
			&rec.AnalyzedAt,
		); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		rec.ID, _ = uuid.Parse(id)
		rec.OverallRiskLevel = risk.Level(level)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate analyses: %w", err)
	}

	result := pagination.NewPageResult(records, total, page.Page, page.PageSize)
	return &result, nil
}
