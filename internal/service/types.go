package service

import (
	"github.com/contractiq/console/pkg/risk"
)

// Reliability flags attached to clause findings by the extraction service.
const (
	FlagRequiresHumanVerification = "REQUIRES_HUMAN_VERIFICATION"
	FlagCriticalMissing           = "MISSING_CRITICAL"
)

// UploadResult is the service's response to a document upload.
type UploadResult struct {
	DocumentID string `json:"doc_id"`
	Filename   string `json:"filename"`
	FileSize   int64  `json:"file_size"`
	PageCount  int    `json:"num_pages"`
	Status     string `json:"status"`
	Message    string `json:"message"`
}

// ClauseFinding is one extracted-or-missing contractual clause with its
// risk assessment. RiskLevel is NOT_FOUND exactly when Found is false;
// Confidence is meaningful only when Found is true.
type ClauseFinding struct {
	ClauseType      string     `json:"clause_type"`
	ExtractedText   string     `json:"extracted_text,omitempty"`
	Confidence      float64    `json:"confidence"`
	RiskScore       float64    `json:"risk_score"`
	RiskLevel       risk.Level `json:"risk_level"`
	Found           bool       `json:"found"`
	PageNumber      *int       `json:"page_number,omitempty"`
	CharStart       *int       `json:"char_start,omitempty"`
	CharEnd         *int       `json:"char_end,omitempty"`
	ReliabilityFlag string     `json:"reliability_flag,omitempty"`
}

// AnalysisResult is the complete extraction output for one document.
// The aggregate fields (overall score/level and the per-tier counts) are
// computed by the service and carried through as delivered; the console
// never recomputes them from Clauses.
type AnalysisResult struct {
	DocumentID           string          `json:"doc_id"`
	Filename             string          `json:"filename"`
	OverallRiskScore     float64         `json:"overall_risk_score"`
	OverallRiskLevel     risk.Level      `json:"risk_level"`
	PageCount            int             `json:"num_pages"`
	Clauses              []ClauseFinding `json:"clauses"`
	HighCount            int             `json:"high_risk_count"`
	MediumCount          int             `json:"medium_risk_count"`
	LowCount             int             `json:"low_risk_count"`
	MissingCriticalCount int             `json:"missing_critical_count"`
}

// ChatRequest carries one user query scoped to a session and document.
type ChatRequest struct {
	SessionID  string `json:"session_id"`
	DocumentID string `json:"doc_id"`
	Query      string `json:"query"`
}

// SourceRef references a contract chunk or clause backing an answer.
type SourceRef struct {
	Text       string     `json:"text,omitempty"`
	Type       string     `json:"type,omitempty"`
	ClauseType string     `json:"clause_type,omitempty"`
	RiskLevel  risk.Level `json:"risk_level,omitempty"`
}

// ChatAnswer is the service's response to a chat request.
type ChatAnswer struct {
	SessionID  string      `json:"session_id"`
	DocumentID string      `json:"doc_id"`
	Query      string      `json:"query"`
	Answer     string      `json:"answer"`
	Sources    []SourceRef `json:"sources"`
}

// HistoryTurn is one persisted conversation turn as returned by the
// chat history endpoint.
type HistoryTurn struct {
	Turn      int    `json:"turn"`
	UserQuery string `json:"user_query"`
	Response  string `json:"ai_response"`
	Timestamp string `json:"timestamp"`
}

type historyResponse struct {
	SessionID string        `json:"session_id"`
	History   []HistoryTurn `json:"history"`
	Count     int           `json:"count"`
}

type clearResponse struct {
	Message      string `json:"message"`
	SessionID    string `json:"session_id"`
	DeletedTurns int    `json:"deleted_turns"`
}

type healthResponse struct {
	Status string `json:"status"`
}
