// Package chat manages the document-scoped conversation transcript.
// The transcript is append-only and local; the backend owns answer
// generation and persistent history, consumed through its contracts.
package chat

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/contractiq/console/internal/service"
	"github.com/contractiq/console/pkg/session"
)

// Role identifies the author of a transcript turn.
type Role string

// Transcript roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// TurnState is the lifecycle of an assistant turn: a placeholder is
// pending while the request is in flight, then resolves or fails.
type TurnState string

// Turn lifecycle states.
const (
	TurnPending  TurnState = "pending"
	TurnResolved TurnState = "resolved"
	TurnFailed   TurnState = "failed"
)

// Turn is one message in the transcript. Sources are attached only to
// resolved assistant turns.
type Turn struct {
	Role    Role
	State   TurnState
	Text    string
	Sources []service.SourceRef
}

const (
	welcomeText = "Your contract has been analyzed. Ask me anything about its clauses and risks."
	apologyText = "Sorry, I couldn't answer that. Please try again."
)

// ConversationalService is the collaborator contract the session consumes.
type ConversationalService interface {
	Chat(ctx context.Context, chat service.ChatRequest) (*service.ChatAnswer, error)
	History(ctx context.Context, sessionID string, limit int) ([]service.HistoryTurn, error)
	ClearSession(ctx context.Context, sessionID string) error
}

// Session holds the ordered transcript for one (session, document) pair
// and enforces single-flight send semantics.
type Session struct {
	svc      ConversationalService
	identity *session.Identity
	logger   *slog.Logger

	maxQuery     int
	historyLimit int

	mu         sync.Mutex
	inFlight   bool
	transcript []Turn
}

// New creates a Session starting from the welcome transcript.
func New(svc ConversationalService, identity *session.Identity, cfg *Config, logger *slog.Logger) *Session {
	return &Session{
		svc:          svc,
		identity:     identity,
		logger:       logger.With("component", "chat"),
		maxQuery:     cfg.MaxQueryLength,
		historyLimit: cfg.HistoryLimit,
		transcript:   welcome(),
	}
}

// BindDocument scopes the session to a newly analyzed document and
// starts a fresh local transcript. Server-side history for the session
// id is untouched; only an explicit Clear round-trips a deletion.
func (s *Session) BindDocument(documentID string) {
	s.identity.BindDocument(documentID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = welcome()
}

// Transcript returns a copy of the current transcript in append order.
func (s *Session) Transcript() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Turn, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Send submits one user query. The user turn and a pending assistant
// placeholder are appended before the network call; on response the
// placeholder resolves with the answer and its sources, on failure it
// becomes a local apology turn that is never sent upstream. A second
// Send while one is outstanding is rejected without network activity.
func (s *Session) Send(ctx context.Context, query string) (*Turn, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if len([]rune(query)) > s.maxQuery {
		return nil, ErrQueryTooLong
	}

	documentID := s.identity.DocumentID()
	if documentID == "" {
		return nil, ErrNoDocument
	}

	placeholder, err := s.begin(query)
	if err != nil {
		return nil, err
	}

	answer, err := s.svc.Chat(ctx, service.ChatRequest{
		SessionID:  s.identity.ID(),
		DocumentID: documentID,
		Query:      query,
	})
	if err != nil {
		s.resolve(placeholder, Turn{
			Role:  RoleAssistant,
			State: TurnFailed,
			Text:  apologyText,
		})
		s.logger.Warn("send failed", "error", err)
		return nil, err
	}

	turn := Turn{
		Role:    RoleAssistant,
		State:   TurnResolved,
		Text:    answer.Answer,
		Sources: answer.Sources,
	}
	s.resolve(placeholder, turn)
	return &turn, nil
}

// Clear deletes the server-side history for this session, then resets
// the local transcript to the welcome state. If the remote deletion
// fails, the local transcript is left untouched.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.svc.ClearSession(ctx, s.identity.ID()); err != nil {
		s.logger.Warn("clear failed", "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = welcome()
	return nil
}

// History reads persisted turns for this session from the service.
// Reads are idempotent and may interleave freely with sends. A limit
// of zero uses the configured default.
func (s *Session) History(ctx context.Context, limit int) ([]service.HistoryTurn, error) {
	if limit <= 0 {
		limit = s.historyLimit
	}
	return s.svc.History(ctx, s.identity.ID(), limit)
}

// begin appends the optimistic user turn and pending placeholder under
// the single-flight guard, returning the placeholder index.
func (s *Session) begin(query string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight {
		return 0, ErrSendInFlight
	}
	s.inFlight = true

	s.transcript = append(s.transcript,
		Turn{Role: RoleUser, State: TurnResolved, Text: query},
		Turn{Role: RoleAssistant, State: TurnPending},
	)
	return len(s.transcript) - 1, nil
}

// resolve replaces the pending placeholder and releases the
// single-flight guard. If the transcript was truncated by a concurrent
// Clear, the response is dropped.
func (s *Session) resolve(placeholder int, turn Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if placeholder < len(s.transcript) && s.transcript[placeholder].State == TurnPending {
		s.transcript[placeholder] = turn
	}
	s.inFlight = false
}

func welcome() []Turn {
	return []Turn{{
		Role:  RoleAssistant,
		State: TurnResolved,
		Text:  welcomeText,
	}}
}
