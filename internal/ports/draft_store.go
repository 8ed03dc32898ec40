package ports

import (
	"context"

	"carrier-dispatch-service/internal/domain"
)

// Port: per-session persistence for in-progress drafts, so a reopened
// edit session resumes where it left off. Absence of a saved draft is
// not an error; LoadDraft returns nil for an unknown session.
type DraftSessionStore interface {
	SaveDraft(ctx context.Context, sessionID string, draft *domain.RouteLegDraft) error
	LoadDraft(ctx context.Context, sessionID string) (*domain.RouteLegDraft, error)
	DeleteDraft(ctx context.Context, sessionID string) error
}
