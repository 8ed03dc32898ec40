package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"carrier-dispatch-service/internal/domain"
	"carrier-dispatch-service/internal/platform/obs"

	"github.com/redis/go-redis/v9"
)

// DefaultDraftTTL bounds how long an abandoned edit session survives.
const DefaultDraftTTL = 24 * time.Hour

// Redis-backed implementation of the DraftSessionStore port. Drafts are
// stored as JSON under a per-session key with a TTL, so an abandoned
// session expires instead of lingering.
type RedisDraftStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisDraftStore(client *redis.Client) *RedisDraftStore {
	return &RedisDraftStore{Client: client, TTL: DefaultDraftTTL}
}

func draftKey(sessionID string) string {
	return "draft:" + sessionID
}

// Persist the draft for the session, refreshing its TTL.
func (s *RedisDraftStore) SaveDraft(ctx context.Context, sessionID string, draft *domain.RouteLegDraft) (err error) {
	defer obs.Time(ctx, "draft.cache.Save")(&err)

	if s.Client == nil {
		return errors.New("draft store: client is nil")
	}
	if sessionID == "" {
		return errors.New("save draft: sessionID must not be empty")
	}
	if draft == nil {
		return errors.New("save draft: draft is nil")
	}

	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("save draft %q: marshal: %w", sessionID, err)
	}

	ttl := s.TTL
	if ttl <= 0 {
		ttl = DefaultDraftTTL
	}

	if err := s.Client.Set(ctx, draftKey(sessionID), data, ttl).Err(); err != nil {
		return fmt.Errorf("save draft %q: %w", sessionID, err)
	}
	return nil
}

// Load the saved draft for the session; nil if none is saved.
func (s *RedisDraftStore) LoadDraft(ctx context.Context, sessionID string) (_ *domain.RouteLegDraft, err error) {
	defer obs.Time(ctx, "draft.cache.Load")(&err)

	if s.Client == nil {
		return nil, errors.New("draft store: client is nil")
	}

	data, err := s.Client.Get(ctx, draftKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load draft %q: %w", sessionID, err)
	}

	var draft domain.RouteLegDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("load draft %q: unmarshal: %w", sessionID, err)
	}
	return &draft, nil
}

// Discard the saved draft for the session. Deleting an absent draft is
// not an error.
func (s *RedisDraftStore) DeleteDraft(ctx context.Context, sessionID string) (err error) {
	defer obs.Time(ctx, "draft.cache.Delete")(&err)

	if s.Client == nil {
		return errors.New("draft store: client is nil")
	}

	if err := s.Client.Del(ctx, draftKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete draft %q: %w", sessionID, err)
	}
	return nil
}
