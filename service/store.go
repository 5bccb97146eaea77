// Package service holds the infrastructure collaborators: session storage,
// object storage, document parsing and the chat assistant client.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/SrinathBegudem/LEXSY-WEB-APP/config"
	"github.com/SrinathBegudem/LEXSY-WEB-APP/model"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// SessionStore persists document-filling sessions. Redis is the primary
// backend; when Redis is unreachable at startup the store degrades to an
// in-memory map so the service still works in development.
type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration

	mu          sync.RWMutex
	memory      map[string]*model.Session
	maxSessions int
}

// NewSessionStore connects to Redis and falls back to memory-only mode if
// the ping fails.
func NewSessionStore(cfg *config.RedisConfig) *SessionStore {
	s := &SessionStore{
		ttl:         time.Duration(cfg.SessionTimeoutHours) * time.Hour,
		memory:      make(map[string]*model.Session),
		maxSessions: cfg.MaxSessions,
	}

	if cfg.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			slog.Warn("redis unreachable, using in-memory session store", "addr", cfg.Addr, "error", err)
		} else {
			s.rdb = rdb
			slog.Info("session store connected to redis", "addr", cfg.Addr)
		}
	} else {
		slog.Info("no redis configured, using in-memory session store")
	}

	return s
}

// Save writes a session under its key with the configured TTL.
func (s *SessionStore) Save(ctx context.Context, session *model.Session) error {
	session.LastAccessedAt = time.Now()

	if s.rdb != nil {
		data, err := json.Marshal(session)
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}
		if err := s.rdb.Set(ctx, sessionKeyPrefix+session.ID, data, s.ttl).Err(); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.memory[session.ID] = session
	s.cleanupIfNeeded()
	return nil
}

// Get loads a session by ID. A nil session with nil error means not found
// or expired.
func (s *SessionStore) Get(ctx context.Context, id string) (*model.Session, error) {
	if s.rdb != nil {
		data, err := s.rdb.Get(ctx, sessionKeyPrefix+id).Bytes()
		if err == redis.Nil {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load session: %w", err)
		}
		var session model.Session
		if err := json.Unmarshal(data, &session); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session: %w", err)
		}
		return &session, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.memory[id]
	if !ok {
		return nil, nil
	}
	if s.ttl > 0 && time.Since(session.LastAccessedAt) > s.ttl {
		return nil, nil
	}
	return session, nil
}

// Delete removes a session.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if s.rdb != nil {
		if err := s.rdb.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.memory, id)
	return nil
}

// ListByUser returns summaries of the user's sessions, newest first.
func (s *SessionStore) ListByUser(ctx context.Context, username string) ([]model.SessionSummary, error) {
	sessions, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	var summaries []model.SessionSummary
	for _, session := range sessions {
		if session.Username == username {
			summaries = append(summaries, session.Summary())
		}
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries, nil
}

func (s *SessionStore) all(ctx context.Context) ([]*model.Session, error) {
	if s.rdb != nil {
		var sessions []*model.Session
		iter := s.rdb.Scan(ctx, 0, sessionKeyPrefix+"*", 100).Iterator()
		for iter.Next(ctx) {
			data, err := s.rdb.Get(ctx, iter.Val()).Bytes()
			if err != nil {
				continue // expired between scan and get
			}
			var session model.Session
			if err := json.Unmarshal(data, &session); err != nil {
				continue
			}
			sessions = append(sessions, &session)
		}
		if err := iter.Err(); err != nil {
			return nil, fmt.Errorf("failed to scan sessions: %w", err)
		}
		return sessions, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	sessions := make([]*model.Session, 0, len(s.memory))
	for _, session := range s.memory {
		sessions = append(sessions, session)
	}
	return sessions, nil
}

// cleanupIfNeeded removes oldest sessions if the memory store exceeds
// maxSessions. Must be called with lock held.
func (s *SessionStore) cleanupIfNeeded() {
	if s.maxSessions <= 0 {
		return // Unlimited
	}
	if len(s.memory) <= s.maxSessions {
		return
	}

	sessions := make([]*model.Session, 0, len(s.memory))
	for _, session := range s.memory {
		sessions = append(sessions, session)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	removeCount := len(sessions) - s.maxSessions
	for i := 0; i < removeCount; i++ {
		slog.Info("auto-cleaning old session",
			"session_id", sessions[i].ID,
			"created_at", sessions[i].CreatedAt,
		)
		delete(s.memory, sessions[i].ID)
	}
}

// Count returns the number of sessions in the memory store; -1 when Redis
// is the backend.
func (s *SessionStore) Count() int {
	if s.rdb != nil {
		return -1
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.memory)
}
