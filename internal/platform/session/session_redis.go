// Package session stores refresh-token sessions in Redis.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"auction_backend/internal/feature/auth/domain/entity"
	"auction_backend/internal/feature/auth/usecase"
)

// SessionRedis implements usecase.SessionRepository using Redis.
//
// Each session lives under <prefix>:<token> with a TTL equal to its remaining
// lifetime, and <prefix>:user:<id> is a set indexing the user's tokens.
// Revoked sessions keep their key until expiry so a reused token can still
// be recognised.
type SessionRedis struct {
	client *redis.Client
	prefix string
}

var _ usecase.SessionRepository = (*SessionRedis)(nil)

// NewSessionRedis creates a new SessionRedis instance.
func NewSessionRedis(client *redis.Client, prefix string) *SessionRedis {
	return &SessionRedis{
		client: client,
		prefix: prefix,
	}
}

func (r *SessionRedis) sessionKey(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}

func (r *SessionRedis) userSessionsKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d", r.prefix, userID)
}

func (r *SessionRedis) save(ctx context.Context, pipe redis.Cmdable, s *entity.Session, ttl time.Duration) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return pipe.Set(ctx, r.sessionKey(s.ID), data, ttl).Err()
}

// Create stores the session and indexes it under its user.
func (r *SessionRedis) Create(ctx context.Context, s *entity.Session) error {
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session already expired")
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if err := r.save(ctx, pipe, s, ttl); err != nil {
			return err
		}
		pipe.SAdd(ctx, r.userSessionsKey(s.UserID), s.ID)
		return nil
	})
	return err
}

// FindByID returns the session, including revoked ones that have not expired yet.
func (r *SessionRedis) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	return r.load(ctx, r.client, id)
}

func (r *SessionRedis) load(ctx context.Context, c redis.Cmdable, id string) (*entity.Session, error) {
	data, err := c.Get(ctx, r.sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, usecase.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var s entity.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &s, nil
}

// liveSessions returns the user's live sessions, oldest first. Index entries
// whose key has expired are dropped on the way.
func (r *SessionRedis) liveSessions(ctx context.Context, userID uint) ([]*entity.Session, error) {
	ids, err := r.client.SMembers(ctx, r.userSessionsKey(userID)).Result()
	if err != nil {
		return nil, err
	}

	var sessions []*entity.Session
	for _, id := range ids {
		s, err := r.load(ctx, r.client, id)
		if errors.Is(err, usecase.ErrSessionNotFound) {
			r.client.SRem(ctx, r.userSessionsKey(userID), id)
			continue
		}
		if err != nil {
			return nil, err
		}
		if s.IsValid() {
			sessions = append(sessions, s)
		}
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].CreatedAt.Before(sessions[j].CreatedAt) })
	return sessions, nil
}

// Revoke marks the session revoked and keeps its remaining TTL.
func (r *SessionRedis) Revoke(ctx context.Context, id string) error {
	_, err := r.RevokeIfLive(ctx, id)
	return err
}

// RevokeIfLive revokes the session under WATCH and reports whether this call
// committed the revocation. A write to the key between the read and EXEC
// aborts the transaction and counts as a lost race.
func (r *SessionRedis) RevokeIfLive(ctx context.Context, id string) (bool, error) {
	key := r.sessionKey(id)
	revoked := false
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		s, err := r.load(ctx, tx, id)
		if err != nil {
			return err
		}
		if s.IsRevoked() {
			return nil
		}

		now := time.Now()
		s.RevokedAt = &now
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			return r.save(ctx, pipe, s, redis.KeepTTL)
		})
		if err != nil {
			return err
		}
		revoked = true
		return nil
	}, key)
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return revoked, nil
}

// RevokeAllByUserID revokes every indexed session of the user.
func (r *SessionRedis) RevokeAllByUserID(ctx context.Context, userID uint) error {
	ids, err := r.client.SMembers(ctx, r.userSessionsKey(userID)).Result()
	if err != nil {
		return err
	}

	for _, id := range ids {
		if err := r.Revoke(ctx, id); err != nil && !errors.Is(err, usecase.ErrSessionNotFound) {
			return err
		}
	}
	return nil
}

// DeleteExpired prunes index entries whose session key Redis has already
// expired. It returns the number of entries removed.
func (r *SessionRedis) DeleteExpired(ctx context.Context) (int64, error) {
	var removed int64
	iter := r.client.Scan(ctx, 0, r.prefix+":user:*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if _, err := strconv.ParseUint(strings.TrimPrefix(key, r.prefix+":user:"), 10, 64); err != nil {
			continue
		}
		ids, err := r.client.SMembers(ctx, key).Result()
		if err != nil {
			return removed, err
		}
		for _, id := range ids {
			n, err := r.client.Exists(ctx, r.sessionKey(id)).Result()
			if err != nil {
				return removed, err
			}
			if n == 0 {
				if err := r.client.SRem(ctx, key, id).Err(); err != nil {
					return removed, err
				}
				removed++
			}
		}
	}
	if err := iter.Err(); err != nil {
		return removed, err
	}
	if removed > 0 {
		log.WithField("removed", removed).Debug("pruned expired session index entries")
	}
	return removed, nil
}

// CountByUserID returns the number of live sessions of the user.
func (r *SessionRedis) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	sessions, err := r.liveSessions(ctx, userID)
	if err != nil {
		return 0, err
	}
	return int64(len(sessions)), nil
}

// DeleteOldestByUserID deletes the user's oldest live session.
func (r *SessionRedis) DeleteOldestByUserID(ctx context.Context, userID uint) error {
	sessions, err := r.liveSessions(ctx, userID)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		return nil
	}

	oldest := sessions[0]
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.sessionKey(oldest.ID))
		pipe.SRem(ctx, r.userSessionsKey(userID), oldest.ID)
		return nil
	})
	return err
}
