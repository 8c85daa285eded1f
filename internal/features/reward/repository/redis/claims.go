package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const claimKeyPrefix = "reward:claim:"

// ClaimStore guards reward issuance with a short-lived Redis key per
// (user, lesson), so concurrent completions of the same lesson issue at most
// one transfer while the ledger row is still being written.
type ClaimStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewClaimStore(client redis.UniversalClient, ttl time.Duration) *ClaimStore {
	return &ClaimStore{client: client, ttl: ttl}
}

func claimKey(userID, lessonID string) string {
	return fmt.Sprintf("%s%s:%s", claimKeyPrefix, userID, lessonID)
}

// Claim returns true when the caller won the right to issue the reward.
func (s *ClaimStore) Claim(ctx context.Context, userID, lessonID string) (bool, error) {
	ok, err := s.client.SetNX(ctx, claimKey(userID, lessonID), time.Now().Unix(), s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim reward: %w", err)
	}
	return ok, nil
}

// Release drops a claim whose reward was never sent.
func (s *ClaimStore) Release(ctx context.Context, userID, lessonID string) error {
	if err := s.client.Del(ctx, claimKey(userID, lessonID)).Err(); err != nil {
		return fmt.Errorf("failed to release reward claim: %w", err)
	}
	return nil
}
