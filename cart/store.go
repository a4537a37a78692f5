package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"cwarett/models"

	"github.com/redis/go-redis/v9"
)

// Store mirrors cart snapshots durably across sessions. Load must degrade
// to an empty snapshot on missing or corrupt data, never fail startup.
type Store interface {
	Save(ctx context.Context, sessionID string, snap models.CartSnapshot) error
	Load(ctx context.Context, sessionID string) (models.CartSnapshot, error)
}

const snapshotKeyPrefix = "cart:snapshot:"

// carts that sit untouched for this long are forgotten
const snapshotTTL = 30 * 24 * time.Hour

func emptySnapshot() models.CartSnapshot {
	return models.CartSnapshot{Items: []models.CartLineItem{}}
}

// RedisStore keeps one JSON-encoded snapshot per session under a fixed key
// prefix.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, snap models.CartSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		// nothing useful the caller can do; skip the write
		log.Println("cart store: marshal failed:", err)
		return nil
	}
	return s.client.Set(ctx, snapshotKeyPrefix+sessionID, data, snapshotTTL).Err()
}

// Load returns the persisted snapshot, or an empty one when the key is
// absent, the payload is not valid JSON, or any line fails validation.
// Aggregates are recomputed from the lines rather than trusted.
func (s *RedisStore) Load(ctx context.Context, sessionID string) (models.CartSnapshot, error) {
	data, err := s.client.Get(ctx, snapshotKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return emptySnapshot(), nil
	}
	if err != nil {
		return emptySnapshot(), err
	}

	var snap models.CartSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Println("cart store: corrupt snapshot for session", sessionID, ":", err)
		return emptySnapshot(), nil
	}
	if !validSnapshot(snap) {
		log.Println("cart store: invalid snapshot for session", sessionID)
		return emptySnapshot(), nil
	}

	out := emptySnapshot()
	out.Items = append(out.Items, snap.Items...)
	for _, it := range out.Items {
		out.ItemCount += it.Quantity
		out.Total += it.UnitPrice * float64(it.Quantity)
	}
	return out, nil
}

func validSnapshot(snap models.CartSnapshot) bool {
	for _, it := range snap.Items {
		if it.ID == "" || it.UnitPrice < 0 || it.Quantity < 1 {
			return false
		}
	}
	return true
}
