package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/hotel-booking/internal/payment"
)

// DraftRepo parks checkout drafts in Redis between payment-intent
// creation and provider confirmation.  Drafts expire on their own so an
// abandoned checkout cleans itself up; an expired draft simply means
// the user must requote.
type DraftRepo struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewDraftRepo returns a DraftRepo.  A zero ttl defaults to one
// hour, which comfortably covers an interactive card entry.
func NewDraftRepo(rdb *redis.Client, ttl time.Duration) *DraftRepo {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &DraftRepo{rdb: rdb, ttl: ttl}
}

func draftKey(intentID string) string { return "checkout:draft:" + intentID }

// Save stores the draft under the intent id with the configured TTL.
func (r *DraftRepo) Save(ctx context.Context, intentID string, d payment.Draft) error {
	body, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, draftKey(intentID), body, r.ttl).Err()
}

// Load returns the draft for an intent id, or
// payment.ErrDraftNotFound when it expired or never existed.
func (r *DraftRepo) Load(ctx context.Context, intentID string) (payment.Draft, error) {
	raw, err := r.rdb.Get(ctx, draftKey(intentID)).Bytes()
	if err == redis.Nil {
		return payment.Draft{}, payment.ErrDraftNotFound
	}
	if err != nil {
		return payment.Draft{}, err
	}
	var d payment.Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return payment.Draft{}, err
	}
	return d, nil
}

// Delete removes a consumed draft.  Deleting a missing key is fine.
func (r *DraftRepo) Delete(ctx context.Context, intentID string) error {
	return r.rdb.Del(ctx, draftKey(intentID)).Err()
}
