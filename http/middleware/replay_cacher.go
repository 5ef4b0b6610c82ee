package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// replayTTL is how long a cached response can be replayed before expiring.
const replayTTL = 24 * time.Hour

var (
	replayLock sync.Mutex
	_          ReplayCacher = make(ReplayMap)
	_          ReplayCacher = ReplayRedis{}
)

// A ReplayCacher can store responses paired to replay keys.
//
// A ReplayCacher ought return a newly initialized ReplayRecord
// when a key does not match an existing ReplayRecord.
type ReplayCacher interface {
	Get(ctx context.Context, key string) (ReplayRecord, bool)
	Set(ctx context.Context, key string, rec ReplayRecord)
}

// A ReplayMap stores replay key, ReplayRecord value pairs in a map.
//
// Server restarts reset this map.
// A ReplayMap ought not be used for production environments.
type ReplayMap map[string]ReplayMapVal

// NewReplayMap initializes a ReplayMap
// for use in a Replay middleware as a cache.
func NewReplayMap() ReplayMap { return make(ReplayMap) }

// A ReplayMapVal is stored in a ReplayMap,
// wrapping a ReplayRecord.
type ReplayMapVal struct {
	ReplayRecord

	at time.Time
}

// Get retrieves the result of the request matching the replay key
// much like a regular map.
func (m ReplayMap) Get(ctx context.Context, key string) (ReplayRecord, bool) {
	if key == "" {
		return ReplayRecord{}, false
	}

	select {
	case <-ctx.Done():
		return ReplayRecord{}, false

	default:
		replayLock.Lock()
		defer replayLock.Unlock()

		v, ok := m[key]
		return v.ReplayRecord, ok
	}
}

// Set overwrites the value paired to key in the map.
//
// For each call to Set, keys older than replayTTL are evicted.
func (m ReplayMap) Set(ctx context.Context, key string, rec ReplayRecord) {
	select {
	case <-ctx.Done():
		return
	default:
		replayLock.Lock()
		defer replayLock.Unlock()

		stale := time.Now().Add(-replayTTL)
		for k, v := range m {
			if v.at.Before(stale) {
				delete(m, k)
			}
		}

		m[key] = ReplayMapVal{ReplayRecord: rec, at: time.Now()}
	}
}

// A ReplayRedis connects to a Redis backend
// for the purposes of caching replayable responses.
type ReplayRedis struct {
	client *redis.Client
}

// NewRedisCache constructs a ReplayRedis with the options passed in.
func NewRedisCache(opts *redis.Options) ReplayRedis {
	return ReplayRedis{client: redis.NewClient(opts)}
}

// Get retrieves the ReplayRecord paired to key from the connected Redis backend.
func (rr ReplayRedis) Get(ctx context.Context, key string) (ReplayRecord, bool) {
	select {
	case <-ctx.Done():
		return ReplayRecord{}, false
	default:
		b, err := rr.client.Get(ctx, key).Bytes()
		if err != nil {
			return ReplayRecord{}, false
		}

		rec := new(ReplayRecord)
		if err := rec.GobDecode(b); err != nil {
			return ReplayRecord{}, false
		}

		return *rec, true
	}
}

// Set saves the ReplayRecord by pairing it to the key in the Redis backend,
// expiring it after replayTTL.
func (rr ReplayRedis) Set(ctx context.Context, key string, rec ReplayRecord) {
	select {
	case <-ctx.Done():
		return
	default:
		b, err := rec.GobEncode()
		if err != nil {
			return
		}
		rr.client.Set(ctx, key, b, replayTTL)
	}
}
