package reservations

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"cinebook/internal/shared/constants"

	"github.com/redis/go-redis/v9"
)

// RedisHoldMirror mirrors live holds into Redis so that abandoned holds
// expire by TTL even if the process never revisits them. All writes for
// one hold happen atomically via Lua scripts.
type RedisHoldMirror struct {
	redis *redis.Client
}

func NewRedisHoldMirror(redisClient *redis.Client) *RedisHoldMirror {
	return &RedisHoldMirror{
		redis: redisClient,
	}
}

// Lua script for atomic hold mirroring - one hold, all keys, one TTL
const luaStoreHold = `
-- KEYS[1] = hold key
-- KEYS[2] = user holds key
-- ARGV[1] = user_id
-- ARGV[2] = show_id
-- ARGV[3] = ttl_seconds
-- ARGV[4] = expires_at (RFC3339)
-- ARGV[5] = hold_id
-- ARGV[6..N] = seat keys

local hold_key = KEYS[1]
local user_holds_key = KEYS[2]
local user_id = ARGV[1]
local show_id = ARGV[2]
local ttl = tonumber(ARGV[3])
local expires_at = ARGV[4]
local hold_id = ARGV[5]

redis.call("HMSET", hold_key,
    "user_id", user_id,
    "show_id", show_id,
    "seat_count", #ARGV - 5,
    "expires_at", expires_at
)
redis.call("EXPIRE", hold_key, ttl)

for i = 6, #ARGV do
    redis.call("SETEX", ARGV[i], ttl, hold_id)
end

redis.call("SADD", user_holds_key, hold_id)
redis.call("EXPIRE", user_holds_key, ttl)

return 1
`

// Lua script for atomic hold removal
const luaDeleteHold = `
-- KEYS[1] = hold key
-- KEYS[2] = user holds key
-- ARGV[1] = hold_id
-- ARGV[2..N] = seat keys

local hold_key = KEYS[1]
local user_holds_key = KEYS[2]
local hold_id = ARGV[1]

for i = 2, #ARGV do
    redis.call("DEL", ARGV[i])
end

redis.call("SREM", user_holds_key, hold_id)
redis.call("DEL", hold_key)

return 1
`

// StoreHold writes the hold and its per-seat keys with the remaining TTL
func (m *RedisHoldMirror) StoreHold(ctx context.Context, hold *Hold) error {
	if m.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	ttl := time.Until(hold.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	keys := []string{
		constants.BuildHoldKey(hold.ID.String()),
		constants.BuildUserHoldsKey(hold.UserID.String()),
	}
	args := []interface{}{
		hold.UserID.String(),
		hold.ShowID.String(),
		strconv.Itoa(int(ttl.Seconds()) + 1),
		hold.ExpiresAt.Format(time.RFC3339),
		hold.ID.String(),
	}
	for _, idx := range hold.SeatIndices {
		args = append(args, constants.BuildHoldSeatKey(hold.ShowID.String(), idx))
	}

	// EvalSha first, fall back to Eval when the script is not loaded
	err := m.redis.EvalSha(ctx, luaStoreHold, keys, args...).Err()
	if err != nil {
		err = m.redis.Eval(ctx, luaStoreHold, keys, args...).Err()
		if err != nil {
			return fmt.Errorf("failed to mirror hold: %w", err)
		}
	}

	return nil
}

// DeleteHold removes the hold and its per-seat keys
func (m *RedisHoldMirror) DeleteHold(ctx context.Context, hold *Hold) error {
	if m.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	keys := []string{
		constants.BuildHoldKey(hold.ID.String()),
		constants.BuildUserHoldsKey(hold.UserID.String()),
	}
	args := []interface{}{hold.ID.String()}
	for _, idx := range hold.SeatIndices {
		args = append(args, constants.BuildHoldSeatKey(hold.ShowID.String(), idx))
	}

	err := m.redis.EvalSha(ctx, luaDeleteHold, keys, args...).Err()
	if err != nil {
		err = m.redis.Eval(ctx, luaDeleteHold, keys, args...).Err()
		if err != nil {
			return fmt.Errorf("failed to delete mirrored hold: %w", err)
		}
	}

	return nil
}

// PreloadScripts loads the Lua scripts into Redis for better performance
func (m *RedisHoldMirror) PreloadScripts(ctx context.Context) error {
	if m.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	if _, err := m.redis.ScriptLoad(ctx, luaStoreHold).Result(); err != nil {
		return fmt.Errorf("failed to load hold store script: %w", err)
	}

	if _, err := m.redis.ScriptLoad(ctx, luaDeleteHold).Result(); err != nil {
		return fmt.Errorf("failed to load hold delete script: %w", err)
	}

	return nil
}
