package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/example/holidaze/internal/holidaze"
)

const venueListPrefix = "holidaze:venues:"

// VenuePage is one cached venue list response.
type VenuePage struct {
	Venues []holidaze.Venue  `json:"venues"`
	Meta   holidaze.PageMeta `json:"meta"`
}

type Venues interface {
	Get(ctx context.Context, q holidaze.VenueQuery) (VenuePage, bool, error)
	Set(ctx context.Context, q holidaze.VenueQuery, page VenuePage) error
	Invalidate(ctx context.Context) error
}

// NopVenues never hits.
type NopVenues struct{}

func (NopVenues) Get(context.Context, holidaze.VenueQuery) (VenuePage, bool, error) {
	return VenuePage{}, false, nil
}
func (NopVenues) Set(context.Context, holidaze.VenueQuery, VenuePage) error { return nil }
func (NopVenues) Invalidate(context.Context) error                         { return nil }

type RedisVenues struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisVenues(client *redis.Client, ttl time.Duration) *RedisVenues {
	return &RedisVenues{client: client, ttl: ttl}
}

func venueListKey(q holidaze.VenueQuery) string {
	return venueListPrefix + q.Key()
}

func (c *RedisVenues) Get(ctx context.Context, q holidaze.VenueQuery) (VenuePage, bool, error) {
	data, err := c.client.Get(ctx, venueListKey(q)).Bytes()
	if err == redis.Nil {
		return VenuePage{}, false, nil
	}
	if err != nil {
		return VenuePage{}, false, err
	}
	var page VenuePage
	if err := json.Unmarshal(data, &page); err != nil {
		return VenuePage{}, false, err
	}
	return page, true, nil
}

func (c *RedisVenues) Set(ctx context.Context, q holidaze.VenueQuery, page VenuePage) error {
	b, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, venueListKey(q), b, c.ttl).Err()
}

// Invalidate drops every cached list page. Called after venue writes.
func (c *RedisVenues) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, venueListPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Open connects to Redis and checks the connection.
func Open(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
