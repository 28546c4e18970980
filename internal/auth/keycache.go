package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	keyCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "read_api_api_key_cache_hits_total",
		Help: "Количество попаданий в кэш проверенных API-ключей.",
	})
	keyCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "read_api_api_key_cache_misses_total",
		Help: "Количество промахов кэша проверенных API-ключей.",
	})
)

// keyCache — LRU проверенных API-ключей с TTL: ключ -> id владельца.
// В памяти хранится только sha256 ключа, сам секрет не сохраняется.
type keyCache struct {
	lru *expirable.LRU[string, int64]
}

func newKeyCache(size int, ttl time.Duration) *keyCache {
	return &keyCache{lru: expirable.NewLRU[string, int64](size, nil, ttl)}
}

func (c *keyCache) get(key string) (int64, bool) {
	uid, ok := c.lru.Get(digest(key))
	if ok {
		keyCacheHits.Inc()
		return uid, true
	}
	keyCacheMisses.Inc()
	return 0, false
}

func (c *keyCache) add(key string, userID int64) {
	c.lru.Add(digest(key), userID)
}

func digest(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
