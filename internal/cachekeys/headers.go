package cachekeys

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Headers — политика edge-кэширования публичных ответов.
type Headers struct {
	MaxAge               time.Duration
	StaleWhileRevalidate time.Duration
	StaleIfError         time.Duration
}

// Apply пишет заголовки кэширования.
//
// Публичный ответ: браузер всегда ревалидирует (Cache-Control: public, no-cache),
// edge хранит его MaxAge и инвалидирует по Surrogate-Key.
// Приватный ответ (view "me"): Cache-Control: private, no-store, ключи не отдаются.
func (h Headers) Apply(w http.ResponseWriter, keys Set, public bool) {
	hdr := w.Header()
	if !public {
		hdr.Set("Cache-Control", "private, no-store")
		return
	}

	hdr.Set("Cache-Control", "public, no-cache")
	hdr.Set("Surrogate-Control", fmt.Sprintf("max-age=%d, stale-while-revalidate=%d, stale-if-error=%d",
		seconds(h.MaxAge), seconds(h.StaleWhileRevalidate), seconds(h.StaleIfError)))
	hdr.Set("X-Accel-Expires", strconv.FormatInt(seconds(h.MaxAge), 10))

	if keys.Len() > 0 {
		hdr.Set("Surrogate-Key", strings.Join(keys.keys, " "))
	}
}

func seconds(d time.Duration) int64 {
	return int64(d / time.Second)
}
