package storage

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	queriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "read_api_store_queries_total",
		Help: "Количество запросов к хранилищам.",
	}, []string{"store", "resource"})

	queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "read_api_store_query_duration_seconds",
		Help:    "Длительность запросов к хранилищам.",
		Buckets: prometheus.DefBuckets,
	}, []string{"store", "resource"})
)

// ObserveQuery учитывает один запрос к хранилищу. Вызывается через defer:
//
//	defer storage.ObserveQuery("postgres", "articles", time.Now())
func ObserveQuery(store, resource string, start time.Time) {
	queriesTotal.WithLabelValues(store, resource).Inc()
	queryDuration.WithLabelValues(store, resource).Observe(time.Since(start).Seconds())
}
