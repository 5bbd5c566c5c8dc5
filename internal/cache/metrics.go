package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookstore_cache_hits_total",
		Help: "Read-through cache lookups served from memory",
	})

	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookstore_cache_misses_total",
		Help: "Read-through cache lookups that fell through to the loader",
	})

	cacheEvictions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookstore_cache_evictions_total",
		Help: "Cache entries dropped, by reason (explicit, expired, cleared)",
	}, []string{"reason"})

	cacheEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bookstore_cache_entries",
		Help: "Entries currently held by the cache",
	})
)
