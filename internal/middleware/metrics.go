package middleware

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"
)

// Metrics stores application counters for the metrics endpoint.
type Metrics struct {
	RequestsTotal uint64
	TurnsTotal    uint64
	TurnsFailed   uint64
	StartTime     time.Time
}

var globalMetrics = &Metrics{
	StartTime: time.Now(),
}

// IncrementRequests increments total request counter
func IncrementRequests() {
	atomic.AddUint64(&globalMetrics.RequestsTotal, 1)
}

// IncrementTurns increments the completed-analysis counter
func IncrementTurns() {
	atomic.AddUint64(&globalMetrics.TurnsTotal, 1)
}

// IncrementTurnsFailed increments the failed-analysis counter
func IncrementTurnsFailed() {
	atomic.AddUint64(&globalMetrics.TurnsFailed, 1)
}

// MetricsSnapshot is the JSON shape served by MetricsHandler.
type MetricsSnapshot struct {
	RequestsTotal uint64  `json:"requests_total"`
	TurnsTotal    uint64  `json:"turns_total"`
	TurnsFailed   uint64  `json:"turns_failed"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Goroutines    int     `json:"goroutines"`
	MemAllocBytes uint64  `json:"mem_alloc_bytes"`
}

// MetricsHandler serves current counters as JSON.
func MetricsHandler(w http.ResponseWriter, r *http.Request) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	snap := MetricsSnapshot{
		RequestsTotal: atomic.LoadUint64(&globalMetrics.RequestsTotal),
		TurnsTotal:    atomic.LoadUint64(&globalMetrics.TurnsTotal),
		TurnsFailed:   atomic.LoadUint64(&globalMetrics.TurnsFailed),
		UptimeSeconds: time.Since(globalMetrics.StartTime).Seconds(),
		Goroutines:    runtime.NumGoroutine(),
		MemAllocBytes: mem.Alloc,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

// CountRequests increments the request counter for every request.
func CountRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		IncrementRequests()
		next.ServeHTTP(w, r)
	})
}
