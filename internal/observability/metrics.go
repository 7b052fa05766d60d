package observability

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	RemindersLoaded     prometheus.Counter
	LoadFailures        prometheus.Counter
	RemindersSaved      prometheus.Counter
	WriteFailures       prometheus.Counter
	CacheHits           prometheus.Counter
	CacheMisses         prometheus.Counter
	GeofenceTransitions *prometheus.CounterVec
	GeofenceDropped     prometheus.Counter
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		RemindersLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "locrem",
			Name:      "reminders_loaded_total",
			Help:      "Reminders returned by successful list loads.",
		}),
		LoadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "locrem",
			Name:      "store_read_failures_total",
			Help:      "Store reads that were converted into error results.",
		}),
		RemindersSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "locrem",
			Name:      "reminders_saved_total",
			Help:      "Reminders written to the store.",
		}),
		WriteFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "locrem",
			Name:      "store_write_failures_total",
			Help:      "Store writes that failed and were not surfaced to the caller.",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "locrem",
			Name:      "cache_hits_total",
			Help:      "Reminder lookups served from the cache.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "locrem",
			Name:      "cache_misses_total",
			Help:      "Reminder lookups that went to the store.",
		}),
		GeofenceTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "locrem",
			Name:      "geofence_transitions_total",
			Help:      "Geofence transitions delivered to the shell.",
		}, []string{"transition"}),
		GeofenceDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "locrem",
			Name:      "geofence_dropped_total",
			Help:      "Geofence transitions dropped because the consumer was slow.",
		}),
	}
	reg.MustRegister(
		m.RemindersLoaded,
		m.LoadFailures,
		m.RemindersSaved,
		m.WriteFailures,
		m.CacheHits,
		m.CacheMisses,
		m.GeofenceTransitions,
		m.GeofenceDropped,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
