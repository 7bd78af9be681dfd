package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes live field state to Prometheus. A nil *Metrics ignores
// every call.
type Metrics struct {
	registry *prometheus.Registry

	population   prometheus.Gauge
	pointer      prometheus.Gauge
	links        prometheus.Gauge
	spawned      prometheus.Counter
	culled       prometheus.Counter
	frames       prometheus.Counter
	frameSeconds prometheus.Histogram
}

// NewMetrics registers the nebula collectors on a fresh registry.
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		population: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "population",
			Help:      "Regular particles currently in the field",
		}),
		pointer: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pointer_present",
			Help:      "1 while the pointer particle is in the field",
		}),
		links: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "links",
			Help:      "Links visited in the last frame",
		}),
		spawned: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "spawned_total",
			Help:      "Particles spawned",
		}),
		culled: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "culled_total",
			Help:      "Particles dropped beyond the buffer margin",
		}),
		frames: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Frames simulated",
		}),
		frameSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_seconds",
			Help:      "Time spent simulating and drawing one frame",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
	}
}

// Observe records one frame.
func (m *Metrics) Observe(s FrameSample, population int, pointer bool, frame time.Duration) {
	if m == nil {
		return
	}
	m.frames.Inc()
	if s.Spawned {
		m.spawned.Inc()
	}
	m.culled.Add(float64(s.Culled))
	m.links.Set(float64(s.Links.Count))
	m.population.Set(float64(population))
	if pointer {
		m.pointer.Set(1)
	} else {
		m.pointer.Set(0)
	}
	m.frameSeconds.Observe(frame.Seconds())
}

// Registry returns the registry holding the nebula collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// NewServer returns an HTTP server exposing the registry at path.
func (m *Metrics) NewServer(addr, path string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	return &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}
}
