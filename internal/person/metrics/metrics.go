// Package metrics exposes Prometheus counters for person record mutations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the counters the person service increments on successful
// writes. Reads are not counted; the HTTP server exposes request-level
// metrics separately if needed.
type Metrics struct {
	UsersCreated prometheus.Counter
	UsersUpdated prometheus.Counter
	UsersDeleted prometheus.Counter
}

// New creates and registers all person metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		UsersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "peoplebook_users_created_total",
			Help: "Total number of person records created",
		}),
		UsersUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "peoplebook_users_updated_total",
			Help: "Total number of person records updated",
		}),
		UsersDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "peoplebook_users_deleted_total",
			Help: "Total number of person records deleted",
		}),
	}
}

func (m *Metrics) IncrementCreated() { m.UsersCreated.Inc() }
func (m *Metrics) IncrementUpdated() { m.UsersUpdated.Inc() }
func (m *Metrics) IncrementDeleted() { m.UsersDeleted.Inc() }
