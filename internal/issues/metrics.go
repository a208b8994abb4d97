package issues

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	kindIssue   = "issue"
	kindArticle = "article"

	resultAdded     = "added"
	resultDuplicate = "duplicate"
	resultInvalid   = "invalid"
)

type RegistryMetrics struct {
	Inserts *prometheus.CounterVec
}

// RegisterMetrics registers size gauges read from store at scrape time and
// an insert outcome counter.
func RegisterMetrics(reg prometheus.Registerer, store Store) *RegistryMetrics {
	m := &RegistryMetrics{
		Inserts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "issues_registry_inserts_total",
				Help: "Registry inserts by record kind and outcome",
			},
			[]string{"kind", "result"},
		),
	}

	issuesGauge := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "issues_registry_issues",
			Help: "Issues currently held by the registry",
		},
		func() float64 {
			n, _, _ := store.Counts(context.Background())
			return float64(n)
		},
	)
	articlesGauge := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "issues_registry_articles",
			Help: "Articles currently held in the flat article list",
		},
		func() float64 {
			_, n, _ := store.Counts(context.Background())
			return float64(n)
		},
	)

	reg.MustRegister(m.Inserts, issuesGauge, articlesGauge)
	return m
}

func (m *RegistryMetrics) observe(kind, result string) {
	if m == nil {
		return
	}
	m.Inserts.WithLabelValues(kind, result).Inc()
}
