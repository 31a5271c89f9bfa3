package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SheetFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "apoiov_sheet_fetches_total",
			Help: "Downloads da planilha por tabela e resultado",
		},
		[]string{"table", "result"},
	)

	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "apoiov_cache_hits_total",
			Help: "Leituras servidas pelo cache sem refresh",
		},
		[]string{"table"},
	)

	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "apoiov_cache_misses_total",
			Help: "Leituras que dispararam um refresh",
		},
		[]string{"table"},
	)

	RowsSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "apoiov_rows_skipped_total",
			Help: "Linhas da planilha descartadas na normalização",
		},
		[]string{"table"},
	)
)

func init() {
	prometheus.MustRegister(SheetFetches, CacheHits, CacheMisses, RowsSkipped)
}
