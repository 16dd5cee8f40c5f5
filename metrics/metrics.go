package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	DraftOrdersInitialized = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "draft_orders_initialized_total", Help: "Total draft orders initialized"},
	)
	DraftRuns = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "draft_runs_total", Help: "Total drafts executed and persisted"},
	)
	PicksWritten = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "draft_picks_written_total", Help: "Total picks persisted"},
	)
	DraftFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "draft_failures_total", Help: "Total failed draft operations"},
		[]string{"operation"},
	)
	AchievementsGranted = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "achievements_granted_total", Help: "Total achievements newly granted"},
	)
	AutoPickInvocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "autopick_invocations_total", Help: "Total auto-pick procedure calls"},
		[]string{"result"},
	)
)

func Register() {
	prometheus.MustRegister(
		DraftOrdersInitialized,
		DraftRuns,
		PicksWritten,
		DraftFailures,
		AchievementsGranted,
		AutoPickInvocations,
	)
}
