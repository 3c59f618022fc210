package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cascadeDeletedRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trackr_cascade_deleted_rows_total",
		Help: "Rows soft-deleted by cascading project deletion, by entity.",
	}, []string{"entity"})

	progressPropagationSteps = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trackr_progress_propagation_steps_total",
		Help: "Ancestor tasks whose progress was recomputed from their subtasks.",
	})

	activityLogFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trackr_activity_log_failures_total",
		Help: "Activity log entries that could not be appended after a committed mutation.",
	})
)
