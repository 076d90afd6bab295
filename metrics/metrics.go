// Copyright (c) 2025, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/choria-io/bootstrap/model"
)

var (
	NameSpace = "choria"
	Subsystem = "bootstrap"

	// BatchRunTime is a summary of the time taken to run an entire batch
	BatchRunTime = prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "batch_run_duration_seconds"),
		Help: "Time taken to run an entire batch",
	}, []string{"source"})

	// BatchAbortedCount counts how many batches ended early
	BatchAbortedCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "batch_aborted_count"),
		Help: "How many batches ended before all steps ran",
	}, []string{"source", "kind"})

	// StepRunTime is a summary of the time taken to run a particular step
	StepRunTime = prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "step_run_duration_seconds"),
		Help: "Time taken to run a particular step",
	}, []string{"provider", "step"})

	// StepAttemptCount counts how many times step commands were started
	StepAttemptCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "step_attempt_count"),
		Help: "How many times step commands were started",
	}, []string{"step"})

	// StepStateTotal counts how many steps were processed
	StepStateTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "step_state_total_count"),
		Help: "How many steps were processed",
	}, []string{"step"})

	// StepStateSucceeded counts how many steps succeeded
	StepStateSucceeded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "step_state_succeeded_count"),
		Help: "How many steps succeeded",
	}, []string{"step"})

	// StepStateFailed counts how many steps failed
	StepStateFailed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "step_state_failed_count"),
		Help: "How many steps failed",
	}, []string{"step", "kind"})

	// StepStateSkipped counts how many steps were skipped
	StepStateSkipped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "step_state_skipped_count"),
		Help: "How many steps were skipped",
	}, []string{"step"})

	// FactGatherTime is a summary of the time taken to gather facts
	FactGatherTime = prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "facts_gather_duration_seconds"),
		Help: "Time taken to gather facts",
	}, []string{})

	// EventPublishFailureCount counts how many events could not be published to NATS
	EventPublishFailureCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(NameSpace, Subsystem, "event_publish_error_count"),
		Help: "How many events could not be published",
	}, []string{"kind"})
)

func RegisterMetrics() {
	prometheus.MustRegister(BatchRunTime)
	prometheus.MustRegister(BatchAbortedCount)
	prometheus.MustRegister(StepRunTime)
	prometheus.MustRegister(StepAttemptCount)
	prometheus.MustRegister(StepStateTotal)
	prometheus.MustRegister(StepStateSucceeded)
	prometheus.MustRegister(StepStateFailed)
	prometheus.MustRegister(StepStateSkipped)
	prometheus.MustRegister(FactGatherTime)
	prometheus.MustRegister(EventPublishFailureCount)
}

// UpdateStepMetrics counts the outcome of a step event, other events are ignored
func UpdateStepMetrics(event model.SessionEvent) {
	e, ok := event.(*model.StepEvent)
	if !ok {
		return
	}

	label := e.MetricLabel()

	StepStateTotal.WithLabelValues(label).Inc()
	StepAttemptCount.WithLabelValues(label).Add(float64(e.Attempts))

	switch {
	case e.Failed:
		StepStateFailed.WithLabelValues(label, e.ErrorKind).Inc()
	case e.Skipped:
		StepStateSkipped.WithLabelValues(label).Inc()
	default:
		StepStateSucceeded.WithLabelValues(label).Inc()
	}
}

func ListenAndServe(port int, log model.Logger) {
	if port <= 0 {
		return
	}

	go func() {
		log.Info("Starting monitoring server", "port", port)
		http.Handle("/metrics", promhttp.Handler())
		err := http.ListenAndServe(fmt.Sprintf(":%d", port), nil)
		if err != nil {
			log.Error("HTTP Listener failed", "error", err)
		}
	}()
}
