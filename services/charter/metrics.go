// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package charter

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "charter_"

var (
	renderCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: namespace + "renders_total",
		Help: "Number of chart renders by chart type and result",
	}, []string{"type", "result"})

	renderDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    namespace + "render_duration_seconds",
		Help:    "Time spent rendering charts",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(renderCounter, renderDuration)
}

func observeRender(chartType string, err error, seconds float64) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	renderCounter.WithLabelValues(chartType, result).Inc()
	renderDuration.Observe(seconds)
}
