// Package metrics defines and registers all custom Prometheus metrics for
// the LetterDrive backend. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "letterdrive"

// LoginsTotal counts completed Google logins.
// Label:
//   - kind: "signup" (first login, record created) or "login" (returning user)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of completed Google logins, by kind (signup/login).",
	},
	[]string{"kind"},
)

// DriveSyncsTotal counts letter sync attempts against Google Drive.
// Label:
//   - result: "created" (new remote file), "updated" (existing file), or "error"
var DriveSyncsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "drive_syncs_total",
		Help:      "Total number of letter syncs to Google Drive, by result.",
	},
	[]string{"result"},
)

// DriveRequestDuration measures end-to-end duration of Drive operations.
// Label:
//   - operation: "save", "list", or "delete"
var DriveRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "drive_request_duration_seconds",
		Help:      "Duration of Google Drive operations end-to-end.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"operation"},
)
