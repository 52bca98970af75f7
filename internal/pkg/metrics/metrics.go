// Package metrics defines and registers the custom Prometheus metrics of the
// trade-ops API. It is the single source of truth for metric names, labels and
// help strings.
//
// HTTP request metrics come from the echoprometheus middleware; the metrics
// here cover business events. All of them are registered with the default
// registry at package init through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tradeops"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "invalid", "disabled" or "throttled"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts self-service sign-ups.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created through registration.",
	},
)

// ── Resource metrics ──────────────────────────────────────────────────────────

// ResourcesCreatedTotal counts records created through the resource routes.
// Label:
//   - resource: collection name (e.g. "shipping_route", "customs_document")
var ResourcesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resources_created_total",
		Help:      "Total number of records created, by resource.",
	},
	[]string{"resource"},
)

// ── Admin metrics ─────────────────────────────────────────────────────────────

// AdminActionsTotal counts successful admin mutations.
// Label:
//   - action: the audit action (e.g. "user_deleted", "document_approved")
var AdminActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_actions_total",
		Help:      "Total number of admin actions performed, by action.",
	},
	[]string{"action"},
)

// AuditWriteFailuresTotal counts activity-log writes that failed and were
// dropped.
var AuditWriteFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_write_failures_total",
		Help:      "Total number of activity log entries that could not be persisted.",
	},
)
