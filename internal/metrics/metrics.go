// Package metrics exposes the service's Prometheus instruments, served on
// /metrics by the HTTP server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/fx"
)

// Metrics holds application-level counters.
type Metrics struct {
	quotaConsumeAllowed prometheus.Counter
	quotaConsumePaused  prometheus.Counter
	quotaConsumeErrors  prometheus.Counter
	quotaForceResets    prometheus.Counter
	actorLimitDenied    prometheus.Counter
	pushDelivered       prometheus.Counter
	pushExpired         prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		quotaConsumeAllowed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tanomu_quota_consume_allowed_total",
			Help: "Write requests admitted by the daily quota gate.",
		}),
		quotaConsumePaused: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tanomu_quota_consume_paused_total",
			Help: "Write requests rejected because the daily quota is exhausted.",
		}),
		quotaConsumeErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tanomu_quota_consume_errors_total",
			Help: "Quota gate calls that failed; writes are rejected on error.",
		}),
		quotaForceResets: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tanomu_quota_force_resets_total",
			Help: "Scheduled force-reset calls against the quota gate.",
		}),
		actorLimitDenied: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tanomu_actor_limit_denied_total",
			Help: "Group create/join requests denied by the per-IP daily limiter.",
		}),
		pushDelivered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tanomu_push_delivered_total",
			Help: "Web push notifications accepted by the push service.",
		}),
		pushExpired: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tanomu_push_expired_total",
			Help: "Push subscriptions dropped after the endpoint reported gone.",
		}),
	}
}

func (m *Metrics) QuotaConsumeAllowed() {
	if m == nil {
		return
	}
	m.quotaConsumeAllowed.Inc()
}

func (m *Metrics) QuotaConsumePaused() {
	if m == nil {
		return
	}
	m.quotaConsumePaused.Inc()
}

func (m *Metrics) QuotaConsumeError() {
	if m == nil {
		return
	}
	m.quotaConsumeErrors.Inc()
}

func (m *Metrics) QuotaForceReset() {
	if m == nil {
		return
	}
	m.quotaForceResets.Inc()
}

func (m *Metrics) ActorLimitDenied() {
	if m == nil {
		return
	}
	m.actorLimitDenied.Inc()
}

func (m *Metrics) PushDelivered() {
	if m == nil {
		return
	}
	m.pushDelivered.Inc()
}

func (m *Metrics) PushExpired() {
	if m == nil {
		return
	}
	m.pushExpired.Inc()
}

var Module = fx.Module("metrics",
	fx.Provide(New),
)
