package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Engine captures counters for the session and activity hot paths.
type Engine struct {
	sessionsCreated  prometheus.Counter
	sessionsRevoked  prometheus.Counter
	validateOutcomes *prometheus.CounterVec
	ledgerAppends    *prometheus.CounterVec
	hashtagIncrement prometheus.Counter
}

var (
	engineOnce sync.Once
	engine     *Engine
)

// Default returns the singleton engine metrics registry.
func Default() *Engine {
	engineOnce.Do(func() {
		engine = &Engine{
			sessionsCreated: promauto.NewCounter(prometheus.CounterOpts{
				Name: "engage_sessions_created_total",
				Help: "Sessions created by successful logins.",
			}),
			sessionsRevoked: promauto.NewCounter(prometheus.CounterOpts{
				Name: "engage_sessions_revoked_total",
				Help: "Sessions revoked by logout or logout-all.",
			}),
			validateOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "engage_session_validate_total",
				Help: "Session validation calls by outcome.",
			}, []string{"outcome"}),
			ledgerAppends: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "engage_activity_appends_total",
				Help: "Activity ledger appends by event kind.",
			}, []string{"kind"}),
			hashtagIncrement: promauto.NewCounter(prometheus.CounterOpts{
				Name: "engage_hashtag_increments_total",
				Help: "Hashtag counter increments.",
			}),
		}
	})
	return engine
}

func (m *Engine) IncSessionCreated() { m.sessionsCreated.Inc() }
func (m *Engine) IncSessionRevoked() { m.sessionsRevoked.Inc() }

func (m *Engine) IncValidate(outcome string) {
	m.validateOutcomes.WithLabelValues(outcome).Inc()
}

func (m *Engine) IncLedgerAppend(kind string) {
	m.ledgerAppends.WithLabelValues(kind).Inc()
}

func (m *Engine) IncHashtagIncrement() { m.hashtagIncrement.Inc() }
