package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CommandsInvoked counts slash command invocations by qualified name.
	CommandsInvoked = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "carfigures_commands_invoked_total",
		Help: "Slash commands invoked, by command.",
	}, []string{"command"})

	// CommandsRateLimited counts invocations rejected by a cooldown.
	CommandsRateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "carfigures_commands_rate_limited_total",
		Help: "Slash commands rejected by a cooldown, by command.",
	}, []string{"command"})

	// PaginationEvents counts navigation button presses by action.
	PaginationEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "carfigures_pagination_events_total",
		Help: "Pagination navigation events, by action.",
	}, []string{"action"})

	// PaginationSessions is the number of live pagination sessions.
	PaginationSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "carfigures_pagination_sessions",
		Help: "Pagination sessions currently tracked.",
	})
)
