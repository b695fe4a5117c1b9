// Package health provides health monitoring for the agent's workers and endpoints
package health

import (
	"time"
)

// Status represents the health state of a component or system
type Status struct {
	Component   string    `json:"component"`
	Healthy     bool      `json:"healthy"` // true if status is "healthy"
	Status      string    `json:"status"`  // "healthy", "unhealthy", "degraded"
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
	SubStatuses []Status  `json:"sub_statuses,omitempty"`
}

// NewHealthy builds a healthy status for a component
func NewHealthy(component, message string) Status {
	return Status{Component: component, Healthy: true, Status: "healthy", Message: message, Timestamp: time.Now()}
}

// NewUnhealthy builds an unhealthy status for a component
func NewUnhealthy(component, message string) Status {
	return Status{Component: component, Healthy: false, Status: "unhealthy", Message: message, Timestamp: time.Now()}
}

// NewDegraded builds a degraded status for a component
func NewDegraded(component, message string) Status {
	return Status{Component: component, Healthy: false, Status: "degraded", Message: message, Timestamp: time.Now()}
}

// IsHealthy returns true if the status is healthy
func (s Status) IsHealthy() bool { return s.Status == "healthy" }

// IsDegraded returns true if the status is degraded
func (s Status) IsDegraded() bool { return s.Status == "degraded" }

// IsUnhealthy returns true if the status is unhealthy
func (s Status) IsUnhealthy() bool { return s.Status == "unhealthy" }

// Aggregate combines sub-statuses into a single system status. Any unhealthy
// sub-status makes the system unhealthy; any degraded one makes it degraded.
func Aggregate(systemName string, subStatuses []Status) Status {
	agg := Status{
		Component:   systemName,
		Healthy:     true,
		Status:      "healthy",
		Message:     "all components healthy",
		Timestamp:   time.Now(),
		SubStatuses: subStatuses,
	}

	for _, sub := range subStatuses {
		if sub.IsUnhealthy() {
			agg.Healthy = false
			agg.Status = "unhealthy"
			agg.Message = sub.Component + ": " + sub.Message
			return agg
		}
		if sub.IsDegraded() && agg.Status == "healthy" {
			agg.Healthy = false
			agg.Status = "degraded"
			agg.Message = sub.Component + ": " + sub.Message
		}
	}

	return agg
}
