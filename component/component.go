package component

import "context"

// Component is a piece of infrastructure with a start/stop lifecycle,
// such as a connection pool or an HTTP adapter. Name must be unique
// within a Registry.
type Component interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Health(ctx context.Context) Health
}

// Describable components report a one-line summary after startup.
type Describable interface {
	Describe() Description
}

// Description is what a Describable component reports. An empty Name
// is filled from Component.Name by the registry.
type Description struct {
	Name    string
	Type    string // "redis", "http-adapter"
	Details string // "localhost:6379 db=0 shards=3"
}

type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusDegraded  HealthStatus = "degraded"
	StatusUnhealthy HealthStatus = "unhealthy"
)

// Health is a point-in-time probe result.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

func Healthy(name string) Health {
	return Health{Name: name, Status: StatusHealthy}
}

func Unhealthy(name, message string) Health {
	return Health{Name: name, Status: StatusUnhealthy, Message: message}
}

func (h Health) OK() bool { return h.Status == StatusHealthy }

// String renders name=status, with the message in parentheses when set.
func (h Health) String() string {
	s := h.Name + "=" + string(h.Status)
	if h.Message != "" {
		s += "(" + h.Message + ")"
	}
	return s
}
