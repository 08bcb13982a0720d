package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Fleet event types published to the tracking surface.
const (
	FleetEventDriverAssigned   = "driver_assigned"
	FleetEventDriverUnassigned = "driver_unassigned"
	FleetEventManagerAssigned  = "manager_assigned"
	FleetEventCarStatusChanged = "car_status_changed"
)

// FleetEvent describes a change to the fleet that tracking consumers care
// about. Events are published after the owning transaction commits.
type FleetEvent struct {
	RequestID  string    `json:"request_id,omitempty"` // For distributed tracing
	Type       string    `json:"type"`
	CarID      uuid.UUID `json:"car_id"`
	DriverID   uuid.UUID `json:"driver_id,omitempty"`
	ManagerID  uuid.UUID `json:"manager_id,omitempty"`
	Status     string    `json:"status,omitempty"` // New car status for status-change events.
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing fleet events to a
// message queue.
type EventPublisher interface {
	// PublishFleetEvent publishes a fleet event for async consumers.
	PublishFleetEvent(ctx context.Context, event *FleetEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
