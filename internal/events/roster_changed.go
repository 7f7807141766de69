package events

import "time"

const RosterChangedTopic = "hr.employee.roster.v1"

const (
	EventEmployeeAdded     = "employee_added"
	EventEmployeeUpdated   = "employee_updated"
	EventEmployeeRemoved   = "employee_removed"
	EventEmployeesReplaced = "employees_replaced"
)

// RosterChangedEvent is published for every committed change of the roster.
type RosterChangedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID string    `json:"employee_id,omitempty"`
	Version    uint64    `json:"version"`
	Total      int       `json:"total"`
	OccurredAt time.Time `json:"occurred_at"`
}
