package models

// AutomationType selects the post-publish tooling provisioned for an event.
type AutomationType string

const (
	AutomationTicketManagement AutomationType = "ticket_management"
	AutomationOrderManagement  AutomationType = "order_management"
	AutomationHybridManagement AutomationType = "hybrid_management"
	AutomationBasic            AutomationType = "basic"
)

// AutomationForEventType maps a resolved event type to the automation
// kind provisioned after publish. Unknown or unset types get basic tooling.
func AutomationForEventType(t EventType) AutomationType {
	switch t {
	case EventTypeBooking:
		return AutomationTicketManagement
	case EventTypeMarketplace:
		return AutomationOrderManagement
	case EventTypeHybrid:
		return AutomationHybridManagement
	default:
		return AutomationBasic
	}
}

type AutomationRequest struct {
	EventID string         `json:"event_id"`
	Type    AutomationType `json:"automation_type"`
}

type AutomationResult struct {
	EventID string         `json:"event_id"`
	Type    AutomationType `json:"automation_type"`
	Success bool           `json:"success"`
}
