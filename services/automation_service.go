package services

import (
	"context"
	"log/slog"

	"event-studio/models"
	"event-studio/monitoring"
)

// AutomationService provisions post-publish tooling. Dispatch is
// fire-and-forget: a failure is logged and counted, never surfaced to
// the user, and never reverts the publish-success state.
type AutomationService struct {
	provisioner AutomationProvisioner
	monitor     *monitoring.Monitor
}

func NewAutomationService(provisioner AutomationProvisioner, monitor *monitoring.Monitor) *AutomationService {
	return &AutomationService{
		provisioner: provisioner,
		monitor:     monitor,
	}
}

// Dispatch maps the event type to its automation kind and calls the
// provisioning collaborator exactly once.
func (s *AutomationService) Dispatch(ctx context.Context, eventID string, eventType models.EventType) {
	kind := models.AutomationForEventType(eventType)

	req := &models.AutomationRequest{
		EventID: eventID,
		Type:    kind,
	}

	result, err := s.provisioner.SetupAutomation(ctx, req)
	if err != nil {
		slog.Error("automation setup failed",
			"event_id", eventID,
			"automation_type", kind,
			"error", err,
		)
		s.monitor.TrackAutomation(string(kind), "failure")
		return
	}

	slog.Info("automation provisioned",
		"event_id", result.EventID,
		"automation_type", result.Type,
	)
	s.monitor.TrackAutomation(string(kind), "success")
}
