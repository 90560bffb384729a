package supply

import (
	"fmt"
	"time"

	"github.com/printfleet/supply-service/internal/model"
)

const (
	// refreshThresholdDays: an existing unread alert is only superseded
	// when the projected days remaining moved by at least this much.
	// Smaller shifts leave the alert alone to avoid spam on every cycle.
	refreshThresholdDays = 2

	// unreliableHorizonDays bounds how far out a low-confidence projection
	// still warrants an informational alert.
	unreliableHorizonDays = 30
)

// AlertTypeUnreliable flags a projection whose input data is too noisy to
// trust. Unlike the depletion alerts it is keyed by resource alone, not by
// the depletion stage.
const AlertTypeUnreliable = "projection_unreliable"

// AlertCandidate is a policy decision not yet reconciled against the stored
// alerts.
type AlertCandidate struct {
	Type          string
	Severity      string
	Title         string
	Message       string
	ResourceID    string
	ResourceType  string
	DaysRemaining int
}

// AlertsFor derives zero, one, or two alert candidates from a projection:
// at most one depletion-stage alert plus, independently, an unreliability
// notice for low-confidence near-term projections.
func AlertsFor(p Projection) []AlertCandidate {
	var out []AlertCandidate

	if c, ok := depletionAlert(p); ok {
		out = append(out, c)
	}

	if p.Confidence == ConfidenceLow && p.DaysRemaining <= unreliableHorizonDays {
		out = append(out, AlertCandidate{
			Type:     AlertTypeUnreliable,
			Severity: model.AlertSeverityInfo,
			Title:    fmt.Sprintf("Projection for %s is unreliable", p.Name),
			Message: fmt.Sprintf(
				"Consumption of %s varies too much for a dependable forecast. Current estimate: %d days remaining.",
				p.Name, p.DaysRemaining,
			),
			ResourceID:    p.ResourceID,
			ResourceType:  string(p.Type),
			DaysRemaining: p.DaysRemaining,
		})
	}

	return out
}

func depletionAlert(p Projection) (AlertCandidate, bool) {
	var stage, severity, title string
	switch {
	case p.DaysRemaining <= 0:
		stage = "depleted"
		severity = model.AlertSeverityError
		title = fmt.Sprintf("%s depleted: %s", resourceLabel(p.Type), p.Name)
	case p.DaysRemaining <= 3:
		stage = "critical"
		severity = model.AlertSeverityError
		title = fmt.Sprintf("%s critically low: %s", resourceLabel(p.Type), p.Name)
	case p.DaysRemaining <= 7:
		stage = "warning"
		severity = model.AlertSeverityWarning
		title = fmt.Sprintf("%s running low: %s", resourceLabel(p.Type), p.Name)
	case p.DaysRemaining <= 14:
		stage = "caution"
		severity = model.AlertSeverityWarning
		title = fmt.Sprintf("%s needs attention: %s", resourceLabel(p.Type), p.Name)
	default:
		return AlertCandidate{}, false
	}

	return AlertCandidate{
		Type:     fmt.Sprintf("%s_%s", p.Type, stage),
		Severity: severity,
		Title:    title,
		Message: fmt.Sprintf(
			"%s is projected to run out in %d days (around %s). Current stock: %d.",
			p.Name, p.DaysRemaining, p.EstimatedDepletionDate.Format(time.DateOnly), p.CurrentStock,
		),
		ResourceID:    p.ResourceID,
		ResourceType:  string(p.Type),
		DaysRemaining: p.DaysRemaining,
	}, true
}

func resourceLabel(t ResourceType) string {
	if t == ResourceToner {
		return "Toner"
	}
	return "Paper"
}

// AlertAction is the reconciliation outcome for one candidate.
type AlertAction int

const (
	// ActionNone: an unread alert for the same condition is still close
	// enough to the new projection.
	ActionNone AlertAction = iota
	// ActionCreate: no unread alert tracks this condition yet.
	ActionCreate
	// ActionRefresh: mark the existing alert read and create a new one
	// with updated numbers.
	ActionRefresh
)

// Reconcile compares a candidate against the existing unread alert for its
// dedup key, if any. Alerts from before days_remaining was stored compare as
// 0 and therefore always refresh, which only costs an extra update cycle.
func Reconcile(existing *model.Alert, candidate AlertCandidate) AlertAction {
	if existing == nil {
		return ActionCreate
	}
	diff := existing.DaysRemaining - candidate.DaysRemaining
	if diff < 0 {
		diff = -diff
	}
	if diff >= refreshThresholdDays {
		return ActionRefresh
	}
	return ActionNone
}

// FindUnread locates the unread alert matching the candidate's dedup key
// (type, resource id, resource type).
func FindUnread(existing []model.Alert, candidate AlertCandidate) *model.Alert {
	for i := range existing {
		a := &existing[i]
		if a.Type == candidate.Type && a.ResourceID == candidate.ResourceID && a.ResourceType == candidate.ResourceType {
			return a
		}
	}
	return nil
}
