package supply

import (
	"strings"
	"testing"
	"time"

	"github.com/printfleet/supply-service/internal/model"
)

func projection(typ ResourceType, days int, confidence Confidence) Projection {
	now := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	return Projection{
		Type:                   typ,
		ResourceID:             "r1",
		Name:                   "Standard A4",
		CurrentStock:           100,
		DaysRemaining:          days,
		EstimatedDepletionDate: now.AddDate(0, 0, days),
		Status:                 statusFor(days),
		Confidence:             confidence,
	}
}

func TestAlertsForDepletionStages(t *testing.T) {
	tests := []struct {
		name         string
		typ          ResourceType
		days         int
		wantType     string
		wantSeverity string
	}{
		{"paper depleted", ResourcePaper, 0, "paper_depleted", model.AlertSeverityError},
		{"paper depleted negative", ResourcePaper, -2, "paper_depleted", model.AlertSeverityError},
		{"paper critical", ResourcePaper, 3, "paper_critical", model.AlertSeverityError},
		{"paper warning", ResourcePaper, 7, "paper_warning", model.AlertSeverityWarning},
		{"paper caution", ResourcePaper, 14, "paper_caution", model.AlertSeverityWarning},
		{"toner critical", ResourceToner, 2, "toner_critical", model.AlertSeverityError},
		{"toner caution", ResourceToner, 10, "toner_caution", model.AlertSeverityWarning},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates := AlertsFor(projection(tt.typ, tt.days, ConfidenceHigh))
			if len(candidates) != 1 {
				t.Fatalf("expected 1 candidate, got %d", len(candidates))
			}
			c := candidates[0]
			if c.Type != tt.wantType {
				t.Fatalf("type = %s, want %s", c.Type, tt.wantType)
			}
			if c.Severity != tt.wantSeverity {
				t.Fatalf("severity = %s, want %s", c.Severity, tt.wantSeverity)
			}
			if c.ResourceID != "r1" || c.ResourceType != string(tt.typ) {
				t.Fatalf("unexpected resource key: %+v", c)
			}
			if c.DaysRemaining != tt.days {
				t.Fatalf("days remaining = %d, want %d", c.DaysRemaining, tt.days)
			}
		})
	}
}

func TestAlertsForNormalProjection(t *testing.T) {
	candidates := AlertsFor(projection(ResourcePaper, 15, ConfidenceHigh))
	if len(candidates) != 0 {
		t.Fatalf("expected no candidates above caution threshold, got %+v", candidates)
	}
}

func TestAlertsForUnreliable(t *testing.T) {
	// low confidence inside the horizon: depletion alert plus info notice
	candidates := AlertsFor(projection(ResourcePaper, 10, ConfidenceLow))
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	notice := candidates[1]
	if notice.Type != AlertTypeUnreliable {
		t.Fatalf("type = %s, want %s", notice.Type, AlertTypeUnreliable)
	}
	if notice.Severity != model.AlertSeverityInfo {
		t.Fatalf("severity = %s, want info", notice.Severity)
	}
	if !strings.Contains(notice.Message, "10 days") {
		t.Fatalf("message should carry the estimate: %q", notice.Message)
	}
}

func TestAlertsForUnreliableAboveDepletionThresholds(t *testing.T) {
	// 20 days out: no depletion stage applies, but the notice still fires
	candidates := AlertsFor(projection(ResourcePaper, 20, ConfidenceLow))
	if len(candidates) != 1 || candidates[0].Type != AlertTypeUnreliable {
		t.Fatalf("expected only an unreliability notice, got %+v", candidates)
	}
}

func TestAlertsForUnreliableBeyondHorizon(t *testing.T) {
	candidates := AlertsFor(projection(ResourcePaper, 31, ConfidenceLow))
	if len(candidates) != 0 {
		t.Fatalf("far-out low-confidence projections alert nothing, got %+v", candidates)
	}
}

func TestReconcile(t *testing.T) {
	candidate := AlertCandidate{
		Type:          "paper_warning",
		ResourceID:    "r1",
		ResourceType:  "paper",
		DaysRemaining: 6,
	}

	tests := []struct {
		name     string
		existing *model.Alert
		want     AlertAction
	}{
		{"no existing alert", nil, ActionCreate},
		{"within threshold", &model.Alert{DaysRemaining: 7}, ActionNone},
		{"exact match", &model.Alert{DaysRemaining: 6}, ActionNone},
		{"moved down two", &model.Alert{DaysRemaining: 8}, ActionRefresh},
		{"moved up three", &model.Alert{DaysRemaining: 3}, ActionRefresh},
		// rows written before days_remaining existed compare as 0
		{"legacy zero value", &model.Alert{DaysRemaining: 0}, ActionRefresh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reconcile(tt.existing, candidate); got != tt.want {
				t.Fatalf("Reconcile = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindUnread(t *testing.T) {
	existing := []model.Alert{
		{ID: "a1", Type: "paper_warning", ResourceID: "r1", ResourceType: "paper"},
		{ID: "a2", Type: "paper_warning", ResourceID: "r2", ResourceType: "paper"},
		{ID: "a3", Type: "toner_warning", ResourceID: "r1", ResourceType: "toner"},
	}

	got := FindUnread(existing, AlertCandidate{Type: "paper_warning", ResourceID: "r2", ResourceType: "paper"})
	if got == nil || got.ID != "a2" {
		t.Fatalf("expected a2, got %+v", got)
	}

	// same resource id, different type: distinct dedup key
	if got := FindUnread(existing, AlertCandidate{Type: "paper_critical", ResourceID: "r1", ResourceType: "paper"}); got != nil {
		t.Fatalf("expected no match, got %+v", got)
	}
}
