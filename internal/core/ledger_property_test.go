package core

import (
	"testing"

	"github.com/introware/nurture/pkg/models"
	"pgregory.net/rapid"
)

// Any sequence of lifecycle operations leaves every ledger entry in a valid
// state: the status is one of planned, completed, or skipped, and only
// completed entries carry a completion date.
func TestLedgerLifecycle_StatesStayValid(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		fx := newSchedulerFixture(t)

		dates := []string{"2026-08-28", "2026-09-01", "2026-09-05"}
		var ids []string

		count := rapid.IntRange(1, 5).Draw(rt, "count")
		for i := 0; i < count; i++ {
			date := rapid.SampledFrom(dates).Draw(rt, "date")
			scheduled, err := fx.scheduler.Schedule(plannedInteraction(date))
			if err != nil {
				rt.Fatalf("unexpected error: %v", err)
			}
			ids = append(ids, scheduled.ID)
		}

		ops := rapid.IntRange(0, 10).Draw(rt, "ops")
		for i := 0; i < ops; i++ {
			id := rapid.SampledFrom(ids).Draw(rt, "id")
			var err error
			switch rapid.IntRange(0, 2).Draw(rt, "op") {
			case 0:
				err = fx.scheduler.Complete(id, "")
			case 1:
				err = fx.scheduler.Skip(id, "busy")
			case 2:
				date := rapid.SampledFrom(dates).Draw(rt, "newDate")
				err = fx.scheduler.Reschedule(id, date, "")
			}
			if err != nil {
				rt.Fatalf("unexpected error: %v", err)
			}
		}

		all, err := fx.scheduler.All()
		if err != nil {
			rt.Fatalf("unexpected error: %v", err)
		}
		for _, interaction := range all {
			switch interaction.Status {
			case models.StatusPlanned, models.StatusCompleted, models.StatusSkipped:
			default:
				rt.Fatalf("invalid status %q on %s", interaction.Status, interaction.ID)
			}
			if interaction.Status == models.StatusCompleted && interaction.CompletedDate == "" {
				rt.Fatalf("completed interaction %s has no completion date", interaction.ID)
			}
		}
	})
}

// After any mutation, the today view holds exactly the ledger entries whose
// scheduled date is today.
func TestTodayView_MatchesLedger(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		fx := newSchedulerFixture(t)

		dates := []string{"2026-08-28", "2026-09-01", "2026-09-05"}
		var ids []string

		count := rapid.IntRange(1, 5).Draw(rt, "count")
		for i := 0; i < count; i++ {
			date := rapid.SampledFrom(dates).Draw(rt, "date")
			scheduled, err := fx.scheduler.Schedule(plannedInteraction(date))
			if err != nil {
				rt.Fatalf("unexpected error: %v", err)
			}
			ids = append(ids, scheduled.ID)
		}

		ops := rapid.IntRange(1, 8).Draw(rt, "ops")
		for i := 0; i < ops; i++ {
			id := rapid.SampledFrom(ids).Draw(rt, "id")
			date := rapid.SampledFrom(dates).Draw(rt, "newDate")
			if err := fx.scheduler.Reschedule(id, date, ""); err != nil {
				rt.Fatalf("unexpected error: %v", err)
			}
		}

		all, err := fx.scheduler.All()
		if err != nil {
			rt.Fatalf("unexpected error: %v", err)
		}
		want := make(map[string]bool)
		for _, interaction := range all {
			if interaction.ScheduledDate == "2026-09-01" {
				want[interaction.ID] = true
			}
		}

		today := fx.scheduler.Today()
		if len(today) != len(want) {
			rt.Fatalf("today view has %d entries, ledger says %d", len(today), len(want))
		}
		for _, interaction := range today {
			if !want[interaction.ID] {
				rt.Fatalf("today view holds %s which is not scheduled today", interaction.ID)
			}
		}
	})
}
