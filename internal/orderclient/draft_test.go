package orderclient

import (
	"errors"
	"testing"
	"time"

	"github.com/limloop/limloop/internal/constants"
	"github.com/limloop/limloop/internal/models"
)

func TestScheduleForSlot(t *testing.T) {
	tests := []struct {
		slot TimeSlot
		want string
	}{
		{TimeSlotMorning, "8h-12h"},
		{TimeSlotAfternoon, "13h-17h"},
		{TimeSlotNone, ""},
	}
	for _, tt := range tests {
		if got := ScheduleForSlot(tt.slot); got != tt.want {
			t.Errorf("ScheduleForSlot(%q) = %q, want %q", tt.slot, got, tt.want)
		}
	}
}

func TestWeightFromOption(t *testing.T) {
	for _, opt := range []string{"1", "2", "3", "4", "5", "10", "15", "20"} {
		if _, err := WeightFromOption(opt); err != nil {
			t.Errorf("WeightFromOption(%q) unexpected error: %v", opt, err)
		}
	}
	for _, opt := range []string{"0", "6", "2.5", "abc", ""} {
		if _, err := WeightFromOption(opt); err == nil {
			t.Errorf("WeightFromOption(%q) should be rejected", opt)
		}
	}
	got, err := WeightFromOption("15")
	if err != nil || got != 15 {
		t.Errorf("WeightFromOption(\"15\") = %d, %v; want 15, nil", got, err)
	}
}

func TestAssembleDraftErrors(t *testing.T) {
	now := time.Now()
	_, err := AssembleDraft(DraftInput{DeliveryMethod: constants.TransportPickup}, 42, now)
	if !errors.Is(err, ErrNoMaterials) {
		t.Errorf("AssembleDraft() with no materials error = %v, want ErrNoMaterials", err)
	}
	_, err = AssembleDraft(DraftInput{
		Materials:      testMaterials(),
		DeliveryMethod: constants.TransportSelfDelivery,
	}, 42, now)
	if !errors.Is(err, ErrNoCenter) {
		t.Errorf("AssembleDraft() without center error = %v, want ErrNoCenter", err)
	}
	_, err = AssembleDraft(DraftInput{
		Materials:      testMaterials(),
		DeliveryMethod: "teleport",
	}, 42, now)
	if !errors.Is(err, ErrUnknownTransport) {
		t.Errorf("AssembleDraft() with bad transport error = %v, want ErrUnknownTransport", err)
	}
}

func TestAssembleDraftTotals(t *testing.T) {
	draft, err := AssembleDraft(DraftInput{
		Materials:      testMaterials(),
		DeliveryMethod: constants.TransportSelfDelivery,
		Center:         testCenter(),
	}, 42, time.Now())
	if err != nil {
		t.Fatalf("AssembleDraft() error = %v", err)
	}
	if got := TotalWeight(draft); got != 5 {
		t.Errorf("TotalWeight() = %d, want 5", got)
	}
	if draft.Status != constants.StatusPendingOrder {
		t.Errorf("draft status = %q, want pending", draft.Status)
	}
}

func TestFormatWorkingTimes(t *testing.T) {
	times := []models.WorkingTime{
		{Day: "Monday-Friday", StartTime: "08:00", EndTime: "17:00"},
		{Day: "Saturday", StartTime: "08:00", EndTime: "12:00"},
	}
	want := "T2 - T6: 08:00 - 17:00\nT7: 08:00 - 12:00"
	if got := FormatWorkingTimes(times); got != want {
		t.Errorf("FormatWorkingTimes() = %q, want %q", got, want)
	}
	if got := FormatWorkingTimes(nil); got != "" {
		t.Errorf("FormatWorkingTimes(nil) = %q, want empty", got)
	}
}
