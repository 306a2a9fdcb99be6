package orderclient

import (
	"errors"
	"fmt"
	"time"

	"github.com/limloop/limloop/internal/constants"
	"github.com/limloop/limloop/internal/models"
)

var (
	ErrNoMaterials      = errors.New("at least one material must be selected")
	ErrNoCenter         = errors.New("collection center is required for self delivery")
	ErrUnknownTransport = errors.New("unknown delivery method")
)

// SelectedMaterial is a material chosen on the selection screen, with its
// weight already numeric. Title and image are re-hydrated from the types
// endpoint before assembly.
type SelectedMaterial struct {
	TypeID   int64
	Title    string
	ImageURL string
	WeightKg int
}

type TimeSlot string

const (
	TimeSlotNone      TimeSlot = ""
	TimeSlotMorning   TimeSlot = "morning"
	TimeSlotAfternoon TimeSlot = "afternoon"
)

// weightOptions is the fixed set offered by the weight picker.
var weightOptions = []int{1, 2, 3, 4, 5, 10, 15, 20}

const DefaultWeightKg = 2

// WeightFromOption converts a picker option string to kilograms, rejecting
// anything outside the enumerated set.
func WeightFromOption(s string) (int, error) {
	for _, opt := range weightOptions {
		if fmt.Sprintf("%d", opt) == s {
			return opt, nil
		}
	}
	return 0, fmt.Errorf("weight option %q is not offered", s)
}

// ScheduleForSlot maps a pickup time slot to its display label. No slot means
// an empty schedule, which is only meaningful for self-delivery orders.
func ScheduleForSlot(slot TimeSlot) string {
	switch slot {
	case TimeSlotMorning:
		return constants.ScheduleMorning
	case TimeSlotAfternoon:
		return constants.ScheduleAfternoon
	}
	return ""
}

type Sender struct {
	Name    string
	Phone   string
	Address string
}

// DraftInput is everything the order screens collect before submission.
type DraftInput struct {
	Materials      []SelectedMaterial
	DeliveryMethod string
	Sender         Sender
	ReceiveDate    time.Time
	TimeSlot       TimeSlot
	Center         *models.Center
	Note           string
}

// AssembleDraft builds the exact request body for the order-creation endpoint.
// For pickup orders receiveDate is the chosen date; for self-delivery it is
// the submission moment, pending a settled business rule.
func AssembleDraft(in DraftInput, customerID int64, now time.Time) (models.OrderDraft, error) {
	if len(in.Materials) == 0 {
		return models.OrderDraft{}, ErrNoMaterials
	}
	items := make([]models.OrderItem, 0, len(in.Materials))
	for _, m := range in.Materials {
		items = append(items, models.OrderItem{TypeName: m.Title, Quantity: m.WeightKg})
	}
	draft := models.OrderDraft{
		CustomerID: customerID,
		Transport:  in.DeliveryMethod,
		Status:     constants.StatusPendingOrder,
		Items:      items,
		Note:       in.Note,
		Schedule:   ScheduleForSlot(in.TimeSlot),
	}
	switch in.DeliveryMethod {
	case constants.TransportPickup:
		receiveDate := in.ReceiveDate
		draft.ReceiveDate = &receiveDate
	case constants.TransportSelfDelivery:
		if in.Center == nil {
			return models.OrderDraft{}, ErrNoCenter
		}
		draft.CenterID = in.Center.ID
		receiveDate := now
		draft.ReceiveDate = &receiveDate
	default:
		return models.OrderDraft{}, ErrUnknownTransport
	}
	return draft, nil
}

// TotalWeight sums the item quantities of an assembled draft.
func TotalWeight(draft models.OrderDraft) int {
	total := 0
	for _, item := range draft.Items {
		total += item.Quantity
	}
	return total
}
