package constants

const (
	CntTypeHeaderJSON = "application/json"
	HeaderToken       = "Authorization"
	BearerPrefix      = "Bearer "

	StatusPendingOrder    = "pending"
	StatusProcessingOrder = "processing"
	StatusInvalidOrder    = "invalid"
	StatusProcessedOrder  = "processed"

	TransportPickup       = "pickup"
	TransportSelfDelivery = "selfDelivery"

	ScheduleMorning   = "8h-12h"
	ScheduleAfternoon = "13h-17h"
)
