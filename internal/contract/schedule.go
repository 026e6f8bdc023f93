package contract

import "time"

// ScheduleRequest asks for the upstream production dates implied by a
// delivery date. DeliveryDate is a wire-format DD/MM/YYYY string.
type ScheduleRequest struct {
	DeliveryDate string
	Now          *time.Time
}

func NewScheduleRequest(deliveryDate string) ScheduleRequest {
	return ScheduleRequest{DeliveryDate: deliveryDate}
}

// ScheduleResponse carries the computed dates in wire format. A nil date
// means the stage could not be resolved from the configured lead times;
// callers render it as a gap, never as an error.
type ScheduleResponse struct {
	DeliveryDate  string
	AssemblyDate  *string
	MachiningDate *string
	NestingDate   *string
	Warnings      []string
}

type ScheduleErrorCode string

const (
	ScheduleErrInvalidDate    ScheduleErrorCode = "INVALID_DATE"
	ScheduleErrUnknownJob     ScheduleErrorCode = "UNKNOWN_JOB"
	ScheduleErrNoDeliveryDate ScheduleErrorCode = "NO_DELIVERY_DATE"
	ScheduleErrInvalidConfig  ScheduleErrorCode = "INVALID_CONFIG"
	ScheduleErrInternal       ScheduleErrorCode = "INTERNAL_ERROR"
)

type ScheduleError struct {
	Code    ScheduleErrorCode
	Message string
}

func (e *ScheduleError) Error() string {
	return string(e.Code) + ": " + e.Message
}
