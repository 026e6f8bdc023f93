package contract

// AdvanceRequest asks for the stage after the given one in pipeline order.
type AdvanceRequest struct {
	CurrentStageID int64
}

func NewAdvanceRequest(currentStageID int64) AdvanceRequest {
	return AdvanceRequest{CurrentStageID: currentStageID}
}

// AdvanceResponse names the next stage. Wrapped is true when the advance
// crossed the end of the pipeline and cycled back to the first stage.
type AdvanceResponse struct {
	NextStageID int64
	NextStage   string
	NextLabel   string
	Wrapped     bool
}

type AdvanceErrorCode string

const (
	AdvanceErrUnknownStage  AdvanceErrorCode = "UNKNOWN_STAGE"
	AdvanceErrUnknownJob    AdvanceErrorCode = "UNKNOWN_JOB"
	AdvanceErrInvalidConfig AdvanceErrorCode = "INVALID_CONFIG"
	AdvanceErrInternal      AdvanceErrorCode = "INTERNAL_ERROR"
)

type AdvanceError struct {
	Code    AdvanceErrorCode
	Message string
}

func (e *AdvanceError) Error() string {
	return string(e.Code) + ": " + e.Message
}
