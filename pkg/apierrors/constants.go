package apierrors

const (
	MsgInvalidTaskID      = "invalidTaskID"
	MsgInvalidTaskPayload = "invalidTaskPayload"
	MsgTitleRequired      = "titleRequired"
	MsgTitleEmpty         = "titleEmpty"
	MsgInvalidStatus      = "invalidStatus"
	MsgNothingToUpdate    = "nothingToUpdate"
	MsgTaskNotFound       = "taskNotFound"
	MsgServerError        = "serverError"
)
