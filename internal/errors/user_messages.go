package errors

// User-friendly error messages
const (
	MsgInvalidAddress     = "The address could not be read. Expected \"[unit/]number street, suburb, STATE postcode\"."
	MsgNotFound           = "No matching suburb or postcode was found."
	MsgParseFailed        = "The text could not be parsed."
	MsgValidationFailed   = "The supplied values are inconsistent with each other."
	MsgNotImplemented     = "This option is not supported yet."
	MsgServiceUnavailable = "A backing store is unavailable right now. Please try again in a few minutes."
	MsgRateLimited        = "Too many requests. Please wait a moment and try again."
	MsgInvalidParameters  = "The provided parameters are invalid. Please check your input and try again."
	MsgInternalError      = "Something went wrong on our end. Please try again later."
)
