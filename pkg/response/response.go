package response

import "errors"

type Response struct {
	ResponseError `json:"error,omitzero"`
}

type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

//Error Codes
type ErrCode string

var (
	FAILED_REQUEST         ErrCode = "REQUEST_FAILED"
	BAD_REQUEST            ErrCode = "FAILED_TO_DECODE"
	NOT_FOUND              ErrCode = "NOT_FOUND"
	LOCKED                 ErrCode = "LOCKED"
	CONFLICT               ErrCode = "CONFLICT"
	NOTICE_TOO_SHORT       ErrCode = "NOTICE_TOO_SHORT"
	SEGMENT_UNAVAILABLE    ErrCode = "SEGMENT_UNAVAILABLE"
	CANNOT_SPAN_BLOCKS     ErrCode = "CANNOT_SPAN_BLOCKS"
	SELECTION_TOO_SHORT    ErrCode = "SELECTION_TOO_SHORT"
	INCONSISTENT_SELECTION ErrCode = "INCONSISTENT_SELECTION"
	BOOKING_CONFLICT       ErrCode = "BOOKING_CONFLICT"
)

var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("resource not found")
	ErrLocked     = errors.New("resource is locked")
	ErrConflict   = errors.New("conflict")

	// Selection/booking taxonomy. All recoverable at the caller: either a
	// validation message or a forced re-fetch of the scope's blocks.
	ErrNoticeTooShort        = errors.New("segment starts inside the notice window")
	ErrSegmentUnavailable    = errors.New("no block contains the segment")
	ErrCannotSpanBlocks      = errors.New("selection cannot span blocks")
	ErrSelectionTooShort     = errors.New("selection is shorter than the minimum duration")
	ErrInconsistentSelection = errors.New("selected slots are not contiguous")
	ErrBookingConflict       = errors.New("slot is no longer available")
)

func Error(code, msg string) Response {
	return Response{
		ResponseError: ResponseError{
			Code:    code,
			Message: msg,
		},
	}
}
