package client

import (
	"fmt"

	"github.com/gurre/mws/response"
)

// TransportError covers connection failures, timeouts and HTTP-level
// failures where no service error document was returned. When response
// headers were received, the service request ID and timestamp are carried
// along for support tickets.
type TransportError struct {
	Err        error
	StatusCode int
	Body       []byte
	RequestID  string
	Timestamp  string
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request failed: %v", e.Err)
	}
	return fmt.Sprintf("request failed with HTTP status %d", e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError is a decoded MWS ErrorResponse document. Code and Message
// are surfaced verbatim from the service.
type ProtocolError struct {
	Code       string
	Message    string
	Type       string
	RequestID  string
	StatusCode int
	Response   *response.Response
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("MWS error %s: %s (request ID %s)", e.Code, e.Message, e.RequestID)
}

// decodeErrorResponse extracts a ProtocolError from an ErrorResponse
// body, or returns nil when the body is not one.
func decodeErrorResponse(status int, res *response.Response) *ProtocolError {
	tree := res.Tree()
	if tree == nil {
		return nil
	}
	root := tree.GetDict("ErrorResponse")
	if root == nil {
		return nil
	}
	// the service spells the request ID field both ways
	requestID := root.GetString("RequestID")
	if requestID == "" {
		requestID = root.GetString("RequestId")
	}
	return &ProtocolError{
		Code:       root.GetString("Error.Code"),
		Message:    root.GetString("Error.Message"),
		Type:       root.GetString("Error.Type"),
		RequestID:  requestID,
		StatusCode: status,
		Response:   res,
	}
}
