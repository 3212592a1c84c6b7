package entity

import "fmt"

// GatewayError is returned when the gateway answers with a non-2xx status and a JSON error body.
type GatewayError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func (e *GatewayError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// HTTPError is returned when a non-2xx response body is not JSON.
type HTTPError struct {
	StatusText string `json:"statusText"`
	StatusCode int    `json:"statusCode"`
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d %s", e.StatusCode, e.StatusText)
}

// TransactionFailedError is raised by the confirmation loop when the ledger reports
// a transaction as rejected or not received. Response holds the full status payload.
type TransactionFailedError struct {
	Response TransactionStatusResponse
}

func (e *TransactionFailedError) Error() string {
	if r := e.Response.TxFailureReason; r != nil {
		return fmt.Sprintf("%s: %s\n%s", e.Response.TxStatus, r.Code, r.ErrorMessage)
	}
	return string(e.Response.TxStatus)
}
