package entity

// TransactionStatus is the lifecycle state reported by get_transaction_status.
type TransactionStatus string

const (
	StatusNotReceived  TransactionStatus = "NOT_RECEIVED"
	StatusReceived     TransactionStatus = "RECEIVED"
	StatusPending      TransactionStatus = "PENDING"
	StatusAcceptedOnL2 TransactionStatus = "ACCEPTED_ON_L2"
	StatusAcceptedOnL1 TransactionStatus = "ACCEPTED_ON_L1"
	StatusRejected     TransactionStatus = "REJECTED"
)

// IsSuccessful reports statuses that end the confirmation loop normally.
func (s TransactionStatus) IsSuccessful() bool {
	switch s {
	case StatusAcceptedOnL1, StatusAcceptedOnL2, StatusPending:
		return true
	}
	return false
}

// IsFailure reports statuses that end the confirmation loop with an error.
func (s TransactionStatus) IsFailure() bool {
	return s == StatusRejected || s == StatusNotReceived
}

// TransactionFailureReason is attached to REJECTED transactions.
type TransactionFailureReason struct {
	Code         string `json:"code"`
	ErrorMessage string `json:"error_message"`
	TxID         int64  `json:"tx_id,omitempty"`
}

// TransactionStatusResponse is the payload of get_transaction_status.
type TransactionStatusResponse struct {
	TxStatus        TransactionStatus         `json:"tx_status"`
	BlockHash       string                    `json:"block_hash,omitempty"`
	TxFailureReason *TransactionFailureReason `json:"tx_failure_reason,omitempty"`
}
