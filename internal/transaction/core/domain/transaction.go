package domain

import "time"

// TransactionStatus represents the review state of a transaction.
type TransactionStatus string

const (
	StatusSubmitted TransactionStatus = "submitted"
	StatusAccepted  TransactionStatus = "accepted"
	StatusRejected  TransactionStatus = "rejected"
)

// Valid reports whether s is a known status.
func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusSubmitted, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Transaction is a recorded financial transaction under fraud review.
type Transaction struct {
	ID        int64             `json:"id"`
	Customer  string            `json:"customer"`
	VendorID  string            `json:"vendor_id"`
	Amount    float64           `json:"amount"`
	Timestamp time.Time         `json:"timestamp"`
	Status    TransactionStatus `json:"status"`
}

// Prediction is a fraud-model verdict for a transaction. A transaction may
// accumulate several; the most recent by timestamp is the current one.
type Prediction struct {
	ID            int64     `json:"id"`
	TransactionID int64     `json:"transaction_id"`
	IsFraudulent  bool      `json:"is_fraudulent"`
	Confidence    float64   `json:"confidence"`
	Timestamp     time.Time `json:"timestamp"`
}

// Identity is the verified caller identity returned by the Authentication
// Service.
type Identity struct {
	Username string
	Role     string
}

const (
	RoleAdmin     = "admin"
	RoleSecretary = "secretary"
	RoleAgent     = "agent"
)
