package domain

import "time"

// AgreementRecord is the durable row representing a user's accepted terms
// and entitlement to the gated download. At most one exists per normalized
// email; the agreements table's conditional put is the final arbiter.
type AgreementRecord struct {
	AgreementID string    `json:"agreement_id" dynamodbav:"agreement_id"`
	Name        string    `json:"name" dynamodbav:"name"`
	Email       string    `json:"email" dynamodbav:"email"`
	Phone       string    `json:"phone,omitempty" dynamodbav:"phone"`
	AgreedAt    time.Time `json:"agreed_at" dynamodbav:"agreed_at"`
}
