package domain

// PendingVerification links a session to an issued OTP and its expiry.
// PK: session_id. At most one exists per session; re-issuing replaces it.
// ExpiresAt doubles as the DynamoDB TTL attribute (Unix seconds); the
// workflow still checks it on every verification attempt since TTL
// reaping is lazy.
type PendingVerification struct {
	SessionID string `json:"session_id" dynamodbav:"session_id"`
	Email     string `json:"email" dynamodbav:"email"`
	Name      string `json:"name" dynamodbav:"name"`
	Phone     string `json:"phone,omitempty" dynamodbav:"phone"`
	Code      string `json:"code" dynamodbav:"code"`
	IssuedAt  int64  `json:"issued_at" dynamodbav:"issued_at"`
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}
