package models

// Session is a signed-in device stored in DynamoDB.
type Session struct {
	DeviceID  string `dynamodbav:"deviceId" json:"deviceId"`   // ✅ Partition Key
	UserID    string `dynamodbav:"userId" json:"userId"`       // Owner of the session
	Token     string `dynamodbav:"token" json:"-"`             // Bearer token for the REST backend
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"` // RFC3339
}

// SessionsTable is the DynamoDB table name for device sessions
const SessionsTable = "Sessions"
