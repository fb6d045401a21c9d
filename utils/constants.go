// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis token hash cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for token hash cache entries.
const AuthCacheTTL = 10 * time.Minute

// Session store key prefixes. PersistentPrefix mirrors the remembered scope,
// SessionPrefix the session-only scope; a token lives under exactly one of them.
const (
	PersistentPrefix = "persistent:"
	SessionPrefix    = "session:"
)

// PersistentTTL bounds remembered tokens; SessionTTL bounds session-only tokens.
const (
	PersistentTTL = 30 * 24 * time.Hour
	SessionTTL    = 12 * time.Hour
)

// Session store keys shared with the booking and payment flows.
const (
	KeyToken                = "token"
	KeyEmployeeToken        = "employeeToken"
	KeyAdminToken           = "adminToken"
	KeyPendingAppointmentID = "pendingAppointmentId"
	KeyPendingOrderID       = "pendingOrderId"
	KeyPendingInvoiceID     = "pendingInvoiceId"
	KeyMeetingFormData      = "meetingFormData"
)
