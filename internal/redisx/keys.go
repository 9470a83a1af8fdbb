package redisx

import "time"

const (
	// Pending OTP record: otp:{phone} -> JSON {phone, code, expires_at, attempts}
	KeyOTP = "otp:%s"
)

// Records outlive their logical expiry so verify can still report "expired"
// instead of "not found" before redis evicts the key.
var TTLOTPRecord = 10 * time.Minute
