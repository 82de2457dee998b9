package constants

// Redis key formats
const (
	// OTP Engine
	KeyOTPChallenge = "otp:challenge:%s:%s" // Format: otp:challenge:{purpose}:{contact}

	// Session store
	KeySession = "session:%s" // Format: session:{session_id}

	// Rate limiting prefix; the middleware appends {path}:{ip}
	KeyRateLimit = "rate:limit"
)
