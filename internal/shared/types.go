package shared

// ============================================
// ASYNQ TASK TYPES & QUEUES
// ============================================

const (
	TypeSendOtpEmail       = "email:otp"
	TypeSweepRevokedTokens = "token:sweep_revoked"
	TypeSweepExpiredOtps   = "otp:sweep_expired"

	QueueEmail       = "email"
	QueueMaintenance = "maintenance"
)

// OtpType - mục đích của OTP, cũng là subject của email
type OtpType string

const (
	OtpConfirmEmail  OtpType = "Confirm-Email"
	OtpResetPassword OtpType = "Reset-Password"
)

func (t OtpType) Valid() bool {
	return t == OtpConfirmEmail || t == OtpResetPassword
}

// OtpEmailPayload - payload của TypeSendOtpEmail
// Code là OTP dạng plain, chỉ tồn tại trong queue tới khi email được gửi
type OtpEmailPayload struct {
	Email string  `json:"email"`
	Name  string  `json:"name"`
	Code  string  `json:"code"`
	Type  OtpType `json:"type"`
}

// SweepPayload - payload rỗng cho các sweep job
type SweepPayload struct{}
