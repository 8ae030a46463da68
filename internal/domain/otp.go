package domain

import "time"

// PendingOTP is a code that has been emailed but not yet verified. Pending
// codes live only in memory between issuance and verification; a restart
// discards them and the user simply requests a new one.
type PendingOTP struct {
	Email     string
	Code      string
	ExpiresAt time.Time
}

func (o *PendingOTP) IsExpired() bool {
	return time.Now().After(o.ExpiresAt)
}

func (o *PendingOTP) Matches(code string) bool {
	return o.Code == code && !o.IsExpired()
}

func (o *PendingOTP) Validate() error {
	if o.Email == "" {
		return ErrInvalidOTPEmail
	}
	if o.Code == "" {
		return ErrInvalidOTP
	}
	return nil
}
