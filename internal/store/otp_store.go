package store

import (
	"sync"
	"time"

	"uni-marketplace/internal/domain"
)

// OTPStore keeps pending one-time codes in memory, keyed by email. Storing a
// new code for an email replaces any earlier one, so only the most recently
// issued code can verify.
type OTPStore struct {
	mu      sync.RWMutex
	pending map[string]domain.PendingOTP
}

func NewOTPStore() *OTPStore {
	s := &OTPStore{
		pending: make(map[string]domain.PendingOTP),
	}
	go s.cleanup()
	return s
}

func (s *OTPStore) Store(email, code string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending[email] = domain.PendingOTP{
		Email:     email,
		Code:      code,
		ExpiresAt: expiresAt,
	}
}

// Latest returns the pending code for an email, expired or not. Callers
// decide how to surface expiry.
func (s *OTPStore) Latest(email string) (*domain.PendingOTP, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	otp, ok := s.pending[email]
	if !ok {
		return nil, domain.ErrOTPNotFound
	}
	return &otp, nil
}

func (s *OTPStore) Delete(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, email)
}

func (s *OTPStore) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		for email, otp := range s.pending {
			if otp.IsExpired() {
				delete(s.pending, email)
			}
		}
		s.mu.Unlock()
	}
}
