package service

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"time"

	"uni-marketplace/internal/domain"
	"uni-marketplace/internal/marketclient"
	"uni-marketplace/internal/store"
	"uni-marketplace/pkg/email"
	"uni-marketplace/pkg/ratelimit"
	"uni-marketplace/pkg/security"
)

const (
	maxSendsPerWindow    = 3
	maxAttemptsPerWindow = 5
	limitWindow          = 15 * time.Minute
)

// AuthService owns the OTP login flow. Codes are generated and verified
// here, never in the browser; the browser only ever submits an email and a
// code. A verified login is saved through to the backend, which hands back
// the user identifier carried in the session.
type AuthService struct {
	otps         *store.OTPStore
	market       *marketclient.Client
	emailService email.Service
	otpGenerator *security.OTPGenerator
	limiter      *ratelimit.Limiter
	emailPattern *regexp.Regexp
	otpTTL       time.Duration
}

func NewAuthService(
	otps *store.OTPStore,
	market *marketclient.Client,
	emailService email.Service,
	otpGenerator *security.OTPGenerator,
	limiter *ratelimit.Limiter,
	emailDomain string,
	otpTTL time.Duration,
) *AuthService {
	pattern := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@` + regexp.QuoteMeta(emailDomain) + `$`)

	return &AuthService{
		otps:         otps,
		market:       market,
		emailService: emailService,
		otpGenerator: otpGenerator,
		limiter:      limiter,
		emailPattern: pattern,
		otpTTL:       otpTTL,
	}
}

// SendOTP validates the address against the institutional domain, then
// generates, emails, and records a fresh code. Nothing is recorded when the
// address fails validation or the send fails.
func (s *AuthService) SendOTP(ctx context.Context, emailAddr string) error {
	if !s.emailPattern.MatchString(emailAddr) {
		return domain.ErrInvalidEmail
	}

	if !s.limiter.Allow("send:"+emailAddr, maxSendsPerWindow, limitWindow) {
		log.Printf("OTP send rate limit hit for %s", emailAddr)
		return domain.ErrTooManyRequests
	}

	code, err := s.otpGenerator.Generate()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	subject := "Your Uni Marketplace login code"
	body := fmt.Sprintf("Your one-time code is: %s<br>It expires in %d minutes.", code, int(s.otpTTL.Minutes()))
	if err := s.emailService.SendEmail(emailAddr, subject, body); err != nil {
		log.Printf("Error sending OTP email to %s: %v", emailAddr, err)
		return fmt.Errorf("failed to send OTP email: %w", err)
	}

	s.otps.Store(emailAddr, code, time.Now().Add(s.otpTTL))

	log.Printf("OTP sent successfully to: %s", emailAddr)
	return nil
}

// VerifyOTP checks the code against the most recently issued one and, on
// match, saves the login through to the backend. The code is consumed only
// after the backend accepts the save, so a backend outage lets the user
// retry the same code.
func (s *AuthService) VerifyOTP(ctx context.Context, emailAddr, code string) (string, error) {
	if !s.limiter.Allow("verify:"+emailAddr, maxAttemptsPerWindow, limitWindow) {
		log.Printf("OTP verify rate limit hit for %s", emailAddr)
		return "", domain.ErrTooManyRequests
	}

	pending, err := s.otps.Latest(emailAddr)
	if err != nil {
		if err == domain.ErrOTPNotFound {
			return "", domain.ErrInvalidOTP
		}
		return "", fmt.Errorf("failed to get OTP: %w", err)
	}

	if !pending.Matches(code) {
		if pending.IsExpired() {
			return "", domain.ErrOTPExpired
		}
		return "", domain.ErrInvalidOTP
	}

	userID, err := s.market.SaveUser(ctx, emailAddr, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to save user: %w", err)
	}

	s.otps.Delete(emailAddr)
	s.limiter.Reset("verify:" + emailAddr)

	log.Printf("User %s authenticated successfully", emailAddr)
	return userID, nil
}
