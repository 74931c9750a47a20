package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"ecommerce-backend/internal/domains/auth"
	"ecommerce-backend/internal/domains/token"
	"ecommerce-backend/internal/domains/user"
	"ecommerce-backend/internal/infrastructure/metrics"
	"ecommerce-backend/internal/infrastructure/queue"
	"ecommerce-backend/internal/shared"
	"ecommerce-backend/pkg/jwt"
	"ecommerce-backend/pkg/logger"
)

const bcryptCost = 12

type authService struct {
	users   user.Repository
	otps    auth.OtpRepository
	tokens  token.Service
	queue   queue.Enqueuer
	metrics *metrics.Metrics
	otpTTL  time.Duration
	cost    int
	now     func() time.Time
}

func NewAuthService(
	users user.Repository,
	otps auth.OtpRepository,
	tokens token.Service,
	enqueuer queue.Enqueuer,
	m *metrics.Metrics,
	otpTTL time.Duration,
) auth.Service {
	return &authService{
		users:   users,
		otps:    otps,
		tokens:  tokens,
		queue:   enqueuer,
		metrics: m,
		otpTTL:  otpTTL,
		cost:    bcryptCost,
		now:     time.Now,
	}
}

// ========================================
// SIGNUP & EMAIL CONFIRMATION
// ========================================

func (s *authService) Signup(ctx context.Context, req auth.SignupRequest) (err error) {
	defer func() { s.metrics.RecordAuth("signup", err) }()

	// 1. EMAIL UNIQUE
	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if exists {
		return auth.ErrEmailExists
	}

	// 2. HASH PASSWORD
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	password := string(hash)

	// 3. CREATE USER
	first, last := req.SplitUsername()
	u := &user.User{
		FirstName:         first,
		LastName:          last,
		Email:             strings.ToLower(req.Email),
		Password:          &password,
		Role:              user.RoleUser,
		Provider:          user.ProviderSystem,
		PreferredLanguage: user.LanguageEN,
		Gender:            user.GenderMale,
		CoverImages:       []string{},
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailExists) {
			return auth.ErrEmailExists
		}
		return err
	}

	// 4. OTP + EMAIL
	return s.issueOtp(ctx, u, shared.OtpConfirmEmail)
}

func (s *authService) ResendConfirmEmail(ctx context.Context, req auth.EmailRequest) error {
	u, err := s.findUnconfirmed(ctx, req.Email)
	if err != nil {
		return err
	}

	active, err := s.otps.FindActive(ctx, u.ID, shared.OtpConfirmEmail, s.now())
	if err != nil {
		return err
	}
	if active != nil {
		return otpStillActive(active)
	}

	return s.issueOtp(ctx, u, shared.OtpConfirmEmail)
}

func (s *authService) ConfirmEmail(ctx context.Context, req auth.ConfirmEmailRequest) (err error) {
	defer func() { s.metrics.RecordAuth("confirm_email", err) }()

	u, err := s.findUnconfirmed(ctx, req.Email)
	if err != nil {
		return err
	}

	otp, err := s.verifyOtp(ctx, u, shared.OtpConfirmEmail, req.Code)
	if err != nil {
		return err
	}

	if err := s.users.MarkConfirmed(ctx, u.ID); err != nil {
		return err
	}
	return s.otps.Delete(ctx, otp.ID)
}

// ========================================
// LOGIN / REFRESH / LOGOUT
// ========================================

// Login - chỉ user đã confirm và provider SYSTEM
// Sai email hay sai password đều trả cùng một lỗi not-found
func (s *authService) Login(ctx context.Context, req auth.LoginRequest) (creds *token.Credentials, err error) {
	defer func() { s.metrics.RecordAuth("login", err) }()

	u, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, auth.ErrAccountNotFound
		}
		return nil, err
	}

	if !u.IsConfirmed() || u.Provider != user.ProviderSystem || !u.HasPassword() {
		return nil, auth.ErrAccountNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.Password), []byte(req.Password)); err != nil {
		return nil, auth.ErrAccountNotFound
	}

	return s.tokens.IssueLoginCredentials(u)
}

// Refresh - refresh token chỉ dùng được một lần
func (s *authService) Refresh(ctx context.Context, u *user.User, claims *jwt.Claims) (creds *token.Credentials, err error) {
	defer func() { s.metrics.RecordAuth("refresh", err) }()

	if err := s.tokens.Revoke(ctx, claims); err != nil {
		return nil, err
	}
	return s.tokens.IssueLoginCredentials(u)
}

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) (err error) {
	defer func() { s.metrics.RecordAuth("logout", err) }()
	return s.tokens.Revoke(ctx, claims)
}

// ========================================
// PASSWORD RESET
// ========================================

func (s *authService) ForgotPassword(ctx context.Context, req auth.EmailRequest) error {
	u, err := s.findResettable(ctx, req.Email)
	if err != nil {
		return err
	}

	active, err := s.otps.FindActive(ctx, u.ID, shared.OtpResetPassword, s.now())
	if err != nil {
		return err
	}
	if active != nil {
		return otpStillActive(active)
	}

	return s.issueOtp(ctx, u, shared.OtpResetPassword)
}

func (s *authService) ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) (err error) {
	defer func() { s.metrics.RecordAuth("reset_password", err) }()

	u, err := s.findResettable(ctx, req.Email)
	if err != nil {
		return err
	}

	otp, err := s.verifyOtp(ctx, u, shared.OtpResetPassword, req.Code)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	// change_credentials_time → mọi token cũ hết hiệu lực
	if err := s.users.UpdatePassword(ctx, u.ID, string(hash), s.now()); err != nil {
		return err
	}
	return s.otps.Delete(ctx, otp.ID)
}

func (s *authService) SweepExpiredOtps(ctx context.Context, now time.Time) (int64, error) {
	deleted, err := s.otps.DeleteExpired(ctx, now)
	if err != nil {
		return 0, err
	}
	logger.Info("Expired otps swept", map[string]interface{}{"deleted": deleted})
	return deleted, nil
}

// ========================================
// HELPERS
// ========================================

func (s *authService) findUnconfirmed(ctx context.Context, email string) (*user.User, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, auth.ErrAccountNotFound
		}
		return nil, err
	}
	if u.IsConfirmed() {
		return nil, auth.ErrAccountNotFound
	}
	return u, nil
}

func (s *authService) findResettable(ctx context.Context, email string) (*user.User, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, auth.ErrAccountNotFound
		}
		return nil, err
	}
	if !u.IsConfirmed() || u.Provider != user.ProviderSystem {
		return nil, auth.ErrAccountNotFound
	}
	return u, nil
}

// issueOtp tạo OTP (lưu hash) và enqueue email chứa mã plain
func (s *authService) issueOtp(ctx context.Context, u *user.User, typ shared.OtpType) error {
	code, err := generateOtp()
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), s.cost)
	if err != nil {
		return fmt.Errorf("hash otp: %w", err)
	}

	otp := &auth.Otp{
		Code:      string(hash),
		Type:      typ,
		CreatedBy: u.ID,
		ExpiresAt: s.now().Add(s.otpTTL),
	}
	if err := s.otps.Create(ctx, otp); err != nil {
		return err
	}

	// Email gửi bất đồng bộ qua worker, lỗi enqueue không làm fail request
	err = s.queue.EnqueueOtpEmail(ctx, shared.OtpEmailPayload{
		Email: u.Email,
		Name:  u.Username(),
		Code:  code,
		Type:  typ,
	})
	if err != nil {
		logger.Error("Failed to enqueue otp email", err)
	}
	return nil
}

func (s *authService) verifyOtp(ctx context.Context, u *user.User, typ shared.OtpType, code string) (*auth.Otp, error) {
	otp, err := s.otps.FindActive(ctx, u.ID, typ, s.now())
	if err != nil {
		return nil, err
	}
	if otp == nil {
		return nil, auth.ErrInvalidOtp
	}
	if err := bcrypt.CompareHashAndPassword([]byte(otp.Code), []byte(code)); err != nil {
		return nil, auth.ErrInvalidOtp
	}
	return otp, nil
}

func otpStillActive(otp *auth.Otp) error {
	return auth.ErrOtpStillActive.WithMessage(
		"Sorry we cannot grant you new OTP until the existing on become expired please try again after:%s",
		otp.ExpiresAt.UTC().Format(time.RFC3339),
	)
}

// generateOtp - 6 chữ số, crypto/rand
func generateOtp() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", auth.OtpLength, n.Int64()), nil
}
