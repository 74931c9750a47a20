package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Scheme - signature level, quyết định bộ secret dùng để ký
type Scheme string

const (
	SchemeBearer Scheme = "Bearer" // user thường
	SchemeSystem Scheme = "System" // admin
)

// TokenType - access hoặc refresh
type TokenType string

const (
	TokenAccess  TokenType = "access"
	TokenRefresh TokenType = "refresh"
)

var (
	ErrMalformedHeader = errors.New("malformed authorization header")
	ErrUnknownScheme   = errors.New("unknown authorization scheme")
	ErrWrongTokenType  = errors.New("wrong token type")
	ErrInvalidToken    = errors.New("invalid token")
)

// Claims represents JWT claims structure
// jti (ID) được chia sẻ giữa access và refresh của cùng một lần login
type Claims struct {
	UserID string    `json:"user_id"`
	Role   string    `json:"role"`
	Type   TokenType `json:"typ"`
	jwt.RegisteredClaims
}

// Secrets - cặp secret cho một scheme
type Secrets struct {
	Access  string
	Refresh string
}

// Config cho Manager
type Config struct {
	Bearer        Secrets
	System        Secrets
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// Pair - kết quả một lần cấp credentials
type Pair struct {
	Scheme       Scheme `json:"scheme"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	JTI          string `json:"-"`
}

// Manager handles JWT operations
type Manager struct {
	cfg Config
	now func() time.Time
}

// NewManager creates new JWT manager
func NewManager(cfg Config) *Manager {
	return &Manager{cfg: cfg, now: time.Now}
}

// RefreshExpiry dùng để tính expires_at của revocation record
func (m *Manager) RefreshExpiry() time.Duration {
	return m.cfg.RefreshExpiry
}

// SchemeForRole: admin → System, còn lại → Bearer
func SchemeForRole(role string) Scheme {
	if role == "admin" {
		return SchemeSystem
	}
	return SchemeBearer
}

func (m *Manager) secret(scheme Scheme, typ TokenType) (string, error) {
	var s Secrets
	switch scheme {
	case SchemeBearer:
		s = m.cfg.Bearer
	case SchemeSystem:
		s = m.cfg.System
	default:
		return "", ErrUnknownScheme
	}

	if typ == TokenRefresh {
		return s.Refresh, nil
	}
	return s.Access, nil
}

// GeneratePair ký access + refresh token với cùng jti
func (m *Manager) GeneratePair(userID, role string) (*Pair, error) {
	scheme := SchemeForRole(role)
	jti := uuid.NewString()
	now := m.now()

	access, err := m.sign(scheme, TokenAccess, userID, role, jti, now, m.cfg.AccessExpiry)
	if err != nil {
		return nil, err
	}

	refresh, err := m.sign(scheme, TokenRefresh, userID, role, jti, now, m.cfg.RefreshExpiry)
	if err != nil {
		return nil, err
	}

	return &Pair{Scheme: scheme, AccessToken: access, RefreshToken: refresh, JTI: jti}, nil
}

func (m *Manager) sign(scheme Scheme, typ TokenType, userID, role, jti string, now time.Time, ttl time.Duration) (string, error) {
	secret, err := m.secret(scheme, typ)
	if err != nil {
		return "", err
	}

	claims := Claims{
		UserID: userID,
		Role:   role,
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", typ, err)
	}
	return signed, nil
}

// SplitHeader tách "<Scheme> <token>"
func SplitHeader(header string) (Scheme, string, error) {
	parts := strings.Fields(header)
	if len(parts) != 2 {
		return "", "", ErrMalformedHeader
	}

	scheme := Scheme(parts[0])
	if scheme != SchemeBearer && scheme != SchemeSystem {
		return "", "", ErrUnknownScheme
	}
	return scheme, parts[1], nil
}

// Verify verify token theo scheme + type: signature, expiry, HMAC method, typ claim
func (m *Manager) Verify(scheme Scheme, tokenString string, typ TokenType) (*Claims, error) {
	secret, err := m.secret(scheme, typ)
	if err != nil {
		return nil, err
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithTimeFunc(m.now), jwt.WithIssuedAt())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Type != typ {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrWrongTokenType, typ, claims.Type)
	}
	if claims.ID == "" || claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing jti or user id", ErrInvalidToken)
	}

	return claims, nil
}

// VerifyHeader = SplitHeader + Verify
func (m *Manager) VerifyHeader(header string, typ TokenType) (*Claims, error) {
	scheme, raw, err := SplitHeader(header)
	if err != nil {
		return nil, err
	}
	return m.Verify(scheme, raw, typ)
}
