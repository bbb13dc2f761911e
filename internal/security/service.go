package security

import (
	"fmt"
	"time"

	"stockroom/internal/apperr"
	"stockroom/internal/models"
	"stockroom/internal/utils/crypto"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL     = 24 * time.Hour
	refreshTokenTTL    = 7 * 24 * time.Hour
	activationTokenTTL = 24 * time.Hour
)

const (
	TokenUseAccess     = "access"
	TokenUseRefresh    = "refresh"
	TokenUseActivation = "activation"
)

// Claims carried by every token the service issues.
type Claims struct {
	EmployeeID uint   `json:"employee_id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	TokenUse   string `json:"token_use"`
	jwt.RegisteredClaims
}

// Service is the authorization gate plus the credential plumbing the
// employee flows need. Stateless; safe for concurrent use.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// CheckAccess is called before every mutating or sensitive entry point.
// Callers must not proceed when an error is returned.
func (s *Service) CheckAccess(role models.Role, operation models.Operation, resource models.Resource) error {
	if !HasAccess(role, operation, resource) {
		return apperr.AccessDenied(string(role), string(operation), string(resource))
	}
	return nil
}

func (s *Service) EncodePassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func (s *Service) CheckPassword(password, encodedPassword string) (bool, error) {
	if password == "" || encodedPassword == "" {
		return false, apperr.EmptyData()
	}
	return bcrypt.CompareHashAndPassword([]byte(encodedPassword), []byte(password)) == nil, nil
}

func (s *Service) GenerateAccessToken(employee *models.Employee) (string, time.Time, error) {
	return s.generateToken(employee, TokenUseAccess, accessTokenTTL)
}

func (s *Service) GenerateRefreshToken(employee *models.Employee) (string, time.Time, error) {
	return s.generateToken(employee, TokenUseRefresh, refreshTokenTTL)
}

func (s *Service) GenerateActivationToken(employee *models.Employee) (string, time.Time, error) {
	return s.generateToken(employee, TokenUseActivation, activationTokenTTL)
}

func (s *Service) generateToken(employee *models.Employee, use string, ttl time.Duration) (string, time.Time, error) {
	expiresAt := time.Now().Add(ttl)
	claims := Claims{
		EmployeeID: employee.ID,
		Username:   employee.Username,
		Role:       string(employee.Role),
		TokenUse:   use,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", employee.ID),
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(crypto.PrivateKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// VerifyToken parses and validates a token of any use.
func (s *Service) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return crypto.PublicKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	return claims, nil
}
