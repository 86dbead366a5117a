/*
Package auth implements credential login for the leave engine.

PURPOSE:
  Verifies an employee's email/password pair and issues a signed JWT the
  API layer hands back to the client. Credentials are stored as bcrypt
  hashes; plaintext never persists and never leaves the onboarding path.

TOKEN SHAPE:
  HS256, claims: sub (employee id), email, role, exp, iat.
*/
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/block8/leave-engine/leave"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong
// password. The two cases are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Service verifies credentials and issues tokens.
type Service struct {
	Employees leave.EmployeeStore
	Secret    []byte
	TokenTTL  time.Duration

	// Now is the clock, replaceable in tests.
	Now func() time.Time
}

func NewService(employees leave.EmployeeStore, secret []byte, ttl time.Duration) *Service {
	return &Service{
		Employees: employees,
		Secret:    secret,
		TokenTTL:  ttl,
		Now:       time.Now,
	}
}

// HashPassword returns the bcrypt hash of a plaintext credential.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// Login verifies the credential pair and returns a signed token plus the
// authenticated employee.
func (s *Service) Login(ctx context.Context, email, password string) (string, *leave.Employee, error) {
	emp, err := s.Employees.FindByEmail(ctx, email)
	if err != nil {
		if leave.IsNotFound(err) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("resolving employee: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := s.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   emp.ID,
		"email": emp.Email,
		"role":  string(emp.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(s.TokenTTL).Unix(),
	})

	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return "", nil, fmt.Errorf("signing token: %w", err)
	}
	return signed, emp, nil
}

// Verify parses and validates a token, returning the employee id it names.
func (s *Service) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.Secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parsing token: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", errors.New("token missing subject")
	}
	return sub, nil
}
