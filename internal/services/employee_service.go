package services

import (
	"context"
	"time"

	"stockroom/internal/apperr"
	"stockroom/internal/models"
	"stockroom/internal/repository"
	"stockroom/internal/security"
	"stockroom/internal/utils/logger"
)

// ActivationNotifier delivers the account activation message. The
// production implementation enqueues a background job; tests plug in a
// recorder.
type ActivationNotifier interface {
	SendActivationEmail(ctx context.Context, employee *models.Employee, activationToken string) error
}

type TokenPair struct {
	AccessToken           string    `json:"access_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshToken          string    `json:"refresh_token"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
}

type EmployeeService struct {
	store    repository.Store
	security *security.Service
	notifier ActivationNotifier
	log      *logger.Logger
}

func NewEmployeeService(store repository.Store, sec *security.Service, notifier ActivationNotifier) *EmployeeService {
	return &EmployeeService{
		store:    store,
		security: sec,
		notifier: notifier,
		log:      logger.New("employee_service"),
	}
}

// Register creates an inactive employee and sends the activation email.
// A notifier failure does not roll the registration back.
func (s *EmployeeService) Register(ctx context.Context, username, email, password string, role models.Role) (*models.Employee, error) {
	if username == "" || email == "" || password == "" {
		return nil, apperr.EmptyData()
	}
	if !models.IsValidRole(role) {
		return nil, apperr.InvalidInput("unknown role")
	}

	hashed, err := s.security.EncodePassword(password)
	if err != nil {
		return nil, err
	}

	employee := &models.Employee{
		Username: username,
		Email:    email,
		Password: hashed,
		Role:     role,
		Active:   false,
	}
	err = s.store.Do(ctx, func(r *repository.Repos) error {
		emailTaken, err := r.Employees.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if emailTaken {
			return apperr.EmailAlreadyExists(email)
		}
		usernameTaken, err := r.Employees.ExistsByUsername(ctx, username)
		if err != nil {
			return err
		}
		if usernameTaken {
			return apperr.UsernameAlreadyExists(username)
		}
		return r.Employees.Create(ctx, employee)
	})
	if err != nil {
		return nil, err
	}

	token, _, err := s.security.GenerateActivationToken(employee)
	if err != nil {
		s.log.Error("could not issue activation token for %s: %v", err, username)
		return employee, nil
	}
	if err := s.notifier.SendActivationEmail(ctx, employee, token); err != nil {
		s.log.Error("could not send activation email to %s: %v", err, email)
	}

	s.log.Info("registered employee %q role=%s", username, role)
	return employee, nil
}

// Activate flips the account active using the token from the
// activation email.
func (s *EmployeeService) Activate(ctx context.Context, token string) (*models.Employee, error) {
	claims, err := s.security.VerifyToken(token)
	if err != nil {
		return nil, err
	}
	if claims.TokenUse != security.TokenUseActivation {
		return nil, apperr.InvalidInput("not an activation token")
	}

	var employee *models.Employee
	err = s.store.Do(ctx, func(r *repository.Repos) error {
		var err error
		employee, err = r.Employees.FindByID(ctx, claims.EmployeeID)
		if err != nil {
			return err
		}
		if employee == nil {
			return apperr.EmployeeNotFound(claims.Username)
		}
		if employee.Active {
			return nil
		}
		employee.Active = true
		return r.Employees.Save(ctx, employee)
	})
	if err != nil {
		return nil, err
	}
	return employee, nil
}

// Login verifies the credentials and issues a fresh token pair.
func (s *EmployeeService) Login(ctx context.Context, username, password string) (*models.Employee, *TokenPair, error) {
	if username == "" || password == "" {
		return nil, nil, apperr.EmptyData()
	}

	employee, err := s.store.Repos().Employees.FindByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	if employee == nil {
		return nil, nil, apperr.EmployeeNotFound(username)
	}
	if !employee.Active {
		return nil, nil, apperr.InactiveEmployee(username)
	}
	ok, err := s.security.CheckPassword(password, employee.Password)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, apperr.WrongCredentials()
	}

	pair, err := s.issueTokens(ctx, employee)
	if err != nil {
		return nil, nil, err
	}
	return employee, pair, nil
}

// Refresh exchanges a valid refresh token for a new pair. The token
// must match the one stored for the account.
func (s *EmployeeService) Refresh(ctx context.Context, refreshToken string) (*models.Employee, *TokenPair, error) {
	claims, err := s.security.VerifyToken(refreshToken)
	if err != nil {
		return nil, nil, err
	}
	if claims.TokenUse != security.TokenUseRefresh {
		return nil, nil, apperr.InvalidInput("not a refresh token")
	}

	employee, err := s.store.Repos().Employees.FindByID(ctx, claims.EmployeeID)
	if err != nil {
		return nil, nil, err
	}
	if employee == nil {
		return nil, nil, apperr.EmployeeNotFound(claims.Username)
	}
	if !employee.Active {
		return nil, nil, apperr.InactiveEmployee(employee.Username)
	}
	if employee.RefreshToken != refreshToken || time.Now().After(employee.RefreshTokenExpiresAt) {
		return nil, nil, apperr.WrongCredentials()
	}

	pair, err := s.issueTokens(ctx, employee)
	if err != nil {
		return nil, nil, err
	}
	return employee, pair, nil
}

func (s *EmployeeService) issueTokens(ctx context.Context, employee *models.Employee) (*TokenPair, error) {
	access, accessExp, err := s.security.GenerateAccessToken(employee)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := s.security.GenerateRefreshToken(employee)
	if err != nil {
		return nil, err
	}

	employee.AccessToken = access
	employee.AccessTokenExpiresAt = accessExp
	employee.RefreshToken = refresh
	employee.RefreshTokenExpiresAt = refreshExp
	if err := s.store.Repos().Employees.Save(ctx, employee); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:           access,
		AccessTokenExpiresAt:  accessExp,
		RefreshToken:          refresh,
		RefreshTokenExpiresAt: refreshExp,
	}, nil
}

func (s *EmployeeService) GetEmployee(ctx context.Context, id uint) (*models.Employee, error) {
	employee, err := s.store.Repos().Employees.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperr.NotFound("employee", "")
	}
	return employee, nil
}

// RoleOf resolves the stored role for an authenticated employee id.
func (s *EmployeeService) RoleOf(ctx context.Context, id uint) (models.Role, error) {
	employee, err := s.GetEmployee(ctx, id)
	if err != nil {
		return "", err
	}
	return employee.Role, nil
}

func (s *EmployeeService) ListEmployees(ctx context.Context, role models.Role) ([]models.Employee, error) {
	if role != models.RoleAdmin {
		return nil, apperr.AccessDenied(string(role), "LIST", "EMPLOYEE")
	}
	return s.store.Repos().Employees.FindAll(ctx)
}
