package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"food-delivery/internal/domain"
	tokenrepo "food-delivery/internal/repository/token"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

type userRepo interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, companyID, email string) (*domain.User, error)
	GetByID(ctx context.Context, companyID, id string) (*domain.User, error)
	UpdatePassword(ctx context.Context, companyID, id, passwordHash string) error
}

type companyRepo interface {
	CreateWithAdmin(ctx context.Context, c domain.Company, admin domain.User) (*domain.Company, *domain.User, error)
}

// Service handles signup, login and password reset flows.
type Service struct {
	users       userRepo
	companies   companyRepo
	tokens      *tokenManager
	logger      *zap.SugaredLogger
	now         func() time.Time
	accessTTL   time.Duration
	refreshTTL  time.Duration
	resetTTL    time.Duration
	passwordMin int
}

// New creates a Service with sane defaults.
func New(users userRepo, companies companyRepo, tokens tokenrepo.Repository, logger *zap.SugaredLogger) *Service {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Service{
		users:       users,
		companies:   companies,
		tokens:      newTokenManager(tokens, time.Now),
		logger:      logger,
		now:         time.Now,
		accessTTL:   48 * time.Hour,
		refreshTTL:  30 * 24 * time.Hour,
		resetTTL:    time.Hour,
		passwordMin: 8,
	}
}

// SignupInput captures fields expected by the customer signup endpoint.
type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// AdminSignupInput creates a company together with its admin account.
type AdminSignupInput struct {
	CompanyName  string `json:"companyName"`
	CompanyPhone string `json:"companyPhone"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
}

// Session is the result of a successful login.
type Session struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	ExpiresIn    int          `json:"expiresIn"`
}

// Signup registers a customer within the given company.
func (s *Service) Signup(ctx context.Context, companyID string, in SignupInput) (*domain.User, error) {
	u, err := s.newUser(in.Name, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	u.CompanyID = companyID
	u.Phone = strings.TrimSpace(in.Phone)
	u.Role = domain.RoleCustomer
	return s.users.Create(ctx, u)
}

// SignupAdmin creates a company, slugged from its name, and its admin user.
func (s *Service) SignupAdmin(ctx context.Context, in AdminSignupInput) (*domain.Company, *domain.User, error) {
	companyName := strings.TrimSpace(in.CompanyName)
	if companyName == "" {
		return nil, nil, domain.Invalid("companyName", "nome da empresa é obrigatório")
	}
	slug := Slugify(companyName)
	if slug == "" {
		return nil, nil, domain.Invalid("companyName", "nome da empresa inválido")
	}
	u, err := s.newUser(in.Name, in.Email, in.Password)
	if err != nil {
		return nil, nil, err
	}
	c, admin, err := s.companies.CreateWithAdmin(ctx, domain.Company{
		Name:  companyName,
		Phone: strings.TrimSpace(in.CompanyPhone),
		Slug:  slug,
	}, u)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Infow("auth: company created", "company_id", c.ID, "slug", c.Slug, "admin_id", admin.ID)
	return c, admin, nil
}

// CreateUser registers a staff account with an explicit role. Used for
// deliverers and PDV operators.
func (s *Service) CreateUser(ctx context.Context, companyID string, u domain.User, password string) (*domain.User, error) {
	base, err := s.newUser(u.Name, u.Email, password)
	if err != nil {
		return nil, err
	}
	u.CompanyID = companyID
	u.Name = base.Name
	u.Email = base.Email
	u.PasswordHash = base.PasswordHash
	return s.users.Create(ctx, u)
}

func (s *Service) newUser(name, email, password string) (domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return domain.User{}, domain.Invalid("email", "email inválido")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.User{}, domain.Invalid("name", "nome é obrigatório")
	}
	hashed, err := s.hashPassword(password)
	if err != nil {
		return domain.User{}, err
	}
	return domain.User{Name: name, Email: email, PasswordHash: hashed}, nil
}

func (s *Service) hashPassword(password string) (string, error) {
	password = strings.TrimSpace(password)
	if err := validatePassword(password, s.passwordMin); err != nil {
		return "", err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Login validates credentials and returns issued tokens plus the user.
func (s *Service) Login(ctx context.Context, companyID, email, password string) (*Session, error) {
	password = strings.TrimSpace(password)
	u, err := s.users.GetByEmail(ctx, companyID, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if u.Role == domain.RoleDeliverer && u.DelivererStatus == domain.DelivererInactive {
		return nil, ErrInvalidCredentials
	}

	access, err := s.tokens.Issue(ctx, u.CompanyID, u.ID, tokenrepo.KindAccess, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.Issue(ctx, u.CompanyID, u.ID, tokenrepo.KindRefresh, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &Session{User: u, AccessToken: access, RefreshToken: refresh, ExpiresIn: s.AccessTTLSeconds()}, nil
}

// Refresh trades a refresh token for a new access token.
func (s *Service) Refresh(ctx context.Context, companyID, refreshToken string) (*Session, error) {
	meta, ok := s.tokens.Validate(ctx, refreshToken, tokenrepo.KindRefresh)
	if !ok || meta.CompanyID != companyID {
		return nil, ErrInvalidToken
	}
	u, err := s.users.GetByID(ctx, companyID, meta.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	access, err := s.tokens.Issue(ctx, companyID, u.ID, tokenrepo.KindAccess, s.accessTTL)
	if err != nil {
		return nil, err
	}
	return &Session{User: u, AccessToken: access, RefreshToken: refreshToken, ExpiresIn: s.AccessTTLSeconds()}, nil
}

// Logout revokes an access token.
func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.tokens.Revoke(ctx, token); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}

// LookupByToken returns the user bound to a valid access token.
func (s *Service) LookupByToken(ctx context.Context, companyID, token string) (*domain.User, error) {
	meta, ok := s.tokens.Validate(ctx, token, tokenrepo.KindAccess)
	if !ok || meta.CompanyID != companyID {
		return nil, ErrInvalidToken
	}
	u, err := s.users.GetByID(ctx, companyID, meta.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return u, nil
}

// RequestPasswordReset issues a reset token for email. Unknown emails yield
// an empty token and no error so callers cannot probe for accounts.
func (s *Service) RequestPasswordReset(ctx context.Context, companyID, email string) (string, error) {
	u, err := s.users.GetByEmail(ctx, companyID, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Infow("auth: reset requested for unknown email", "company_id", companyID)
			return "", nil
		}
		return "", err
	}
	token, err := s.tokens.Issue(ctx, companyID, u.ID, tokenrepo.KindReset, s.resetTTL)
	if err != nil {
		return "", err
	}
	s.logger.Infow("auth: reset token issued", "company_id", companyID, "user_id", u.ID)
	return token, nil
}

// ResetPassword sets a new password using a reset token. The token and all
// access tokens of the user are revoked.
func (s *Service) ResetPassword(ctx context.Context, companyID, token, newPassword string) error {
	meta, ok := s.tokens.Validate(ctx, token, tokenrepo.KindReset)
	if !ok || meta.CompanyID != companyID {
		return ErrInvalidToken
	}
	hashed, err := s.hashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, companyID, meta.UserID, hashed); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if err := s.tokens.Revoke(ctx, token); err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.logger.Warnw("auth: revoke reset token", "user_id", meta.UserID, "error", err)
	}
	if err := s.tokens.RevokeAll(ctx, meta.UserID, tokenrepo.KindAccess); err != nil {
		s.logger.Warnw("auth: revoke access tokens", "user_id", meta.UserID, "error", err)
	}
	return nil
}

// AccessTTLSeconds exposes the access token lifetime in seconds.
func (s *Service) AccessTTLSeconds() int {
	return int(s.accessTTL.Seconds())
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func validatePassword(p string, min int) error {
	trimmed := strings.TrimSpace(p)
	if len(trimmed) < min {
		return domain.Invalid("password", fmt.Sprintf("a senha deve ter pelo menos %d caracteres", min))
	}
	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, r := range trimmed {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return domain.Invalid("password", "a senha deve conter ao menos 1 letra maiúscula, 1 minúscula e 1 número")
	}
	return nil
}
