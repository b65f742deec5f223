package deliverer

import (
	"context"
	"strings"

	"food-delivery/internal/domain"
)

type userRepo interface {
	GetByID(ctx context.Context, companyID, id string) (*domain.User, error)
	ListByRole(ctx context.Context, companyID string, role domain.Role) ([]domain.User, error)
	UpdateProfile(ctx context.Context, u domain.User) (*domain.User, error)
	SetDelivererStatus(ctx context.Context, companyID, id string, status domain.DelivererStatus) (*domain.User, error)
}

type accountCreator interface {
	CreateUser(ctx context.Context, companyID string, u domain.User, password string) (*domain.User, error)
}

type Service struct {
	users    userRepo
	accounts accountCreator
}

func New(users userRepo, accounts accountCreator) *Service {
	return &Service{users: users, accounts: accounts}
}

type Input struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Plate    string `json:"plate"`
	CPF      string `json:"cpf"`
	Password string `json:"password,omitempty"`
}

func (s *Service) List(ctx context.Context, companyID string) ([]domain.User, error) {
	return s.users.ListByRole(ctx, companyID, domain.RoleDeliverer)
}

// ListActive is what dispatch offers when an order goes out.
func (s *Service) ListActive(ctx context.Context, companyID string) ([]domain.User, error) {
	all, err := s.List(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(all))
	for _, u := range all {
		if u.DelivererStatus == domain.DelivererActive {
			out = append(out, u)
		}
	}
	return out, nil
}

// Create registers a courier account. New couriers start active.
func (s *Service) Create(ctx context.Context, companyID string, in Input) (*domain.User, error) {
	u, err := profile(in)
	if err != nil {
		return nil, err
	}
	u.Role = domain.RoleDeliverer
	u.DelivererStatus = domain.DelivererActive
	return s.accounts.CreateUser(ctx, companyID, u, in.Password)
}

func (s *Service) Update(ctx context.Context, companyID, id string, in Input) (*domain.User, error) {
	current, err := s.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	u, err := profile(in)
	if err != nil {
		return nil, err
	}
	current.Name = u.Name
	current.Email = strings.ToLower(strings.TrimSpace(in.Email))
	current.Phone = u.Phone
	current.Plate = u.Plate
	current.CPF = u.CPF
	return s.users.UpdateProfile(ctx, *current)
}

// Toggle flips the courier between active and inactive.
func (s *Service) Toggle(ctx context.Context, companyID, id string) (*domain.User, error) {
	current, err := s.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	next := domain.DelivererActive
	if current.DelivererStatus == domain.DelivererActive {
		next = domain.DelivererInactive
	}
	return s.users.SetDelivererStatus(ctx, companyID, id, next)
}

func (s *Service) get(ctx context.Context, companyID, id string) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if u.Role != domain.RoleDeliverer {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func profile(in Input) (domain.User, error) {
	u := domain.User{
		Name:  strings.TrimSpace(in.Name),
		Email: strings.TrimSpace(in.Email),
		Phone: strings.TrimSpace(in.Phone),
		Plate: strings.ToUpper(strings.TrimSpace(in.Plate)),
		CPF:   cpfDigits(in.CPF),
	}
	switch {
	case u.Name == "":
		return u, domain.Invalid("name", "nome é obrigatório")
	case u.Email == "":
		return u, domain.Invalid("email", "email é obrigatório")
	case u.Phone == "":
		return u, domain.Invalid("phone", "telefone é obrigatório")
	case u.CPF != "" && len(u.CPF) != 11:
		return u, domain.Invalid("cpf", "CPF deve ter 11 dígitos")
	}
	return u, nil
}

func cpfDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
