package domain

import "time"

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleCustomer  Role = "cliente"
	RoleDeliverer Role = "entregador"
	RolePDV       Role = "pdv"
)

type DelivererStatus string

const (
	DelivererActive   DelivererStatus = "ativo"
	DelivererInactive DelivererStatus = "inativo"
)

// User is an authenticated profile. Deliverer fields are only set for RoleDeliverer.
type User struct {
	ID              string          `json:"id"`
	CompanyID       string          `json:"companyId,omitempty"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone,omitempty"`
	PasswordHash    string          `json:"-"`
	Role            Role            `json:"role"`
	Plate           string          `json:"plate,omitempty"`
	CPF             string          `json:"cpf,omitempty"`
	DelivererStatus DelivererStatus `json:"delivererStatus,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}
