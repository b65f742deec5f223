package domain

import "time"

// Company is the tenant boundary; catalog, order and user rows all carry its id.
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Slug      string    `json:"slug"`
	AdminID   string    `json:"adminId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
