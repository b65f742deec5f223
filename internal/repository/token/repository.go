package token

import (
	"context"
	"time"
)

const (
	KindAccess  = "access"
	KindRefresh = "refresh"
	KindReset   = "reset"
)

type Token struct {
	Token     string
	CompanyID string
	UserID    string
	Kind      string
	ExpiresAt time.Time
	CreatedAt time.Time
}

type Repository interface {
	Create(ctx context.Context, token Token) error
	Get(ctx context.Context, token string) (*Token, error)
	Delete(ctx context.Context, token string) error
	// DeleteByUser drops every token of the given kind issued to userID.
	DeleteByUser(ctx context.Context, userID, kind string) error
}
