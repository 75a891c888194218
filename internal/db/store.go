package db

import (
	"context"

	"github.com/myadmincaptiva/backend/internal/model"
)

// AccountStore is the directory contract. Create and Update return ErrDuplicate
// instead of writing when the username, or a non-empty MAC address, is taken by
// another account. Delete of an unknown id is not an error; it reports false.
type AccountStore interface {
	ListAccounts(ctx context.Context) ([]model.Account, error)
	CreateAccount(ctx context.Context, input model.AccountInput) (*model.Account, error)
	UpdateAccount(ctx context.Context, id string, input model.AccountInput) (*model.Account, error)
	DeleteAccount(ctx context.Context, id string) (bool, error)
}

var (
	_ AccountStore = (*Memory)(nil)
	_ AccountStore = (*Postgres)(nil)
)
