package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strings"
	"unicode/utf8"

	"github.com/myadmincaptiva/backend/internal/db"
	"github.com/myadmincaptiva/backend/internal/model"
)

// accountRepo - 계정 저장소 인터페이스 (db.Memory, db.Postgres)
//
// Implementations enforce username and MAC uniqueness atomically and report
// violations as db.ErrDuplicate.
type accountRepo interface {
	ListAccounts(ctx context.Context) ([]model.Account, error)
	CreateAccount(ctx context.Context, input model.AccountInput) (*model.Account, error)
	UpdateAccount(ctx context.Context, id string, input model.AccountInput) (*model.Account, error)
	DeleteAccount(ctx context.Context, id string) (bool, error)
}

// accountNotifier - 계정 변경 알림 인터페이스 (AccountHookService)
type accountNotifier interface {
	Notify(event string, acc model.Account)
}

// AccountService - 게스트 계정 비즈니스 로직
type AccountService struct {
	db       accountRepo
	notifier accountNotifier
}

// NewAccountService accepts a nil notifier.
func NewAccountService(db accountRepo, notifier accountNotifier) *AccountService {
	if notifier == nil {
		notifier = (*AccountHookService)(nil)
	}
	return &AccountService{db: db, notifier: notifier}
}

func (s *AccountService) ListAccounts(ctx context.Context) ([]model.Account, error) {
	return s.db.ListAccounts(ctx)
}

func (s *AccountService) CreateAccount(ctx context.Context, req model.AccountInput) (*model.Account, error) {
	input, err := normalizeAccountInput(req)
	if err != nil {
		return nil, err
	}

	acc, err := s.db.CreateAccount(ctx, input)
	if err != nil {
		return nil, mapStoreError(err)
	}
	log.Printf("Account created: id=%s username=%s", acc.ID, acc.Username)
	s.notifier.Notify(model.EventAccountCreated, *acc)
	return acc, nil
}

func (s *AccountService) UpdateAccount(ctx context.Context, id string, req model.AccountInput) (*model.Account, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrNotFound
	}

	input, err := normalizeAccountInput(req)
	if err != nil {
		return nil, err
	}

	acc, err := s.db.UpdateAccount(ctx, id, input)
	if err != nil {
		return nil, mapStoreError(err)
	}
	log.Printf("Account updated: id=%s username=%s", acc.ID, acc.Username)
	s.notifier.Notify(model.EventAccountUpdated, *acc)
	return acc, nil
}

// DeleteAccount succeeds for unknown ids.
func (s *AccountService) DeleteAccount(ctx context.Context, id string) error {
	deleted, err := s.db.DeleteAccount(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return nil
	}
	log.Printf("Account deleted: id=%s", id)
	s.notifier.Notify(model.EventAccountDeleted, model.Account{ID: id})
	return nil
}

func normalizeAccountInput(req model.AccountInput) (model.AccountInput, error) {
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || utf8.RuneCountInString(req.Username) > 64 {
		return req, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if req.Password == "" || utf8.RuneCountInString(req.Password) > 128 {
		return req, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	if req.UploadLimitBytes < 0 || req.DownloadLimitBytes < 0 {
		return req, fmt.Errorf("%w: byte limits must not be negative", ErrInvalidInput)
	}
	if req.Timeout != nil && *req.Timeout <= 0 {
		return req, fmt.Errorf("%w: timeout must be positive", ErrInvalidInput)
	}

	mac, err := normalizeMAC(req.MACAddress)
	if err != nil {
		return req, err
	}
	req.MACAddress = mac
	return req, nil
}

// normalizeMAC accepts a 48-bit address in any net.ParseMAC notation and
// returns it as lower-case, colon separated. Blank means no binding.
func normalizeMAC(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	hw, err := net.ParseMAC(value)
	if err != nil || len(hw) != 6 {
		return "", fmt.Errorf("%w: invalid mac address", ErrInvalidInput)
	}
	return hw.String(), nil
}

func mapStoreError(err error) error {
	switch {
	case errors.Is(err, db.ErrDuplicate):
		return ErrConflict
	case errors.Is(err, db.ErrNotFound):
		return ErrNotFound
	default:
		return err
	}
}
