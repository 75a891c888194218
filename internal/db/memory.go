package db

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/myadmincaptiva/backend/internal/model"
)

// Memory - 프로세스 메모리 기반 계정 저장소 (최신순 유지)
//
// The uniqueness scan and the write run under the same lock.
type Memory struct {
	mu       sync.RWMutex
	accounts []model.Account
	now      func() time.Time
	newID    func() string
}

// NewMemory returns a store holding a copy of seed, in the given order.
func NewMemory(seed ...model.Account) *Memory {
	accounts := make([]model.Account, 0, len(seed))
	for _, acc := range seed {
		accounts = append(accounts, cloneAccount(acc))
	}
	return &Memory{
		accounts: accounts,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (m *Memory) ListAccounts(ctx context.Context) ([]model.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := make([]model.Account, 0, len(m.accounts))
	for _, acc := range m.accounts {
		list = append(list, cloneAccount(acc))
	}
	return list, nil
}

func (m *Memory) CreateAccount(ctx context.Context, input model.AccountInput) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conflicts("", input) {
		return nil, ErrDuplicate
	}

	id := m.newID()
	for m.indexOf(id) >= 0 {
		id = m.newID()
	}

	now := m.now()
	acc := model.Account{
		ID:        id,
		Timeout:   model.DefaultIdleTimeout,
		CreatedAt: now,
	}
	applyInput(&acc, input, now)

	m.accounts = append([]model.Account{acc}, m.accounts...)
	created := cloneAccount(acc)
	return &created, nil
}

func (m *Memory) UpdateAccount(ctx context.Context, id string, input model.AccountInput) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}
	if m.conflicts(id, input) {
		return nil, ErrDuplicate
	}

	applyInput(&m.accounts[idx], input, m.now())
	updated := cloneAccount(m.accounts[idx])
	return &updated, nil
}

func (m *Memory) DeleteAccount(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	m.accounts = append(m.accounts[:idx], m.accounts[idx+1:]...)
	return true, nil
}

// conflicts reports whether input collides with any account other than exceptID.
func (m *Memory) conflicts(exceptID string, input model.AccountInput) bool {
	for _, acc := range m.accounts {
		if acc.ID == exceptID {
			continue
		}
		if acc.Username == input.Username {
			return true
		}
		if input.MACAddress != "" && acc.HasMAC() && *acc.MACAddress == input.MACAddress {
			return true
		}
	}
	return false
}

func (m *Memory) indexOf(id string) int {
	for i, acc := range m.accounts {
		if acc.ID == id {
			return i
		}
	}
	return -1
}

// applyInput copies every mutable field. A nil timeout keeps the current value.
func applyInput(acc *model.Account, input model.AccountInput, now time.Time) {
	acc.Username = input.Username
	acc.Password = input.Password
	acc.MACAddress = nil
	if input.MACAddress != "" {
		mac := input.MACAddress
		acc.MACAddress = &mac
	}
	acc.UploadLimitBytes = input.UploadLimitBytes
	acc.DownloadLimitBytes = input.DownloadLimitBytes
	if input.Timeout != nil {
		acc.Timeout = *input.Timeout
	}
	acc.UpdatedAt = now
}

func cloneAccount(acc model.Account) model.Account {
	if acc.MACAddress != nil {
		mac := *acc.MACAddress
		acc.MACAddress = &mac
	}
	return acc
}
