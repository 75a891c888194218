package db

import (
	"context"
	"sync"
	"testing"

	"github.com/myadmincaptiva/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func input(username, mac string) model.AccountInput {
	return model.AccountInput{Username: username, Password: "pw", MACAddress: mac}
}

func TestMemoryCreateAssignsIDAndDefaults(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	acc, err := store.CreateAccount(ctx, input("alice", ""))
	require.NoError(t, err)
	assert.NotEmpty(t, acc.ID)
	assert.Equal(t, model.DefaultIdleTimeout, acc.Timeout)
	assert.Nil(t, acc.MACAddress)

	timeout := 60
	bob, err := store.CreateAccount(ctx, model.AccountInput{Username: "bob", Password: "pw", Timeout: &timeout})
	require.NoError(t, err)
	assert.Equal(t, 60, bob.Timeout)
	assert.NotEqual(t, acc.ID, bob.ID)
}

func TestMemoryListNewestFirst(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		_, err := store.CreateAccount(ctx, input(name, ""))
		require.NoError(t, err)
	}

	list, err := store.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{list[0].Username, list[1].Username, list[2].Username})
}

func TestMemoryCreateRejectsDuplicates(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	_, err := store.CreateAccount(ctx, input("alice", "00:11:22:33:44:55"))
	require.NoError(t, err)

	_, err = store.CreateAccount(ctx, input("alice", ""))
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = store.CreateAccount(ctx, input("bob", "00:11:22:33:44:55"))
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = store.CreateAccount(ctx, input("bob", "00:11:22:33:44:66"))
	assert.NoError(t, err)
}

func TestMemoryEmptyMACDoesNotConflict(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	_, err := store.CreateAccount(ctx, input("alice", ""))
	require.NoError(t, err)
	_, err = store.CreateAccount(ctx, input("bob", ""))
	assert.NoError(t, err)
}

func TestMemoryUpdate(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	alice, err := store.CreateAccount(ctx, input("alice", "00:11:22:33:44:55"))
	require.NoError(t, err)
	bob, err := store.CreateAccount(ctx, input("bob", "00:11:22:33:44:66"))
	require.NoError(t, err)

	t.Run("self-exclusion", func(t *testing.T) {
		updated, err := store.UpdateAccount(ctx, alice.ID, input("alice", "00:11:22:33:44:55"))
		require.NoError(t, err)
		assert.Equal(t, alice.ID, updated.ID)
		assert.Equal(t, alice.CreatedAt, updated.CreatedAt)
	})

	t.Run("conflict-with-other", func(t *testing.T) {
		_, err := store.UpdateAccount(ctx, bob.ID, input("bob", "00:11:22:33:44:55"))
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("keeps-timeout-when-omitted", func(t *testing.T) {
		timeout := 300
		_, err := store.UpdateAccount(ctx, bob.ID, model.AccountInput{Username: "bob", Password: "pw", Timeout: &timeout})
		require.NoError(t, err)

		updated, err := store.UpdateAccount(ctx, bob.ID, model.AccountInput{Username: "bobby", Password: "new"})
		require.NoError(t, err)
		assert.Equal(t, 300, updated.Timeout)
		assert.Equal(t, "bobby", updated.Username)
		assert.Nil(t, updated.MACAddress)
	})

	t.Run("not-found", func(t *testing.T) {
		_, err := store.UpdateAccount(ctx, "missing", input("carol", ""))
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMemoryDeleteIsIdempotent(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	acc, err := store.CreateAccount(ctx, input("alice", ""))
	require.NoError(t, err)

	deleted, err := store.DeleteAccount(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, deleted)
	list, _ := store.ListAccounts(ctx)
	assert.Len(t, list, 1)

	deleted, err = store.DeleteAccount(ctx, acc.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = store.DeleteAccount(ctx, acc.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
	list, _ = store.ListAccounts(ctx)
	assert.Empty(t, list)
}

func TestMemoryNeverReusesExistingID(t *testing.T) {
	store := NewMemory(model.Account{ID: "fixed", Username: "seeded"})
	ids := []string{"fixed", "fresh"}
	store.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	acc, err := store.CreateAccount(context.Background(), input("alice", ""))
	require.NoError(t, err)
	assert.Equal(t, "fresh", acc.ID)
}

func TestMemoryListReturnsCopies(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	_, err := store.CreateAccount(ctx, input("alice", "00:11:22:33:44:55"))
	require.NoError(t, err)

	list, _ := store.ListAccounts(ctx)
	*list[0].MACAddress = "ff:ff:ff:ff:ff:ff"
	list[0].Username = "mallory"

	again, _ := store.ListAccounts(ctx)
	assert.Equal(t, "alice", again[0].Username)
	assert.Equal(t, "00:11:22:33:44:55", *again[0].MACAddress)
}

func TestMemoryConcurrentCreatesKeepUsernameUnique(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	const workers = 32
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.CreateAccount(ctx, input("alice", "")); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	list, _ := store.ListAccounts(ctx)
	assert.Len(t, list, 1)
}
