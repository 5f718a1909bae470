// Package repotest holds the contract suite every UserRepository adapter must
// pass. Adapter packages call Run from their own tests so the durable store
// and the in-memory double cannot drift apart.
package repotest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"account-service/internal/domain"
	"account-service/internal/repository"
)

// Run executes the contract suite against a fresh repository per subtest.
func Run(t *testing.T, newRepo func(t *testing.T) repository.UserRepository) {
	t.Helper()

	t.Run("CreateAndFind", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		user := newUser("john@example.com")
		require.NoError(t, repo.Create(ctx, user))

		byEmail, err := repo.GetByEmail(ctx, "john@example.com")
		require.NoError(t, err)
		require.Equal(t, user.ID, byEmail.ID)
		require.Equal(t, user.Email, byEmail.Email)
		require.Equal(t, user.PasswordHash, byEmail.PasswordHash)

		byID, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, user.Email, byID.Email)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		require.NoError(t, repo.Create(ctx, newUser("jane@example.com")))

		err := repo.Create(ctx, newUser("jane@example.com"))
		require.ErrorIs(t, err, repository.ErrDuplicateEmail)
	})

	t.Run("EmailCaseSensitive", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		require.NoError(t, repo.Create(ctx, newUser("Case@example.com")))

		_, err := repo.GetByEmail(ctx, "case@example.com")
		require.ErrorIs(t, err, repository.ErrUserNotFound)
	})

	t.Run("GetByEmailMiss", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
		require.ErrorIs(t, err, repository.ErrUserNotFound)
	})

	t.Run("GetByIDMiss", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.GetByID(context.Background(), uuid.NewString())
		require.ErrorIs(t, err, repository.ErrUserNotFound)
	})

	t.Run("ConcurrentDuplicateCreate", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		const attempts = 8
		errs := make([]error, attempts)
		var wg sync.WaitGroup
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = repo.Create(ctx, newUser("race@example.com"))
			}(i)
		}
		wg.Wait()

		var created int
		for _, err := range errs {
			switch {
			case err == nil:
				created++
			case errors.Is(err, repository.ErrDuplicateEmail):
			default:
				t.Fatalf("unexpected create error: %v", err)
			}
		}
		require.Equal(t, 1, created, "exactly one concurrent create must win")
	})

	t.Run("ContextCanceled", func(t *testing.T) {
		repo := newRepo(t)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := repo.Create(ctx, newUser("late@example.com"))
		require.Error(t, err)

		// the canceled create must not leave a partial record behind
		_, err = repo.GetByEmail(context.Background(), "late@example.com")
		require.ErrorIs(t, err, repository.ErrUserNotFound)
	})
}

func newUser(email string) *domain.User {
	return &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: fmt.Sprintf("hash-%s", uuid.NewString()),
	}
}
