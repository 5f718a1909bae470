package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"account-service/internal/repository"
	"account-service/internal/repository/repotest"
)

func TestUserRepository_Contract(t *testing.T) {
	repotest.Run(t, func(t *testing.T) repository.UserRepository {
		db, err := Open(filepath.Join(t.TempDir(), "test.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })

		repo := NewUserRepository(db)
		require.NoError(t, repo.Init(context.Background()))
		return repo
	})
}
