package memory

import (
	"testing"

	"account-service/internal/repository"
	"account-service/internal/repository/repotest"
)

func TestUserRepository_Contract(t *testing.T) {
	repotest.Run(t, func(t *testing.T) repository.UserRepository {
		return NewUserRepository()
	})
}
