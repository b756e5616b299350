package account

import (
	"context"

	"github.com/Domenick1991/flightservice/internal/domain"
	"github.com/Domenick1991/flightservice/internal/repository"
)

type AccountUseCase interface {
	Login(ctx context.Context, username, password string) error
	CreateCustomer(ctx context.Context, username, password string, initialBalance int) error
}

type AccountService struct {
	users repository.UserRepository
}

func NewAccountService(users repository.UserRepository) *AccountService {
	return &AccountService{users: users}
}

func (s *AccountService) Login(ctx context.Context, username, password string) error {
	ok, err := s.users.Authenticate(ctx, username, password)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInvalidCredentials
	}
	return nil
}

func (s *AccountService) CreateCustomer(ctx context.Context, username, password string, initialBalance int) error {
	if initialBalance < 0 {
		return domain.ErrNegativeBalance
	}
	return s.users.Create(ctx, domain.User{Username: username, Password: password, Balance: initialBalance})
}

var _ AccountUseCase = (*AccountService)(nil)
