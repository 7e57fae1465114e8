package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/hongminglow/cost-manager/internal/apperr"
	"github.com/hongminglow/cost-manager/internal/models"
	"github.com/hongminglow/cost-manager/internal/models/dto"
	"github.com/hongminglow/cost-manager/internal/storage"
	"github.com/hongminglow/cost-manager/internal/validation"
)

// UserService resolves users and their lifetime spend.
type UserService struct {
	users storage.UserStore
	costs storage.CostStore
}

func NewUserService(users storage.UserStore, costs storage.CostStore) *UserService {
	return &UserService{users: users, costs: costs}
}

// Details returns the user's names and the sum of all their costs. The user
// lookup and the sum run concurrently.
func (s *UserService) Details(ctx context.Context, id string) (dto.UserDetails, error) {
	if err := validation.UserID(id); err != nil {
		return dto.UserDetails{}, err
	}

	var (
		user  models.User
		total decimal.Decimal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.users.FindUser(gctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.NotFound(msgUserNotFound)
		}
		if err != nil {
			return apperr.Unexpected(fmt.Errorf("find user: %w", err))
		}
		return nil
	})
	g.Go(func() error {
		var err error
		total, err = s.costs.TotalForUser(gctx, id)
		if err != nil {
			return apperr.Unexpected(fmt.Errorf("sum costs: %w", err))
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return dto.UserDetails{}, err
	}

	return dto.UserDetails{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		ID:        user.ID,
		Total:     total,
	}, nil
}
