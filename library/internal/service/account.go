package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/Astemirdum/smart-library/library/internal/errs"
	"github.com/Astemirdum/smart-library/library/internal/model"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) Register(ctx context.Context, req model.RegisterRequest) (model.User, error) {
	return s.CreateAccount(ctx, req, model.RoleUser)
}

// CreateAccount registers a user with the given role.
func (s *Service) CreateAccount(ctx context.Context, req model.RegisterRequest, role model.Role) (model.User, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return model.User{}, errors.Wrap(errs.ErrValidation, "name, email and password are required")
	}
	if role != model.RoleUser && role != model.RoleAdmin {
		return model.User{}, errors.Wrapf(errs.ErrValidation, "unknown role %q", role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, errors.Wrap(err, "hash password")
	}

	now := s.clock()
	return s.repo.CreateUser(ctx, model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		JoinDate:     now,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

// Authenticate checks credentials; the caller issues the token.
func (s *Service) Authenticate(ctx context.Context, req model.LoginRequest) (model.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.User{}, errs.ErrInvalidCredentials
		}
		return model.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return model.User{}, errs.ErrInvalidCredentials
	}
	if !user.IsActive {
		return model.User{}, errs.ErrUserInactive
	}
	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, req model.ProfileRequest) (model.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return model.User{}, errors.Wrap(errs.ErrValidation, "name is required")
	}
	req.Phone = strings.TrimSpace(req.Phone)
	req.Address = strings.TrimSpace(req.Address)
	return s.repo.UpdateProfile(ctx, id, req, s.clock())
}

func (s *Service) AdminListUsers(ctx context.Context, filter model.UserFilter, page int) (model.ListUsers, error) {
	if page < 1 {
		page = 1
	}
	items, total, err := s.repo.ListUsers(ctx, filter, model.Paging{Page: page, PageSize: adminUsersPageSize})
	if err != nil {
		return model.ListUsers{}, err
	}
	if items == nil {
		items = []model.User{}
	}
	return model.ListUsers{
		Paging: model.NewPaging(page, adminUsersPageSize, total),
		Items:  items,
	}, nil
}

// AdminUserDetails returns the user with the latest activities and the open
// loans ordered by due date.
func (s *Service) AdminUserDetails(ctx context.Context, id uuid.UUID) (model.UserDetails, error) {
	now := s.clock()
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return model.UserDetails{}, err
	}
	if err := s.promote(ctx, now, &id); err != nil {
		return model.UserDetails{}, err
	}
	activities, _, err := s.repo.ListActivities(ctx, model.ActivityFilter{UserID: &id},
		model.Paging{Page: 1, PageSize: userDetailsActivities})
	if err != nil {
		return model.UserDetails{}, err
	}
	open, err := s.repo.ListOpenLoans(ctx, id)
	if err != nil {
		return model.UserDetails{}, err
	}
	return model.UserDetails{
		User:           user,
		Activities:     classify(activities, now),
		CurrentBorrows: classify(open, now),
	}, nil
}

func (s *Service) SetUserStatus(ctx context.Context, id uuid.UUID, active bool) (model.User, error) {
	return s.repo.SetUserActive(ctx, id, active, s.clock())
}

// DeleteUser refuses while the user holds an active or overdue loan.
func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.repo.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetUserForUpdate(ctx, id); err != nil {
			return err
		}
		open, err := s.repo.CountOpenLoans(ctx, id)
		if err != nil {
			return err
		}
		if open > 0 {
			return errs.ErrUserHasLoans
		}
		return s.repo.DeleteUser(ctx, id)
	})
}
