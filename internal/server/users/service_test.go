package users

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/microblog/internal/common"
	"github.com/dmitrijs2005/microblog/internal/server/config"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	createFn     func(ctx context.Context, u *User) (*User, error)
	getByEmailFn func(ctx context.Context, email string) (*User, error)
	getByIDFn    func(ctx context.Context, id string) (*User, error)
}

var _ Repository = (*fakeRepo)(nil)

func (f *fakeRepo) Create(ctx context.Context, u *User) (*User, error) {
	if f.createFn == nil {
		return u, nil
	}
	return f.createFn(ctx, u)
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	if f.getByEmailFn == nil {
		return nil, common.ErrorNotFound
	}
	return f.getByEmailFn(ctx, email)
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*User, error) {
	if f.getByIDFn == nil {
		return nil, common.ErrorNotFound
	}
	return f.getByIDFn(ctx, id)
}

func newTestService(repo Repository) *Service {
	return NewService(repo, &config.Config{BCryptCost: 4})
}

func validRequest() *RegisterRequest {
	return &RegisterRequest{
		Name:     "Alice Smith",
		Email:    "a@x.com",
		Password: "Abcdef1",
		Bio:      "hello",
		Tasks:    []string{"write tests"},
	}
}

func TestRegister_ThenVerifyCredentials(t *testing.T) {
	ctx := context.Background()

	var stored *User
	repo := &fakeRepo{
		createFn: func(ctx context.Context, u *User) (*User, error) {
			u.ID = "3f6f2a54-11f7-4f0e-93e3-5cbb8a2e8001"
			stored = u
			return u, nil
		},
		getByEmailFn: func(ctx context.Context, email string) (*User, error) {
			if stored != nil && stored.Email == email {
				return stored, nil
			}
			return nil, common.ErrorNotFound
		},
	}
	svc := newTestService(repo)

	u, err := svc.Register(ctx, validRequest())
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.NotEqual(t, "Abcdef1", u.PasswordHash)
	require.NotContains(t, u.PasswordHash, "Abcdef1")

	got, err := svc.VerifyCredentials(ctx, "a@x.com", "Abcdef1")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
}

func TestRegister_ValidationErrors(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&fakeRepo{})

	tests := []struct {
		name   string
		mutate func(r *RegisterRequest)
	}{
		{"name too short", func(r *RegisterRequest) { r.Name = "A" }},
		{"name with digits", func(r *RegisterRequest) { r.Name = "Alice3" }},
		{"invalid email", func(r *RegisterRequest) { r.Email = "not-an-email" }},
		{"password too short", func(r *RegisterRequest) { r.Password = "Ab1" }},
		{"password without uppercase", func(r *RegisterRequest) { r.Password = "abcdef1" }},
		{"password without digit", func(r *RegisterRequest) { r.Password = "Abcdefg" }},
		{"empty task", func(r *RegisterRequest) { r.Tasks = []string{"ok", "  "} }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(req)
			_, err := svc.Register(ctx, req)
			require.ErrorIs(t, err, common.ErrorValidation)
		})
	}
}

func TestRegister_BioTooLong(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	req := validRequest()
	long := make([]rune, 301)
	for i := range long {
		long[i] = 'x'
	}
	req.Bio = string(long)

	_, err := svc.Register(context.Background(), req)
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestRegister_DuplicateEmail_PreCheck(t *testing.T) {
	repo := &fakeRepo{
		getByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return &User{ID: "u-1", Email: email}, nil
		},
	}
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), validRequest())
	require.ErrorIs(t, err, common.ErrorDuplicateEmail)
}

func TestRegister_DuplicateEmail_ConstraintRace(t *testing.T) {
	// the pre-check misses but the unique constraint still fires on insert
	repo := &fakeRepo{
		createFn: func(ctx context.Context, u *User) (*User, error) {
			return nil, common.ErrorDuplicateEmail
		},
	}
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), validRequest())
	require.ErrorIs(t, err, common.ErrorDuplicateEmail)
}

func TestRegister_RepoFailure_IsInternal(t *testing.T) {
	repo := &fakeRepo{
		createFn: func(ctx context.Context, u *User) (*User, error) {
			return nil, errors.New("db down")
		},
	}
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), validRequest())
	require.ErrorIs(t, err, common.ErrorInternal)
}

func TestVerifyCredentials_NotFound(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	_, err := svc.VerifyCredentials(context.Background(), "ghost@x.com", "Abcdef1")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestVerifyCredentials_WrongPassword(t *testing.T) {
	ctx := context.Background()

	var stored *User
	repo := &fakeRepo{
		createFn: func(ctx context.Context, u *User) (*User, error) {
			u.ID = "u-1"
			stored = u
			return u, nil
		},
		getByEmailFn: func(ctx context.Context, email string) (*User, error) {
			if stored != nil {
				return stored, nil
			}
			return nil, common.ErrorNotFound
		},
	}
	svc := newTestService(repo)

	_, err := svc.Register(ctx, validRequest())
	require.NoError(t, err)

	_, err = svc.VerifyCredentials(ctx, "a@x.com", "wrongpass")
	require.ErrorIs(t, err, common.ErrorInvalidPassword)
}

func TestGetByID_MalformedID(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	_, err := svc.GetByID(context.Background(), "not-a-uuid")
	require.ErrorIs(t, err, common.ErrorInvalidID)
}

func TestGetProfile_HidesPasswordHash(t *testing.T) {
	id := "3f6f2a54-11f7-4f0e-93e3-5cbb8a2e8001"
	repo := &fakeRepo{
		getByIDFn: func(ctx context.Context, got string) (*User, error) {
			return &User{
				ID:           id,
				Name:         "Alice Smith",
				Email:        "a@x.com",
				PasswordHash: "hash",
				Bio:          "hello",
				ProfilePic:   "http://img/1.png",
			}, nil
		},
	}
	svc := newTestService(repo)

	p, err := svc.GetProfile(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, "Alice Smith", p.Name)
	require.Equal(t, "a@x.com", p.Email)
	require.Equal(t, "hello", p.Bio)
	require.Equal(t, "http://img/1.png", p.ProfilePic)
}

func TestGetProfile_NotFound(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	_, err := svc.GetProfile(context.Background(), "3f6f2a54-11f7-4f0e-93e3-5cbb8a2e8001")
	require.ErrorIs(t, err, common.ErrorNotFound)
}
