// Package users implements the credential store: registration with input
// validation and password hashing, credential verification, and lookups.
package users

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/dmitrijs2005/microblog/internal/common"
	"github.com/dmitrijs2005/microblog/internal/server/auth"
	"github.com/dmitrijs2005/microblog/internal/server/config"
	"github.com/google/uuid"
)

var (
	nameRegexp  = regexp.MustCompile(`^[A-Za-z\s]{2,50}$`)
	emailRegexp = regexp.MustCompile(`^[\w-.]+@([\w-]+\.)+[\w-]{2,4}$`)
)

const maxBioLength = 300

// RegisterRequest carries the registration inputs. ProfilePic is the already
// externalized picture URL; the service never touches image bytes.
type RegisterRequest struct {
	Name       string
	Email      string
	Password   string
	ProfilePic string
	Bio        string
	Tasks      []string
}

type Service struct {
	repo       Repository
	bcryptCost int
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:       repo,
		bcryptCost: cfg.BCryptCost,
	}
}

func validatePassword(password string) bool {
	if len([]rune(password)) < 6 {
		return false
	}
	var hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasDigit
}

func (s *Service) validateRegistration(req *RegisterRequest) error {
	if !nameRegexp.MatchString(req.Name) {
		return fmt.Errorf("%w: name must be 2-50 letters and spaces only", common.ErrorValidation)
	}
	if !emailRegexp.MatchString(req.Email) {
		return fmt.Errorf("%w: invalid email format", common.ErrorValidation)
	}
	if !validatePassword(req.Password) {
		return fmt.Errorf("%w: password must have 1 uppercase, 1 number, min 6 characters", common.ErrorValidation)
	}
	if len([]rune(req.Bio)) > maxBioLength {
		return fmt.Errorf("%w: bio must be at most %d characters", common.ErrorValidation, maxBioLength)
	}
	for _, task := range req.Tasks {
		if strings.TrimSpace(task) == "" {
			return fmt.Errorf("%w: all tasks must be non-empty strings", common.ErrorValidation)
		}
	}
	return nil
}

// Register validates the request, hashes the password and persists the user.
// The duplicate pre-check and the insert are not atomic as a pair; the email
// uniqueness constraint in the store is the authoritative guard and maps to
// common.ErrorDuplicateEmail either way.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*User, error) {

	if err := s.validateRegistration(req); err != nil {
		return nil, err
	}

	_, err := s.repo.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, common.ErrorDuplicateEmail
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	tasks := req.Tasks
	if tasks == nil {
		tasks = []string{}
	}

	user := &User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		ProfilePic:   req.ProfilePic,
		Bio:          req.Bio,
		Tasks:        tasks,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorDuplicateEmail) {
			return nil, common.ErrorDuplicateEmail
		}
		return nil, common.ErrorInternal
	}

	return user, nil
}

// VerifyCredentials returns the full user record when email and password
// match a stored identity.
func (s *Service) VerifyCredentials(ctx context.Context, email, password string) (*User, error) {

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, common.ErrorInvalidPassword
	}

	return user, nil
}

// GetByEmail looks up a user by email.
func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// GetByID looks up a user by its opaque id. Malformed ids fail with
// common.ErrorInvalidID before touching the store.
func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorInvalidID
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// GetProfile returns the restricted public view of the user with the given id.
func (s *Service) GetProfile(ctx context.Context, id string) (*Profile, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Profile(), nil
}
