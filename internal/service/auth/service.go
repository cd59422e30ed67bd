package auth

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/medrec/records-api/internal/model"
	"github.com/medrec/records-api/internal/repository"
	"github.com/medrec/records-api/pkg/auth"
	apperrors "github.com/medrec/records-api/pkg/errors"
	"github.com/medrec/records-api/pkg/security"
)

const (
	userCacheTTL     = 5 * time.Minute
	userCacheCleanup = 15 * time.Minute
)

type Service struct {
	userRepo repository.UserRepository
	hasher   security.PasswordHasher
	jwtSvc   auth.JWTService
	users    *cache.Cache
}

func NewService(userRepo repository.UserRepository, hasher security.PasswordHasher, jwtSvc auth.JWTService) *Service {
	return &Service{
		userRepo: userRepo,
		hasher:   hasher,
		jwtSvc:   jwtSvc,
		users:    cache.New(userCacheTTL, userCacheCleanup),
	}
}

// Register hashes the password and persists a new user. A uid collision
// surfaces as a DuplicateKey error from the store with nothing persisted.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Persistence(err)
	}

	user := &model.User{
		UID:          req.UID,
		Username:     req.Username,
		PasswordHash: hash,
		Role:         req.Role,
		Age:          req.Age,
		Gender:       req.Gender,
		Address:      req.Address,
		Phone:        req.Phone,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the password against the stored digest and issues a signed
// token embedding {uid, role}. It never mutates stored state.
func (s *Service) Login(ctx context.Context, uid, password string) (string, error) {
	if uid == "" || password == "" {
		return "", apperrors.Validation("uid and password are required")
	}

	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return "", err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return "", apperrors.InvalidCredentials(err)
	}

	token, err := s.jwtSvc.Generate(user.UID, user.Role)
	if err != nil {
		return "", apperrors.Persistence(err)
	}
	return token, nil
}

// FetchUser returns the user for uid. Results are cached briefly; user
// records are immutable after registration so staleness is not a concern.
// The password digest is excluded from serialization by the model.
func (s *Service) FetchUser(ctx context.Context, uid string) (*model.User, error) {
	if cached, found := s.users.Get(uid); found {
		return cached.(*model.User), nil
	}

	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	s.users.Set(uid, user, cache.DefaultExpiration)
	return user, nil
}

// ValidateToken parses and verifies a bearer token.
func (s *Service) ValidateToken(token string) (*auth.Claims, error) {
	return s.jwtSvc.Validate(token)
}

func validateRegistration(req *model.RegisterRequest) error {
	switch {
	case req.Username == "":
		return apperrors.Validation("username is required")
	case req.Password == "":
		return apperrors.Validation("password is required")
	case req.UID == "":
		return apperrors.Validation("uid is required")
	case !model.ValidRole(req.Role):
		return apperrors.Validation("role must be one of patient, doctor, pharmacist")
	}
	return nil
}
