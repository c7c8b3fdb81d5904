package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/oauth"
	"hotel/infras/otel"
	"hotel/internal/domains/auth/model/dto"
	userModel "hotel/internal/domains/user/model"
	userDto "hotel/internal/domains/user/model/dto"
	userRepo "hotel/internal/domains/user/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/identity"
	"hotel/shared/password"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const cacheOAuthState = "oauth:state"

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
	GoogleLoginURL(ctx context.Context) (string, error)
	GoogleCallback(ctx context.Context, state, code string) (dto.AuthResponse, error)
	ExchangeExternalIdentity(ctx context.Context, ext dto.ExternalIdentity) (userModel.User, error)
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
	google     oauth.Google
	cache      cache.RedisCache
}

func New(userRepo userRepo.User, cfg *config.Config, otel otel.Otel, jwt jwt.JWT, google oauth.Google, cache cache.RedisCache) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
		google:     google,
		cache:      cache,
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.AuthResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	emailFilter := shared.FilterByField(userModel.FieldEmail, shared.NormalizeEmail(req.Email), userModel.TableName)

	exists, err := s.userRepo.Exist(ctx, emailFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, failure.BadRequestFromString("user already exists")
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToUserModel(hashedPassword)

	if err = s.userRepo.Insert(ctx, user); err != nil {
		if shared.IsUniqueViolation(err) {
			return res, failure.BadRequestFromString("user already exists")
		}

		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issue(ctx, user)
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.AuthResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	email := shared.NormalizeEmail(req.Email)

	user, err := s.userRepo.Get(ctx, shared.FilterByField(userModel.FieldEmail, email, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		log.Warn().Str("email", email).Msg("login attempt with non-existent email")

		return res, failure.Unauthorized("invalid credentials")
	}

	if err := password.Verify(req.Password, user.PasswordHash()); err != nil {
		log.Warn().Str("email", email).Msg("login attempt with wrong password")

		return res, failure.Unauthorized("invalid credentials")
	}

	if !user.IsActive {
		return res, failure.Unauthorized("account is deactivated")
	}

	return s.issue(ctx, user)
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(err)

	caller, ok := identity.FromContext(ctx)
	if !ok {
		return failure.UnauthenticatedError
	}

	filter := shared.FilterByID(caller.UserID, userModel.FieldID, userModel.TableName)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		return failure.NotFound("user not found")
	}

	if user.PasswordHash() == "" {
		return failure.BadRequestFromString("account has no password, sign in with Google")
	}

	if err := password.Verify(req.CurrentPassword, user.PasswordHash()); err != nil {
		return failure.BadRequestFromString("current password is incorrect")
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatedFields := shared.TransformFields(dto.UpdatePasswordRequest{Password: hashedPassword}, caller.UserID)

	if err = s.userRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// GoogleLoginURL stores a one-time state nonce and returns the consent URL.
func (s *serviceImpl) GoogleLoginURL(ctx context.Context) (url string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GoogleLoginURL")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !s.google.Enabled() {
		return constant.Empty, failure.NotFound("google sign-in is not configured")
	}

	state := uuid.NewString()
	ttl := time.Duration(s.cfg.Cache.TTL) * time.Second

	if err = s.cache.Save(ctx, shared.BuildCacheKey(cacheOAuthState, state), state, ttl); err != nil {
		log.Error().Err(err).Msg("failed to store oauth state")

		return constant.Empty, fmt.Errorf("failed to store oauth state: %w", err)
	}

	return s.google.AuthCodeURL(state), nil
}

func (s *serviceImpl) GoogleCallback(ctx context.Context, state, code string) (res dto.AuthResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GoogleCallback")
	defer scope.End()
	defer scope.TraceIfError(err)

	if state == constant.Empty || code == constant.Empty {
		return res, failure.BadRequestFromString("state and code are required")
	}

	var stored string
	if err = s.cache.Take(ctx, shared.BuildCacheKey(cacheOAuthState, state), &stored); err != nil {
		if errors.Is(err, cache.Nil) {
			return res, failure.Unauthorized("invalid or expired oauth state")
		}

		return res, fmt.Errorf("failed to read oauth state: %w", err)
	}

	profile, err := s.google.Exchange(ctx, code)
	if err != nil {
		log.Error().Err(err).Msg("failed to exchange google code")

		return res, failure.Unauthorized("google sign-in failed")
	}

	user, err := s.ExchangeExternalIdentity(ctx, dto.ExternalIdentity{
		ProviderID: profile.ID,
		Email:      profile.Email,
		Name:       profile.Name,
		Avatar:     profile.Picture,
	})
	if err != nil {
		return res, err
	}

	return s.issue(ctx, user)
}

// ExchangeExternalIdentity finds the account for a Google identity: by google
// id first, then by email (linking it), and otherwise creates a guest.
func (s *serviceImpl) ExchangeExternalIdentity(ctx context.Context, ext dto.ExternalIdentity) (user userModel.User, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ExchangeExternalIdentity")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err = s.userRepo.Get(ctx, shared.FilterByField(userModel.FieldGoogleID, ext.ProviderID, userModel.TableName))
	if err != nil {
		return user, fmt.Errorf("failed to get user by google id: %w", err)
	}

	if user.ID == "" {
		user, err = s.linkOrCreate(ctx, ext)
		if err != nil {
			return user, err
		}
	}

	if !user.IsActive {
		return user, failure.Unauthorized("account is deactivated")
	}

	return user, nil
}

func (s *serviceImpl) linkOrCreate(ctx context.Context, ext dto.ExternalIdentity) (userModel.User, error) {
	email := shared.NormalizeEmail(ext.Email)
	emailFilter := shared.FilterByField(userModel.FieldEmail, email, userModel.TableName)

	user, err := s.userRepo.Get(ctx, emailFilter)
	if err != nil {
		return user, fmt.Errorf("failed to get user by email: %w", err)
	}

	if user.ID != "" {
		link := dto.LinkGoogleRequest{GoogleID: ext.ProviderID}
		if user.Avatar == nil {
			link.Avatar = ext.Avatar
		}

		if err = s.userRepo.Update(ctx, shared.TransformFields(link, constant.ContextSystem), emailFilter); err != nil {
			return user, fmt.Errorf("failed to link google account: %w", err)
		}

		user.GoogleID = &ext.ProviderID
		if link.Avatar != "" {
			user.Avatar = &link.Avatar
		}

		log.Info().Str("user_id", user.ID).Msg("linked google account to existing user")

		return user, nil
	}

	name := ext.Name
	if name == "" {
		name = email
	}

	user = userDto.NewUser(constant.ContextSystem, email, name, nil, nil, constant.RoleGuest)
	user.GoogleID = &ext.ProviderID
	user.AuthProvider = constant.AuthProviderGoogle

	if ext.Avatar != "" {
		user.Avatar = &ext.Avatar
	}

	if err = s.userRepo.Insert(ctx, user); err != nil {
		return user, fmt.Errorf("failed to create google user: %w", err)
	}

	return user, nil
}

func (s *serviceImpl) issue(ctx context.Context, user userModel.User) (res dto.AuthResponse, err error) {
	token, err := s.jwtService.Generate(ctx, user.ID, user.Email, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token")

		return res, fmt.Errorf("failed to generate token: %w", err)
	}

	res.FromToken(token, user)

	return res, nil
}
