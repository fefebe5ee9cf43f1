package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"socialhub/internal/config"
	"socialhub/internal/media"
	"socialhub/internal/models"
	"socialhub/internal/repository"
)

// Claims carried by access tokens.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type RegisterInput struct {
	FirstName  string
	LastName   string
	Email      string
	Password   string
	Location   string
	Occupation string
	Picture    *media.File
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, string, string, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo repository.UserRepository
	uploader MediaUploader
	cfg      *config.Config
	log      *zap.Logger
	now      func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, uploader MediaUploader, cfg *config.Config, log *zap.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		uploader: uploader,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	existing, err := s.userRepo.GetUserByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return nil, categorize(ErrConflict, fmt.Errorf("user with email %s already exists", in.Email))
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, storeError(err)
	}

	user := &models.User{
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      in.Email,
		Location:   in.Location,
		Occupation: in.Occupation,
		Role:       models.RoleUser,
	}

	if in.Picture != nil {
		asset, err := s.uploader.Upload(ctx, media.ProfilePicture(), *in.Picture)
		if err != nil {
			return nil, categorize(ErrUpload, err)
		}
		user.PicturePath = asset.URL
	}

	user.RefreshToken, user.RefreshTokenExpiryTime = s.generateRefreshToken()

	if err := s.userRepo.CreateUser(ctx, user, in.Password); err != nil {
		return nil, storeError(err)
	}

	s.log.Info("user registered", zap.String("user_id", user.UserID))
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	user, err := s.userRepo.VerifyPassword(ctx, email, password)
	if err != nil {
		return nil, "", "", categorize(ErrAuthentication, err)
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error) {
	user, err := s.userRepo.GetUserByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", "", categorize(ErrAuthentication, err)
		}
		return nil, "", "", storeError(err)
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) issueTokens(ctx context.Context, user *models.User) (*models.User, string, string, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", "", fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, expiry := s.generateRefreshToken()
	if err := s.userRepo.UpdateRefreshToken(ctx, user.UserID, refreshToken, expiry); err != nil {
		return nil, "", "", storeError(err)
	}

	return user, accessToken, refreshToken, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: user.UserID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTokenDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return tokenString, nil
}

func (s *authService) generateRefreshToken() (string, time.Time) {
	return uuid.New().String(), s.now().Add(s.cfg.RefreshTokenDuration)
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, categorize(ErrAuthentication, err)
	}

	if !token.Valid || claims.UserID == "" {
		return nil, categorize(ErrAuthentication, errors.New("invalid token claims"))
	}

	return claims, nil
}
