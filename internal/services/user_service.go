package services

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/templateworks/backend/internal/config"
	"github.com/templateworks/backend/internal/database"
	"github.com/templateworks/backend/internal/models"
	"github.com/templateworks/backend/internal/repository"
	"github.com/templateworks/backend/internal/storage"
	"github.com/templateworks/backend/pkg/utils"
)

type UserService interface {
	Register(ctx context.Context, req *models.UserRegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.UserLoginRequest) (*models.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *models.UserUpdateRequest) (*models.UserResponse, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req *models.ChangePasswordRequest) error
	UploadAvatar(ctx context.Context, userID uuid.UUID, file multipart.File, header *multipart.FileHeader) (*models.UserResponse, error)
}

type userService struct {
	userRepo     repository.UserRepository
	bootstrap    *repository.Bootstrap
	jwtManager   *utils.JWTManager
	sessionStore *database.SessionStore
	storage      *storage.MinIOStorage
	config       *config.Config
}

func NewUserService(
	userRepo repository.UserRepository,
	bootstrap *repository.Bootstrap,
	jwtManager *utils.JWTManager,
	sessionStore *database.SessionStore,
	storage *storage.MinIOStorage,
	cfg *config.Config,
) UserService {
	return &userService{
		userRepo:     userRepo,
		bootstrap:    bootstrap,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
		storage:      storage,
		config:       cfg,
	}
}

func (s *userService) Register(ctx context.Context, req *models.UserRegisterRequest) (*models.AuthResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.New("email already exists")
	}

	exists, err = s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.New("username already exists")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	language := req.Language
	if language == "" {
		language = models.LanguageEnglish
	}

	user := &models.User{
		Email:       req.Email,
		Username:    req.Username,
		Password:    hashedPassword,
		DisplayName: req.DisplayName,
		Language:    language,
		IsActive:    true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Registration must not fail because seeding did; the account is
	// already usable without the starter templates.
	if err := s.bootstrap.SeedStarterTemplates(ctx, user.Viewer()); err != nil {
		log.Printf("Warning: failed to seed starter templates for %s: %v", user.ID, err)
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	if err := s.sessionStore.SetUserSession(ctx, user.ID.String(), map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	}, s.jwtManager.GetTokenExpiration()); err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		User:  models.ToUserResponse(user),
		Token: token,
	}, nil
}

func (s *userService) Login(ctx context.Context, req *models.UserLoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invalid credentials")
		}
		return nil, err
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, errors.New("invalid credentials")
	}

	if !user.IsActive {
		return nil, errors.New("account is deactivated")
	}

	tokenPair, err := s.jwtManager.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if err := s.sessionStore.SetUserSession(ctx, user.ID.String(), map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	}, s.jwtManager.GetTokenExpiration()); err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		User:         models.ToUserResponse(user),
		Token:        tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

func (s *userService) RefreshToken(ctx context.Context, refreshToken string) (*models.AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, errors.New("invalid or expired refresh token")
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, errors.New("user not found")
	}

	if !user.IsActive {
		return nil, errors.New("account is deactivated")
	}

	tokenPair, err := s.jwtManager.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	if err := s.sessionStore.SetUserSession(ctx, user.ID.String(), map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	}, s.jwtManager.GetTokenExpiration()); err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		User:         models.ToUserResponse(user),
		Token:        tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

func (s *userService) Logout(ctx context.Context, token string) error {
	return s.sessionStore.BlacklistToken(ctx, token, s.jwtManager.GetTokenExpiration())
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := models.ToUserResponse(user)
	return &response, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *models.UserUpdateRequest) (*models.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil && *req.Username != user.Username {
		exists, err := s.userRepo.ExistsByUsername(ctx, *req.Username)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, errors.New("username already exists")
		}
		user.Username = *req.Username
	}
	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.Language != nil {
		user.Language = *req.Language
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	response := models.ToUserResponse(user)
	return &response, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID uuid.UUID, req *models.ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !utils.CheckPassword(req.OldPassword, user.Password) {
		return errors.New("current password is incorrect")
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	return s.userRepo.Update(ctx, user)
}

func (s *userService) UploadAvatar(ctx context.Context, userID uuid.UUID, file multipart.File, header *multipart.FileHeader) (*models.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	objectName, err := s.storage.UploadAvatar(ctx, file, header, userID.String())
	if err != nil {
		return nil, err
	}

	user.Avatar = s.storage.GetPublicURL(objectName, s.config.MinIO.PublicEndpoint)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	response := models.ToUserResponse(user)
	return &response, nil
}
