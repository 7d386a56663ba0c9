package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"atelier/internal/auth"
	apperrors "atelier/internal/errors"
	"atelier/internal/mailer"
	"atelier/internal/model"
	"atelier/internal/repository"
	"atelier/internal/storage"
	"atelier/internal/upload"
)

const bcryptCost = 10

const profileFolder = "atelier/profiles"

// AuthService handles registration, login, profile, and password-reset flows.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, name string, photo *multipart.FileHeader, removePhoto bool) (*model.User, error)
	ChangePassword(ctx context.Context, id string, current, newPassword string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, rawToken, newPassword string) error
}

type authService struct {
	users   repository.UserRepository
	jwt     *auth.JWTService
	uploads *upload.Pipeline
	store   storage.Client
	mail    mailer.Mailer
	siteURL string
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	jwt *auth.JWTService,
	uploads *upload.Pipeline,
	store storage.Client,
	mail mailer.Mailer,
	siteURL string,
) AuthService {
	return &authService{
		users:   users,
		jwt:     jwt,
		uploads: uploads,
		store:   store,
		mail:    mail,
		siteURL: siteURL,
	}
}

// Register creates a new user with a hashed password and the default role.
// The plaintext password is never retained or logged.
func (s *authService) Register(ctx context.Context, email, password, name string) (*model.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hashed),
		Name:         name,
		Role:         model.RoleUser,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// a concurrent registration can win the race past the existence check
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login authenticates a user and issues a session token.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwt.IssueSessionToken(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("issue session token: %w", err)
	}
	return token, user, nil
}

// GetByID loads a user by the string form of their UUID.
func (s *authService) GetByID(ctx context.Context, id string) (*model.User, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	return s.users.FindByID(ctx, uid)
}

// UpdateProfile changes the display name and optionally replaces or clears
// the profile image, following the replacement protocol: the new blob is
// stored and the record persisted before the old blob is discarded.
func (s *authService) UpdateProfile(ctx context.Context, id string, name string, photo *multipart.FileHeader, removePhoto bool) (*model.User, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	user, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	newPhoto := model.ImageRef{}
	if photo != nil {
		newPhoto, err = s.uploads.Single(ctx, photo, profileFolder)
		if err != nil {
			return nil, err
		}
	}

	oldPhoto := user.ProfileImage
	if name != "" {
		user.Name = name
	}
	switch {
	case photo != nil:
		user.ProfileImage = newPhoto
	case removePhoto:
		user.ProfileImage = model.ImageRef{}
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	if (photo != nil || removePhoto) && oldPhoto.PublicID != "" && oldPhoto.PublicID != user.ProfileImage.PublicID {
		discardImages(s.store, oldPhoto)
	}
	return user, nil
}

// ChangePassword verifies the current password before re-hashing the new one.
func (s *authService) ChangePassword(ctx context.Context, id string, current, newPassword string) error {
	uid, err := parseID(id)
	if err != nil {
		return apperrors.ErrNotFound
	}
	user, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return apperrors.ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hashed)
	return s.users.Save(ctx, user)
}

// RequestPasswordReset issues a single-use reset token and mails the link.
// An unknown email is not an error (no account enumeration). If the mail
// fails to send, the just-issued token is invalidated before the error
// surfaces so an undelivered token can never be exploited later.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}

	raw, hash, err := auth.NewResetToken()
	if err != nil {
		return err
	}

	expiry := time.Now().Add(auth.ResetTokenTTL)
	user.ResetTokenHash = hash
	user.ResetTokenExpiry = &expiry
	if err := s.users.Save(ctx, user); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.siteURL, raw)
	if err := s.mail.SendPasswordReset(ctx, user.Email, link); err != nil {
		user.ResetTokenHash = ""
		user.ResetTokenExpiry = nil
		if clearErr := s.users.Save(ctx, user); clearErr != nil {
			log.Error().Err(clearErr).Str("email", email).
				Msg("failed to invalidate reset token after send failure")
		}
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}

// ResetPassword consumes a reset token: on a live match it re-hashes the new
// password and clears both reset fields; otherwise state is untouched.
func (s *authService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	user, err := s.users.FindByResetTokenHash(ctx, auth.HashResetToken(rawToken))
	if err != nil {
		return apperrors.ErrInvalidResetToken
	}
	if user.ResetTokenHash == "" || !auth.ResetTokenMatches(rawToken, user.ResetTokenHash) {
		return apperrors.ErrInvalidResetToken
	}
	if user.ResetTokenExpiry == nil || time.Now().After(*user.ResetTokenExpiry) {
		return apperrors.ErrInvalidResetToken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hashed)
	user.ResetTokenHash = ""
	user.ResetTokenExpiry = nil
	return s.users.Save(ctx, user)
}
