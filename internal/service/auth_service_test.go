package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"atelier/internal/auth"
	apperrors "atelier/internal/errors"
	"atelier/internal/model"
	"atelier/internal/upload"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Save(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByResetTokenHash(ctx context.Context, hash string) (*model.User, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockStorage is a mock implementation of storage.Client.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Store(ctx context.Context, r io.Reader, filename, folder string) (model.ImageRef, error) {
	args := m.Called(ctx, r, filename, folder)
	return args.Get(0).(model.ImageRef), args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, publicID string) error {
	args := m.Called(ctx, publicID)
	return args.Error(0)
}

// MockMailer is a mock implementation of mailer.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendPasswordReset(ctx context.Context, to, resetLink string) error {
	args := m.Called(ctx, to, resetLink)
	return args.Error(0)
}

func newAuthServiceForTest(users *MockUserRepository, store *MockStorage, mail *MockMailer) AuthService {
	jwtService := auth.NewJWTService("test-secret")
	uploads := upload.New(store, 0)
	return NewAuthService(users, jwtService, uploads, store, mail, "http://localhost:3000")
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		userName      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration returns default role",
			email:    "a@x.com",
			password: "password123",
			userName: "Alex",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, apperrors.ErrNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "duplicate email",
			email:    "a@x.com",
			password: "password123",
			userName: "Alex",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(&model.User{Email: "a@x.com"}, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
		{
			name:     "concurrent duplicate past the existence check",
			email:    "a@x.com",
			password: "password123",
			userName: "Alex",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, apperrors.ErrNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := newAuthServiceForTest(mockRepo, new(MockStorage), new(MockMailer))
			user, err := svc.Register(context.Background(), tt.email, tt.password, tt.userName)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, model.RoleUser, user.Role)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.password, user.PasswordHash)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
	account := &model.User{
		ID:           uuid.New(),
		Email:        "a@x.com",
		PasswordHash: string(hashed),
		Role:         model.RoleAdmin,
	}

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login issues a token",
			email:    "a@x.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(account, nil)
			},
		},
		{
			name:     "wrong password",
			email:    "a@x.com",
			password: "nope",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "a@x.com").Return(account, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "missing@x.com",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "missing@x.com").Return(nil, apperrors.ErrNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := newAuthServiceForTest(mockRepo, new(MockStorage), new(MockMailer))
			token, user, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.Equal(t, tt.email, user.Email)

				claims, verifyErr := auth.NewJWTService("test-secret").VerifySessionToken(token)
				assert.NoError(t, verifyErr)
				assert.Equal(t, account.ID, claims.UserID)
				assert.Equal(t, model.RoleAdmin, claims.Role)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_RequestPasswordReset_SendFailureInvalidatesToken(t *testing.T) {
	user := &model.User{ID: uuid.New(), Email: "a@x.com"}

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "a@x.com").Return(user, nil)

	var savedStates []string
	mockRepo.On("Save", mock.Anything, user).Run(func(args mock.Arguments) {
		savedStates = append(savedStates, args.Get(1).(*model.User).ResetTokenHash)
	}).Return(nil)

	mockMail := new(MockMailer)
	mockMail.On("SendPasswordReset", mock.Anything, "a@x.com", mock.Anything).
		Return(assert.AnError)

	svc := newAuthServiceForTest(mockRepo, new(MockStorage), mockMail)
	err := svc.RequestPasswordReset(context.Background(), "a@x.com")

	assert.Error(t, err)
	// first save stores the token hash, second save clears it
	assert.Len(t, savedStates, 2)
	assert.NotEmpty(t, savedStates[0])
	assert.Empty(t, savedStates[1])
	assert.Empty(t, user.ResetTokenHash)
	assert.Nil(t, user.ResetTokenExpiry)
	mockRepo.AssertExpectations(t)
	mockMail.AssertExpectations(t)
}

func TestAuthService_RequestPasswordReset_UnknownEmailIsSilent(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "ghost@x.com").Return(nil, apperrors.ErrNotFound)

	mockMail := new(MockMailer)

	svc := newAuthServiceForTest(mockRepo, new(MockStorage), mockMail)
	err := svc.RequestPasswordReset(context.Background(), "ghost@x.com")

	assert.NoError(t, err)
	mockMail.AssertNotCalled(t, "SendPasswordReset", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_ResetPassword_SingleUse(t *testing.T) {
	raw, hash, err := auth.NewResetToken()
	assert.NoError(t, err)

	expiry := time.Now().Add(10 * time.Minute)
	user := &model.User{
		ID:               uuid.New(),
		Email:            "a@x.com",
		PasswordHash:     "old-hash",
		ResetTokenHash:   hash,
		ResetTokenExpiry: &expiry,
	}

	mockRepo := new(MockUserRepository)
	// first consumption finds the record, second does not: the hash was cleared
	mockRepo.On("FindByResetTokenHash", mock.Anything, hash).Return(user, nil).Once()
	mockRepo.On("FindByResetTokenHash", mock.Anything, hash).Return(nil, apperrors.ErrNotFound).Once()
	mockRepo.On("Save", mock.Anything, user).Return(nil).Once()

	svc := newAuthServiceForTest(mockRepo, new(MockStorage), new(MockMailer))

	assert.NoError(t, svc.ResetPassword(context.Background(), raw, "newpassword1"))
	assert.Empty(t, user.ResetTokenHash)
	assert.Nil(t, user.ResetTokenExpiry)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newpassword1")))

	err = svc.ResetPassword(context.Background(), raw, "anotherpass1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidResetToken)

	mockRepo.AssertExpectations(t)
}

func TestAuthService_ResetPassword_Expired(t *testing.T) {
	raw, hash, err := auth.NewResetToken()
	assert.NoError(t, err)

	expiry := time.Now().Add(-time.Minute)
	user := &model.User{
		ID:               uuid.New(),
		PasswordHash:     "old-hash",
		ResetTokenHash:   hash,
		ResetTokenExpiry: &expiry,
	}

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByResetTokenHash", mock.Anything, hash).Return(user, nil)

	svc := newAuthServiceForTest(mockRepo, new(MockStorage), new(MockMailer))
	resetErr := svc.ResetPassword(context.Background(), raw, "newpassword1")

	assert.ErrorIs(t, resetErr, apperrors.ErrInvalidResetToken)
	assert.Equal(t, "old-hash", user.PasswordHash)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
