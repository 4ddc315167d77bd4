package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"homeneeds/internal/errors"
	"homeneeds/internal/model"
)

// MockCatalogSeeder is a mock implementation of CatalogSeeder.
type MockCatalogSeeder struct {
	mock.Mock
}

func (m *MockCatalogSeeder) SeedDefaults(ctx context.Context, ownerID uint) error {
	args := m.Called(ctx, ownerID)
	return args.Error(0)
}

// captureDelivery records sent codes on a channel so tests can wait for the
// background delivery goroutine deterministically.
type captureDelivery struct {
	sent chan string
	err  error
}

func newCaptureDelivery() *captureDelivery {
	return &captureDelivery{sent: make(chan string, 1)}
}

func (d *captureDelivery) SendVerificationCode(ctx context.Context, toEmail, toName, code string) error {
	d.sent <- code
	return d.err
}

func strPtr(s string) *string        { return &s }
func timePtr(t time.Time) *time.Time { return &t }

func TestVerificationService_Begin(t *testing.T) {
	t.Run("already verified is a no-op", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockSeeder := new(MockCatalogSeeder)
		delivery := newCaptureDelivery()

		service := NewVerificationService(mockRepo, mockSeeder, delivery, true, 10*time.Minute, time.Second)
		codeRequired, err := service.Begin(context.Background(), &model.User{ID: 1, IsVerified: true})

		assert.NoError(t, err)
		assert.False(t, codeRequired)
		mockRepo.AssertExpectations(t)
	})

	t.Run("auto-verify policy verifies and seeds immediately", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("MarkVerified", mock.Anything, uint(1)).Return(nil)
		mockSeeder := new(MockCatalogSeeder)
		mockSeeder.On("SeedDefaults", mock.Anything, uint(1)).Return(nil)
		delivery := newCaptureDelivery()

		service := NewVerificationService(mockRepo, mockSeeder, delivery, false, 10*time.Minute, time.Second)
		user := &model.User{ID: 1, Name: "alice", Email: "alice@example.com"}
		codeRequired, err := service.Begin(context.Background(), user)

		assert.NoError(t, err)
		assert.False(t, codeRequired)
		assert.True(t, user.IsVerified)
		select {
		case code := <-delivery.sent:
			t.Fatalf("no mail expected under auto-verify, got code %s", code)
		default:
		}
		mockRepo.AssertExpectations(t)
		mockSeeder.AssertExpectations(t)
	})

	t.Run("code policy stores a code and mails it", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("SetVerificationCode", mock.Anything, uint(1), mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil)
		mockSeeder := new(MockCatalogSeeder)
		delivery := newCaptureDelivery()

		service := NewVerificationService(mockRepo, mockSeeder, delivery, true, 10*time.Minute, time.Second)
		user := &model.User{ID: 1, Name: "alice", Email: "alice@example.com"}
		codeRequired, err := service.Begin(context.Background(), user)

		assert.NoError(t, err)
		assert.True(t, codeRequired)
		assert.False(t, user.IsVerified)
		assert.NotNil(t, user.VerificationCode)
		assert.Len(t, *user.VerificationCode, 6)

		select {
		case code := <-delivery.sent:
			assert.Equal(t, *user.VerificationCode, code)
		case <-time.After(2 * time.Second):
			t.Fatal("delivery never happened")
		}
		mockRepo.AssertExpectations(t)
	})

	t.Run("delivery failure does not fail code issuance", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("SetVerificationCode", mock.Anything, uint(1), mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil)
		delivery := newCaptureDelivery()
		delivery.err = assert.AnError

		service := NewVerificationService(mockRepo, new(MockCatalogSeeder), delivery, true, 10*time.Minute, time.Second)
		user := &model.User{ID: 1, Name: "alice", Email: "alice@example.com"}
		codeRequired, err := service.Begin(context.Background(), user)

		assert.NoError(t, err)
		assert.True(t, codeRequired)
		assert.NotNil(t, user.VerificationCode)

		select {
		case <-delivery.sent:
		case <-time.After(2 * time.Second):
			t.Fatal("delivery never attempted")
		}
		mockRepo.AssertExpectations(t)
	})
}

func TestVerificationService_Submit(t *testing.T) {
	future := time.Now().Add(5 * time.Minute)
	past := time.Now().Add(-time.Minute)

	tests := []struct {
		name          string
		userName      string
		code          string
		setupMock     func(*MockUserRepository, *MockCatalogSeeder)
		expectedError error
	}{
		{
			name:     "matching code verifies and seeds",
			userName: "alice",
			code:     "123456",
			setupMock: func(mRepo *MockUserRepository, mSeeder *MockCatalogSeeder) {
				mRepo.On("FindByName", mock.Anything, "alice").Return(&model.User{
					ID:               1,
					Name:             "alice",
					VerificationCode: strPtr("123456"),
					CodeExpiry:       timePtr(future),
				}, nil)
				mRepo.On("MarkVerified", mock.Anything, uint(1)).Return(nil)
				mSeeder.On("SeedDefaults", mock.Anything, uint(1)).Return(nil)
			},
		},
		{
			name:     "unknown name looks like a wrong code",
			userName: "nobody",
			code:     "123456",
			setupMock: func(mRepo *MockUserRepository, mSeeder *MockCatalogSeeder) {
				mRepo.On("FindByName", mock.Anything, "nobody").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrInvalidCode,
		},
		{
			name:     "already verified",
			userName: "alice",
			code:     "123456",
			setupMock: func(mRepo *MockUserRepository, mSeeder *MockCatalogSeeder) {
				mRepo.On("FindByName", mock.Anything, "alice").Return(&model.User{
					ID:         1,
					Name:       "alice",
					IsVerified: true,
				}, nil)
			},
			expectedError: errors.ErrAlreadyVerified,
		},
		{
			name:     "no code outstanding",
			userName: "alice",
			code:     "123456",
			setupMock: func(mRepo *MockUserRepository, mSeeder *MockCatalogSeeder) {
				mRepo.On("FindByName", mock.Anything, "alice").Return(&model.User{
					ID:   1,
					Name: "alice",
				}, nil)
			},
			expectedError: errors.ErrInvalidCode,
		},
		{
			name:     "expired code wins over a value match",
			userName: "alice",
			code:     "123456",
			setupMock: func(mRepo *MockUserRepository, mSeeder *MockCatalogSeeder) {
				mRepo.On("FindByName", mock.Anything, "alice").Return(&model.User{
					ID:               1,
					Name:             "alice",
					VerificationCode: strPtr("123456"),
					CodeExpiry:       timePtr(past),
				}, nil)
			},
			expectedError: errors.ErrCodeExpired,
		},
		{
			name:     "wrong code",
			userName: "alice",
			code:     "000000",
			setupMock: func(mRepo *MockUserRepository, mSeeder *MockCatalogSeeder) {
				mRepo.On("FindByName", mock.Anything, "alice").Return(&model.User{
					ID:               1,
					Name:             "alice",
					VerificationCode: strPtr("123456"),
					CodeExpiry:       timePtr(future),
				}, nil)
			},
			expectedError: errors.ErrInvalidCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockSeeder := new(MockCatalogSeeder)
			tt.setupMock(mockRepo, mockSeeder)

			service := NewVerificationService(mockRepo, mockSeeder, newCaptureDelivery(), true, 10*time.Minute, time.Second)
			user, err := service.Submit(context.Background(), tt.userName, tt.code)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.True(t, user.IsVerified)
				assert.Nil(t, user.VerificationCode)
				assert.Nil(t, user.CodeExpiry)
			}

			mockRepo.AssertExpectations(t)
			mockSeeder.AssertExpectations(t)
		})
	}
}

func TestVerificationService_Resend(t *testing.T) {
	t.Run("issues a fresh code replacing the old one", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByName", mock.Anything, "alice").Return(&model.User{
			ID:               1,
			Name:             "alice",
			Email:            "alice@example.com",
			VerificationCode: strPtr("111111"),
			CodeExpiry:       timePtr(time.Now().Add(5 * time.Minute)),
		}, nil)
		mockRepo.On("SetVerificationCode", mock.Anything, uint(1), mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil)
		delivery := newCaptureDelivery()

		service := NewVerificationService(mockRepo, new(MockCatalogSeeder), delivery, true, 10*time.Minute, time.Second)
		assert.NoError(t, service.Resend(context.Background(), "alice"))

		select {
		case <-delivery.sent:
		case <-time.After(2 * time.Second):
			t.Fatal("delivery never happened")
		}
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown name succeeds silently", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByName", mock.Anything, "nobody").Return(nil, gorm.ErrRecordNotFound)

		service := NewVerificationService(mockRepo, new(MockCatalogSeeder), newCaptureDelivery(), true, 10*time.Minute, time.Second)
		assert.NoError(t, service.Resend(context.Background(), "nobody"))
		mockRepo.AssertExpectations(t)
	})

	t.Run("verified account gets the same silent success as an unknown name", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByName", mock.Anything, "alice").Return(&model.User{ID: 1, Name: "alice", IsVerified: true}, nil)

		service := NewVerificationService(mockRepo, new(MockCatalogSeeder), newCaptureDelivery(), true, 10*time.Minute, time.Second)
		assert.NoError(t, service.Resend(context.Background(), "alice"))
		mockRepo.AssertNotCalled(t, "SetVerificationCode", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGenerateVerificationCode(t *testing.T) {
	for i := 0; i < 32; i++ {
		code, err := generateVerificationCode()
		assert.NoError(t, err)
		assert.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9')
		}
	}
}
