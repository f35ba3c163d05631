package handlers_test

import (
	"context"

	"github.com/rurasogoodo/notes_app/internal/core/domain"
	portssvc "github.com/rurasogoodo/notes_app/internal/core/ports/services"
	"github.com/rurasogoodo/notes_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock SessionService ---
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.LoginResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoginResult), args.Error(1)
}
func (m *MockSessionService) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoginResult), args.Error(1)
}
func (m *MockSessionService) Refresh(ctx context.Context, refreshToken string) (*domain.AccessTokenResult, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccessTokenResult), args.Error(1)
}
func (m *MockSessionService) Logout(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockSessionService) GetCurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.SessionSvc = (*MockSessionService)(nil)

// --- Mock RecoveryService ---
type MockRecoveryService struct {
	mock.Mock
}

func (m *MockRecoveryService) SendEmailVerification(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}
func (m *MockRecoveryService) VerifyEmail(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}
func (m *MockRecoveryService) RequestPasswordReset(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}
func (m *MockRecoveryService) VerifyResetToken(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}
func (m *MockRecoveryService) RecoverAccount(ctx context.Context, req dto.RecoverAccountRequest) error {
	return m.Called(ctx, req).Error(0)
}

var _ portssvc.RecoverySvc = (*MockRecoveryService)(nil)

// --- Mock NoteService ---
type MockNoteService struct {
	mock.Mock
}

func (m *MockNoteService) CreateNote(ctx context.Context, userID string, req dto.CreateNoteRequest) (*domain.Note, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Note), args.Error(1)
}
func (m *MockNoteService) GetNote(ctx context.Context, userID, noteID string) (*domain.Note, error) {
	args := m.Called(ctx, userID, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Note), args.Error(1)
}
func (m *MockNoteService) ListNotes(ctx context.Context, userID string, params dto.ListNotesParams) (*domain.NotePage, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotePage), args.Error(1)
}
func (m *MockNoteService) UpdateNote(ctx context.Context, userID, noteID string, req dto.UpdateNoteRequest) (*domain.Note, error) {
	args := m.Called(ctx, userID, noteID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Note), args.Error(1)
}
func (m *MockNoteService) DeleteNote(ctx context.Context, userID, noteID string) error {
	return m.Called(ctx, userID, noteID).Error(0)
}

var _ portssvc.NoteSvcFacade = (*MockNoteService)(nil)
