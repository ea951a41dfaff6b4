package notification

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/notifykit/svc/entity"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindNotesWithRelations(ctx context.Context, ids []string) ([]entity.Note, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Note), args.Error(1)
}

func (m *MockRepository) FindUsers(ctx context.Context, ids []string) ([]entity.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockRepository) FindPendingFollowRequests(ctx context.Context, followerIDs []string) ([]entity.FollowRequest, error) {
	args := m.Called(ctx, followerIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.FollowRequest), args.Error(1)
}

type MockNotePacker struct {
	mock.Mock
}

func (m *MockNotePacker) Pack(ctx context.Context, noteID, viewerID string, opts entity.PackOptions) (entity.PackedNote, error) {
	args := m.Called(ctx, noteID, viewerID, opts)
	return args.Get(0).(entity.PackedNote), args.Error(1)
}

func (m *MockNotePacker) PackMany(ctx context.Context, notes []entity.Note, viewerID string, opts entity.PackOptions) ([]entity.PackedNote, error) {
	args := m.Called(ctx, notes, viewerID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.PackedNote), args.Error(1)
}

type MockUserPacker struct {
	mock.Mock
}

func (m *MockUserPacker) Pack(ctx context.Context, userID, viewerID string, opts entity.PackOptions) (entity.PackedUser, error) {
	args := m.Called(ctx, userID, viewerID, opts)
	return args.Get(0).(entity.PackedUser), args.Error(1)
}

func (m *MockUserPacker) PackMany(ctx context.Context, users []entity.User, viewerID string, opts entity.PackOptions) ([]entity.PackedUser, error) {
	args := m.Called(ctx, users, viewerID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.PackedUser), args.Error(1)
}
