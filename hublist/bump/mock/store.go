package mock

import (
	context "context"
	reflect "reflect"

	bump "github.com/hublist/hublist/hublist/bump"
	models "github.com/hublist/hublist/hublist/database/models"
	gomock "go.uber.org/mock/gomock"
)

// MockStore is a mock of Store interface.
type MockStore struct {
	ctrl     *gomock.Controller
	recorder *MockStoreMockRecorder
	isgomock struct{}
}

// MockStoreMockRecorder is the mock recorder for MockStore.
type MockStoreMockRecorder struct {
	mock *MockStore
}

// NewMockStore creates a new mock instance.
func NewMockStore(ctrl *gomock.Controller) *MockStore {
	mock := &MockStore{ctrl: ctrl}
	mock.recorder = &MockStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockStore) EXPECT() *MockStoreMockRecorder {
	return m.recorder
}

// ApplyBump mocks base method.
func (m *MockStore) ApplyBump(ctx context.Context, req bump.ApplyRequest) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ApplyBump", ctx, req)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ApplyBump indicates an expected call of ApplyBump.
func (mr *MockStoreMockRecorder) ApplyBump(ctx, req any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ApplyBump", reflect.TypeOf((*MockStore)(nil).ApplyBump), ctx, req)
}

// GetCooldown mocks base method.
func (m *MockStore) GetCooldown(ctx context.Context, userDiscordID string, listingID int64) (*models.BumpCooldown, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetCooldown", ctx, userDiscordID, listingID)
	ret0, _ := ret[0].(*models.BumpCooldown)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetCooldown indicates an expected call of GetCooldown.
func (mr *MockStoreMockRecorder) GetCooldown(ctx, userDiscordID, listingID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetCooldown", reflect.TypeOf((*MockStore)(nil).GetCooldown), ctx, userDiscordID, listingID)
}

// GetListing mocks base method.
func (m *MockStore) GetListing(ctx context.Context, listingID int64) (*models.Listing, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetListing", ctx, listingID)
	ret0, _ := ret[0].(*models.Listing)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetListing indicates an expected call of GetListing.
func (mr *MockStoreMockRecorder) GetListing(ctx, listingID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetListing", reflect.TypeOf((*MockStore)(nil).GetListing), ctx, listingID)
}

// GetProfile mocks base method.
func (m *MockStore) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetProfile", ctx, userID)
	ret0, _ := ret[0].(*models.Profile)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetProfile indicates an expected call of GetProfile.
func (mr *MockStoreMockRecorder) GetProfile(ctx, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetProfile", reflect.TypeOf((*MockStore)(nil).GetProfile), ctx, userID)
}
