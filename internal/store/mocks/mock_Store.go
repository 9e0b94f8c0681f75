// Package mocks provides test doubles for the store.
package mocks

import (
	"context"
	"time"

	mock "github.com/stretchr/testify/mock"

	model "github.com/sells-group/enrich-cli/internal/model"
)

// MockStore is a mock type for the Store interface.
type MockStore struct {
	mock.Mock
}

// NewMockStore creates a new MockStore and registers cleanup assertions.
func NewMockStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockStore {
	m := &MockStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// InsertContact provides a mock function with given fields: ctx, contact
func (_m *MockStore) InsertContact(ctx context.Context, contact model.Contact) (int64, error) {
	ret := _m.Called(ctx, contact)

	if len(ret) == 0 {
		panic("no return value specified for InsertContact")
	}

	var r0 int64
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, model.Contact) (int64, error)); ok {
		return rf(ctx, contact)
	}
	if rf, ok := ret.Get(0).(func(context.Context, model.Contact) int64); ok {
		r0 = rf(ctx, contact)
	} else {
		r0 = ret.Get(0).(int64)
	}

	if rf, ok := ret.Get(1).(func(context.Context, model.Contact) error); ok {
		r1 = rf(ctx, contact)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// ListUnenriched provides a mock function with given fields: ctx
func (_m *MockStore) ListUnenriched(ctx context.Context) ([]model.Lead, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for ListUnenriched")
	}

	var r0 []model.Lead
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) ([]model.Lead, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) []model.Lead); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]model.Lead)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetLead provides a mock function with given fields: ctx, leadID
func (_m *MockStore) GetLead(ctx context.Context, leadID int64) (*model.Lead, error) {
	ret := _m.Called(ctx, leadID)

	if len(ret) == 0 {
		panic("no return value specified for GetLead")
	}

	var r0 *model.Lead
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int64) (*model.Lead, error)); ok {
		return rf(ctx, leadID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int64) *model.Lead); ok {
		r0 = rf(ctx, leadID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*model.Lead)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, int64) error); ok {
		r1 = rf(ctx, leadID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// UpdateEnrichment provides a mock function with given fields: ctx, leadID, rec, enrichedAt
func (_m *MockStore) UpdateEnrichment(ctx context.Context, leadID int64, rec model.EnrichmentRecord, enrichedAt time.Time) error {
	ret := _m.Called(ctx, leadID, rec, enrichedAt)

	if len(ret) == 0 {
		panic("no return value specified for UpdateEnrichment")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, int64, model.EnrichmentRecord, time.Time) error); ok {
		r0 = rf(ctx, leadID, rec, enrichedAt)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Migrate provides a mock function with given fields: ctx
func (_m *MockStore) Migrate(ctx context.Context) error {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for Migrate")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context) error); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Ping provides a mock function with given fields: ctx
func (_m *MockStore) Ping(ctx context.Context) error {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for Ping")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context) error); ok {
		r0 = rf(ctx)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Close provides a mock function with no fields
func (_m *MockStore) Close() error {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for Close")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func() error); ok {
		r0 = rf()
	} else {
		r0 = ret.Error(0)
	}

	return r0
}
