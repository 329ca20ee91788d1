package store

import (
	"context"
	"testing"
	"time"

	"github.com/Conflux-Chain/wasm-contract-indexer/types"
	"github.com/mcuadros/go-defaults"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Load(ctx context.Context) (*types.CheckpointState, error) {
	args := m.Called(ctx)
	return args.Get(0).(*types.CheckpointState), args.Error(1)
}

func (m *MockStore) Save(ctx context.Context, state *types.CheckpointState) error {
	return m.Called(ctx, state).Error(0)
}

func (m *MockStore) Close() error {
	return m.Called().Error(0)
}

func newTestWriter(store Store) *Writer {
	var option WriteOption
	defaults.SetDefaults(&option)
	option.RetryInterval = time.Millisecond

	return NewWriter(store, option)
}

func TestWriterSave(t *testing.T) {
	state := types.NewCheckpointState()

	m := new(MockStore)
	m.On("Save", mock.Anything, state).Return(nil).Once()

	assert.Nil(t, newTestWriter(m).Save(context.Background(), state))
	m.AssertNumberOfCalls(t, "Save", 1)
}

func TestWriterRetry(t *testing.T) {
	state := types.NewCheckpointState()

	m := new(MockStore)
	m.On("Save", mock.Anything, state).Return(errors.New("disk full")).Twice()
	m.On("Save", mock.Anything, state).Return(nil).Once()

	assert.Nil(t, newTestWriter(m).Save(context.Background(), state))
	m.AssertNumberOfCalls(t, "Save", 3)
}

func TestWriterExhausted(t *testing.T) {
	state := types.NewCheckpointState()

	m := new(MockStore)
	m.On("Save", mock.Anything, state).Return(errors.New("disk full"))

	writer := newTestWriter(m)
	err := writer.Save(context.Background(), state)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	// first attempt plus retries
	m.AssertNumberOfCalls(t, "Save", writer.option.MaxRetries+1)
}

func TestWriterCanceled(t *testing.T) {
	state := types.NewCheckpointState()

	m := new(MockStore)
	m.On("Save", mock.Anything, state).Return(errors.New("disk full"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, newTestWriter(m).Save(ctx, state))
	m.AssertNumberOfCalls(t, "Save", 1)
}

func TestWriterLoadAndClose(t *testing.T) {
	state := &types.CheckpointState{LastPage: 3, Data: []types.ContractRecord{}}

	m := new(MockStore)
	m.On("Load", mock.Anything).Return(state, nil)
	m.On("Close").Return(nil)

	writer := newTestWriter(m)

	loaded, err := writer.Load(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, state, loaded)
	assert.Nil(t, writer.Close())
}
