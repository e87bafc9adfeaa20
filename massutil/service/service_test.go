package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type testService struct {
	*BaseService
	starts, stops int
	startErr      error
}

func newTestService() *testService {
	s := &testService{}
	s.BaseService = NewBaseService(s, "test")
	return s
}

func (s *testService) OnStart() error {
	if s.startErr != nil {
		return s.startErr
	}
	s.starts++
	return nil
}

func (s *testService) OnStop() error {
	s.stops++
	return nil
}

func TestLifecycle(t *testing.T) {
	s := newTestService()
	assert.Equal(t, "test", s.Name())
	assert.False(t, s.Started())

	assert.Equal(t, ErrStopped, s.Stop())
	assert.NoError(t, s.Start())
	assert.True(t, s.Started())
	assert.Equal(t, ErrStarted, s.Start())
	assert.NoError(t, s.Stop())
	assert.False(t, s.Started())
	assert.NoError(t, s.Start())

	assert.Equal(t, 2, s.starts)
	assert.Equal(t, 1, s.stops)
}

func TestStartError(t *testing.T) {
	s := newTestService()
	s.startErr = errors.New("port in use")
	assert.Equal(t, s.startErr, s.Start())
	assert.False(t, s.Started())
}

func TestOperating(t *testing.T) {
	s := newTestService()
	s.operating = 1
	assert.Equal(t, ErrOperating, s.Start())
	assert.Equal(t, ErrOperating, s.Stop())
}
