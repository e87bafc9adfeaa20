package service

import (
	"errors"
	"sync/atomic"

	"massnet.org/hashlookup/logging"
)

var (
	ErrOperating = errors.New("service is operating")
	ErrStarted   = errors.New("service is started")
	ErrStopped   = errors.New("service is stopped")
)

// Service is a component with a start/stop lifecycle. Implementations
// embed *BaseService and provide OnStart/OnStop.
type Service interface {
	Start() error
	OnStart() error
	Stop() error
	OnStop() error
	Started() bool
	Name() string
}

type BaseService struct {
	service   Service
	started   int32
	operating int32
	name      string
}

func NewBaseService(service Service, name string) *BaseService {
	return &BaseService{
		service: service,
		name:    name,
	}
}

// transition runs hook and moves started from `from` to `to`. Concurrent
// transitions fail with ErrOperating instead of waiting.
func (bs *BaseService) transition(from, to int32, hook func() error, errState error) error {
	if swapped := atomic.CompareAndSwapInt32(&bs.operating, 0, 1); !swapped {
		return ErrOperating
	}
	defer atomic.StoreInt32(&bs.operating, 0)

	if atomic.LoadInt32(&bs.started) != from {
		return errState
	}
	if err := hook(); err != nil {
		logging.CPrint(logging.ERROR, "service transition failed", logging.LogFormat{"service": bs.name, "started": to == 1, "err": err})
		return err
	}
	atomic.StoreInt32(&bs.started, to)
	logging.CPrint(logging.INFO, "service transition", logging.LogFormat{"service": bs.name, "started": to == 1})
	return nil
}

func (bs *BaseService) Start() error {
	return bs.transition(0, 1, bs.service.OnStart, ErrStarted)
}

func (bs *BaseService) OnStart() error {
	return nil
}

func (bs *BaseService) Stop() error {
	return bs.transition(1, 0, bs.service.OnStop, ErrStopped)
}

func (bs *BaseService) OnStop() error {
	return nil
}

func (bs *BaseService) Started() bool {
	return atomic.LoadInt32(&bs.started) == 1
}

func (bs *BaseService) Name() string {
	return bs.name
}
