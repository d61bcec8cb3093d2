package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	expireApprovals "github.com/m04kA/SMC-ParkingService/internal/usecase/expire_approvals"
)

type fakeUseCase struct {
	mu    sync.Mutex
	calls int
	resp  *expireApprovals.Response
	err   error

	// block имитирует затянувшийся проход
	block chan struct{}
}

func (f *fakeUseCase) Execute(_ context.Context) (*expireApprovals.Response, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.block != nil {
		<-f.block
	}
	return f.resp, f.err
}

func (f *fakeUseCase) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestSweep_RunsUseCase(t *testing.T) {
	uc := &fakeUseCase{resp: &expireApprovals.Response{ExpiredIDs: []int64{1, 2}}}
	s := NewApprovalSweeper(uc, nopLogger{}, time.Minute, nil)

	s.sweep(context.Background())

	assert.Equal(t, 1, uc.callCount())
	assert.False(t, s.running.Load())
}

func TestSweep_ErrorReleasesGuard(t *testing.T) {
	uc := &fakeUseCase{err: errors.New("db down")}
	s := NewApprovalSweeper(uc, nopLogger{}, time.Minute, nil)

	s.sweep(context.Background())

	// Упавший проход не оставляет флаг взведенным
	assert.False(t, s.running.Load())
}

func TestSweep_SkipsOverlappingRun(t *testing.T) {
	uc := &fakeUseCase{
		resp:  &expireApprovals.Response{},
		block: make(chan struct{}),
	}
	s := NewApprovalSweeper(uc, nopLogger{}, time.Minute, nil)

	done := make(chan struct{})
	go func() {
		s.sweep(context.Background())
		close(done)
	}()

	// Дожидаемся входа первого прохода в use case
	assert.Eventually(t, func() bool { return uc.callCount() == 1 }, time.Second, time.Millisecond)

	// Второй тик поверх затянувшегося прохода пропускается
	s.sweep(context.Background())
	assert.Equal(t, 1, uc.callCount())

	close(uc.block)
	<-done
	assert.False(t, s.running.Load())
}
