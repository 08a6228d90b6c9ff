package retry

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type nopSleeper struct {
	slept []time.Duration
}

func (s *nopSleeper) Sleep(d time.Duration) {
	s.slept = append(s.slept, d)
}

func TestRetry_NoStrategies(t *testing.T) {
	calls := 0
	attempts, err := Retry(func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.EqualValues(t, 3, attempts)
}

func TestRetry_Limit(t *testing.T) {
	errTransient := errors.New("transient")

	calls := 0
	attempts, err := Retry(func() error {
		calls++
		return errTransient
	}, Limit(3))

	assert.Equal(t, errTransient, err)
	assert.EqualValues(t, 3, attempts)
	assert.Equal(t, 3, calls)
}

func TestRetry_RetriableErrors(t *testing.T) {
	errRetriable := errors.New("retriable")
	errFatal := errors.New("fatal")

	calls := 0
	_, err := Retry(func() error {
		calls++
		if calls == 1 {
			return errRetriable
		}
		return errFatal
	}, RetriableErrors(errRetriable))

	assert.Equal(t, errFatal, err)
	assert.Equal(t, 2, calls)
}

func TestRetry_NonRetriableErrors(t *testing.T) {
	errFatal := errors.New("fatal")

	calls := 0
	_, err := Retry(func() error {
		calls++
		return errFatal
	}, NonRetriableErrors(errFatal))

	assert.Equal(t, errFatal, err)
	assert.Equal(t, 1, calls)
}

func TestRetry_Backoff(t *testing.T) {
	sleeper := &nopSleeper{}
	sleeperImpl = sleeper
	defer func() { sleeperImpl = &realSleeper{} }()

	errTransient := errors.New("transient")

	_, err := Retry(func() error {
		return errTransient
	}, Limit(4), Backoff(func(attempts uint) time.Duration {
		return time.Duration(attempts) * time.Second
	}, 2*time.Second))

	assert.Equal(t, errTransient, err)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 2 * time.Second}, sleeper.slept)
}
