package circuitbreaker_test

import (
	"errors"
	"testing"

	"github.com/mutinywallet/mutinyd/pkg/circuitbreaker"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreaker(t *testing.T) {
	cb := circuitbreaker.NewCircuitBreaker("test")
	require.Equal(t, "test", cb.Name())

	failure := errors.New("failure")
	for i := 0; i <= circuitbreaker.MaxNumOfFailingRequests; i++ {
		_, err := cb.Execute(func() (interface{}, error) {
			return nil, failure
		})
		require.ErrorIs(t, err, failure)
	}

	_, err := cb.Execute(func() (interface{}, error) {
		return nil, nil
	})
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	require.Equal(t, gobreaker.StateOpen, cb.State())
}
