package sync

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatherRunsAllTasksAndKeepsOrder(t *testing.T) {
	var ran atomic.Int32
	errBoom := errors.New("boom")

	tasks := []task{
		{label: "a", run: func(context.Context) error { ran.Add(1); return nil }},
		{label: "b", run: func(context.Context) error { ran.Add(1); return errBoom }},
		{label: "c", run: func(context.Context) error { ran.Add(1); return nil }},
	}

	outcomes := gather(context.Background(), tasks)

	require.Len(t, outcomes, 3)
	assert.Equal(t, int32(3), ran.Load(), "a failure never cancels sibling tasks")
	assert.Equal(t, "a", outcomes[0].label)
	assert.Equal(t, "b", outcomes[1].label)
	assert.Equal(t, "c", outcomes[2].label)
	assert.NoError(t, outcomes[0].err)
	assert.ErrorIs(t, outcomes[1].err, errBoom)
	assert.NoError(t, outcomes[2].err)
}

func TestGatherEmpty(t *testing.T) {
	outcomes := gather(context.Background(), nil)
	assert.Empty(t, outcomes)
}

func TestFailedOutcomes(t *testing.T) {
	outcomes := []outcome{
		{label: "ok"},
		{label: "bad", err: errors.New("boom")},
		{label: "also ok"},
	}

	failed := failedOutcomes(outcomes)
	require.Len(t, failed, 1)
	assert.Equal(t, "bad", failed[0].label)
}
