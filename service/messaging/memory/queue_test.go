package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type job struct {
	Name string
}

func TestQueue_PublishConsume(t *testing.T) {
	ctx := context.Background()
	queue := NewQueue[job](DefaultConfig())

	require.NoError(t, queue.Publish(ctx, &job{Name: "a.tex"}))
	require.NoError(t, queue.Publish(ctx, &job{Name: "b.tex"}))

	msg, err := queue.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a.tex", msg.T().Name)
	require.NoError(t, msg.Ack())
	assert.Error(t, msg.Ack())

	msg, err = queue.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b.tex", msg.T().Name)
}

func TestQueue_ConsumeHonoursCancel(t *testing.T) {
	queue := NewQueue[job](DefaultConfig())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := queue.Consume(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestQueue_NackRequeues(t *testing.T) {
	ctx := context.Background()
	queue := NewQueue[job](Config{MaxRetries: 1, RetryDelay: time.Millisecond, QueueBuffer: 4})
	require.NoError(t, queue.Publish(ctx, &job{Name: "a.tex"}))

	msg, err := queue.Consume(ctx)
	require.NoError(t, err)
	require.NoError(t, msg.Nack(assert.AnError))

	redelivered, err := queue.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a.tex", redelivered.T().Name)

	// retry budget exhausted, nothing is requeued
	require.NoError(t, redelivered.Nack(assert.AnError))
	waitCtx, cancel := context.WithTimeout(ctx, 30*time.Millisecond)
	defer cancel()
	_, err = queue.Consume(waitCtx)
	assert.Error(t, err)
}
