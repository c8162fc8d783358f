// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/singleflight"
)

type teacherCard struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Tags  []string `json:"tags"`
	Order int      `json:"order"`
}

func TestJSON_RoundTrip(t *testing.T) {
	c, _ := newTestMemory(t, MemoryOptions{TTL: time.Hour})
	ctx := context.Background()

	want := []teacherCard{{ID: "t1", Name: "Sara", Tags: []string{"voice", "choir"}, Order: 2}}
	require.NoError(t, SetJSON(ctx, c, "teachers", want, 0))

	got, ok := GetJSON[[]teacherCard](ctx, c, "teachers")
	require.True(t, ok)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetJSON mismatch (-want +got):\n%s", diff)
	}

	_, ok = GetJSON[[]teacherCard](ctx, c, "missing")
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "broken", []byte("{not json"), 0))
	_, ok = GetJSON[teacherCard](ctx, c, "broken")
	assert.False(t, ok, "undecodable entries read as misses")

	assert.Error(t, SetJSON(ctx, c, "chan", make(chan int), 0))
}

func TestFetch_LoadsOnce(t *testing.T) {
	c, _ := newTestMemory(t, MemoryOptions{TTL: time.Hour})
	var group singleflight.Group
	ctx := context.Background()

	var calls atomic.Int32
	release := make(chan struct{})
	load := func(context.Context) (teacherCard, error) {
		calls.Add(1)
		<-release
		return teacherCard{ID: "computed"}, nil
	}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Fetch(ctx, c, &group, "k", 0, load)
			assert.NoError(t, err)
			assert.Equal(t, "computed", got.ID)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	got, err := Fetch(ctx, c, &group, "k", 0, load)
	require.NoError(t, err)
	assert.Equal(t, "computed", got.ID)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetch_ErrorsAreNotStored(t *testing.T) {
	c, _ := newTestMemory(t, MemoryOptions{TTL: time.Hour})
	var group singleflight.Group
	ctx := context.Background()

	errDown := errors.New("backend down")
	_, err := Fetch(ctx, c, &group, "k", 0, func(context.Context) (teacherCard, error) {
		return teacherCard{}, errDown
	})
	assert.ErrorIs(t, err, errDown)
	assertMiss(t, c, "k")
}

func TestFetch_CancelledCallerDoesNotFailOthers(t *testing.T) {
	c, _ := newTestMemory(t, MemoryOptions{TTL: time.Hour})
	var group singleflight.Group

	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	load := func(ctx context.Context) (teacherCard, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		if err := ctx.Err(); err != nil {
			return teacherCard{}, err
		}
		return teacherCard{ID: "computed"}, nil
	}

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := Fetch(ctxA, c, &group, "k", 0, load)
		errA <- err
	}()
	<-started
	cancelA()
	assert.ErrorIs(t, <-errA, context.Canceled)

	type result struct {
		card teacherCard
		err  error
	}
	resB := make(chan result, 1)
	go func() {
		card, err := Fetch(context.Background(), c, &group, "k", 0, load)
		resB <- result{card, err}
	}()
	time.Sleep(20 * time.Millisecond)
	close(release)

	got := <-resB
	require.NoError(t, got.err)
	assert.Equal(t, "computed", got.card.ID)
	assert.Equal(t, int32(1), calls.Load())

	cached, ok := GetJSON[teacherCard](context.Background(), c, "k")
	require.True(t, ok, "the shared load still stores its result")
	assert.Equal(t, "computed", cached.ID)
}
