package tracking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedLocator replays positions, repeating the last one once exhausted.
type scriptedLocator struct {
	mu        sync.Mutex
	positions [][2]int
	next      int
}

func (l *scriptedLocator) locate() (int, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p := l.positions[l.next]
	if l.next < len(l.positions)-1 {
		l.next++
	}
	return p[0], p[1]
}

func TestPollSource_ReportsOnlyChanges(t *testing.T) {
	loc := &scriptedLocator{positions: [][2]int{
		{0, 0}, {0, 0}, {3, 4}, {3, 4}, {3, 4}, {6, 8},
	}}
	src := &PollSource{Interval: time.Millisecond, Locate: loc.locate}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var got []Point
	done := make(chan error, 1)
	go func() {
		done <- src.Run(ctx, func(p Point) {
			mu.Lock()
			got = append(got, p)
			mu.Unlock()
		})
	}()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 3
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(time.Second):
		t.Fatal("poll source did not stop after cancel")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []Point{{0, 0}, {3, 4}, {6, 8}}, got)
}

func TestNewPollSource_DefaultInterval(t *testing.T) {
	src := NewPollSource(0)
	assert.Equal(t, DefaultPollInterval, src.Interval)
	assert.NotNil(t, src.Locate)
}
