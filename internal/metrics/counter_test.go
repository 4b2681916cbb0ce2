package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounter(t *testing.T) {
	var c Counter
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Inc()
		}()
	}
	wg.Wait()
	c.Add(10)

	assert.Equal(t, uint64(60), c.Load())
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	time.Sleep(time.Millisecond)
	assert.GreaterOrEqual(t, timer.Duration(), time.Millisecond)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	r.Counter("sync_applied_remotely").Inc()
	r.Counter("sync_applied_remotely").Inc()
	r.Counter("sync_rolled_back").Inc()

	assert.Same(t, r.Counter("sync_rolled_back"), r.Counter("sync_rolled_back"))
	assert.Equal(t, map[string]uint64{
		"sync_applied_remotely": 2,
		"sync_rolled_back":      1,
	}, r.Snapshot())
	assert.Equal(t, []string{"sync_applied_remotely", "sync_rolled_back"}, r.Names())
}
