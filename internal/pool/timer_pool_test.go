package pool

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerPool_GetPutCycle(t *testing.T) {
	t1 := GetTimer(10 * time.Millisecond)
	require.NotNil(t, t1)
	PutTimer(t1)

	t2 := GetTimer(20 * time.Millisecond)
	require.NotNil(t, t2)
	defer PutTimer(t2)

	<-t2.C
}

func TestTimerPool_ReusedTimerDoesNotFireEarly(t *testing.T) {
	// Put back a timer that is mid-countdown; the next Get must rearm it
	// cleanly instead of inheriting the stale deadline.
	t1 := GetTimer(100 * time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	PutTimer(t1)

	begin := time.Now()
	t2 := GetTimer(300 * time.Millisecond)
	defer PutTimer(t2)

	select {
	case fired := <-t2.C:
		assert.GreaterOrEqual(t, fired.Sub(begin), 270*time.Millisecond,
			"reused timer fired on the stale deadline")
	case <-time.After(400 * time.Millisecond):
		t.Fatal("timer did not fire")
	}
}

func TestTimerPool_Concurrency(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			timer := GetTimer(10 * time.Millisecond)
			defer PutTimer(timer)

			<-timer.C
		}()
	}
	wg.Wait()
}
