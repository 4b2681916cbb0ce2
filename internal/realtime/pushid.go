package realtime

import (
	"crypto/rand"
	"math/big"
	"sync"
	"time"
)

// pushChars is ordered by ASCII value so generated IDs sort chronologically.
const pushChars = "-0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz"

// PushIDGenerator produces 20 character keys: 8 characters of millisecond timestamp
// followed by 12 random characters. IDs minted in the same millisecond increment the
// random part so ordering is preserved.
type PushIDGenerator struct {
	mu       sync.Mutex
	now      func() time.Time
	lastTime int64
	lastRand [12]int
}

func NewPushIDGenerator() *PushIDGenerator {
	return &PushIDGenerator{now: time.Now}
}

func (g *PushIDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	sameMillis := ms == g.lastTime
	g.lastTime = ms

	var id [20]byte
	ts := ms
	for i := 7; i >= 0; i-- {
		id[i] = pushChars[ts%64]
		ts /= 64
	}

	if !sameMillis {
		for i := range g.lastRand {
			g.lastRand[i] = randIndex()
		}
	} else {
		i := len(g.lastRand) - 1
		for ; i >= 0 && g.lastRand[i] == 63; i-- {
			g.lastRand[i] = 0
		}
		if i >= 0 {
			g.lastRand[i]++
		}
	}

	for i, r := range g.lastRand {
		id[8+i] = pushChars[r]
	}
	return string(id[:])
}

func randIndex() int {
	n, err := rand.Int(rand.Reader, big.NewInt(64))
	if err != nil {
		return int(time.Now().UnixNano() % 64)
	}
	return int(n.Int64())
}
