package rate

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter throttles actions per key. Keys that have not been used for
// Expiry minutes are dropped.
type Limiter struct {
	Expiry   int
	Burst    int
	LimitRPS float64
	actions  map[string]*actionLimiter
	mu       sync.RWMutex
}

type actionLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

func NewLimiter(burst int, expiry int, limitRPS float64) *Limiter {
	actions := make(map[string]*actionLimiter)
	lm := &Limiter{
		Expiry:   expiry,
		LimitRPS: limitRPS,
		Burst:    burst,
		actions:  actions,
	}
	go lm.refresh()
	return lm
}

func (l *Limiter) Check(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	al, ok := l.actions[key]
	if !ok {
		l.actions[key] = &actionLimiter{
			limiter:    rate.NewLimiter(rate.Limit(l.LimitRPS), l.Burst),
			lastAccess: time.Now(),
		}
		return l.actions[key].limiter.Allow()
	}
	al.lastAccess = time.Now()
	return al.limiter.Allow()
}

func (l *Limiter) refresh() {
	for {
		time.Sleep(time.Minute)

		l.mu.Lock()
		for key, v := range l.actions {
			if time.Since(v.lastAccess) > time.Duration(l.Expiry)*time.Minute {
				delete(l.actions, key)
			}
		}
		l.mu.Unlock()
	}
}

func Every(interval time.Duration) float64 {
	return float64(rate.Every(interval))
}
