package attendance

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"aais-kitchen-backend/internal/platform/clock"
)

const cooldownSweepThreshold = 1024

// Cooldown: ユーザーごとのスキャン間隔制御。
// ready（トークンあり）/ cooldown（トークン待ち）の2状態を burst=1 のトークンバケットで表す
type Cooldown struct {
	mu       sync.Mutex
	window   time.Duration
	clock    clock.Clock
	limiters map[string]*rate.Limiter
}

func NewCooldown(window time.Duration, c clock.Clock) *Cooldown {
	return &Cooldown{
		window:   window,
		clock:    c,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Allow: ready なら true を返して cooldown に入る
func (cd *Cooldown) Allow(key string) bool {
	if cd == nil || cd.window <= 0 {
		return true
	}
	now := cd.clock.Now()

	cd.mu.Lock()
	defer cd.mu.Unlock()

	lim, ok := cd.limiters[key]
	if !ok {
		if len(cd.limiters) >= cooldownSweepThreshold {
			cd.sweep(now)
		}
		lim = rate.NewLimiter(rate.Every(cd.window), 1)
		cd.limiters[key] = lim
	}
	return lim.AllowN(now, 1)
}

// RetryAfter: 次に ready になるまでの目安
func (cd *Cooldown) RetryAfter(key string) time.Duration {
	if cd == nil || cd.window <= 0 {
		return 0
	}
	now := cd.clock.Now()

	cd.mu.Lock()
	defer cd.mu.Unlock()

	lim, ok := cd.limiters[key]
	if !ok {
		return 0
	}
	missing := 1 - lim.TokensAt(now)
	if missing <= 0 {
		return 0
	}
	return time.Duration(missing * float64(cd.window))
}

// sweep: 満タンまで戻った limiter は新規と区別がつかないので捨てる
func (cd *Cooldown) sweep(now time.Time) {
	for k, lim := range cd.limiters {
		if lim.TokensAt(now) >= 1 {
			delete(cd.limiters, k)
		}
	}
}

func (cd *Cooldown) size() int {
	cd.mu.Lock()
	defer cd.mu.Unlock()
	return len(cd.limiters)
}
