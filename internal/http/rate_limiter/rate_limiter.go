// Package rate_limiter keeps one token bucket per client IP. It guards the
// public auth endpoints against credential stuffing.
package rate_limiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	visitors = make(map[string]*clientLimiter)
	mu       sync.Mutex

	// 2 requests/sec with burst of 5 keeps interactive logins snappy while
	// making brute force impractical.
	perSecond rate.Limit = 2
	burst                = 5
)

// SetRate replaces the bucket parameters for limiters created afterwards.
// Existing visitors keep their old buckets; call CleanupAllVisitors to reset
// them too.
func SetRate(r rate.Limit, b int) {
	mu.Lock()
	perSecond = r
	burst = b
	mu.Unlock()
}

func GetVisitor(ip string) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	v, exists := visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(perSecond, burst)
		visitors[ip] = &clientLimiter{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func StartVisitorCleanupLoop() {
	for {
		time.Sleep(time.Minute)
		mu.Lock()
		for ip, v := range visitors {
			if time.Since(v.lastSeen) > 5*time.Minute {
				delete(visitors, ip)
			}
		}
		mu.Unlock()
	}
}

func CleanupAllVisitors() {
	mu.Lock()
	visitors = make(map[string]*clientLimiter)
	mu.Unlock()
}
