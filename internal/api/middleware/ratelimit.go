package middleware

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-CharterService/internal/api/handlers"
)

const (
	msgTooManyRequests = "слишком много запросов, попробуйте позже"
	visitorTTL         = 10 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничивает частоту запросов по IP клиента.
// X-Forwarded-For учитывается только от доверенных прокси.
type RateLimiter struct {
	rps     rate.Limit
	burst   int
	trusted []netip.Prefix
	now     func() time.Time

	mu       sync.Mutex
	visitors map[string]*visitor
}

// NewRateLimiter создает ограничитель rps запросов в секунду с запасом burst
func NewRateLimiter(rps float64, burst int, trustedProxies []netip.Prefix) *RateLimiter {
	return &RateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		trusted:  trustedProxies,
		now:      time.Now,
		visitors: make(map[string]*visitor),
	}
}

// ParseTrustedProxies разбирает список адресов и подсетей ("10.0.0.0/8", "192.168.1.10")
func ParseTrustedProxies(values []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if strings.Contains(v, "/") {
			prefix, err := netip.ParsePrefix(v)
			if err != nil {
				return nil, fmt.Errorf("invalid trusted proxy %q: %w", v, err)
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(v)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", v, err)
		}
		prefixes = append(prefixes, netip.PrefixFrom(addr.Unmap(), addr.Unmap().BitLen()))
	}
	return prefixes, nil
}

// Middleware отвечает 429, когда лимит IP исчерпан
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(rl.clientIP(r)) {
			handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

// Cleanup удаляет давно не появлявшихся клиентов
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-visitorTTL)
	for ip, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, ip)
		}
	}
}

// RunCleanup периодически вызывает Cleanup до закрытия stopCh
func (rl *RateLimiter) RunCleanup(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.Cleanup()
		case <-stopCh:
			return
		}
	}
}

// clientIP возвращает адрес соединения. Если соединение пришло от доверенного
// прокси, X-Forwarded-For читается справа налево до первого недоверенного адреса.
func (rl *RateLimiter) clientIP(r *http.Request) string {
	remote := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		remote = host
	}

	if !rl.isTrusted(remote) {
		return remote
	}

	forwarded := r.Header.Values("X-Forwarded-For")
	hops := make([]string, 0, len(forwarded))
	for _, header := range forwarded {
		hops = append(hops, strings.Split(header, ",")...)
	}

	client := remote
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if _, err := netip.ParseAddr(hop); err != nil {
			break
		}
		client = hop
		if !rl.isTrusted(hop) {
			break
		}
	}
	return client
}

func (rl *RateLimiter) isTrusted(ip string) bool {
	if len(rl.trusted) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range rl.trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}
