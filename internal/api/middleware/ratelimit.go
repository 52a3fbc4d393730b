package middleware

import (
	"fmt"
	"net/http"
	"net/netip"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

// RateLimiter ограничивает частоту запросов с одного IP.
// X-Forwarded-For учитывается, только если запрос пришёл от доверенного прокси.
type RateLimiter struct {
	mu       sync.Mutex
	limiters *lru.Cache[string, *rate.Limiter]
	rps      rate.Limit
	burst    int
	trusted  []netip.Prefix
}

// NewRateLimiter создает ограничитель; maxClients ограничивает число отслеживаемых адресов,
// trustedProxies - адреса или CIDR прокси, которым разрешено передавать X-Forwarded-For
func NewRateLimiter(rps float64, burst, maxClients int, trustedProxies []string) (*RateLimiter, error) {
	cache, err := lru.New[string, *rate.Limiter](maxClients)
	if err != nil {
		return nil, err
	}

	trusted := make([]netip.Prefix, 0, len(trustedProxies))
	for _, raw := range trustedProxies {
		prefix, err := parsePrefix(raw)
		if err != nil {
			return nil, err
		}
		trusted = append(trusted, prefix)
	}

	return &RateLimiter{
		limiters: cache,
		rps:      rate.Limit(rps),
		burst:    burst,
		trusted:  trusted,
	}, nil
}

// Middleware отвечает 429, когда клиент превысил лимит
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.limiter(l.clientKey(r)).Allow() {
			respondError(w, http.StatusTooManyRequests, "слишком много запросов, попробуйте позже")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, ok := l.limiters.Get(key); ok {
		return limiter
	}
	limiter := rate.NewLimiter(l.rps, l.burst)
	l.limiters.Add(key, limiter)
	return limiter
}

// clientKey адрес клиента: соединение, а за доверенным прокси - самый правый
// недоверенный адрес из X-Forwarded-For
func (l *RateLimiter) clientKey(r *http.Request) string {
	peer, err := netip.ParseAddrPort(r.RemoteAddr)
	if err != nil {
		return "ip:" + r.RemoteAddr
	}
	addr := peer.Addr().Unmap()
	if !l.isTrusted(addr) {
		return "ip:" + addr.String()
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
		if err != nil {
			break
		}
		hop = hop.Unmap()
		if !l.isTrusted(hop) {
			return "ip:" + hop.String()
		}
		addr = hop
	}
	return "ip:" + addr.String()
}

func (l *RateLimiter) isTrusted(addr netip.Addr) bool {
	for _, prefix := range l.trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

func parsePrefix(raw string) (netip.Prefix, error) {
	raw = strings.TrimSpace(raw)
	if strings.Contains(raw, "/") {
		prefix, err := netip.ParsePrefix(raw)
		if err != nil {
			return netip.Prefix{}, fmt.Errorf("invalid trusted proxy %q: %w", raw, err)
		}
		return prefix.Masked(), nil
	}
	addr, err := netip.ParseAddr(raw)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("invalid trusted proxy %q: %w", raw, err)
	}
	addr = addr.Unmap()
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}
