package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig describes one token-bucket limiter.  The site runs three
// buckets with different allowances: a general API bucket, a strict payment
// bucket and a strict contact-form bucket.  Each bucket reads its own env
// variables using the bucket name as a prefix (e.g. PAYMENT_RATE_LIMIT_CAPACITY).
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	KeyStrategy    string
	Prefix         string
	Debug          bool
}

// LoadRateLimitConfig returns the general API bucket: 60 requests per minute
// per client by default.
func LoadRateLimitConfig() RateLimitConfig {
	return loadBucket("", RateLimitConfig{
		Capacity:       60,
		RefillTokens:   60,
		RefillInterval: time.Minute,
		Prefix:         "rl:api",
	})
}

// LoadPaymentRateLimit returns the payment-processing bucket: 5 attempts per
// minute per client by default.
func LoadPaymentRateLimit() RateLimitConfig {
	return loadBucket("PAYMENT_", RateLimitConfig{
		Capacity:       5,
		RefillTokens:   5,
		RefillInterval: time.Minute,
		Prefix:         "rl:payment",
	})
}

// LoadContactRateLimit returns the contact-form bucket: 3 messages per
// minute per client by default.
func LoadContactRateLimit() RateLimitConfig {
	return loadBucket("CONTACT_", RateLimitConfig{
		Capacity:       3,
		RefillTokens:   3,
		RefillInterval: time.Minute,
		Prefix:         "rl:contact",
	})
}

// loadBucket reads env overrides for one bucket on top of the provided
// defaults and normalizes the result so the limiter script always receives
// sane values.
func loadBucket(envPrefix string, def RateLimitConfig) RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:        envBool(envPrefix+"RATE_LIMIT_ENABLED", true),
		Capacity:       envInt(envPrefix+"RATE_LIMIT_CAPACITY", def.Capacity),
		RefillTokens:   envInt(envPrefix+"RATE_LIMIT_REFILL_TOKENS", def.RefillTokens),
		RefillInterval: envDur(envPrefix+"RATE_LIMIT_REFILL_INTERVAL", def.RefillInterval),
		TTL:            envDur(envPrefix+"RATE_LIMIT_TTL", 10*time.Minute),
		KeyStrategy:    envStr(envPrefix+"RATE_LIMIT_KEY_STRATEGY", "ip_route"),
		Prefix:         envStr(envPrefix+"RATE_LIMIT_PREFIX", def.Prefix),
		Debug:          envBool(envPrefix+"RATE_LIMIT_DEBUG", false),
	}
	if cfg.Capacity < 1 {
		cfg.Capacity = 1
	}
	if cfg.RefillTokens < 1 {
		cfg.RefillTokens = 1
	}
	if cfg.RefillInterval <= 0 {
		cfg.RefillInterval = time.Second
	}
	minTTL := 5 * cfg.RefillInterval
	if cfg.TTL < minTTL {
		cfg.TTL = minTTL
	}
	return cfg
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
