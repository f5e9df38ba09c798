package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/edulisting-api/utils/cache"
	"github.com/sahilchouksey/edulisting-api/utils/response"
)

// OTPThrottle limits how often codes can be requested for one mobile number,
// backed by Redis counters. With Redis unavailable it fails open so a cache
// outage cannot block verification.
type OTPThrottle struct {
	redisCache *cache.RedisCache
}

// NewOTPThrottle creates a new throttle instance
func NewOTPThrottle(redisCache *cache.RedisCache) *OTPThrottle {
	return &OTPThrottle{
		redisCache: redisCache,
	}
}

// Limit allows at most max sends per mobile number inside the window.
// The mobile number is read from the "mobile" form/body field.
func (t *OTPThrottle) Limit(max int64, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mobile := c.FormValue("mobile")
		if mobile == "" {
			var body struct {
				Mobile string `json:"mobile"`
			}
			if err := c.BodyParser(&body); err == nil {
				mobile = body.Mobile
			}
		}
		if mobile == "" {
			// Let the handler report the validation error
			return c.Next()
		}

		key := fmt.Sprintf("otp_throttle:%s", mobile)
		count, err := t.redisCache.Increment(c.Context(), key)
		if err != nil {
			return c.Next()
		}
		if count == 1 {
			t.redisCache.Expire(c.Context(), key, window)
		}

		if count > max {
			ttl, _ := t.redisCache.TTL(c.Context(), key)
			retryAfter := int(ttl.Seconds())
			if retryAfter < 0 {
				retryAfter = int(window.Seconds())
			}
			c.Set("Retry-After", fmt.Sprintf("%d", retryAfter))
			return response.TooManyRequests(c,
				fmt.Sprintf("Too many OTP requests. Try again in %d seconds", retryAfter))
		}

		return c.Next()
	}
}
