/*
Package ratelimit implements the edge proxy's per-consumer, multi-window
rate limiting (C8), grounded on proxy/src/proxy.rs's limiter/has_limiter/
add_limiter: each consumer gets one fixed-window counter per rate in its
tier, created lazily on first use and reused for the consumer's lifetime.
A counter's count resets once its interval has elapsed since the window
began; counts do not carry over from one window to the next, so a burst
straddling a window boundary can reach up to twice a rate's limit.

A consumer whose tier isn't recognized is rate-limited by default (fails
closed), matching the original's `tier.is_none() => Ok(true)` branch
rather than letting an unconfigured tier bypass limiting entirely.

Counter presence is checked under a read lock and installed under a write
lock, so steady-state traffic (the overwhelmingly common case) never
blocks on the map's write lock.
*/
package ratelimit
