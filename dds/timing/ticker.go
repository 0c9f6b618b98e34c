package timing

import "time"

// TickerLimiter uses time.Ticker for simple, consistent frame timing.
// Less accurate than AdaptiveLimiter but simpler and good enough for most cases.
type TickerLimiter struct {
	ticker *time.Ticker
	period time.Duration
	ch     <-chan time.Time
}

func NewTickerLimiter(fps int) *TickerLimiter {
	period := FrameDuration(fps)
	ticker := time.NewTicker(period)
	return &TickerLimiter{
		ticker: ticker,
		period: period,
		ch:     ticker.C,
	}
}

func (t *TickerLimiter) WaitForNextFrame() {
	<-t.ch
}

func (t *TickerLimiter) Reset() {
	t.ticker.Reset(t.period)
}

func (t *TickerLimiter) Stop() {
	t.ticker.Stop()
}
