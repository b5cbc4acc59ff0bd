package clock

import "time"

// SystemClock is the production Clock. Times are always UTC so stored
// created_at values compare and sort the same on every backend.
type SystemClock struct{}

func NewSystemClock() SystemClock { return SystemClock{} }

func (SystemClock) Now() time.Time { return time.Now().UTC() }
