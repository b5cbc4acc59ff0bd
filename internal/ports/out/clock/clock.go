package clock

import "time"

// Clock supplies the created_at timestamp stamped on every intake record.
type Clock interface {
	Now() time.Time
}
