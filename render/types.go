package render

import "time"

// RefreshInfo describes the state of a refreshing list for its footer.
type RefreshInfo struct {
	Count    int
	Interval time.Duration
}
