package qbittorrent

import "time"

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	timeout      time.Duration
	maxRetries   int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
	userAgent    string
	verifyCert   bool
	rateLimit    int
}

func defaultOptions() clientOptions {
	return clientOptions{
		timeout:      30 * time.Second,
		maxRetries:   1,
		retryWaitMin: 1 * time.Second,
		retryWaitMax: 10 * time.Second,
		userAgent:    "qbtctl/dev",
		verifyCert:   true,
	}
}

func buildOptions(opts []Option) clientOptions {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithMaxRetries sets the maximum number of retry attempts.
func WithMaxRetries(retries int) Option {
	return func(o *clientOptions) {
		if retries >= 0 {
			o.maxRetries = retries
		}
	}
}

// WithRetryDelay sets the minimum and maximum delay between retry attempts.
func WithRetryDelay(min, max time.Duration) Option {
	return func(o *clientOptions) {
		if min > 0 {
			o.retryWaitMin = min
		}
		if max >= o.retryWaitMin {
			o.retryWaitMax = max
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		if userAgent != "" {
			o.userAgent = userAgent
		}
	}
}

// WithInsecureSkipVerify disables certificate verification.
// Use with caution, self-signed seedbox certificates are the usual reason.
func WithInsecureSkipVerify() Option {
	return func(o *clientOptions) {
		o.verifyCert = false
	}
}

// WithRateLimit caps outgoing requests per second. Zero disables the limit.
func WithRateLimit(perSecond int) Option {
	return func(o *clientOptions) {
		if perSecond >= 0 {
			o.rateLimit = perSecond
		}
	}
}
