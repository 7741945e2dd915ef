// Package award implements the per-request classification verdict and the
// catalogue of status pages the responder serves.
//
// Every request owns exactly one Verdict. Guard stages, route handlers, and
// the rate limiter all compete to decide it; the first terminal code wins and
// later stages cannot override it.
package award

import "github.com/labstack/echo/v4"

const verdictContextKey = "award.verdict"

// Verdict is the single mutable classification field of a request. It starts
// pending and is decided at most once.
type Verdict struct {
	code    int
	decided bool
}

// Terminal decides the verdict with code. Calls after the first are no-ops.
func (v *Verdict) Terminal(code int) {
	if v.decided {
		return
	}
	v.code = code
	v.decided = true
}

// Decided reports whether any stage has set a terminal code.
func (v *Verdict) Decided() bool { return v.decided }

// Code returns the terminal code. Only meaningful once Decided is true.
func (v *Verdict) Code() int { return v.code }

// Attach stores a fresh Verdict on the request context and returns it.
func Attach(c echo.Context) *Verdict {
	v := &Verdict{}
	c.Set(verdictContextKey, v)
	return v
}

// FromContext returns the request's Verdict. Handlers running outside the
// pipeline get a throwaway verdict instead of a nil dereference.
func FromContext(c echo.Context) *Verdict {
	if v, ok := c.Get(verdictContextKey).(*Verdict); ok {
		return v
	}
	return &Verdict{}
}
