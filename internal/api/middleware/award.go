package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/webware/award-board/internal/api/award"
	"github.com/webware/award-board/internal/api/metrics"
	"github.com/webware/award-board/internal/core/ports"
)

// GuardLimits holds the request-size thresholds for the early pipeline stages.
type GuardLimits struct {
	MaxPathLength  int
	MaxHeaderBytes int
	MaxBodyBytes   int
}

// AwardPipeline is the request classifier. It attaches a Verdict, runs the
// size guards, lets the route handler compete for the terminal code, resolves
// the fallback, records the final code against the authenticated user, and
// serves the matching status page when the handler left the response open.
//
// Must run after RestoreSession so the recorder can see the identity.
func AwardPipeline(awards ports.AwardService, limits GuardLimits, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v := award.Attach(c)
			req := c.Request()

			// Length and body guards are terminal: the handler never runs.
			switch {
			case len(req.URL.RequestURI()) > limits.MaxPathLength:
				v.Terminal(http.StatusRequestURITooLong)
			case headerBlockSize(req.Header) > limits.MaxHeaderBytes:
				v.Terminal(http.StatusRequestHeaderFieldsTooLarge)
			case req.Method == http.MethodPost:
				over, err := bodyExceeds(req, limits.MaxBodyBytes)
				if err != nil {
					log.Error().Err(err).Msg("body guard read failed")
					v.Terminal(http.StatusInternalServerError)
				} else if over {
					v.Terminal(http.StatusRequestEntityTooLarge)
				}
			}

			// No PUT route exists anywhere, so the method guard can run
			// ahead of the router without changing observable order.
			if !v.Decided() && req.Method == http.MethodPut {
				v.Terminal(http.StatusNotImplemented)
			}

			if !v.Decided() {
				if err := next(c); err != nil {
					if code, terminal := classifyError(err); terminal {
						if code == http.StatusInternalServerError {
							log.Error().Err(err).Str("path", c.Path()).Msg("handler error")
						}
						v.Terminal(code)
					}
				}
			}

			committed := c.Response().Committed

			// A committed response with no verdict is handler-managed (JSON
			// endpoints, redirects) and earns nothing. Everything else that
			// no stage claimed falls through to 404.
			if !v.Decided() {
				if committed {
					return nil
				}
				v.Terminal(http.StatusNotFound)
			}

			code := v.Code()

			if id, ok := IdentityFrom(c); ok {
				if err := awards.Grant(req.Context(), id.Username, code); err != nil {
					log.Error().Err(err).Str("username", id.Username).Int("code", code).Msg("award grant failed")
				} else {
					metrics.AwardsRecordedTotal.WithLabelValues(strconv.Itoa(code)).Inc()
				}
			}

			if committed {
				return nil
			}
			if body, ok := award.Body(code); ok {
				return c.HTML(code, body)
			}
			return c.NoContent(code)
		}
	}
}

// classifyError maps a handler error to a terminal award code. Router
// not-found and method-not-allowed are left pending so the 404 fallback
// claims them; explicit HTTP errors keep their code; anything unexpected
// resolves to 500 (store failures included).
func classifyError(err error) (int, bool) {
	if errors.Is(err, echo.ErrNotFound) || errors.Is(err, echo.ErrMethodNotAllowed) {
		return 0, false
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, true
	}

	return http.StatusInternalServerError, true
}

// headerBlockSize measures the header block in its serialized wire form,
// "Name: value\r\n" per value.
func headerBlockSize(h http.Header) int {
	n := 0
	for name, values := range h {
		for _, v := range values {
			n += len(name) + len(v) + 4
		}
	}
	return n
}

// bodyExceeds reports whether the request body is larger than max bytes. The
// read portion is put back so a passing request binds normally downstream.
func bodyExceeds(req *http.Request, max int) (bool, error) {
	if req.Body == nil {
		return false, nil
	}

	buf, err := io.ReadAll(io.LimitReader(req.Body, int64(max)+1))
	if err != nil {
		return false, err
	}
	_ = req.Body.Close()
	req.Body = io.NopCloser(bytes.NewReader(buf))

	return len(buf) > max, nil
}
