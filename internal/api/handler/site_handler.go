package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/webware/award-board/internal/api/award"
)

// SiteHandler serves the landing and home pages plus the fixed novelty
// endpoints that exist purely to hand out their status code.
type SiteHandler struct{}

func NewSiteHandler() *SiteHandler {
	return &SiteHandler{}
}

// Index is the landing page for logged-out visitors; RequireLogout bounces
// authenticated ones to /home.
func (h *SiteHandler) Index(c echo.Context) error {
	return c.HTML(http.StatusOK, award.IndexPage())
}

// Home is the rate-limited member page. Each visit inside the window earns a 200.
func (h *SiteHandler) Home(c echo.Context) error {
	award.FromContext(c).Terminal(http.StatusOK)
	return c.HTML(http.StatusOK, award.HomePage())
}

// BrewCoffee only serves Earl Grey, hot.
func (h *SiteHandler) BrewCoffee(c echo.Context) error {
	award.FromContext(c).Terminal(http.StatusTeapot)
	return nil
}

// Area51 cannot be shown for legal reasons.
func (h *SiteHandler) Area51(c echo.Context) error {
	award.FromContext(c).Terminal(http.StatusUnavailableForLegalReasons)
	return nil
}

type exponentialResponse struct {
	Result string `json:"result"`
}

// Exponential formats x in exponential notation with f fraction digits.
// Malformed x, or f outside [0,100], resolves to the 500 award.
func (h *SiteHandler) Exponential(c echo.Context) error {
	x, errX := strconv.ParseFloat(c.Param("x"), 64)
	digits, errF := strconv.Atoi(c.Param("f"))
	if errX != nil || errF != nil || digits < 0 || digits > 100 {
		award.FromContext(c).Terminal(http.StatusInternalServerError)
		return nil
	}

	award.FromContext(c).Terminal(http.StatusOK)
	return c.JSON(http.StatusOK, exponentialResponse{
		Result: strconv.FormatFloat(x, 'e', digits, 64),
	})
}
