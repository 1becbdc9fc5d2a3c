package api

import (
	"github.com/labstack/echo/v4"

	xhttp "StockScreener/pkg/http"
)

// Header names set by the auth gateway in front of this service. Requests
// reaching the screener are already authenticated; the gateway forwards the
// resolved identity in these headers.
const (
	HeaderUserID = "X-User-Id"
	HeaderTeamID = "X-Team-Id"
)

const (
	ctxUserID = "screener.user_id"
	ctxTeamID = "screener.team_id"
)

// TeamIdentity rejects requests missing the forwarded identity headers and
// stashes them on the echo context for handlers.
func TeamIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := c.Request().Header.Get(HeaderUserID)
			teamID := c.Request().Header.Get(HeaderTeamID)
			if userID == "" || teamID == "" {
				return xhttp.UnauthorizedResponse(c, "missing identity headers")
			}
			c.Set(ctxUserID, userID)
			c.Set(ctxTeamID, teamID)
			return next(c)
		}
	}
}

func requestUserID(c echo.Context) string {
	v, _ := c.Get(ctxUserID).(string)
	return v
}

func requestTeamID(c echo.Context) string {
	v, _ := c.Get(ctxTeamID).(string)
	return v
}
