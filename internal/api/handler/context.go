package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apimw "github.com/keijiban/bulletin-board/internal/api/middleware"
	"github.com/keijiban/bulletin-board/internal/core/ports"
)

// ctxActor extracts the identity injected by the Auth middleware. All three
// claims must be present; their presence proves the middleware ran, and a
// token without a full identity was already rejected there.
func ctxActor(c echo.Context) (ports.Actor, error) {
	actor := ports.Actor{}
	actor.UserID, _ = c.Get(apimw.CtxUserID).(string)
	actor.Username, _ = c.Get(apimw.CtxUsername).(string)
	actor.Role, _ = c.Get(apimw.CtxRole).(string)

	if actor.UserID == "" || actor.Username == "" || actor.Role == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return actor, nil
}
