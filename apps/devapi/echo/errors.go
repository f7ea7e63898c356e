package echoapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/Rodert/learn-hub/core"
	"github.com/Rodert/learn-hub/core/auth"
	inmemdb "github.com/Rodert/learn-hub/storage/inmem"
)

var (
	errUnauthorized         = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errAuthenticationFailed = echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
	errAccountDeactivated   = echo.NewHTTPError(http.StatusForbidden, "account deactivated")
	errHttpNotFound         = echo.NewHTTPError(http.StatusNotFound, "not found")
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// Course routes answer with `{success: false, errorCode, errorMessage}`, every other route with `{error, fields}`.
func newAppHTTPErrorHandler(logger core.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var (
			code    int
			message string
			fields  map[string]string
		)

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr == middleware.ErrJWTMissing {
				code = http.StatusUnauthorized
				message = "missing or malformed jwt"
				break
			}
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			if m, ok := origErr.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
		case *core.ValidationError:
			code = http.StatusBadRequest
			message = origErr.Error()
			if len(origErr.Fields) > 0 {
				fields = origErr.FieldMap()
			}
		default:
			if errors.Cause(err) == inmemdb.ErrNotFound {
				code = http.StatusNotFound
				message = "not found"
				break
			}
			// any other error is a server error
			code = http.StatusInternalServerError
			message = http.StatusText(code)

			var usr auth.Profile
			if claims, cErr := getContextClaims(ctx); cErr == nil {
				usr.ID = getContextUserID(ctx)
				usr.Username = claims.Username
			}
			logger.Error(message, errors.Wrap(err, message), usr)
		}

		if ctx.Echo().Debug && code == http.StatusInternalServerError {
			message = err.Error()
		}

		var body interface{}
		if strings.HasPrefix(ctx.Path(), BasePath+"/course") {
			body = echo.Map{"success": false, "errorCode": code, "errorMessage": message}
		} else {
			m := echo.Map{"error": message}
			if fields != nil {
				m["fields"] = fields
			}
			body = m
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, body)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
