package transport

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const censored = "$censored"

func (s *HTTPServer) AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token := ""
		if scheme, value, found := strings.Cut(header, " "); found && strings.EqualFold(scheme, "Bearer") {
			token = strings.TrimSpace(value)
		}
		if token == "" {
			return newAPIError(http.StatusUnauthorized, "Access token required", nil)
		}

		user, err := s.general.Authenticate(c.Request().Context(), token)
		if err != nil {
			s.logger.Debugw("authenticate", "error", err)
			return newAPIError(http.StatusUnauthorized, "Invalid or expired token", nil)
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

func newRequestID() string {
	return uuid.NewString()
}

func requestLogger(logger *zap.SugaredLogger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
				"remote_ip", v.RemoteIP,
			}
			if v.Error != nil {
				logger.Warnw("request", append(fields, "error", v.Error)...)
				return nil
			}
			logger.Infow("request", fields...)
			return nil
		},
	})
}

func bodyDump(logger *zap.SugaredLogger) echo.MiddlewareFunc {
	return middleware.BodyDump(func(c echo.Context, reqBody, resBody []byte) {
		logger.Debugw("body dump",
			"path", c.Path(),
			"request", string(censorBody(reqBody)),
			"response", string(censorBody(resBody)),
		)
	})
}

// censorBody masks every JSON value whose key names a password or token. Bodies
// that are not JSON objects are returned unchanged.
func censorBody(body []byte) []byte {
	var obj map[string]interface{}
	if err := json.Unmarshal(body, &obj); err != nil {
		return body
	}
	if !censorMap(obj) {
		return body
	}
	out, err := json.Marshal(obj)
	if err != nil {
		return body
	}
	return out
}

func censorMap(obj map[string]interface{}) bool {
	changed := false
	for key, value := range obj {
		if isSecretKey(key) {
			obj[key] = censored
			changed = true
			continue
		}
		if nested, isMap := value.(map[string]interface{}); isMap && censorMap(nested) {
			changed = true
		}
	}
	return changed
}

func isSecretKey(key string) bool {
	k := strings.ToLower(key)
	return strings.Contains(k, "password") || k == "token"
}
