package health

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
)

// BuildInfo contains information about the build
type BuildInfo struct {
	Version     string    `json:"version"`
	ServiceName string    `json:"service_name"`
	GoVersion   string    `json:"go_version"`
	Hostname    string    `json:"hostname"`
	ServerTime  time.Time `json:"server_time"`
}

// RegisterHealthEndpoints registers /health and /ping on the router
func RegisterHealthEndpoints(e *echo.Echo, serviceName string) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	info := BuildInfo{
		Version:     os.Getenv("VERSION"),
		ServiceName: serviceName,
		GoVersion:   runtime.Version(),
		Hostname:    hostname,
	}
	if info.Version == "" {
		info.Version = "development"
	}

	handler := func(c echo.Context) error {
		info.ServerTime = time.Now()
		return c.JSON(http.StatusOK, info)
	}

	e.GET("/health", handler)
	e.GET("/ping", handler)
}
