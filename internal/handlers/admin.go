package handlers

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/valubaby/valu-store/internal/apperr"
	"github.com/valubaby/valu-store/internal/auth"
	"github.com/valubaby/valu-store/internal/types"
	"github.com/valubaby/valu-store/storage"
)

const appName = "VALÚ Baby Store"

var appStartTime = time.Now()

// QueueStatser exposes the notification dispatcher counters.
type QueueStatser interface {
	Stats() types.QueueStats
}

// RuntimeInfo is the deployment detail echoed back by the system endpoint.
type RuntimeInfo struct {
	Environment string
	DBPath      string
	Port        string
}

type AdminHandler struct {
	gate    *auth.AdminGate
	storage *storage.Storage
	queue   QueueStatser
	info    RuntimeInfo
}

func NewAdminHandler(gate *auth.AdminGate, s *storage.Storage, queue QueueStatser, info RuntimeInfo) *AdminHandler {
	return &AdminHandler{gate: gate, storage: s, queue: queue, info: info}
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

type verifyResponse struct {
	Success bool `json:"success"`
	Valid   bool `json:"valid"`
}

// HandleLogin exchanges the admin password for the token sent on later
// requests. The token is the shared secret itself.
func (h *AdminHandler) HandleLogin(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.Password == "" {
		return apperr.Validation("Password is required")
	}
	if !h.gate.Valid(req.Password) {
		return apperr.Unauthorized("Invalid password")
	}

	return c.JSON(http.StatusOK, loginResponse{
		Success: true,
		Message: "Login successful",
		Token:   h.gate.Token(),
	})
}

func (h *AdminHandler) HandleVerify(c echo.Context) error {
	if !h.gate.Valid(c.Request().Header.Get(auth.HeaderName)) {
		return c.JSON(http.StatusUnauthorized, verifyResponse{Success: false, Valid: false})
	}
	return c.JSON(http.StatusOK, verifyResponse{Success: true, Valid: true})
}

// HandleSystem reports process, database and notification queue health.
func (h *AdminHandler) HandleSystem(c echo.Context) error {
	ctx := c.Request().Context()

	sysInfo := types.SystemInfo{
		AppName:      appName,
		Environment:  h.info.Environment,
		StartTime:    appStartTime,
		Uptime:       time.Since(appStartTime).Round(time.Second).String(),
		GoVersion:    runtime.Version(),
		Architecture: runtime.GOARCH,
		OS:           runtime.GOOS,
		PID:          os.Getpid(),
		DBPath:       h.info.DBPath,
		Port:         h.info.Port,
	}

	products, err := h.storage.Queries.CountProducts(ctx)
	if err != nil {
		return err
	}
	orders, err := h.storage.Queries.CountOrders(ctx)
	if err != nil {
		return err
	}
	sysInfo.Database = types.DatabaseStats{ProductCount: products, OrderCount: orders}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	sysInfo.Memory = types.MemoryStats{
		Alloc:      m.Alloc,
		Sys:        m.Sys,
		NumGC:      m.NumGC,
		Goroutines: runtime.NumGoroutine(),
		AllocMB:    float64(m.Alloc) / 1024 / 1024,
		SysMB:      float64(m.Sys) / 1024 / 1024,
	}

	if h.queue != nil {
		sysInfo.Queue = h.queue.Stats()
	}

	return ok(c, sysInfo)
}
