package handlers

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"trackr/internal/adapter/http/middleware"
	"trackr/pkg/translator"
)

const (
	StatusOk        = "ok"
	StatusDown      = "down"
	healthDBTimeout = 2 * time.Second
	timeLayout      = "2006-01-02 15:04:05"
)

type HealthBasic struct {
	AppName           string `json:"app_name"`
	AppVersion        string `json:"app_version"`
	CurrentSystemTime string `json:"current_system_time"`
	Message           string `json:"message"`
}

type HealthCheck struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	LatencyMs int64  `json:"latency_ms"`
	Detail    string `json:"detail,omitempty"`
}

type HealthReport struct {
	AppName           string        `json:"app_name"`
	AppVersion        string        `json:"app_version"`
	CurrentSystemTime string        `json:"current_system_time"`
	Language          string        `json:"language"`
	Status            string        `json:"status"`
	Checks            []HealthCheck `json:"checks"`
}

// pinger is satisfied by *sqlx.DB.
type pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db pinger
}

func NewHealthHandler(db *sqlx.DB) *HealthHandler {
	if db == nil {
		return &HealthHandler{}
	}
	return &HealthHandler{db: db}
}

// CheckHealth answers 503 while the database is unreachable.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	status, message := http.StatusOK, StatusOk
	if check := h.checkDatabase(c.Request.Context()); check.Status != StatusOk {
		status, message = http.StatusServiceUnavailable, StatusDown
	}

	c.JSON(status, HealthBasic{
		AppName:           getAppName(),
		AppVersion:        getAppVersion(),
		CurrentSystemTime: time.Now().Format(timeLayout),
		Message:           message,
	})
}

// CheckHealthReport always answers 200 and lists every dependency check.
func (h *HealthHandler) CheckHealthReport(c *gin.Context) {
	checks := []HealthCheck{
		h.checkDatabase(c.Request.Context()),
		checkTranslations(),
	}
	overall := StatusOk
	for _, check := range checks {
		if check.Status != StatusOk {
			overall = StatusDown
		}
	}

	c.JSON(http.StatusOK, HealthReport{
		AppName:           getAppName(),
		AppVersion:        getAppVersion(),
		CurrentSystemTime: time.Now().Format(timeLayout),
		Language:          middleware.GetLang(c),
		Status:            overall,
		Checks:            checks,
	})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) HealthCheck {
	check := HealthCheck{Name: "mysql", Status: StatusDown}
	if h.db == nil {
		check.Detail = "not configured"
		return check
	}

	ctx, cancel := context.WithTimeout(ctx, healthDBTimeout)
	defer cancel()
	start := time.Now()
	err := h.db.PingContext(ctx)
	check.LatencyMs = time.Since(start).Milliseconds()
	if err != nil {
		check.Detail = err.Error()
		return check
	}
	check.Status = StatusOk
	return check
}

func checkTranslations() HealthCheck {
	languages := translator.Languages()
	if len(languages) == 0 {
		return HealthCheck{Name: "translations", Status: StatusDown, Detail: "no message files loaded"}
	}
	return HealthCheck{Name: "translations", Status: StatusOk, Detail: strings.Join(languages, ",")}
}

func getAppName() string {
	if name := os.Getenv("APP_NAME"); name != "" {
		return name
	}
	return "trackr"
}

func getAppVersion() string {
	if version := os.Getenv("APP_VERSION"); version != "" {
		return version
	}
	return "dev"
}
