package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/edulisting-api/model"
	"github.com/sahilchouksey/edulisting-api/utils/response"
	"gorm.io/gorm"
)

// CronLogHandler exposes background job execution logs to admins
type CronLogHandler struct {
	db *gorm.DB
}

// NewCronLogHandler creates a new cron log handler
func NewCronLogHandler(db *gorm.DB) *CronLogHandler {
	return &CronLogHandler{db: db}
}

// ListCronLogs handles GET /api/v1/cron-logs (admin)
func (h *CronLogHandler) ListCronLogs(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	query := h.db.Model(&model.CronJobLog{})

	if job := c.Query("job_name"); job != "" {
		query = query.Where("job_name = ?", job)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count cron logs")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var logs []model.CronJobLog
	if err := query.Order("started_at DESC").Limit(limit).Offset(offset).Find(&logs).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch cron logs")
	}

	return response.Paginated(c, logs, pagination)
}
