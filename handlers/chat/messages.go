package chat

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/edulisting-api/model"
	"github.com/sahilchouksey/edulisting-api/services/geoip"
	"github.com/sahilchouksey/edulisting-api/utils/coerce"
	"github.com/sahilchouksey/edulisting-api/utils/response"
	"github.com/sahilchouksey/edulisting-api/utils/validation"
	"gorm.io/gorm"
)

// ChatHandler handles chat widget submissions
type ChatHandler struct {
	db  *gorm.DB
	geo *geoip.Client
}

// NewChatHandler creates a new chat handler
func NewChatHandler(db *gorm.DB, geo *geoip.Client) *ChatHandler {
	return &ChatHandler{db: db, geo: geo}
}

// CreateMessage handles POST /api/v1/chat. Geo/device enrichment is
// best-effort and never fails the request.
func (h *ChatHandler) CreateMessage(c *fiber.Ctx) error {
	var req struct {
		Name    string `json:"name" form:"name"`
		Mobile  string `json:"mobile" form:"mobile"`
		Message string `json:"message" form:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	message := validation.SanitizeString(req.Message)
	if message == "" {
		return response.BadRequest(c, "Message is required")
	}

	mobile := ""
	if req.Mobile != "" {
		normalized, ok := validation.ValidateMobile(req.Mobile)
		if !ok {
			return response.BadRequest(c, "Invalid mobile number")
		}
		mobile = normalized
	}

	location := h.geo.Lookup(c.Context(), c.IP())

	msg := model.ChatMessage{
		Name:       validation.SanitizeString(req.Name),
		Mobile:     mobile,
		Message:    message,
		IP:         c.IP(),
		City:       location.City,
		State:      location.State,
		DeviceType: geoip.DeviceType(c.Get("User-Agent")),
	}

	if err := h.db.Create(&msg).Error; err != nil {
		return response.InternalServerError(c, "Failed to save message")
	}

	return response.Created(c, msg)
}

// ListMessages handles GET /api/v1/chat (admin)
func (h *ChatHandler) ListMessages(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	query := h.db.Model(&model.ChatMessage{})

	if mobile := c.Query("mobile"); mobile != "" {
		query = query.Where("mobile = ?", mobile)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count messages")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var messages []model.ChatMessage
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&messages).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch messages")
	}

	return response.Paginated(c, messages, pagination)
}

// DeleteMessage handles DELETE /api/v1/chat/:id — hard delete, chat carries
// personal data.
func (h *ChatHandler) DeleteMessage(c *fiber.Ctx) error {
	id := coerce.Uint(c.Params("id"))
	if id == 0 {
		return response.BadRequest(c, "Invalid message ID")
	}

	result := h.db.Unscoped().Delete(&model.ChatMessage{}, id)
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete message")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Message not found")
	}

	return response.SuccessWithMessage(c, "Message deleted", nil)
}
