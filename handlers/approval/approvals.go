package approval

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/edulisting-api/model"
	"github.com/sahilchouksey/edulisting-api/services/softdelete"
	"github.com/sahilchouksey/edulisting-api/services/storage"
	"github.com/sahilchouksey/edulisting-api/utils/coerce"
	"github.com/sahilchouksey/edulisting-api/utils/response"
	"github.com/sahilchouksey/edulisting-api/utils/validation"
	"gorm.io/gorm"
)

// ApprovalHandler handles approval body requests
type ApprovalHandler struct {
	db    *gorm.DB
	files storage.Store
}

// NewApprovalHandler creates a new approval handler
func NewApprovalHandler(db *gorm.DB, files storage.Store) *ApprovalHandler {
	return &ApprovalHandler{db: db, files: files}
}

// ListApprovals handles GET /api/v1/approvals
func (h *ApprovalHandler) ListApprovals(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	query := h.db.Model(&model.Approval{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count approvals")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var approvals []model.Approval
	if err := query.Order("title ASC").Limit(limit).Offset(offset).Find(&approvals).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch approvals")
	}

	return response.Paginated(c, approvals, pagination)
}

// CreateApproval handles POST /api/v1/approvals (multipart)
func (h *ApprovalHandler) CreateApproval(c *fiber.Ctx) error {
	title := validation.SanitizeString(c.FormValue("title"))
	if title == "" {
		return response.BadRequest(c, "Title is required")
	}

	approval := model.Approval{Title: title}

	if file, err := c.FormFile("image"); err == nil {
		url, err := storage.SaveUpload(c.Context(), h.files, "approvals", file)
		if err != nil {
			return response.InternalServerError(c, "Failed to store approval image")
		}
		approval.Image = url
	}

	if err := h.db.Create(&approval).Error; err != nil {
		return response.InternalServerError(c, "Failed to create approval")
	}

	return response.Created(c, approval)
}

// UpdateApproval handles POST /api/v1/approvals/update
func (h *ApprovalHandler) UpdateApproval(c *fiber.Ctx) error {
	id := coerce.Uint(c.FormValue("id"))
	if id == 0 {
		return response.BadRequest(c, "Approval id is required")
	}

	var approval model.Approval
	if err := h.db.First(&approval, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Approval not found")
		}
		return response.InternalServerError(c, "Failed to fetch approval")
	}

	approval.Title = coerce.Merge(validation.SanitizeString(c.FormValue("title")), approval.Title)

	if file, err := c.FormFile("image"); err == nil {
		url, err := storage.SaveUpload(c.Context(), h.files, "approvals", file)
		if err != nil {
			return response.InternalServerError(c, "Failed to store approval image")
		}
		storage.DeleteQuietly(c.Context(), h.files, approval.Image)
		approval.Image = url
	}

	if err := h.db.Save(&approval).Error; err != nil {
		return response.InternalServerError(c, "Failed to update approval")
	}

	return response.SuccessWithMessage(c, "Approval updated successfully", approval)
}

// ToggleApproval handles DELETE /api/v1/approvals/:id. Rows referenced from
// denormalized lists simply stop resolving while deleted.
func (h *ApprovalHandler) ToggleApproval(c *fiber.Ctx) error {
	id := coerce.Uint(c.Params("id"))
	if id == 0 {
		return response.BadRequest(c, "Invalid approval ID")
	}

	state, err := softdelete.Toggle(h.db, &model.Approval{}, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Approval not found")
		}
		return response.InternalServerError(c, "Failed to toggle approval")
	}

	return response.SuccessWithMessage(c, fmt.Sprintf("Approval %s", state), fiber.Map{"state": state})
}
