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

// PlacementHandler handles placement partner requests
type PlacementHandler struct {
	db    *gorm.DB
	files storage.Store
}

// NewPlacementHandler creates a new placement handler
func NewPlacementHandler(db *gorm.DB, files storage.Store) *PlacementHandler {
	return &PlacementHandler{db: db, files: files}
}

// ListPlacements handles GET /api/v1/placements
func (h *PlacementHandler) ListPlacements(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	query := h.db.Model(&model.Placement{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count placements")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var placements []model.Placement
	if err := query.Order("title ASC").Limit(limit).Offset(offset).Find(&placements).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch placements")
	}

	return response.Paginated(c, placements, pagination)
}

// CreatePlacement handles POST /api/v1/placements (multipart)
func (h *PlacementHandler) CreatePlacement(c *fiber.Ctx) error {
	title := validation.SanitizeString(c.FormValue("title"))
	if title == "" {
		return response.BadRequest(c, "Title is required")
	}

	placement := model.Placement{Title: title}

	if file, err := c.FormFile("image"); err == nil {
		url, err := storage.SaveUpload(c.Context(), h.files, "placements", file)
		if err != nil {
			return response.InternalServerError(c, "Failed to store placement image")
		}
		placement.Image = url
	}

	if err := h.db.Create(&placement).Error; err != nil {
		return response.InternalServerError(c, "Failed to create placement")
	}

	return response.Created(c, placement)
}

// UpdatePlacement handles POST /api/v1/placements/update
func (h *PlacementHandler) UpdatePlacement(c *fiber.Ctx) error {
	id := coerce.Uint(c.FormValue("id"))
	if id == 0 {
		return response.BadRequest(c, "Placement id is required")
	}

	var placement model.Placement
	if err := h.db.First(&placement, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Placement not found")
		}
		return response.InternalServerError(c, "Failed to fetch placement")
	}

	placement.Title = coerce.Merge(validation.SanitizeString(c.FormValue("title")), placement.Title)

	if file, err := c.FormFile("image"); err == nil {
		url, err := storage.SaveUpload(c.Context(), h.files, "placements", file)
		if err != nil {
			return response.InternalServerError(c, "Failed to store placement image")
		}
		storage.DeleteQuietly(c.Context(), h.files, placement.Image)
		placement.Image = url
	}

	if err := h.db.Save(&placement).Error; err != nil {
		return response.InternalServerError(c, "Failed to update placement")
	}

	return response.SuccessWithMessage(c, "Placement updated successfully", placement)
}

// TogglePlacement handles DELETE /api/v1/placements/:id
func (h *PlacementHandler) TogglePlacement(c *fiber.Ctx) error {
	id := coerce.Uint(c.Params("id"))
	if id == 0 {
		return response.BadRequest(c, "Invalid placement ID")
	}

	state, err := softdelete.Toggle(h.db, &model.Placement{}, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Placement not found")
		}
		return response.InternalServerError(c, "Failed to toggle placement")
	}

	return response.SuccessWithMessage(c, fmt.Sprintf("Placement %s", state), fiber.Map{"state": state})
}
