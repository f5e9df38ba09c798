package category

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/edulisting-api/database"
	"github.com/sahilchouksey/edulisting-api/model"
	"github.com/sahilchouksey/edulisting-api/services/softdelete"
	"github.com/sahilchouksey/edulisting-api/services/storage"
	"github.com/sahilchouksey/edulisting-api/utils/coerce"
	"github.com/sahilchouksey/edulisting-api/utils/response"
	"github.com/sahilchouksey/edulisting-api/utils/slug"
	"github.com/sahilchouksey/edulisting-api/utils/validation"
	"gorm.io/gorm"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	db    *gorm.DB
	files storage.Store
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(db *gorm.DB, files storage.Store) *CategoryHandler {
	return &CategoryHandler{db: db, files: files}
}

// ListCategories handles GET /api/v1/categories
func (h *CategoryHandler) ListCategories(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	query := h.db.Model(&model.Category{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count categories")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var categories []model.Category
	if err := query.Order("CASE WHEN position = 0 THEN 1 ELSE 0 END, position ASC, name ASC").
		Limit(limit).
		Offset(offset).
		Find(&categories).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch categories")
	}

	return response.Paginated(c, categories, pagination)
}

// GetCategoryBySlug handles GET /api/v1/categories/slug/:slug, including the
// live courses and programs under the category.
func (h *CategoryHandler) GetCategoryBySlug(c *fiber.Ctx) error {
	var category model.Category
	err := h.db.
		Preload("Courses", func(db *gorm.DB) *gorm.DB {
			return db.Order("CASE WHEN position = 0 THEN 1 ELSE 0 END, position ASC, name ASC")
		}).
		Preload("Programs", func(db *gorm.DB) *gorm.DB {
			return db.Order("CASE WHEN position = 0 THEN 1 ELSE 0 END, position ASC, name ASC")
		}).
		First(&category, "slug = ?", c.Params("slug")).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Category not found")
		}
		return response.InternalServerError(c, "Failed to fetch category")
	}

	return response.Success(c, category)
}

// CreateCategory handles POST /api/v1/categories (multipart)
func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	name := validation.SanitizeString(c.FormValue("name"))
	if name == "" {
		return response.BadRequest(c, "Name is required")
	}

	base := slug.Make(name)
	uniqueSlug, err := slug.EnsureUnique(h.db, base, "categories", "slug")
	if err != nil {
		return response.InternalServerError(c, "Failed to generate slug")
	}

	category := model.Category{
		Slug:     uniqueSlug,
		Name:     name,
		Position: coerce.Int(c.FormValue("position")),
	}

	if file, err := c.FormFile("icon"); err == nil {
		url, err := storage.SaveUpload(c.Context(), h.files, "categories", file)
		if err != nil {
			return response.InternalServerError(c, "Failed to store category icon")
		}
		category.Icon = url
	}

	if err := h.db.Create(&category).Error; err != nil {
		if dup, constraint := database.IsUniqueViolation(err); dup {
			return response.ErrorWithMeta(c, fiber.StatusConflict,
				"Category with this slug already exists", fiber.Map{"constraint": constraint})
		}
		return response.InternalServerError(c, "Failed to create category")
	}

	return response.Created(c, category)
}

// UpdateCategory handles POST /api/v1/categories/update. Omitted fields keep
// their stored values.
func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	id := coerce.Uint(c.FormValue("id"))
	if id == 0 {
		return response.BadRequest(c, "Category id is required")
	}

	var category model.Category
	if err := h.db.First(&category, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Category not found")
		}
		return response.InternalServerError(c, "Failed to fetch category")
	}

	category.Name = coerce.Merge(validation.SanitizeString(c.FormValue("name")), category.Name)
	if v := c.FormValue("position"); v != "" {
		category.Position = coerce.Int(v)
	}

	if file, err := c.FormFile("icon"); err == nil {
		url, err := storage.SaveUpload(c.Context(), h.files, "categories", file)
		if err != nil {
			return response.InternalServerError(c, "Failed to store category icon")
		}
		storage.DeleteQuietly(c.Context(), h.files, category.Icon)
		category.Icon = url
	}

	if err := h.db.Save(&category).Error; err != nil {
		if dup, constraint := database.IsUniqueViolation(err); dup {
			return response.ErrorWithMeta(c, fiber.StatusConflict,
				"Duplicate field value", fiber.Map{"constraint": constraint})
		}
		return response.InternalServerError(c, "Failed to update category")
	}

	return response.SuccessWithMessage(c, "Category updated successfully", category)
}

// ToggleCategory handles DELETE /api/v1/categories/:id
func (h *CategoryHandler) ToggleCategory(c *fiber.Ctx) error {
	id := coerce.Uint(c.Params("id"))
	if id == 0 {
		return response.BadRequest(c, "Invalid category ID")
	}

	state, err := softdelete.Toggle(h.db, &model.Category{}, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Category not found")
		}
		return response.InternalServerError(c, "Failed to toggle category")
	}

	return response.SuccessWithMessage(c, fmt.Sprintf("Category %s", state), fiber.Map{"state": state})
}
