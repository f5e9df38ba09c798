package review

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/edulisting-api/model"
	"github.com/sahilchouksey/edulisting-api/services/softdelete"
	"github.com/sahilchouksey/edulisting-api/utils/coerce"
	"github.com/sahilchouksey/edulisting-api/utils/response"
	"github.com/sahilchouksey/edulisting-api/utils/validation"
	"gorm.io/gorm"
)

// ReviewHandler handles university review requests
type ReviewHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{db: db, validator: validation.NewValidator()}
}

// CreateReviewRequest is the public review payload
type CreateReviewRequest struct {
	UniversityID uint   `json:"university_id" form:"university_id" validate:"required"`
	Name         string `json:"name" form:"name" validate:"required,min=2,max=255"`
	Rating       int    `json:"rating" form:"rating" validate:"required,gte=1,lte=5"`
	Content      string `json:"content" form:"content" validate:"max=5000"`
}

// CreateReview handles POST /api/v1/reviews
func (h *ReviewHandler) CreateReview(c *fiber.Ctx) error {
	var req CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		return response.ErrorWithMeta(c, fiber.StatusBadRequest,
			"Validation failed", validation.FormatValidationErrors(err))
	}

	var exists int64
	if err := h.db.Model(&model.University{}).Where("id = ?", req.UniversityID).Count(&exists).Error; err != nil {
		return response.InternalServerError(c, "Failed to verify university")
	}
	if exists == 0 {
		return response.NotFound(c, "University not found")
	}

	review := model.Review{
		UniversityID: req.UniversityID,
		Name:         validation.SanitizeString(req.Name),
		Rating:       req.Rating,
		Content:      validation.SanitizeString(req.Content),
	}

	if err := h.db.Create(&review).Error; err != nil {
		return response.InternalServerError(c, "Failed to save review")
	}

	return response.Created(c, review)
}

// ListReviews handles GET /api/v1/reviews?university_id=N
func (h *ReviewHandler) ListReviews(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	query := h.db.Model(&model.Review{})

	if universityID := coerce.Uint(c.Query("university_id")); universityID != 0 {
		query = query.Where("university_id = ?", universityID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count reviews")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var reviews []model.Review
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reviews).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch reviews")
	}

	return response.Paginated(c, reviews, pagination)
}

// ToggleReview handles DELETE /api/v1/reviews/:id
func (h *ReviewHandler) ToggleReview(c *fiber.Ctx) error {
	id := coerce.Uint(c.Params("id"))
	if id == 0 {
		return response.BadRequest(c, "Invalid review ID")
	}

	state, err := softdelete.Toggle(h.db, &model.Review{}, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Review not found")
		}
		return response.InternalServerError(c, "Failed to toggle review")
	}

	return response.SuccessWithMessage(c, fmt.Sprintf("Review %s", state), fiber.Map{"state": state})
}
