package job

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/edulisting-api/database"
	"github.com/sahilchouksey/edulisting-api/model"
	"github.com/sahilchouksey/edulisting-api/services/softdelete"
	"github.com/sahilchouksey/edulisting-api/utils/coerce"
	"github.com/sahilchouksey/edulisting-api/utils/response"
	"github.com/sahilchouksey/edulisting-api/utils/slug"
	"github.com/sahilchouksey/edulisting-api/utils/validation"
	"gorm.io/gorm"
)

// JobHandler handles job posting requests
type JobHandler struct {
	db *gorm.DB
}

// NewJobHandler creates a new job handler
func NewJobHandler(db *gorm.DB) *JobHandler {
	return &JobHandler{db: db}
}

// ListJobs handles GET /api/v1/jobs
func (h *JobHandler) ListJobs(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	query := h.db.Model(&model.Job{})

	if search := c.Query("search"); search != "" {
		query = query.Where("title ILIKE ? OR company ILIKE ? OR location ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count jobs")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var jobs []model.Job
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&jobs).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch jobs")
	}

	return response.Paginated(c, jobs, pagination)
}

// GetJobBySlug handles GET /api/v1/jobs/slug/:slug
func (h *JobHandler) GetJobBySlug(c *fiber.Ctx) error {
	var job model.Job
	if err := h.db.First(&job, "slug = ?", c.Params("slug")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Job not found")
		}
		return response.InternalServerError(c, "Failed to fetch job")
	}

	return response.Success(c, job)
}

// CreateJob handles POST /api/v1/jobs
func (h *JobHandler) CreateJob(c *fiber.Ctx) error {
	title := validation.SanitizeString(c.FormValue("title"))
	if title == "" {
		return response.BadRequest(c, "Title is required")
	}

	base := slug.Make(title)
	uniqueSlug, err := slug.EnsureUnique(h.db, base, "jobs", "slug")
	if err != nil {
		return response.InternalServerError(c, "Failed to generate slug")
	}

	job := model.Job{
		Slug:        uniqueSlug,
		Title:       title,
		Company:     validation.SanitizeString(c.FormValue("company")),
		Location:    validation.SanitizeString(c.FormValue("location")),
		Experience:  validation.SanitizeString(c.FormValue("experience")),
		Description: c.FormValue("description"),
	}

	if err := h.db.Create(&job).Error; err != nil {
		if dup, constraint := database.IsUniqueViolation(err); dup {
			return response.ErrorWithMeta(c, fiber.StatusConflict,
				"Job with this slug already exists", fiber.Map{"constraint": constraint})
		}
		return response.InternalServerError(c, "Failed to create job")
	}

	return response.Created(c, job)
}

// UpdateJob handles POST /api/v1/jobs/update
func (h *JobHandler) UpdateJob(c *fiber.Ctx) error {
	id := coerce.Uint(c.FormValue("id"))
	if id == 0 {
		return response.BadRequest(c, "Job id is required")
	}

	var job model.Job
	if err := h.db.First(&job, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Job not found")
		}
		return response.InternalServerError(c, "Failed to fetch job")
	}

	job.Title = coerce.Merge(validation.SanitizeString(c.FormValue("title")), job.Title)
	job.Company = coerce.Merge(validation.SanitizeString(c.FormValue("company")), job.Company)
	job.Location = coerce.Merge(validation.SanitizeString(c.FormValue("location")), job.Location)
	job.Experience = coerce.Merge(validation.SanitizeString(c.FormValue("experience")), job.Experience)
	job.Description = coerce.Merge(c.FormValue("description"), job.Description)

	if err := h.db.Save(&job).Error; err != nil {
		if dup, constraint := database.IsUniqueViolation(err); dup {
			return response.ErrorWithMeta(c, fiber.StatusConflict,
				"Duplicate field value", fiber.Map{"constraint": constraint})
		}
		return response.InternalServerError(c, "Failed to update job")
	}

	return response.SuccessWithMessage(c, "Job updated successfully", job)
}

// ToggleJob handles DELETE /api/v1/jobs/:id
func (h *JobHandler) ToggleJob(c *fiber.Ctx) error {
	id := coerce.Uint(c.Params("id"))
	if id == 0 {
		return response.BadRequest(c, "Invalid job ID")
	}

	state, err := softdelete.Toggle(h.db, &model.Job{}, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Job not found")
		}
		return response.InternalServerError(c, "Failed to toggle job")
	}

	return response.SuccessWithMessage(c, fmt.Sprintf("Job %s", state), fiber.Map{"state": state})
}
