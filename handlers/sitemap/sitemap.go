package sitemap

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/edulisting-api/model"
	"github.com/sahilchouksey/edulisting-api/utils/response"
	"gorm.io/gorm"
)

// SitemapHandler exposes the public slugs of every live entity for sitemap
// generation by the frontend.
type SitemapHandler struct {
	db *gorm.DB
}

// NewSitemapHandler creates a new sitemap handler
func NewSitemapHandler(db *gorm.DB) *SitemapHandler {
	return &SitemapHandler{db: db}
}

// GetSitemap handles GET /api/v1/sitemap. Soft-deleted rows are excluded by
// the default query scope.
func (h *SitemapHandler) GetSitemap(c *fiber.Ctx) error {
	slugs := func(model interface{}) ([]string, error) {
		var out []string
		err := h.db.Model(model).Order("slug ASC").Pluck("slug", &out).Error
		return out, err
	}

	universities, err := slugs(&model.University{})
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch sitemap")
	}
	courses, err := slugs(&model.Course{})
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch sitemap")
	}
	specialisations, err := slugs(&model.Specialisation{})
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch sitemap")
	}
	programs, err := slugs(&model.Program{})
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch sitemap")
	}
	specialisationPrograms, err := slugs(&model.SpecialisationProgram{})
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch sitemap")
	}
	categories, err := slugs(&model.Category{})
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch sitemap")
	}
	jobs, err := slugs(&model.Job{})
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch sitemap")
	}

	return response.Success(c, fiber.Map{
		"universities":            universities,
		"courses":                 courses,
		"specialisations":         specialisations,
		"programs":                programs,
		"specialisation_programs": specialisationPrograms,
		"categories":              categories,
		"jobs":                    jobs,
	})
}
