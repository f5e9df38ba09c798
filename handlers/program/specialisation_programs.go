package program

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/edulisting-api/database"
	"github.com/sahilchouksey/edulisting-api/handlers/course"
	"github.com/sahilchouksey/edulisting-api/model"
	"github.com/sahilchouksey/edulisting-api/services/aggregate"
	"github.com/sahilchouksey/edulisting-api/services/refs"
	"github.com/sahilchouksey/edulisting-api/services/softdelete"
	"github.com/sahilchouksey/edulisting-api/utils/coerce"
	"github.com/sahilchouksey/edulisting-api/utils/response"
	"github.com/sahilchouksey/edulisting-api/utils/slug"
	"github.com/sahilchouksey/edulisting-api/utils/validation"
	"gorm.io/gorm"
)

// SpecialisationProgramHandler handles program variants scoped to a
// specialisation.
type SpecialisationProgramHandler struct {
	db          *gorm.DB
	coordinator *aggregate.Coordinator
	resolver    *refs.Resolver
}

// NewSpecialisationProgramHandler creates a new specialisation-program handler
func NewSpecialisationProgramHandler(db *gorm.DB) *SpecialisationProgramHandler {
	return &SpecialisationProgramHandler{
		db:          db,
		coordinator: aggregate.NewCoordinator(db),
		resolver:    refs.NewResolver(db),
	}
}

// ListSpecialisationPrograms handles GET /api/v1/specialisation-programs
func (h *SpecialisationProgramHandler) ListSpecialisationPrograms(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	query := h.db.Model(&model.SpecialisationProgram{})

	if programID := coerce.Uint(c.Query("program_id")); programID != 0 {
		query = query.Where("program_id = ?", programID)
	}
	if specialisationID := coerce.Uint(c.Query("specialisation_id")); specialisationID != 0 {
		query = query.Where("specialisation_id = ?", specialisationID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count specialisation programs")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var items []model.SpecialisationProgram
	if err := query.Order("CASE WHEN position = 0 THEN 1 ELSE 0 END, position ASC, name ASC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch specialisation programs")
	}

	return response.Paginated(c, items, pagination)
}

// GetSpecialisationProgramBySlug handles GET /api/v1/specialisation-programs/slug/:slug
func (h *SpecialisationProgramHandler) GetSpecialisationProgramBySlug(c *fiber.Ctx) error {
	var item model.SpecialisationProgram
	err := h.db.
		Preload("About").
		Preload("Fees").
		Preload("Faq").
		Preload("Seo").
		Preload("Career").
		First(&item, "slug = ?", c.Params("slug")).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Specialisation program not found")
		}
		return response.InternalServerError(c, "Failed to fetch specialisation program")
	}

	raw := make([]interface{}, len(item.UniversityIDs))
	for i, id := range item.UniversityIDs {
		raw[i] = id
	}
	var universities []model.University
	if err := h.resolver.Resolve(c.Context(), raw, &universities, course.UniversityKeys...); err != nil {
		return response.InternalServerError(c, "Failed to resolve universities")
	}

	return response.Success(c, fiber.Map{
		"specialisation_program": item,
		"universities":           universities,
	})
}

// CreateSpecialisationProgram handles POST /api/v1/specialisation-programs
func (h *SpecialisationProgramHandler) CreateSpecialisationProgram(c *fiber.Ctx) error {
	name := validation.SanitizeString(c.FormValue("name"))
	if name == "" {
		return response.BadRequest(c, "Name is required")
	}

	base := slug.Make(name)
	uniqueSlug, err := slug.EnsureUnique(h.db, base, "specialisation_programs", "slug")
	if err != nil {
		return response.InternalServerError(c, "Failed to generate slug")
	}

	item := model.SpecialisationProgram{
		Slug:             uniqueSlug,
		Name:             name,
		ProgramID:        coerce.Uint(c.FormValue("program_id")),
		SpecialisationID: coerce.Uint(c.FormValue("specialisation_id")),
		Duration:         validation.SanitizeString(c.FormValue("duration")),
		Position:         coerce.Int(c.FormValue("position")),
	}
	if v := c.FormValue("university_id"); v != "" {
		item.UniversityIDs = model.IDList(coerce.IDs(v))
	}

	blocks := h.blocksFromForm(c, &item)

	if err := h.coordinator.Save(c.Context(), &item, blocks...); err != nil {
		if dup, constraint := database.IsUniqueViolation(err); dup {
			return response.ErrorWithMeta(c, fiber.StatusConflict,
				"Specialisation program with this slug already exists", fiber.Map{"constraint": constraint})
		}
		return response.InternalServerError(c, "Failed to create specialisation program: "+err.Error())
	}

	return response.Created(c, item)
}

// UpdateSpecialisationProgram handles POST /api/v1/specialisation-programs/update
func (h *SpecialisationProgramHandler) UpdateSpecialisationProgram(c *fiber.Ctx) error {
	id := coerce.Uint(c.FormValue("id"))
	if id == 0 {
		return response.BadRequest(c, "Specialisation program id is required")
	}

	var item model.SpecialisationProgram
	err := h.db.
		Preload("About").
		Preload("Fees").
		Preload("Faq").
		Preload("Seo").
		Preload("Career").
		First(&item, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Specialisation program not found")
		}
		return response.InternalServerError(c, "Failed to fetch specialisation program")
	}

	item.Name = coerce.Merge(validation.SanitizeString(c.FormValue("name")), item.Name)
	item.Duration = coerce.Merge(validation.SanitizeString(c.FormValue("duration")), item.Duration)
	if v := c.FormValue("program_id"); v != "" {
		item.ProgramID = coerce.Uint(v)
	}
	if v := c.FormValue("specialisation_id"); v != "" {
		item.SpecialisationID = coerce.Uint(v)
	}
	if v := c.FormValue("position"); v != "" {
		item.Position = coerce.Int(v)
	}
	if v := c.FormValue("university_id"); v != "" {
		item.UniversityIDs = model.IDList(coerce.IDs(v))
	}

	blocks := h.blocksFromForm(c, &item)

	item.About, item.Fees, item.Faq, item.Seo, item.Career = nil, nil, nil, nil, nil

	if err := h.coordinator.Save(c.Context(), &item, blocks...); err != nil {
		if dup, constraint := database.IsUniqueViolation(err); dup {
			return response.ErrorWithMeta(c, fiber.StatusConflict,
				"Duplicate field value", fiber.Map{"constraint": constraint})
		}
		return response.InternalServerError(c, "Failed to update specialisation program: "+err.Error())
	}

	return response.SuccessWithMessage(c, "Specialisation program updated successfully", item)
}

// blocksFromForm decodes each JSON-encoded block field onto the stored block;
// a malformed block field is treated as absent.
func (h *SpecialisationProgramHandler) blocksFromForm(c *fiber.Ctx, item *model.SpecialisationProgram) []aggregate.Child {
	about := orNew(item.About)
	fees := orNew(item.Fees)
	faq := orNew(item.Faq)
	seo := orNew(item.Seo)
	career := orNew(item.Career)

	fields := map[string]interface{}{
		"about":  about,
		"fees":   fees,
		"faq":    faq,
		"seo":    seo,
		"career": career,
	}
	for field, block := range fields {
		coerce.MergeJSON(c.FormValue(field), block)
	}

	return []aggregate.Child{about, fees, faq, seo, career}
}

// ToggleSpecialisationProgram handles DELETE /api/v1/specialisation-programs/:id
func (h *SpecialisationProgramHandler) ToggleSpecialisationProgram(c *fiber.Ctx) error {
	id := coerce.Uint(c.Params("id"))
	if id == 0 {
		return response.BadRequest(c, "Invalid specialisation program ID")
	}

	state, err := softdelete.Toggle(h.db, &model.SpecialisationProgram{}, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Specialisation program not found")
		}
		return response.InternalServerError(c, "Failed to toggle specialisation program")
	}

	return response.SuccessWithMessage(c, fmt.Sprintf("Specialisation program %s", state), fiber.Map{"state": state})
}
