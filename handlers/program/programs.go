package program

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/edulisting-api/database"
	"github.com/sahilchouksey/edulisting-api/handlers/course"
	"github.com/sahilchouksey/edulisting-api/handlers/university"
	"github.com/sahilchouksey/edulisting-api/model"
	"github.com/sahilchouksey/edulisting-api/services/aggregate"
	"github.com/sahilchouksey/edulisting-api/services/refs"
	"github.com/sahilchouksey/edulisting-api/services/softdelete"
	"github.com/sahilchouksey/edulisting-api/services/storage"
	"github.com/sahilchouksey/edulisting-api/utils/coerce"
	"github.com/sahilchouksey/edulisting-api/utils/response"
	"github.com/sahilchouksey/edulisting-api/utils/slug"
	"github.com/sahilchouksey/edulisting-api/utils/validation"
	"gorm.io/gorm"
)

// ProgramHandler handles program-related requests
type ProgramHandler struct {
	db          *gorm.DB
	coordinator *aggregate.Coordinator
	resolver    *refs.Resolver
	files       storage.Store
}

// NewProgramHandler creates a new program handler
func NewProgramHandler(db *gorm.DB, files storage.Store) *ProgramHandler {
	return &ProgramHandler{
		db:          db,
		coordinator: aggregate.NewCoordinator(db),
		resolver:    refs.NewResolver(db),
		files:       files,
	}
}

// ListPrograms handles GET /api/v1/programs
func (h *ProgramHandler) ListPrograms(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	search := c.Query("search", "")

	query := h.db.Model(&model.Program{}).Preload("Category")

	if search != "" {
		query = query.Where("programs.name ILIKE ?", "%"+search+"%")
	}
	if categoryID := coerce.Uint(c.Query("category_id")); categoryID != 0 {
		query = query.Where("programs.category_id = ?", categoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count programs")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var programs []model.Program
	if err := query.Order("CASE WHEN position = 0 THEN 1 ELSE 0 END, position ASC, name ASC").
		Limit(limit).
		Offset(offset).
		Find(&programs).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch programs")
	}

	return response.Paginated(c, programs, pagination)
}

// GetProgram handles GET /api/v1/programs/:id
func (h *ProgramHandler) GetProgram(c *fiber.Ctx) error {
	var program model.Program
	if err := h.preloadBlocks().First(&program, "programs.id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Program not found")
		}
		return response.InternalServerError(c, "Failed to fetch program")
	}

	return h.respondWithResolvedRefs(c, &program)
}

// GetProgramBySlug handles GET /api/v1/programs/slug/:slug
func (h *ProgramHandler) GetProgramBySlug(c *fiber.Ctx) error {
	var program model.Program
	if err := h.preloadBlocks().First(&program, "slug = ?", c.Params("slug")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Program not found")
		}
		return response.InternalServerError(c, "Failed to fetch program")
	}

	return h.respondWithResolvedRefs(c, &program)
}

func (h *ProgramHandler) preloadBlocks() *gorm.DB {
	return h.db.
		Preload("Category").
		Preload("About").
		Preload("Fees").
		Preload("Faq").
		Preload("Seo").
		Preload("Career").
		Preload("Curriculum").
		Preload("Eligibility").
		Preload("Approvals")
}

func (h *ProgramHandler) respondWithResolvedRefs(c *fiber.Ctx, program *model.Program) error {
	var universities []model.University
	if err := h.resolver.Resolve(c.Context(), rawIDs(program.UniversityIDs), &universities, course.UniversityKeys...); err != nil {
		return response.InternalServerError(c, "Failed to resolve universities")
	}

	var approvals []model.Approval
	if program.Approvals != nil {
		if err := h.resolver.Resolve(c.Context(), rawIDs(program.Approvals.ApprovalIDs), &approvals, university.ApprovalKeys...); err != nil {
			return response.InternalServerError(c, "Failed to resolve approvals")
		}
	}

	return response.Success(c, fiber.Map{
		"program":      program,
		"universities": universities,
		"approvals":    approvals,
	})
}

func rawIDs(ids model.IDList) []interface{} {
	raw := make([]interface{}, len(ids))
	for i, id := range ids {
		raw[i] = id
	}
	return raw
}

// CreateProgram handles POST /api/v1/programs (multipart)
func (h *ProgramHandler) CreateProgram(c *fiber.Ctx) error {
	name := validation.SanitizeString(c.FormValue("name"))
	if name == "" {
		return response.BadRequest(c, "Name is required")
	}

	base := slug.Make(name)
	uniqueSlug, err := slug.EnsureUnique(h.db, base, "programs", "slug")
	if err != nil {
		return response.InternalServerError(c, "Failed to generate slug")
	}

	program := model.Program{
		Slug:       uniqueSlug,
		Name:       name,
		CategoryID: coerce.Uint(c.FormValue("category_id")),
		Duration:   validation.SanitizeString(c.FormValue("duration")),
		Position:   coerce.Int(c.FormValue("position")),
	}
	if v := c.FormValue("university_id"); v != "" {
		program.UniversityIDs = model.IDList(coerce.IDs(v))
	}

	if file, err := c.FormFile("image"); err == nil {
		url, err := storage.SaveUpload(c.Context(), h.files, "programs", file)
		if err != nil {
			return response.InternalServerError(c, "Failed to store program image")
		}
		program.Image = url
	}

	blocks, err := h.blocksFromForm(c, &program)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.coordinator.Save(c.Context(), &program, blocks...); err != nil {
		if dup, constraint := database.IsUniqueViolation(err); dup {
			return response.ErrorWithMeta(c, fiber.StatusConflict,
				"Program with this slug already exists", fiber.Map{"constraint": constraint})
		}
		return response.InternalServerError(c, "Failed to create program: "+err.Error())
	}

	return response.Created(c, program)
}

// UpdateProgram handles POST /api/v1/programs/update.
func (h *ProgramHandler) UpdateProgram(c *fiber.Ctx) error {
	id := coerce.Uint(c.FormValue("id"))
	if id == 0 {
		return response.BadRequest(c, "Program id is required")
	}

	var program model.Program
	if err := h.preloadBlocks().First(&program, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Program not found")
		}
		return response.InternalServerError(c, "Failed to fetch program")
	}

	program.Name = coerce.Merge(validation.SanitizeString(c.FormValue("name")), program.Name)
	program.Duration = coerce.Merge(validation.SanitizeString(c.FormValue("duration")), program.Duration)
	if v := c.FormValue("category_id"); v != "" {
		program.CategoryID = coerce.Uint(v)
	}
	if v := c.FormValue("position"); v != "" {
		program.Position = coerce.Int(v)
	}
	if v := c.FormValue("university_id"); v != "" {
		program.UniversityIDs = model.IDList(coerce.IDs(v))
	}

	if file, err := c.FormFile("image"); err == nil {
		url, err := storage.SaveUpload(c.Context(), h.files, "programs", file)
		if err != nil {
			return response.InternalServerError(c, "Failed to store program image")
		}
		storage.DeleteQuietly(c.Context(), h.files, program.Image)
		program.Image = url
	}

	blocks, err := h.blocksFromForm(c, &program)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	program.Category = nil
	program.About, program.Fees, program.Faq, program.Seo = nil, nil, nil, nil
	program.Career, program.Curriculum = nil, nil
	program.Eligibility, program.Approvals = nil, nil

	if err := h.coordinator.Save(c.Context(), &program, blocks...); err != nil {
		if dup, constraint := database.IsUniqueViolation(err); dup {
			return response.ErrorWithMeta(c, fiber.StatusConflict,
				"Duplicate field value", fiber.Map{"constraint": constraint})
		}
		return response.InternalServerError(c, "Failed to update program: "+err.Error())
	}

	return response.SuccessWithMessage(c, "Program updated successfully", program)
}

// blocksFromForm decodes each JSON-encoded block field onto the stored block;
// a malformed block field is treated as absent.
func (h *ProgramHandler) blocksFromForm(c *fiber.Ctx, program *model.Program) ([]aggregate.Child, error) {
	about := orNew(program.About)
	fees := orNew(program.Fees)
	faq := orNew(program.Faq)
	seo := orNew(program.Seo)
	career := orNew(program.Career)
	curriculum := orNew(program.Curriculum)
	eligibility := orNew(program.Eligibility)
	approvals := orNew(program.Approvals)

	fields := map[string]interface{}{
		"about":       about,
		"fees":        fees,
		"faq":         faq,
		"seo":         seo,
		"career":      career,
		"curriculum":  curriculum,
		"eligibility": eligibility,
		"approvals":   approvals,
	}
	for field, block := range fields {
		coerce.MergeJSON(c.FormValue(field), block)
	}

	if file, err := c.FormFile("about_image"); err == nil {
		url, err := storage.SaveUpload(c.Context(), h.files, "programs", file)
		if err != nil {
			return nil, fmt.Errorf("failed to store about image")
		}
		storage.DeleteQuietly(c.Context(), h.files, about.Image)
		about.Image = url
	}

	return []aggregate.Child{
		about, fees, faq, seo, career, curriculum, eligibility, approvals,
	}, nil
}

func orNew[T any](block *T) *T {
	if block != nil {
		return block
	}
	return new(T)
}

// ToggleProgram handles DELETE /api/v1/programs/:id
func (h *ProgramHandler) ToggleProgram(c *fiber.Ctx) error {
	id := coerce.Uint(c.Params("id"))
	if id == 0 {
		return response.BadRequest(c, "Invalid program ID")
	}

	state, err := softdelete.Toggle(h.db, &model.Program{}, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Program not found")
		}
		return response.InternalServerError(c, "Failed to toggle program")
	}

	return response.SuccessWithMessage(c, fmt.Sprintf("Program %s", state), fiber.Map{"state": state})
}

// FilterByUniversity handles GET /api/v1/programs/filter/university/:id
func (h *ProgramHandler) FilterByUniversity(c *fiber.Ctx) error {
	id := coerce.Uint(c.Params("id"))
	if id == 0 {
		return response.BadRequest(c, "Invalid university ID")
	}

	var programs []model.Program
	err := h.db.Preload("Category").
		Where("university_ids @> ?", fmt.Sprintf("[%d]", id)).
		Find(&programs).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to filter programs")
	}

	return response.Success(c, programs)
}
