package specialisation

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

// SpecialisationHandler handles specialisation-related requests
type SpecialisationHandler struct {
	db          *gorm.DB
	coordinator *aggregate.Coordinator
	resolver    *refs.Resolver
	files       storage.Store
}

// NewSpecialisationHandler creates a new specialisation handler
func NewSpecialisationHandler(db *gorm.DB, files storage.Store) *SpecialisationHandler {
	return &SpecialisationHandler{
		db:          db,
		coordinator: aggregate.NewCoordinator(db),
		resolver:    refs.NewResolver(db),
		files:       files,
	}
}

// ListSpecialisations handles GET /api/v1/specialisations
func (h *SpecialisationHandler) ListSpecialisations(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	search := c.Query("search", "")
	courseID := coerce.Uint(c.Query("course_id"))

	query := h.db.Model(&model.Specialisation{}).Preload("Course")

	if search != "" {
		query = query.Where("specialisations.name ILIKE ?", "%"+search+"%")
	}
	if courseID != 0 {
		query = query.Where("specialisations.course_id = ?", courseID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count specialisations")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var specialisations []model.Specialisation
	if err := query.Order("CASE WHEN position = 0 THEN 1 ELSE 0 END, position ASC, name ASC").
		Limit(limit).
		Offset(offset).
		Find(&specialisations).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch specialisations")
	}

	return response.Paginated(c, specialisations, pagination)
}

// GetSpecialisation handles GET /api/v1/specialisations/:id
func (h *SpecialisationHandler) GetSpecialisation(c *fiber.Ctx) error {
	var spec model.Specialisation
	if err := h.preloadBlocks().First(&spec, "specialisations.id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Specialisation not found")
		}
		return response.InternalServerError(c, "Failed to fetch specialisation")
	}

	return h.respondWithResolvedRefs(c, &spec)
}

// GetSpecialisationBySlug handles GET /api/v1/specialisations/slug/:slug
func (h *SpecialisationHandler) GetSpecialisationBySlug(c *fiber.Ctx) error {
	var spec model.Specialisation
	if err := h.preloadBlocks().First(&spec, "slug = ?", c.Params("slug")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Specialisation not found")
		}
		return response.InternalServerError(c, "Failed to fetch specialisation")
	}

	return h.respondWithResolvedRefs(c, &spec)
}

func (h *SpecialisationHandler) preloadBlocks() *gorm.DB {
	return h.db.
		Preload("Course").
		Preload("About").
		Preload("Fees").
		Preload("Faq").
		Preload("Seo").
		Preload("Career").
		Preload("Skills").
		Preload("Curriculum").
		Preload("AdmissionProcess").
		Preload("Eligibility").
		Preload("Approvals")
}

func (h *SpecialisationHandler) respondWithResolvedRefs(c *fiber.Ctx, spec *model.Specialisation) error {
	var universities []model.University
	if err := h.resolver.Resolve(c.Context(), rawIDs(spec.UniversityIDs), &universities, course.UniversityKeys...); err != nil {
		return response.InternalServerError(c, "Failed to resolve universities")
	}

	var approvals []model.Approval
	if spec.Approvals != nil {
		if err := h.resolver.Resolve(c.Context(), rawIDs(spec.Approvals.ApprovalIDs), &approvals, university.ApprovalKeys...); err != nil {
			return response.InternalServerError(c, "Failed to resolve approvals")
		}
	}

	return response.Success(c, fiber.Map{
		"specialisation": spec,
		"universities":   universities,
		"approvals":      approvals,
	})
}

func rawIDs(ids model.IDList) []interface{} {
	raw := make([]interface{}, len(ids))
	for i, id := range ids {
		raw[i] = id
	}
	return raw
}

// CreateSpecialisation handles POST /api/v1/specialisations (multipart)
func (h *SpecialisationHandler) CreateSpecialisation(c *fiber.Ctx) error {
	name := validation.SanitizeString(c.FormValue("name"))
	if name == "" {
		return response.BadRequest(c, "Name is required")
	}
	courseID := coerce.Uint(c.FormValue("course_id"))
	if courseID == 0 {
		return response.BadRequest(c, "Course id is required")
	}

	base := slug.Make(name)
	uniqueSlug, err := slug.EnsureUnique(h.db, base, "specialisations", "slug")
	if err != nil {
		return response.InternalServerError(c, "Failed to generate slug")
	}

	spec := model.Specialisation{
		Slug:     uniqueSlug,
		Name:     name,
		CourseID: courseID,
		Duration: validation.SanitizeString(c.FormValue("duration")),
		Position: coerce.Int(c.FormValue("position")),
	}
	if v := c.FormValue("university_id"); v != "" {
		spec.UniversityIDs = model.IDList(coerce.IDs(v))
	}

	if file, err := c.FormFile("image"); err == nil {
		url, err := storage.SaveUpload(c.Context(), h.files, "specialisations", file)
		if err != nil {
			return response.InternalServerError(c, "Failed to store specialisation image")
		}
		spec.Image = url
	}

	blocks, err := h.blocksFromForm(c, &spec)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.coordinator.Save(c.Context(), &spec, blocks...); err != nil {
		if dup, constraint := database.IsUniqueViolation(err); dup {
			return response.ErrorWithMeta(c, fiber.StatusConflict,
				"Specialisation with this slug already exists", fiber.Map{"constraint": constraint})
		}
		return response.InternalServerError(c, "Failed to create specialisation: "+err.Error())
	}

	return response.Created(c, spec)
}

// UpdateSpecialisation handles POST /api/v1/specialisations/update.
// Omitted fields keep their stored values.
func (h *SpecialisationHandler) UpdateSpecialisation(c *fiber.Ctx) error {
	id := coerce.Uint(c.FormValue("id"))
	if id == 0 {
		return response.BadRequest(c, "Specialisation id is required")
	}

	var spec model.Specialisation
	if err := h.preloadBlocks().First(&spec, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Specialisation not found")
		}
		return response.InternalServerError(c, "Failed to fetch specialisation")
	}

	spec.Name = coerce.Merge(validation.SanitizeString(c.FormValue("name")), spec.Name)
	spec.Duration = coerce.Merge(validation.SanitizeString(c.FormValue("duration")), spec.Duration)
	if v := c.FormValue("course_id"); v != "" {
		spec.CourseID = coerce.Uint(v)
	}
	if v := c.FormValue("position"); v != "" {
		spec.Position = coerce.Int(v)
	}
	if v := c.FormValue("university_id"); v != "" {
		spec.UniversityIDs = model.IDList(coerce.IDs(v))
	}

	if file, err := c.FormFile("image"); err == nil {
		url, err := storage.SaveUpload(c.Context(), h.files, "specialisations", file)
		if err != nil {
			return response.InternalServerError(c, "Failed to store specialisation image")
		}
		storage.DeleteQuietly(c.Context(), h.files, spec.Image)
		spec.Image = url
	}

	blocks, err := h.blocksFromForm(c, &spec)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	spec.Course = nil
	spec.About, spec.Fees, spec.Faq, spec.Seo = nil, nil, nil, nil
	spec.Career, spec.Skills, spec.Curriculum = nil, nil, nil
	spec.AdmissionProcess, spec.Eligibility, spec.Approvals = nil, nil, nil

	if err := h.coordinator.Save(c.Context(), &spec, blocks...); err != nil {
		if dup, constraint := database.IsUniqueViolation(err); dup {
			return response.ErrorWithMeta(c, fiber.StatusConflict,
				"Duplicate field value", fiber.Map{"constraint": constraint})
		}
		return response.InternalServerError(c, "Failed to update specialisation: "+err.Error())
	}

	return response.SuccessWithMessage(c, "Specialisation updated successfully", spec)
}

// blocksFromForm decodes each JSON-encoded block field onto the stored block
// so absent fields keep their stored values; a malformed block field is
// treated as absent.
func (h *SpecialisationHandler) blocksFromForm(c *fiber.Ctx, spec *model.Specialisation) ([]aggregate.Child, error) {
	about := orNew(spec.About)
	fees := orNew(spec.Fees)
	faq := orNew(spec.Faq)
	seo := orNew(spec.Seo)
	career := orNew(spec.Career)
	skills := orNew(spec.Skills)
	curriculum := orNew(spec.Curriculum)
	admission := orNew(spec.AdmissionProcess)
	eligibility := orNew(spec.Eligibility)
	approvals := orNew(spec.Approvals)

	fields := map[string]interface{}{
		"about":             about,
		"fees":              fees,
		"faq":               faq,
		"seo":               seo,
		"career":            career,
		"skills":            skills,
		"curriculum":        curriculum,
		"admission_process": admission,
		"eligibility":       eligibility,
		"approvals":         approvals,
	}
	for field, block := range fields {
		coerce.MergeJSON(c.FormValue(field), block)
	}

	if file, err := c.FormFile("about_image"); err == nil {
		url, err := storage.SaveUpload(c.Context(), h.files, "specialisations", file)
		if err != nil {
			return nil, fmt.Errorf("failed to store about image")
		}
		storage.DeleteQuietly(c.Context(), h.files, about.Image)
		about.Image = url
	}

	return []aggregate.Child{
		about, fees, faq, seo, career, skills, curriculum,
		admission, eligibility, approvals,
	}, nil
}

func orNew[T any](block *T) *T {
	if block != nil {
		return block
	}
	return new(T)
}

// ToggleSpecialisation handles DELETE /api/v1/specialisations/:id
func (h *SpecialisationHandler) ToggleSpecialisation(c *fiber.Ctx) error {
	id := coerce.Uint(c.Params("id"))
	if id == 0 {
		return response.BadRequest(c, "Invalid specialisation ID")
	}

	state, err := softdelete.Toggle(h.db, &model.Specialisation{}, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Specialisation not found")
		}
		return response.InternalServerError(c, "Failed to toggle specialisation")
	}

	return response.SuccessWithMessage(c, fmt.Sprintf("Specialisation %s", state), fiber.Map{"state": state})
}

// FilterByCourse handles GET /api/v1/specialisations/filter/course/:id
func (h *SpecialisationHandler) FilterByCourse(c *fiber.Ctx) error {
	id := coerce.Uint(c.Params("id"))
	if id == 0 {
		return response.BadRequest(c, "Invalid course ID")
	}

	var specialisations []model.Specialisation
	err := h.db.
		Where("course_id = ?", id).
		Order("CASE WHEN position = 0 THEN 1 ELSE 0 END, position ASC, name ASC").
		Find(&specialisations).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to filter specialisations")
	}

	return response.Success(c, specialisations)
}

// FilterByUniversity handles GET /api/v1/specialisations/filter/university/:id
func (h *SpecialisationHandler) FilterByUniversity(c *fiber.Ctx) error {
	id := coerce.Uint(c.Params("id"))
	if id == 0 {
		return response.BadRequest(c, "Invalid university ID")
	}

	var specialisations []model.Specialisation
	err := h.db.
		Where("university_ids @> ?", fmt.Sprintf("[%d]", id)).
		Find(&specialisations).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to filter specialisations")
	}

	return response.Success(c, specialisations)
}
