package course

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/edulisting-api/database"
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

// UniversityKeys are the legacy key names under which university references
// have been stored inside denormalized lists, in priority order.
var UniversityKeys = []string{"university_id", "university_ids", "id"}

// CourseHandler handles course-related requests
type CourseHandler struct {
	db          *gorm.DB
	coordinator *aggregate.Coordinator
	resolver    *refs.Resolver
	files       storage.Store
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(db *gorm.DB, files storage.Store) *CourseHandler {
	return &CourseHandler{
		db:          db,
		coordinator: aggregate.NewCoordinator(db),
		resolver:    refs.NewResolver(db),
		files:       files,
	}
}

// ListCourses handles GET /api/v1/courses
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	search := c.Query("search", "")
	categoryID := coerce.Uint(c.Query("category_id"))

	query := h.db.Model(&model.Course{}).Preload("Category")

	if search != "" {
		query = query.Where("courses.name ILIKE ?", "%"+search+"%")
	}
	if categoryID != 0 {
		query = query.Where("courses.category_id = ?", categoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count courses")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var courses []model.Course
	if err := query.Order("CASE WHEN position = 0 THEN 1 ELSE 0 END, position ASC, name ASC").
		Limit(limit).
		Offset(offset).
		Find(&courses).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch courses")
	}

	return response.Paginated(c, courses, pagination)
}

// GetCourse handles GET /api/v1/courses/:id
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	var course model.Course
	if err := h.preloadBlocks().First(&course, "courses.id = ?", c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	return h.respondWithResolvedRefs(c, &course)
}

// GetCourseBySlug handles GET /api/v1/courses/slug/:slug
func (h *CourseHandler) GetCourseBySlug(c *fiber.Ctx) error {
	var course model.Course
	if err := h.preloadBlocks().First(&course, "slug = ?", c.Params("slug")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	return h.respondWithResolvedRefs(c, &course)
}

func (h *CourseHandler) preloadBlocks() *gorm.DB {
	return h.db.
		Preload("Category").
		Preload("About").
		Preload("Fees").
		Preload("Faq").
		Preload("Seo").
		Preload("Career").
		Preload("Skills").
		Preload("Advantages").
		Preload("Curriculum").
		Preload("ExamPattern").
		Preload("FinancialAid").
		Preload("Services").
		Preload("AdmissionProcess").
		Preload("Eligibility").
		Preload("Certificates").
		Preload("Rankings").
		Preload("Approvals").
		Preload("Partners")
}

// respondWithResolvedRefs expands the course's denormalized university,
// approval and placement ID lists into rows.
func (h *CourseHandler) respondWithResolvedRefs(c *fiber.Ctx, course *model.Course) error {
	var universities []model.University
	if err := h.resolver.Resolve(c.Context(), rawIDs(course.UniversityIDs), &universities, UniversityKeys...); err != nil {
		return response.InternalServerError(c, "Failed to resolve universities")
	}

	var approvals []model.Approval
	if course.Approvals != nil {
		if err := h.resolver.Resolve(c.Context(), rawIDs(course.Approvals.ApprovalIDs), &approvals, university.ApprovalKeys...); err != nil {
			return response.InternalServerError(c, "Failed to resolve approvals")
		}
	}

	var placements []model.Placement
	if course.Partners != nil {
		if err := h.resolver.Resolve(c.Context(), rawIDs(course.Partners.PlacementIDs), &placements, university.PlacementKeys...); err != nil {
			return response.InternalServerError(c, "Failed to resolve placement partners")
		}
	}

	return response.Success(c, fiber.Map{
		"course":             course,
		"universities":       universities,
		"approvals":          approvals,
		"placement_partners": placements,
	})
}

func rawIDs(ids model.IDList) []interface{} {
	raw := make([]interface{}, len(ids))
	for i, id := range ids {
		raw[i] = id
	}
	return raw
}

// CreateCourse handles POST /api/v1/courses (multipart)
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	name := validation.SanitizeString(c.FormValue("name"))
	if name == "" {
		return response.BadRequest(c, "Name is required")
	}

	base := slug.Make(name)
	uniqueSlug, err := slug.EnsureUnique(h.db, base, "courses", "slug")
	if err != nil {
		return response.InternalServerError(c, "Failed to generate slug")
	}

	course := model.Course{
		Slug:       uniqueSlug,
		Name:       name,
		CategoryID: coerce.Uint(c.FormValue("category_id")),
		Duration:   validation.SanitizeString(c.FormValue("duration")),
		Mode:       validation.SanitizeString(c.FormValue("mode")),
		Position:   coerce.Int(c.FormValue("position")),
	}
	if v := c.FormValue("university_id"); v != "" {
		course.UniversityIDs = model.IDList(coerce.IDs(v))
	}

	if file, err := c.FormFile("image"); err == nil {
		url, err := storage.SaveUpload(c.Context(), h.files, "courses", file)
		if err != nil {
			return response.InternalServerError(c, "Failed to store course image")
		}
		course.Image = url
	}

	blocks, err := h.blocksFromForm(c, &course)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.coordinator.Save(c.Context(), &course, blocks...); err != nil {
		if dup, constraint := database.IsUniqueViolation(err); dup {
			return response.ErrorWithMeta(c, fiber.StatusConflict,
				"Course with this slug already exists", fiber.Map{"constraint": constraint})
		}
		return response.InternalServerError(c, "Failed to create course: "+err.Error())
	}

	return response.Created(c, course)
}

// UpdateCourse handles POST /api/v1/courses/update (multipart with body id).
// Block fields merge onto the stored blocks; omitted fields are untouched.
func (h *CourseHandler) UpdateCourse(c *fiber.Ctx) error {
	id := coerce.Uint(c.FormValue("id"))
	if id == 0 {
		return response.BadRequest(c, "Course id is required")
	}

	var course model.Course
	if err := h.preloadBlocks().First(&course, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to fetch course")
	}

	course.Name = coerce.Merge(validation.SanitizeString(c.FormValue("name")), course.Name)
	course.Duration = coerce.Merge(validation.SanitizeString(c.FormValue("duration")), course.Duration)
	course.Mode = coerce.Merge(validation.SanitizeString(c.FormValue("mode")), course.Mode)
	if v := c.FormValue("category_id"); v != "" {
		course.CategoryID = coerce.Uint(v)
	}
	if v := c.FormValue("position"); v != "" {
		course.Position = coerce.Int(v)
	}
	if v := c.FormValue("university_id"); v != "" {
		course.UniversityIDs = model.IDList(coerce.IDs(v))
	}

	if file, err := c.FormFile("image"); err == nil {
		url, err := storage.SaveUpload(c.Context(), h.files, "courses", file)
		if err != nil {
			return response.InternalServerError(c, "Failed to store course image")
		}
		storage.DeleteQuietly(c.Context(), h.files, course.Image)
		course.Image = url
	}

	blocks, err := h.blocksFromForm(c, &course)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	// The coordinator owns the block writes; detach the loaded associations.
	course.Category = nil
	course.About, course.Fees, course.Faq, course.Seo = nil, nil, nil, nil
	course.Career, course.Skills, course.Advantages, course.Curriculum = nil, nil, nil, nil
	course.ExamPattern, course.FinancialAid, course.Services = nil, nil, nil
	course.AdmissionProcess, course.Eligibility, course.Certificates = nil, nil, nil
	course.Rankings, course.Approvals, course.Partners = nil, nil, nil

	if err := h.coordinator.Save(c.Context(), &course, blocks...); err != nil {
		if dup, constraint := database.IsUniqueViolation(err); dup {
			return response.ErrorWithMeta(c, fiber.StatusConflict,
				"Duplicate field value", fiber.Map{"constraint": constraint})
		}
		return response.InternalServerError(c, "Failed to update course: "+err.Error())
	}

	return response.SuccessWithMessage(c, "Course updated successfully", course)
}

// blocksFromForm builds the child blocks for a save. Each block arrives as a
// JSON-encoded form field named after the block; decoding onto the stored
// block means fields absent from the payload keep their stored values, and a
// malformed block field is treated as absent.
func (h *CourseHandler) blocksFromForm(c *fiber.Ctx, course *model.Course) ([]aggregate.Child, error) {
	about := orNew(course.About)
	fees := orNew(course.Fees)
	faq := orNew(course.Faq)
	seo := orNew(course.Seo)
	career := orNew(course.Career)
	skills := orNew(course.Skills)
	advantages := orNew(course.Advantages)
	curriculum := orNew(course.Curriculum)
	examPattern := orNew(course.ExamPattern)
	financialAid := orNew(course.FinancialAid)
	services := orNew(course.Services)
	admission := orNew(course.AdmissionProcess)
	eligibility := orNew(course.Eligibility)
	certificates := orNew(course.Certificates)
	rankings := orNew(course.Rankings)
	approvals := orNew(course.Approvals)
	partners := orNew(course.Partners)

	fields := map[string]interface{}{
		"about":             about,
		"fees":              fees,
		"faq":               faq,
		"seo":               seo,
		"career":            career,
		"skills":            skills,
		"advantages":        advantages,
		"curriculum":        curriculum,
		"exam_pattern":      examPattern,
		"financial_aid":     financialAid,
		"services":          services,
		"admission_process": admission,
		"eligibility":       eligibility,
		"certificates":      certificates,
		"rankings":          rankings,
		"approvals":         approvals,
		"partners":          partners,
	}
	for field, block := range fields {
		coerce.MergeJSON(c.FormValue(field), block)
	}

	if err := h.attachBlockImages(c, about, financialAid, services); err != nil {
		return nil, err
	}

	return []aggregate.Child{
		about, fees, faq, seo, career, skills, advantages, curriculum,
		examPattern, financialAid, services, admission, eligibility,
		certificates, rankings, approvals, partners,
	}, nil
}

// attachBlockImages stores block-level uploads: the about/financial-aid
// images, and service icons sent as bracket-indexed files (services[0],
// services[1], ...) that replace the icon of the item at that position.
func (h *CourseHandler) attachBlockImages(c *fiber.Ctx, about *model.CourseAbout,
	financialAid *model.CourseFinancialAid, services *model.CourseServices) error {

	if file, err := c.FormFile("about_image"); err == nil {
		url, err := storage.SaveUpload(c.Context(), h.files, "courses", file)
		if err != nil {
			return fmt.Errorf("failed to store about image")
		}
		storage.DeleteQuietly(c.Context(), h.files, about.Image)
		about.Image = url
	}

	if file, err := c.FormFile("financial_aid_image"); err == nil {
		url, err := storage.SaveUpload(c.Context(), h.files, "courses", file)
		if err != nil {
			return fmt.Errorf("failed to store financial aid image")
		}
		storage.DeleteQuietly(c.Context(), h.files, financialAid.Image)
		financialAid.Image = url
	}

	var items []map[string]interface{}
	if len(services.Items) > 0 {
		if err := json.Unmarshal(services.Items, &items); err != nil {
			return fmt.Errorf("invalid services items payload")
		}
	}

	changed := false
	for i := range items {
		file, err := c.FormFile(fmt.Sprintf("services[%d]", i))
		if err != nil {
			continue
		}
		url, err := storage.SaveUpload(c.Context(), h.files, "courses/icons", file)
		if err != nil {
			return fmt.Errorf("failed to store service icon %d", i)
		}
		if old, ok := items[i]["icon"].(string); ok {
			storage.DeleteQuietly(c.Context(), h.files, old)
		}
		items[i]["icon"] = url
		changed = true
	}
	if changed {
		encoded, err := json.Marshal(items)
		if err != nil {
			return fmt.Errorf("failed to encode services items")
		}
		services.Items = encoded
	}

	return nil
}

func orNew[T any](block *T) *T {
	if block != nil {
		return block
	}
	return new(T)
}

// ToggleCourse handles DELETE /api/v1/courses/:id — delete ⇄ restore flip.
func (h *CourseHandler) ToggleCourse(c *fiber.Ctx) error {
	id := coerce.Uint(c.Params("id"))
	if id == 0 {
		return response.BadRequest(c, "Invalid course ID")
	}

	state, err := softdelete.Toggle(h.db, &model.Course{}, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Course not found")
		}
		return response.InternalServerError(c, "Failed to toggle course")
	}

	return response.SuccessWithMessage(c, fmt.Sprintf("Course %s", state), fiber.Map{"state": state})
}

// FilterByUniversity handles GET /api/v1/courses/filter/university/:id —
// courses whose denormalized university list contains the given ID.
func (h *CourseHandler) FilterByUniversity(c *fiber.Ctx) error {
	id := coerce.Uint(c.Params("id"))
	if id == 0 {
		return response.BadRequest(c, "Invalid university ID")
	}

	var courses []model.Course
	err := h.db.Preload("Category").
		Where("university_ids @> ?", fmt.Sprintf("[%d]", id)).
		Find(&courses).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to filter courses")
	}

	return response.Success(c, courses)
}

// FilterByCategory handles GET /api/v1/courses/filter/category/:id
func (h *CourseHandler) FilterByCategory(c *fiber.Ctx) error {
	id := coerce.Uint(c.Params("id"))
	if id == 0 {
		return response.BadRequest(c, "Invalid category ID")
	}

	var courses []model.Course
	err := h.db.Preload("Category").
		Where("category_id = ?", id).
		Order("CASE WHEN position = 0 THEN 1 ELSE 0 END, position ASC, name ASC").
		Find(&courses).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to filter courses")
	}

	return response.Success(c, courses)
}
