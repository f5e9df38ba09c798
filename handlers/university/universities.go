package university

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/edulisting-api/database"
	"github.com/sahilchouksey/edulisting-api/model"
	"github.com/sahilchouksey/edulisting-api/services/aggregate"
	"github.com/sahilchouksey/edulisting-api/services/refs"
	"github.com/sahilchouksey/edulisting-api/services/softdelete"
	"github.com/sahilchouksey/edulisting-api/services/storage"
	"github.com/sahilchouksey/edulisting-api/utils/coerce"
	"github.com/sahilchouksey/edulisting-api/utils/pdfvalidation"
	"github.com/sahilchouksey/edulisting-api/utils/response"
	"github.com/sahilchouksey/edulisting-api/utils/slug"
	"github.com/sahilchouksey/edulisting-api/utils/validation"
	"gorm.io/gorm"
)

// ApprovalKeys are the legacy key names under which approval references have
// been stored over time, in priority order.
var ApprovalKeys = []string{"approval_ids", "approval_id", "id"}

// PlacementKeys are the legacy key names for placement partner references.
var PlacementKeys = []string{"placement_partner_id", "placement_id", "id"}

// UniversityHandler handles university-related requests
type UniversityHandler struct {
	db          *gorm.DB
	coordinator *aggregate.Coordinator
	resolver    *refs.Resolver
	files       storage.Store
}

// NewUniversityHandler creates a new university handler
func NewUniversityHandler(db *gorm.DB, files storage.Store) *UniversityHandler {
	return &UniversityHandler{
		db:          db,
		coordinator: aggregate.NewCoordinator(db),
		resolver:    refs.NewResolver(db),
		files:       files,
	}
}

// ListUniversities handles GET /api/v1/universities
func (h *UniversityHandler) ListUniversities(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	search := c.Query("search", "")

	query := h.db.Model(&model.University{})

	if search != "" {
		query = query.Where("name ILIKE ? OR city ILIKE ? OR state ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count universities")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var universities []model.University
	if err := query.Order("CASE WHEN position = 0 THEN 1 ELSE 0 END, position ASC, name ASC").
		Limit(limit).
		Offset(offset).
		Find(&universities).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch universities")
	}

	return response.Paginated(c, universities, pagination)
}

// GetUniversity handles GET /api/v1/universities/:id
func (h *UniversityHandler) GetUniversity(c *fiber.Ctx) error {
	id := c.Params("id")

	var university model.University
	if err := h.preloadBlocks().First(&university, "universities.id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "University not found")
		}
		return response.InternalServerError(c, "Failed to fetch university")
	}

	return h.respondWithResolvedRefs(c, &university)
}

// GetUniversityBySlug handles GET /api/v1/universities/slug/:slug
func (h *UniversityHandler) GetUniversityBySlug(c *fiber.Ctx) error {
	var university model.University
	if err := h.preloadBlocks().First(&university, "slug = ?", c.Params("slug")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "University not found")
		}
		return response.InternalServerError(c, "Failed to fetch university")
	}

	return h.respondWithResolvedRefs(c, &university)
}

func (h *UniversityHandler) preloadBlocks() *gorm.DB {
	return h.db.
		Preload("Approvals").
		Preload("Partners").
		Preload("FinancialAid").
		Preload("Rankings").
		Preload("ExamPatterns").
		Preload("Reviews")
}

// respondWithResolvedRefs resolves the denormalized approval/placement ID
// lists into rows. Dangling IDs simply drop out of the result.
func (h *UniversityHandler) respondWithResolvedRefs(c *fiber.Ctx, university *model.University) error {
	var approvals []model.Approval
	if university.Approvals != nil {
		raw := idListToRaw(university.Approvals.ApprovalIDs)
		if err := h.resolver.Resolve(c.Context(), raw, &approvals, ApprovalKeys...); err != nil {
			return response.InternalServerError(c, "Failed to resolve approvals")
		}
	}

	var placements []model.Placement
	if university.Partners != nil {
		raw := idListToRaw(university.Partners.PlacementIDs)
		if err := h.resolver.Resolve(c.Context(), raw, &placements, PlacementKeys...); err != nil {
			return response.InternalServerError(c, "Failed to resolve placement partners")
		}
	}

	return response.Success(c, fiber.Map{
		"university":         university,
		"approvals":          approvals,
		"placement_partners": placements,
	})
}

func idListToRaw(ids model.IDList) []interface{} {
	raw := make([]interface{}, len(ids))
	for i, id := range ids {
		raw[i] = id
	}
	return raw
}

// CreateUniversity handles POST /api/v1/universities (multipart)
func (h *UniversityHandler) CreateUniversity(c *fiber.Ctx) error {
	name := validation.SanitizeString(c.FormValue("name"))
	if name == "" {
		return response.BadRequest(c, "Name is required")
	}

	base := slug.Make(name)
	uniqueSlug, err := slug.EnsureUnique(h.db, base, "universities", "slug")
	if err != nil {
		return response.InternalServerError(c, "Failed to generate slug")
	}

	university := model.University{
		Slug:     uniqueSlug,
		Name:     name,
		Position: coerce.Int(c.FormValue("position")),
		City:     validation.SanitizeString(c.FormValue("city")),
		State:    validation.SanitizeString(c.FormValue("state")),
		Website:  validation.SanitizeString(c.FormValue("website")),
		About:    c.FormValue("about"),
	}

	if err := h.attachFiles(c, &university, nil); err != nil {
		return response.BadRequest(c, err.Error())
	}

	blocks := h.blocksFromForm(c, &model.UniversityApprovals{}, &model.UniversityPartners{},
		&model.UniversityFinancialAid{}, &model.UniversityRankings{}, &model.UniversityExamPatterns{})

	if err := h.coordinator.Save(c.Context(), &university, blocks...); err != nil {
		if dup, constraint := database.IsUniqueViolation(err); dup {
			return response.ErrorWithMeta(c, fiber.StatusConflict,
				"University with this slug already exists", fiber.Map{"constraint": constraint})
		}
		return response.InternalServerError(c, "Failed to create university: "+err.Error())
	}

	return response.Created(c, university)
}

// UpdateUniversity handles POST /api/v1/universities/update (multipart with body id).
// Omitted fields keep their stored values.
func (h *UniversityHandler) UpdateUniversity(c *fiber.Ctx) error {
	id := coerce.Uint(c.FormValue("id"))
	if id == 0 {
		return response.BadRequest(c, "University id is required")
	}

	var university model.University
	if err := h.preloadBlocks().First(&university, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "University not found")
		}
		return response.InternalServerError(c, "Failed to fetch university")
	}

	university.Name = coerce.Merge(validation.SanitizeString(c.FormValue("name")), university.Name)
	university.City = coerce.Merge(validation.SanitizeString(c.FormValue("city")), university.City)
	university.State = coerce.Merge(validation.SanitizeString(c.FormValue("state")), university.State)
	university.Website = coerce.Merge(validation.SanitizeString(c.FormValue("website")), university.Website)
	university.About = coerce.Merge(c.FormValue("about"), university.About)
	if v := c.FormValue("position"); v != "" {
		university.Position = coerce.Int(v)
	}

	old := university
	if err := h.attachFiles(c, &university, &old); err != nil {
		return response.BadRequest(c, err.Error())
	}

	blocks := h.blocksFromForm(c,
		existingOrNew(university.Approvals),
		existingOrNew(university.Partners),
		existingOrNew(university.FinancialAid),
		existingOrNew(university.Rankings),
		existingOrNew(university.ExamPatterns))

	// Detach loaded associations so GORM does not double-save them; the
	// coordinator owns the block writes.
	university.Approvals = nil
	university.Partners = nil
	university.FinancialAid = nil
	university.Rankings = nil
	university.ExamPatterns = nil
	university.Reviews = nil

	if err := h.coordinator.Save(c.Context(), &university, blocks...); err != nil {
		if dup, constraint := database.IsUniqueViolation(err); dup {
			return response.ErrorWithMeta(c, fiber.StatusConflict,
				"Duplicate field value", fiber.Map{"constraint": constraint})
		}
		return response.InternalServerError(c, "Failed to update university: "+err.Error())
	}

	return response.SuccessWithMessage(c, "University updated successfully", university)
}

// attachFiles stores uploaded logo/banner/brochure files. When old is given
// a replaced file's predecessor is deleted best-effort.
func (h *UniversityHandler) attachFiles(c *fiber.Ctx, university *model.University, old *model.University) error {
	if file, err := c.FormFile("logo"); err == nil {
		url, err := storage.SaveUpload(c.Context(), h.files, "universities", file)
		if err != nil {
			return fmt.Errorf("failed to store logo: %w", err)
		}
		if old != nil {
			storage.DeleteQuietly(c.Context(), h.files, old.Logo)
		}
		university.Logo = url
	}

	if file, err := c.FormFile("banner"); err == nil {
		url, err := storage.SaveUpload(c.Context(), h.files, "universities", file)
		if err != nil {
			return fmt.Errorf("failed to store banner: %w", err)
		}
		if old != nil {
			storage.DeleteQuietly(c.Context(), h.files, old.Banner)
		}
		university.Banner = url
	}

	if file, err := c.FormFile("brochure"); err == nil {
		result, err := pdfvalidation.ValidatePDFFile(file, pdfvalidation.BrochureLimits)
		if err != nil {
			return fmt.Errorf("failed to validate brochure: %w", err)
		}
		if !result.Valid {
			return fmt.Errorf("%s", result.Error)
		}
		url, err := storage.SaveUpload(c.Context(), h.files, "brochures", file)
		if err != nil {
			return fmt.Errorf("failed to store brochure: %w", err)
		}
		if old != nil {
			storage.DeleteQuietly(c.Context(), h.files, old.Brochure)
		}
		university.Brochure = url
	}

	return nil
}

// existingOrNew keeps the loaded block for the merge base or starts a fresh
// one when the university never had it.
func existingOrNew[T any](block *T) *T {
	if block != nil {
		return block
	}
	return new(T)
}

// blocksFromForm merges the JSON-encoded child fields of the form onto the
// given base blocks. Malformed JSON leaves a block unchanged rather than
// failing the request.
func (h *UniversityHandler) blocksFromForm(c *fiber.Ctx,
	approvals *model.UniversityApprovals,
	partners *model.UniversityPartners,
	financialAid *model.UniversityFinancialAid,
	rankings *model.UniversityRankings,
	examPatterns *model.UniversityExamPatterns,
) []aggregate.Child {
	if v := c.FormValue("approvals_title"); v != "" {
		approvals.Title = v
	}
	if v := c.FormValue("approval_ids"); v != "" {
		approvals.ApprovalIDs = model.IDList(coerce.IDs(v))
	}

	if v := c.FormValue("partners_title"); v != "" {
		partners.Title = v
	}
	if v := c.FormValue("placement_partner_id"); v != "" {
		partners.PlacementIDs = model.IDList(coerce.IDs(v))
	}

	financialAid.Title = coerce.Merge(c.FormValue("financial_aid_title"), financialAid.Title)
	financialAid.Content = coerce.Merge(c.FormValue("financial_aid_content"), financialAid.Content)

	rankings.Title = coerce.Merge(c.FormValue("rankings_title"), rankings.Title)
	if v := c.FormValue("rankings_items"); v != "" {
		rankings.Items = []byte(coerce.JSONArray(v))
	}

	examPatterns.Title = coerce.Merge(c.FormValue("exam_patterns_title"), examPatterns.Title)
	examPatterns.Content = coerce.Merge(c.FormValue("exam_patterns_content"), examPatterns.Content)

	return []aggregate.Child{approvals, partners, financialAid, rankings, examPatterns}
}

// ToggleUniversity handles DELETE /api/v1/universities/:id — the idempotent
// delete ⇄ restore flip.
func (h *UniversityHandler) ToggleUniversity(c *fiber.Ctx) error {
	id := coerce.Uint(c.Params("id"))
	if id == 0 {
		return response.BadRequest(c, "Invalid university ID")
	}

	state, err := softdelete.Toggle(h.db, &model.University{}, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "University not found")
		}
		return response.InternalServerError(c, "Failed to toggle university")
	}

	return response.SuccessWithMessage(c, fmt.Sprintf("University %s", state), fiber.Map{"state": state})
}

// FilterByApproval handles GET /api/v1/universities/filter/approval/:id —
// universities whose denormalized approval list contains the given ID.
func (h *UniversityHandler) FilterByApproval(c *fiber.Ctx) error {
	id := coerce.Uint(c.Params("id"))
	if id == 0 {
		return response.BadRequest(c, "Invalid approval ID")
	}

	var universities []model.University
	err := h.db.
		Joins("JOIN university_approvals ON university_approvals.university_id = universities.id").
		Where("university_approvals.approval_ids @> ?", fmt.Sprintf("[%d]", id)).
		Find(&universities).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to filter universities")
	}

	return response.Success(c, universities)
}

// FilterByPlacement handles GET /api/v1/universities/filter/placement/:id
func (h *UniversityHandler) FilterByPlacement(c *fiber.Ctx) error {
	id := coerce.Uint(c.Params("id"))
	if id == 0 {
		return response.BadRequest(c, "Invalid placement ID")
	}

	var universities []model.University
	err := h.db.
		Joins("JOIN university_partners ON university_partners.university_id = universities.id").
		Where("university_partners.placement_ids @> ?", fmt.Sprintf("[%d]", id)).
		Find(&universities).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to filter universities")
	}

	return response.Success(c, universities)
}
