package lead

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/edulisting-api/model"
	"github.com/sahilchouksey/edulisting-api/services/geoip"
	"github.com/sahilchouksey/edulisting-api/services/otp"
	"github.com/sahilchouksey/edulisting-api/utils/coerce"
	"github.com/sahilchouksey/edulisting-api/utils/response"
	"github.com/sahilchouksey/edulisting-api/utils/validation"
	"gorm.io/gorm"
)

// LeadHandler handles enquiry submissions from the public site
type LeadHandler struct {
	db        *gorm.DB
	geo       *geoip.Client
	otp       *otp.Service
	validator *validation.Validator
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(db *gorm.DB, geo *geoip.Client, otpService *otp.Service) *LeadHandler {
	return &LeadHandler{
		db:        db,
		geo:       geo,
		otp:       otpService,
		validator: validation.NewValidator(),
	}
}

// CreateLeadRequest is the public enquiry payload
type CreateLeadRequest struct {
	Name     string `json:"name" form:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" form:"email" validate:"omitempty,email"`
	Mobile   string `json:"mobile" form:"mobile" validate:"required"`
	CourseID uint   `json:"course_id" form:"course_id"`
	Message  string `json:"message" form:"message" validate:"max=5000"`
}

// CreateLead handles POST /api/v1/leads. The lead is stored unverified and
// an OTP is dispatched to the mobile number; geo/device enrichment is
// best-effort and never fails the request.
func (h *LeadHandler) CreateLead(c *fiber.Ctx) error {
	var req CreateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		return response.ErrorWithMeta(c, fiber.StatusBadRequest,
			"Validation failed", validation.FormatValidationErrors(err))
	}

	mobile, ok := validation.ValidateMobile(req.Mobile)
	if !ok {
		return response.BadRequest(c, "Invalid mobile number")
	}

	location := h.geo.Lookup(c.Context(), c.IP())

	lead := model.Lead{
		Name:       validation.SanitizeString(req.Name),
		Email:      validation.SanitizeString(req.Email),
		Mobile:     mobile,
		CourseID:   req.CourseID,
		Message:    validation.SanitizeString(req.Message),
		IP:         c.IP(),
		City:       location.City,
		State:      location.State,
		DeviceType: geoip.DeviceType(c.Get("User-Agent")),
	}

	if err := h.db.Create(&lead).Error; err != nil {
		return response.InternalServerError(c, "Failed to save enquiry")
	}

	h.otp.Send(c.Context(), mobile)

	return response.Created(c, fiber.Map{
		"id":      lead.ID,
		"message": "Enquiry received. A verification code has been sent to your mobile.",
	})
}

// VerifyLead handles POST /api/v1/leads/verify: consumes the OTP and marks
// every pending lead for the mobile number as verified.
func (h *LeadHandler) VerifyLead(c *fiber.Ctx) error {
	var req struct {
		Mobile string `json:"mobile" form:"mobile"`
		Code   string `json:"code" form:"code"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	mobile, ok := validation.ValidateMobile(req.Mobile)
	if !ok {
		return response.BadRequest(c, "Invalid mobile number")
	}
	if req.Code == "" {
		return response.BadRequest(c, "Verification code is required")
	}

	if err := h.otp.Verify(mobile, req.Code); err != nil {
		switch err {
		case otp.ErrNotFound:
			return response.BadRequest(c, "No pending verification for this number")
		case otp.ErrInvalidCode:
			return response.BadRequest(c, "Incorrect verification code")
		default:
			return response.InternalServerError(c, "Failed to verify code")
		}
	}

	if err := h.db.Model(&model.Lead{}).
		Where("mobile = ? AND verified = false", mobile).
		Update("verified", true).Error; err != nil {
		return response.InternalServerError(c, "Failed to mark enquiry verified")
	}

	return response.SuccessWithMessage(c, "Mobile number verified", nil)
}

// ListLeads handles GET /api/v1/leads (admin)
func (h *LeadHandler) ListLeads(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	query := h.db.Model(&model.Lead{})

	if v := c.Query("verified"); v != "" {
		query = query.Where("verified = ?", v == "true")
	}
	if courseID := coerce.Uint(c.Query("course_id")); courseID != 0 {
		query = query.Where("course_id = ?", courseID)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ? OR mobile ILIKE ? OR email ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count leads")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var leads []model.Lead
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&leads).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch leads")
	}

	return response.Paginated(c, leads, pagination)
}

// DeleteLead handles DELETE /api/v1/leads/:id — a hard delete, leads carry
// personal data and must be removable for good.
func (h *LeadHandler) DeleteLead(c *fiber.Ctx) error {
	id := coerce.Uint(c.Params("id"))
	if id == 0 {
		return response.BadRequest(c, "Invalid lead ID")
	}

	result := h.db.Unscoped().Delete(&model.Lead{}, id)
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete lead")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Lead not found")
	}

	return response.SuccessWithMessage(c, "Lead deleted", nil)
}
