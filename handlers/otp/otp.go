package otp

import (
	"github.com/gofiber/fiber/v2"
	otpservice "github.com/sahilchouksey/edulisting-api/services/otp"
	"github.com/sahilchouksey/edulisting-api/utils/response"
	"github.com/sahilchouksey/edulisting-api/utils/validation"
)

// OTPHandler handles mobile verification requests
type OTPHandler struct {
	otp *otpservice.Service
}

// NewOTPHandler creates a new OTP handler
func NewOTPHandler(otp *otpservice.Service) *OTPHandler {
	return &OTPHandler{otp: otp}
}

// SendOTP handles POST /api/v1/otp/send. Requesting a fresh code replaces
// any pending code for the number.
func (h *OTPHandler) SendOTP(c *fiber.Ctx) error {
	var req struct {
		Mobile string `json:"mobile" form:"mobile"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	mobile, ok := validation.ValidateMobile(req.Mobile)
	if !ok {
		return response.BadRequest(c, "Invalid mobile number")
	}

	h.otp.Send(c.Context(), mobile)

	return response.SuccessWithMessage(c, "Verification code sent", nil)
}

// VerifyOTP handles POST /api/v1/otp/verify. A code verifies exactly once;
// replays and expired codes are rejected.
func (h *OTPHandler) VerifyOTP(c *fiber.Ctx) error {
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
		case otpservice.ErrNotFound:
			return response.BadRequest(c, "No pending verification for this number")
		case otpservice.ErrInvalidCode:
			return response.BadRequest(c, "Incorrect verification code")
		default:
			return response.InternalServerError(c, "Failed to verify code")
		}
	}

	return response.SuccessWithMessage(c, "Mobile number verified", fiber.Map{"verified": true})
}
