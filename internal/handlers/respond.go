package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/lifeos-app/lifeos-backend/internal/apperrors"
	"github.com/lifeos-app/lifeos-backend/internal/dto"
	"github.com/lifeos-app/lifeos-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// bindingErrorMessage turns a binding failure into a short human-readable
// message, unwrapping validator field errors where possible.
func bindingErrorMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			switch fe.Tag() {
			case "required":
				fields = append(fields, fmt.Sprintf("%s is required", fe.Field()))
			case "email":
				fields = append(fields, fmt.Sprintf("%s must be a valid email", fe.Field()))
			case "min":
				fields = append(fields, fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param()))
			case "len", "numeric":
				fields = append(fields, fmt.Sprintf("%s is malformed", fe.Field()))
			default:
				fields = append(fields, fmt.Sprintf("%s is invalid", fe.Field()))
			}
		}
		return strings.Join(fields, "; ")
	}
	return "Invalid request body"
}

// respondError maps service-layer errors to HTTP responses. This is the only
// place error taxonomy meets status codes.
func respondError(c *gin.Context, err error) {
	var needsReg *apperrors.NeedsRegistrationError
	var appErr *apperrors.AppError

	switch {
	case errors.As(err, &needsReg):
		c.JSON(http.StatusNotFound, dto.NeedsRegistrationResponse{
			Message:           "No account found for this phone number. Please register.",
			NeedsRegistration: true,
			Phone:             needsReg.Phone,
		})
	case errors.As(err, &appErr):
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
	case errors.Is(err, apperrors.ErrInvalidOrExpiredCode):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid or expired OTP"})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Account already exists"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	case errors.Is(err, apperrors.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid token"})
	case errors.Is(err, apperrors.ErrUnauthorized), errors.Is(err, apperrors.ErrForbidden):
		// Ownership violations surface as 401, matching the client's expectation.
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	case errors.Is(err, apperrors.ErrDeliveryFailure):
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to send email. Please try again."})
	default:
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("unhandled error in handler", "error", err.Error())
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

// mustUserID pulls the authenticated user ID from the context, aborting with
// 401 when the auth middleware did not run.
func mustUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}
