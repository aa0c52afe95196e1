package helper

import (
	"sunnah-steps/models"

	"github.com/gin-gonic/gin"
	"gopkg.in/go-playground/validator.v9"
)

const InvalidBodyMessage = "Invalid request body"

// BindJSON decodes the body into req and validates its `validate` tags. On
// failure the error response is already written and false is returned.
func (u *HTTPHelper) BindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		u.SendBadRequest(c, InvalidBodyMessage, u.EmptyJsonMap())
		return false
	}

	if err := u.Validate.Struct(req); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			u.SendBadRequest(c, InvalidBodyMessage, u.EmptyJsonMap())
			return false
		}
		u.SendValidationError(c, ValidationMessage(verrs), verrs)
		return false
	}

	return true
}

// ValidationMessage picks the stable top-level message for a failed
// validation: missing fields win over malformed ones.
func ValidationMessage(verrs validator.ValidationErrors) string {
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return models.ErrMissingFields.Message
		}
	}
	return "Invalid request fields"
}
