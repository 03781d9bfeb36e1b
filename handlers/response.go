package handlers

import (
	"errors"
	"net/http"
	"strings"
	"sync"

	"chef-marketplace-api/apperrors"
	"chef-marketplace-api/logger"
	"chef-marketplace-api/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding rules used by the models.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("requesttype", func(fl validator.FieldLevel) bool {
			switch models.UserRole(strings.ToLower(strings.TrimSpace(fl.Field().String()))) {
			case models.RoleChef, models.RoleAdmin:
				return true
			}
			return false
		})
	})
}

func init() {
	RegisterValidators()
}

// respondError renders err as {code, message[, details]}. Errors that are not
// AppErrors are logged and hidden behind a generic 500.
func respondError(c *gin.Context, err error) {
	appErr, ok := apperrors.As(err)
	if !ok {
		logger.CtxError(c.Request.Context(), "request failed", err, "path", c.FullPath())
		appErr = apperrors.Internal(err)
	} else if appErr.HTTPCode >= http.StatusInternalServerError {
		logger.CtxError(c.Request.Context(), appErr.Message, appErr.Err, "path", c.FullPath())
	}

	body := gin.H{"code": appErr.Code, "message": appErr.Message}
	if appErr.Details != nil {
		body["details"] = appErr.Details
	}
	c.JSON(appErr.HTTPCode, body)
}

// bindError reports a malformed or invalid request body.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := map[string]string{}
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		respondError(c, apperrors.Validation("Invalid request body").WithDetails(fields))
		return
	}
	respondError(c, apperrors.Validation(err.Error()))
}
