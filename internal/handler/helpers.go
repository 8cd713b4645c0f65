package handler

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Strife-cyber/agro/internal/apierror"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, &apierror.Error{
			Kind:    apierror.KindValidation,
			Message: "malformed JSON: " + err.Error(),
		})
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.Validation(fields))
		return false
	}
	return true
}

// respondError translates any service error into the HTTP envelope.
// Internal causes stay server-side: apierror.Error never serializes Err.
func respondError(c *gin.Context, err error) {
	if e, ok := apierror.As(err); ok {
		c.JSON(e.HTTPStatus(), e)
		return
	}
	c.JSON(http.StatusInternalServerError, apierror.Internal(err))
}

// parseIDParam reads the :id path parameter and writes the error
// response itself when the value is not a UUID.
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, &apierror.Error{
			Kind:    apierror.KindValidation,
			Message: "invalid id parameter",
		})
		return uuid.Nil, false
	}
	return id, true
}
