package handler

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/logvault/logvault/internal/pkg/apperrors"
)

const (
	defaultSkip  = 0
	defaultLimit = 10
)

// pageQuery is the skip/limit pair of the list endpoints.
type pageQuery struct {
	Skip  int `form:"skip,default=0" binding:"min=0"`
	Limit int `form:"limit,default=10" binding:"min=0"`
}

// FieldError is one entry of a validation failure's details.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// Validation errors report json/form names instead of Go field names.
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(wireName)
}

func wireName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return fld.Name
}

func bindPage(c *gin.Context) (pageQuery, error) {
	q := pageQuery{Skip: defaultSkip, Limit: defaultLimit}
	if err := c.ShouldBindQuery(&q); err != nil {
		return q, bindError(err)
	}
	return q, nil
}

func bindError(err error) *apperrors.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, FieldError{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()})
		}
		return apperrors.NewInvalidRequest("validation failed", details)
	}
	return apperrors.NewInvalidRequest("malformed request: "+err.Error(), nil)
}
