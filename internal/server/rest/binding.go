package rest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// bindJSON decodes the body into dst. On failure it responds 400 with the
// names of the fields that failed validation and returns false.
func bindJSON(c *gin.Context, dst any, message string) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, jsonName(fe))
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": message, "fields": fields})
		return false
	}
	invalid(c, message)
	return false
}

// jsonName converts a struct field name such as SalaryRange into salary_range.
func jsonName(fe validator.FieldError) string {
	var b strings.Builder
	for i, r := range fe.Field() {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
