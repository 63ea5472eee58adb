package httpserver

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	"ecoshop/internal/domain"
	"github.com/gin-gonic/gin"
)

// looseInt decodes from a JSON number or a numeric string. Storefront
// clients send ids both ways.
type looseInt int64

func (v *looseInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = 0
		return nil
	}
	s := strings.Trim(string(data), `"`)
	if s == "" {
		*v = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return domain.Invalid("body", "%s is not an integer", string(data))
	}
	*v = looseInt(n)
	return nil
}

// pathID parses a positive integer path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid(name, "invalid %s %q", name, raw)
	}
	return id, nil
}

// bindJSON decodes the request body into dst. Decoding failures become
// validation errors unless they already are one.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return err
		}
		if errors.Is(err, io.EOF) {
			return domain.Invalid("body", "request body is required")
		}
		return domain.Invalid("body", "malformed JSON body")
	}
	return nil
}

func message(msg string) gin.H {
	return gin.H{"message": msg}
}
