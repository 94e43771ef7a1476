package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// bindOptionalJSON decodes the request body onto dst. An empty body leaves
// dst untouched, so callers can pre-fill defaults.
func bindOptionalJSON(c *gin.Context, dst interface{}) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindBodyWith(dst, binding.JSON); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
