package server

import (
	"image"
	"image/jpeg"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
)

func parseIntParam(c *gin.Context, name string) (int, error) {
	return strconv.Atoi(c.Param(name))
}

func parseIntQuery(c *gin.Context, name string) (int, error) {
	return strconv.Atoi(c.Query(name))
}

func encodeJPEG(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: 85})
}
