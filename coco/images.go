package coco

import (
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	annocmp "github.com/annotools/go-annocmp"
	// webp decoding for image.Decode, imaging registers the rest
	_ "github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// imageExtensions are the file types scanned for in an images directory
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tiff": true,
	".webp": true,
}

// ScanImages walks a directory tree and returns the paths of all image
// files found
func ScanImages(dir string) ([]string, error) {

	var found []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {

		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		if imageExtensions[strings.ToLower(filepath.Ext(path))] {
			found = append(found, path)
		}

		return nil
	})

	if err != nil {
		return nil, errors.Wrapf(err, "scanning images in %s", dir)
	}

	return found, nil
}

// ResolveImagePaths fills in the Path of each image record that can be
// located under the directory, trying the declared file name first and
// its basename second.  Returns the number of records resolved
func ResolveImagePaths(images map[int]*annocmp.ImageRecord, dir string) int {

	resolved := 0

	for _, rec := range images {

		candidates := []string{
			filepath.Join(dir, rec.FileName),
			filepath.Join(dir, filepath.Base(rec.FileName)),
		}

		for _, path := range candidates {
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				rec.Path = path
				resolved++
				break
			}
		}
	}

	return resolved
}

// LoadImage decodes the image file at path.  Format support covers the
// extensions in imageExtensions
func LoadImage(path string) (image.Image, error) {

	img, err := imaging.Open(path)

	if err != nil {
		return nil, errors.Wrapf(err, "loading image %s", path)
	}

	return img, nil
}

// Thumbnail returns the image scaled to the given width preserving aspect
// ratio, used by the viewer to serve zoomed frames
func Thumbnail(img image.Image, width int) image.Image {
	return imaging.Resize(img, width, 0, imaging.Lanczos)
}
