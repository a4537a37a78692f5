package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

var SupportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// SaveImage decodes an uploaded image, writes it under folder and a resized
// thumbnail under folder/thumb, and returns the stored file name.
func SaveImage(file multipart.File, header *multipart.FileHeader, folder string) (string, error) {
	mimeType := header.Header.Get("Content-Type")
	if !SupportedImageTypes[mimeType] {
		return "", fmt.Errorf("unsupported image type %q", mimeType)
	}

	img, err := imaging.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	fileName := GenerateID(16) + ".jpg"
	thumbDir := filepath.Join(folder, "thumb")
	if err := EnsureDir(folder); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := EnsureDir(thumbDir); err != nil {
		return "", fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	if err := imaging.Save(img, filepath.Join(folder, fileName)); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(thumbDir, fileName)); err != nil {
		return "", fmt.Errorf("failed to save thumbnail: %w", err)
	}

	return fileName, nil
}
