package dto

import (
	"fmt"
	"hotel/internal/domains/upload/model"
	"io"
	"mime/multipart"
)

// File is a multipart part read into memory, capped one byte past the size
// limit so oversized files are still detected.
type File struct {
	Name string
	Data []byte
}

func (f *File) FromHeader(header *multipart.FileHeader) error {
	src, err := header.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, model.MaxFileBytes+1))
	if err != nil {
		return fmt.Errorf("failed to read uploaded file: %w", err)
	}

	f.Name = header.Filename
	f.Data = data

	return nil
}

type DeleteRequest struct {
	PublicID string `json:"publicId"`
}

type UploadResponse struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

func (r *UploadResponse) FromModel(url string, img model.Image) {
	r.URL = url
	r.PublicID = img.PublicID
}

type UploadMultipleResponse struct {
	Files []UploadResponse `json:"files"`
}
