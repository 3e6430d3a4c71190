package handler

import (
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/TeamSorcerers/app-financeiro-backend/internal/models"
	"github.com/TeamSorcerers/app-financeiro-backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultMaxImageBytes = 5 << 20 // 5MB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// ImageHandler serves stored images.
type ImageHandler struct {
	DB *gorm.DB
}

func NewImageHandler(db *gorm.DB) *ImageHandler {
	return &ImageHandler{DB: db}
}

// SaveImage stores an uploaded image and returns its row. Identical
// bytes always map to the same row: the content checksum is the key.
func SaveImage(db *gorm.DB, fh *multipart.FileHeader, maxBytes int64) (*models.Image, error) {
	if maxBytes <= 0 {
		maxBytes = defaultMaxImageBytes
	}
	if fh.Size > maxBytes {
		return nil, fmt.Errorf("image too large: %d bytes", fh.Size)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("image too large: %d bytes", len(data))
	}

	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	if !allowedImageTypes[mimeType] {
		return nil, fmt.Errorf("unsupported image type: %s", mimeType)
	}

	sum := md5.Sum(data)
	checksum := hex.EncodeToString(sum[:])

	var existing models.Image
	if err := db.First(&existing, "checksum = ?", checksum).Error; err == nil {
		return &existing, nil
	} else if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("lookup image: %w", err)
	}

	img := models.Image{
		ID:       uuid.NewString(),
		Checksum: checksum,
		Data:     base64.StdEncoding.EncodeToString(data),
		MimeType: mimeType,
	}
	img.Path = "/api/images/" + img.ID

	if err := db.Create(&img).Error; err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}
	return &img, nil
}

// GetImage serves the raw bytes with the stored mime type. Content is
// immutable, so clients may cache forever.
func (h *ImageHandler) GetImage(c *gin.Context) {
	id := c.Param("id")

	var img models.Image
	if err := h.DB.First(&img, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Imagem não encontrada")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao carregar imagem")
		}
		return
	}

	data, err := base64.StdEncoding.DecodeString(img.Data)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro ao carregar imagem")
		return
	}

	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.Data(http.StatusOK, img.MimeType, data)
}
