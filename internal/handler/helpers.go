package handler

import (
	"github.com/TeamSorcerers/app-financeiro-backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// currentUser returns the user placed in the context by AuthMiddleware,
// or nil when the request is unauthenticated.
func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get("currentUser")
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// resolveImagePath maps an image id to its stable serving path.
// Returns nil when the id is nil or the image row is gone.
func resolveImagePath(db *gorm.DB, photoID *string) *string {
	if photoID == nil {
		return nil
	}
	var img models.Image
	if err := db.First(&img, "id = ?", *photoID).Error; err != nil {
		return nil
	}
	return &img.Path
}
