package handler

import (
	"net/http"
	"strings"

	"github.com/TeamSorcerers/app-financeiro-backend/internal/models"
	"github.com/TeamSorcerers/app-financeiro-backend/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserHandler handles profile updates and user lookup.
type UserHandler struct {
	DB            *gorm.DB
	BcryptCost    int
	MaxImageBytes int64
}

func NewUserHandler(db *gorm.DB, bcryptCost int, maxImageMB int64) *UserHandler {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = 12
	}
	return &UserHandler{DB: db, BcryptCost: bcryptCost, MaxImageBytes: maxImageMB << 20}
}

// UpdateProfile applies a partial update (multipart form). Empty fields
// are left untouched.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return
	}

	updates := map[string]interface{}{}

	if name := strings.TrimSpace(c.PostForm("name")); name != "" {
		if len(name) < 2 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Nome deve ter pelo menos 2 caracteres")
			return
		}
		updates["name"] = name
	}

	if email := strings.ToLower(strings.TrimSpace(c.PostForm("email"))); email != "" && email != user.Email {
		if err := util.ValidateEmail(email); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "E-mail inválido")
			return
		}
		var count int64
		if err := h.DB.Model(&models.User{}).Where("email = ? AND id <> ?", email, user.ID).Count(&count).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
			return
		}
		if count > 0 {
			util.Error(c, http.StatusBadRequest, util.CodeConflict, "E-mail já cadastrado")
			return
		}
		updates["email"] = email
	}

	if password := c.PostForm("password"); password != "" {
		if len(password) < 6 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Senha deve ter pelo menos 6 caracteres")
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), h.BcryptCost)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
			return
		}
		updates["password_hash"] = string(hash)
	}

	if fh, err := c.FormFile("photo"); err == nil {
		img, err := SaveImage(h.DB, fh, h.MaxImageBytes)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Formato de imagem inválido")
			return
		}
		updates["photo_id"] = img.ID
	}

	if len(updates) > 0 {
		if err := h.DB.Model(user).Updates(updates).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
			return
		}
	}

	var fresh models.User
	if err := h.DB.First(&fresh, "id = ?", user.ID).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}

	util.Success(c, util.Response{
		"user": gin.H{
			"id":       fresh.ID,
			"name":     fresh.Name,
			"email":    fresh.Email,
			"photoUrl": resolveImagePath(h.DB, fresh.PhotoID),
		},
	})
}

// Search finds a user by exact email. Used by the invite flow to show
// who is being invited.
func (h *UserHandler) Search(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return
	}

	email := strings.ToLower(strings.TrimSpace(c.Query("email")))
	if email == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "E-mail é obrigatório")
		return
	}

	var found models.User
	if err := h.DB.First(&found, "email = ?", email).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Usuário não encontrado")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		}
		return
	}

	util.Success(c, util.Response{
		"user": gin.H{
			"id":       found.ID,
			"name":     found.Name,
			"email":    found.Email,
			"photoUrl": resolveImagePath(h.DB, found.PhotoID),
		},
	})
}
