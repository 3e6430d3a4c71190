package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/TeamSorcerers/app-financeiro-backend/internal/models"
	"github.com/TeamSorcerers/app-financeiro-backend/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler handles signup, signin and the current-user endpoint.
type AuthHandler struct {
	DB            *gorm.DB
	JWTSecret     string
	Issuer        string
	TokenTTL      time.Duration
	BcryptCost    int
	MaxImageBytes int64
}

func NewAuthHandler(db *gorm.DB, jwtSecret, issuer string, ttlHours int, bcryptCost int, maxImageMB int64) *AuthHandler {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = 12
	}
	return &AuthHandler{
		DB:            db,
		JWTSecret:     jwtSecret,
		Issuer:        issuer,
		TokenTTL:      time.Duration(ttlHours) * time.Hour,
		BcryptCost:    bcryptCost,
		MaxImageBytes: maxImageMB << 20,
	}
}

type signUpReq struct {
	Name     string `form:"name" binding:"required,min=2"`
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required,min=6"`
}

// SignUp registers a user with an optional profile photo (multipart
// form). The user row and its default categories are created in one
// transaction; a half-registered user with no categories cannot exist.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpReq
	if err := c.ShouldBind(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Dados inválidos")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := util.ValidateEmail(req.Email); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "E-mail inválido")
		return
	}

	var count int64
	if err := h.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, util.CodeConflict, "E-mail já cadastrado")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.BcryptCost)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}

	var photoID *string
	var photoURL *string
	if fh, err := c.FormFile("photo"); err == nil {
		img, err := SaveImage(h.DB, fh, h.MaxImageBytes)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Formato de imagem inválido")
			return
		}
		photoID = &img.ID
		photoURL = &img.Path
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		PhotoID:      photoID,
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		for _, dc := range models.DefaultUserCategories {
			cat := models.Category{
				UserID: user.ID,
				Name:   dc.Name,
				Emoji:  dc.Emoji,
				Type:   dc.Type,
			}
			if err := tx.Create(&cat).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, h.Issuer, user.ID, user.Email, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}

	util.Success(c, util.Response{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"name":     user.Name,
			"email":    user.Email,
			"photoUrl": photoURL,
		},
	})
}

type signInReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignIn authenticates by email and password.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Dados inválidos")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.DB.First(&user, "email = ?", req.Email).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "E-mail ou senha incorretos")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "E-mail ou senha incorretos")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, h.Issuer, user.ID, user.Email, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}

	util.Success(c, util.Response{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"name":     user.Name,
			"email":    user.Email,
			"photoUrl": resolveImagePath(h.DB, user.PhotoID),
		},
	})
}

// Me returns the current profile (requires AuthMiddleware).
func (h *AuthHandler) Me(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return
	}

	util.Success(c, util.Response{
		"user": gin.H{
			"id":        user.ID,
			"name":      user.Name,
			"email":     user.Email,
			"photoUrl":  resolveImagePath(h.DB, user.PhotoID),
			"createdAt": user.CreatedAt,
		},
	})
}
