package handler

import (
	"net/http"
	"strings"

	"github.com/TeamSorcerers/app-financeiro-backend/internal/models"
	"github.com/TeamSorcerers/app-financeiro-backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CategoryHandler handles the caller's personal categories.
type CategoryHandler struct {
	DB *gorm.DB
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{DB: db}
}

type categoryReq struct {
	Name  string `json:"name" binding:"required"`
	Emoji string `json:"emoji" binding:"required"`
	Type  string `json:"type" binding:"required,oneof=income expense"`
}

func categoryResp(cat *models.Category) gin.H {
	return gin.H{
		"id":    cat.ID,
		"name":  cat.Name,
		"emoji": cat.Emoji,
		"type":  cat.Type,
	}
}

func (h *CategoryHandler) Create(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return
	}

	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Dados inválidos")
		return
	}

	cat := models.Category{
		UserID: user.ID,
		Name:   strings.TrimSpace(req.Name),
		Emoji:  req.Emoji,
		Type:   req.Type,
	}
	if err := h.DB.Create(&cat).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}

	util.Success(c, util.Response{"category": categoryResp(&cat)})
}

func (h *CategoryHandler) List(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return
	}

	var cats []models.Category
	if err := h.DB.Where("user_id = ?", user.ID).Order("created_at ASC").Find(&cats).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}

	out := make([]gin.H, 0, len(cats))
	for i := range cats {
		out = append(out, categoryResp(&cats[i]))
	}
	util.Success(c, util.Response{"categories": out})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return
	}

	var cat models.Category
	if err := h.DB.First(&cat, "id = ? AND user_id = ?", c.Param("id"), user.ID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Categoria não encontrada")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		}
		return
	}

	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Dados inválidos")
		return
	}

	cat.Name = strings.TrimSpace(req.Name)
	cat.Emoji = req.Emoji
	cat.Type = req.Type
	if err := h.DB.Save(&cat).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}

	util.Success(c, util.Response{"category": categoryResp(&cat)})
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return
	}

	res := h.DB.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).Delete(&models.Category{})
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Categoria não encontrada")
		return
	}

	util.Success(c, util.Response{"message": "Categoria excluída com sucesso"})
}
