package handler

import (
	"net/http"
	"strings"

	"github.com/TeamSorcerers/app-financeiro-backend/internal/models"
	"github.com/TeamSorcerers/app-financeiro-backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GroupCategoryHandler edits a group's category set. Admin members
// only; the owner qualifies transitively because the owner always
// carries the admin flag.
type GroupCategoryHandler struct {
	DB *gorm.DB
}

func NewGroupCategoryHandler(db *gorm.DB) *GroupCategoryHandler {
	return &GroupCategoryHandler{DB: db}
}

// requireAdmin resolves the caller's membership and rejects non-admins.
func (h *GroupCategoryHandler) requireAdmin(c *gin.Context, groupID, userID, msg string) bool {
	member, err := groupMembership(h.DB, groupID, userID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return false
	}
	if member == nil || !member.IsAdmin {
		util.Error(c, http.StatusForbidden, util.CodeForbidden, msg)
		return false
	}
	return true
}

func (h *GroupCategoryHandler) Update(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return
	}

	groupID := c.Param("id")
	if !h.requireAdmin(c, groupID, user.ID, "Apenas administradores podem editar categorias") {
		return
	}

	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Dados inválidos")
		return
	}

	var cat models.GroupCategory
	if err := h.DB.First(&cat, "id = ? AND group_id = ?", c.Param("categoryId"), groupID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Categoria não encontrada")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		}
		return
	}

	cat.Name = strings.TrimSpace(req.Name)
	cat.Emoji = req.Emoji
	cat.Type = req.Type
	if err := h.DB.Save(&cat).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}

	util.Success(c, util.Response{
		"category": gin.H{
			"id":    cat.ID,
			"name":  cat.Name,
			"emoji": cat.Emoji,
			"type":  cat.Type,
		},
	})
}

func (h *GroupCategoryHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return
	}

	groupID := c.Param("id")
	if !h.requireAdmin(c, groupID, user.ID, "Apenas administradores podem excluir categorias") {
		return
	}

	res := h.DB.Where("id = ? AND group_id = ?", c.Param("categoryId"), groupID).Delete(&models.GroupCategory{})
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
