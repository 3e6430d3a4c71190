package handler

import (
	"net/http"
	"strings"

	"github.com/TeamSorcerers/app-financeiro-backend/internal/models"
	"github.com/TeamSorcerers/app-financeiro-backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AccountHandler handles the caller's bank accounts.
type AccountHandler struct {
	DB *gorm.DB
}

func NewAccountHandler(db *gorm.DB) *AccountHandler {
	return &AccountHandler{DB: db}
}

type accountReq struct {
	Name    string  `json:"name" binding:"required"`
	Type    string  `json:"type" binding:"required,oneof=checking savings"`
	Balance float64 `json:"balance"`
}

func accountResp(a *models.BankAccount) gin.H {
	return gin.H{
		"id":      a.ID,
		"name":    a.Name,
		"type":    a.Type,
		"balance": a.Balance.InexactFloat64(),
	}
}

func (h *AccountHandler) Create(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return
	}

	var req accountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Dados inválidos")
		return
	}

	acc := models.BankAccount{
		UserID:  user.ID,
		Name:    strings.TrimSpace(req.Name),
		Type:    req.Type,
		Balance: decimal.NewFromFloat(req.Balance),
	}
	if err := h.DB.Create(&acc).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}

	util.Success(c, util.Response{"account": accountResp(&acc)})
}

func (h *AccountHandler) List(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return
	}

	var accs []models.BankAccount
	if err := h.DB.Where("user_id = ?", user.ID).Order("created_at ASC").Find(&accs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}

	out := make([]gin.H, 0, len(accs))
	for i := range accs {
		out = append(out, accountResp(&accs[i]))
	}
	util.Success(c, util.Response{"accounts": out})
}

func (h *AccountHandler) Update(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return
	}

	var acc models.BankAccount
	if err := h.DB.First(&acc, "id = ? AND user_id = ?", c.Param("id"), user.ID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Conta não encontrada")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		}
		return
	}

	var req accountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Dados inválidos")
		return
	}

	acc.Name = strings.TrimSpace(req.Name)
	acc.Type = req.Type
	acc.Balance = decimal.NewFromFloat(req.Balance)
	if err := h.DB.Save(&acc).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}

	util.Success(c, util.Response{"account": accountResp(&acc)})
}

func (h *AccountHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return
	}

	res := h.DB.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).Delete(&models.BankAccount{})
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Conta não encontrada")
		return
	}

	util.Success(c, util.Response{"message": "Conta removida com sucesso"})
}
