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

// CardHandler handles the caller's cards.
type CardHandler struct {
	DB *gorm.DB
}

func NewCardHandler(db *gorm.DB) *CardHandler {
	return &CardHandler{DB: db}
}

type cardReq struct {
	Name    string   `json:"name" binding:"required"`
	Type    string   `json:"type" binding:"required,oneof=debit credit"`
	Balance float64  `json:"balance"`
	Limit   *float64 `json:"limit"`
}

func cardResp(card *models.Card) gin.H {
	var limit *float64
	if card.Limit != nil {
		v := card.Limit.InexactFloat64()
		limit = &v
	}
	return gin.H{
		"id":      card.ID,
		"name":    card.Name,
		"type":    card.Type,
		"balance": card.Balance.InexactFloat64(),
		"limit":   limit,
	}
}

func (h *CardHandler) Create(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return
	}

	var req cardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Dados inválidos")
		return
	}

	card := models.Card{
		UserID:  user.ID,
		Name:    strings.TrimSpace(req.Name),
		Type:    req.Type,
		Balance: decimal.NewFromFloat(req.Balance),
	}
	if req.Limit != nil {
		l := decimal.NewFromFloat(*req.Limit)
		card.Limit = &l
	}
	if err := h.DB.Create(&card).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}

	util.Success(c, util.Response{"card": cardResp(&card)})
}

func (h *CardHandler) List(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return
	}

	var cards []models.Card
	if err := h.DB.Where("user_id = ?", user.ID).Order("created_at ASC").Find(&cards).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}

	out := make([]gin.H, 0, len(cards))
	for i := range cards {
		out = append(out, cardResp(&cards[i]))
	}
	util.Success(c, util.Response{"cards": out})
}

func (h *CardHandler) Update(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return
	}

	var card models.Card
	if err := h.DB.First(&card, "id = ? AND user_id = ?", c.Param("id"), user.ID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Cartão não encontrado")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		}
		return
	}

	var req cardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Dados inválidos")
		return
	}

	card.Name = strings.TrimSpace(req.Name)
	card.Type = req.Type
	card.Balance = decimal.NewFromFloat(req.Balance)
	card.Limit = nil
	if req.Limit != nil {
		l := decimal.NewFromFloat(*req.Limit)
		card.Limit = &l
	}
	if err := h.DB.Save(&card).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}

	util.Success(c, util.Response{"card": cardResp(&card)})
}

func (h *CardHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return
	}

	res := h.DB.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).Delete(&models.Card{})
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Cartão não encontrado")
		return
	}

	util.Success(c, util.Response{"message": "Cartão removido com sucesso"})
}
