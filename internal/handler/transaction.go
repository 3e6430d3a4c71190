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

// TransactionHandler handles personal and group-scoped transactions.
type TransactionHandler struct {
	DB *gorm.DB
}

func NewTransactionHandler(db *gorm.DB) *TransactionHandler {
	return &TransactionHandler{DB: db}
}

type installmentsReq struct {
	Total   int `json:"total" binding:"required,gt=0"`
	Current int `json:"current" binding:"required,gt=0"`
}

type transactionReq struct {
	Description       string           `json:"description" binding:"required"`
	Amount            float64          `json:"amount" binding:"required"`
	Type              string           `json:"type" binding:"required,oneof=income expense"`
	Date              string           `json:"date" binding:"required"`
	Category          string           `json:"category" binding:"required"`
	CategoryEmoji     *string          `json:"categoryEmoji"`
	PaymentMethod     *string          `json:"paymentMethod" binding:"omitempty,oneof=pix cash card bank"`
	PaymentMethodID   *string          `json:"paymentMethodId"`
	PaymentMethodName *string          `json:"paymentMethodName"`
	ScheduledDate     *string          `json:"scheduledDate"`
	IsPaid            *bool            `json:"isPaid"`
	Installments      *installmentsReq `json:"installments"`
	GroupID           *string          `json:"groupId"`
	UserName          *string          `json:"userName"`
}

// transactionResp is the externally visible transaction shape: amount
// coerced to a number, installment columns folded into one object when
// a total is present.
func transactionResp(t *models.Transaction) gin.H {
	var installments gin.H
	if t.InstallmentTotal != nil {
		current := 1
		if t.InstallmentCurrent != nil {
			current = *t.InstallmentCurrent
		}
		installments = gin.H{"total": *t.InstallmentTotal, "current": current}
	}
	return gin.H{
		"id":                t.ID,
		"userId":            t.UserID,
		"groupId":           t.GroupID,
		"description":       t.Description,
		"amount":            t.Amount.InexactFloat64(),
		"type":              t.Type,
		"date":              t.Date,
		"category":          t.Category,
		"categoryEmoji":     t.CategoryEmoji,
		"paymentMethod":     t.PaymentMethod,
		"paymentMethodId":   t.PaymentMethodID,
		"paymentMethodName": t.PaymentMethodName,
		"scheduledDate":     t.ScheduledDate,
		"isPaid":            t.IsPaid,
		"installments":      installments,
		"userName":          t.UserName,
	}
}

func (h *TransactionHandler) applyReq(t *models.Transaction, req *transactionReq) error {
	if err := util.ValidateAmount(req.Amount); err != nil {
		return err
	}
	date, err := util.ParseDate(req.Date)
	if err != nil {
		return err
	}

	t.Description = strings.TrimSpace(req.Description)
	t.Amount = decimal.NewFromFloat(req.Amount)
	t.Type = req.Type
	t.Date = date
	t.Category = req.Category
	t.CategoryEmoji = req.CategoryEmoji
	t.PaymentMethod = req.PaymentMethod
	t.PaymentMethodID = req.PaymentMethodID
	t.PaymentMethodName = req.PaymentMethodName
	t.UserName = req.UserName

	t.ScheduledDate = nil
	if req.ScheduledDate != nil && *req.ScheduledDate != "" {
		sd, err := util.ParseDate(*req.ScheduledDate)
		if err != nil {
			return err
		}
		t.ScheduledDate = &sd
	}

	t.IsPaid = true
	if req.IsPaid != nil {
		t.IsPaid = *req.IsPaid
	}

	t.InstallmentTotal = nil
	t.InstallmentCurrent = nil
	if req.Installments != nil {
		total := req.Installments.Total
		current := req.Installments.Current
		t.InstallmentTotal = &total
		t.InstallmentCurrent = &current
	}
	return nil
}

func (h *TransactionHandler) Create(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return
	}

	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Dados inválidos")
		return
	}

	// group transactions require membership
	if req.GroupID != nil {
		member, err := groupMembership(h.DB, *req.GroupID, user.ID)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
			return
		}
		if member == nil {
			util.Error(c, http.StatusForbidden, util.CodeForbidden, "Você não é membro deste grupo")
			return
		}
	}

	t := models.Transaction{UserID: user.ID, GroupID: req.GroupID}
	if err := h.applyReq(&t, &req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Dados inválidos")
		return
	}

	if err := h.DB.Create(&t).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}

	util.Success(c, util.Response{"transaction": transactionResp(&t)})
}

// List returns the caller's personal transactions, or a group's rows
// when the groupId query parameter is set (members only), newest first.
func (h *TransactionHandler) List(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return
	}

	var txs []models.Transaction
	if groupID := c.Query("groupId"); groupID != "" {
		member, err := groupMembership(h.DB, groupID, user.ID)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
			return
		}
		if member == nil {
			util.Error(c, http.StatusForbidden, util.CodeForbidden, "Você não é membro deste grupo")
			return
		}
		if err := h.DB.Where("group_id = ?", groupID).Order("date DESC").Find(&txs).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
			return
		}
	} else {
		if err := h.DB.Where("user_id = ? AND group_id IS NULL", user.ID).Order("date DESC").Find(&txs).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
			return
		}
	}

	out := make([]gin.H, 0, len(txs))
	for i := range txs {
		out = append(out, transactionResp(&txs[i]))
	}
	util.Success(c, util.Response{"transactions": out})
}

// loadVisible fetches a transaction the caller may touch: their own
// row, or a row of a group they belong to.
func (h *TransactionHandler) loadVisible(c *gin.Context, user *models.User) *models.Transaction {
	var t models.Transaction
	if err := h.DB.First(&t, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Transação não encontrada")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		}
		return nil
	}

	if t.UserID == user.ID {
		return &t
	}
	if t.GroupID != nil {
		member, err := groupMembership(h.DB, *t.GroupID, user.ID)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
			return nil
		}
		if member != nil {
			return &t
		}
	}

	util.Error(c, http.StatusForbidden, util.CodeForbidden, "Acesso negado")
	return nil
}

func (h *TransactionHandler) Get(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return
	}

	t := h.loadVisible(c, user)
	if t == nil {
		return
	}
	util.Success(c, util.Response{"transaction": transactionResp(t)})
}

func (h *TransactionHandler) Update(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return
	}

	t := h.loadVisible(c, user)
	if t == nil {
		return
	}

	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Dados inválidos")
		return
	}
	if err := h.applyReq(t, &req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Dados inválidos")
		return
	}

	if err := h.DB.Save(t).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}

	util.Success(c, util.Response{"transaction": transactionResp(t)})
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return
	}

	t := h.loadVisible(c, user)
	if t == nil {
		return
	}

	if err := h.DB.Delete(t).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}

	util.Success(c, util.Response{"message": "Transação removida com sucesso"})
}
