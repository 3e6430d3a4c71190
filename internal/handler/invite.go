package handler

import (
	"net/http"
	"strings"

	"github.com/TeamSorcerers/app-financeiro-backend/internal/models"
	"github.com/TeamSorcerers/app-financeiro-backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// InviteHandler owns the invite lifecycle. Invites are addressed to an
// email (the invitee may not have an account yet) and are terminal once
// accepted or rejected.
type InviteHandler struct {
	DB *gorm.DB
}

func NewInviteHandler(db *gorm.DB) *InviteHandler {
	return &InviteHandler{DB: db}
}

type inviteReq struct {
	Email string `json:"email" binding:"required"`
}

// Create invites an email into a group. Any member may invite, not just
// admins. Guard order: group exists, caller is a member, email is not
// already a member, no pending invite for the same (group, email) pair.
func (h *InviteHandler) Create(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return
	}

	groupID := c.Param("id")

	var group models.Group
	if err := h.DB.First(&group, "id = ?", groupID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Grupo não encontrado")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		}
		return
	}

	member, err := groupMembership(h.DB, groupID, user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}
	if member == nil {
		util.Error(c, http.StatusForbidden, util.CodeForbidden, "Você não é membro deste grupo")
		return
	}

	var req inviteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Dados inválidos")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := util.ValidateEmail(email); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "E-mail inválido")
		return
	}

	// an email that already resolves to a member cannot be invited
	var invited models.User
	if err := h.DB.First(&invited, "email = ?", email).Error; err == nil {
		existing, err := groupMembership(h.DB, groupID, invited.ID)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
			return
		}
		if existing != nil {
			util.Error(c, http.StatusBadRequest, util.CodeConflict, "Este usuário já é membro do grupo")
			return
		}
	} else if err != gorm.ErrRecordNotFound {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}

	// at most one pending invite per (group, email)
	var pending int64
	if err := h.DB.Model(&models.GroupInvite{}).
		Where("group_id = ? AND invited_email = ? AND status = ?", groupID, email, models.InviteStatusPending).
		Count(&pending).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}
	if pending > 0 {
		util.Error(c, http.StatusBadRequest, util.CodeConflict, "Já existe um convite pendente para este email")
		return
	}

	invite := models.GroupInvite{
		GroupID:      groupID,
		InvitedBy:    user.ID,
		InvitedEmail: email,
		Status:       models.InviteStatusPending,
	}
	if err := h.DB.Create(&invite).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}

	util.Success(c, util.Response{
		"message": "Convite enviado com sucesso",
		"invite": gin.H{
			"id":           invite.ID,
			"groupId":      invite.GroupID,
			"invitedEmail": invite.InvitedEmail,
			"status":       invite.Status,
			"createdAt":    invite.CreatedAt,
		},
	})
}

// List returns the pending invites addressed to the caller's email.
func (h *InviteHandler) List(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return
	}

	var invites []models.GroupInvite
	if err := h.DB.Preload("Group").Preload("Inviter").
		Where("invited_email = ? AND status = ?", user.Email, models.InviteStatusPending).
		Find(&invites).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}

	out := make([]gin.H, 0, len(invites))
	for i := range invites {
		inv := &invites[i]
		out = append(out, gin.H{
			"id":           inv.ID,
			"groupId":      inv.GroupID,
			"groupName":    inv.Group.Name,
			"invitedBy":    inv.Inviter.Name,
			"invitedEmail": inv.InvitedEmail,
			"status":       inv.Status,
			"createdAt":    inv.CreatedAt,
			"updatedAt":    inv.UpdatedAt,
		})
	}

	util.Success(c, util.Response{"invites": out})
}

// loadPendingFor applies the shared accept/reject guards: the invite
// must exist, still be pending, and be addressed to the caller's email.
func (h *InviteHandler) loadPendingFor(c *gin.Context, user *models.User) *models.GroupInvite {
	var invite models.GroupInvite
	if err := h.DB.First(&invite, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Convite não encontrado")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		}
		return nil
	}

	if invite.Status != models.InviteStatusPending {
		util.Error(c, http.StatusBadRequest, util.CodeConflict, "Este convite já foi processado")
		return nil
	}

	if !strings.EqualFold(user.Email, invite.InvitedEmail) {
		util.Error(c, http.StatusForbidden, util.CodeForbidden, "Este convite não é para você")
		return nil
	}

	return &invite
}

// Accept joins the caller to the group and resolves the invite. When
// the caller is already a member the invite is just marked accepted —
// no duplicate membership row. The membership insert and the status
// flip commit together.
func (h *InviteHandler) Accept(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return
	}

	invite := h.loadPendingFor(c, user)
	if invite == nil {
		return
	}

	alreadyMember := false
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		existing, err := groupMembership(tx, invite.GroupID, user.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			member := models.GroupMember{
				GroupID: invite.GroupID,
				UserID:  user.ID,
				IsAdmin: false,
			}
			if err := tx.Create(&member).Error; err != nil {
				return err
			}
		} else {
			alreadyMember = true
		}
		return tx.Model(invite).Update("status", models.InviteStatusAccepted).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}

	if alreadyMember {
		util.Success(c, util.Response{"message": "Você já é membro deste grupo"})
		return
	}
	util.Success(c, util.Response{"message": "Convite aceito com sucesso"})
}

// Reject resolves the invite with no membership side effect.
func (h *InviteHandler) Reject(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return
	}

	invite := h.loadPendingFor(c, user)
	if invite == nil {
		return
	}

	if err := h.DB.Model(invite).Update("status", models.InviteStatusRejected).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}

	util.Success(c, util.Response{"message": "Convite rejeitado"})
}
