package handler

import (
	"net/http"

	"github.com/TeamSorcerers/app-financeiro-backend/internal/models"
	"github.com/TeamSorcerers/app-financeiro-backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MemberHandler owns membership role changes, removal and leaving.
// Promote/demote are owner-only; removal is admin-or-owner; the owner
// can only exit by transferring ownership first.
type MemberHandler struct {
	DB *gorm.DB
}

func NewMemberHandler(db *gorm.DB) *MemberHandler {
	return &MemberHandler{DB: db}
}

func (h *MemberHandler) loadGroup(c *gin.Context) *models.Group {
	var group models.Group
	if err := h.DB.First(&group, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Grupo não encontrado")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		}
		return nil
	}
	return &group
}

func (h *MemberHandler) loadMember(c *gin.Context, groupID, userID string) *models.GroupMember {
	member, err := groupMembership(h.DB, groupID, userID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return nil
	}
	if member == nil {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Membro não encontrado no grupo")
		return nil
	}
	return member
}

// Promote grants the admin flag to a member. Owner only.
func (h *MemberHandler) Promote(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return
	}

	group := h.loadGroup(c)
	if group == nil {
		return
	}

	if group.OwnerID != user.ID {
		util.Error(c, http.StatusForbidden, util.CodeForbidden, "Apenas o dono do grupo pode promover membros a administrador")
		return
	}

	member := h.loadMember(c, group.ID, c.Param("memberId"))
	if member == nil {
		return
	}

	if member.IsAdmin {
		util.Error(c, http.StatusBadRequest, util.CodeConflict, "Membro já é administrador")
		return
	}

	if err := h.DB.Model(member).Update("is_admin", true).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}

	util.Success(c, util.Response{"message": "Membro promovido a administrador com sucesso"})
}

// Demote strips the admin flag. Owner only, and the owner may never
// demote themselves — that is what keeps the owner an admin at all
// times without a standing constraint.
func (h *MemberHandler) Demote(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return
	}

	group := h.loadGroup(c)
	if group == nil {
		return
	}

	if group.OwnerID != user.ID {
		util.Error(c, http.StatusForbidden, util.CodeForbidden, "Apenas o dono do grupo pode remover cargo de administrador")
		return
	}

	targetID := c.Param("memberId")
	if targetID == user.ID {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "O dono do grupo não pode remover seu próprio cargo de administrador")
		return
	}

	member := h.loadMember(c, group.ID, targetID)
	if member == nil {
		return
	}

	if !member.IsAdmin {
		util.Error(c, http.StatusBadRequest, util.CodeConflict, "Membro não é administrador")
		return
	}

	if err := h.DB.Model(member).Update("is_admin", false).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}

	util.Success(c, util.Response{"message": "Cargo de administrador removido com sucesso"})
}

// Remove expels a member. Admins and the owner may do this; the owner
// can never be removed through this path, only via leave-with-transfer.
func (h *MemberHandler) Remove(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return
	}

	group := h.loadGroup(c)
	if group == nil {
		return
	}

	actor, err := groupMembership(h.DB, group.ID, user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}
	isAdmin := actor != nil && actor.IsAdmin
	if !isAdmin && group.OwnerID != user.ID {
		util.Error(c, http.StatusForbidden, util.CodeForbidden, "Apenas administradores podem remover membros")
		return
	}

	targetID := c.Param("memberId")
	if targetID == group.OwnerID {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Não é possível remover o dono do grupo")
		return
	}

	member := h.loadMember(c, group.ID, targetID)
	if member == nil {
		return
	}

	if err := h.DB.Delete(member).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}

	util.Success(c, util.Response{"message": "Membro removido do grupo com sucesso"})
}

type leaveReq struct {
	NewOwnerID string `json:"newOwnerId"`
}

// Leave removes the caller's membership. The owner must hand the group
// to a current member first; the transfer, the promotion of the new
// owner (when needed) and the membership delete commit as one
// transaction, so the group is never observed without an admin owner.
func (h *MemberHandler) Leave(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return
	}

	group := h.loadGroup(c)
	if group == nil {
		return
	}

	caller, err := groupMembership(h.DB, group.ID, user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}
	if caller == nil {
		util.Error(c, http.StatusForbidden, util.CodeForbidden, "Você não é membro deste grupo")
		return
	}

	if group.OwnerID != user.ID {
		if err := h.DB.Delete(caller).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
			return
		}
		util.Success(c, util.Response{"message": "Você saiu do grupo com sucesso"})
		return
	}

	var req leaveReq
	if err := c.ShouldBindJSON(&req); err != nil || req.NewOwnerID == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "É necessário escolher um novo dono antes de sair")
		return
	}

	newOwner, err := groupMembership(h.DB, group.ID, req.NewOwnerID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}
	if newOwner == nil || newOwner.UserID == user.ID {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "O novo dono deve ser um membro do grupo")
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(group).Update("owner_id", newOwner.UserID).Error; err != nil {
			return err
		}
		if !newOwner.IsAdmin {
			if err := tx.Model(newOwner).Update("is_admin", true).Error; err != nil {
				return err
			}
		}
		// the departing owner's row goes last, after the transfer
		return tx.Delete(caller).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}

	util.Success(c, util.Response{"message": "Você saiu do grupo com sucesso"})
}
