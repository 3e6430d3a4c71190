package handler

import (
	"net/http"
	"strings"

	"github.com/TeamSorcerers/app-financeiro-backend/internal/models"
	"github.com/TeamSorcerers/app-financeiro-backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GroupHandler owns the group lifecycle: creation, the read projection,
// owner-only edits and deletion. Membership and role checks are always
// derived from current rows, never cached.
type GroupHandler struct {
	DB            *gorm.DB
	MaxImageBytes int64
}

func NewGroupHandler(db *gorm.DB, maxImageMB int64) *GroupHandler {
	return &GroupHandler{DB: db, MaxImageBytes: maxImageMB << 20}
}

// groupMembership returns the membership row for (groupID, userID), or
// nil when the user is not a member.
func groupMembership(db *gorm.DB, groupID, userID string) (*models.GroupMember, error) {
	var member models.GroupMember
	err := db.First(&member, "group_id = ? AND user_id = ?", groupID, userID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// loadGroupFull fetches a group with everything the projection needs.
func (h *GroupHandler) loadGroupFull(groupID string) (*models.Group, error) {
	var group models.Group
	err := h.DB.
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("joined_at ASC") }).
		Preload("Members.User").
		Preload("Categories").
		Preload("Transactions", func(db *gorm.DB) *gorm.DB { return db.Order("date DESC") }).
		First(&group, "id = ?", groupID).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// groupProjection assembles the externally visible group object:
// resolved photos, member list, categories, transactions and the
// aggregate balance. Read-only; reflects the rows as loaded.
func (h *GroupHandler) groupProjection(group *models.Group) gin.H {
	members := make([]gin.H, 0, len(group.Members))
	memberIDs := make([]string, 0, len(group.Members))
	adminIDs := make([]string, 0)
	for i := range group.Members {
		m := &group.Members[i]
		memberIDs = append(memberIDs, m.UserID)
		if m.IsAdmin {
			adminIDs = append(adminIDs, m.UserID)
		}
		members = append(members, gin.H{
			"id":       m.ID,
			"userId":   m.UserID,
			"isAdmin":  m.IsAdmin,
			"joinedAt": m.JoinedAt,
			"user": gin.H{
				"id":       m.User.ID,
				"name":     m.User.Name,
				"email":    m.User.Email,
				"photoUrl": resolveImagePath(h.DB, m.User.PhotoID),
			},
		})
	}

	categories := make([]gin.H, 0, len(group.Categories))
	for i := range group.Categories {
		cat := &group.Categories[i]
		categories = append(categories, gin.H{
			"id":    cat.ID,
			"name":  cat.Name,
			"emoji": cat.Emoji,
			"type":  cat.Type,
		})
	}

	transactions := make([]gin.H, 0, len(group.Transactions))
	for i := range group.Transactions {
		transactions = append(transactions, transactionResp(&group.Transactions[i]))
	}

	return gin.H{
		"id":           group.ID,
		"name":         group.Name,
		"description":  group.Description,
		"photoUrl":     resolveImagePath(h.DB, group.PhotoID),
		"ownerId":      group.OwnerID,
		"balance":      groupBalance(group.Transactions).InexactFloat64(),
		"memberIds":    memberIDs,
		"adminIds":     adminIDs,
		"members":      members,
		"categories":   categories,
		"transactions": transactions,
		"createdAt":    group.CreatedAt,
		"updatedAt":    group.UpdatedAt,
	}
}

// Create makes a group owned by the caller. The group row, the owner's
// admin membership and the default group categories are written in one
// transaction: either all exist afterwards, or none do.
func (h *GroupHandler) Create(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	description := strings.TrimSpace(c.PostForm("description"))
	if name == "" || description == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Dados inválidos")
		return
	}

	var photoID *string
	if fh, err := c.FormFile("photo"); err == nil {
		img, err := SaveImage(h.DB, fh, h.MaxImageBytes)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Formato de imagem inválido")
			return
		}
		photoID = &img.ID
	}

	group := models.Group{
		Name:        name,
		Description: description,
		PhotoID:     photoID,
		OwnerID:     user.ID,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&group).Error; err != nil {
			return err
		}
		owner := models.GroupMember{
			GroupID: group.ID,
			UserID:  user.ID,
			IsAdmin: true,
		}
		if err := tx.Create(&owner).Error; err != nil {
			return err
		}
		for _, dc := range models.DefaultGroupCategories {
			cat := models.GroupCategory{
				GroupID: group.ID,
				Name:    dc.Name,
				Emoji:   dc.Emoji,
				Type:    dc.Type,
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

	util.Success(c, util.Response{
		"group": gin.H{
			"id":          group.ID,
			"name":        group.Name,
			"description": group.Description,
			"photoUrl":    resolveImagePath(h.DB, group.PhotoID),
			"ownerId":     group.OwnerID,
			"createdAt":   group.CreatedAt,
		},
	})
}

// List projects every group the caller belongs to.
func (h *GroupHandler) List(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return
	}

	var memberships []models.GroupMember
	if err := h.DB.Where("user_id = ?", user.ID).Find(&memberships).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}

	out := make([]gin.H, 0, len(memberships))
	for _, m := range memberships {
		group, err := h.loadGroupFull(m.GroupID)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
			return
		}
		out = append(out, h.groupProjection(group))
	}

	util.Success(c, util.Response{"groups": out})
}

// Get projects a single group. Members only.
func (h *GroupHandler) Get(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return
	}

	group, err := h.loadGroupFull(c.Param("id"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Grupo não encontrado")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		}
		return
	}

	isMember := false
	for i := range group.Members {
		if group.Members[i].UserID == user.ID {
			isMember = true
			break
		}
	}
	if !isMember {
		util.Error(c, http.StatusForbidden, util.CodeForbidden, "Acesso negado")
		return
	}

	util.Success(c, util.Response{"group": h.groupProjection(group)})
}

// Update edits name/description/photo. Owner only.
func (h *GroupHandler) Update(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return
	}

	var group models.Group
	if err := h.DB.First(&group, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Grupo não encontrado")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		}
		return
	}

	if group.OwnerID != user.ID {
		util.Error(c, http.StatusForbidden, util.CodeForbidden, "Apenas o dono pode editar o grupo")
		return
	}

	if name := strings.TrimSpace(c.PostForm("name")); name != "" {
		group.Name = name
	}
	if description := strings.TrimSpace(c.PostForm("description")); description != "" {
		group.Description = description
	}
	if fh, err := c.FormFile("photo"); err == nil {
		img, err := SaveImage(h.DB, fh, h.MaxImageBytes)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Formato de imagem inválido")
			return
		}
		group.PhotoID = &img.ID
	}

	if err := h.DB.Save(&group).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}

	util.Success(c, util.Response{
		"group": gin.H{
			"id":          group.ID,
			"name":        group.Name,
			"description": group.Description,
			"photoUrl":    resolveImagePath(h.DB, group.PhotoID),
			"ownerId":     group.OwnerID,
			"updatedAt":   group.UpdatedAt,
		},
	})
}

// Delete removes the group and everything scoped to it. Owner only.
func (h *GroupHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Não autorizado")
		return
	}

	var group models.Group
	if err := h.DB.First(&group, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Grupo não encontrado")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		}
		return
	}

	if group.OwnerID != user.ID {
		util.Error(c, http.StatusForbidden, util.CodeForbidden, "Apenas o dono pode deletar o grupo")
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", group.ID).Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", group.ID).Delete(&models.GroupCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", group.ID).Delete(&models.GroupInvite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", group.ID).Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&group).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Erro interno do servidor")
		return
	}

	util.Success(c, util.Response{"message": "Grupo deletado com sucesso"})
}
