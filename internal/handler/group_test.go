package handler_test

import (
	"net/http"
	"testing"

	"github.com/TeamSorcerers/app-financeiro-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupCreateSeedsOwnerAndCategories(t *testing.T) {
	r, db := newTestRouter(t)

	owner := signUp(t, r, "Ana", "ana@example.com")
	groupID := createGroup(t, r, owner, "Casa")

	var member models.GroupMember
	require.NoError(t, db.First(&member, "group_id = ? AND user_id = ?", groupID, owner.ID).Error)
	assert.True(t, member.IsAdmin)

	var count int64
	require.NoError(t, db.Model(&models.GroupCategory{}).
		Where("group_id = ?", groupID).Count(&count).Error)
	assert.Equal(t, int64(len(models.DefaultGroupCategories)), count)
}

func TestGroupProjection(t *testing.T) {
	r, _ := newTestRouter(t)

	owner := signUp(t, r, "Ana", "ana@example.com")
	member := signUp(t, r, "Bruno", "bruno@example.com")
	groupID := createGroup(t, r, owner, "Viagem")
	join(t, r, owner, groupID, member)

	// paid income counts, unpaid expense does not
	rec := doJSON(r, http.MethodPost, "/api/transactions", owner.Token, map[string]any{
		"description": "Reembolso",
		"amount":      100.0,
		"type":        "income",
		"date":        "2026-08-01",
		"category":    "Rendas",
		"groupId":     groupID,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(r, http.MethodPost, "/api/transactions", member.Token, map[string]any{
		"description": "Hotel",
		"amount":      40.0,
		"type":        "expense",
		"date":        "2026-08-02",
		"category":    "Viagens",
		"groupId":     groupID,
		"isPaid":      false,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	group := getGroup(t, r, member, groupID)

	assert.Equal(t, owner.ID, group["ownerId"])
	assert.InDelta(t, 100.0, group["balance"], 0.001)

	memberIDs, _ := group["memberIds"].([]any)
	assert.Len(t, memberIDs, 2)
	adminIDs, _ := group["adminIds"].([]any)
	require.Len(t, adminIDs, 1)
	assert.Equal(t, owner.ID, adminIDs[0])

	txs, _ := group["transactions"].([]any)
	assert.Len(t, txs, 2)
}

func TestGroupGetRequiresMembership(t *testing.T) {
	r, _ := newTestRouter(t)

	owner := signUp(t, r, "Ana", "ana@example.com")
	intruso := signUp(t, r, "Carlos", "carlos@example.com")
	groupID := createGroup(t, r, owner, "Casa")

	rec := doJSON(r, http.MethodGet, "/api/groups/"+groupID, intruso.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(r, http.MethodGet, "/api/groups/inexistente", owner.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGroupUpdateAndDeleteOwnerOnly(t *testing.T) {
	r, db := newTestRouter(t)

	owner := signUp(t, r, "Ana", "ana@example.com")
	member := signUp(t, r, "Bruno", "bruno@example.com")
	groupID := createGroup(t, r, owner, "Casa")
	join(t, r, owner, groupID, member)

	rec := doForm(r, http.MethodPut, "/api/groups/"+groupID, member.Token,
		map[string]string{"name": "Casa Nova"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doForm(r, http.MethodPut, "/api/groups/"+groupID, owner.Token,
		map[string]string{"name": "Casa Nova"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(r, http.MethodDelete, "/api/groups/"+groupID, member.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(r, http.MethodDelete, "/api/groups/"+groupID, owner.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// cascade removed memberships too
	var count int64
	require.NoError(t, db.Model(&models.GroupMember{}).
		Where("group_id = ?", groupID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestInviteFlow(t *testing.T) {
	r, _ := newTestRouter(t)

	owner := signUp(t, r, "Ana", "ana@example.com")
	convidado := signUp(t, r, "Bruno", "bruno@example.com")
	fora := signUp(t, r, "Carlos", "carlos@example.com")
	groupID := createGroup(t, r, owner, "Casa")

	// non-members cannot invite
	rec := doJSON(r, http.MethodPost, "/api/groups/"+groupID+"/invite", fora.Token,
		map[string]string{"email": convidado.Email})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	inviteID := invite(t, r, owner, groupID, convidado.Email)

	// duplicate pending invite for the same email is rejected
	rec = doJSON(r, http.MethodPost, "/api/groups/"+groupID+"/invite", owner.Token,
		map[string]string{"email": convidado.Email})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Já existe um convite pendente para este email", decode(t, rec).Message)

	// the invite only shows up for the invited email
	rec = doJSON(r, http.MethodGet, "/api/invites", convidado.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	invites, _ := decode(t, rec).Data["invites"].([]any)
	assert.Len(t, invites, 1)

	rec = doJSON(r, http.MethodGet, "/api/invites", fora.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	invites, _ = decode(t, rec).Data["invites"].([]any)
	assert.Empty(t, invites)

	// only the invited user can accept
	rec = doJSON(r, http.MethodPost, "/api/invites/"+inviteID+"/accept", fora.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(r, http.MethodPost, "/api/invites/"+inviteID+"/accept", convidado.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	group := getGroup(t, r, convidado, groupID)
	memberIDs, _ := group["memberIds"].([]any)
	assert.Len(t, memberIDs, 2)

	// accepted invites are terminal
	rec = doJSON(r, http.MethodPost, "/api/invites/"+inviteID+"/accept", convidado.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Este convite já foi processado", decode(t, rec).Message)

	// inviting an existing member is a conflict
	rec = doJSON(r, http.MethodPost, "/api/groups/"+groupID+"/invite", owner.Token,
		map[string]string{"email": convidado.Email})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Este usuário já é membro do grupo", decode(t, rec).Message)
}

func TestInviteReject(t *testing.T) {
	r, _ := newTestRouter(t)

	owner := signUp(t, r, "Ana", "ana@example.com")
	convidado := signUp(t, r, "Bruno", "bruno@example.com")
	groupID := createGroup(t, r, owner, "Casa")

	inviteID := invite(t, r, owner, groupID, convidado.Email)

	rec := doJSON(r, http.MethodPost, "/api/invites/"+inviteID+"/reject", convidado.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	group := getGroup(t, r, owner, groupID)
	memberIDs, _ := group["memberIds"].([]any)
	assert.Len(t, memberIDs, 1)

	// rejected invites are terminal too
	rec = doJSON(r, http.MethodPost, "/api/invites/"+inviteID+"/accept", convidado.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAcceptInviteAlreadyMemberMerges(t *testing.T) {
	r, db := newTestRouter(t)

	owner := signUp(t, r, "Ana", "ana@example.com")
	member := signUp(t, r, "Bruno", "bruno@example.com")
	groupID := createGroup(t, r, owner, "Casa")
	join(t, r, owner, groupID, member)

	// a stale pending invite can still exist for someone who joined in
	// the meantime (e.g. raced with creation); seed one directly
	stale := models.GroupInvite{
		GroupID:      groupID,
		InvitedBy:    owner.ID,
		InvitedEmail: member.Email,
		Status:       models.InviteStatusPending,
	}
	require.NoError(t, db.Create(&stale).Error)

	rec := doJSON(r, http.MethodPost, "/api/invites/"+stale.ID+"/accept", member.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Você já é membro deste grupo", decode(t, rec).Data["message"])

	// the invite resolved, and no duplicate membership row appeared
	var fresh models.GroupInvite
	require.NoError(t, db.First(&fresh, "id = ?", stale.ID).Error)
	assert.Equal(t, models.InviteStatusAccepted, fresh.Status)

	var count int64
	require.NoError(t, db.Model(&models.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, member.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestMemberInviteAllowed(t *testing.T) {
	r, _ := newTestRouter(t)

	owner := signUp(t, r, "Ana", "ana@example.com")
	member := signUp(t, r, "Bruno", "bruno@example.com")
	novo := signUp(t, r, "Carlos", "carlos@example.com")
	groupID := createGroup(t, r, owner, "Casa")
	join(t, r, owner, groupID, member)

	// plain members can invite, not just admins
	join(t, r, member, groupID, novo)

	group := getGroup(t, r, novo, groupID)
	memberIDs, _ := group["memberIds"].([]any)
	assert.Len(t, memberIDs, 3)
}

func TestPromoteDemote(t *testing.T) {
	r, _ := newTestRouter(t)

	owner := signUp(t, r, "Ana", "ana@example.com")
	member := signUp(t, r, "Bruno", "bruno@example.com")
	groupID := createGroup(t, r, owner, "Casa")
	join(t, r, owner, groupID, member)

	promote := "/api/groups/" + groupID + "/members/" + member.ID + "/promote"
	demote := "/api/groups/" + groupID + "/members/" + member.ID + "/demote"

	// only the owner promotes
	rec := doJSON(r, http.MethodPost, promote, member.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(r, http.MethodPost, promote, owner.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// promoting twice is an error
	rec = doJSON(r, http.MethodPost, promote, owner.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Membro já é administrador", decode(t, rec).Message)

	group := getGroup(t, r, owner, groupID)
	adminIDs, _ := group["adminIds"].([]any)
	assert.Len(t, adminIDs, 2)

	// the owner cannot drop their own admin role
	rec = doJSON(r, http.MethodPost,
		"/api/groups/"+groupID+"/members/"+owner.ID+"/demote", owner.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(r, http.MethodPost, demote, owner.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(r, http.MethodPost, demote, owner.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Membro não é administrador", decode(t, rec).Message)

	// these routes are POST, matching the client contract
	rec = doJSON(r, http.MethodPut, promote, owner.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRemoveMember(t *testing.T) {
	r, _ := newTestRouter(t)

	owner := signUp(t, r, "Ana", "ana@example.com")
	member := signUp(t, r, "Bruno", "bruno@example.com")
	outro := signUp(t, r, "Carlos", "carlos@example.com")
	groupID := createGroup(t, r, owner, "Casa")
	join(t, r, owner, groupID, member)
	join(t, r, owner, groupID, outro)

	// plain members cannot remove anyone
	rec := doJSON(r, http.MethodDelete,
		"/api/groups/"+groupID+"/members/"+outro.ID, member.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// nobody removes the owner
	rec = doJSON(r, http.MethodDelete,
		"/api/groups/"+groupID+"/members/"+owner.ID, owner.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Não é possível remover o dono do grupo", decode(t, rec).Message)

	rec = doJSON(r, http.MethodDelete,
		"/api/groups/"+groupID+"/members/"+outro.ID, owner.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	group := getGroup(t, r, owner, groupID)
	memberIDs, _ := group["memberIds"].([]any)
	assert.Len(t, memberIDs, 2)

	// removed users lose access
	rec = doJSON(r, http.MethodGet, "/api/groups/"+groupID, outro.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLeaveGroup(t *testing.T) {
	r, _ := newTestRouter(t)

	owner := signUp(t, r, "Ana", "ana@example.com")
	member := signUp(t, r, "Bruno", "bruno@example.com")
	groupID := createGroup(t, r, owner, "Casa")
	join(t, r, owner, groupID, member)

	rec := doJSON(r, http.MethodPost, "/api/groups/"+groupID+"/leave", member.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	group := getGroup(t, r, owner, groupID)
	memberIDs, _ := group["memberIds"].([]any)
	assert.Len(t, memberIDs, 1)
}

func TestLeaveAsOwnerTransfersOwnership(t *testing.T) {
	r, _ := newTestRouter(t)

	owner := signUp(t, r, "Ana", "ana@example.com")
	member := signUp(t, r, "Bruno", "bruno@example.com")
	fora := signUp(t, r, "Carlos", "carlos@example.com")
	groupID := createGroup(t, r, owner, "Casa")
	join(t, r, owner, groupID, member)

	leave := "/api/groups/" + groupID + "/leave"

	// the owner must pick a successor
	rec := doJSON(r, http.MethodPost, leave, owner.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "É necessário escolher um novo dono antes de sair", decode(t, rec).Message)

	// the successor must be a member
	rec = doJSON(r, http.MethodPost, leave, owner.Token,
		map[string]string{"newOwnerId": fora.ID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(r, http.MethodPost, leave, owner.Token,
		map[string]string{"newOwnerId": member.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	group := getGroup(t, r, member, groupID)
	assert.Equal(t, member.ID, group["ownerId"])
	memberIDs, _ := group["memberIds"].([]any)
	assert.Len(t, memberIDs, 1)
	adminIDs, _ := group["adminIds"].([]any)
	require.Len(t, adminIDs, 1)
	assert.Equal(t, member.ID, adminIDs[0])

	// the former owner is out
	rec = doJSON(r, http.MethodGet, "/api/groups/"+groupID, owner.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGroupCategoryAdminOnly(t *testing.T) {
	r, db := newTestRouter(t)

	owner := signUp(t, r, "Ana", "ana@example.com")
	member := signUp(t, r, "Bruno", "bruno@example.com")
	groupID := createGroup(t, r, owner, "Casa")
	join(t, r, owner, groupID, member)

	var cat models.GroupCategory
	require.NoError(t, db.First(&cat, "group_id = ?", groupID).Error)

	path := "/api/groups/" + groupID + "/categories/" + cat.ID
	payload := map[string]string{"name": "Mercado", "emoji": "🛒", "type": "expense"}

	rec := doJSON(r, http.MethodPut, path, member.Token, payload)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(r, http.MethodPut, path, owner.Token, payload)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(r, http.MethodDelete, path, member.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(r, http.MethodDelete, path, owner.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(r, http.MethodDelete, path, owner.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
