package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/TeamSorcerers/app-financeiro-backend/internal/config"
	"github.com/TeamSorcerers/app-financeiro-backend/internal/database"
	"github.com/TeamSorcerers/app-financeiro-backend/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// envelope is the JSON shape every endpoint responds with.
type envelope struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

type testUser struct {
	ID    string
	Email string
	Token string
}

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.Mode = gin.TestMode
	cfg.Database.Path = filepath.Join(t.TempDir(), "test.db")
	cfg.JWT.Secret = "test-secret-0123456789"
	cfg.JWT.Issuer = "app-financeiro-test"
	cfg.JWT.ExpireHours = 1
	cfg.Security.BcryptCost = 4
	cfg.Upload.MaxSizeMB = 1
	cfg.App.PageSize = 20

	db, err := database.Init(cfg.Database)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	return router.SetupRouter(cfg, db), db
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func doJSON(r *gin.Engine, method, path, token string, payload any) *httptest.ResponseRecorder {
	var body io.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func doForm(r *gin.Engine, method, path, token string, fields map[string]string) *httptest.ResponseRecorder {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		w.WriteField(k, v)
	}
	w.Close()

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func signUp(t *testing.T, r *gin.Engine, name, email string) testUser {
	t.Helper()
	rec := doForm(r, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	env := decode(t, rec)
	token, _ := env.Data["token"].(string)
	require.NotEmpty(t, token)
	user, _ := env.Data["user"].(map[string]any)
	require.NotNil(t, user)
	id, _ := user["id"].(string)
	require.NotEmpty(t, id)

	return testUser{ID: id, Email: email, Token: token}
}

func createGroup(t *testing.T, r *gin.Engine, owner testUser, name string) string {
	t.Helper()
	rec := doForm(r, http.MethodPost, "/api/groups", owner.Token, map[string]string{
		"name":        name,
		"description": "Despesas compartilhadas",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	env := decode(t, rec)
	group, _ := env.Data["group"].(map[string]any)
	require.NotNil(t, group)
	id, _ := group["id"].(string)
	require.NotEmpty(t, id)
	return id
}

// invite sends an invitation and returns the invite id.
func invite(t *testing.T, r *gin.Engine, from testUser, groupID, email string) string {
	t.Helper()
	rec := doJSON(r, http.MethodPost, "/api/groups/"+groupID+"/invite", from.Token,
		map[string]string{"email": email})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	env := decode(t, rec)
	inv, _ := env.Data["invite"].(map[string]any)
	require.NotNil(t, inv)
	id, _ := inv["id"].(string)
	require.NotEmpty(t, id)
	return id
}

// join runs the full invite+accept flow for a user.
func join(t *testing.T, r *gin.Engine, from testUser, groupID string, who testUser) {
	t.Helper()
	inviteID := invite(t, r, from, groupID, who.Email)
	rec := doJSON(r, http.MethodPost, "/api/invites/"+inviteID+"/accept", who.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func getGroup(t *testing.T, r *gin.Engine, who testUser, groupID string) map[string]any {
	t.Helper()
	rec := doJSON(r, http.MethodGet, "/api/groups/"+groupID, who.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	env := decode(t, rec)
	group, _ := env.Data["group"].(map[string]any)
	require.NotNil(t, group)
	return group
}
