package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/dkeye/Meet/internal/app"
	"github.com/dkeye/Meet/internal/app/orch"
	"github.com/dkeye/Meet/internal/config"
	"github.com/dkeye/Meet/internal/core"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*gin.Engine, *orch.Orchestrator) {
	t.Helper()
	return setupWithStatic(t, t.TempDir())
}

func setupWithStatic(t *testing.T, staticPath string) (*gin.Engine, *orch.Orchestrator) {
	t.Helper()
	cfg, err := config.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	cfg.StaticPath = staticPath

	o := orch.New(app.NewRegistry(), app.NewSessions(), app.SimplePolicy{})
	return SetupRouter(context.Background(), cfg, o), o
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealth(t *testing.T) {
	r, _ := setup(t)
	w := get(r, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"OK","message":"Server is running"}`, w.Body.String())
}

func TestIndexServedFromStaticPath(t *testing.T) {
	r, _ := setupWithStatic(t, filepath.Join("..", "..", "..", "web"))
	w := get(r, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/ws/signal")
}

func TestClientTokenCookie(t *testing.T) {
	r, _ := setup(t)
	w := get(r, "/health")
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "MeetSessions", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
}

func TestRoomsEndpoints(t *testing.T) {
	r, o := setup(t)

	w := get(r, "/api/rooms")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"rooms":[]}`, w.Body.String())

	o.Registry.JoinRoom("lobby", "a", "Ann")
	o.Registry.JoinRoom("lobby", "b", "")

	w = get(r, "/api/rooms")
	assert.JSONEq(t, `{"rooms":[{"name":"lobby","member_count":2}]}`, w.Body.String())

	w = get(r, "/api/rooms/lobby")
	require.Equal(t, http.StatusOK, w.Code)
	var snap core.RoomSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, "lobby", string(snap.Name))
	require.Len(t, snap.Members, 2)
	assert.Equal(t, "Ann", snap.Members[0].DisplayName)

	w = get(r, "/api/rooms/nowhere")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestICEServers(t *testing.T) {
	r, _ := setup(t)
	w := get(r, "/api/ice-servers")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		ICEServers []struct {
			URLs []string `json:"urls"`
		} `json:"iceServers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.ICEServers, 1)
	assert.Equal(t, []string{"stun:stun.l.google.com:19302"}, body.ICEServers[0].URLs)
}
