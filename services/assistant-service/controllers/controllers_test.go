package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/corexathletics/storefront/services/assistant-service/controllers"
	"github.com/corexathletics/storefront/services/assistant-service/models"
	"github.com/corexathletics/storefront/services/assistant-service/routes"
	"github.com/corexathletics/storefront/services/assistant-service/services"
	apperrors "github.com/corexathletics/storefront/services/common/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockChatService struct {
	services.ChatService
	reply *models.ChatReply
	err   error
	got   models.ChatRequest
}

func (m *mockChatService) Chat(ctx context.Context, req models.ChatRequest) (*models.ChatReply, error) {
	m.got = req
	return m.reply, m.err
}

func (m *mockChatService) Samples() []string {
	return []string{"Which tops have moisture-wicking?"}
}

func newRouter(svc services.ChatService, perMinute, burst int) *gin.Engine {
	r := gin.New()
	routes.RegisterAssistantRoutes(r, controllers.NewAssistantController(svc), perMinute, burst)
	return r
}

func post(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/assistant/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestChatReturnsMessage(t *testing.T) {
	svc := &mockChatService{reply: &models.ChatReply{Message: "Try the Pro Tights."}}
	r := newRouter(svc, 0, 0)

	w := post(r, `{"messages":[{"role":"user","content":"tights?"}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Try the Pro Tights.", body["message"])
	require.Len(t, svc.got.Messages, 1)
	assert.Equal(t, "tights?", svc.got.Messages[0].Content)
}

func TestChatBadPayload(t *testing.T) {
	r := newRouter(&mockChatService{}, 0, 0)

	for _, body := range []string{`{}`, `not json`, `{"messages":"hi"}`} {
		w := post(r, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Contains(t, w.Body.String(), "Invalid request")
	}
}

func TestChatUpstreamErrorIsBadGateway(t *testing.T) {
	svc := &mockChatService{err: apperrors.BadGateway("Invalid API Key", nil)}
	r := newRouter(svc, 0, 0)

	w := post(r, `{"messages":[{"role":"user","content":"hi"}]}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"error":"Invalid API Key"}`, w.Body.String())
}

func TestChatRateLimited(t *testing.T) {
	svc := &mockChatService{reply: &models.ChatReply{Message: "ok"}}
	r := newRouter(svc, 1, 1)

	assert.Equal(t, http.StatusOK, post(r, `{"messages":[{"role":"user","content":"hi"}]}`).Code)
	assert.Equal(t, http.StatusTooManyRequests, post(r, `{"messages":[{"role":"user","content":"hi"}]}`).Code)
}

func TestSamples(t *testing.T) {
	r := newRouter(&mockChatService{}, 0, 0)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/assistant/samples", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"questions":["Which tops have moisture-wicking?"]}`, w.Body.String())
}
