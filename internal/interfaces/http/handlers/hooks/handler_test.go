package hooks

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worklog/internal/application/worklog/usecases"
)

type stubTicketChanged struct {
	result *usecases.TicketChangedResult
	err    error
	cmd    usecases.TicketChangedCommand
}

func (s *stubTicketChanged) Execute(ctx context.Context, cmd usecases.TicketChangedCommand) (*usecases.TicketChangedResult, error) {
	s.cmd = cmd
	return s.result, s.err
}

func setupRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/hooks/ticket-changed", h.TicketChanged)
	return engine
}

func TestTicketChanged_Handler(t *testing.T) {
	stub := &stubTicketChanged{result: &usecases.TicketChangedResult{Stopped: true, Worker: "bob"}}
	router := setupRouter(NewHandler(stub))

	body, _ := json.Marshal(map[string]interface{}{
		"ticket_id":  5,
		"old_status": "assigned",
		"new_status": "closed",
		"when":       4800,
	})
	req := httptest.NewRequest(http.MethodPost, "/hooks/ticket-changed", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(5), stub.cmd.TicketID)
	assert.Equal(t, "assigned", stub.cmd.OldStatus)
	assert.Equal(t, "closed", stub.cmd.NewStatus)
	assert.Equal(t, int64(4800), stub.cmd.When)

	var resp struct {
		Success bool                          `json:"success"`
		Data    usecases.TicketChangedResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Stopped)
	assert.Equal(t, "bob", resp.Data.Worker)
}

func TestTicketChanged_Handler_InvalidBody(t *testing.T) {
	router := setupRouter(NewHandler(&stubTicketChanged{}))

	req := httptest.NewRequest(http.MethodPost, "/hooks/ticket-changed", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
