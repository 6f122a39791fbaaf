package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hairday/internal/models/db_models"
	"hairday/internal/models/request_models"
	"hairday/pkg/utils"
)

func openaiClientFor(srv *httptest.Server) *openai.Client {
	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"
	return openai.NewClientWithConfig(cfg)
}

func TestConsultDeductsAndReturnsAdvice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Try a textured bob."}}]}`))
	}))
	defer srv.Close()

	store := newMemStore()
	userID := store.seedAccount(db_models.Account{Plan: db_models.PlanPro, TokenBalance: 1000})
	meter := NewMeterService(store, zap.NewNop())
	svc := NewStyleService(openaiClientFor(srv), meter, zap.NewNop())

	advice, balance, err := svc.Consult(context.Background(), userID,
		request_models.StyleConsultRequest{Prompt: "something low maintenance"})
	require.NoError(t, err)

	assert.Equal(t, "Try a textured bob.", advice)
	assert.Equal(t, int64(800), balance)
	assert.Len(t, store.logsByAction(db_models.ActionDeduct), 1)
	assert.Empty(t, store.logsByAction(db_models.ActionRefund))
}

func TestConsultRefundsWhenModelCallFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"overloaded"}}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	store := newMemStore()
	userID := store.seedAccount(db_models.Account{Plan: db_models.PlanPro, TokenBalance: 1000})
	meter := NewMeterService(store, zap.NewNop())
	svc := NewStyleService(openaiClientFor(srv), meter, zap.NewNop())

	_, _, err := svc.Consult(context.Background(), userID,
		request_models.StyleConsultRequest{Prompt: "anything"})
	require.Error(t, err)

	assert.Equal(t, int64(1000), store.accounts[userID].TokenBalance, "deduction was compensated")
	assert.Len(t, store.logsByAction(db_models.ActionDeduct), 1)
	assert.Len(t, store.logsByAction(db_models.ActionRefund), 1)
}

func TestConsultRejectsOverdrawBeforeCalling(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	store := newMemStore()
	userID := store.seedAccount(db_models.Account{Plan: db_models.PlanFree, TokenBalance: 50})
	meter := NewMeterService(store, zap.NewNop())
	svc := NewStyleService(openaiClientFor(srv), meter, zap.NewNop())

	_, _, err := svc.Consult(context.Background(), userID,
		request_models.StyleConsultRequest{Prompt: "anything"})

	var insufficient *utils.InsufficientTokensError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 0, calls, "model is never called without tokens")
	assert.Equal(t, int64(50), store.accounts[userID].TokenBalance)
}
