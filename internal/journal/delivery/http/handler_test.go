package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang-trade-journal/internal/journal/checklist"
	"golang-trade-journal/internal/journal/journaltest"
	"golang-trade-journal/internal/journal/repository"
	"golang-trade-journal/internal/journal/service"
	"golang-trade-journal/internal/journal/workspace"
	"golang-trade-journal/pkg/cache"
	"golang-trade-journal/pkg/logger"
	"golang-trade-journal/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	registry := workspace.Default()
	db := journaltest.NewDB(t, registry.All()...)
	log := logger.NewNop()
	c := cache.NewMemory(time.Minute)
	store := repository.NewCachedStore(repository.NewStore(db), c, time.Minute, log)

	trades := repository.NewTradeRepository(store)
	balances := repository.NewBalanceRepository(store)
	checklists := repository.NewChecklistRepository(store)

	checklistSvc := service.NewChecklistService(registry, checklists, c, service.ChecklistOptions{}, log)
	tradeSvc := service.NewTradeService(registry, trades, balances, checklists, checklistSvc, telegram.NewNoop(), log)

	e := echo.New()
	e.Validator = NewValidator()
	Handlers{
		Workspace:   NewWorkspaceHandler(service.NewWorkspaceService(registry), log),
		Checklist:   NewChecklistHandler(checklistSvc, log),
		Trade:       NewTradeHandler(tradeSvc, service.NewHistoryService(registry, trades, balances, checklists, time.UTC, 10, log), log),
		Balance:     NewBalanceHandler(service.NewBalanceService(registry, balances, 10, log), log),
		MissedTrade: NewMissedTradeHandler(service.NewMissedTradeService(registry, repository.NewMissedTradeRepository(store), time.UTC, log), log),
		Plan:        NewPlanHandler(service.NewPlanService(registry, repository.NewPlanRepository(store), log), log),
	}.RegisterRoutes(e)
	return e
}

func do(t *testing.T, e *echo.Echo, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *strings.Reader
	switch b := body.(type) {
	case nil:
		reader = strings.NewReader("")
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var out map[string]interface{}
	if strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func approve(t *testing.T, e *echo.Echo, ws string) string {
	t.Helper()
	answers := checklist.AllYes(checklist.ZoneGreen)
	rec, body := do(t, e, http.MethodPost, "/api/v1/workspaces/"+ws+"/checklist/approve", echo.Map{
		"responses": answers.Responses,
		"zone":      answers.Zone,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return body["token"].(string)
}

func forexTrade(token, risk string) echo.Map {
	return echo.Map{
		"approval_token": token,
		"instrument":     "eurusd",
		"direction":      "long",
		"entry_type":     "RE",
		"rule":           "Impulsive",
		"zone":           "Green",
		"stop_size":      "0.0025",
		"risk_amount":    risk,
	}
}

func TestHealthAndCatalogue(t *testing.T) {
	e := newServer(t)

	rec, body := do(t, e, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])

	rec, _ = do(t, e, http.MethodGet, "/api/v1/workspaces", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 3)

	rec, body = do(t, e, http.MethodGet, "/api/v1/workspaces/forex", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "forex", body["key"])

	rec, body = do(t, e, http.MethodGet, "/api/v1/workspaces/crypto", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, `Error: unknown workspace: "crypto"`, body["error"])
}

func TestFeatureDisabled(t *testing.T) {
	e := newServer(t)

	rec, body := do(t, e, http.MethodGet, "/api/v1/workspaces/options/missed-trades", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Error: feature disabled", body["error"])

	rec, _ = do(t, e, http.MethodGet, "/api/v1/workspaces/options/trades/risk-budget", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTradeFlow(t *testing.T) {
	e := newServer(t)
	base := "/api/v1/workspaces/forex"

	rec, body := do(t, e, http.MethodPost, base+"/balance", echo.Map{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Error: amount is required", body["error"])

	rec, _ = do(t, e, http.MethodPost, base+"/balance", `{"amount": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = do(t, e, http.MethodPost, base+"/balance", echo.Map{"amount": "10000"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Deposit", body["reason"])

	rec, _ = do(t, e, http.MethodPost, base+"/trades", forexTrade("", "10"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	token := approve(t, e, "forex")
	rec, body = do(t, e, http.MethodPost, base+"/trades", forexTrade(token, "50.01"))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "Error: Risk exceeds 0.5% limit (50.00)", body["error"])

	rec, body = do(t, e, http.MethodPost, base+"/trades", forexTrade(token, "50"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "EURUSD", body["instrument"])
	id := int64(body["id"].(float64))

	rec, _ = do(t, e, http.MethodGet, fmt.Sprintf("%s/trades/%d/checklist", base, id), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	closePath := fmt.Sprintf("%s/trades/%d/close", base, id)
	rec, body = do(t, e, http.MethodPost, closePath, echo.Map{"pnl": "-50", "exit_url": "not a url"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Error: exit_url must be a valid URL", body["error"])

	rec, body = do(t, e, http.MethodPost, closePath, echo.Map{"pnl": "-50"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	entry := body["balance_entry"].(map[string]interface{})
	assert.Equal(t, "9950", entry["balance"])

	rec, _ = do(t, e, http.MethodPost, closePath, echo.Map{"pnl": "10"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = do(t, e, http.MethodPost, base+"/trades/abc/close", echo.Map{"pnl": "10"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = do(t, e, http.MethodGet, base+"/history?status=all", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["closed"])

	rec, _ = do(t, e, http.MethodGet, base+"/trades?status=pending", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChecklistEndpoints(t *testing.T) {
	e := newServer(t)
	base := "/api/v1/workspaces/stocks/checklist"

	rec, body := do(t, e, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["sections"], 4)

	rec, body = do(t, e, http.MethodPost, base+"/evaluate", echo.Map{"zone": "Red"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "rejected", body["state"])
	assert.Equal(t, "Red Zone", body["failure_reason"])

	rec, _ = do(t, e, http.MethodPost, base+"/evaluate", echo.Map{"zone": "Purple"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, e, http.MethodPost, base+"/approve", echo.Map{"zone": "Green"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, body = do(t, e, http.MethodPost, base+"/attempts", echo.Map{"zone": "Red"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "failed", body["status"])

	rec, body = do(t, e, http.MethodGet, base+"/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["fails"])
}

func TestPlanEndpoints(t *testing.T) {
	e := newServer(t)
	base := "/api/v1/workspaces/options/plan"

	rec, body := do(t, e, http.MethodPut, base, echo.Map{"content": "Sell premium only above 30 IV rank."})
	require.Equal(t, http.StatusOK, rec.Code)
	id := body["id"]

	rec, body = do(t, e, http.MethodPut, base, echo.Map{"content": "Sell premium above 40 IV rank."})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, body["id"])

	rec, body = do(t, e, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Sell premium above 40 IV rank.", body["content"])
}
