//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"money-tracker-go/internal/config"
	"money-tracker-go/internal/db"
	"money-tracker-go/internal/domain/ledger"
	profiledomain "money-tracker-go/internal/domain/profile"
	syncdomain "money-tracker-go/internal/domain/sync"
	trackerdomain "money-tracker-go/internal/domain/tracker"
	profilerepo "money-tracker-go/internal/repository/postgres/profile"
	syncrepo "money-tracker-go/internal/repository/postgres/sync"
	"money-tracker-go/internal/repository/snapshot"
	"money-tracker-go/internal/transport/httpserver"
	"money-tracker-go/internal/transport/httpserver/handler"
	"money-tracker-go/pkg/logger"
)

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
}

func setupE2E(t *testing.T) *testEnv {
	t.Helper()

	dsn := os.Getenv("E2E_DB_DSN")
	if dsn == "" {
		t.Skip("E2E_DB_DSN not set; skipping e2e tests")
	}

	log := logger.NewNop()
	cfg := config.Config{DB: config.DBConfig{DSN: dsn}}

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}
	if err := db.Migrate(dbConn, log); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := cleanDB(dbConn); err != nil {
		t.Fatalf("clean db: %v", err)
	}

	store, err := snapshot.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("snapshot store: %v", err)
	}

	verifier := profiledomain.BcryptVerifier{Cost: 4}
	profiles := profiledomain.NewService(profilerepo.NewPostgres(dbConn), verifier)
	tokens := profiledomain.NewTokenManager("e2e-secret", time.Hour)
	tracker := trackerdomain.NewService(
		ledger.NewReducer(),
		store,
		syncdomain.NewService(syncrepo.NewPostgres(dbConn)),
		verifier,
		trackerdomain.Preferences{Language: "en", Currency: "THB"},
		log,
	)

	handlers := handler.New(profiles, tokens, tracker, nil, nil, log)
	server := httptest.NewServer(httpserver.NewRouter(cfg, handlers, log))

	return &testEnv{server: server, db: dbConn}
}

func (e *testEnv) Close() {
	e.server.Close()
	sqlDB, err := e.db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}

func cleanDB(dbConn *gorm.DB) error {
	return dbConn.WithContext(context.Background()).Exec(
		"TRUNCATE TABLE spendings, incomes, obligations, assets, profiles CASCADE",
	).Error
}

func requestJSON(t *testing.T, client *http.Client, method, url, token string, payload interface{}) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	return resp, respBody
}

type loginResponse struct {
	Token   string `json:"token"`
	Created bool   `json:"created"`
	Profile struct {
		ID string `json:"id"`
	} `json:"profile"`
}

func login(t *testing.T, env *testEnv, userID, pin string) loginResponse {
	t.Helper()

	resp, body := requestJSON(t, env.server.Client(), http.MethodPost, env.server.URL+"/api/auth/login", "", map[string]string{"user_id": userID, "pin": pin})
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		t.Fatalf("login: expected success, got %d: %s", resp.StatusCode, body)
	}
	var out loginResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("login: decode: %v", err)
	}
	return out
}

func countRows(t *testing.T, dbConn *gorm.DB, table, profileID string) int64 {
	t.Helper()

	var count int64
	if err := dbConn.Table(table).Where("profile_id = ?", profileID).Count(&count).Error; err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return count
}

func TestE2ELoginCreatesProfileAndHashesPIN(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	first := login(t, env, "Alice", "1234")
	if !first.Created {
		t.Fatalf("expected first login to create profile")
	}

	var stored profiledomain.Profile
	if err := env.db.Where("id = ?", first.Profile.ID).First(&stored).Error; err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if stored.UserIDText != "alice" || stored.PinHash == "1234" || stored.PinHash == "" {
		t.Fatalf("expected normalized user id and hashed pin, got %+v", stored)
	}

	second := login(t, env, "alice", "1234")
	if second.Created || second.Profile.ID != first.Profile.ID {
		t.Fatalf("expected second login to reuse profile")
	}

	resp, _ := requestJSON(t, env.server.Client(), http.MethodPost, env.server.URL+"/api/auth/login", "", map[string]string{"user_id": "alice", "pin": "0000"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong pin, got %d", resp.StatusCode)
	}
}

func TestE2EPushIsFullReplace(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	session := login(t, env, "bob", "")
	client := env.server.Client()
	base := env.server.URL + "/api"

	var created []ledger.Income
	for _, name := range []string{"Salary", "Bonus"} {
		resp, body := requestJSON(t, client, http.MethodPost, base+"/incomes", session.Token, map[string]interface{}{
			"name": name, "amount": "1000", "frequency": "monthly", "date": "2026-03-01",
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create income: expected 201, got %d: %s", resp.StatusCode, body)
		}
		var income ledger.Income
		if err := json.Unmarshal(body, &income); err != nil {
			t.Fatalf("decode income: %v", err)
		}
		created = append(created, income)
	}

	resp, body := requestJSON(t, client, http.MethodPost, base+"/obligations", session.Token, map[string]interface{}{
		"name": "Phone", "type": "installment", "amount": "4200", "balance": "33600", "total_months": 10, "paid_months": 2,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create obligation: expected 201, got %d: %s", resp.StatusCode, body)
	}

	resp, body = requestJSON(t, client, http.MethodPost, base+"/sync/push", session.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("push: expected 200, got %d: %s", resp.StatusCode, body)
	}
	if got := countRows(t, env.db, "incomes", session.Profile.ID); got != 2 {
		t.Fatalf("expected 2 remote incomes, got %d", got)
	}
	if got := countRows(t, env.db, "obligations", session.Profile.ID); got != 1 {
		t.Fatalf("expected 1 remote obligation, got %d", got)
	}

	resp, _ = requestJSON(t, client, http.MethodDelete, base+"/incomes/"+created[1].ID, session.Token, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete income: expected 204, got %d", resp.StatusCode)
	}
	resp, body = requestJSON(t, client, http.MethodPost, base+"/sync/push", session.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("push: expected 200, got %d: %s", resp.StatusCode, body)
	}
	if got := countRows(t, env.db, "incomes", session.Profile.ID); got != 1 {
		t.Fatalf("expected deleted income to be pruned remotely, got %d rows", got)
	}

	resp, body = requestJSON(t, client, http.MethodPost, base+"/sync/pull", session.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("pull: expected 200, got %d: %s", resp.StatusCode, body)
	}
	var pulled struct {
		Records ledger.State `json:"records"`
	}
	if err := json.Unmarshal(body, &pulled); err != nil {
		t.Fatalf("decode pull: %v", err)
	}
	if len(pulled.Records.Incomes) != 1 || pulled.Records.Incomes[0].ID != created[0].ID {
		t.Fatalf("expected pulled income %s, got %+v", created[0].ID, pulled.Records.Incomes)
	}
	if len(pulled.Records.Obligations) != 1 {
		t.Fatalf("expected 1 pulled obligation, got %d", len(pulled.Records.Obligations))
	}
	balance := pulled.Records.Obligations[0].Balance
	if balance == nil || !balance.Equal(decimal.NewFromInt(33600)) {
		t.Fatalf("expected obligation balance 33600, got %v", balance)
	}
}

func TestE2ESameRecordIDIsScopedToProfile(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	alice := login(t, env, "alice", "")
	bob := login(t, env, "bob", "")
	svc := syncdomain.NewService(syncrepo.NewPostgres(env.db))
	ctx := context.Background()

	income := ledger.Income{ID: "1", Name: "Salary", Amount: decimal.NewFromInt(1000), Frequency: ledger.FrequencyMonthly, Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}
	if _, err := svc.SyncIncomes(ctx, bob.Profile.ID, []ledger.Income{income}); err != nil {
		t.Fatalf("sync bob: %v", err)
	}
	income.Name = "Freelance"
	if _, err := svc.SyncIncomes(ctx, alice.Profile.ID, []ledger.Income{income}); err != nil {
		t.Fatalf("sync alice: %v", err)
	}

	bobState, err := svc.FetchAll(ctx, bob.Profile.ID)
	if err != nil {
		t.Fatalf("fetch bob: %v", err)
	}
	if len(bobState.Incomes) != 1 || bobState.Incomes[0].Name != "Salary" {
		t.Fatalf("expected bob's income untouched, got %+v", bobState.Incomes)
	}

	if _, err := svc.SyncIncomes(ctx, alice.Profile.ID, nil); err != nil {
		t.Fatalf("sync alice empty: %v", err)
	}
	if got := countRows(t, env.db, "incomes", bob.Profile.ID); got != 1 {
		t.Fatalf("expected bob to keep 1 income, got %d", got)
	}
}

func TestE2EAmountScaleSurvivesRoundTrip(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	session := login(t, env, "carol", "")
	svc := syncdomain.NewService(syncrepo.NewPostgres(env.db))
	ctx := context.Background()

	amount := decimal.RequireFromString("100.005")
	spending := ledger.Spending{ID: "s-1", Name: "Coffee", Amount: amount, Category: "Food", Kind: ledger.SpendingKindNormal, Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}
	if _, err := svc.SyncSpendings(ctx, session.Profile.ID, []ledger.Spending{spending}); err != nil {
		t.Fatalf("sync spendings: %v", err)
	}

	state, err := svc.FetchAll(ctx, session.Profile.ID)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(state.Spendings) != 1 || !state.Spendings[0].Amount.Equal(amount) {
		t.Fatalf("expected amount 100.005, got %+v", state.Spendings)
	}
}
