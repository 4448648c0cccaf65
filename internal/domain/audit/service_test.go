package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/matiasleandrokruk/folio/internal/domain/chatbot"
	"github.com/matiasleandrokruk/folio/internal/infra/eventbus"
	"github.com/matiasleandrokruk/folio/internal/infra/llm"
	"github.com/matiasleandrokruk/folio/internal/infra/sqlite"
)

// setupTestDB creates an in-memory database with migrations for testing
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sqlite.NewDB(sqlite.MemoryPath)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck

	if err := sqlite.MigrateUp(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

// TestLog_Success verifies that Log creates an audit event correctly
func TestLog_Success(t *testing.T) {
	service := NewAuditService(setupTestDB(t))
	ctx := context.Background()

	event := &AuditEvent{
		ActorType: ActorTypeAdmin,
		ActorID:   "admin",
		Action:    ActionAdminRequest,
		Details:   json.RawMessage(`{"path":"/api/v1/admin/cache"}`),
		Outcome:   OutcomeSuccess,
	}
	if err := service.Log(ctx, event); err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if event.ID == "" || event.CreatedAt.IsZero() {
		t.Fatal("Log must fill ID and CreatedAt")
	}

	retrieved, err := service.GetByID(ctx, event.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if retrieved.ActorType != ActorTypeAdmin || retrieved.ActorID != "admin" {
		t.Errorf("actor mismatch: got %s/%s", retrieved.ActorType, retrieved.ActorID)
	}
	if retrieved.Action != ActionAdminRequest {
		t.Errorf("Action mismatch: got %s, want %s", retrieved.Action, ActionAdminRequest)
	}
	if retrieved.Outcome != OutcomeSuccess {
		t.Errorf("Outcome mismatch: got %s, want %s", retrieved.Outcome, OutcomeSuccess)
	}
	if !strings.Contains(string(retrieved.Details), "/api/v1/admin/cache") {
		t.Errorf("Details mismatch: got %s", retrieved.Details)
	}
}

// TestLogWithDetails_Success tests the helper method
func TestLogWithDetails_Success(t *testing.T) {
	service := NewAuditService(setupTestDB(t))
	ctx := context.Background()

	err := service.LogWithDetails(ctx, ActorTypeAdmin, "admin", ActionAdminLogin,
		map[string]any{"remote": "127.0.0.1"}, OutcomeDenied)
	if err != nil {
		t.Fatalf("LogWithDetails failed: %v", err)
	}

	events, err := service.Recent(ctx, ActionAdminLogin, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	var details map[string]any
	if err := json.Unmarshal(events[0].Details, &details); err != nil {
		t.Fatalf("details not valid JSON: %v", err)
	}
	if details["remote"] != "127.0.0.1" {
		t.Errorf("details[remote] = %v", details["remote"])
	}
	if events[0].Outcome != OutcomeDenied {
		t.Errorf("Outcome = %s; want denied", events[0].Outcome)
	}
}

// TestLog_EmptyDetailsStoredAsObject verifies nil details are normalized to {}
func TestLog_EmptyDetailsStoredAsObject(t *testing.T) {
	service := NewAuditService(setupTestDB(t))
	ctx := context.Background()

	event := &AuditEvent{ActorType: ActorTypeSystem, Action: "system.start", Outcome: OutcomeSuccess}
	if err := service.Log(ctx, event); err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	got, err := service.GetByID(ctx, event.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if string(got.Details) != "{}" {
		t.Errorf("Details = %s; want {}", got.Details)
	}
}

// TestGetByID_NotFound verifies unknown IDs surface sql.ErrNoRows
func TestGetByID_NotFound(t *testing.T) {
	service := NewAuditService(setupTestDB(t))

	_, err := service.GetByID(context.Background(), "missing")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

// TestRecent_OrderingAndFilter verifies newest-first ordering, limits and action filter
func TestRecent_OrderingAndFilter(t *testing.T) {
	service := NewAuditService(setupTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		action := ActionChatExchange
		if i%2 == 1 {
			action = ActionAdminRequest
		}
		err := service.Log(ctx, &AuditEvent{
			ID:        fmt.Sprintf("evt-%d", i),
			ActorType: ActorTypeVisitor,
			Action:    action,
			Outcome:   OutcomeSuccess,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	all, err := service.Recent(ctx, "", 3)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(all) != 3 || all[0].ID != "evt-4" || all[2].ID != "evt-2" {
		t.Errorf("Recent(all, 3) = %v", ids(all))
	}

	chats, err := service.Recent(ctx, ActionChatExchange, 0)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if got := ids(chats); strings.Join(got, ",") != "evt-4,evt-2,evt-0" {
		t.Errorf("Recent(chat) = %v", got)
	}
}

// TestStart_ConsumesExchangeEvents verifies the bus consumer persists exchanges
func TestStart_ConsumesExchangeEvents(t *testing.T) {
	service := NewAuditService(setupTestDB(t))
	bus := eventbus.New()

	done := make(chan struct{})
	go func() {
		service.Start(context.Background(), bus)
		close(done)
	}()

	// wait for the subscription to exist before publishing
	waitFor(t, func() bool { return bus.Subscribers(chatbot.TopicExchange) == 1 })

	bus.Publish(chatbot.TopicExchange, "not an exchange event")

	bus.Publish(chatbot.TopicExchange, chatbot.ExchangeEvent{
		Provider:      llm.ProviderGroq,
		Model:         "llama-3.1-8b-instant",
		Source:        chatbot.SourceFallback,
		Reason:        "provider_error",
		MessageChars:  12,
		ResponseChars: 180,
		Latency:       250 * time.Millisecond,
		At:            time.Now().UTC(),
	})

	var events []*AuditEvent
	waitFor(t, func() bool {
		var err error
		events, err = service.Recent(context.Background(), ActionChatExchange, 10)
		return err == nil && len(events) == 1
	})

	if events[0].Outcome != OutcomeDegraded || events[0].ActorType != ActorTypeVisitor {
		t.Errorf("event = %+v", events[0])
	}
	var details map[string]any
	if err := json.Unmarshal(events[0].Details, &details); err != nil {
		t.Fatalf("details not valid JSON: %v", err)
	}
	if details["provider"] != "groq" || details["source"] != "fallback" || details["reason"] != "provider_error" {
		t.Errorf("details = %v", details)
	}
	if details["latency_ms"] != float64(250) {
		t.Errorf("latency_ms = %v; want 250", details["latency_ms"])
	}

	bus.Close()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start did not return after bus.Close")
	}
}

// TestStart_StopsOnContextCancel verifies the consumer exits with its context
func TestStart_StopsOnContextCancel(t *testing.T) {
	service := NewAuditService(setupTestDB(t))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		service.Start(ctx, eventbus.New())
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start did not return after cancel")
	}
}

func TestClampLimit(t *testing.T) {
	cases := map[int]int{0: DefaultListLimit, -3: DefaultListLimit, 10: 10, 10000: MaxListLimit}
	for in, want := range cases {
		if got := clampLimit(in); got != want {
			t.Errorf("clampLimit(%d) = %d; want %d", in, got, want)
		}
	}
}

func ids(events []*AuditEvent) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
