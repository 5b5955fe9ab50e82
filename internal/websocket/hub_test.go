package websocket

import (
	"testing"
	"time"

	"edgebook/internal/models"
)

// ============================================================
// Unit Tests
// ============================================================

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub == nil {
		t.Fatal("NewHub returned nil")
	}

	if hub.ClientCount() != 0 {
		t.Errorf("expected 0 clients, got %d", hub.ClientCount())
	}

	if hub.DroppedMessages() != 0 {
		t.Errorf("expected 0 dropped messages, got %d", hub.DroppedMessages())
	}
}

func TestOriginChecker_Check(t *testing.T) {
	checker := &OriginChecker{
		allowedOrigins: map[string]struct{}{
			"http://localhost:3000": {},
			"https://example.com":   {},
		},
		allowAll: false,
	}

	tests := []struct {
		origin string
		want   bool
	}{
		{"", true},                       // пустой origin разрешен (curl)
		{"http://localhost:3000", true},  // в списке
		{"https://example.com", true},    // в списке
		{"http://evil.com", false},       // не в списке
		{"http://localhost:8080", false}, // не в списке
	}

	for _, tt := range tests {
		got := checker.Check(tt.origin)
		if got != tt.want {
			t.Errorf("Check(%q) = %v, want %v", tt.origin, got, tt.want)
		}
	}
}

func TestOriginChecker_AllowAll(t *testing.T) {
	checker := &OriginChecker{allowAll: true}

	origins := []string{
		"http://localhost:3000",
		"https://evil.com",
		"http://anything.example.org",
	}

	for _, origin := range origins {
		if !checker.Check(origin) {
			t.Errorf("allowAll=true but Check(%q) = false", origin)
		}
	}
}

func TestHub_BroadcastNonBlocking(t *testing.T) {
	hub := NewHub()
	// Run не запущен: канал заполнится и сообщения начнут отбрасываться,
	// но Broadcast не должен блокироваться
	for i := 0; i < 1000; i++ {
		hub.Broadcast(map[string]int{"i": i})
	}

	if hub.DroppedMessages() == 0 {
		t.Error("expected dropped messages with a full broadcast channel")
	}
}

func TestHub_Stop(t *testing.T) {
	hub := NewHub()

	done := make(chan struct{})
	go func() {
		hub.Run()
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	hub.Stop()

	select {
	case <-done:
		// Run() завершился
	case <-time.After(1 * time.Second):
		t.Error("Hub.Run() did not exit after Stop()")
	}
}

func TestMessageFactories(t *testing.T) {
	b := models.NewBankroll("default", 10000)

	msg := NewBankrollUpdateMessage(b.Snapshot())
	if msg.Type != MessageTypeBankrollUpdate {
		t.Errorf("Type = %q, want %q", msg.Type, MessageTypeBankrollUpdate)
	}
	if msg.Data == nil || msg.Data.CurrentBalance != 10000 {
		t.Error("bankroll snapshot not attached")
	}
	if msg.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}

	trade := &models.Trade{ID: 1, Status: models.TradeStatusPending}
	tm := NewTradeUpdateMessage(trade)
	if tm.Type != MessageTypeTradeUpdate {
		t.Errorf("Type = %q, want %q", tm.Type, MessageTypeTradeUpdate)
	}
	if tm.Data == nil || tm.Data.ID != 1 {
		t.Error("trade not attached")
	}
}

func TestBroadcastSerialization(t *testing.T) {
	hub := NewHub()

	b := models.NewBankroll("default", 10000)
	hub.BroadcastBankrollUpdate(b.Snapshot())

	select {
	case data := <-hub.broadcast:
		var decoded struct {
			Type string `json:"type"`
			Data struct {
				UserID string `json:"user_id"`
			} `json:"data"`
		}
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("broadcast payload is not valid JSON: %v", err)
		}
		if decoded.Type != string(MessageTypeBankrollUpdate) {
			t.Errorf("type = %q, want bankrollUpdate", decoded.Type)
		}
		if decoded.Data.UserID != "default" {
			t.Errorf("user_id = %q, want default", decoded.Data.UserID)
		}
	default:
		t.Fatal("no message queued on broadcast channel")
	}
}
