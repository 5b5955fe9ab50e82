package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"edgebook/internal/models"
	"edgebook/internal/service"

	"github.com/gorilla/mux"
)

// ============ TradeHandler Tests ============

func placeBetBody(t *testing.T) *bytes.Reader {
	t.Helper()

	body := map[string]interface{}{
		"sport":     "nba",
		"bet_type":  "spread",
		"selection": "Lakers",
		"odds":      -110,
		"stake":     100,
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	return bytes.NewReader(jsonBody)
}

func TestTradeHandler_PlaceBet(t *testing.T) {
	t.Run("successfully places bet", func(t *testing.T) {
		mockBankroll := NewMockBankrollService()
		handler := NewTradeHandler(mockBankroll, NewMockSettlementService())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/bets", placeBetBody(t))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		handler.PlaceBet(w, req)

		if w.Code != http.StatusCreated {
			t.Errorf("expected status %d, got %d", http.StatusCreated, w.Code)
		}

		var response PlaceBetResponse
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if response.Trade == nil || response.Trade.Selection != "Lakers" {
			t.Errorf("expected trade with selection Lakers, got %+v", response.Trade)
		}
		if response.Bankroll == nil {
			t.Error("response should contain bankroll snapshot")
		}
	})

	t.Run("passes user id from header", func(t *testing.T) {
		mockBankroll := NewMockBankrollService()
		handler := NewTradeHandler(mockBankroll, NewMockSettlementService())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/bets", placeBetBody(t))
		req.Header.Set("X-User-ID", "alice")
		w := httptest.NewRecorder()

		handler.PlaceBet(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
		}
		if mockBankroll.trades[1].UserID != "alice" {
			t.Errorf("expected trade for user alice, got %q", mockBankroll.trades[1].UserID)
		}
	})

	t.Run("returns 400 on invalid JSON", func(t *testing.T) {
		handler := NewTradeHandler(NewMockBankrollService(), NewMockSettlementService())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/bets", bytes.NewReader([]byte("{not json")))
		w := httptest.NewRecorder()

		handler.PlaceBet(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
	})

	t.Run("maps validation errors to 400", func(t *testing.T) {
		tests := []struct {
			name string
			err  error
			code string
		}{
			{"invalid stake", service.ErrInvalidStake, "invalid_stake"},
			{"invalid odds", service.ErrInvalidOdds, "invalid_odds"},
			{"insufficient balance", service.ErrInsufficientBalance, "insufficient_balance"},
			{"invalid bet type", service.ErrInvalidBetType, "invalid_bet_type"},
			{"empty selection", service.ErrEmptySelection, "empty_selection"},
			{"empty sport", service.ErrEmptySport, "empty_sport"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				mockBankroll := NewMockBankrollService()
				mockBankroll.placeErr = tt.err
				handler := NewTradeHandler(mockBankroll, NewMockSettlementService())

				req := httptest.NewRequest(http.MethodPost, "/api/v1/bets", placeBetBody(t))
				w := httptest.NewRecorder()

				handler.PlaceBet(w, req)

				if w.Code != http.StatusBadRequest {
					t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
				}

				var response ErrorResponse
				if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if response.Code != tt.code {
					t.Errorf("expected code %q, got %q", tt.code, response.Code)
				}
			})
		}
	})

	t.Run("returns 500 on storage error", func(t *testing.T) {
		mockBankroll := NewMockBankrollService()
		mockBankroll.placeErr = ErrMockDatabase
		handler := NewTradeHandler(mockBankroll, NewMockSettlementService())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/bets", placeBetBody(t))
		w := httptest.NewRecorder()

		handler.PlaceBet(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}
	})
}

func TestTradeHandler_GetBets(t *testing.T) {
	t.Run("returns empty array instead of null", func(t *testing.T) {
		handler := NewTradeHandler(NewMockBankrollService(), NewMockSettlementService())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/bets", nil)
		w := httptest.NewRecorder()

		handler.GetBets(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
		}
		if body := w.Body.String(); body[0] != '[' {
			t.Errorf("expected JSON array, got %q", body)
		}
	})

	t.Run("filters by status", func(t *testing.T) {
		mockBankroll := NewMockBankrollService()
		handler := NewTradeHandler(mockBankroll, NewMockSettlementService())

		placeReq := httptest.NewRequest(http.MethodPost, "/api/v1/bets", placeBetBody(t))
		handler.PlaceBet(httptest.NewRecorder(), placeReq)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/bets?status=pending", nil)
		w := httptest.NewRecorder()

		handler.GetBets(w, req)

		var trades []*models.Trade
		if err := json.NewDecoder(w.Body).Decode(&trades); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(trades) != 1 {
			t.Errorf("expected 1 pending trade, got %d", len(trades))
		}

		req = httptest.NewRequest(http.MethodGet, "/api/v1/bets?status=won", nil)
		w = httptest.NewRecorder()

		handler.GetBets(w, req)

		trades = nil
		if err := json.NewDecoder(w.Body).Decode(&trades); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(trades) != 0 {
			t.Errorf("expected no won trades, got %d", len(trades))
		}
	})

	t.Run("returns 400 on invalid limit", func(t *testing.T) {
		handler := NewTradeHandler(NewMockBankrollService(), NewMockSettlementService())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/bets?limit=abc", nil)
		w := httptest.NewRecorder()

		handler.GetBets(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
	})
}

func TestTradeHandler_GetOpenBets(t *testing.T) {
	t.Run("returns only pending bets", func(t *testing.T) {
		mockBankroll := NewMockBankrollService()
		handler := NewTradeHandler(mockBankroll, NewMockSettlementService())

		placeReq := httptest.NewRequest(http.MethodPost, "/api/v1/bets", placeBetBody(t))
		handler.PlaceBet(httptest.NewRecorder(), placeReq)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/bets/open", nil)
		w := httptest.NewRecorder()

		handler.GetOpenBets(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
		}

		var trades []*models.Trade
		if err := json.NewDecoder(w.Body).Decode(&trades); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(trades) != 1 || trades[0].Status != models.TradeStatusPending {
			t.Errorf("expected 1 pending trade, got %+v", trades)
		}
	})

	t.Run("returns 500 on storage error", func(t *testing.T) {
		mockBankroll := NewMockBankrollService()
		mockBankroll.getErr = ErrMockDatabase
		handler := NewTradeHandler(mockBankroll, NewMockSettlementService())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/bets/open", nil)
		w := httptest.NewRecorder()

		handler.GetOpenBets(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
		}
	})
}

// settleRequest формирует запрос на расчет через mux router, чтобы
// path-переменная {id} была доступна handler'у
func settleRequest(t *testing.T, handler *TradeHandler, id, body string) *httptest.ResponseRecorder {
	t.Helper()

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/bets/{id}/settle", handler.SettleBet).Methods("POST")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bets/"+id+"/settle", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestTradeHandler_SettleBet(t *testing.T) {
	t.Run("successfully settles bet", func(t *testing.T) {
		mockSettlement := NewMockSettlementService()
		handler := NewTradeHandler(NewMockBankrollService(), mockSettlement)

		w := settleRequest(t, handler, "1", `{"result":"won","result_score":"110-104"}`)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
		}
		if mockSettlement.lastID != 1 {
			t.Errorf("expected settlement for trade 1, got %d", mockSettlement.lastID)
		}

		var result models.SettlementResult
		if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if result.NewBalance != 10090.91 {
			t.Errorf("expected new balance 10090.91, got %v", result.NewBalance)
		}
	})

	t.Run("returns 400 on non-numeric id", func(t *testing.T) {
		handler := NewTradeHandler(NewMockBankrollService(), NewMockSettlementService())

		w := settleRequest(t, handler, "abc", `{"result":"won"}`)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
	})

	t.Run("maps service errors to statuses", func(t *testing.T) {
		tests := []struct {
			name       string
			err        error
			wantStatus int
		}{
			{"invalid result", service.ErrInvalidResult, http.StatusBadRequest},
			{"not authorized", service.ErrNotAuthorized, http.StatusForbidden},
			{"not found", service.ErrTradeNotFound, http.StatusNotFound},
			{"already settled", service.ErrAlreadySettled, http.StatusConflict},
			{"storage error", ErrMockDatabase, http.StatusInternalServerError},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				mockSettlement := NewMockSettlementService()
				mockSettlement.settleErr = tt.err
				handler := NewTradeHandler(NewMockBankrollService(), mockSettlement)

				w := settleRequest(t, handler, "1", `{"result":"won"}`)

				if w.Code != tt.wantStatus {
					t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
				}
			})
		}
	})
}

func TestTradeHandler_CancelBet(t *testing.T) {
	cancelRequest := func(t *testing.T, handler *TradeHandler, id string) *httptest.ResponseRecorder {
		t.Helper()

		router := mux.NewRouter()
		router.HandleFunc("/api/v1/bets/{id}/cancel", handler.CancelBet).Methods("POST")

		req := httptest.NewRequest(http.MethodPost, "/api/v1/bets/"+id+"/cancel", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("successfully cancels bet", func(t *testing.T) {
		mockBankroll := NewMockBankrollService()
		handler := NewTradeHandler(mockBankroll, NewMockSettlementService())

		placeReq := httptest.NewRequest(http.MethodPost, "/api/v1/bets", placeBetBody(t))
		handler.PlaceBet(httptest.NewRecorder(), placeReq)

		w := cancelRequest(t, handler, "1")

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
		}

		var response PlaceBetResponse
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if response.Trade.Status != models.TradeStatusCancelled {
			t.Errorf("expected status cancelled, got %q", response.Trade.Status)
		}
	})

	t.Run("returns 404 for unknown bet", func(t *testing.T) {
		handler := NewTradeHandler(NewMockBankrollService(), NewMockSettlementService())

		w := cancelRequest(t, handler, "99")

		if w.Code != http.StatusNotFound {
			t.Errorf("expected status %d, got %d", http.StatusNotFound, w.Code)
		}
	})

	t.Run("returns 409 when bet already settled", func(t *testing.T) {
		mockBankroll := NewMockBankrollService()
		mockBankroll.cancelErr = service.ErrAlreadySettled
		handler := NewTradeHandler(mockBankroll, NewMockSettlementService())

		w := cancelRequest(t, handler, "1")

		if w.Code != http.StatusConflict {
			t.Errorf("expected status %d, got %d", http.StatusConflict, w.Code)
		}
	})
}
