package models

import (
	"math"
	"testing"
)

// ============================================================
// Bankroll derived metrics
// ============================================================

func TestNewBankroll(t *testing.T) {
	b := NewBankroll("user1", 0)

	if b.UserID != "user1" {
		t.Errorf("UserID = %q, want user1", b.UserID)
	}
	if b.StartingBalance != DefaultStartingBalance {
		t.Errorf("StartingBalance = %v, want %v", b.StartingBalance, DefaultStartingBalance)
	}
	if b.CurrentBalance != DefaultStartingBalance {
		t.Errorf("CurrentBalance = %v, want %v", b.CurrentBalance, DefaultStartingBalance)
	}
	if b.HighWaterMark != DefaultStartingBalance || b.LowWaterMark != DefaultStartingBalance {
		t.Error("water marks must start at the starting balance")
	}
	if b.CreatedAt.IsZero() || b.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}

	custom := NewBankroll("user2", 5000)
	if custom.StartingBalance != 5000 || custom.CurrentBalance != 5000 {
		t.Errorf("custom balance = %v/%v, want 5000", custom.StartingBalance, custom.CurrentBalance)
	}
}

func TestBankrollDerivedMetrics(t *testing.T) {
	b := &Bankroll{
		StartingBalance: 10000,
		CurrentBalance:  10500,
		WinningBets:     6,
		LosingBets:      4,
		Pushes:          1,
		TotalWagered:    1100,
		TotalWon:        900,
		TotalLost:       400,
	}

	if pl := b.TotalProfitLoss(); pl != 500 {
		t.Errorf("TotalProfitLoss = %v, want 500", pl)
	}
	if roi := b.ROIPercentage(); math.Abs(roi-45.4545) > 0.001 {
		t.Errorf("ROIPercentage = %v, want 45.4545", roi)
	}
	if wp := b.WinPercentage(); wp != 60 {
		t.Errorf("WinPercentage = %v, want 60", wp)
	}
	if u := b.UnitSize(); u != 100 {
		t.Errorf("UnitSize = %v, want 100", u)
	}
	if uw := b.UnitsWon(); uw != 5 {
		t.Errorf("UnitsWon = %v, want 5", uw)
	}
	if sc := b.SettledCount(); sc != 11 {
		t.Errorf("SettledCount = %v, want 11", sc)
	}
}

func TestBankrollDerivedMetricsEmpty(t *testing.T) {
	// Нулевые знаменатели не должны приводить к NaN/Inf
	b := &Bankroll{}

	if roi := b.ROIPercentage(); roi != 0 {
		t.Errorf("ROIPercentage = %v, want 0", roi)
	}
	if wp := b.WinPercentage(); wp != 0 {
		t.Errorf("WinPercentage = %v, want 0", wp)
	}
	if uw := b.UnitsWon(); uw != 0 {
		t.Errorf("UnitsWon = %v, want 0", uw)
	}
}

func TestBankrollSnapshot(t *testing.T) {
	b := &Bankroll{
		StartingBalance: 10000,
		TotalWagered:    200,
		TotalWon:        190.91,
		TotalLost:       100,
		WinningBets:     1,
		LosingBets:      1,
	}

	snap := b.Snapshot()

	if math.Abs(snap.TotalProfitLossAmount-90.91) > 0.001 {
		t.Errorf("TotalProfitLossAmount = %v, want 90.91", snap.TotalProfitLossAmount)
	}
	if snap.WinPercentageValue != 50 {
		t.Errorf("WinPercentageValue = %v, want 50", snap.WinPercentageValue)
	}
}

// ============================================================
// Trade status helpers
// ============================================================

func TestTradeStatusHelpers(t *testing.T) {
	tests := []struct {
		status  string
		pending bool
		decided bool
		settled bool
	}{
		{TradeStatusPending, true, false, false},
		{TradeStatusWon, false, true, true},
		{TradeStatusLost, false, true, true},
		{TradeStatusPush, false, false, true},
		{TradeStatusCancelled, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			tr := &Trade{Status: tt.status}
			if tr.IsPending() != tt.pending {
				t.Errorf("IsPending = %v, want %v", tr.IsPending(), tt.pending)
			}
			if tr.IsDecided() != tt.decided {
				t.Errorf("IsDecided = %v, want %v", tr.IsDecided(), tt.decided)
			}
			if tr.IsSettled() != tt.settled {
				t.Errorf("IsSettled = %v, want %v", tr.IsSettled(), tt.settled)
			}
		})
	}
}
