package websocket

import (
	"time"

	"edgebook/internal/models"
)

// MessageType определяет тип WebSocket сообщения
type MessageType string

// Типы WebSocket сообщений
const (
	// MessageTypeBankrollUpdate - обновление банкролла.
	// Отправляется после размещения, расчета, отмены и сброса.
	MessageTypeBankrollUpdate MessageType = "bankrollUpdate"

	// MessageTypeTradeUpdate - изменение состояния ставки.
	// Отправляется при размещении и любом терминальном переходе.
	MessageTypeTradeUpdate MessageType = "tradeUpdate"
)

// BaseMessage - базовая структура для всех WebSocket сообщений
type BaseMessage struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
}

// BankrollUpdateMessage - сообщение с актуальным снапшотом банкролла
type BankrollUpdateMessage struct {
	BaseMessage
	Data *models.BankrollResponse `json:"data"`
}

// TradeUpdateMessage - сообщение об изменении ставки
type TradeUpdateMessage struct {
	BaseMessage
	Data *models.Trade `json:"data"`
}

// NewBankrollUpdateMessage создает сообщение обновления банкролла
func NewBankrollUpdateMessage(bankroll *models.BankrollResponse) *BankrollUpdateMessage {
	return &BankrollUpdateMessage{
		BaseMessage: BaseMessage{
			Type:      MessageTypeBankrollUpdate,
			Timestamp: time.Now(),
		},
		Data: bankroll,
	}
}

// NewTradeUpdateMessage создает сообщение изменения ставки
func NewTradeUpdateMessage(trade *models.Trade) *TradeUpdateMessage {
	return &TradeUpdateMessage{
		BaseMessage: BaseMessage{
			Type:      MessageTypeTradeUpdate,
			Timestamp: time.Now(),
		},
		Data: trade,
	}
}
