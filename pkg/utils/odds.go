package utils

import (
	"errors"
	"math"
)

// odds.go - математика американских коэффициентов
//
// Назначение:
// Вспомогательные функции для расчета выплат и вероятностей по ставкам.
// Все функции являются чистыми (pure functions) без побочных эффектов.
//
// Функции:
// - Payout: полная выплата по ставке (стейк + профит)
// - ImpliedProbability: подразумеваемая вероятность из коэффициента
// - RoundToCents: округление денежной суммы до центов

// ErrZeroOdds - нулевой коэффициент не имеет смысла в американском формате
var ErrZeroOdds = errors.New("american odds cannot be zero")

// BreakevenRate - безубыточный win rate при стандартном коэффициенте -110 (в процентах).
// Используется как expected rate по умолчанию, когда нет данных о коэффициентах.
const BreakevenRate = 52.4

// Payout возвращает полную выплату по ставке (стейк + профит).
//
// Формула:
//   - odds > 0: stake + stake * odds / 100
//   - odds < 0: stake + stake * 100 / |odds|
//
// Параметры:
//   - stake: размер ставки в долларах
//   - odds: американский коэффициент (знаковое целое, не ноль)
//
// Возвращает:
//   - Выплату, округленную до центов
//   - ErrZeroOdds если odds == 0
//
// Примеры:
//   - Payout(100, -110) = 190.91
//   - Payout(100, +150) = 250.00
func Payout(stake float64, odds int) (float64, error) {
	if odds == 0 {
		return 0, ErrZeroOdds
	}

	var profit float64
	if odds > 0 {
		profit = stake * float64(odds) / 100
	} else {
		profit = stake * 100 / math.Abs(float64(odds))
	}

	return RoundToCents(stake + profit), nil
}

// ImpliedProbability возвращает подразумеваемую вероятность выигрыша (0..1).
//
// Формула:
//   - odds > 0: 100 / (odds + 100)
//   - odds < 0: |odds| / (|odds| + 100)
//
// Параметры:
//   - odds: американский коэффициент (не ноль)
//
// Возвращает:
//   - Вероятность в диапазоне (0, 1)
//   - ErrZeroOdds если odds == 0
//
// Примеры:
//   - ImpliedProbability(-110) = 0.5238...
//   - ImpliedProbability(+150) = 0.4
func ImpliedProbability(odds int) (float64, error) {
	if odds == 0 {
		return 0, ErrZeroOdds
	}

	if odds > 0 {
		return 100 / (float64(odds) + 100), nil
	}
	abs := math.Abs(float64(odds))
	return abs / (abs + 100), nil
}

// RoundToCents округляет денежную сумму до двух знаков после запятой.
//
// Стандартное математическое округление. Применяется ко всем суммам,
// которые записываются в леджер (выплаты, профит/лосс).
func RoundToCents(value float64) float64 {
	return math.Round(value*100) / 100
}
