package utils

import (
	"errors"
	"strings"
)

// validator.go - валидация входных данных
//
// Назначение:
// Проверка корректности полей запросов перед обращением к бизнес-логике.
//
// Функции:
// - ValidateStake: проверка размера ставки (> 0)
// - ValidateOdds: проверка американского коэффициента (не ноль)
// - ValidateBetType: проверка типа ставки (spread/moneyline/total)
// - ValidateResult: проверка результата (won/lost/push)
// - ValidateSelection: проверка непустого выбора
// - ValidateSport: проверка непустого спорта
//
// Возвращает error с описанием проблемы или nil

// Ошибки валидации
var (
	ErrStakeNotPositive = errors.New("stake must be greater than 0")
	ErrInvalidBetType   = errors.New("bet type must be one of: spread, moneyline, total")
	ErrInvalidResult    = errors.New("result must be one of: won, lost, push")
	ErrEmptySelection   = errors.New("selection cannot be empty")
	ErrEmptySport       = errors.New("sport cannot be empty")
)

// validBetTypes - допустимые типы ставок
var validBetTypes = map[string]bool{
	"spread":    true,
	"moneyline": true,
	"total":     true,
}

// validResults - допустимые результаты расчета ставки
var validResults = map[string]bool{
	"won":  true,
	"lost": true,
	"push": true,
}

// ValidateStake проверяет, что размер ставки положительный
func ValidateStake(stake float64) error {
	if stake <= 0 {
		return ErrStakeNotPositive
	}
	return nil
}

// ValidateOdds проверяет американский коэффициент (ноль недопустим)
func ValidateOdds(odds int) error {
	if odds == 0 {
		return ErrZeroOdds
	}
	return nil
}

// ValidateBetType проверяет тип ставки.
// Сравнение строгое, без нормализации регистра: значение попадает
// в колонку bet_type как есть, и отчеты группируют по точной строке.
func ValidateBetType(betType string) error {
	if !validBetTypes[betType] {
		return ErrInvalidBetType
	}
	return nil
}

// ValidateResult проверяет результат расчета ставки.
// Сравнение строгое: значение становится статусом ставки, и все
// выборки по статусу сравнивают точную строку.
func ValidateResult(result string) error {
	if !validResults[result] {
		return ErrInvalidResult
	}
	return nil
}

// ValidateSelection проверяет, что выбор ставки не пустой
func ValidateSelection(selection string) error {
	if strings.TrimSpace(selection) == "" {
		return ErrEmptySelection
	}
	return nil
}

// ValidateSport проверяет, что спорт указан
func ValidateSport(sport string) error {
	if strings.TrimSpace(sport) == "" {
		return ErrEmptySport
	}
	return nil
}
