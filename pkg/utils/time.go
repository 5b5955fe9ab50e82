package utils

import (
	"time"
)

// time.go - утилиты для работы со временем
//
// Назначение:
// Вспомогательные функции для временных операций, используемые
// для фильтрации истории ставок и построения графика банкролла.
//
// Функции:
// - GetDayStart: начало текущего дня (00:00:00)
// - DaysAgo: начало дня N дней назад (окно для графика)
//
// Использование:
// - Окно выборки снапшотов истории банкролла (chart data)
// - Фильтрация сделок по временным диапазонам

// GetDayStart возвращает начало текущего дня (00:00:00) в UTC
func GetDayStart() time.Time {
	return GetDayStartFrom(time.Now().UTC())
}

// GetDayStartFrom возвращает начало дня для указанного времени в UTC
//
// Параметры:
//   - t: исходное время
//
// Возвращает: начало дня (00:00:00 UTC) для указанной даты
func GetDayStartFrom(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GetDayEnd возвращает конец текущего дня (23:59:59.999999999) в UTC
func GetDayEnd() time.Time {
	return GetDayEndFrom(time.Now().UTC())
}

// GetDayEndFrom возвращает конец дня для указанного времени
func GetDayEndFrom(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, time.UTC)
}

// DaysAgo возвращает начало дня, отстоящего на days дней назад от текущего.
//
// Используется как нижняя граница окна при выборке истории банкролла.
//
// Параметры:
//   - days: размер окна в днях; значения <= 0 трактуются как 0 (сегодня)
//
// Пример:
//
//	// Сейчас: 2024-01-15 14:30 UTC
//	DaysAgo(30) // 2023-12-16 00:00:00 UTC
func DaysAgo(days int) time.Time {
	return DaysAgoFrom(time.Now().UTC(), days)
}

// DaysAgoFrom возвращает начало дня, отстоящего на days дней назад от t
func DaysAgoFrom(t time.Time, days int) time.Time {
	if days < 0 {
		days = 0
	}
	return GetDayStartFrom(t.AddDate(0, 0, -days))
}
