package utils

import (
	"math"
)

// stats.go - статистические функции для валидации edge
//
// Назначение:
// Чистые функции элементарной статистики для оценки значимости
// наблюдаемого win rate относительно подразумеваемой вероятности.
//
// Функции:
// - NormalCDF: функция распределения стандартного нормального закона
// - BinomialPValue: двусторонний p-value по нормальной аппроксимации
// - WilsonInterval: доверительный интервал Wilson для биномиальной доли
// - RequiredSampleSize: необходимый размер выборки для заданной погрешности
// - PearsonCorrelation: коэффициент корреляции Пирсона

// DefaultZ - z-значение для 95% доверительного уровня
const DefaultZ = 1.96

// NormalCDF возвращает Φ(x) - вероятность того, что стандартная нормальная
// величина не превысит x.
//
// Вычисляется через функцию ошибок: Φ(x) = 0.5 * (1 + erf(x / √2))
func NormalCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

// BinomialPValue возвращает двусторонний p-value для наблюдаемой доли
// выигрышей относительно ожидаемой вероятности.
//
// Нормальная аппроксимация биномиального теста:
//
//	z = (observed - expected) / sqrt(expected * (1 - expected) / n)
//	p = 2 * (1 - Φ(|z|))
//
// Параметры:
//   - observed: наблюдаемая доля выигрышей (0..1)
//   - expected: ожидаемая вероятность (0..1)
//   - n: количество решенных ставок
//
// Возвращает:
//   - (z, p), p ограничен диапазоном [0.0001, 1.0]
//   - (0, 1.0) если n == 0 или expected вырожденная (деление на ноль невозможно)
func BinomialPValue(observed, expected float64, n int) (float64, float64) {
	if n <= 0 || expected <= 0 || expected >= 1 {
		return 0, 1.0
	}

	se := math.Sqrt(expected * (1 - expected) / float64(n))
	if se == 0 {
		return 0, 1.0
	}

	z := (observed - expected) / se
	p := 2 * (1 - NormalCDF(math.Abs(z)))

	// Клампим p-value: нулевой p-value статистически бессмысленен
	if p < 0.0001 {
		p = 0.0001
	}
	if p > 1.0 {
		p = 1.0
	}

	return z, p
}

// WilsonInterval возвращает доверительный интервал Wilson для доли выигрышей.
//
// Устойчив к малым выборкам в отличие от нормального интервала.
//
// Параметры:
//   - wins: количество выигрышей
//   - n: количество решенных ставок (wins + losses)
//   - z: z-значение доверительного уровня (1.96 для 95%)
//
// Возвращает:
//   - (lower, upper) в процентах, ограниченные диапазоном [0, 100]
//   - (0, 0) если n == 0
func WilsonInterval(wins, n int, z float64) (float64, float64) {
	if n <= 0 {
		return 0, 0
	}
	if z <= 0 {
		z = DefaultZ
	}

	p := float64(wins) / float64(n)
	nf := float64(n)
	z2 := z * z

	denom := 1 + z2/nf
	center := (p + z2/(2*nf)) / denom
	margin := z / denom * math.Sqrt(p*(1-p)/nf+z2/(4*nf*nf))

	lower := (center - margin) * 100
	upper := (center + margin) * 100

	return clampPct(lower), clampPct(upper)
}

// RequiredSampleSize возвращает необходимое количество ставок для оценки
// доли p с заданной погрешностью.
//
// Формула: ceil(z² * p * (1-p) / margin²)
//
// Параметры:
//   - p: предполагаемая доля выигрышей (0..1); вырожденные значения
//     (p <= 0 или p >= 1) заменяются на 0.55
//   - margin: допустимая погрешность (например, 0.05)
//   - z: z-значение доверительного уровня
//
// Возвращает:
//   - Размер выборки (минимум 1)
func RequiredSampleSize(p, margin, z float64) int {
	if p <= 0 || p >= 1 {
		p = 0.55
	}
	if margin <= 0 {
		margin = 0.05
	}
	if z <= 0 {
		z = DefaultZ
	}

	n := math.Ceil(z * z * p * (1 - p) / (margin * margin))
	if n < 1 {
		return 1
	}
	return int(n)
}

// PearsonCorrelation возвращает коэффициент корреляции Пирсона между двумя рядами.
//
// Параметры:
//   - xs, ys: ряды одинаковой длины
//
// Возвращает:
//   - Коэффициент в диапазоне [-1, 1]
//   - 0 если длины не совпадают, ряд короче 2 или дисперсия нулевая
func PearsonCorrelation(xs, ys []float64) float64 {
	n := len(xs)
	if n != len(ys) || n < 2 {
		return 0
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return 0
	}

	return cov / math.Sqrt(varX*varY)
}

// clampPct ограничивает значение диапазоном [0, 100]
func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
