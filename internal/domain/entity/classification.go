package entity

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FallbackLabel метка, которая остаётся, если классификация не завершилась
const FallbackLabel = "NA"

// ClassificationResult итог одной классификации изображения
type ClassificationResult struct {
	Label       string  // метка из словаря модели
	Probability float32 // оценка в процентах (score * 100)
}

// FallbackResult возвращает результат по умолчанию: NA / 0.0
func FallbackResult() ClassificationResult {
	return ClassificationResult{Label: FallbackLabel}
}

// BestMatch выбирает метку с максимальной оценкой.
// При равенстве побеждает первый индекс. Оценки не нормализуются.
func BestMatch(scores []float32, labels []string) (ClassificationResult, error) {
	if len(labels) == 0 {
		return FallbackResult(), ErrEmptyVocabulary
	}
	if len(scores) == 0 {
		return FallbackResult(), fmt.Errorf("empty score vector: %w", ErrLabelOutOfRange)
	}

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	if best >= len(labels) {
		return FallbackResult(), fmt.Errorf("index %d of %d labels: %w", best, len(labels), ErrLabelOutOfRange)
	}

	return ClassificationResult{
		Label:       labels[best],
		Probability: scores[best] * 100,
	}, nil
}

// IsFallback сообщает, что классификация не состоялась
func (r ClassificationResult) IsFallback() bool {
	return r.Label == FallbackLabel && r.Probability == 0
}

// ProbabilityString значение, которое пишется в запись и переменные процесса.
// Формат тот же, что у Float.toString хоста: "87.0", "87.43", "5.0E-5", "1.0E7".
func (r ClassificationResult) ProbabilityString() string {
	v := float64(r.Probability)
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		if math.Signbit(v) {
			return "-0.0"
		}
		return "0.0"
	}

	if abs := math.Abs(v); abs >= 1e-3 && abs < 1e7 {
		s := strconv.FormatFloat(v, 'f', -1, 32)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}

	// 'E' даёт "5E-05", хосту нужно "5.0E-5"
	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(v, 'E', -1, 32), "E")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	n, _ := strconv.Atoi(exp)
	return mantissa + "E" + strconv.Itoa(n)
}

// Summary строка итогового лога
func (r ClassificationResult) Summary() string {
	return fmt.Sprintf("BEST MATCH: %s (%.2f%% likely)", r.Label, r.Probability)
}
