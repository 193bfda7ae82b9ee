package utils

import (
	"math"
	"strconv"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// ParseFloatOrZero converte uma string numérica da API para float64,
// devolvendo 0 para valores ausentes ou malformados
func ParseFloatOrZero(s string) float64 {
	if s == "" {
		return 0
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}

	return v
}

// ParseIntOrZero converte uma string numérica da API para int, devolvendo 0
// para valores ausentes ou malformados
func ParseIntOrZero(s string) int {
	if s == "" {
		return 0
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}

	return v
}
