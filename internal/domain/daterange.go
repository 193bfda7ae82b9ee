package domain

import (
	"fmt"
	"time"
)

// DateRange representa um intervalo de datas inclusivo, com Start <= End.
// O intervalo é imutável depois de criado.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange cria um DateRange validado, normalizando as datas para meia-noite
func NewDateRange(start, end time.Time) (DateRange, error) {
	start = truncateToDay(start)
	end = truncateToDay(end)

	if start.After(end) {
		return DateRange{}, fmt.Errorf("a data de início não pode ser posterior à data de fim")
	}

	return DateRange{Start: start, End: end}, nil
}

// ParseDateRange cria um DateRange a partir de datas no formato YYYY-MM-DD
func ParseDateRange(startStr, endStr string) (DateRange, error) {
	start, err := time.Parse(time.DateOnly, startStr)
	if err != nil {
		return DateRange{}, fmt.Errorf("data de início inválida %q: %w", startStr, err)
	}

	end, err := time.Parse(time.DateOnly, endStr)
	if err != nil {
		return DateRange{}, fmt.Errorf("data de fim inválida %q: %w", endStr, err)
	}

	return NewDateRange(start, end)
}

// Days retorna a quantidade de dias cobertos pelo intervalo (inclusivo)
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// Chunk divide o intervalo em sub-intervalos contíguos e ordenados, cada um
// cobrindo no máximo maxSpanDays dias. O último sub-intervalo é cortado em
// r.End. A concatenação dos sub-intervalos reconstrói o intervalo original
// sem lacunas nem sobreposições.
func (r DateRange) Chunk(maxSpanDays int) []DateRange {
	if maxSpanDays < 1 {
		maxSpanDays = 1
	}

	var chunks []DateRange

	current := r.Start
	for !current.After(r.End) {
		chunkEnd := current.AddDate(0, 0, maxSpanDays-1)
		if chunkEnd.After(r.End) {
			chunkEnd = r.End
		}

		chunks = append(chunks, DateRange{Start: current, End: chunkEnd})
		current = chunkEnd.AddDate(0, 0, 1)
	}

	return chunks
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s a %s", r.Start.Format(time.DateOnly), r.End.Format(time.DateOnly))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
