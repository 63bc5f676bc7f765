package gemini

import (
	"strings"

	"github.com/jurandifr/AcheiPet/schema"
)

// DefaultAnalysis is the safe fallback when classification is unavailable or
// unintelligible. It never blocks report creation.
func DefaultAnalysis() schema.AnimalAnalysis {
	return schema.AnimalAnalysis{
		Tipo: schema.SpeciesOther,
		Raca: schema.UndefinedBreed,
	}
}

// NormalizeSpecies maps free-form species text onto the closed enum. The
// match is case-insensitive and accepts the synonyms the model is known to
// produce in Portuguese and English.
func NormalizeSpecies(text string) schema.Species {
	lowered := strings.ToLower(text)

	switch {
	case strings.Contains(lowered, "cão"),
		strings.Contains(lowered, "cao"),
		strings.Contains(lowered, "cachorro"),
		strings.Contains(lowered, "dog"):
		return schema.SpeciesDog
	case strings.Contains(lowered, "gato"),
		strings.Contains(lowered, "cat"):
		return schema.SpeciesCat
	}

	return schema.SpeciesOther
}

// NormalizeBreed passes identified breeds through verbatim and collapses the
// model's "unidentified" spellings (and empty answers) into the sentinel.
func NormalizeBreed(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return schema.UndefinedBreed
	}

	switch strings.ToLower(trimmed) {
	case "não identificado", "nao identificado", "não identificada", "nao identificada":
		return schema.UndefinedBreed
	}

	return trimmed
}
