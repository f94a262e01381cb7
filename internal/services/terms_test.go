// File: internal/services/terms_test.go

package services

import (
	"reflect"
	"testing"
)

func TestGenerateSearchTermsWithoutLocation(t *testing.T) {
	terms := GenerateSearchTerms("Daft Punk", "")

	// 1 artist + 6 vocabulary terms x 2 orderings
	if len(terms) != 13 {
		t.Fatalf("Expected 13 terms, got %d: %v", len(terms), terms)
	}

	if terms[0] != "Daft Punk" {
		t.Errorf("Expected artist as first term, got %q", terms[0])
	}

	expectedHead := []string{"Daft Punk", "Daft Punk concert", "concert Daft Punk", "Daft Punk show"}
	if !reflect.DeepEqual(terms[:4], expectedHead) {
		t.Errorf("Expected head %v, got %v", expectedHead, terms[:4])
	}
}

func TestGenerateSearchTermsWithLocation(t *testing.T) {
	terms := GenerateSearchTerms("Daft Punk", "Chicago")

	// 1 + 2 location combos + 6 x (2 + 2 location variants)
	if len(terms) != 27 {
		t.Fatalf("Expected 27 terms, got %d: %v", len(terms), terms)
	}

	expectedHead := []string{
		"Daft Punk",
		"Daft Punk Chicago",
		"Chicago Daft Punk",
		"Daft Punk concert",
		"concert Daft Punk",
		"Daft Punk concert Chicago",
		"Chicago Daft Punk concert",
		"Daft Punk show",
	}
	if !reflect.DeepEqual(terms[:8], expectedHead) {
		t.Errorf("Expected head %v, got %v", expectedHead, terms[:8])
	}
}

func TestGenerateSearchTermsDeterministic(t *testing.T) {
	first := GenerateSearchTerms("Madeon", "Paris")
	second := GenerateSearchTerms("Madeon", "Paris")

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical output across calls")
	}
}
