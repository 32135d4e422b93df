package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/totl-app/totl-api/internal/domain/fixture"
)

func TestResultService_Declare(t *testing.T) {
	t.Parallel()

	fixtures := &stubFixtureRepository{fixtures: []fixture.Fixture{fixtureRow(1, 0)}}
	results := &stubResultRepository{}
	service := NewResultService(fixtures, results, nil)

	declared, err := service.Declare(context.Background(), 1, 0, "h")
	if err != nil {
		t.Fatalf("Declare error: %v", err)
	}
	if declared.Outcome != "H" || declared.DeclaredAt.IsZero() {
		t.Fatalf("unexpected result: %+v", declared)
	}
	if len(results.results) != 1 {
		t.Fatalf("expected 1 stored result, got %d", len(results.results))
	}

	// Re-declaring replaces the stored outcome instead of appending.
	if _, err := service.Declare(context.Background(), 1, 0, "D"); err != nil {
		t.Fatalf("Declare error: %v", err)
	}
	if len(results.results) != 1 || results.results[0].Outcome != "D" {
		t.Fatalf("expected upsert, got %+v", results.results)
	}
}

func TestResultService_Declare_Validation(t *testing.T) {
	t.Parallel()

	fixtures := &stubFixtureRepository{fixtures: []fixture.Fixture{fixtureRow(1, 0)}}
	service := NewResultService(fixtures, &stubResultRepository{}, nil)

	if _, err := service.Declare(context.Background(), 1, 0, "X"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := service.Declare(context.Background(), 1, 9, "H"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
