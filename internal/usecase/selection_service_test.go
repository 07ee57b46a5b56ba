package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/f1-fantasy/internal/domain/fantasyteam"
	"github.com/riskibarqy/f1-fantasy/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/f1-fantasy/internal/platform/id"
)

func newSelectionService() *SelectionService {
	weekendSvc, _ := newSeededWeekendService()
	return NewSelectionService(memory.NewSelectionRepository(), weekendSvc, idgen.NewRandomGenerator(), 0, nil)
}

func TestSelectionService_Submit_ValidTeam(t *testing.T) {
	svc := newSelectionService()

	item, err := svc.Submit(t.Context(), SubmitSelectionInput{
		RaceID:         memory.RaceIDBahrain,
		DriverIDs:      []string{"bearman", "doohan", "hadjar", "bortoleto", "lawson"},
		ConstructorIDs: []string{"haas", "sauber"},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if item.ID == "" {
		t.Fatal("selection id must be generated")
	}
	if item.Team.TotalCost != 625 {
		t.Fatalf("unexpected total cost: got %d want 625", item.Team.TotalCost)
	}
	if item.CreatedAt.IsZero() {
		t.Fatal("created at must be set")
	}

	fetched, err := svc.GetByID(t.Context(), item.ID)
	if err != nil {
		t.Fatalf("get by id failed: %v", err)
	}
	if fetched.Team.TotalPoints != item.Team.TotalPoints {
		t.Fatalf("points drifted on read: got %d want %d", fetched.Team.TotalPoints, item.Team.TotalPoints)
	}
}

func TestSelectionService_Submit_ExceedsBudget(t *testing.T) {
	svc := newSelectionService()

	_, err := svc.Submit(t.Context(), SubmitSelectionInput{
		RaceID:         memory.RaceIDBahrain,
		DriverIDs:      []string{"verstappen", "norris", "leclerc", "piastri", "hamilton"},
		ConstructorIDs: []string{"mclaren", "ferrari"},
	})
	if !errors.Is(err, fantasyteam.ErrExceededBudget) {
		t.Fatalf("expected ErrExceededBudget, got %v", err)
	}
}

func TestSelectionService_Submit_UnknownDriver(t *testing.T) {
	svc := newSelectionService()

	_, err := svc.Submit(t.Context(), SubmitSelectionInput{
		RaceID:         memory.RaceIDBahrain,
		DriverIDs:      []string{"schumacher", "doohan", "hadjar", "bortoleto", "lawson"},
		ConstructorIDs: []string{"haas", "sauber"},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSelectionService_Submit_WrongDriverCount(t *testing.T) {
	svc := newSelectionService()

	_, err := svc.Submit(t.Context(), SubmitSelectionInput{
		RaceID:         memory.RaceIDBahrain,
		DriverIDs:      []string{"bearman", "doohan"},
		ConstructorIDs: []string{"haas", "sauber"},
	})
	if !errors.Is(err, fantasyteam.ErrInvalidDriverCount) {
		t.Fatalf("expected ErrInvalidDriverCount, got %v", err)
	}
}

func TestSelectionService_ListByRace(t *testing.T) {
	svc := newSelectionService()

	if _, err := svc.Submit(t.Context(), SubmitSelectionInput{
		RaceID:         memory.RaceIDBahrain,
		DriverIDs:      []string{"bearman", "doohan", "hadjar", "bortoleto", "lawson"},
		ConstructorIDs: []string{"haas", "sauber"},
	}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	items, err := svc.ListByRace(t.Context(), memory.RaceIDBahrain)
	if err != nil {
		t.Fatalf("list by race failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("unexpected selection count: %d", len(items))
	}
}
