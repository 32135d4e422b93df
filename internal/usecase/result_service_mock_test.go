package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/totl-app/totl-api/internal/domain/fixture"
	"github.com/totl-app/totl-api/internal/domain/pick"
	"github.com/totl-app/totl-api/internal/domain/result"
	"github.com/totl-app/totl-api/internal/platform/logging"
)

type mockFixtureRepository struct {
	mock.Mock
}

func (m *mockFixtureRepository) ListByGameweek(ctx context.Context, gameweek int) ([]fixture.Fixture, error) {
	args := m.Called(ctx, gameweek)
	items, _ := args.Get(0).([]fixture.Fixture)
	return items, args.Error(1)
}

func (m *mockFixtureRepository) GetByAPIMatchID(ctx context.Context, apiMatchID int64) (fixture.Fixture, bool, error) {
	args := m.Called(ctx, apiMatchID)
	item, _ := args.Get(0).(fixture.Fixture)
	return item, args.Bool(1), args.Error(2)
}

func (m *mockFixtureRepository) ListGameweeks(ctx context.Context) ([]int, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]int)
	return items, args.Error(1)
}

type mockResultRepository struct {
	mock.Mock
}

func (m *mockResultRepository) ListByGameweek(ctx context.Context, gameweek int) ([]result.Result, error) {
	args := m.Called(ctx, gameweek)
	items, _ := args.Get(0).([]result.Result)
	return items, args.Error(1)
}

func (m *mockResultRepository) GetByFixture(ctx context.Context, gameweek, fixtureIndex int) (result.Result, bool, error) {
	args := m.Called(ctx, gameweek, fixtureIndex)
	item, _ := args.Get(0).(result.Result)
	return item, args.Bool(1), args.Error(2)
}

func (m *mockResultRepository) Upsert(ctx context.Context, item result.Result) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockResultRepository) ListResultedGameweeks(ctx context.Context) ([]int, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]int)
	return items, args.Error(1)
}

func TestResultService_Declare_UpsertsMatchedFixture(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fixtureRepo := &mockFixtureRepository{}
	resultRepo := &mockResultRepository{}

	fixtureRepo.
		On("ListByGameweek", ctx, 3).
		Return([]fixture.Fixture{{ID: "fx-3-0", Gameweek: 3, FixtureIndex: 0}}, nil).
		Once()
	resultRepo.
		On("Upsert", ctx, mock.MatchedBy(func(item result.Result) bool {
			return item.Gameweek == 3 && item.FixtureIndex == 0 && item.Outcome == pick.OutcomeDraw && !item.DeclaredAt.IsZero()
		})).
		Return(nil).
		Once()

	service := NewResultService(fixtureRepo, resultRepo, logging.NewNop())

	declared, err := service.Declare(ctx, 3, 0, "D")
	if err != nil {
		t.Fatalf("declare result: %v", err)
	}
	if declared.Outcome != pick.OutcomeDraw {
		t.Fatalf("unexpected declared outcome: %s", declared.Outcome)
	}

	fixtureRepo.AssertExpectations(t)
	resultRepo.AssertExpectations(t)
}

func TestResultService_Declare_UnknownFixtureSkipsUpsert(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fixtureRepo := &mockFixtureRepository{}
	resultRepo := &mockResultRepository{}

	fixtureRepo.
		On("ListByGameweek", ctx, 3).
		Return([]fixture.Fixture{{ID: "fx-3-0", Gameweek: 3, FixtureIndex: 0}}, nil).
		Once()

	service := NewResultService(fixtureRepo, resultRepo, logging.NewNop())

	if _, err := service.Declare(ctx, 3, 9, "H"); err == nil {
		t.Fatal("expected error for unknown fixture index")
	}

	fixtureRepo.AssertExpectations(t)
	resultRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}
