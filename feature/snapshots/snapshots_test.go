package snapshots

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fab-catalog/core/database"
	"fab-catalog/feature/cards"
	cardmodels "fab-catalog/feature/cards/models"
	"fab-catalog/feature/prices"
	"fab-catalog/feature/snapshots/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// stubIndex resolves printings from a fixed card list.
type stubIndex struct {
	cards  map[string]*cardmodels.Card
	loaded bool
}

func (s *stubIndex) GetByPrintingID(id string) (*cardmodels.Card, bool, error) {
	if !s.loaded {
		return nil, false, cards.ErrNotLoaded
	}
	card, ok := s.cards[strings.ToUpper(id)]
	return card, ok, nil
}

// stubPrices serves fixed prices and counts EnsureLoaded calls.
type stubPrices struct {
	prices map[int]prices.Price
	loads  int
}

func (s *stubPrices) EnsureLoaded(ctx context.Context) prices.RefreshResult {
	s.loads++
	return prices.RefreshResult{Status: prices.StatusFresh}
}

func (s *stubPrices) GetPrice(productID any) prices.Price {
	id, _ := productID.(int)
	return s.prices[id]
}

func ptr(v float64) *float64 { return &v }

func newStubs() (*stubIndex, *stubPrices) {
	ember := &cardmodels.Card{UniqueID: "u1", Name: "Ember Hex", Printings: []cardmodels.Printing{
		{ID: "WTR001", TCGPlayerProductID: "12345"},
		{ID: "WTR001-F", TCGPlayerProductID: "12346"},
	}}
	snatch := &cardmodels.Card{UniqueID: "u2", Name: "Snatch", Printings: []cardmodels.Printing{{ID: "WTR167"}}}
	idx := &stubIndex{loaded: true, cards: map[string]*cardmodels.Card{
		"WTR001":   ember,
		"WTR001-F": ember,
		"WTR167":   snatch,
	}}
	pr := &stubPrices{prices: map[int]prices.Price{
		12345: {USD: ptr(4.50)},
		12346: {USDFoil: ptr(11.00)},
	}}
	return idx, pr
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, NewRepository(db).Migrate())
	return db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestRepository_Follows(t *testing.T) {
	repo := NewRepository(setupDB(t))
	ctx := context.Background()

	follow, created, err := repo.AddFollow(ctx, "WTR001")
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, follow.ID)

	again, created, err := repo.AddFollow(ctx, "WTR001")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, follow.ID, again.ID)

	_, _, err = repo.AddFollow(ctx, "WTR167")
	require.NoError(t, err)

	follows, err := repo.ListFollows(ctx)
	require.NoError(t, err)
	require.Len(t, follows, 2)
	assert.Equal(t, "WTR001", follows[0].PrintingID)

	removed, err := repo.RemoveFollow(ctx, "WTR001")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.RemoveFollow(ctx, "WTR001")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestRepository_History(t *testing.T) {
	repo := NewRepository(setupDB(t))
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	var rows []models.PriceSnapshot
	for i := 0; i < 5; i++ {
		rows = append(rows, models.PriceSnapshot{
			PrintingID: "WTR001",
			ProductID:  12345,
			USD:        ptr(float64(i)),
			CapturedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	rows = append(rows, models.PriceSnapshot{PrintingID: "WTR167", CapturedAt: base})
	require.NoError(t, repo.SaveSnapshots(ctx, rows, 2))

	history, err := repo.History(ctx, "WTR001", 3)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, 4.0, *history[0].USD)
	assert.Equal(t, 2.0, *history[2].USD)

	assert.NoError(t, repo.SaveSnapshots(ctx, nil, 10))
}

func TestRepository_DatabaseErrors(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT \\* FROM `follows`").WillReturnError(errors.New("connection reset"))
	_, err := repo.ListFollows(ctx)
	assert.ErrorContains(t, err, "failed to list follows")

	mock.ExpectQuery("SELECT \\* FROM `follows`").WillReturnError(errors.New("connection reset"))
	_, _, err = repo.AddFollow(ctx, "WTR001")
	assert.ErrorContains(t, err, "failed to look up follow WTR001")

	mock.ExpectQuery("SELECT \\* FROM `price_snapshots`").WillReturnError(errors.New("timeout"))
	_, err = repo.History(ctx, "WTR001", 10)
	assert.ErrorContains(t, err, "timeout")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_FollowValidatesPrinting(t *testing.T) {
	idx, pr := newStubs()
	svc := NewService(NewRepository(setupDB(t)), idx, pr, Config{}, nil)
	ctx := context.Background()

	follow, created, err := svc.Follow(ctx, " wtr001 ")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "WTR001", follow.PrintingID)

	_, _, err = svc.Follow(ctx, "NOPE01")
	assert.ErrorIs(t, err, ErrUnknownPrinting)

	idx.loaded = false
	_, _, err = svc.Follow(ctx, "WTR167")
	assert.ErrorIs(t, err, cards.ErrNotLoaded)
}

func TestService_Capture(t *testing.T) {
	idx, pr := newStubs()
	repo := NewRepository(setupDB(t))
	svc := NewService(repo, idx, pr, Config{BatchSize: 1}, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	for _, id := range []string{"WTR001", "WTR001-F", "WTR167"} {
		_, _, err := svc.Follow(ctx, id)
		require.NoError(t, err)
	}
	// A follow whose printing later disappeared from the dataset.
	_, _, err := repo.AddFollow(ctx, "OLD999")
	require.NoError(t, err)

	res, err := svc.Capture(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Follows)
	assert.Equal(t, 2, res.Captured)
	assert.ElementsMatch(t, []string{"WTR167", "OLD999"}, res.Skipped)
	assert.Equal(t, 1, pr.loads)

	history, err := svc.History(ctx, "wtr001", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "u1", history[0].CardID)
	assert.Equal(t, 12345, history[0].ProductID)
	assert.Equal(t, 4.50, *history[0].USD)
	assert.Nil(t, history[0].USDFoil)

	foil, err := svc.History(ctx, "WTR001-F", 0)
	require.NoError(t, err)
	require.Len(t, foil, 1)
	assert.Equal(t, 11.00, *foil[0].USDFoil)
}

func TestService_CaptureBeforeIndexLoaded(t *testing.T) {
	idx, pr := newStubs()
	repo := NewRepository(setupDB(t))
	_, _, err := repo.AddFollow(context.Background(), "WTR001")
	require.NoError(t, err)

	idx.loaded = false
	svc := NewService(repo, idx, pr, Config{}, nil)
	_, err = svc.Capture(context.Background())
	assert.ErrorIs(t, err, cards.ErrNotLoaded)
}

func TestService_Prune(t *testing.T) {
	idx, pr := newStubs()
	repo := NewRepository(setupDB(t))
	svc := NewService(repo, idx, pr, Config{}, nil)
	ctx := context.Background()

	for _, id := range []string{"WTR001", "OLD999", "OLD998"} {
		_, _, err := repo.AddFollow(ctx, id)
		require.NoError(t, err)
	}

	t.Run("unconfirmed only plans", func(t *testing.T) {
		plan, err := svc.Prune(ctx, PruneOptions{})
		require.NoError(t, err)
		assert.True(t, plan.DryRun)
		assert.Equal(t, 3, plan.Follows)
		assert.Equal(t, []string{"OLD999", "OLD998"}, plan.Stale)
		assert.Zero(t, plan.Removed)
	})

	t.Run("dry run wins over confirm", func(t *testing.T) {
		plan, err := svc.Prune(ctx, PruneOptions{DryRun: true, Confirmed: true})
		require.NoError(t, err)
		assert.True(t, plan.DryRun)
		assert.Zero(t, plan.Removed)
	})

	t.Run("confirmed removes", func(t *testing.T) {
		plan, err := svc.Prune(ctx, PruneOptions{Confirmed: true})
		require.NoError(t, err)
		assert.False(t, plan.DryRun)
		assert.Equal(t, 2, plan.Removed)

		follows, err := svc.Follows(ctx)
		require.NoError(t, err)
		require.Len(t, follows, 1)
		assert.Equal(t, "WTR001", follows[0].PrintingID)
	})

	t.Run("index not loaded", func(t *testing.T) {
		idx.loaded = false
		defer func() { idx.loaded = true }()
		_, err := svc.Prune(ctx, PruneOptions{Confirmed: true})
		assert.ErrorIs(t, err, cards.ErrNotLoaded)
	})
}

func request(t *testing.T, app *fiber.App, method, target string, out any) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil && len(body) > 0 {
		require.NoError(t, json.Unmarshal(body, out), string(body))
	}
	return resp.StatusCode
}

func TestHandler(t *testing.T) {
	idx, pr := newStubs()
	feature := NewFeature(setupDB(t), idx, pr, Config{Enabled: true, AutoMigrate: true}, zap.NewNop())
	require.True(t, feature.IsEnabled())
	assert.Equal(t, "snapshots", feature.Name())

	app := fiber.New(fiber.Config{UnescapePath: true})
	require.NoError(t, feature.Load(app))

	var follow models.Follow
	assert.Equal(t, fiber.StatusCreated, request(t, app, "POST", "/follows/WTR001", &follow))
	assert.Equal(t, "WTR001", follow.PrintingID)
	assert.Equal(t, fiber.StatusOK, request(t, app, "POST", "/follows/wtr001", nil))
	assert.Equal(t, fiber.StatusOK, request(t, app, "POST", "/follows/%20WTR001", nil))
	assert.Equal(t, fiber.StatusNotFound, request(t, app, "POST", "/follows/NOPE01", nil))

	var follows []models.Follow
	assert.Equal(t, fiber.StatusOK, request(t, app, "GET", "/follows", &follows))
	assert.Len(t, follows, 1)

	var res models.CaptureResult
	assert.Equal(t, fiber.StatusOK, request(t, app, "POST", "/snapshots/capture", &res))
	assert.Equal(t, 1, res.Captured)

	var history []models.PriceSnapshot
	assert.Equal(t, fiber.StatusOK, request(t, app, "GET", "/history/WTR001?limit=5", &history))
	require.Len(t, history, 1)
	assert.Equal(t, 4.50, *history[0].USD)

	var plan models.PrunePlan
	assert.Equal(t, fiber.StatusOK, request(t, app, "POST", "/follows/prune?confirm=true", &plan))
	assert.Empty(t, plan.Stale)
	assert.False(t, plan.DryRun)

	assert.Equal(t, fiber.StatusNoContent, request(t, app, "DELETE", "/follows/WTR001", nil))
	assert.Equal(t, fiber.StatusNotFound, request(t, app, "DELETE", "/follows/WTR001", nil))

	idx.loaded = false
	assert.Equal(t, fiber.StatusServiceUnavailable, request(t, app, "POST", "/follows/WTR167", nil))
}

func TestFeature_DisabledWithoutDatabase(t *testing.T) {
	idx, pr := newStubs()
	feature := NewFeature(nil, idx, pr, Config{Enabled: true}, nil)
	assert.False(t, feature.IsEnabled())

	// Start is a no-op when disabled.
	feature.Start(context.Background())
}
