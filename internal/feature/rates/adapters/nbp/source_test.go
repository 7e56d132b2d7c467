package nbp

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	ingestusecase "rates_backend/internal/feature/ingest/usecase"
	"rates_backend/internal/feature/rates/adapters"
	"rates_backend/internal/feature/rates/usecase"
)

type recordingReporter struct {
	mu       sync.Mutex
	messages []string
}

func (r *recordingReporter) SendLog(ctx context.Context, level slog.Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

func newTestStore(t *testing.T) (*usecase.RateStore, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")
	require.NoError(t, db.AutoMigrate(&adapters.CurrencyModel{}, &adapters.ExchangeRateModel{}))

	return usecase.NewRateStore(adapters.NewCurrencyRepository(db), adapters.NewRateRepository(db)), db
}

const twoTablesPayload = `[
  {
    "table": "A",
    "no": "042/A/NBP/2026",
    "effectiveDate": "2026-03-02",
    "rates": [
      {"currency": "dolar amerykański", "code": "USD", "mid": 4.3125},
      {"currency": "", "code": "XYZ", "mid": 1.0}
    ]
  },
  {
    "table": "A",
    "no": "043/A/NBP/2026",
    "effectiveDate": "2026-03-03",
    "rates": [
      {"currency": "euro", "code": "EUR", "mid": 4.6050},
      {"currency": "funt nieznany", "code": "", "mid": 2.0}
    ]
  }
]`

func TestNormalize(t *testing.T) {
	quotes, warnings, err := Normalize([]byte(twoTablesPayload))
	require.NoError(t, err)

	// One valid entry per table survives; the incomplete ones become warnings.
	require.Len(t, quotes, 2)
	require.Len(t, warnings, 2)

	assert.Equal(t, "USD", quotes[0].BaseSymbol)
	assert.Equal(t, "dolar amerykański", quotes[0].BaseName)
	assert.Equal(t, "PLN", quotes[0].QuoteSymbol)
	assert.Equal(t, "złoty polski", quotes[0].QuoteName)
	assert.True(t, quotes[0].Rate.Equal(decimal.NewFromFloat(4.3125)))

	assert.Equal(t, "EUR", quotes[1].BaseSymbol)
	assert.True(t, quotes[1].Rate.Equal(decimal.NewFromFloat(4.6050)))

	assert.Contains(t, warnings[0], `code="XYZ"`)
	assert.Contains(t, warnings[1], `currency="funt nieznany"`)
}

func TestNormalize_InvalidJSON(t *testing.T) {
	_, _, err := Normalize([]byte(`{not json`))
	assert.Error(t, err)
}

func TestNormalize_EmptyTableList(t *testing.T) {
	quotes, warnings, err := Normalize([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, quotes)
	assert.Empty(t, warnings)
}

func TestSource_Process(t *testing.T) {
	store, db := newTestStore(t)
	reporter := &recordingReporter{}
	src := NewSource(1, "NBP table A", "http://unused", nil, store, ingestusecase.CutoffSchedule{Hour: 12, Minute: 30, Cooldown: 8 * time.Hour}, reporter)

	now := time.Date(2026, 3, 3, 12, 35, 0, 0, time.UTC)
	written, err := src.Process(context.Background(), []byte(twoTablesPayload), now)
	require.NoError(t, err)
	assert.Equal(t, 2, written)

	// USD, EUR and the shared PLN side resolve to three reference rows.
	var currencies int64
	require.NoError(t, db.Model(&adapters.CurrencyModel{}).Count(&currencies).Error)
	assert.Equal(t, int64(3), currencies)

	var facts int64
	require.NoError(t, db.Model(&adapters.ExchangeRateModel{}).Count(&facts).Error)
	assert.Equal(t, int64(2), facts)

	last, err := src.LastFetched(context.Background())
	require.NoError(t, err)
	assert.True(t, last.Equal(now))

	// Skipped entries were reported, prefixed with the source name.
	require.Len(t, reporter.messages, 2)
	for _, m := range reporter.messages {
		assert.True(t, strings.HasPrefix(m, "NBP table A: "), "unexpected message %q", m)
	}
}

func TestSource_Process_InvalidPayload(t *testing.T) {
	store, _ := newTestStore(t)
	src := NewSource(1, "NBP table A", "http://unused", nil, store, ingestusecase.RollingSchedule{Cooldown: time.Hour}, &recordingReporter{})

	_, err := src.Process(context.Background(), []byte(`<html>`), time.Now())
	require.Error(t, err)

	var pe *ingestusecase.ParseError
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, "NBP table A", pe.Source)
}
