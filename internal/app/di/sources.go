// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	cryptousecase "rates_backend/internal/feature/crypto/usecase"
	ingestusecase "rates_backend/internal/feature/ingest/usecase"
	ratesusecase "rates_backend/internal/feature/rates/usecase"

	"rates_backend/internal/feature/crypto/adapters/coingecko"
	"rates_backend/internal/feature/rates/adapters/ecb"
	"rates_backend/internal/feature/rates/adapters/fixer"
	"rates_backend/internal/feature/rates/adapters/nbp"
	"rates_backend/internal/platform/httpfetch"
)

// Stable feed identifiers carried on every fact row.
const (
	SourceNBPTableA = 1
	SourceNBPTableB = 2
	SourceECB       = 3
	SourceFixer     = 4
	SourceCoinGecko = 5
)

// currencyCooldown is the rolling cooldown shared by the currency feeds.
const currencyCooldown = 8 * time.Hour

// SourceDeps carries everything BuildSources needs to assemble feeds.
type SourceDeps struct {
	Client     *httpfetch.Client
	RateStore  *ratesusecase.RateStore
	AssetStore *cryptousecase.AssetStore
	Reporter   ingestusecase.Reporter
}

// BuildSources assembles the configured feeds in the given order. A name no
// builder recognizes is reported and excluded, so it is never scheduled.
func BuildSources(ctx context.Context, names []string, deps SourceDeps) []ingestusecase.Source {
	nbpCfg := nbp.LoadConfig()
	ecbCfg := ecb.LoadConfig()
	fixerCfg := fixer.LoadConfig()
	geckoCfg := coingecko.LoadConfig()

	var sources []ingestusecase.Source
	for _, name := range names {
		switch name {
		case "nbp-a":
			sources = append(sources, nbp.NewSource(
				SourceNBPTableA, name, nbpCfg.TableAURL, deps.Client, deps.RateStore,
				ingestusecase.CutoffSchedule{Hour: 12, Minute: 30, Cooldown: currencyCooldown},
				deps.Reporter,
			))
		case "nbp-b":
			sources = append(sources, nbp.NewSource(
				SourceNBPTableB, name, nbpCfg.TableBURL, deps.Client, deps.RateStore,
				ingestusecase.CutoffSchedule{Hour: 12, Minute: 30, Cooldown: currencyCooldown},
				deps.Reporter,
			))
		case "ecb":
			sources = append(sources, ecb.NewSource(
				SourceECB, name, ecbCfg.URL, deps.Client, deps.RateStore,
				ingestusecase.CutoffSchedule{Hour: 16, Minute: 15, Cooldown: currencyCooldown},
			))
		case "fixer":
			sources = append(sources, fixer.NewSource(
				SourceFixer, name, fixerCfg.URL(), deps.Client, deps.RateStore,
				ingestusecase.RollingSchedule{Cooldown: currencyCooldown},
			))
		case "coingecko":
			sources = append(sources, coingecko.NewSource(
				SourceCoinGecko, name, geckoCfg.URL, deps.Client, deps.AssetStore,
				ingestusecase.RollingSchedule{Cooldown: geckoCfg.Interval},
			))
		default:
			deps.Reporter.SendLog(ctx, slog.LevelWarn, fmt.Sprintf("Source %q is not recognized", name))
		}
	}
	return sources
}
