package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"assetgraph/api"
	integration_tests "assetgraph/integration-tests"
	"assetgraph/internal"
	"assetgraph/internal/app"
	"assetgraph/internal/calculator"
	"assetgraph/internal/config"
	"assetgraph/internal/data"
	"assetgraph/internal/domain"
	"assetgraph/internal/graph"
	"assetgraph/internal/loader"
	"assetgraph/internal/logger"
	"assetgraph/internal/repository"
	"assetgraph/internal/service"
	"assetgraph/internal/stream"
	"assetgraph/internal/valuation"

	_ "github.com/lib/pq"
)

// manual wiring, in one place. the only ordering constraint is circular: the
// synthetic service reads values through the valuation service, so it
// attaches after the service exists.

func CloseDependencies(handler *api.ApiHandler) {
	err := handler.Db.Close()
	if err != nil {
		log.Fatalf("failed to close db: %v", err)
	}
}

func InitializeDependencies() (*api.ApiHandler, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	secrets, err := internal.LoadSecrets()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	gptRepository, err := repository.NewGptRepository(secrets.ChatGPTApiKey)
	if err != nil {
		return nil, nil, err
	}

	dbConn, err := sql.Open("postgres", secrets.Db.ToConnectionStr())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	g, strategy, strategyName, err := InitializeGraph(cfg)
	if err != nil {
		return nil, nil, err
	}

	priceEventRepository := repository.NewPriceEventRepository()
	valuationRepository := repository.NewNodeValuationRepository()
	holdingRepository := repository.NewHoldingRepository()

	hub := stream.NewHub(logger.New())

	valuationService := service.NewValuationService(
		dbConn,
		g,
		strategy,
		strategyName,
		priceEventRepository,
		valuationRepository,
		hub,
	)
	syntheticService := calculator.NewSyntheticService(valuationService)
	valuationService.SetSynthetics(syntheticService)

	var emailRepository repository.EmailRepository
	if secrets.SES.AlertEmail != "" {
		emailRepository, err = repository.NewEmailRepository(secrets.SES.Region, secrets.SES.FromEmail)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create email repository: %w", err)
		}
	}

	apiHandler := &api.ApiHandler{
		Db:               dbConn,
		ValuationService: valuationService,
		SyntheticService: syntheticService,
		ReconcilerHandler: app.ReconcilerHandler{
			ValuationService:    valuationService,
			Graph:               g,
			Db:                  dbConn,
			ValuationRepository: valuationRepository,
			EmailRepository:     emailRepository,
			AlertRecipient:      secrets.SES.AlertEmail,
		},
		PriceEventRepository: priceEventRepository,
		ValuationRepository:  valuationRepository,
		HoldingRepository:    holdingRepository,
		GptRepository:        gptRepository,
		Hub:                  hub,
		JwtSigningKey:        secrets.JwtSigningKey,
	}

	return apiHandler, cfg, nil
}

// InitializeGraph builds the arena and strategy from the configured csv
// files. It needs no secrets or database, so the offline commands use it
// directly.
func InitializeGraph(cfg *config.Config) (*graph.Graph, valuation.Strategy, string, error) {
	edges, err := loader.LoadHoldings(cfg.DefinitionsFile)
	if err != nil {
		return nil, nil, "", err
	}
	prices, err := loader.LoadPrices(cfg.PricesFile)
	if err != nil {
		return nil, nil, "", err
	}

	policy := graph.CyclePolicyReject
	if strings.EqualFold(cfg.CyclePolicy, "allow") {
		policy = graph.CyclePolicyAllow
	}

	g, err := graph.Build(graph.BuildInput{
		Leaves:      prices,
		Edges:       edges,
		CyclePolicy: policy,
	})
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to build graph: %w", err)
	}

	strategyName := strings.ToLower(cfg.Strategy)
	if strategyName == "" {
		strategyName = "incremental"
	}

	var inner valuation.Strategy
	switch strategyName {
	case "full":
		inner = valuation.NewFullStrategy(g)
	case "incremental":
		incremental, err := valuation.NewIncrementalStrategy(g)
		if err != nil {
			return nil, nil, "", fmt.Errorf("failed to build incremental strategy: %w", err)
		}
		inner = incremental
	default:
		return nil, nil, "", fmt.Errorf("unknown strategy %q", cfg.Strategy)
	}

	return g, valuation.NewCoordinator(g, inner), strategyName, nil
}

// InitializeFeed picks the configured price source and points it at the
// valuation service. Callers run the returned handler themselves and may
// swap the sink first.
func InitializeFeed(valuationService service.ValuationService, cfg *config.Config) (*data.FeedHandler, error) {
	feedLog := logger.New()

	var source data.PriceSource
	var marketOpen func() (bool, error)

	switch strings.ToLower(cfg.Feed.Source) {
	case "sim", "":
		initial := map[string]float64{}
		for _, id := range valuationService.LeafIDs() {
			value, err := valuationService.NodeValue(context.Background(), id)
			if err != nil {
				return nil, err
			}
			initial[id] = value.InexactFloat64()
		}
		source = data.NewSimSource(time.Now().UnixNano(), initial)
	case "yahoo":
		source = data.NewBreakerSource(data.YahooSource{}, feedLog)
	case "alpaca":
		secrets, err := internal.LoadSecrets()
		if err != nil {
			return nil, fmt.Errorf("failed to load secrets: %w", err)
		}
		alpacaRepository := repository.NewAlpacaRepository(secrets.AlpacaApiKey, secrets.AlpacaApiSecret, secrets.AlpacaEndpoint)
		if strings.EqualFold(os.Getenv("ASSETGRAPH_ENV"), "test") {
			alpacaRepository = integration_tests.NewMockAlpacaRepositoryForTests()
		} else if UseMockAlpaca {
			alpacaRepository = NewMockAlpacaRepository(alpacaRepository)
		}
		source = data.NewBreakerSource(data.AlpacaSource{Repo: alpacaRepository}, feedLog)
		marketOpen = alpacaRepository.IsMarketOpen
	default:
		return nil, fmt.Errorf("unknown feed source %q", cfg.Feed.Source)
	}

	return &data.FeedHandler{
		Source:  source,
		Symbols: valuationService.LeafIDs(),
		Sink: func(ctx context.Context, update domain.PriceUpdate) error {
			_, err := valuationService.ApplyUpdate(ctx, update)
			return err
		},
		MarketOpen: marketOpen,
	}, nil
}
