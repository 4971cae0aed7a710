package main

import (
	"context"
	"flag"
	"log"

	"github.com/BetterCallFirewall/Certscope/internal/collector"
	"github.com/BetterCallFirewall/Certscope/internal/config"
	"github.com/BetterCallFirewall/Certscope/internal/llm"
	"github.com/BetterCallFirewall/Certscope/internal/models"
	"github.com/BetterCallFirewall/Certscope/internal/storage"
	"github.com/BetterCallFirewall/Certscope/internal/web"
	"github.com/BetterCallFirewall/Certscope/internal/websocket"
	"github.com/BetterCallFirewall/Certscope/internal/workflow"
)

func main() {
	assetPath := flag.String("asset", "", "path to an asset record JSON file")
	assetType := flag.String("type", "web", "asset type: web or host")
	collectAddr := flag.String("collect", "", "collect a live TLS endpoint (host:port) instead of reading a file")
	serve := flag.Bool("serve", false, "start the web server instead of a one-shot run")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	genkitApp, err := llm.InitGenkitApp(ctx, cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize genkit: %v", err)
	}

	provider, err := llm.NewSummaryProvider(genkitApp, cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to create LLM provider: %v", err)
	}

	if *serve {
		runServer(cfg, provider)
		return
	}

	asset, resolvedType, err := resolveAsset(ctx, *assetPath, *collectAddr, models.AssetType(*assetType))
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	log.Printf("🚀 Starting summary generation for %s asset %s (model %s/%s)",
		resolvedType, asset.ID, provider.GetName(), provider.GetModel())

	controller := workflow.NewController(
		provider,
		workflow.WithMaxAttempts(cfg.Workflow.MaxAttempts),
	)

	summary, err := controller.Run(ctx, asset, resolvedType)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	printSummary(summary)
}

func runServer(cfg *config.Config, provider llm.Provider) {
	hub := websocket.NewHub()
	go hub.Run()

	controller := workflow.NewController(
		provider,
		workflow.WithMaxAttempts(cfg.Workflow.MaxAttempts),
		workflow.WithNotifier(web.NewHubNotifier(hub)),
	)
	runner := workflow.NewReportRunner(controller, provider.GetModel())

	server := web.NewServer(cfg, storage.NewMemoryStorage(), runner, hub)

	log.Printf("🌐 Certscope web server listening on %s", cfg.Web.ListenAddr)
	log.Fatal(server.Start())
}

// resolveAsset выбирает источник записи: live TLS endpoint, файл или
// встроенный пример. Для -collect тип по умолчанию host.
func resolveAsset(ctx context.Context, path, collectAddr string, assetType models.AssetType) (models.AssetRecord, models.AssetType, error) {
	if collectAddr != "" {
		log.Printf("🔎 Collecting certificate from %s", collectAddr)
		record, err := collector.Collect(ctx, collectAddr)
		if err != nil {
			return models.AssetRecord{}, "", err
		}
		return *record, models.AssetTypeHost, nil
	}

	if path != "" {
		record, err := loadAsset(path)
		if err != nil {
			return models.AssetRecord{}, "", err
		}
		return record, assetType, nil
	}

	log.Printf("ℹ️ No asset given, using the built-in sample record")
	return sampleWebAsset(), assetType, nil
}
