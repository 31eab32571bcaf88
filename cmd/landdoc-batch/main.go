// Batch-обработчик: прогоняет сканы сертификатов из S3 bucket через
// анализатор и складывает JSON результаты обратно в bucket.
//
// Обработка последовательная — темп задает rate_limit анализатора,
// параллелить вызовы модели на одном ключе смысла нет.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/landdoc/landdoc-ai/pkg/analyzer"
	"github.com/landdoc/landdoc-ai/pkg/config"
	"github.com/landdoc/landdoc-ai/pkg/factory"
	"github.com/landdoc/landdoc-ai/pkg/s3storage"
	"github.com/landdoc/landdoc-ai/pkg/utils"
)

var (
	configFlag = flag.String("config", "config.yaml", "Path to config.yaml")
	prefixFlag = flag.String("prefix", "", "S3 key prefix to scan")
	limitFlag  = flag.Int("limit", 0, "Max number of scans to process (0 = all)")
	uploadFlag = flag.Bool("upload", false, "Upload result JSON next to each scan")
)

func main() {
	flag.Parse()

	if err := utils.InitLogger(); err != nil {
		fmt.Fprintf(os.Stderr, "Logger init failed: %v\n", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer utils.SetupGracefulShutdown(cancel)()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fatal("Config load failed: %v", err)
	}
	utils.SetLevel(utils.ParseLevel(cfg.App.LogLevel))

	if cfg.S3.Bucket == "" || cfg.S3.Endpoint == "" {
		fatal("s3.bucket and s3.endpoint are required for batch mode")
	}

	storage, err := s3storage.New(cfg.S3)
	if err != nil {
		fatal("S3 init failed: %v", err)
	}

	provider, err := factory.NewLLMProvider(cfg.Analyzer)
	if err != nil {
		fatal("Provider init failed: %v", err)
	}

	client, err := analyzer.New(cfg, provider)
	if err != nil {
		fatal("Initialization failed: %v", err)
	}
	defer client.Close()

	scans, err := storage.ListScans(ctx, *prefixFlag)
	if err != nil {
		fatal("List scans failed: %v", err)
	}
	if *limitFlag > 0 && len(scans) > *limitFlag {
		scans = scans[:*limitFlag]
	}

	utils.Info("Batch started", "prefix", *prefixFlag, "scans", len(scans))
	fmt.Printf("Processing %d scans from %s/%s\n", len(scans), cfg.S3.Bucket, *prefixFlag)

	var processed, failed int

	for _, scan := range scans {
		// Между документами уважаем отмену по Ctrl+C
		if ctx.Err() != nil {
			utils.Warn("Batch interrupted", "processed", processed, "remaining", len(scans)-processed-failed)
			break
		}

		if err := processScan(ctx, client, storage, scan, *uploadFlag); err != nil {
			failed++
			utils.Error("Scan failed", "key", scan.Key, "error", err)
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", scan.Key, err)
			continue
		}

		processed++
		fmt.Printf("OK   %s\n", scan.Key)
	}

	utils.Info("Batch finished", "processed", processed, "failed", failed)
	fmt.Printf("\nDone: %d processed, %d failed\n", processed, failed)

	if failed > 0 {
		os.Exit(1)
	}
}

// processScan анализирует один объект из bucket.
func processScan(ctx context.Context, client *analyzer.Client, storage *s3storage.Client, scan s3storage.StoredObject, upload bool) error {
	start := time.Now()

	data, err := storage.DownloadFile(ctx, scan.Key)
	if err != nil {
		return err
	}

	imageRef := client.EncodeImageBytes(data, scan.Key)

	result, err := client.Analyze(ctx, imageRef)
	if err != nil {
		return err
	}

	utils.Info("Scan analyzed",
		"key", scan.Key,
		"duration", time.Since(start),
		"model", result.Model)

	if !upload {
		return nil
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	return storage.UploadResult(ctx, resultKey(scan.Key), out)
}

// resultKey строит ключ для JSON результата рядом со сканом:
// scans/lot42/page.jpg → scans/lot42/page.analysis.json
func resultKey(scanKey string) string {
	ext := path.Ext(scanKey)
	return strings.TrimSuffix(scanKey, ext) + ".analysis.json"
}

func fatal(format string, args ...any) {
	utils.Error(fmt.Sprintf(format, args...))
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	utils.Close()
	os.Exit(1)
}
