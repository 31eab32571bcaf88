// Landdoc CLI — standalone утилита для анализа скана земельного
// сертификата через Vision AI.
//
// Распространяется вместе с config.yaml в одной директории.
// Строгое поведение: падает если не находит конфиг.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/landdoc/landdoc-ai/pkg/analyzer"
	"github.com/landdoc/landdoc-ai/pkg/config"
	"github.com/landdoc/landdoc-ai/pkg/factory"
	"github.com/landdoc/landdoc-ai/pkg/utils"
)

var (
	configFlag  = flag.String("config", "", "Path to config.yaml (default: next to binary)")
	imageFlag   = flag.String("image", "", "Path to certificate scan (or http(s) URL)")
	promptFlag  = flag.String("prompt", "", "Custom extraction prompt (overrides the built-in one)")
	timeoutFlag = flag.Duration("timeout", 5*time.Minute, "Timeout for the whole analysis")
	healthFlag  = flag.Bool("health", false, "Print health snapshot and exit")
	noFollowUp  = flag.Bool("no-followup", false, "Suppress the trailing follow-up message")
)

func main() {
	flag.Parse()

	// === ИНИЦИАЛИЗАЦИЯ ЛОГГЕРА ===
	if err := utils.InitLogger(); err != nil {
		fmt.Fprintf(os.Stderr, "Logger init failed: %v\n", err)
	}
	defer utils.Close()

	utils.Info("landdoc started", "config", *configFlag, "image", *imageFlag)

	// === СТРОГАЯ ИНИЦИАЛИЗАЦИЯ ===
	cfgPath := findConfigPath(*configFlag)
	if cfgPath == "" {
		fmt.Fprintf(os.Stderr, "config.yaml not found\n\n"+
			"Place config.yaml next to the binary or use -config flag.\n"+
			"Binary location: %s\n", getBinDir())
		os.Exit(1)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		utils.Error("Config load failed", "error", err)
		fmt.Fprintf(os.Stderr, "Config load failed: %v\n", err)
		os.Exit(1)
	}
	utils.SetLevel(utils.ParseLevel(cfg.App.LogLevel))
	utils.Info("Config loaded", "path", cfgPath)

	provider, err := factory.NewLLMProvider(cfg.Analyzer)
	if err != nil {
		utils.Error("Provider init failed", "error", err)
		fmt.Fprintf(os.Stderr, "Provider init failed: %v\n", err)
		os.Exit(1)
	}

	client, err := analyzer.New(cfg, provider)
	if err != nil {
		utils.Error("Initialization failed", "error", err)
		fmt.Fprintf(os.Stderr, "Initialization failed: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	// === HEALTH РЕЖИМ ===
	if *healthFlag {
		printJSON(client.Health())
		return
	}

	// === ВЫПОЛНЕНИЕ АНАЛИЗА ===
	image := *imageFlag
	if image == "" && len(flag.Args()) > 0 {
		// Можно передать путь как позиционный аргумент
		image = flag.Arg(0)
	}
	if image == "" {
		utils.Error("Image is required")
		fmt.Fprintln(os.Stderr, "Image is required. Use -image flag or pass as argument.")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	var opts []analyzer.Option
	if *promptFlag != "" {
		opts = append(opts, analyzer.WithPrompt(*promptFlag))
	}
	if *noFollowUp {
		opts = append(opts, analyzer.WithoutFollowUp())
	}

	start := time.Now()

	var result *analyzer.AnalysisResult
	if analyzer.IsValidImageReference(image) {
		// URL или готовый data-uri — кодировать нечего
		result, err = client.Analyze(ctx, image, opts...)
	} else {
		result, err = client.AnalyzeFile(ctx, image, opts...)
	}
	if err != nil {
		utils.Error("Analysis failed", "error", err)
		fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", err)
		os.Exit(1)
	}

	utils.Info("Analysis completed",
		"duration", time.Since(start),
		"model", result.Model)

	// === ВЫВОД РЕЗУЛЬТАТА ===
	printJSON(result)
}

// findConfigPath реализует строгую стратегию поиска для CLI утилит.
//
// Правила:
//  1. Если указан флаг -config — использует его
//  2. Ищет config.yaml в той же папке где находится бинарник
//  3. НЕ ищет в текущей директории или родительских
func findConfigPath(flagValue string) string {
	if flagValue != "" {
		if abs, err := filepath.Abs(flagValue); err == nil {
			return abs
		}
		return flagValue
	}

	if execPath, err := os.Executable(); err == nil {
		cfgPath := filepath.Join(filepath.Dir(execPath), "config.yaml")
		if _, err := os.Stat(cfgPath); err == nil {
			return cfgPath
		}
	}

	return ""
}

// getBinDir возвращает директорию где находится бинарник.
func getBinDir() string {
	if execPath, err := os.Executable(); err == nil {
		return execPath
	}
	return "unknown"
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}
