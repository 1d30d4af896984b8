package di

import (
	"context"
	"fmt"

	"task-launcher/internal/application/port/input"
	"task-launcher/internal/application/port/output"
	"task-launcher/internal/application/service"
	"task-launcher/internal/infrastructure/appconfig"
	"task-launcher/internal/infrastructure/apppaths"
	"task-launcher/internal/infrastructure/browser/rod"
	"task-launcher/internal/infrastructure/llm/openaicompat"
	"task-launcher/internal/infrastructure/llm/summarizer"
	"task-launcher/internal/infrastructure/logger"
	"task-launcher/internal/infrastructure/process"
	"task-launcher/internal/infrastructure/prompts"
	"task-launcher/internal/infrastructure/search/duckduckgo"
	"task-launcher/internal/usecase/assistant"
	"task-launcher/internal/usecase/classifier"
	"task-launcher/internal/usecase/executor"
)

const (
	SearchBackendDuckDuckGo = "duckduckgo"
	SearchBackendBrowser    = "browser"
)

type Container struct {
	Logger    output.LoggerPort
	Registry  *service.AppRegistryImpl
	LLM       output.LLMPort
	Search    output.SearchPort
	Processor input.CommandProcessor

	closers []func()
}

type Config struct {
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	LLMDebug      bool

	AppRegistryFile string

	SearchBackend     string
	SearchMaxResults  int
	SearchOpenBrowser bool
	SearchURLTemplate string
	SearchSnapshotDir string
	BrowserHeadless   bool

	LogDir   string
	LogLevel string
	// Logger replaces the file logger built from LogDir and LogLevel.
	Logger output.LoggerPort
}

func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	log := cfg.Logger
	if log == nil {
		fileLog, err := logger.NewLoggerAdapter(logger.Config{
			Dir:   cfg.LogDir,
			Level: cfg.LogLevel,
			Name:  "session",
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
		log = fileLog
	}

	c := &Container{Logger: log}

	registry, err := BuildRegistry(cfg.AppRegistryFile, log)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Registry = registry

	llmCfg := openaicompat.DefaultConfig(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	llmCfg.BaseURL = cfg.OpenAIBaseURL
	if cfg.LLMDebug {
		llmCfg.Logger = log
	}
	chat := openaicompat.NewAdapter(llmCfg)
	c.LLM = chat

	search, err := c.newSearch(cfg, log)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Search = search

	summaryModel, err := summarizer.NewOpenAIModel(summarizer.Config{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
	})
	if err != nil {
		c.Close()
		return nil, err
	}
	summary := summarizer.New(summaryModel, prompts.SummarizePrompt, 0, log)

	systemPrompt, err := prompts.GenerateClassifierPrompt(prompts.ClassifierPrompt, registry.Names())
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to render classifier prompt: %w", err)
	}

	processes := process.NewManager(log)

	execCfg := executor.DefaultConfig()
	execCfg.OpenBrowser = cfg.SearchOpenBrowser
	if cfg.SearchURLTemplate != "" {
		execCfg.SearchURLTemplate = cfg.SearchURLTemplate
	}

	c.Processor = assistant.New(
		classifier.New(c.LLM, log, systemPrompt),
		executor.New(execCfg, registry, processes, processes, search, summary, log),
		log,
	)

	log.Info("Container ready",
		"model", chat.Model(),
		"apps", registry.Len(),
		"search_backend", cfg.SearchBackend,
	)
	return c, nil
}

// BuildRegistry layers the OS defaults, applications discovered on the
// system and the optional registry file, in increasing priority.
func BuildRegistry(path string, log output.LoggerPort) (*service.AppRegistryImpl, error) {
	registry := service.NewDefaultAppRegistry()

	discovered, err := apppaths.Discover()
	if err != nil {
		log.Warn("Application discovery failed", "error", err)
	}
	added := 0
	for _, app := range discovered {
		if registry.AddMissing(app) {
			added++
		}
	}

	fromFile, err := appconfig.Load(path)
	if err != nil {
		return nil, err
	}
	for _, app := range fromFile {
		registry.Add(app)
	}

	log.Debug("Application registry built", "discovered", added, "from_file", len(fromFile), "total", registry.Len())
	return registry, nil
}

func (c *Container) newSearch(cfg Config, log output.LoggerPort) (output.SearchPort, error) {
	switch cfg.SearchBackend {
	case "", SearchBackendDuckDuckGo:
		ddgCfg := duckduckgo.DefaultConfig()
		ddgCfg.MaxResults = cfg.SearchMaxResults
		return duckduckgo.New(ddgCfg, log), nil
	case SearchBackendBrowser:
		browserCfg := rod.DefaultConfig()
		browserCfg.Headless = cfg.BrowserHeadless
		browserCfg.SnapshotDir = cfg.SearchSnapshotDir
		if cfg.SearchMaxResults > 0 {
			browserCfg.MaxResults = cfg.SearchMaxResults
		}
		adapter := rod.NewSearchAdapter(browserCfg, log)
		c.closers = append(c.closers, adapter.Close)
		return adapter, nil
	default:
		return nil, fmt.Errorf("unknown search backend %q", cfg.SearchBackend)
	}
}

func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	if c.Logger != nil {
		c.Logger.Close()
	}
}
