package executor

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"task-launcher/internal/application/port/input"
	"task-launcher/internal/application/port/output"
	"task-launcher/internal/application/service"
	"task-launcher/internal/domain/entity"
)

var _ input.ActionExecutor = (*UseCase)(nil)

const (
	DefaultSearchURLTemplate = "https://www.google.com/search?q={query}"
	queryPlaceholder         = "{query}"
	defaultBrowserApp        = "chrome"
)

const msgNotUnderstood = "I'm not sure what you want me to do. Can you be more specific?"

type Config struct {
	// SearchURLTemplate is the page opened for a search; {query} is replaced
	// with the escaped query.
	SearchURLTemplate string
	OpenBrowser       bool
	// BrowserApp is the registry name tried before the OS default browser.
	BrowserApp string
}

func DefaultConfig() Config {
	return Config{
		SearchURLTemplate: DefaultSearchURLTemplate,
		OpenBrowser:       true,
		BrowserApp:        defaultBrowserApp,
	}
}

type UseCase struct {
	cfg        Config
	registry   output.AppRegistry
	processes  output.ProcessPort
	opener     output.BrowserOpenerPort
	search     output.SearchPort
	summarizer output.SummarizerPort
	logger     output.LoggerPort
}

func New(
	cfg Config,
	registry output.AppRegistry,
	processes output.ProcessPort,
	opener output.BrowserOpenerPort,
	search output.SearchPort,
	summarizer output.SummarizerPort,
	logger output.LoggerPort,
) *UseCase {
	if cfg.SearchURLTemplate == "" {
		cfg.SearchURLTemplate = DefaultSearchURLTemplate
	}
	if cfg.BrowserApp == "" {
		cfg.BrowserApp = defaultBrowserApp
	}
	return &UseCase{
		cfg:        cfg,
		registry:   registry,
		processes:  processes,
		opener:     opener,
		search:     search,
		summarizer: summarizer,
		logger:     logger,
	}
}

// Execute performs intent and returns the sentence shown to the user.
// Failures are reported in that sentence, never as an error.
func (uc *UseCase) Execute(ctx context.Context, intent entity.Intent) string {
	target := strings.TrimSpace(intent.Target)

	uc.log(ctx).Info("Executing action", "action", intent.Action, "target", target)

	switch intent.Action {
	case entity.ActionOpen:
		return uc.openApplication(ctx, target)
	case entity.ActionClose:
		return uc.closeApplication(ctx, target)
	case entity.ActionSearch:
		return uc.performSearch(ctx, target)
	default:
		return msgNotUnderstood
	}
}

func (uc *UseCase) openApplication(ctx context.Context, name string) string {
	if name == "" {
		return "I'm not sure which application you want me to open."
	}

	app, err := uc.registry.Lookup(name)
	if err != nil {
		uc.log(ctx).Warn("Application lookup failed", "name", name, "error", err)
		return fmt.Sprintf("I don't know how to open '%s'. Can you provide more details?", name)
	}

	if err := uc.processes.Start(ctx, app.Executable, app.Args...); err != nil {
		uc.log(ctx).Error("Failed to open application", "name", name, "executable", app.Executable, "error", err)
		return fmt.Sprintf("Error opening %s: %v", name, err)
	}

	return fmt.Sprintf("Opening %s for you.", name)
}

func (uc *UseCase) closeApplication(ctx context.Context, name string) string {
	if name == "" {
		return "I'm not sure which application you want me to close."
	}

	app, err := uc.registry.Lookup(name)
	if err != nil {
		uc.log(ctx).Warn("Application lookup failed", "name", name, "error", err)
		return fmt.Sprintf("I don't know how to close '%s'. Can you provide more details?", name)
	}

	stopped, err := uc.processes.Terminate(ctx, app.ProcessNames)
	if err != nil {
		uc.log(ctx).Error("Failed to close application", "name", name, "error", err)
		return fmt.Sprintf("Error closing %s: %v", name, err)
	}
	if stopped == 0 {
		return fmt.Sprintf("I couldn't find any running processes for %s.", name)
	}

	uc.log(ctx).Info("Application closed", "name", name, "processes", stopped)
	return fmt.Sprintf("Closed %s for you.", name)
}

func (uc *UseCase) performSearch(ctx context.Context, query string) string {
	if query == "" {
		return "I'm not sure what you want me to search for."
	}

	opened := false
	if uc.cfg.OpenBrowser {
		opened = uc.openSearchPage(ctx, BuildSearchURL(uc.cfg.SearchURLTemplate, query))
	}

	results, err := uc.search.Search(ctx, query)
	if err != nil {
		uc.log(ctx).Warn("Search backend failed", "query", query, "error", err)
	}
	if len(results) == 0 {
		if opened {
			return fmt.Sprintf("I've opened a web search for '%s'. You can view the results in the browser window.", query)
		}
		return fmt.Sprintf("I couldn't find any results for '%s'.", query)
	}

	lead := fmt.Sprintf("Here's what I found for '%s':", query)
	if opened {
		lead = fmt.Sprintf("I've opened a web search for '%s'. Here's a summary of what I found:", query)
	}

	summary, err := uc.summarizer.Summarize(ctx, query, results)
	if err != nil || summary == "" {
		uc.log(ctx).Warn("Summarization failed, returning raw results", "query", query, "error", err)
		return lead + "\n\n" + entity.FormatSearchResults(results)
	}

	return lead + "\n\n" + summary
}

// openSearchPage prefers the registered browser application and falls back
// to the OS default browser.
func (uc *UseCase) openSearchPage(ctx context.Context, searchURL string) bool {
	app, err := uc.registry.Lookup(uc.cfg.BrowserApp)
	if err == nil {
		args := append(append([]string(nil), app.Args...), searchURL)
		if err = uc.processes.Start(ctx, app.Executable, args...); err == nil {
			return true
		}
		uc.log(ctx).Warn("Browser launch failed, using default browser", "browser", app.Name, "error", err)
	} else if !errors.Is(err, service.ErrAppNotFound) {
		uc.log(ctx).Warn("Browser lookup failed", "error", err)
	}

	if err := uc.opener.OpenURL(ctx, searchURL); err != nil {
		uc.log(ctx).Error("Failed to open search page", "url", searchURL, "error", err)
		return false
	}
	return true
}

func (uc *UseCase) log(ctx context.Context) output.LoggerPort {
	return output.LoggerFrom(ctx, uc.logger)
}

// BuildSearchURL substitutes the escaped query into tmpl. A template
// without the placeholder gets the query appended.
func BuildSearchURL(tmpl, query string) string {
	escaped := url.QueryEscape(query)
	if strings.Contains(tmpl, queryPlaceholder) {
		return strings.ReplaceAll(tmpl, queryPlaceholder, escaped)
	}
	return tmpl + escaped
}
