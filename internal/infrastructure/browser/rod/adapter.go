package rod

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"task-launcher/internal/application/port/output"
	"task-launcher/internal/domain/entity"
	"task-launcher/internal/infrastructure/search/duckduckgo"

	"github.com/disintegration/imaging"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

const (
	defaultTimeout   = 20 * time.Second
	maxSnapshotWidth = 1024
)

const extractResultsJS = `(max) => {
	const out = [];
	for (const a of document.querySelectorAll('a.result__a')) {
		if (a.closest('.result--ad')) continue;
		const block = a.closest('.result');
		const snippet = block ? block.querySelector('.result__snippet') : null;
		out.push({
			title: (a.innerText || '').trim(),
			url: a.href || '',
			snippet: snippet ? (snippet.innerText || '').trim() : '',
		});
		if (max > 0 && out.length >= max) break;
	}
	return out;
}`

var _ output.SearchPort = (*SearchAdapter)(nil)

type BrowserConfig struct {
	Headless   bool
	NoSandbox  bool
	Timeout    time.Duration
	BaseURL    string
	MaxResults int
	// SnapshotDir, when set, receives a JPEG of every results page.
	SnapshotDir string
}

func DefaultConfig() BrowserConfig {
	return BrowserConfig{
		Headless:   true,
		NoSandbox:  false,
		Timeout:    defaultTimeout,
		BaseURL:    duckduckgo.DefaultBaseURL,
		MaxResults: 5,
	}
}

// SearchAdapter renders the search page in a headless Chromium. The browser
// is launched on the first search and reused until Close.
type SearchAdapter struct {
	cfg    BrowserConfig
	logger output.LoggerPort

	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
}

func NewSearchAdapter(cfg BrowserConfig, logger output.LoggerPort) *SearchAdapter {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = duckduckgo.DefaultBaseURL
	}
	return &SearchAdapter{
		cfg:    cfg,
		logger: logger,
	}
}

func (a *SearchAdapter) Search(ctx context.Context, query string) ([]entity.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty search query")
	}

	browser, err := a.ensureBrowser()
	if err != nil {
		return nil, err
	}

	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	// Close through the untimed page so an expired deadline cannot leave the
	// tab open.
	defer func() { _ = page.Close() }()

	log := output.LoggerFrom(ctx, a.logger)
	timed := page.Timeout(a.cfg.Timeout)
	searchURL := a.cfg.BaseURL + "?q=" + url.QueryEscape(query)
	if err := timed.Navigate(searchURL); err != nil {
		return nil, fmt.Errorf("navigation failed: %w", err)
	}
	if err := timed.WaitLoad(); err != nil {
		return nil, fmt.Errorf("page load failed: %w", err)
	}

	obj, err := timed.Eval(extractResultsJS, a.cfg.MaxResults)
	if err != nil {
		return nil, fmt.Errorf("extract results: %w", err)
	}
	results := decodeResults(obj.Value, a.cfg.MaxResults)

	if a.cfg.SnapshotDir != "" {
		if path, shot, err := a.saveSnapshot(timed, query); err != nil {
			log.Warn("Search snapshot failed", "error", err)
		} else {
			log.Debug("Search snapshot saved", "path", path, "width", shot.Width, "height", shot.Height)
		}
	}

	log.Info("Browser search completed", "query", query, "results", len(results))
	return results, nil
}

func (a *SearchAdapter) ensureBrowser() (*rod.Browser, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.browser != nil {
		return a.browser, nil
	}

	l := launcher.New().
		Headless(a.cfg.Headless).
		NoSandbox(a.cfg.NoSandbox)

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	a.browser = browser
	a.launcher = l
	return browser, nil
}

func decodeResults(value gson.JSON, max int) []entity.SearchResult {
	var results []entity.SearchResult
	for _, item := range value.Arr() {
		title := strings.Join(strings.Fields(item.Get("title").Str()), " ")
		link := duckduckgo.UnwrapURL(item.Get("url").Str())
		if title == "" || link == "" {
			continue
		}
		results = append(results, entity.SearchResult{
			Title:   title,
			URL:     link,
			Snippet: strings.Join(strings.Fields(item.Get("snippet").Str()), " "),
		})
		if max > 0 && len(results) >= max {
			break
		}
	}
	return results
}

func (a *SearchAdapter) saveSnapshot(page *rod.Page, query string) (string, *entity.Screenshot, error) {
	shot, err := captureSnapshot(page)
	if err != nil {
		return "", nil, err
	}

	if err := os.MkdirAll(a.cfg.SnapshotDir, 0o755); err != nil {
		return "", nil, fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("%s_%s.%s", time.Now().Format("2006-01-02_15-04-05"), snapshotName(query), shot.Format)
	path := filepath.Join(a.cfg.SnapshotDir, name)
	if err := os.WriteFile(path, shot.Data, 0o644); err != nil {
		return "", nil, fmt.Errorf("write snapshot: %w", err)
	}
	return path, shot, nil
}

func captureSnapshot(page *rod.Page) (*entity.Screenshot, error) {
	imgBytes, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatJpeg,
		Quality: gson.Int(80),
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}
	return shrinkJPEG(imgBytes, maxSnapshotWidth)
}

func shrinkJPEG(data []byte, maxWidth int) (*entity.Screenshot, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}

	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 75}); err != nil {
		return nil, fmt.Errorf("jpeg encode failed: %w", err)
	}

	return &entity.Screenshot{
		Data:   buf.Bytes(),
		Format: "jpeg",
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}, nil
}

func snapshotName(query string) string {
	s := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '_'
	}, query)
	s = strings.Trim(s, "_")
	if s == "" {
		return "search"
	}
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}

func (a *SearchAdapter) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.browser != nil {
		_ = a.browser.Close()
		a.browser = nil
	}
	if a.launcher != nil {
		a.launcher.Kill()
		a.launcher.Cleanup()
		a.launcher = nil
	}
}
