// Package gist publishes article code blocks as secret GitHub gists so the
// Medium editor can embed them instead of losing syntax highlighting.
package gist

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/trmquang93/medium-writer-sub001/medium"
)

var (
	ErrNoToken      = errors.New("gist: no token configured")
	ErrInvalidToken = errors.New("gist: token has an invalid format")
)

const (
	// defaultInterval spaces create calls so a batch never bursts into
	// GitHub's secondary rate limits.
	defaultInterval = time.Second
	defaultTimeout  = 30 * time.Second
)

// Client wraps the go-github client for gist creation.
type Client struct {
	gh      *gh.Client
	limiter *rate.Limiter
	timeout time.Duration
	logger  *log.Logger
	verbose bool
}

type Option func(*Client)

// WithInterval sets the minimum spacing between create calls. Zero and
// negative values are ignored; the spacing must stay nonzero.
func WithInterval(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.limiter = rate.NewLimiter(rate.Every(d), 1)
		}
	}
}

// WithTimeout bounds each individual API call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithLogger(l *log.Logger, verbose bool) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
		c.verbose = verbose
	}
}

// WithBaseURL points the client at a different API host.
func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if !strings.HasSuffix(raw, "/") {
			raw += "/"
		}
		if u, err := url.Parse(raw); err == nil {
			c.gh.BaseURL = u
		}
	}
}

// NewClient validates the token shape and builds an authenticated client.
// Liveness is not checked here; use VerifyToken for that.
func NewClient(token string, opts ...Option) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrNoToken
	}
	if !medium.ValidGistTokenFormat(token) {
		return nil, ErrInvalidToken
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)
	tc.Timeout = defaultTimeout

	c := &Client{
		gh:      gh.NewClient(tc),
		limiter: rate.NewLimiter(rate.Every(defaultInterval), 1),
		timeout: defaultTimeout,
		logger:  log.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func (c *Client) infof(format string, args ...any) {
	if !c.verbose {
		return
	}
	c.logger.Printf("[INFO] "+format, args...)
}

// CreateArtifacts publishes the blocks one at a time in order. A block that
// fails is skipped and reported as a warning; the error return only fires
// when the context ends the whole batch.
func (c *Client) CreateArtifacts(ctx context.Context, blocks []medium.CodeBlock) ([]medium.ArtifactRef, []string, error) {
	var refs []medium.ArtifactRef
	var warnings []string
	for i, block := range blocks {
		if err := c.limiter.Wait(ctx); err != nil {
			return refs, warnings, err
		}
		ref, err := c.createOne(ctx, i, block)
		if err != nil {
			if ctx.Err() != nil {
				return refs, warnings, ctx.Err()
			}
			warnings = append(warnings, fmt.Sprintf("code block %d: gist creation failed: %v", i+1, err))
			continue
		}
		refs = append(refs, ref)
		c.infof("created gist %s for code block %d", ref.ID, i+1)
	}
	return refs, warnings, nil
}

func (c *Client) createOne(ctx context.Context, index int, block medium.CodeBlock) (medium.ArtifactRef, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	name := fmt.Sprintf("article-code-%d%s", index+1, extensionFor(block.Language))
	created, _, err := c.gh.Gists.Create(ctx, &gh.Gist{
		Description: gh.Ptr(fmt.Sprintf("Code block %d (%s)", index+1, block.Language)),
		Public:      gh.Ptr(false),
		Files: map[gh.GistFilename]gh.GistFile{
			gh.GistFilename(name): {Content: gh.Ptr(block.Code)},
		},
	})
	if err != nil {
		return medium.ArtifactRef{}, err
	}

	htmlURL := created.GetHTMLURL()
	return medium.ArtifactRef{
		ID:         created.GetID(),
		URL:        htmlURL,
		EmbedURL:   htmlURL + ".js",
		Language:   block.Language,
		BlockIndex: index,
	}, nil
}

// VerifyToken makes one authenticated call to confirm the token is live.
func (c *Client) VerifyToken(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_, resp, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			return fmt.Errorf("%w: rejected by GitHub", ErrInvalidToken)
		}
		return fmt.Errorf("gist: verify token: %w", err)
	}
	return nil
}

var extensions = map[string]string{
	"bash":       ".sh",
	"c":          ".c",
	"c++":        ".cpp",
	"cpp":        ".cpp",
	"csharp":     ".cs",
	"css":        ".css",
	"go":         ".go",
	"html":       ".html",
	"java":       ".java",
	"javascript": ".js",
	"js":         ".js",
	"json":       ".json",
	"kotlin":     ".kt",
	"php":        ".php",
	"py":         ".py",
	"python":     ".py",
	"rb":         ".rb",
	"ruby":       ".rb",
	"rust":       ".rs",
	"sh":         ".sh",
	"shell":      ".sh",
	"sql":        ".sql",
	"swift":      ".swift",
	"ts":         ".ts",
	"typescript": ".ts",
	"yaml":       ".yml",
	"yml":        ".yml",
}

func extensionFor(lang string) string {
	if ext, ok := extensions[strings.ToLower(lang)]; ok {
		return ext
	}
	return ".txt"
}
