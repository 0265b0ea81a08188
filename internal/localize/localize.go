// Package localize downloads the remote images of a parsed document into
// a local asset directory and rewrites the references in place. Failures
// are reported per image; one bad URL never aborts the rest.
package localize

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/tkaine/mdstruct/internal/mdtree"
	"github.com/tkaine/mdstruct/internal/parse"
)

const (
	defaultPattern     = "img_{index}_{hash}"
	defaultTimeout     = 10 * time.Second
	defaultConcurrency = 4
	maxAttempts        = 3
	maxImageBytes      = 32 << 20
)

// Config controls where assets land and how references are rewritten.
type Config struct {
	// Dir is the filesystem directory downloads are written to.
	Dir string
	// RefDir is the directory prefix used in rewritten references,
	// relative to the document. Defaults to Dir.
	RefDir string
	// Pattern names downloaded files; {index} and {hash} are substituted.
	Pattern string

	Timeout       time.Duration
	MaxConcurrent int
}

// Result is the outcome for one image reference, in discovery order.
type Result struct {
	URL       string `json:"url"`
	LocalPath string `json:"local_path,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Localizer downloads images for one document at a time. Safe to reuse
// across documents; each Run owns the tree it is handed.
type Localizer struct {
	cfg    Config
	client *http.Client
	log    *slog.Logger
}

func New(cfg Config, log *slog.Logger) *Localizer {
	if cfg.Pattern == "" {
		cfg.Pattern = defaultPattern
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = defaultConcurrency
	}
	if cfg.RefDir == "" {
		cfg.RefDir = cfg.Dir
	}
	return &Localizer{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log,
	}
}

// task pins one image reference to the node whose raw line carries it.
type task struct {
	index int
	node  *mdtree.Node
	ref   mdtree.ImageRef
}

type taskResult struct {
	task      task
	localPath string
	err       error
}

// Run downloads every remote image in the tree with bounded concurrency
// and rewrites the owning lines to the local paths. Each image gets at
// least one attempt; the returned slice holds one entry per image in
// discovery order.
func (l *Localizer) Run(ctx context.Context, root *mdtree.Node) ([]Result, error) {
	tasks := collect(root)
	if len(tasks) == 0 {
		return nil, nil
	}

	if err := os.MkdirAll(l.cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create asset dir: %w", err)
	}

	sem := make(chan struct{}, l.cfg.MaxConcurrent)
	resCh := make(chan taskResult, len(tasks))

	for _, t := range tasks {
		sem <- struct{}{}
		go func(t task) {
			defer func() { <-sem }()
			local, err := l.fetch(ctx, t)
			resCh <- taskResult{task: t, localPath: local, err: err}
		}(t)
	}

	// Rewrites touch shared node lines, so they happen only here in the
	// collector, never in the download goroutines.
	results := make([]Result, len(tasks))
	for range tasks {
		r := <-resCh
		out := Result{URL: r.task.ref.URL}
		if r.err != nil {
			out.Error = r.err.Error()
			l.log.Warn("image download failed", "url", r.task.ref.URL, "error", r.err)
		} else {
			out.LocalPath = r.localPath
			rewrite(r.task, r.localPath)
			l.log.Info("image localized", "url", r.task.ref.URL, "path", r.localPath)
		}
		results[r.task.index] = out
	}
	return results, nil
}

// collect walks the tree and pairs every remote image reference with its
// node: dedicated image nodes first-class, inline references re-extracted
// from content lines.
func collect(root *mdtree.Node) []task {
	var tasks []task
	root.Walk(func(n *mdtree.Node) {
		switch n.Kind {
		case mdtree.KindImage:
			tasks = append(tasks, task{index: len(tasks), node: n, ref: *n.Image})
		case mdtree.KindContent:
			for _, ref := range parse.ExtractImages(n.Raw) {
				tasks = append(tasks, task{index: len(tasks), node: n, ref: ref})
			}
		}
	})
	return tasks
}

func rewrite(t task, localPath string) {
	t.node.Raw = strings.Replace(t.node.Raw, t.ref.Ref, parse.RebuildRef(t.ref, localPath), 1)
	if t.node.Kind == mdtree.KindImage {
		t.node.Image.LocalPath = localPath
	}
}

// fetch downloads one image with retries, writes it under the asset dir,
// and returns the reference path.
func (l *Localizer) fetch(ctx context.Context, t task) (string, error) {
	var body []byte
	var contentType string

	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.ref.URL, nil)
			if err != nil {
				return err
			}
			resp, err := l.client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("unexpected status %d", resp.StatusCode)
			}
			contentType = resp.Header.Get("Content-Type")
			body, err = io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
			return err
		},
		retry.Context(ctx),
		retry.Attempts(maxAttempts),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return "", err
	}

	name := l.filename(t.ref.URL, t.index, contentType, body)
	if err := os.WriteFile(filepath.Join(l.cfg.Dir, name), body, 0o644); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return path.Join(filepath.ToSlash(l.cfg.RefDir), name), nil
}

// filename expands the configured pattern and picks an extension from the
// URL path, falling back to the response content type.
func (l *Localizer) filename(rawURL string, index int, contentType string, body []byte) string {
	sum := sha256.Sum256(body)
	hash := fmt.Sprintf("%x", sum)[:6]

	name := strings.ReplaceAll(l.cfg.Pattern, "{index}", strconv.Itoa(index))
	name = strings.ReplaceAll(name, "{hash}", hash)

	return name + "." + extensionFor(rawURL, contentType)
}

func extensionFor(rawURL, contentType string) string {
	if u, err := url.Parse(rawURL); err == nil {
		if ext := strings.TrimPrefix(path.Ext(u.Path), "."); ext != "" {
			return strings.ToLower(ext)
		}
	}
	ct := strings.TrimPrefix(contentType, "image/")
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	ct = strings.TrimSpace(ct)
	if ct == "" || strings.ContainsRune(ct, '/') {
		return "jpg"
	}
	return ct
}
