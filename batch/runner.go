// Package batch drives the per-keyword generation pipeline: expand tags,
// call the model, recover a post, inject it into the template tree, then
// optionally publish and export. Keywords are processed strictly in
// order, one at a time, to keep load on the rate-limited model API
// bounded and progress reporting deterministic.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"auto_wp_page_publisher/elementor"
	"auto_wp_page_publisher/generator"
	"auto_wp_page_publisher/publisher"
)

// Precondition violations, reported before any network activity.
var (
	ErrNoKeywords  = errors.New("keyword list is empty")
	ErrNoGenerator = errors.New("generator agent is required")
)

// State of a batch run.
type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateAborted   State = "aborted"
)

// Job describes one batch submission. The template tree, when present,
// is owned by the run for its duration and mutated in place.
type Job struct {
	Keywords []string
	Message  string
	Tags     generator.Tags
	Template []*elementor.Node
	// Mapping overrides the derived first-heading/first-text targeting
	// when non-empty.
	Mapping     elementor.Mapping
	AutoPublish bool
}

// Outcome is the per-keyword result delivered on the run channel.
type Outcome struct {
	Keyword    string
	Index      int
	Post       generator.Post
	Published  bool
	PostID     int64
	Link       string
	ExportPath string
	// Err records a generation or injection failure for this keyword.
	Err error
	// PublishErr records a publish failure; the keyword still counts as
	// processed and its export is still attempted.
	PublishErr error
	// Fatal marks an unexpected failure that aborted the remaining
	// keywords.
	Fatal    bool
	Progress float64
}

// Status is a point-in-time snapshot of a run, safe for concurrent
// readers.
type Status struct {
	State          State   `json:"state"`
	CurrentKeyword string  `json:"current_keyword,omitempty"`
	Progress       float64 `json:"progress"`
	Message        string  `json:"message,omitempty"`
}

// DraftPublisher is the slice of the WordPress client the runner needs.
type DraftPublisher interface {
	PublishDraft(ctx context.Context, params publisher.PublishParams) (publisher.Result, error)
}

// Runner drives one keyword batch. A Runner is not reused across runs.
type Runner struct {
	agent    *generator.Agent
	pub      DraftPublisher
	exporter Exporter
	logger   *log.Logger

	mu     sync.Mutex
	status Status
}

// NewRunner creates a Runner. pub and exporter may be nil, disabling the
// publish and export steps respectively.
func NewRunner(agent *generator.Agent, pub DraftPublisher, exporter Exporter, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		agent:    agent,
		pub:      pub,
		exporter: exporter,
		logger:   logger,
		status:   Status{State: StateIdle},
	}
}

// Status returns the current snapshot of the run.
func (r *Runner) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

func (r *Runner) setStatus(s Status) {
	r.mu.Lock()
	r.status = s
	r.mu.Unlock()
}

// Run validates the job, then processes keywords in order on its own
// goroutine, delivering one Outcome per keyword. The channel closes when
// the run ends. A failure inside one keyword is recorded on its outcome
// and the loop continues; only a panic escaping the per-keyword guard
// (or context cancellation) aborts the remainder.
func (r *Runner) Run(ctx context.Context, job Job) (<-chan Outcome, error) {
	if r.agent == nil {
		return nil, ErrNoGenerator
	}
	if len(job.Keywords) == 0 {
		return nil, ErrNoKeywords
	}

	out := make(chan Outcome)
	r.setStatus(Status{State: StateRunning, Message: "starting"})
	go r.run(ctx, job, out)
	return out, nil
}

func (r *Runner) run(ctx context.Context, job Job, out chan<- Outcome) {
	defer close(out)
	total := len(job.Keywords)

	for i, keyword := range job.Keywords {
		progress := float64(i) / float64(total) * 100
		r.setStatus(Status{
			State:          StateRunning,
			CurrentKeyword: keyword,
			Progress:       progress,
			Message:        fmt.Sprintf("Processing keyword: %s (%d/%d)", keyword, i+1, total),
		})

		oc := r.processKeyword(ctx, job, i, keyword)
		oc.Progress = float64(i+1) / float64(total) * 100

		r.setStatus(Status{
			State:          StateRunning,
			CurrentKeyword: keyword,
			Progress:       oc.Progress,
			Message:        statusMessage(oc),
		})

		select {
		case out <- oc:
		case <-ctx.Done():
			r.setStatus(Status{State: StateAborted, Progress: oc.Progress, Message: ctx.Err().Error()})
			return
		}

		if oc.Fatal {
			r.setStatus(Status{State: StateAborted, Progress: oc.Progress, Message: statusMessage(oc)})
			return
		}
		if ctx.Err() != nil {
			r.setStatus(Status{State: StateAborted, Progress: oc.Progress, Message: ctx.Err().Error()})
			return
		}
	}

	r.setStatus(Status{State: StateCompleted, Progress: 100, Message: "All keywords processed"})
}

func statusMessage(oc Outcome) string {
	switch {
	case oc.Err != nil:
		return fmt.Sprintf("Error processing keyword %q: %v", oc.Keyword, oc.Err)
	case oc.PublishErr != nil:
		return fmt.Sprintf("Failed to publish %q: %v", oc.Keyword, oc.PublishErr)
	case oc.Published:
		return fmt.Sprintf("Published draft: %s", oc.Post.Title)
	default:
		return fmt.Sprintf("Processed keyword %q", oc.Keyword)
	}
}

// processKeyword runs the pipeline for a single keyword. The deferred
// recover keeps an unexpected panic from taking the whole batch down
// without a trace; it surfaces as a fatal outcome instead.
func (r *Runner) processKeyword(ctx context.Context, job Job, index int, keyword string) (oc Outcome) {
	oc = Outcome{Keyword: keyword, Index: index}
	defer func() {
		if rec := recover(); rec != nil {
			oc.Err = fmt.Errorf("unexpected failure processing %q: %v", keyword, rec)
			oc.Fatal = true
		}
	}()

	tags := job.Tags
	tags.Keyword = keyword
	message := generator.ExpandTags(job.Message, tags)

	post, err := r.agent.GeneratePost(ctx, message)
	if err != nil {
		oc.Err = fmt.Errorf("generate %q: %w", keyword, err)
		return oc
	}
	oc.Post = post

	html, err := publisher.RenderMarkdown(post.Content)
	if err != nil {
		// Raw content still publishes; WordPress tolerates plain text.
		html = post.Content
	}

	var elementorData string
	if len(job.Template) > 0 {
		mapping := job.Mapping
		if mapping.Empty() {
			mapping = elementor.DeriveMapping(job.Template, post.Title, html)
		}
		if err := elementor.Inject(job.Template, mapping); err != nil {
			oc.Err = fmt.Errorf("inject template for %q: %w", keyword, err)
			return oc
		}
		elementorData, err = elementor.Serialize(job.Template)
		if err != nil {
			oc.Err = fmt.Errorf("serialize template for %q: %w", keyword, err)
			return oc
		}
	}

	if job.AutoPublish && r.pub != nil {
		res, err := r.pub.PublishDraft(ctx, publisher.PublishParams{
			Title:           post.Title,
			ContentHTML:     html,
			FocusKeyphrase:  keyword,
			MetaDescription: post.MetaDescription,
			MetaTitle:       post.Title,
			ElementorData:   elementorData,
		})
		if err != nil {
			oc.PublishErr = err
			r.logger.Printf("[WARN] publish %q: %v", keyword, err)
		} else {
			oc.Published = true
			oc.PostID = res.PostID
			oc.Link = res.Link
		}
	}

	if r.exporter != nil {
		name := ExportFilename(keyword, time.Now())
		content := fmt.Sprintf("Keyword: %s\nTitle: %s\nContent:\n%s\n", keyword, post.Title, post.Content)
		path, err := r.exporter.Export(content, name)
		if err != nil {
			r.logger.Printf("[WARN] export %q: %v", keyword, err)
		} else {
			oc.ExportPath = path
		}
	}

	return oc
}
