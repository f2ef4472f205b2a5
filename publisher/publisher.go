package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	pagesPath      = "/wp-json/wp/v2/pages"
	systemInfoPath = "/wp-json/elementor/v1/system-info"
	saveDraftPath  = "/wp-json/elementor/v1/document/save/draft"

	// Used when the site does not expose its Elementor version.
	defaultElementorVersion = "3.7.0"
)

// PublishParams describes the content to be published as a draft page.
type PublishParams struct {
	Title           string
	ContentHTML     string
	FocusKeyphrase  string
	MetaDescription string
	MetaTitle       string
	// ElementorData is the serialized builder tree stored double-encoded
	// in the page meta; empty when no template is configured.
	ElementorData string
}

// Result identifies the created draft page.
type Result struct {
	PostID int64
	Link   string
}

// Publisher creates Elementor draft pages over the WordPress REST API.
type Publisher struct {
	cfg     Config
	client  *http.Client
	verbose bool
	logger  *log.Logger
}

// New creates a Publisher. The credentials are validated here; no
// request is issued until PublishDraft.
func New(cfg Config, client *http.Client, verbose bool, logger *log.Logger) (*Publisher, error) {
	if !cfg.HasCredentials() {
		return nil, errors.New("config must include base_url, username, and app_password")
	}
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Publisher{
		cfg:     cfg,
		client:  client,
		verbose: verbose,
		logger:  logger,
	}, nil
}

func (p *Publisher) infof(format string, args ...interface{}) {
	if !p.verbose {
		return
	}
	p.logger.Printf("[INFO] "+format, args...)
}

// PublishDraft creates a draft page carrying the Yoast SEO meta and the
// Elementor document, then asks Elementor to pick the document up. The
// second step is best effort: older Elementor versions reject it but
// still read the meta on first edit.
func (p *Publisher) PublishDraft(ctx context.Context, params PublishParams) (Result, error) {
	if params.Title == "" {
		return Result{}, errors.New("title is required")
	}

	version := p.elementorVersion(ctx)
	p.infof("Using Elementor version %s", version)

	payload, err := buildPagePayload(params, version)
	if err != nil {
		return Result{}, err
	}

	res, err := p.createDraftPage(ctx, payload)
	if err != nil {
		return Result{}, err
	}
	p.infof("Draft page created: id=%d link=%s", res.PostID, res.Link)

	if params.ElementorData != "" {
		if err := p.saveElementorDraft(ctx, res.PostID, params.ElementorData); err != nil {
			p.logger.Printf("[WARN] elementor document save failed: %v", err)
		}
	}

	return res, nil
}

func (p *Publisher) endpoint(path string) string {
	return strings.TrimRight(p.cfg.BaseURL, "/") + path
}

func (p *Publisher) authorize(req *http.Request) {
	req.SetBasicAuth(p.cfg.Username, p.cfg.AppPassword)
}

// elementorVersion probes the site for its Elementor version, falling
// back to a safe default on any failure.
func (p *Publisher) elementorVersion(ctx context.Context) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint(systemInfoPath), nil)
	if err != nil {
		return defaultElementorVersion
	}
	p.authorize(req)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return defaultElementorVersion
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return defaultElementorVersion
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return defaultElementorVersion
	}
	if v := gjson.GetBytes(data, "elementor.version"); v.Exists() && v.String() != "" {
		return v.String()
	}
	return defaultElementorVersion
}

// buildPagePayload assembles the wp/v2/pages request body. The meta keys
// carry leading underscores and _elementor_data is a JSON string, not an
// object, which is why the meta block is set path-by-path.
func buildPagePayload(params PublishParams, elementorVersion string) ([]byte, error) {
	body, err := json.Marshal(map[string]string{
		"title":   params.Title,
		"content": params.ContentHTML,
		"status":  "draft",
	})
	if err != nil {
		return nil, err
	}

	meta := [][2]string{
		{"meta._elementor_edit_mode", "builder"},
		{"meta._elementor_template_type", "page"},
		{"meta._elementor_version", elementorVersion},
		{"meta._wp_page_template", "elementor_header_footer"},
		{"meta._yoast_wpseo_focuskw", params.FocusKeyphrase},
		{"meta._yoast_wpseo_metadesc", params.MetaDescription},
		{"meta._yoast_wpseo_title", params.MetaTitle},
	}
	for _, kv := range meta {
		if body, err = sjson.SetBytes(body, kv[0], kv[1]); err != nil {
			return nil, err
		}
	}
	if params.ElementorData != "" {
		if body, err = sjson.SetBytes(body, "meta._elementor_data", params.ElementorData); err != nil {
			return nil, err
		}
	}
	return body, nil
}

func (p *Publisher) createDraftPage(ctx context.Context, payload []byte) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint(pagesPath), bytes.NewReader(payload))
	if err != nil {
		return Result{}, err
	}
	p.authorize(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := gjson.GetBytes(data, "message").String()
		if msg == "" {
			msg = strings.TrimSpace(string(data))
		}
		return Result{}, fmt.Errorf("create page failed: %s %s", resp.Status, msg)
	}

	id := gjson.GetBytes(data, "id").Int()
	if id == 0 {
		return Result{}, errors.New("create page: response missing id")
	}
	return Result{
		PostID: id,
		Link:   gjson.GetBytes(data, "link").String(),
	}, nil
}

// saveElementorDraft pushes the document through Elementor's own save
// endpoint so the editor opens with the injected content.
func (p *Publisher) saveElementorDraft(ctx context.Context, postID int64, elementorData string) error {
	if !gjson.Valid(elementorData) {
		return errors.New("elementor data is not valid JSON")
	}
	payload, err := json.Marshal(map[string]any{
		"post_id": postID,
		"status":  "draft",
	})
	if err != nil {
		return err
	}
	// elements is the parsed array here, unlike the double-encoded meta.
	payload, err = sjson.SetRawBytes(payload, "elements", []byte(elementorData))
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint(saveDraftPath), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	p.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("save draft failed: %s %s", resp.Status, strings.TrimSpace(string(data)))
	}
	return nil
}
