package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"auto_wp_page_publisher/batch"
	"auto_wp_page_publisher/elementor"
	"auto_wp_page_publisher/generator"
	"auto_wp_page_publisher/publisher"
	"auto_wp_page_publisher/server"
)

var verbose bool

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	configPath := flag.String("config", "config/config.json", "path to config.json")
	keywords := flag.String("keywords", "", "comma-separated keyword list")
	message := flag.String("message", "", "message template (inline, or @path to read a file)")
	enterprise := flag.String("enterprise", "", "enterprise name for {{enterprise}}")
	phone := flag.String("phone", "", "phone number for {{phone}}")
	siteURL := flag.String("site-url", "", "site URL for {{siteURL}}")
	templateArg := flag.String("template", "", `builder template: "preset", or path to a JSON export`)
	publish := flag.Bool("publish", false, "publish each post as a WordPress draft page")
	outDir := flag.String("out", "out", "directory for exported posts (empty disables export)")
	mock := flag.Bool("mock", false, "use the mock LLM instead of a real provider")
	serve := flag.Bool("serve", false, "start web server")
	addr := flag.String("addr", "", "http listen address when --serve (overrides config.server_addr)")
	flag.BoolVar(&verbose, "v", false, "enable info logs")
	flag.Parse()

	cfg, err := publisher.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	llm, err := buildLLM(cfg, *mock)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	agent, err := generator.NewAgent(llm)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Web server mode
	if *serve {
		srv, err := server.New(agent, cfg, log.Default())
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		listen := cfg.ServerAddr
		if *addr != "" {
			listen = *addr
		}
		if listen == "" {
			listen = ":8080"
		}
		log.Printf("Starting web server on %s", listen)
		if err := http.ListenAndServe(listen, srv.Routes()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if *keywords == "" || *message == "" {
		fmt.Fprintln(os.Stderr, "--keywords and --message are required")
		os.Exit(1)
	}

	msg, err := resolveMessage(*message)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	template, err := resolveTemplate(*templateArg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var pub batch.DraftPublisher
	if *publish {
		p, err := publisher.New(cfg, nil, verbose, log.Default())
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		pub = p
	}

	var exporter batch.Exporter
	if *outDir != "" {
		exporter = batch.FileExporter{Dir: *outDir}
	}

	job := batch.Job{
		Keywords: splitKeywords(*keywords),
		Message:  msg,
		Tags: generator.Tags{
			Enterprise: *enterprise,
			Phone:      *phone,
			SiteURL:    *siteURL,
		},
		Template:    template,
		AutoPublish: *publish,
	}

	runner := batch.NewRunner(agent, pub, exporter, log.Default())
	outcomes, err := runner.Run(context.Background(), job)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	failed := 0
	for oc := range outcomes {
		switch {
		case oc.Err != nil:
			failed++
			log.Printf("[cli] %s: %v", oc.Keyword, oc.Err)
		case oc.Published:
			log.Printf("[cli] %s: published %q post_id=%d link=%s", oc.Keyword, oc.Post.Title, oc.PostID, oc.Link)
		default:
			log.Printf("[cli] %s: generated %q", oc.Keyword, oc.Post.Title)
		}
		if oc.PublishErr != nil {
			log.Printf("[cli] %s: publish failed: %v", oc.Keyword, oc.PublishErr)
		}
		if oc.ExportPath != "" {
			log.Printf("[cli] %s: exported to %s", oc.Keyword, oc.ExportPath)
		}
	}

	status := runner.Status()
	log.Printf("[cli] batch %s: %s", status.State, status.Message)
	if failed > 0 || status.State != batch.StateCompleted {
		os.Exit(1)
	}
}

func buildLLM(cfg publisher.Config, mock bool) (generator.LLMClient, error) {
	if mock {
		return generator.MockLLM{}, nil
	}
	if cfg.LLM == nil || cfg.LLM.Provider == "" {
		return nil, fmt.Errorf("llm config missing; please set llm.provider/model/api_key in config")
	}
	switch cfg.LLM.Provider {
	case "openai":
		return generator.NewOpenAILLMFromConfig(&generator.LLMSettings{
			Provider: cfg.LLM.Provider,
			Model:    cfg.LLM.Model,
			APIKey:   cfg.LLM.APIKey,
			BaseURL:  cfg.LLM.BaseURL,
		})
	case "deepseek":
		// DeepSeek 提供 OpenAI 兼容接口，需填写 base_url（例如官方/网关地址）。
		if cfg.LLM.BaseURL == "" {
			return nil, fmt.Errorf("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
		return generator.NewOpenAILLMFromConfig(&generator.LLMSettings{
			Provider: cfg.LLM.Provider,
			Model:    cfg.LLM.Model,
			APIKey:   cfg.LLM.APIKey,
			BaseURL:  cfg.LLM.BaseURL,
		})
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.LLM.Provider)
	}
}

func resolveMessage(arg string) (string, error) {
	if strings.HasPrefix(arg, "@") {
		data, err := os.ReadFile(strings.TrimPrefix(arg, "@"))
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return arg, nil
}

func resolveTemplate(arg string) ([]*elementor.Node, error) {
	switch arg {
	case "":
		return nil, nil
	case "preset":
		return elementor.Preset()
	default:
		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, err
		}
		return elementor.ParseTemplate(string(data))
	}
}

func splitKeywords(arg string) []string {
	parts := strings.Split(arg, ",")
	seen := make(map[string]bool, len(parts))
	var out []string
	for _, p := range parts {
		k := strings.TrimSpace(p)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
