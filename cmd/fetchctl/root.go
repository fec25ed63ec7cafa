package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/alkaid-labs/fetch"
	"github.com/alkaid-labs/fetch/config"
	"github.com/alkaid-labs/fetch/internal/logging"
)

var (
	flagBaseURL    string
	flagTimeout    time.Duration
	flagHeaders    []string
	flagToken      string
	flagErrorCodes []int64
	flagRequestIDs bool
	flagConfig     string
	flagVerbose    bool
)

var rootCmd = &cobra.Command{
	Use:          "fetchctl",
	Short:        "Issue HTTP requests through the fetch client",
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagBaseURL, "base-url", "", "base URL prepended to relative request URLs")
	pf.DurationVar(&flagTimeout, "timeout", 0, "per-request timeout (e.g. 10s)")
	pf.StringArrayVarP(&flagHeaders, "header", "H", nil, "common header, Name:value (repeatable)")
	pf.StringVar(&flagToken, "token", "", "Authorization header value injected per request")
	pf.Int64SliceVar(&flagErrorCodes, "error-code", nil, "body code treated as a failure (repeatable)")
	pf.BoolVar(&flagRequestIDs, "request-ids", false, "attach a generated X-Request-ID header")
	pf.StringVarP(&flagConfig, "config", "c", "", "config file (.json, .yaml, .toml)")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
}

func buildClient() (*fetch.Client, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	if flagConfig != "" {
		cfg, err = config.FromFile(flagConfig)
		if err != nil {
			return nil, err
		}
	}

	opts := cfg.Options()
	if flagBaseURL != "" {
		opts = append(opts, fetch.WithBaseURL(flagBaseURL))
	}
	if flagTimeout > 0 {
		opts = append(opts, fetch.WithTimeout(flagTimeout))
	}
	if headers := parseHeaders(flagHeaders); len(headers) > 0 {
		opts = append(opts, fetch.WithHeaders(headers))
	}
	if flagToken != "" {
		token := flagToken
		opts = append(opts, fetch.WithTokenSource(func() string { return token }))
	}
	if len(flagErrorCodes) > 0 {
		opts = append(opts, fetch.WithErrorCodes(flagErrorCodes...))
	}
	if flagRequestIDs {
		opts = append(opts, fetch.WithRequestIDs())
	}

	level := cfg.Logging.Level
	if flagVerbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Config{Level: level, Development: true})
	if err != nil {
		return nil, err
	}
	opts = append(opts, fetch.WithLogger(logger))

	return fetch.New(opts...)
}

func parseHeaders(raw []string) map[string]string {
	headers := make(map[string]string, len(raw))
	for _, h := range raw {
		name, value, ok := strings.Cut(h, ":")
		if !ok {
			continue
		}
		headers[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return headers
}

func parseParams(raw []string) map[string]any {
	params := make(map[string]any, len(raw))
	for _, p := range raw {
		name, value, ok := strings.Cut(p, "=")
		if !ok {
			continue
		}
		params[name] = value
	}
	return params
}

func parseData(raw string) (any, error) {
	if raw == "" {
		return nil, nil
	}
	var data any
	if err := sonic.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("invalid --data payload: %w", err)
	}
	return data, nil
}

func printResponse(resp *fetch.Response) error {
	statusLine := color.New(color.FgGreen, color.Bold)
	if resp.StatusCode() >= 300 {
		statusLine = color.New(color.FgRed, color.Bold)
	}
	statusLine.Printf("%s  (%s)\n", resp.Status(), resp.Time())

	if resp.Data == nil {
		return nil
	}
	pretty, err := sonic.MarshalIndent(resp.Data, "", "  ")
	if err != nil {
		fmt.Println(resp.String())
		return nil
	}
	fmt.Println(string(pretty))
	return nil
}
