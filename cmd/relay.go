package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"postwire/pkg/config"
	"postwire/pkg/logger"
	openaisource "postwire/pkg/source/openai"
	"postwire/pkg/translator"
)

var relayStopAfter string

var relayCmd = &cobra.Command{
	Use:   "relay [prompt]",
	Short: "Prompt the configured model and route its streamed output",
	Long:  "Sends a prompt to the configured model, parses the streamed response field by field while it is still generating, and prints the routed post message.",
	Run: func(cmd *cobra.Command, args []string) {
		prompt := strings.TrimSpace(strings.Join(args, " "))
		if prompt == "" {
			fmt.Println("a prompt is required")
			return
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("failed to load config: %v\n", err)
			return
		}

		appLogger, err := logger.New(cfg.Logging)
		if err != nil {
			fmt.Printf("failed to initialize logger: %v\n", err)
			return
		}
		slog.SetDefault(appLogger)
		log := slog.Default().With("component", "cmd.relay")

		client, err := openaisource.NewClient(cfg)
		if err != nil {
			log.Error("Failed to initialize model client", "error", err)
			return
		}

		runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		source, err := client.Stream(runCtx, prompt)
		if err != nil {
			log.Error("Failed to open model stream", "error", err)
			return
		}

		hooks := translator.Hooks{
			OnField: func(fieldType string, content string) {
				log.Info("Field completed", "type", fieldType, "content_length", len(content))
			},
		}
		if stopType := strings.TrimSpace(relayStopAfter); stopType != "" {
			hooks.EarlyStop = func(fieldType string, content string) bool {
				_ = content
				return fieldType == stopType
			}
		}

		p, err := translator.New(appLogger).ToPost(runCtx, source, cfg.Defaults.SendFrom, hooks)
		if err != nil {
			log.Error("Translation failed", "error", err)
			return
		}

		if p.SendTo != "" {
			fmt.Printf("%s -> %s\n", p.SendFrom, p.SendTo)
		}
		if p.Message != "" {
			fmt.Println(p.Message)
		}
		for _, attachment := range p.Attachments {
			fmt.Printf("[%s]\n%s\n", attachment.Type, attachment.Content)
		}
	},
}

func init() {
	rootCmd.AddCommand(relayCmd)
	relayCmd.Flags().StringVar(&relayStopAfter, "stop-after", "", "stop consuming the stream once a field of this type completes")
}
