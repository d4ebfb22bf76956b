package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"postwire/pkg/config"
	"postwire/pkg/logger"
	"postwire/pkg/stream"
	"postwire/pkg/translator"
)

var (
	parseSendFrom  string
	parseChunkSize int
	parseEchoWire  bool
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a model output document from stdin into a post",
	Long:  "Reads a {\"response\": [...]} document from stdin, routes its fields into a post, and prints the result. Use --chunk-size to feed the parser in small fragments and exercise the incremental path.",
	Run: func(cmd *cobra.Command, args []string) {
		_ = args

		log, sendFrom := parseRuntime()
		text, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Printf("failed to read stdin: %v\n", err)
			return
		}

		trans := translator.New(log)
		fragments := stream.FromSlice(chunkText(string(text), parseChunkSize))

		fieldLog := log.With("component", "cmd.parse")
		p, err := trans.ToPost(context.Background(), fragments, sendFrom, translator.Hooks{
			OnField: func(fieldType string, content string) {
				fieldLog.Info("Field", "type", fieldType, "content_length", len(content))
			},
		})
		if err != nil {
			fmt.Printf("translate failed: %v\n", err)
			return
		}

		if parseEchoWire {
			wire, err := trans.Serialize(p)
			if err != nil {
				fmt.Printf("serialize failed: %v\n", err)
				return
			}
			fmt.Println(wire)
			return
		}

		encoded, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			fmt.Printf("encode post failed: %v\n", err)
			return
		}
		fmt.Println(string(encoded))
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVar(&parseSendFrom, "from", "", "sender identity for the post")
	parseCmd.Flags().IntVar(&parseChunkSize, "chunk-size", 0, "split input into fragments of this many bytes (0 feeds it whole)")
	parseCmd.Flags().BoolVar(&parseEchoWire, "echo-wire", false, "print the canonical wire document instead of the post")
}

// parseRuntime loads config and logging, falling back to sane defaults when no
// config file is present, since parse works fully offline.
func parseRuntime() (*slog.Logger, string) {
	sendFrom := strings.TrimSpace(parseSendFrom)

	cfg, err := config.LoadConfig()
	if err != nil {
		cfg = &config.Config{}
		if sendFrom == "" {
			sendFrom = "Agent"
		}
	}
	if sendFrom == "" {
		sendFrom = cfg.Defaults.SendFrom
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(log)

	return log, sendFrom
}

// chunkText splits text into size-byte fragments; size <= 0 keeps it whole.
func chunkText(text string, size int) []string {
	if size <= 0 || size >= len(text) {
		return []string{text}
	}

	fragments := make([]string, 0, len(text)/size+1)
	for start := 0; start < len(text); start += size {
		end := min(start+size, len(text))
		fragments = append(fragments, text[start:end])
	}

	return fragments
}
