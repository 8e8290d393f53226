package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/samsaffron/mdreveal/internal/segment"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	segmentFormat    string
	segmentRecords   bool
	segmentTokens    bool
	segmentMessageID string
)

var segmentCmd = &cobra.Command{
	Use:   "segment [file|-]",
	Short: "Split a Markdown document into top-level blocks",
	Long: `Split a Markdown document into the blocks a streaming renderer would
show. Reads stdin when no file (or "-") is given.

Examples:
  mdreveal segment notes.md
  mdreveal segment --format yaml notes.md
  mdreveal segment --records --message-id msg-1 notes.md
  mdreveal segment --tokens notes.md      # raw tokenizer output`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSegment,
}

func init() {
	segmentCmd.Flags().StringVarP(&segmentFormat, "format", "f", "text", "Output format: text, json or yaml")
	segmentCmd.Flags().BoolVar(&segmentRecords, "records", false, "Emit message-block records instead of bare blocks")
	segmentCmd.Flags().BoolVar(&segmentTokens, "tokens", false, "Emit the top-level tokens before merging")
	segmentCmd.Flags().StringVar(&segmentMessageID, "message-id", "", "Message ID for --records (default: random UUID)")
	segmentCmd.MarkFlagsMutuallyExclusive("records", "tokens")
	if err := segmentCmd.RegisterFlagCompletionFunc("format", formatCompletion); err != nil {
		panic("failed to register format completion: " + err.Error())
	}
	rootCmd.AddCommand(segmentCmd)
}

func formatCompletion(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{"text", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
}

func runSegment(cmd *cobra.Command, args []string) error {
	switch segmentFormat {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", segmentFormat)
	}

	src, _, err := readSource(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	switch {
	case segmentTokens:
		return writeTokens(w, segmentFormat, segment.Tokenize(src))
	case segmentRecords:
		id := segmentMessageID
		if id == "" {
			id = uuid.NewString()
		}
		records := segment.SplitIntoRecords(src, segment.RecordOptions{MessageID: id})
		return writeRecords(w, segmentFormat, records)
	default:
		return writeBlocks(w, segmentFormat, segment.Segment(src))
	}
}

func writeBlocks(w io.Writer, format string, blocks []string) error {
	if blocks == nil {
		blocks = []string{}
	}
	switch format {
	case "json":
		return writeJSON(w, blocks)
	case "yaml":
		return writeYAML(w, blocks)
	}
	for i, b := range blocks {
		if _, err := fmt.Fprintf(w, "--- block %d (%d bytes) ---\n%s\n", i, len(b), strings.TrimRight(b, "\n")); err != nil {
			return err
		}
	}
	return nil
}

func writeRecords(w io.Writer, format string, records []segment.Record) error {
	if records == nil {
		records = []segment.Record{}
	}
	switch format {
	case "json":
		return writeJSON(w, records)
	case "yaml":
		return writeYAML(w, records)
	}
	for _, r := range records {
		if _, err := fmt.Fprintf(w, "--- %s [%s/%s] ---\n%s\n", r.ID, r.Kind, r.Status, strings.TrimRight(r.Content, "\n")); err != nil {
			return err
		}
	}
	return nil
}

type tokenOutput struct {
	Kind  string `json:"kind" yaml:"kind"`
	Block bool   `json:"block,omitempty" yaml:"block,omitempty"`
	Raw   string `json:"raw" yaml:"raw"`
}

func writeTokens(w io.Writer, format string, tokens []segment.Token) error {
	out := make([]tokenOutput, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, tokenOutput{Kind: t.Kind.String(), Block: t.Block, Raw: t.Raw})
	}
	switch format {
	case "json":
		return writeJSON(w, out)
	case "yaml":
		return writeYAML(w, out)
	}
	for i, t := range out {
		if _, err := fmt.Fprintf(w, "%3d %-10s %q\n", i, t.Kind, t.Raw); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
