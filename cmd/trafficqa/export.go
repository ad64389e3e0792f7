package trafficqa

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vietlaw/trafficqa/pkg/config"
	"github.com/vietlaw/trafficqa/pkg/graph"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Build the knowledge graph and export it as JSON",
	Long: `Build the knowledge graph from the violations corpus and write the
node and edge lists as JSON, for inspection or for loading into other tools.`,
	RunE: runExport,
}

var exportOutput string

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	records, err := graph.LoadRecords(cfg.Corpus.Path)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}

	store := graph.NewStore()
	if err := store.Build(records); err != nil {
		return fmt.Errorf("build graph: %w", err)
	}

	out := os.Stdout
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	return store.ExportJSON(out)
}
