package trafficqa

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vietlaw/trafficqa/pkg/config"
	"github.com/vietlaw/trafficqa/pkg/types"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question about traffic violations",
	Long: `Ask a single question and print the answer.

The question is matched against the violations corpus; the answer includes
the fine range, the legal basis and any additional measures. Questions the
engine cannot ground in the corpus get an explicit "no data" answer.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

var askJSON bool

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the raw answer as JSON")
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Corpus.Path == "" {
		return fmt.Errorf("corpus path is required")
	}

	client, cleanup, err := initializeClient(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize client: %w", err)
	}
	defer cleanup()

	question := strings.Join(args, " ")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	answer, err := client.Ask(ctx, question)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(answer)
	}

	printAnswer(answer)
	return nil
}

func printAnswer(a *types.Answer) {
	if !a.HasData() {
		fmt.Println(a.Message)
		for _, s := range a.Suggestions {
			fmt.Printf("  - %s\n", s)
		}
		return
	}

	if a.Behavior != "" {
		fmt.Printf("Hành vi: %s\n", a.Behavior)
	}
	if a.Penalty != nil {
		if a.Penalty.Text != "" {
			fmt.Printf("Mức phạt: %s\n", a.Penalty.Text)
		} else {
			fmt.Printf("Mức phạt: %d - %d %s\n", a.Penalty.FineMin, a.Penalty.FineMax, a.Penalty.Currency)
		}
	}
	for _, m := range a.AdditionalMeasures {
		fmt.Printf("Hình thức bổ sung: %s\n", m)
	}
	for _, c := range a.Citations {
		fmt.Printf("Căn cứ: %s, %s\n", c.Article, c.Document)
	}
	for _, s := range a.SimilarCases {
		fmt.Printf("Tương tự: %s (%.2f)\n", s.Description, s.Weight)
	}
	fmt.Printf("Độ tin cậy: %s (%.2f)\n", a.Confidence, a.MatchScore)
}
