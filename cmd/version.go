package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spigell/practice-evaluator/internal/evidence"
	"github.com/spigell/practice-evaluator/internal/rubric"
	"github.com/spigell/practice-evaluator/internal/taxonomy"
)

// Actual version can be specified in build command.
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version, prompt revisions and supported variants",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("%s version: %s\n", app, version)
		fmt.Printf("prompts: %s, %s\n", evidence.PromptVersion, rubric.PromptVersion)

		variants := make([]string, 0, 2)
		for _, v := range taxonomy.Variants() {
			variants = append(variants, string(v))
		}
		fmt.Printf("variants: %s\n", strings.Join(variants, ", "))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
