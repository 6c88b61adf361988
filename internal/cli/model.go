package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"prcheck/internal/model"
	"prcheck/internal/report"
)

var modelInfoOpts struct {
	dir     string
	name    string
	version string
	load    bool
}

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Inspect detection model artifacts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var modelInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print metadata and classes of a model version",
	Long: `Print the metadata and class names of one model version.

Artifacts are read from DIR/NAME/VERSION/{metadata.yaml,labels.yaml}.
With --load the weights file (model.pt) is loaded as well, which fails when
it is missing or empty.

Examples:
  prcheck model info --dir ./models --name widgets --version v2
  prcheck model info --dir ./models --name widgets --version v2 --load
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := model.Store{Dir: modelInfoOpts.dir}
		md, err := store.Metadata(modelInfoOpts.name, modelInfoOpts.version)
		if err != nil {
			return err
		}
		classes, err := store.Classes(modelInfoOpts.name, modelInfoOpts.version)
		if err != nil {
			return err
		}
		weights, err := store.Path(modelInfoOpts.name, modelInfoOpts.version, model.WeightsFile)
		if err != nil {
			return err
		}
		if err := printModelInfo(cmd.OutOrStdout(), md, classes, weights); err != nil {
			return err
		}
		if !modelInfoOpts.load {
			return nil
		}
		h := model.NewHandle(store, model.ArtifactLoader{}, modelInfoOpts.name, modelInfoOpts.version)
		return printLoadedModel(cmd.Context(), cmd.OutOrStdout(), h)
	},
}

func printLoadedModel(ctx context.Context, w io.Writer, h *model.Handle) error {
	det, err := h.Get(ctx)
	if err != nil {
		return err
	}
	size := "unknown size"
	if a, ok := det.(*model.Artifact); ok {
		size = fmt.Sprintf("%d bytes", a.Size)
	}
	fmt.Fprintf(w, "\nLoaded: %s, %d classes\n", size, len(det.Classes()))
	return nil
}

func printModelInfo(w io.Writer, md *model.Metadata, classes []string, weights string) error {
	// labels.yaml wins over the classes listed in metadata.yaml.
	if len(classes) == 0 {
		classes = md.Classes
	}
	input := "-"
	if md.InputSize > 0 {
		input = strconv.Itoa(md.InputSize)
	}

	table := report.NewMarkdownTable(w, []string{"Field", "Value"})
	for _, row := range [][]string{
		{"Name", md.Name},
		{"Version", md.Version},
		{"Description", md.Description},
		{"Input size", input},
		{"Classes", fmt.Sprintf("%d", len(classes))},
		{"Weights", weights},
	} {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	if len(classes) > 0 {
		fmt.Fprintf(w, "\nClasses: %s\n", strings.Join(classes, ", "))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(modelCmd)
	modelCmd.AddCommand(modelInfoCmd)
	modelInfoCmd.Flags().StringVar(&modelInfoOpts.dir, "dir", "models", "Directory holding model artifacts")
	modelInfoCmd.Flags().StringVar(&modelInfoOpts.name, "name", "", "Model name")
	modelInfoCmd.Flags().StringVar(&modelInfoOpts.version, "version", "", "Model version")
	modelInfoCmd.Flags().BoolVar(&modelInfoOpts.load, "load", false, "Also load the weights file")
	_ = modelInfoCmd.MarkFlagRequired("name")
	_ = modelInfoCmd.MarkFlagRequired("version")
}
