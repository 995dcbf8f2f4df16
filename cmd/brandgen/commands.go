package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"brandforge/internal/app"
	"brandforge/internal/batch"
	"brandforge/internal/domain"
	"brandforge/internal/infra"
	"brandforge/internal/progress"
	"brandforge/internal/storage"
	"brandforge/pkg/zip"
)

func setup() (*infra.Config, *infra.Logger, error) {
	cfg, err := infra.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := infra.NewLoggerTo(os.Stderr, cfg.AppEnv)
	return cfg, &logger, nil
}

// runContext bounds a command by REQUEST_TIMEOUT_SECONDS, like the HTTP handlers.
func runContext(cmd *cobra.Command, cfg *infra.Config) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
}

func newGenerateCmd() *cobra.Command {
	var (
		only     []string
		outDir   string
		zipPath  string
		attempts bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an asset package",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(outputFlag)
			if err != nil {
				return err
			}
			file, err := loadGuidelineFile(guidelinesPath)
			if err != nil {
				return err
			}
			sel, err := selectionFor(file, only)
			if err != nil {
				return err
			}
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			orchestrator, err := app.NewOrchestrator(cfg, logger)
			if err != nil {
				return err
			}

			stderr := cmd.ErrOrStderr()
			sink := progress.NewAsync(func(e progress.Event) {
				fmt.Fprintln(stderr, progressLine(e))
			})
			ctx, cancel := runContext(cmd, cfg)
			defer cancel()
			pkg, err := orchestrator.Run(ctx, batch.Request{Guidelines: file.BrandGuidelines, Selection: sel}, sink)
			sink.Close()
			if err != nil {
				return err
			}

			if outDir != "" {
				var opts []storage.FileStoreOption
				if attempts {
					opts = append(opts, storage.WithAttempts())
				}
				store, err := storage.NewFileStore(outDir, opts...)
				if err != nil {
					return err
				}
				keys, err := store.SavePackage(cmd.Context(), pkg)
				if err != nil {
					return err
				}
				fmt.Fprintf(stderr, "wrote %d files to %s\n", len(keys), store.Root())
			}
			if zipPath != "" {
				if err := writeZip(zipPath, pkg); err != nil {
					return err
				}
				fmt.Fprintf(stderr, "wrote %s\n", zipPath)
			}

			s := summarize(pkg)
			return printOutput(cmd.OutOrStdout(), format, s, []string{"asset", "type", "score", "attempts", "corrected"}, s.rows())
		},
	}
	cmd.Flags().StringSliceVar(&only, "only", nil, "Categories to generate: logos, social, presentation, email, marketing")
	cmd.Flags().StringVar(&outDir, "out", "", "Directory to write images and package.json into")
	cmd.Flags().StringVar(&zipPath, "zip", "", "Write the package as a ZIP archive to this path")
	cmd.Flags().BoolVar(&attempts, "attempts", false, "With --out, also write the image of every attempt")
	return cmd
}

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Print the narrative brand analysis",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := loadGuidelineFile(guidelinesPath)
			if err != nil {
				return err
			}
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			orchestrator, err := app.NewOrchestrator(cfg, logger)
			if err != nil {
				return err
			}
			ctx, cancel := runContext(cmd, cfg)
			defer cancel()
			text, err := orchestrator.Analyze(ctx, file.BrandGuidelines)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a guidelines file without generating anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := loadGuidelineFile(guidelinesPath)
			if err != nil {
				return err
			}
			g := file.Normalize()
			if err := g.Validate(); err != nil {
				return err
			}
			sel, err := selectionFor(file, nil)
			if err != nil {
				return err
			}
			sel = sel.WithDefaults()
			if err := sel.Validate(); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: guidelines ok, %d assets selected\n", g.BrandName, len(batch.Expand(g, sel)))
			return err
		},
	}
}

func writeZip(path string, pkg *domain.AssetPackage) error {
	entries, err := storage.Entries(pkg)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create zip: %w", err)
	}
	if err := zip.WriteArchive(f, entries, pkg.CreatedAt); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func progressLine(e progress.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%3d%%] %s", e.Percent, e.Phase)
	if e.Category != "" {
		fmt.Fprintf(&b, " %s", e.Category)
	}
	if e.Asset != "" {
		fmt.Fprintf(&b, " %s", e.Asset)
	}
	if e.Total > 0 && e.Done > 0 {
		fmt.Fprintf(&b, " (%d/%d)", e.Done, e.Total)
	}
	return b.String()
}

type assetSummary struct {
	Name          string           `json:"name" yaml:"name"`
	Type          domain.AssetType `json:"type" yaml:"type"`
	Score         *int             `json:"score,omitempty" yaml:"score,omitempty"`
	Attempts      int              `json:"attempts" yaml:"attempts"`
	Selected      int              `json:"selected_attempt,omitempty" yaml:"selected_attempt,omitempty"`
	SelfCorrected bool             `json:"self_corrected" yaml:"self_corrected"`
	File          string           `json:"file" yaml:"file"`
}

type packageSummary struct {
	ID         string                        `json:"id" yaml:"id"`
	Brand      string                        `json:"brand" yaml:"brand"`
	BatchScore *domain.BatchConsistencyScore `json:"batch_score,omitempty" yaml:"batch_score,omitempty"`
	Assets     []assetSummary                `json:"assets" yaml:"assets"`
	Failures   []domain.AssetFailure         `json:"failures,omitempty" yaml:"failures,omitempty"`
	Campaign   *domain.CampaignContext       `json:"campaign,omitempty" yaml:"campaign,omitempty"`
	Notes      string                        `json:"notes,omitempty" yaml:"notes,omitempty"`
}

func summarize(pkg *domain.AssetPackage) packageSummary {
	s := packageSummary{
		ID:         pkg.ID,
		Brand:      pkg.BrandName,
		BatchScore: pkg.BatchScore,
		Failures:   pkg.Failures,
		Campaign:   pkg.Campaign,
		Notes:      pkg.GenerationNotes,
	}
	for _, a := range pkg.Assets {
		as := assetSummary{
			Name:          a.Name,
			Type:          a.Type,
			Attempts:      a.IterationCount,
			SelfCorrected: a.SelfCorrected,
			File:          storage.AssetKey(a),
		}
		if a.ConsistencyScore != nil {
			v := a.ConsistencyScore.OverallScore
			as.Score = &v
		}
		if it, ok := a.FinalIteration(); ok {
			as.Selected = it.Number
		}
		s.Assets = append(s.Assets, as)
	}
	return s
}

func (s packageSummary) rows() [][]string {
	rows := make([][]string, 0, len(s.Assets)+len(s.Failures))
	for _, a := range s.Assets {
		score := "-"
		if a.Score != nil {
			score = strconv.Itoa(*a.Score)
		}
		rows = append(rows, []string{a.Name, string(a.Type), score, strconv.Itoa(a.Attempts), strconv.FormatBool(a.SelfCorrected)})
	}
	for _, f := range s.Failures {
		rows = append(rows, []string{f.Name, string(f.Type), "failed", strconv.Itoa(f.Attempts), "false"})
	}
	return rows
}

