package main

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"brandforge/internal/domain"
	"brandforge/internal/infra"
	"brandforge/internal/progress"
)

const guidelinesYAML = `brand_name: Acme
primary_color: "#112233"
secondary_color: "#445566"
primary_font: Inter
brand_tone: Confident
target_audience: Developers
industry: Software
campaign_name: Spring Launch
selection:
  logos:
    variations: [primary, icon_only]
  presentation:
    slide_count: 4
`

func writeGuidelines(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "guidelines.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write guidelines: %v", err)
	}
	return path
}

func offlineEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("NARRATIVE_PROVIDER", "gemini")
	t.Setenv("APP_ENV", "test")
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestLoadGuidelineFile(t *testing.T) {
	f, err := loadGuidelineFile(writeGuidelines(t, guidelinesYAML))
	if err != nil {
		t.Fatalf("loadGuidelineFile: %v", err)
	}
	if f.BrandName != "Acme" || f.CampaignName != "Spring Launch" {
		t.Fatalf("guidelines = %+v", f.BrandGuidelines)
	}
	if f.Selection == nil || f.Selection.Logos == nil || len(f.Selection.Logos.Variations) != 2 {
		t.Fatalf("selection = %+v", f.Selection)
	}
	if f.Selection.Social != nil {
		t.Fatalf("social = %+v, want nil", f.Selection.Social)
	}
}

func TestLoadGuidelineFileAcceptsJSON(t *testing.T) {
	f, err := loadGuidelineFile(writeGuidelines(t, `{"brand_name":"Acme","primary_color":"#112233"}`))
	if err != nil {
		t.Fatalf("loadGuidelineFile: %v", err)
	}
	if f.BrandName != "Acme" || f.PrimaryColor != "#112233" {
		t.Fatalf("guidelines = %+v", f.BrandGuidelines)
	}
}

func TestSelectionFor(t *testing.T) {
	f, err := loadGuidelineFile(writeGuidelines(t, guidelinesYAML))
	if err != nil {
		t.Fatalf("loadGuidelineFile: %v", err)
	}

	sel, err := selectionFor(f, []string{"logos", "social"})
	if err != nil {
		t.Fatalf("selectionFor: %v", err)
	}
	if sel.Logos == nil || len(sel.Logos.Variations) != 2 {
		t.Fatalf("logos = %+v, want the file's two variations", sel.Logos)
	}
	if sel.Social == nil || len(sel.Social.Platforms) != 3 {
		t.Fatalf("social = %+v, want defaults", sel.Social)
	}
	if sel.Presentation != nil {
		t.Fatalf("presentation = %+v, want nil", sel.Presentation)
	}

	if _, err := selectionFor(f, []string{"billboards"}); err == nil {
		t.Fatal("expected unknown category error")
	}

	all, err := selectionFor(guidelineFile{}, nil)
	if err != nil {
		t.Fatalf("selectionFor: %v", err)
	}
	if len(all.Requests()) != len(domain.AssetTypes) {
		t.Fatalf("default selection has %d categories", len(all.Requests()))
	}
}

func TestProgressLine(t *testing.T) {
	got := progressLine(progress.Event{Phase: progress.PhaseAssetFinished, Category: domain.AssetTypeLogo, Asset: "logo_primary", Percent: 45, Done: 1, Total: 3})
	if got != "[ 45%] asset_finished logo logo_primary (1/3)" {
		t.Fatalf("progressLine = %q", got)
	}
}

func TestValidateCommand(t *testing.T) {
	out, _, err := run(t, "validate", "-f", writeGuidelines(t, guidelinesYAML))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, "Acme: guidelines ok, 6 assets selected") {
		t.Fatalf("output = %q", out)
	}

	bad := strings.Replace(guidelinesYAML, `"#112233"`, "navy", 1)
	if _, _, err := run(t, "validate", "-f", writeGuidelines(t, bad)); err == nil {
		t.Fatal("expected invalid color to fail validation")
	}
}

func TestGenerateCommandOffline(t *testing.T) {
	offlineEnv(t)
	outDir := t.TempDir()
	zipPath := filepath.Join(t.TempDir(), "acme.zip")

	out, stderr, err := run(t, "generate", "-f", writeGuidelines(t, guidelinesYAML), "--only", "logos", "--out", outDir, "--zip", zipPath, "-o", "json")
	if err != nil {
		t.Fatalf("generate: %v (%s)", err, stderr)
	}
	var summary packageSummary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("decode summary: %v (%s)", err, out)
	}
	if len(summary.Assets) != 2 || summary.Campaign == nil {
		t.Fatalf("summary = %+v", summary)
	}
	if summary.Assets[0].Selected != 1 {
		t.Fatalf("selected attempt = %d, want 1", summary.Assets[0].Selected)
	}
	if !strings.Contains(stderr, "[100%] complete") {
		t.Fatalf("stderr = %q, want completion line", stderr)
	}
	if _, err := os.Stat(filepath.Join(outDir, "logo", "logo_icon_only.png")); err != nil {
		t.Fatalf("logo file missing: %v", err)
	}
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	defer zr.Close()
	if len(zr.File) != 3 {
		t.Fatalf("zip entries = %d, want 3", len(zr.File))
	}
}

func TestGenerateCommandWritesAttempts(t *testing.T) {
	offlineEnv(t)
	outDir := t.TempDir()

	_, stderr, err := run(t, "generate", "-f", writeGuidelines(t, guidelinesYAML), "--only", "logos", "--out", outDir, "--attempts")
	if err != nil {
		t.Fatalf("generate: %v (%s)", err, stderr)
	}
	if _, err := os.Stat(filepath.Join(outDir, "logo", "logo_icon_only", "attempt_1.png")); err != nil {
		t.Fatalf("attempt file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "package.json")); err != nil {
		t.Fatalf("manifest missing: %v", err)
	}
}

func TestRunContextAppliesRequestTimeout(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	ctx, cancel := runContext(cmd, &infra.Config{RequestTimeout: 2 * time.Second})
	defer cancel()
	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("expected a deadline")
	}
	if left := time.Until(deadline); left <= 0 || left > 2*time.Second {
		t.Fatalf("deadline in %v, want within 2s", left)
	}
}

func TestParseOutputFormat(t *testing.T) {
	if _, err := parseOutputFormat("xml"); err == nil {
		t.Fatal("expected xml to be rejected")
	}
	if f, _ := parseOutputFormat("YAML"); f != outputYAML {
		t.Fatalf("format = %q, want yaml", f)
	}
}
