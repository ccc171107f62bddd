package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/casoon/nosecrets-go/pkg/filter"
	"github.com/casoon/nosecrets-go/pkg/prefilter"
	"github.com/casoon/nosecrets-go/pkg/report"
	"github.com/casoon/nosecrets-go/pkg/rule"
	"github.com/casoon/nosecrets-go/pkg/scanner"
	"github.com/casoon/nosecrets-go/pkg/types"
	"github.com/casoon/nosecrets-go/pkg/vcs"
)

var (
	scanStaged      bool
	scanInteractive bool
	scanFormat      string
	scanRulesPath   string
)

var scanCmd = &cobra.Command{
	Use:   "scan [paths...]",
	Short: "Scan files or staged changes for secrets",
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanStaged, "staged", false, "scan files staged for the next commit")
	scanCmd.Flags().BoolVar(&scanInteractive, "interactive", false, "ask to ignore each finding")
	scanCmd.Flags().StringVar(&scanFormat, "format", "text", "output format: text, json, sarif")
	scanCmd.Flags().StringVar(&scanRulesPath, "rules", "", "path to a custom rules file or directory, in place of the built-in catalog")
}

func runScan(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("reading current directory: %w", err)
	}

	repoRoot, inRepo, err := vcs.DiscoverRoot(cwd)
	if err != nil {
		return fmt.Errorf("discovering repository root: %w", err)
	}
	root := cwd
	if inRepo {
		root = repoRoot
	}

	cfg, err := filter.LoadConfig(root)
	if err != nil {
		return err
	}
	ignoreEntries, err := filter.LoadIgnoreFile(filepath.Join(root, filter.IgnoreFileName))
	if err != nil {
		return err
	}
	f, err := filter.New(cfg, ignoreEntries)
	if err != nil {
		return fmt.Errorf("building filter: %w", err)
	}

	rules, err := loadRules(scanRulesPath)
	if err != nil {
		return fmt.Errorf("loading rules: %w", err)
	}
	compiled, err := rule.Compile(rules)
	if err != nil {
		return fmt.Errorf("compiling rules: %w", err)
	}
	pf := prefilter.New(compiled)
	detector := scanner.New(compiled, pf, f)

	var files []string
	if scanStaged {
		if !inRepo {
			return fmt.Errorf("--staged requires a git repository")
		}
		files, err = vcs.StagedFiles(repoRoot)
		if err != nil {
			return err
		}
	} else {
		files, err = scanner.CollectFiles(root, args)
		if err != nil {
			return err
		}
	}

	diag := func(path string, err error) {
		fmt.Fprintf(cmd.ErrOrStderr(), "nosecrets: failed to scan %s: %s\n", path, err)
	}
	findings, err := detector.ScanFiles(context.Background(), root, files, diag)
	if err != nil {
		return fmt.Errorf("scanning: %w", err)
	}

	if scanInteractive {
		findings, err = interactiveFilter(cmd, root, findings)
		if err != nil {
			return err
		}
	}

	rep := report.New(findings)
	switch scanFormat {
	case "text":
		colorEnabled := term.IsTerminal(int(os.Stdout.Fd())) && os.Getenv("NO_COLOR") == ""
		color.NoColor = !colorEnabled
		if err := report.RenderText(cmd.OutOrStdout(), rep, colorEnabled); err != nil {
			return err
		}
	case "json":
		if err := report.RenderJSON(cmd.OutOrStdout(), rep); err != nil {
			return err
		}
	case "sarif":
		if err := report.RenderSARIF(cmd.OutOrStdout(), rep, version, rules); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown output format: %s", scanFormat)
	}

	if code := rep.ExitCode(); code != 0 {
		return exitError{code}
	}
	return nil
}

// exitError carries a process exit code through cobra's error-returning
// RunE without calling os.Exit directly, so scan logic stays testable
// in-process.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func (e exitError) ExitCode() int { return e.code }

func loadRules(customPath string) ([]*types.Rule, error) {
	loader := rule.NewLoader()
	if customPath == "" {
		return loader.LoadBuiltinRules()
	}
	return loader.LoadCustomRules(customPath)
}

func interactiveFilter(cmd *cobra.Command, root string, findings []types.Finding) ([]types.Finding, error) {
	if len(findings) == 0 {
		return findings, nil
	}
	ignorePath := filepath.Join(root, filter.IgnoreFileName)
	out := cmd.OutOrStdout()
	reader := bufio.NewReader(cmd.InOrStdin())

	var remaining []types.Finding
	for _, f := range findings {
		fmt.Fprintf(out, "\n%s:%d:%d %s (%s)\n", f.Path, f.Line, f.Column, f.RuleName, f.RuleID)
		fmt.Fprintf(out, "Fingerprint: %s\n", f.Fingerprint)
		fmt.Fprint(out, "Ignore this finding? [y/N] ")

		line, _ := reader.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		if answer == "y" || answer == "yes" {
			if err := appendIgnoreEntry(ignorePath, f.Fingerprint+":"+f.Path); err != nil {
				return nil, err
			}
			continue
		}
		remaining = append(remaining, f)
	}
	return remaining, nil
}
