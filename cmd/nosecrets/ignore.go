package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/casoon/nosecrets-go/pkg/filter"
	"github.com/casoon/nosecrets-go/pkg/pathutil"
	"github.com/casoon/nosecrets-go/pkg/vcs"
)

var (
	ignorePath string
	ignoreFile string
)

var ignoreCmd = &cobra.Command{
	Use:   "ignore <fingerprint>",
	Short: "Add an ignore entry to .nosecretsignore",
	Args:  cobra.ExactArgs(1),
	RunE:  runIgnore,
}

func init() {
	ignoreCmd.Flags().StringVar(&ignorePath, "path", "", "scope the ignore to a path glob")
	ignoreCmd.Flags().StringVar(&ignoreFile, "file", "", "override the .nosecretsignore location")
}

func runIgnore(cmd *cobra.Command, args []string) error {
	fingerprint := args[0]

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("reading current directory: %w", err)
	}
	root := cwd
	if repoRoot, ok, err := vcs.DiscoverRoot(cwd); err != nil {
		return fmt.Errorf("discovering repository root: %w", err)
	} else if ok {
		root = repoRoot
	}

	target := ignoreFile
	if target == "" {
		target = filepath.Join(root, filter.IgnoreFileName)
	}

	entry := fingerprint
	if ignorePath != "" {
		entry = fingerprint + ":" + pathutil.NormalizeGlob(ignorePath)
	}

	if err := appendIgnoreEntry(target, entry); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added ignore entry to %s\n", target)
	return nil
}

func appendIgnoreEntry(path, entry string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	_, err = fmt.Fprintln(f, entry)
	return err
}
