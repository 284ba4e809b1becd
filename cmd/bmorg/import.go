package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bmorg/internal/export"
	"bmorg/internal/logger"
	"bmorg/internal/model"
	"bmorg/internal/parser"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Parse a bookmark file and report what it holds",
	Long: `Parse a Netscape bookmark file and report the bookmarks and folders found.

Malformed entries are skipped with a warning instead of aborting the run.

Examples:
  bmorg import bookmarks.html
  bmorg import bookmarks.html --json
  bmorg import bookmarks.html -o tree.json`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var importOutput string

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importOutput, "output", "o", "", "Write the parsed folder tree as JSON to this file")
}

func runImport(cmd *cobra.Command, args []string) error {
	log := newLogger()
	defer func() { _ = log.Sync() }()

	res, err := parseBookmarkFile(args[0])
	if err != nil {
		return err
	}
	log.Debug("parsed bookmark file",
		logger.String("file", args[0]),
		logger.Int("bookmarks", len(res.Bookmarks)),
		logger.Int("warnings", len(res.Warnings)))

	tree := model.BuildTree(res.Bookmarks)

	if importOutput != "" {
		file, err := os.Create(importOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()

		if err := export.WriteJSON(file, tree); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote folder tree to %s\n", importOutput)
	}

	if jsonOutput {
		return outputImportJSON(args[0], res, tree)
	}

	fmt.Printf("Parsed %s: %d bookmarks in %d folders\n", args[0], len(res.Bookmarks), tree.CountFolders())
	printParseWarnings(res.Warnings)

	return nil
}

func outputImportJSON(path string, res *parser.Result, tree *model.FolderNode) error {
	warnings := res.Warnings
	if warnings == nil {
		warnings = []parser.Warning{}
	}
	summary := struct {
		File      string           `json:"file"`
		Bookmarks int              `json:"bookmarks"`
		Folders   int              `json:"folders"`
		Warnings  []parser.Warning `json:"warnings"`
	}{
		File:      path,
		Bookmarks: len(res.Bookmarks),
		Folders:   tree.CountFolders(),
		Warnings:  warnings,
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(summary)
}
