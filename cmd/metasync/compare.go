package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jafarshop/metasync/internal/domain"
	"github.com/jafarshop/metasync/internal/repository/files"
	apperrors "github.com/jafarshop/metasync/pkg/errors"
)

func newCompareCmd() *cobra.Command {
	var sourcePath string
	var targetPath string
	var output string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Diff two definition snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			sourceSet, err := loadSet(sourcePath)
			if err != nil {
				return err
			}
			targetSet, err := loadSet(targetPath)
			if err != nil {
				return err
			}

			entries := domain.Compare(sourceSet, targetSet)
			if err := files.SaveDiff(output, entries); err != nil {
				return err
			}

			counts := map[domain.DiffStatus]int{}
			for _, entry := range entries {
				counts[entry.Status]++
			}
			if !quiet {
				fmt.Printf("Compared %d source and %d target definitions\n", len(sourceSet), len(targetSet))
				fmt.Printf("  missing in target: %d\n", counts[domain.DiffStatusMissingInTarget])
				fmt.Printf("  extra in target:   %d\n", counts[domain.DiffStatusExtraInTarget])
				fmt.Printf("  changed:           %d\n", counts[domain.DiffStatusChanged])
			}
			fmt.Printf("Saved to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&sourcePath, "source", "", "source snapshot file")
	cmd.Flags().StringVar(&targetPath, "target", "", "target snapshot file")
	cmd.Flags().StringVar(&output, "output", "definitions_diff.json", "output file for the diff")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

func loadSet(path string) (domain.DefinitionSet, error) {
	snap, err := files.LoadSnapshot(path)
	if err != nil {
		return nil, err
	}
	set, err := snap.DefinitionSet()
	if err != nil {
		return nil, &apperrors.ErrFileFormat{Path: path, Reason: err.Error()}
	}
	return set, nil
}
