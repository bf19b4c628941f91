package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jafarshop/metasync/internal/domain"
	"github.com/jafarshop/metasync/internal/repository/files"
	"github.com/jafarshop/metasync/internal/service"
	"github.com/jafarshop/metasync/internal/shopify"
	apperrors "github.com/jafarshop/metasync/pkg/errors"
)

func newImportCmd() *cobra.Command {
	var storeDomain string
	var input string
	var dryRun bool
	var deleteExtra bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Apply a diff (or a full snapshot) to a target store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if deleteExtra && quiet {
				return &apperrors.ErrConfiguration{
					Key:    "--delete-extra",
					Reason: "deleting definitions requires interactive confirmation, which quiet mode suppresses",
				}
			}

			store, err := cfg.ResolveStore(storeDomain)
			if err != nil {
				return err
			}

			entries, err := loadImportEntries(input)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("Nothing to import")
				return nil
			}

			client := shopify.NewClient(store, cfg.APIVersion, logger)
			opts := service.ImportOptions{
				DryRun:      dryRun,
				DeleteExtra: deleteExtra,
				Out:         os.Stdout,
			}
			if !quiet {
				opts.Confirm = confirmPrompt
			}
			importer := service.NewImporter(client, logger, opts)

			if !quiet {
				if dryRun {
					fmt.Printf("Dry run against %s (%d entries):\n", store.Domain, len(entries))
				} else {
					fmt.Printf("Importing %d entries into %s...\n", len(entries), store.Domain)
				}
			}

			result := importer.Run(entries)
			logger.Info("import run finished",
				zap.Int("created", result.Created),
				zap.Int("updated", result.Updated),
				zap.Int("deleted", result.Deleted),
				zap.Int("failed", result.Failed))

			if !dryRun {
				fmt.Printf("Done: %d created, %d updated, %d deleted, %d skipped, %d extras reported, %d failed\n",
					result.Created, result.Updated, result.Deleted,
					result.SkippedExisting+result.SkippedType, result.ExtrasReported, result.Failed)
			}
			if result.Failed > 0 {
				return fmt.Errorf("%d entries failed to import", result.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&storeDomain, "store", "", "target store domain")
	cmd.Flags().StringVar(&input, "input", "definitions_diff.json", "diff or snapshot file to import")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be done without making changes")
	cmd.Flags().BoolVar(&deleteExtra, "delete-extra", false, "offer to delete definitions that exist only in the target")
	_ = cmd.MarkFlagRequired("store")
	return cmd
}

// loadImportEntries accepts either a diff report or a plain snapshot; a
// snapshot is treated as wholly missing from the target, which yields one
// create per definition.
func loadImportEntries(path string) ([]domain.DiffEntry, error) {
	kind, err := files.Sniff(path)
	if err != nil {
		return nil, err
	}

	switch kind {
	case files.KindDiff:
		return files.LoadDiff(path)
	case files.KindSnapshot:
		set, err := loadSet(path)
		if err != nil {
			return nil, err
		}
		return domain.Compare(set, domain.DefinitionSet{}), nil
	default:
		return nil, &apperrors.ErrFileFormat{Path: path, Reason: "unrecognized file contents"}
	}
}
