package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jafarshop/metasync/internal/domain"
	"github.com/jafarshop/metasync/internal/repository/files"
	"github.com/jafarshop/metasync/internal/service"
	"github.com/jafarshop/metasync/internal/shopify"
	apperrors "github.com/jafarshop/metasync/pkg/errors"
)

func newListCmd() *cobra.Command {
	var storeDomain string
	var input string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print metafield definitions from a live store or a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if (storeDomain == "") == (input == "") {
				return &apperrors.ErrConfiguration{Reason: "exactly one of --store or --input is required"}
			}

			if storeDomain != "" {
				store, err := cfg.ResolveStore(storeDomain)
				if err != nil {
					return err
				}
				client := shopify.NewClient(store, cfg.APIVersion, logger)
				snap, err := service.NewExporter(client, logger).Export()
				if err != nil {
					return err
				}
				printSnapshot(snap)
				return nil
			}

			kind, err := files.Sniff(input)
			if err != nil {
				return err
			}
			switch kind {
			case files.KindSnapshot:
				snap, err := files.LoadSnapshot(input)
				if err != nil {
					return err
				}
				printSnapshot(snap)
			case files.KindDiff:
				entries, err := files.LoadDiff(input)
				if err != nil {
					return err
				}
				printDiff(entries)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&storeDomain, "store", "", "store domain to list live definitions from")
	cmd.Flags().StringVar(&input, "input", "", "snapshot or diff file to list")
	return cmd
}

func printSnapshot(snap domain.Snapshot) {
	fmt.Printf("Total definitions: %d\n", snap.Count())
	for _, ownerType := range domain.AllOwnerTypes() {
		defs := snap[ownerType]
		if len(defs) == 0 {
			continue
		}
		fmt.Printf("\n%s (%d):\n", ownerType, len(defs))
		for _, def := range defs {
			fmt.Printf("  - %s (%s) - %s.%s\n", def.Name, def.Type, def.Namespace, def.Key)
		}
	}
}

func printDiff(entries []domain.DiffEntry) {
	counts := map[domain.DiffStatus]int{}
	for _, entry := range entries {
		counts[entry.Status]++
	}
	fmt.Printf("Diff entries: %d (%d missing, %d extra, %d changed)\n",
		len(entries),
		counts[domain.DiffStatusMissingInTarget],
		counts[domain.DiffStatusExtraInTarget],
		counts[domain.DiffStatusChanged])
	for _, entry := range entries {
		switch entry.Status {
		case domain.DiffStatusChanged:
			fmt.Printf("  [%s] %s: %v\n", entry.Status, entry.Identity, entry.ChangedFields)
		default:
			fmt.Printf("  [%s] %s\n", entry.Status, entry.Identity)
		}
	}
}
