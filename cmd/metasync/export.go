package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jafarshop/metasync/internal/domain"
	"github.com/jafarshop/metasync/internal/repository/files"
	"github.com/jafarshop/metasync/internal/service"
	"github.com/jafarshop/metasync/internal/shopify"
)

func newExportCmd() *cobra.Command {
	var storeDomain string
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a store's metafield definitions to a snapshot file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			store, err := cfg.ResolveStore(storeDomain)
			if err != nil {
				return err
			}

			client := shopify.NewClient(store, cfg.APIVersion, logger)
			exporter := service.NewExporter(client, logger)

			if !quiet {
				fmt.Printf("Fetching metafield definitions from %s...\n", store.Domain)
			}

			snap, err := exporter.Export()
			if err != nil {
				return err
			}

			if output == "" {
				output = fmt.Sprintf("definitions_export_%s.json", storeLabel(store.Domain))
			}
			if err := files.SaveSnapshot(output, snap); err != nil {
				return err
			}

			if !quiet {
				for _, ownerType := range domain.AllOwnerTypes() {
					fmt.Printf("  %s: %d definitions\n", ownerType, len(snap[ownerType]))
				}
				fmt.Printf("Exported %d definitions\n", snap.Count())
			}
			fmt.Printf("Saved to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&storeDomain, "store", "", "store domain (e.g. mystore.myshopify.com)")
	cmd.Flags().StringVar(&output, "output", "", "output file path (default definitions_export_<store>.json)")
	_ = cmd.MarkFlagRequired("store")
	return cmd
}

// storeLabel turns mystore.myshopify.com into mystore for default filenames
func storeLabel(domain string) string {
	if i := strings.IndexByte(domain, '.'); i > 0 {
		return domain[:i]
	}
	return domain
}
