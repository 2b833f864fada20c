package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"adherence-sync/core/storage"
	"adherence-sync/feature/flights"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	loadFile    string
	loadObject  string
	loadPrefix  string
	loadArchive bool
)

// loadCmd loads one vendor batch, or every batch pending in the bucket.
var loadCmd = &cobra.Command{
	Use:   "load [source]",
	Short: "Load vendor flight-adherence batches",
	Long: `Loads vendor batches into the reporting database.

Examples:
  # Load a local file for airline ZZ
  load ZZ --file batch.json

  # Load one object, the source is taken from its folder when omitted
  load --object inbox/ZZ/2024-01-01.json

  # Load every pending object and move it to the archive folder
  load --prefix inbox --archive`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var source string
		if len(args) == 1 {
			source = args[0]
		}

		modes := 0
		for _, set := range []bool{loadFile != "", loadObject != "", loadPrefix != ""} {
			if set {
				modes++
			}
		}
		if modes != 1 {
			return fmt.Errorf("exactly one of --file, --object or --prefix is required")
		}
		if loadFile != "" && source == "" {
			return fmt.Errorf("a source is required with --file")
		}

		cfg, logg, err := bootstrap()
		if err != nil {
			return err
		}
		defer logg.Sync()

		db, err := connect(cfg, logg)
		if err != nil {
			return err
		}

		var client storage.Client
		if loadFile == "" {
			if client, err = storage.NewClient(cfg.Storage); err != nil {
				return fmt.Errorf("failed to create storage client: %w", err)
			}
		}

		svc := flights.NewService(db, client, cfg.Storage.Bucket, logg)

		var summaries []*flights.Summary
		switch {
		case loadFile != "":
			data, err := os.ReadFile(loadFile)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", loadFile, err)
			}
			summary, err := svc.LoadPayload(ctx, source, data)
			if err != nil {
				return err
			}
			summaries = append(summaries, summary)
		case loadObject != "":
			summary, err := svc.LoadObject(ctx, loadObject, source)
			if err != nil {
				return err
			}
			summaries = append(summaries, summary)
		default:
			archive := ""
			if loadArchive {
				archive = cfg.Storage.Archive
			}
			summaries, err = svc.LoadPrefix(ctx, loadPrefix, archive)
			logg.Info("Prefix processed", zap.String("prefix", loadPrefix), zap.Int("loaded", len(summaries)))
			if err != nil {
				return err
			}
		}

		out, err := json.MarshalIndent(summaries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal summary: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(loadCmd)

	loadCmd.Flags().StringVar(&loadFile, "file", "", "Load a local JSON file")
	loadCmd.Flags().StringVar(&loadObject, "object", "", "Load one object from the payload bucket")
	loadCmd.Flags().StringVar(&loadPrefix, "prefix", "", "Load every JSON object under a bucket prefix")
	loadCmd.Flags().BoolVar(&loadArchive, "archive", false, "Move loaded objects to the archive folder")
}
