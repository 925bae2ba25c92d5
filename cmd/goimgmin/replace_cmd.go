// cmd/goimgmin/replace_cmd.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/creativeyann17/go-imgmin/pkg/imgmin"
	"github.com/creativeyann17/go-imgmin/pkg/replace"
)

func replaceCmd() *cobra.Command {
	var marker string
	var recursive bool
	var archivePath string
	var dryRun bool
	var verbose bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "replace <directory>",
		Short: "Replace originals with their compressed versions",
		Long: `Swap every original image for its <name>_min.<ext> sibling. Each swap goes
through a backup file, so a failure never loses both the original and the
compressed content. Use --archive to keep all originals in a compressed tar.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &replace.Options{
				InputPath:   args[0],
				Marker:      marker,
				Recursive:   recursive,
				ArchivePath: archivePath,
				DryRun:      dryRun,
				Verbose:     verbose,
				Quiet:       quiet,
			}

			if err := opts.Validate(); err != nil {
				return err
			}

			log := func(format string, args ...interface{}) {
				if !quiet {
					fmt.Printf(format+"\n", args...)
				}
			}

			log("Replacing originals in %s", opts.InputPath)
			if archivePath != "" {
				log("Originals archived to %s", archivePath)
			}
			if dryRun {
				log("Mode: DRY-RUN (no files touched)")
			}
			log("")

			var progressCb replace.ProgressCallback
			if !quiet {
				progressCb = func(event replace.ProgressEvent) {
					switch event.Type {
					case replace.EventStart:
						fmt.Printf("Found %d replaceable files\n", event.Total)
					case replace.EventPairComplete:
						if verbose && !dryRun {
							fmt.Printf("  [%d/%d] replaced %s\n", event.Current, event.Total, event.OriginalPath)
						}
					case replace.EventError:
						fmt.Fprintf(os.Stderr, "  [%d/%d] failed %s\n", event.Current, event.Total, event.OriginalPath)
					}
				}
			}

			result, err := replace.Replace(opts, progressCb)
			if result == nil {
				return err
			}

			if dryRun && verbose {
				for _, o := range result.Outcomes {
					fmt.Printf("  would replace %s ← %s\n", o.OriginalPath, o.CompressedPath)
				}
			}
			if verbose && !dryRun {
				for _, o := range result.Outcomes {
					if o.Replaced && o.OriginalSize > 0 {
						fmt.Printf("  %s  %s → %s\n", o.OriginalPath,
							imgmin.FormatSize(o.OriginalSize),
							imgmin.FormatSize(o.NewSize))
					}
				}
			}

			fmt.Println()
			fmt.Print(result.Summary(dryRun))

			if err != nil {
				return err
			}
			if !result.Success() {
				return fmt.Errorf("finished with %d errors", len(result.Errors))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&marker, "marker", replace.DefaultMarker, "Suffix identifying compressed files")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", true, "Process subdirectories")
	cmd.Flags().StringVar(&archivePath, "archive", "", "Archive originals to this path before replacing (.tar.zst or .tar.xz)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List pairs without touching any file")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Show per-file results")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Minimal output (overrides verbose)")

	return cmd
}
