// cmd/goimgmin/compress_cmd.go
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/creativeyann17/go-imgmin/pkg/compress"
	"github.com/creativeyann17/go-imgmin/pkg/imgmin"
)

func compressCmd() *cobra.Command {
	var quality int
	var marker string
	var maxThreads int
	var recursive bool
	var maxWidth, maxHeight int
	var discardLarger bool
	var useGitignore bool
	var dryRun bool
	var verbose bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "compress <directory> [quality]",
		Short: "Recompress images in a directory at the given quality",
		Long: `Recompress every JPG/JPEG/PNG file in a directory, writing the result
next to the original as <name>_min.<ext>. Originals are never modified.

Quality can be given as a positional argument or with --quality (1-100, default 50).`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 2 {
				q, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("quality must be a number: %q", args[1])
				}
				quality = q
			}

			opts := &compress.Options{
				InputPath:     args[0],
				Quality:       quality,
				Marker:        marker,
				MaxThreads:    maxThreads,
				Recursive:     recursive,
				MaxWidth:      maxWidth,
				MaxHeight:     maxHeight,
				DiscardLarger: discardLarger,
				UseGitignore:  useGitignore,
				DryRun:        dryRun,
				Verbose:       verbose,
				Quiet:         quiet,
			}

			if err := opts.Validate(); err != nil {
				return err
			}

			log := func(format string, args ...interface{}) {
				if !quiet {
					fmt.Printf(format+"\n", args...)
				}
			}

			log("Starting compression...")
			log("  Input:       %s", opts.InputPath)
			log("  Quality:     %d", opts.Quality)
			log("  Max threads: %d", opts.MaxThreads)
			if opts.MaxWidth > 0 || opts.MaxHeight > 0 {
				log("  Max size:    %dx%d", opts.MaxWidth, opts.MaxHeight)
			}
			if dryRun {
				log("  Mode:        DRY-RUN (no files written)")
			}
			log("")

			var progressCb compress.ProgressCallback
			var progress interface{ Wait() }
			if !quiet && !verbose {
				progressCb, progress = compress.ProgressBarCallback()
			}

			result, err := compress.Compress(opts, progressCb)
			if progress != nil {
				progress.Wait()
			}
			if err != nil {
				return err
			}

			if verbose {
				for _, fr := range result.Files {
					switch {
					case fr.Failed():
						fmt.Printf("  FAILED  %s: %v\n", fr.Path, fr.Err)
					case fr.Skipped:
						fmt.Printf("  skipped %s (output was larger)\n", fr.Path)
					default:
						fmt.Printf("  %s → %s  %s → %s (%.1f%%)\n",
							fr.Path, fr.OutputPath,
							imgmin.FormatSize(fr.OriginalSize),
							imgmin.FormatSize(fr.CompressedSize),
							fr.SavingsRatio())
					}
				}
				fmt.Println()
			}

			fmt.Print(compress.FormatSummary(result, opts))

			if !result.Success() {
				return fmt.Errorf("finished with %d errors", len(result.Errors))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&quality, "quality", "q", 50, "Compression quality (1-100)")
	cmd.Flags().StringVar(&marker, "marker", compress.DefaultMarker, "Suffix for compressed output files")
	cmd.Flags().IntVarP(&maxThreads, "threads", "t", 0, "Max concurrent workers (default: CPUs-1)")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", true, "Process subdirectories")
	cmd.Flags().IntVar(&maxWidth, "max-width", 0, "Downscale images wider than this (0 = off)")
	cmd.Flags().IntVar(&maxHeight, "max-height", 0, "Downscale images taller than this (0 = off)")
	cmd.Flags().BoolVar(&discardLarger, "discard-larger", false, "Drop outputs that did not shrink")
	cmd.Flags().BoolVar(&useGitignore, "use-gitignore", false, "Respect .gitignore files when scanning")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Recompress in memory without writing anything")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Show per-file results")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Minimal output (overrides verbose)")

	return cmd
}
