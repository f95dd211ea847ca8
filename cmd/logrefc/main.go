// Command logrefc is a thin CLI wrapping the pipeline package's
// Compress/Decompress functions with the path-based, flag-driven
// interface described as an external collaborator: filesystem access
// and flag parsing live here, not in the core codec.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/basilisk-io/logref/format"
	"github.com/basilisk-io/logref/pipeline"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "logrefc:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: logrefc <compress|decompress> [flags] <input> <output>")
	}

	runID := uuid.New().String()
	logger := zerolog.New(os.Stderr).With().Timestamp().Str("run_id", runID).Logger()

	switch args[0] {
	case "compress":
		return runCompress(args[1:], logger)
	case "decompress":
		return runDecompress(args[1:], logger)
	default:
		return fmt.Errorf("unknown subcommand %q", args[0])
	}
}

func runCompress(args []string, logger zerolog.Logger) error {
	fs := flag.NewFlagSet("compress", flag.ExitOnError)
	windowSize := fs.Int("window-size", 8, "sliding window size")
	threshold := fs.Float64("threshold", 0.06, "distance cutoff in [0,1] for accepting a reference")
	blockSize := fs.Int("block-size", 32*1024, "max records per block")
	compressor := fs.String("compressor", "none", "one of none|lzma|gzip|zstd|lz4|bzip2")
	distance := fs.String("distance", "minhash", "one of cosine|minhash|qgram")
	useApprox := fs.Bool("approx", true, "use the approximate q-gram aligner instead of exact substitution")
	q := fs.Int("q", 3, "q-gram length")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: logrefc compress [flags] <input> <output>")
	}

	compressorType, err := parseCompressor(*compressor)
	if err != nil {
		return err
	}
	distanceType, err := parseDistance(*distance)
	if err != nil {
		return err
	}

	cfg, err := pipeline.NewConfig(
		pipeline.WithWindowSize(*windowSize),
		pipeline.WithThreshold(*threshold),
		pipeline.WithBlockSize(*blockSize),
		pipeline.WithCompressor(compressorType),
		pipeline.WithDistance(distanceType),
		pipeline.WithApprox(*useApprox),
		pipeline.WithQ(*q),
		pipeline.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	in, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(fs.Arg(1))
	if err != nil {
		return err
	}
	defer out.Close()

	stats, err := pipeline.Compress(in, out, cfg)
	if err != nil {
		return err
	}

	logger.Info().
		Int("lines", stats.Lines).
		Int("matched", stats.MatchedLines).
		Int("literal", stats.LiteralLines).
		Int64("original_bytes", stats.OriginalSize).
		Int64("compressed_bytes", stats.CompressedSize).
		Float64("ratio", stats.CompressionRatio()).
		Dur("elapsed", time.Duration(stats.ElapsedSeconds*float64(time.Second))).
		Msg("compress complete")

	return nil
}

func runDecompress(args []string, logger zerolog.Logger) error {
	fs := flag.NewFlagSet("decompress", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: logrefc decompress <input> <output>")
	}

	in, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(fs.Arg(1))
	if err != nil {
		return err
	}
	defer out.Close()

	start := time.Now()
	if err := pipeline.Decompress(in, out); err != nil {
		return err
	}

	logger.Info().Dur("elapsed", time.Since(start)).Msg("decompress complete")

	return nil
}

func parseCompressor(s string) (format.CompressionType, error) {
	switch s {
	case "none":
		return format.CompressionNone, nil
	case "lzma":
		return format.CompressionLZMA, nil
	case "gzip":
		return format.CompressionGzip, nil
	case "zstd":
		return format.CompressionZstd, nil
	case "lz4":
		return format.CompressionLZ4, nil
	case "bzip2":
		return format.CompressionBZIP2, nil
	default:
		return 0, fmt.Errorf("unknown compressor %q", s)
	}
}

func parseDistance(s string) (format.DistanceType, error) {
	switch s {
	case "cosine":
		return format.DistanceCosine, nil
	case "minhash":
		return format.DistanceMinHash, nil
	case "qgram":
		return format.DistanceQGram, nil
	default:
		return 0, fmt.Errorf("unknown distance %q", s)
	}
}
