package pipeline

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/basilisk-io/logref/align"
	"github.com/basilisk-io/logref/bitio"
	"github.com/basilisk-io/logref/compress"
	"github.com/basilisk-io/logref/errs"
	"github.com/basilisk-io/logref/format"
	"github.com/basilisk-io/logref/internal/pool"
	"github.com/basilisk-io/logref/record"
	"github.com/basilisk-io/logref/similarity"
	"github.com/basilisk-io/logref/window"
)

const lineDelimiter = 0x0A

// Compress reads newline-delimited lines from r, matches each against the
// sliding window, accumulates records into blocks, and writes the
// resulting file to w. The leading byte of the file is the compressor id
// written uncompressed so Decompress can self-determine which codec
// wraps the rest of the stream before it has a decoded header to read
// one from; everything after it, including the file header, is the
// optional whole-file compression layer's payload.
func Compress(r io.Reader, w io.Writer, cfg *Config) (Stats, error) {
	input, err := io.ReadAll(r)
	if err != nil {
		return Stats{}, errs.NewIOError("read", err)
	}

	lines := scanLines(input)

	start := time.Now()

	var stats Stats
	stats.Lines = len(lines)
	stats.OriginalSize = int64(len(input))

	win := window.New(cfg.WindowSize)
	mh := similarity.NewMinHash(cfg.Q, 50)

	payload := pool.GetFileBuffer()
	defer pool.PutFileBuffer(payload)

	headerWriter := bitio.NewWriter()
	if err := headerWriter.Encode(uint32(cfg.WindowSize), 16); err != nil {
		return Stats{}, err
	}
	params := format.EncodeParams(cfg.Compressor, cfg.Distance, cfg.UseApprox)
	if err := headerWriter.Encode(uint32(params), 8); err != nil {
		return Stats{}, err
	}
	headerWriter.Pack()
	payload.Write(headerWriter.Bytes())

	var block []record.Record
	flush := func() error {
		if len(block) == 0 {
			return nil
		}

		encoded, err := record.Encode(block)
		if err != nil {
			return err
		}
		payload.Write(encoded)
		stats.Blocks++

		cfg.Logger.Debug().
			Int("records", len(block)).
			Int("bytes", len(encoded)).
			Msg("block flushed")

		block = block[:0]
		mh.Reset()

		return nil
	}

	for _, line := range lines {
		rec, matched := matchLine(win, mh, line, cfg)
		if matched {
			stats.MatchedLines++
		} else {
			stats.LiteralLines++
		}

		block = append(block, rec)
		win.Push(line)

		if len(block) >= cfg.BlockSize {
			if err := flush(); err != nil {
				return Stats{}, err
			}
		}
	}
	if err := flush(); err != nil {
		return Stats{}, err
	}

	codec, err := compress.CreateCodec(cfg.Compressor)
	if err != nil {
		return Stats{}, err
	}
	compressed, err := codec.Compress(payload.Bytes())
	if err != nil {
		return Stats{}, errs.NewCodecError("compress", err)
	}

	if _, err := w.Write([]byte{byte(cfg.Compressor)}); err != nil {
		return Stats{}, errs.NewIOError("write", err)
	}
	if _, err := w.Write(compressed); err != nil {
		return Stats{}, errs.NewIOError("write", err)
	}

	stats.CompressedSize = int64(1 + len(compressed))
	stats.ElapsedSeconds = time.Since(start).Seconds()

	cfg.Logger.Debug().
		Int("lines", stats.Lines).
		Int("blocks", stats.Blocks).
		Float64("ratio", stats.CompressionRatio()).
		Msg("compress finished")

	return stats, nil
}

// matchLine picks the closest window line for line, runs the configured
// aligner against it, and returns the resulting record. matched reports
// whether the record references the window rather than storing line
// literally.
func matchLine(win *window.Window, mh *similarity.MinHash, line []byte, cfg *Config) (record.Record, bool) {
	best := -1
	minDist := 1.0

	for i, candidate := range win.Lines() {
		var d float64
		switch cfg.Distance {
		case format.DistanceCosine:
			d = similarity.Cosine(candidate, line, cfg.Q)
		case format.DistanceQGram:
			d = similarity.QGram(candidate, line, cfg.Q)
		default:
			d = mh.Distance(candidate, line)
		}
		if d < minDist {
			minDist = d
			best = i
		}
	}

	if best == -1 || minDist >= cfg.Threshold {
		return record.Record{Matched: false, Literal: line}, false
	}

	reference := win.Lines()[best]

	var ops []align.Operation
	var cost float64
	if cfg.UseApprox {
		ops, cost = align.QGram(reference, line, cfg.Q)
	} else {
		ops, cost = align.Substitution(reference, line)
	}

	if cost > float64(len(line)) {
		return record.Record{Matched: false, Literal: line}, false
	}

	return record.Record{Matched: true, Ref: best, Ops: ops}, true
}

// Decompress reads a file previously produced by Compress from r and
// writes each reconstructed line, followed by a newline, to w.
func Decompress(r io.Reader, w io.Writer) error {
	input, err := io.ReadAll(r)
	if err != nil {
		return errs.NewIOError("read", err)
	}
	if len(input) < 1 {
		return fmt.Errorf("pipeline: %w: empty file", errs.ErrFormat)
	}

	compressorID := format.CompressionType(input[0])
	codec, err := compress.CreateCodec(compressorID)
	if err != nil {
		return err
	}
	payload, err := codec.Decompress(input[1:])
	if err != nil {
		return errs.NewCodecError("decompress", err)
	}

	headerReader := bitio.NewReader(payload)
	windowSize, err := headerReader.Decode(16)
	if err != nil {
		return err
	}
	// params (compressor/distance/use_approx) only matter while encoding;
	// the compressor id travels as the file's leading uncompressed byte
	// instead, so decode just needs to skip these 8 bits.
	if _, err := headerReader.Decode(8); err != nil {
		return err
	}
	if windowSize == 0 {
		return fmt.Errorf("pipeline: %w: window size is 0", errs.ErrFormat)
	}

	headerReader.Align()
	body := payload[len(payload)-headerReader.Remaining():]
	reader := bytes.NewReader(body)

	win := window.New(int(windowSize))

	for reader.Len() > 0 {
		records, err := record.DecodeFrom(reader)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			break
		}

		for _, rec := range records {
			var line []byte
			if rec.Matched {
				refLine, ok := win.At(rec.Ref)
				if !ok {
					return fmt.Errorf("pipeline: %w: reference offset %d out of window", errs.ErrFormat, rec.Ref)
				}
				line = align.Recover(rec.Ops, refLine)
			} else {
				line = rec.Literal
			}

			if _, err := w.Write(line); err != nil {
				return errs.NewIOError("write", err)
			}
			if _, err := w.Write([]byte{lineDelimiter}); err != nil {
				return errs.NewIOError("write", err)
			}

			win.Push(line)
		}
	}

	return nil
}

// scanLines splits data on the line delimiter. A single trailing
// delimiter does not produce a phantom empty final line; any other
// empty segment (including between or at the very start) is preserved.
func scanLines(data []byte) [][]byte {
	if len(data) == 0 {
		return nil
	}

	lines := bytes.Split(data, []byte{lineDelimiter})
	if len(lines) > 0 && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}

	return lines
}
