// Package record implements the columnar block encoder/decoder: given a
// set of per-line match decisions (reference index + op-list, or a
// literal), it lays every field out column-by-column — method flags,
// reference indices, op counts, lengths, positions, then raw payload
// bytes — so that each column compresses against its own redundancy
// instead of against a single interleaved per-record stream. Length and
// position columns run through the delta-of-delta codec (package
// ts2diff) rather than raw fixed-block bit packing.
package record

import (
	"bytes"
	"encoding/binary"

	"github.com/basilisk-io/logref/align"
	"github.com/basilisk-io/logref/bitpack"
	"github.com/basilisk-io/logref/errs"
	"github.com/basilisk-io/logref/internal/pool"
	"github.com/basilisk-io/logref/rle"
	"github.com/basilisk-io/logref/ts2diff"
)

// byteWriter is the common Write method of bytes.Buffer and
// pool.ByteBuffer, letting writeU16/writeU32/writeBlob stage columns into
// either.
type byteWriter interface {
	Write([]byte) (int, error)
}

// Record is one compressed log line: either matched against a window
// entry (Ref + Ops rewrite the reference into the original line) or
// stored as a Literal when no reference scored well enough.
type Record struct {
	Matched bool
	Ref     int
	Ops     []align.Operation
	Literal []byte
}

const payloadDelimiter = 0x0A

func writeU16(buf byteWriter, v uint16) {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	buf.Write(tmp[:])
}

func writeU32(buf byteWriter, v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	buf.Write(tmp[:])
}

// writeBlob writes a 32-bit length prefix followed by data. The prefix
// is how the decoder knows where a sub-codec's self-contained byte blob
// ends inside the shared block buffer, since ts2diff operates on its own
// standalone byte slice rather than a shared cursor. It frames the
// ts2diff columns; the rle and bitpack columns use a 16-bit prefix
// written with writeU16 instead.
func writeBlob(buf byteWriter, data []byte) {
	writeU32(buf, uint32(len(data)))
	buf.Write(data)
}

func readU16(r *bytes.Reader) (uint16, error) {
	var tmp [2]byte
	if _, err := r.Read(tmp[:]); err != nil {
		return 0, errs.ErrUnderflow
	}

	return binary.BigEndian.Uint16(tmp[:]), nil
}

func readU32(r *bytes.Reader) (uint32, error) {
	var tmp [4]byte
	if _, err := r.Read(tmp[:]); err != nil {
		return 0, errs.ErrUnderflow
	}

	return binary.BigEndian.Uint32(tmp[:]), nil
}

func readBlob(r *bytes.Reader) ([]byte, error) {
	n, err := readU32(r)
	if err != nil {
		return nil, err
	}

	data := make([]byte, n)
	if n > 0 {
		if _, err := r.Read(data); err != nil {
			return nil, errs.ErrUnderflow
		}
	}

	return data, nil
}

// Encode lays out records column by column and returns the block's byte
// representation. The column data is staged in a pooled scratch buffer
// and copied out once, so callers never hold a slice aliasing pooled
// memory.
func Encode(records []Record) ([]byte, error) {
	var matched, literal []Record
	methodFlags := make([]int, len(records))
	for i, rec := range records {
		if rec.Matched {
			methodFlags[i] = 0
			matched = append(matched, rec)
		} else {
			methodFlags[i] = 1
			literal = append(literal, rec)
		}
	}

	buf := pool.GetBlockBuffer()
	defer pool.PutBlockBuffer(buf)

	writeU32(buf, uint32(len(matched)))
	writeU32(buf, uint32(len(literal)))

	methodBytes, intervalCount, err := rle.Encode(methodFlags)
	if err != nil {
		return nil, err
	}
	writeU16(buf, uint16(len(methodBytes)))
	buf.Write(methodBytes)
	writeU32(buf, uint32(intervalCount))

	if len(matched) > 0 {
		refs := make([]int, len(matched))
		for i, rec := range matched {
			refs[i] = rec.Ref
		}
		refBytes, err := bitpack.Encode(refs)
		if err != nil {
			return nil, err
		}
		writeU16(buf, uint16(len(refBytes)))
		buf.Write(refBytes)

		opCounts := make([]int, len(matched))
		for i, rec := range matched {
			opCounts[i] = len(rec.Ops)
		}
		opBytes, err := bitpack.Encode(opCounts)
		if err != nil {
			return nil, err
		}
		writeU16(buf, uint16(len(opBytes)))
		buf.Write(opBytes)
	}

	var delLens, insLens []int64
	for _, rec := range matched {
		for _, op := range rec.Ops {
			delLens = append(delLens, int64(op.DelLen))
		}
	}
	for _, rec := range matched {
		for _, op := range rec.Ops {
			insLens = append(insLens, int64(op.InsLen))
		}
	}
	lengthColumn := append(delLens, insLens...)
	lengthBytes, err := ts2diff.Encode(lengthColumn)
	if err != nil {
		return nil, err
	}
	writeBlob(buf, lengthBytes)

	var pBegin, pDelta []int64
	for _, rec := range matched {
		oldPos := -1
		for _, op := range rec.Ops {
			if oldPos == -1 {
				pBegin = append(pBegin, int64(op.Position))
			} else {
				pDelta = append(pDelta, int64(op.Position-oldPos))
			}
			oldPos = op.Position
		}
	}
	pBeginBytes, err := ts2diff.Encode(pBegin)
	if err != nil {
		return nil, err
	}
	writeBlob(buf, pBeginBytes)

	pDeltaBytes, err := ts2diff.Encode(pDelta)
	if err != nil {
		return nil, err
	}
	writeBlob(buf, pDeltaBytes)

	for _, rec := range matched {
		for _, op := range rec.Ops {
			buf.Write([]byte(op.Substr))
		}
	}
	for _, rec := range literal {
		buf.Write(rec.Literal)
		buf.Write([]byte{payloadDelimiter})
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

// Decode parses a block previously produced by Encode, assigning
// matched records their Ref and reconstructed Ops (with Substr filled
// in from the payload section) and literal records their raw bytes.
// Records are returned in their original method-column order.
func Decode(data []byte) ([]Record, error) {
	return DecodeFrom(bytes.NewReader(data))
}

// DecodeFrom parses one block directly off r, leaving r positioned
// immediately after the block's bytes. This lets a caller holding a
// shared reader over several concatenated blocks (the pipeline driver's
// block loop) decode them one at a time without an external length
// prefix, since every block is self-describing: its own leading
// records0_count/records1_count tell DecodeFrom exactly how much of the
// column data that follows belongs to it.
func DecodeFrom(r *bytes.Reader) ([]Record, error) {
	records0Count, err := readU32(r)
	if err != nil {
		return nil, err
	}
	records1Count, err := readU32(r)
	if err != nil {
		return nil, err
	}

	methodLen, err := readU16(r)
	if err != nil {
		return nil, err
	}
	methodBytes := make([]byte, methodLen)
	if methodLen > 0 {
		if _, err := r.Read(methodBytes); err != nil {
			return nil, errs.ErrUnderflow
		}
	}
	intervalCount, err := readU32(r)
	if err != nil {
		return nil, err
	}
	methodFlags, err := rle.Decode(methodBytes, int(intervalCount))
	if err != nil {
		return nil, err
	}

	var refs, opCounts []int
	if records0Count > 0 {
		refLen, err := readU16(r)
		if err != nil {
			return nil, err
		}
		refBytes := make([]byte, refLen)
		if refLen > 0 {
			if _, err := r.Read(refBytes); err != nil {
				return nil, errs.ErrUnderflow
			}
		}
		refs, err = bitpack.Decode(refBytes, int(records0Count))
		if err != nil {
			return nil, err
		}

		opLen, err := readU16(r)
		if err != nil {
			return nil, err
		}
		opBytes := make([]byte, opLen)
		if opLen > 0 {
			if _, err := r.Read(opBytes); err != nil {
				return nil, errs.ErrUnderflow
			}
		}
		opCounts, err = bitpack.Decode(opBytes, int(records0Count))
		if err != nil {
			return nil, err
		}
	}

	lengthBytes, err := readBlob(r)
	if err != nil {
		return nil, err
	}
	lengthColumn, err := ts2diff.Decode(lengthBytes)
	if err != nil {
		return nil, err
	}

	pBeginBytes, err := readBlob(r)
	if err != nil {
		return nil, err
	}
	pBegin, err := ts2diff.Decode(pBeginBytes)
	if err != nil {
		return nil, err
	}

	pDeltaBytes, err := readBlob(r)
	if err != nil {
		return nil, err
	}
	pDelta, err := ts2diff.Decode(pDeltaBytes)
	if err != nil {
		return nil, err
	}

	totalOps := 0
	for _, c := range opCounts {
		totalOps += c
	}
	if totalOps*2 > len(lengthColumn) {
		return nil, errs.ErrFormat
	}
	delLens := lengthColumn[:totalOps]
	insLens := lengthColumn[totalOps : totalOps*2]

	matched := make([]Record, records0Count)
	opIdx := 0
	beginIdx := 0
	deltaIdx := 0
	for i := range matched {
		count := 0
		if i < len(opCounts) {
			count = opCounts[i]
		}
		var ops []align.Operation
		if count > 0 {
			ops = make([]align.Operation, count)
		}
		oldPos := -1
		for k := 0; k < count; k++ {
			var pos int
			if oldPos == -1 {
				if beginIdx >= len(pBegin) {
					return nil, errs.ErrFormat
				}
				pos = int(pBegin[beginIdx])
				beginIdx++
			} else {
				if deltaIdx >= len(pDelta) {
					return nil, errs.ErrFormat
				}
				pos = oldPos + int(pDelta[deltaIdx])
				deltaIdx++
			}
			oldPos = pos

			ops[k] = align.Operation{
				Position: pos,
				DelLen:   int(delLens[opIdx]),
				InsLen:   int(insLens[opIdx]),
			}
			opIdx++
		}

		ref := 0
		if i < len(refs) {
			ref = refs[i]
		}
		matched[i] = Record{Matched: true, Ref: ref, Ops: ops}
	}

	for i := range matched {
		for k := range matched[i].Ops {
			n := matched[i].Ops[k].InsLen
			if n == 0 {
				continue
			}
			if r.Len() < n {
				return nil, errs.ErrUnderflow
			}
			substr := make([]byte, n)
			if _, err := r.Read(substr); err != nil {
				return nil, errs.ErrUnderflow
			}
			matched[i].Ops[k].Substr = string(substr)
		}
	}

	literal := make([]Record, records1Count)
	for i := range literal {
		var line []byte
		for {
			b, err := r.ReadByte()
			if err != nil {
				return nil, errs.ErrUnderflow
			}
			if b == payloadDelimiter {
				break
			}
			line = append(line, b)
		}
		literal[i] = Record{Literal: line}
	}

	result := make([]Record, 0, len(methodFlags))
	mi, li := 0, 0
	for _, flag := range methodFlags {
		if flag == 0 {
			result = append(result, matched[mi])
			mi++
		} else {
			result = append(result, literal[li])
			li++
		}
	}

	return result, nil
}
