package bruteforce

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/docubot-labs/docubot/internal/core/domain"
)

// File format, all little-endian:
//
//	magic    [4]byte  "DQVI"
//	version  uint16
//	dim      uint32
//	count    uint32
//	entries  count × { idLen uint16, id [idLen]byte, vec [dim]float32bits }
//
// Entries are written in insertion order so the tie-breaking order of
// equal-similarity results is identical after a reload. Vectors are
// stored as raw IEEE-754 bits and round-trip exactly.
var magic = [4]byte{'D', 'Q', 'V', 'I'}

const formatVersion = 1

// Persist writes the index atomically: a temp file in the same directory
// is renamed over the target, so a crash never leaves a truncated index.
func (idx *Index) Persist() error {
	if idx.path == "" {
		return nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(idx.path), 0o700); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(idx.path), ".index-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp index file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	if err := idx.writeTo(w); err != nil {
		tmp.Close()
		return fmt.Errorf("writing index: %w", err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("flushing index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp index file: %w", err)
	}
	if err := os.Rename(tmp.Name(), idx.path); err != nil {
		return fmt.Errorf("replacing index file: %w", err)
	}
	return nil
}

// Load restores the index from its file. A missing file leaves the index
// empty, which is the normal first-run state.
func (idx *Index) Load() error {
	if idx.path == "" {
		return nil
	}

	f, err := os.Open(idx.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("opening index file: %w", err)
	}
	defer f.Close()

	entries, err := idx.readFrom(bufio.NewReader(f))
	if err != nil {
		return fmt.Errorf("reading index file %s: %w", idx.path, err)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.entries = entries
	idx.byID = make(map[string]int, len(entries))
	for i, e := range entries {
		idx.byID[e.chunkID] = i
	}
	return nil
}

// writeTo serialises the index. Caller must hold at least a read lock.
func (idx *Index) writeTo(w io.Writer) error {
	if _, err := w.Write(magic[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(formatVersion)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(idx.dimension)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(idx.entries))); err != nil {
		return err
	}

	buf := make([]byte, idx.dimension*4)
	for _, e := range idx.entries {
		if len(e.chunkID) > math.MaxUint16 {
			return fmt.Errorf("chunk ID too long: %d bytes", len(e.chunkID))
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(len(e.chunkID))); err != nil {
			return err
		}
		if _, err := io.WriteString(w, e.chunkID); err != nil {
			return err
		}
		for i, v := range e.embedding {
			binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
		}
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

// readFrom deserialises entries and validates the header against the
// index configuration.
func (idx *Index) readFrom(r io.Reader) ([]entry, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}
	if header != magic {
		return nil, fmt.Errorf("not an index file (bad magic %q)", header[:])
	}

	var version uint16
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, err
	}
	if version != formatVersion {
		return nil, fmt.Errorf("unsupported index format version %d", version)
	}

	var dim, count uint32
	if err := binary.Read(r, binary.LittleEndian, &dim); err != nil {
		return nil, err
	}
	if int(dim) != idx.dimension {
		return nil, fmt.Errorf("%w: index file has dimension %d, configured %d", domain.ErrDimensionMismatch, dim, idx.dimension)
	}
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}

	entries := make([]entry, 0, count)
	idBuf := make([]byte, math.MaxUint16)
	for i := uint32(0); i < count; i++ {
		var idLen uint16
		if err := binary.Read(r, binary.LittleEndian, &idLen); err != nil {
			return nil, err
		}
		if _, err := io.ReadFull(r, idBuf[:idLen]); err != nil {
			return nil, err
		}

		vecBuf := make([]byte, dim*4)
		if _, err := io.ReadFull(r, vecBuf); err != nil {
			return nil, err
		}
		vec := make([]float32, dim)
		for j := range vec {
			vec[j] = math.Float32frombits(binary.LittleEndian.Uint32(vecBuf[j*4:]))
		}

		entries = append(entries, entry{chunkID: string(idBuf[:idLen]), embedding: vec})
	}
	return entries, nil
}
