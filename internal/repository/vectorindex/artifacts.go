package vectorindex

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var fileMagic = [4]byte{'S', 'D', 'X', 'I'}

const (
	fileVersion    uint32 = 1
	fileHeaderSize        = 16
)

// Paths locates the three index artifacts.
type Paths struct {
	Index string
	Meta  string
	Stats string
}

// Stats describes a built index.
type Stats struct {
	BuiltAt      string `json:"built_at"`
	Model        string `json:"model"`
	EmbeddingDim int    `json:"embedding_dim"`
	NumItems     int    `json:"num_items"`
	IndexType    string `json:"index_type"`
}

// Write persists the index, its metadata table and stats.
func Write(p Paths, x *Index, stats Stats) error {
	if err := writeIndexFile(p.Index, x); err != nil {
		return err
	}
	if err := writeJSON(p.Meta, x.meta); err != nil {
		return err
	}
	return writeJSON(p.Stats, stats)
}

// Read loads the index file and metadata table and checks they line up.
func Read(p Paths) (*Index, error) {
	dim, flat, err := readIndexFile(p.Index)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p.Meta)
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	var meta []Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode metadata %s: %w", p.Meta, err)
	}

	x, err := newFlat(dim, flat, meta)
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", p.Index, err)
	}
	return x, nil
}

// ReadStats loads the stats artifact.
func ReadStats(path string) (Stats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Stats{}, fmt.Errorf("read stats: %w", err)
	}
	var s Stats
	if err := json.Unmarshal(data, &s); err != nil {
		return Stats{}, fmt.Errorf("decode stats %s: %w", path, err)
	}
	return s, nil
}

// Layout: magic[4] | version u32 | dim u32 | count u32 | count*dim float32, little endian.
func writeIndexFile(path string, x *Index) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create index file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close index file: %w", cerr)
		}
	}()

	w := bufio.NewWriter(f)
	header := []uint32{fileVersion, uint32(x.dim), uint32(x.Len())}
	if _, err := w.Write(fileMagic[:]); err != nil {
		return fmt.Errorf("write index header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("write index header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, x.vectors); err != nil {
		return fmt.Errorf("write vectors: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush index file: %w", err)
	}
	return nil
}

func readIndexFile(path string) (int, []float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, fmt.Errorf("open index file: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return 0, nil, fmt.Errorf("stat index file: %w", err)
	}

	r := bufio.NewReader(f)
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return 0, nil, fmt.Errorf("read index header: %w", err)
	}
	if magic != fileMagic {
		return 0, nil, errors.New("not a staffdex index file")
	}
	var header [3]uint32
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return 0, nil, fmt.Errorf("read index header: %w", err)
	}
	version, dim, count := header[0], int64(header[1]), int64(header[2])
	if version != fileVersion {
		return 0, nil, fmt.Errorf("unsupported index version %d", version)
	}
	if dim == 0 {
		return 0, nil, errors.New("index dimension is zero")
	}
	if want := fileHeaderSize + 4*dim*count; fi.Size() != want {
		return 0, nil, fmt.Errorf("index file size %d, want %d", fi.Size(), want)
	}

	flat := make([]float32, dim*count)
	if err := binary.Read(r, binary.LittleEndian, flat); err != nil {
		return 0, nil, fmt.Errorf("read vectors: %w", err)
	}
	return int(dim), flat, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
