package parquetstore

import (
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/parquet-go/parquet-go"

	"github.com/riskibarqy/nfl-projections/internal/platform/logging"
)

const (
	featuresDir = "features"
	rawDir      = "raw"
)

var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

type Config struct {
	DataDir string
	// RawMaxAge bounds how long a cached raw season file is reused. Zero
	// keeps raw files until they are refreshed explicitly.
	RawMaxAge time.Duration
	Logger    *logging.Logger
}

// Store reads and writes Parquet files below one data directory.
type Store struct {
	dataDir   string
	rawMaxAge time.Duration
	logger    *logging.Logger
	now       func() time.Time
}

func NewStore(cfg Config) (*Store, error) {
	if cfg.DataDir == "" {
		return nil, crerr.New("parquet store data dir is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}

	return &Store{
		dataDir:   filepath.Clean(cfg.DataDir),
		rawMaxAge: cfg.RawMaxAge,
		logger:    cfg.Logger,
		now:       time.Now,
	}, nil
}

func (s *Store) DataDir() string {
	return s.dataDir
}

func (s *Store) path(parts ...string) string {
	return filepath.Join(append([]string{s.dataDir}, parts...)...)
}

func checkName(name string) error {
	if !validName.MatchString(name) {
		return crerr.Newf("invalid dataset name %q", name)
	}
	return nil
}

func writeRows[T any](path string, rows []T) error {
	return writeFile(path, func(w io.Writer) error {
		return encodeRows(w, rows)
	})
}

// writeFile writes path through a temporary file in the same directory, so
// readers never observe a partial file.
func writeFile(path string, encode func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return crerr.Wrapf(err, "create dir for %s", path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return crerr.Wrapf(err, "create temp file for %s", path)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := encode(tmp); err != nil {
		_ = tmp.Close()
		return crerr.Wrapf(err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		return crerr.Wrapf(err, "close %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return crerr.Wrapf(err, "rename into %s", path)
	}
	return nil
}

func encodeRows[T any](w io.Writer, rows []T) error {
	writer := parquet.NewGenericWriter[T](w, parquet.Compression(&parquet.Snappy))
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return err
	}
	return writer.Close()
}

func readRows[T any](path string) ([]T, error) {
	rows, err := parquet.ReadFile[T](path)
	if err != nil {
		return nil, crerr.Wrapf(err, "read %s", path)
	}
	return rows, nil
}

// fresh reports whether path exists and is younger than the raw max age.
func (s *Store) fresh(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if s.rawMaxAge <= 0 {
		return true
	}
	return s.now().Sub(info.ModTime()) <= s.rawMaxAge
}
