package hairstyle

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// ErrEmptyCollection is returned by traversal on a collection with no records.
var ErrEmptyCollection = errors.New("hairstyle collection is empty")

// MaskSource provides the raw mask bytes to save.
type MaskSource interface {
	Bytes() []byte
}

// MaskTarget receives raw mask bytes on load.
type MaskTarget interface {
	Load(raw []byte) error
}

type collection struct {
	dir     string
	name    string
	index   string
	counter uint64
	cursor  int
	records []Record
	logger  *zap.Logger
}

// Collection is an ordered list of saved hairstyles with a cyclic cursor, backed by an index
// file and one mask file per record. The filename counter only grows.
type Collection interface {
	// Name returns the prefix used for new mask file names.
	Name() string

	// Len returns the number of records.
	Len() int

	// Index returns the cursor position; 0 for an empty collection.
	Index() int

	// Counter returns the number the next saved record will use.
	Counter() uint64

	// Records returns a copy of the records in order.
	Records() []Record

	// Next advances the cursor with wrap-around and returns the record under it.
	//
	// Returns:
	//   - Record: the record now under the cursor
	//   - error: ErrEmptyCollection when there are no records
	Next() (Record, error)

	// Prev moves the cursor back with wrap-around and returns the record under it.
	//
	// Returns:
	//   - Record: the record now under the cursor
	//   - error: ErrEmptyCollection when there are no records
	Prev() (Record, error)

	// Recent returns the last appended record without moving the cursor.
	//
	// Returns:
	//   - Record: the most recent record
	//   - error: ErrEmptyCollection when there are no records
	Recent() (Record, error)

	// Save appends a record for style, writing the mask file and then the index file.
	//
	// Parameters:
	//   - style: the hairstyle to record
	//   - mask: the mask to persist
	//
	// Returns:
	//   - Record: the new record
	//   - error: error if either write fails
	Save(style Hairstyle, mask MaskSource) (Record, error)

	// LoadMask reads a record's mask file into dst.
	//
	// Parameters:
	//   - rec: the record
	//   - dst: the mask to overwrite
	//
	// Returns:
	//   - error: error if the file is missing or dst rejects the data
	LoadMask(rec Record, dst MaskTarget) error

	// Path returns the absolute-or-relative path of a record's mask file.
	Path(rec Record) string
}

var _ Collection = &collection{}

// NewCollection loads a collection from dir/index. A missing index file yields an empty
// collection. Malformed lines are skipped and records whose mask file is missing are dropped.
//
// Parameters:
//   - dir: the collection directory
//   - name: the mask file name prefix
//   - index: the index file name inside dir
//   - options: functional options
//
// Returns:
//   - Collection: the loaded collection
//   - error: error if the index file exists but cannot be read
func NewCollection(dir, name, index string, options ...CollectionBuilderOption) (Collection, error) {
	c := &collection{
		dir:    dir,
		name:   name,
		index:  index,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		opt(c)
	}
	if err := c.load(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *collection) load() error {
	f, err := os.Open(filepath.Join(c.dir, c.index))
	if errors.Is(err, os.ErrNotExist) {
		c.logger.Info("no hairstyle index, starting empty", zap.String("dir", c.dir), zap.String("index", c.index))
		return nil
	}
	if err != nil {
		return fmt.Errorf("open hairstyle index: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	first := true
	skipped, missing := 0, 0
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if first {
			first = false
			n, err := strconv.ParseUint(line, 10, 64)
			if err == nil {
				c.counter = n
				continue
			}
			c.logger.Warn("bad hairstyle counter line", zap.String("line", line), zap.Error(err))
		}
		if line == "" {
			continue
		}
		rec, err := ParseRecord(line)
		if err != nil {
			skipped++
			c.logger.Warn("skipping hairstyle record", zap.Error(err))
			continue
		}
		c.observe(rec.Filename)
		if _, err := os.Stat(c.Path(rec)); err != nil {
			missing++
			continue
		}
		c.records = append(c.records, rec)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read hairstyle index: %w", err)
	}
	c.logger.Info("loaded hairstyles",
		zap.String("dir", c.dir),
		zap.Int("records", len(c.records)),
		zap.Int("missing", missing),
		zap.Int("malformed", skipped),
		zap.Uint64("counter", c.counter))
	return nil
}

// observe raises the counter past any number already used by a file name with this
// collection's prefix, so a damaged counter line cannot cause a name to be reused.
func (c *collection) observe(filename string) {
	num, ok := strings.CutPrefix(strings.TrimSuffix(filename, ".style"), c.name)
	if !ok {
		return
	}
	if n, err := strconv.ParseUint(num, 10, 64); err == nil && n >= c.counter {
		c.counter = n + 1
	}
}

func (c *collection) Name() string { return c.name }

func (c *collection) Len() int { return len(c.records) }

func (c *collection) Index() int { return c.cursor }

func (c *collection) Counter() uint64 { return c.counter }

func (c *collection) Records() []Record {
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

func (c *collection) Next() (Record, error) {
	if len(c.records) == 0 {
		return Record{}, ErrEmptyCollection
	}
	c.cursor = (c.cursor + 1) % len(c.records)
	return c.records[c.cursor], nil
}

func (c *collection) Prev() (Record, error) {
	if len(c.records) == 0 {
		return Record{}, ErrEmptyCollection
	}
	c.cursor = (c.cursor - 1 + len(c.records)) % len(c.records)
	return c.records[c.cursor], nil
}

func (c *collection) Recent() (Record, error) {
	if len(c.records) == 0 {
		return Record{}, ErrEmptyCollection
	}
	return c.records[len(c.records)-1], nil
}

func (c *collection) Path(rec Record) string {
	return filepath.Join(c.dir, rec.Filename)
}

func (c *collection) Save(style Hairstyle, mask MaskSource) (Record, error) {
	rec := Record{
		Filename: c.name + strconv.FormatUint(c.counter, 10) + ".style",
		Style:    style,
	}
	c.counter++

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return Record{}, fmt.Errorf("create hairstyle dir: %w", err)
	}
	data := mask.Bytes()
	if err := os.WriteFile(c.Path(rec), data, 0o644); err != nil {
		return Record{}, fmt.Errorf("write mask %s: %w", rec.Filename, err)
	}
	c.records = append(c.records, rec)
	if err := c.writeIndex(); err != nil {
		return rec, err
	}
	c.logger.Info("saved hairstyle",
		zap.String("file", rec.Filename),
		zap.String("size", humanize.Bytes(uint64(len(data)))),
		zap.Int("records", len(c.records)))
	return rec, nil
}

// writeIndex replaces the index file through a temp file and rename.
func (c *collection) writeIndex() error {
	tmp, err := os.CreateTemp(c.dir, c.index+".*.tmp")
	if err != nil {
		return fmt.Errorf("create index temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	fmt.Fprintf(w, "%d\n", c.counter)
	for _, r := range c.records {
		fmt.Fprintln(w, r.String())
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("write index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close index temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(c.dir, c.index)); err != nil {
		return fmt.Errorf("replace index: %w", err)
	}
	return nil
}

func (c *collection) LoadMask(rec Record, dst MaskTarget) error {
	data, err := os.ReadFile(c.Path(rec))
	if err != nil {
		return fmt.Errorf("read mask %s: %w", rec.Filename, err)
	}
	if err := dst.Load(data); err != nil {
		return fmt.Errorf("load mask %s: %w", rec.Filename, err)
	}
	c.logger.Debug("loaded hairstyle mask",
		zap.String("file", rec.Filename),
		zap.String("size", humanize.Bytes(uint64(len(data)))))
	return nil
}
