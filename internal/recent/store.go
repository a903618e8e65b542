// Package recent persists the most recently saved searches.
//
// Entries live in a flat INI file, one numbered group of keys per entry,
// most recent first:
//
//	[Recent]
//	query_1 = laptop $500..$1000
//	parts_1 = {"all_words":"laptop","range_from":"500",...}
//	id_1    = 7b0c...
//	saved_1 = 2024-03-15T10:00:00Z
package recent

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-ini/ini"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/calvinalkan/gsearch/internal/fs"
	"github.com/calvinalkan/gsearch/internal/query"
)

// MaxEntries is the most entries a store ever keeps.
const MaxEntries = 20

const (
	sectionName = "Recent"
	filePerms   = 0o600
	dirPerms    = 0o755
)

// The INI values carry JSON and user text: keep '#', ';' and trailing
// backslashes literal and never strip quotes around a quoted phrase.
var iniOptions = ini.LoadOptions{
	IgnoreContinuation:      true,
	IgnoreInlineComment:     true,
	PreserveSurroundedQuote: true,
}

// Entry is one saved search.
type Entry struct {
	ID    string           `json:"id"`
	Label string           `json:"label"`
	Saved time.Time        `json:"saved"`
	Spec  query.SearchSpec `json:"spec"`
}

// NewEntry snapshots spec, labelled with its built query string.
func NewEntry(spec query.SearchSpec, now time.Time) Entry {
	return Entry{
		ID:    uuid.NewString(),
		Label: query.Build(spec).Query,
		Saved: now.UTC().Truncate(time.Second),
		Spec:  spec,
	}
}

// Options configure a [Store]. Zero values select defaults.
type Options struct {
	// Limit caps the number of entries, at most [MaxEntries].
	Limit int

	FS     fs.FS
	Logger *zap.Logger
}

// Store reads and writes the recent-queries file at a fixed path.
type Store struct {
	path  string
	limit int
	fs    fs.FS
	log   *zap.Logger
}

// New returns a store backed by the file at path. Nothing is read until
// the first call.
func New(path string, opts Options) *Store {
	limit := opts.Limit
	if limit <= 0 || limit > MaxEntries {
		limit = MaxEntries
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = fs.NewReal()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{path: path, limit: limit, fs: fsys, log: logger}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns all entries, most recent first. A missing file is created
// empty and yields no entries. A damaged file yields the entries read before
// the damage together with an error wrapping [ErrCorrupt].
func (s *Store) Load() ([]Entry, error) {
	exists, err := s.fs.Exists(s.path)
	if err != nil {
		return nil, fmt.Errorf("stat recent file: %w", err)
	}

	if exists {
		return s.read()
	}

	lock, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer lock.Close()

	// Another process may have created it while we waited.
	exists, err = s.fs.Exists(s.path)
	if err != nil {
		return nil, fmt.Errorf("stat recent file: %w", err)
	}

	if exists {
		return s.read()
	}

	s.log.Debug("recent file missing, creating", zap.String("path", s.path))

	return nil, s.write(nil)
}

// Append stores entry as the most recent one. An existing entry that builds
// the same URL is replaced, and the oldest entries beyond the limit are
// dropped. Two searches with equal text but different types both stay.
func (s *Store) Append(entry Entry) error {
	if entry.Label == "" {
		return ErrEmptyQuery
	}

	key := query.Build(entry.Spec).URL

	return s.update(func(entries []Entry) ([]Entry, error) {
		out := make([]Entry, 0, len(entries)+1)
		out = append(out, entry)

		for _, e := range entries {
			if query.Build(e.Spec).URL != key {
				out = append(out, e)
			}
		}

		if len(out) > s.limit {
			s.log.Debug("evicting oldest recent entries", zap.Int("count", len(out)-s.limit))
			out = out[:s.limit]
		}

		return out, nil
	})
}

// Remove deletes the entry at index (0 = most recent) and returns it. The
// lookup and the write happen under one lock.
func (s *Store) Remove(index int) (Entry, error) {
	var removed Entry

	err := s.update(func(entries []Entry) ([]Entry, error) {
		if index < 0 || index >= len(entries) {
			return nil, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index+1, len(entries))
		}

		removed = entries[index]

		return append(entries[:index:index], entries[index+1:]...), nil
	})
	if err != nil {
		return Entry{}, err
	}

	return removed, nil
}

// Clear deletes every entry.
func (s *Store) Clear() error {
	return s.update(func([]Entry) ([]Entry, error) {
		return nil, nil
	})
}

// update runs fn on the current entries under the file lock and writes the
// result. A corrupt file is treated as empty and overwritten.
func (s *Store) update(fn func([]Entry) ([]Entry, error)) error {
	lock, err := s.lock()
	if err != nil {
		return err
	}
	defer lock.Close()

	entries, err := s.read()
	if err != nil {
		if !errors.Is(err, ErrCorrupt) {
			return err
		}

		s.log.Warn("discarding unreadable recent file", zap.String("path", s.path), zap.Error(err))
		entries = nil
	}

	next, err := fn(entries)
	if err != nil {
		return err
	}

	return s.write(next)
}

func (s *Store) lock() (fs.Locker, error) {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), dirPerms); err != nil {
		return nil, fmt.Errorf("create recent dir: %w", err)
	}

	lock, err := s.fs.Lock(s.path)
	if err != nil {
		return nil, fmt.Errorf("lock recent file: %w", err)
	}

	return lock, nil
}

func (s *Store) read() ([]Entry, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("read recent file: %w", err)
	}

	entries, err := decode(data)
	s.log.Debug("loaded recent entries", zap.String("path", s.path), zap.Int("count", len(entries)))

	if len(entries) > s.limit {
		entries = entries[:s.limit]
	}

	return entries, err
}

func (s *Store) write(entries []Entry) error {
	data, err := encode(entries)
	if err != nil {
		return err
	}

	if err := s.fs.WriteFileAtomic(s.path, data, filePerms); err != nil {
		return fmt.Errorf("write recent file: %w", err)
	}

	s.log.Debug("wrote recent entries", zap.String("path", s.path), zap.Int("count", len(entries)))

	return nil
}

func encode(entries []Entry) ([]byte, error) {
	file := ini.Empty(iniOptions)

	section, err := file.NewSection(sectionName)
	if err != nil {
		return nil, fmt.Errorf("encode recent: %w", err)
	}

	for i, e := range entries {
		n := strconv.Itoa(i + 1)

		p, err := json.Marshal(partsOf(e.Spec))
		if err != nil {
			return nil, fmt.Errorf("encode recent entry %s: %w", n, err)
		}

		saved := ""
		if !e.Saved.IsZero() {
			saved = e.Saved.UTC().Format(time.RFC3339)
		}

		for _, kv := range [][2]string{
			{"query_" + n, e.Label},
			{"parts_" + n, string(p)},
			{"id_" + n, e.ID},
			{"saved_" + n, saved},
		} {
			if _, err := section.NewKey(kv[0], kv[1]); err != nil {
				return nil, fmt.Errorf("encode recent entry %s: %w", n, err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := file.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode recent: %w", err)
	}

	return buf.Bytes(), nil
}

// decode reads entries until the first missing query_N key.
func decode(data []byte) ([]Entry, error) {
	file, err := ini.LoadSources(iniOptions, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	section, err := file.GetSection(sectionName)
	if err != nil {
		return nil, nil
	}

	var entries []Entry

	for i := 1; section.HasKey("query_" + strconv.Itoa(i)); i++ {
		n := strconv.Itoa(i)

		e := Entry{
			Label: section.Key("query_" + n).String(),
			ID:    section.Key("id_" + n).String(),
		}

		if raw := section.Key("parts_" + n).String(); raw != "" {
			var p parts
			if err := json.Unmarshal([]byte(raw), &p); err != nil {
				return entries, fmt.Errorf("%w: parts_%s: %w", ErrCorrupt, n, err)
			}

			e.Spec = p.spec()
		}

		if raw := section.Key("saved_" + n).String(); raw != "" {
			saved, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return entries, fmt.Errorf("%w: saved_%s: %w", ErrCorrupt, n, err)
			}

			e.Saved = saved
		}

		entries = append(entries, e)
	}

	return entries, nil
}
