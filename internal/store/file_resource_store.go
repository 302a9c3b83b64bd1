package store

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/MKhiriev/go-attendance-sync/internal/logger"
	"github.com/MKhiriev/go-attendance-sync/models"
)

const (
	lineTerminator = "\n"
	tmpSuffix      = ".tmp"

	maxLineSize = 1024 * 1024
)

type fileResourceStore struct {
	fs    afero.Fs
	dir   string
	locks Locker

	logger *logger.Logger
}

// NewFileResourceStore returns a [ResourceStore] keeping one flat text file
// per dataset under dir on fs. The directory is created when missing.
func NewFileResourceStore(fs afero.Fs, dir string, logger *logger.Logger) (ResourceStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		logger.Err(err).Str("func", "NewFileResourceStore").Str("dir", dir).Msg("error creating data directory")
		return nil, fmt.Errorf("%w: create data dir %s: %w", ErrStorageOpen, dir, err)
	}

	return &fileResourceStore{
		fs:     fs,
		dir:    dir,
		locks:  NewResourceLocks(),
		logger: logger,
	}, nil
}

func (s *fileResourceStore) Append(ctx context.Context, d models.Dataset, line string) error {
	if err := validateLine(line); err != nil {
		return err
	}
	if err := s.locks.Lock(d); err != nil {
		return err
	}
	defer s.locks.Unlock(d)

	f, err := s.fs.OpenFile(s.path(d), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		s.logger.Err(err).Str("func", "fileResourceStore.Append").Stringer("dataset", d).Msg("error opening dataset for append")
		return fmt.Errorf("%w: open %s for append: %w", ErrStorageOpen, d, err)
	}

	if err = writeAndSync(f, []byte(line+lineTerminator)); err != nil {
		s.logger.Err(err).Str("func", "fileResourceStore.Append").Stringer("dataset", d).Msg("error appending to dataset")
		return fmt.Errorf("%w: append to %s: %w", ErrStorageWrite, d, err)
	}

	return nil
}

func (s *fileResourceStore) Overwrite(ctx context.Context, d models.Dataset, lines []string, commit func() error) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %s", models.ErrUnknownDataset, d)
	}
	if !d.IsMirror() {
		return fmt.Errorf("%w: %s", ErrNotMirror, d)
	}

	var buf bytes.Buffer
	for _, line := range lines {
		if err := validateLine(line); err != nil {
			return err
		}
		buf.WriteString(line)
		buf.WriteString(lineTerminator)
	}

	if err := s.locks.Lock(d); err != nil {
		return err
	}
	defer s.locks.Unlock(d)

	var previous []byte
	if commit != nil {
		content, err := afero.ReadFile(s.fs, s.path(d))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Err(err).Str("func", "fileResourceStore.Overwrite").Stringer("dataset", d).Msg("error reading current content")
			return fmt.Errorf("%w: read %s: %w", ErrStorageOpen, d, err)
		}
		previous = content
	}

	if err := s.replace(d, buf.Bytes()); err != nil {
		return err
	}

	if commit == nil {
		return nil
	}
	if err := commit(); err != nil {
		// put the old content back so it stays consistent with the old offset
		if restoreErr := s.replace(d, previous); restoreErr != nil {
			s.logger.Err(restoreErr).Str("func", "fileResourceStore.Overwrite").Stringer("dataset", d).Msg("error restoring previous content")
			err = errors.Join(err, restoreErr)
		}
		return fmt.Errorf("commit overwrite of %s: %w", d, err)
	}

	return nil
}

// replace swaps the content of d for data through a synced temp file and a
// rename, so a power loss leaves either the old or the new content.
func (s *fileResourceStore) replace(d models.Dataset, data []byte) error {
	path := s.path(d)
	tmp := path + tmpSuffix

	f, err := s.fs.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		s.logger.Err(err).Str("func", "fileResourceStore.replace").Stringer("dataset", d).Msg("error opening temp file")
		return fmt.Errorf("%w: open %s for overwrite: %w", ErrStorageOpen, d, err)
	}

	if err = writeAndSync(f, data); err != nil {
		_ = s.fs.Remove(tmp)
		s.logger.Err(err).Str("func", "fileResourceStore.replace").Stringer("dataset", d).Msg("error writing temp file")
		return fmt.Errorf("%w: write %s: %w", ErrStorageWrite, d, err)
	}

	if err = s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		s.logger.Err(err).Str("func", "fileResourceStore.replace").Stringer("dataset", d).Msg("error replacing dataset file")
		return fmt.Errorf("%w: replace %s: %w", ErrStorageWrite, d, err)
	}

	return nil
}

func (s *fileResourceStore) ReadTail(ctx context.Context, d models.Dataset, from int) ([]string, error) {
	tail := make([]string, 0)
	err := s.scan(d, func(i int, line string) bool {
		if i >= from {
			tail = append(tail, line)
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	return tail, nil
}

func (s *fileResourceStore) Query(ctx context.Context, d models.Dataset, substring string) (string, error) {
	return s.QueryFunc(ctx, d, func(line string) bool {
		return strings.Contains(line, substring)
	})
}

func (s *fileResourceStore) QueryFunc(ctx context.Context, d models.Dataset, match func(line string) bool) (string, error) {
	var found string
	err := s.scan(d, func(_ int, line string) bool {
		if match(line) {
			found = line
			return false
		}
		return true
	})
	if err != nil {
		return "", err
	}

	return found, nil
}

func (s *fileResourceStore) ReadAll(ctx context.Context, d models.Dataset) (string, error) {
	if err := s.locks.Lock(d); err != nil {
		return "", err
	}
	defer s.locks.Unlock(d)

	content, err := afero.ReadFile(s.fs, s.path(d))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		s.logger.Err(err).Str("func", "fileResourceStore.ReadAll").Stringer("dataset", d).Msg("error reading dataset")
		return "", fmt.Errorf("%w: read %s: %w", ErrStorageOpen, d, err)
	}

	return string(content), nil
}

func (s *fileResourceStore) LineCount(ctx context.Context, d models.Dataset) (int, error) {
	count := 0
	err := s.scan(d, func(int, string) bool {
		count++
		return true
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (s *fileResourceStore) ClearAll(ctx context.Context, before func() error) error {
	s.locks.LockAll()
	defer s.locks.UnlockAll()

	// offsets go first: a failed removal then leaves lines to resubmit
	// instead of an offset pointing past the end of a dataset
	if before != nil {
		if err := before(); err != nil {
			return fmt.Errorf("prepare clear: %w", err)
		}
	}

	for _, d := range models.AllDatasets {
		for _, path := range []string{s.path(d), s.path(d) + tmpSuffix} {
			if err := s.fs.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
				s.logger.Err(err).Str("func", "fileResourceStore.ClearAll").Stringer("dataset", d).Msg("error removing dataset")
				return fmt.Errorf("%w: remove %s: %w", ErrStorageWrite, d, err)
			}
		}
	}

	s.logger.Info().Str("func", "fileResourceStore.ClearAll").Msg("all datasets cleared")
	return nil
}

// scan walks the lines of d under its lock until visit returns false.
// A dataset file that does not exist yet is an empty dataset.
func (s *fileResourceStore) scan(d models.Dataset, visit func(i int, line string) bool) error {
	if err := s.locks.Lock(d); err != nil {
		return err
	}
	defer s.locks.Unlock(d)

	f, err := s.fs.Open(s.path(d))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		s.logger.Err(err).Str("func", "fileResourceStore.scan").Stringer("dataset", d).Msg("error opening dataset")
		return fmt.Errorf("%w: open %s: %w", ErrStorageOpen, d, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 4*1024), maxLineSize)
	for i := 0; scanner.Scan(); i++ {
		if !visit(i, trimLine(scanner.Text())) {
			return nil
		}
	}
	if err = scanner.Err(); err != nil {
		s.logger.Err(err).Str("func", "fileResourceStore.scan").Stringer("dataset", d).Msg("error reading dataset")
		return fmt.Errorf("%w: read %s: %w", ErrStorageOpen, d, err)
	}

	return nil
}

func (s *fileResourceStore) path(d models.Dataset) string {
	return filepath.Join(s.dir, d.FileName())
}

func validateLine(line string) error {
	if len(line) > models.MaxLineLength {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrInvalidLine, len(line), models.MaxLineLength)
	}
	if line == "" || strings.ContainsAny(line, "\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidLine, line)
	}
	return nil
}

// trimLine drops carriage-return/newline remnants and everything after them.
func trimLine(line string) string {
	if i := strings.IndexAny(line, "\r\n"); i >= 0 {
		return line[:i]
	}
	return line
}

func writeAndSync(f afero.File, data []byte) error {
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
