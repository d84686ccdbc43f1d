package tail

import (
	"errors"
	"io"
	"os"

	"github.com/craftwatch/craftwatch/internal/remote"
)

// ErrUnavailable signals that the log source cannot be reached right now
// (file missing, SFTP session down). The tailer treats it as "nothing new
// this tick" without logging an error.
var ErrUnavailable = errors.New("log source unavailable")

// Source abstracts the append-only log the tailer reads: stat for the
// current size, and a bounded read at a byte offset. Implementations are
// called from the watch loop only and need not be concurrency-safe.
type Source interface {
	// Size returns the current byte size of the log.
	Size() (int64, error)
	// ReadAt reads n bytes starting at off. A short read at end of file
	// returns the bytes that were available.
	ReadAt(off, n int64) ([]byte, error)
}

// LocalSource reads the server log from the local filesystem.
type LocalSource struct {
	Path string
}

func (s *LocalSource) Size() (int64, error) {
	info, err := os.Stat(s.Path)
	if os.IsNotExist(err) {
		return 0, ErrUnavailable
	}
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (s *LocalSource) ReadAt(off, n int64) ([]byte, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readSection(f, off, n)
}

// SFTPSource reads the server log over the shared SFTP session. A nil
// client from the session manager means the remote host is unreachable
// this tick, which is reported as ErrUnavailable.
type SFTPSource struct {
	Session *remote.FileSession
	Path    string
}

func (s *SFTPSource) Size() (int64, error) {
	client := s.Session.Get()
	if client == nil {
		return 0, ErrUnavailable
	}
	info, err := client.Stat(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, ErrUnavailable
		}
		return 0, err
	}
	return info.Size(), nil
}

func (s *SFTPSource) ReadAt(off, n int64) ([]byte, error) {
	client := s.Session.Get()
	if client == nil {
		return nil, ErrUnavailable
	}
	f, err := client.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if _, err := f.Seek(off, io.SeekStart); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	read, err := io.ReadFull(f, buf)
	if err == io.ErrUnexpectedEOF || err == io.EOF {
		return buf[:read], nil
	}
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func readSection(r io.ReaderAt, off, n int64) ([]byte, error) {
	buf := make([]byte, n)
	read, err := io.ReadFull(io.NewSectionReader(r, off, n), buf)
	if err == io.ErrUnexpectedEOF || err == io.EOF {
		return buf[:read], nil
	}
	if err != nil {
		return nil, err
	}
	return buf, nil
}
