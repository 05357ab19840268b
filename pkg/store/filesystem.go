// SPDX-License-Identifier: BSD-3-Clause

package store

import (
	"os"
	"path/filepath"

	"github.com/filamentdry/dryercore/pkg/file"
)

// Filesystem is the small-flash-filesystem contract the store
// consumes: mount, read, atomically replace, and remove a named
// record. It stands in for the platform's flash filesystem, which is
// out of scope for this core.
type Filesystem interface {
	Mount() error
	Read(name string) ([]byte, error)
	Write(name string, data []byte) error
	Remove(name string) error
}

// DiskFilesystem is a Filesystem rooted at a directory on a real
// filesystem, using pkg/file's atomic replace for every write.
type DiskFilesystem struct {
	root string
}

// NewDiskFilesystem creates a Filesystem rooted at root. Mount creates
// the directory if it does not already exist.
func NewDiskFilesystem(root string) *DiskFilesystem {
	return &DiskFilesystem{root: root}
}

func (d *DiskFilesystem) Mount() error {
	return os.MkdirAll(d.root, 0o755)
}

func (d *DiskFilesystem) Read(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(d.root, name))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return data, err
}

func (d *DiskFilesystem) Write(name string, data []byte) error {
	return file.AtomicReplaceFile(filepath.Join(d.root, name), data, 0o644)
}

func (d *DiskFilesystem) Remove(name string) error {
	err := os.Remove(filepath.Join(d.root, name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// MemFilesystem is an in-memory Filesystem for tests. Its
// MountErr/WriteErr hooks let tests exercise the store's degraded-mode
// handling without touching a real filesystem.
type MemFilesystem struct {
	files    map[string][]byte
	MountErr error
	WriteErr error
}

// NewMemFilesystem creates an empty in-memory filesystem.
func NewMemFilesystem() *MemFilesystem {
	return &MemFilesystem{files: make(map[string][]byte)}
}

func (m *MemFilesystem) Mount() error { return m.MountErr }

func (m *MemFilesystem) Read(name string) ([]byte, error) {
	data, ok := m.files[name]
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

func (m *MemFilesystem) Write(name string, data []byte) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	m.files[name] = cp
	return nil
}

func (m *MemFilesystem) Remove(name string) error {
	delete(m.files, name)
	return nil
}

// Seed directly injects a file's content, bypassing Write, for test
// setup (e.g. seeding a pre-existing runtime snapshot before Begin).
func (m *MemFilesystem) Seed(name string, data []byte) {
	m.files[name] = data
}
