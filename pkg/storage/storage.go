// Package storage is a small filesystem abstraction for uploaded files.
//
// Two drivers are available:
//   - "local"  local filesystem under STORAGE_LOCAL_ROOT, served on /media
//   - "s3"     S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
//	mgr, _ := storage.FromConfig(ctx)
//	disk := mgr.Default()
//	_ = disk.Put(ctx, "profiles/ab12.png", file, "image/png")
//	url := disk.URL("profiles/ab12.png")
package storage

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/shashiranjanraj/orderdesk/config"
	"github.com/shashiranjanraj/orderdesk/pkg/logger"
)

// Disk is implemented by every driver.
type Disk interface {
	// Put writes r to path, replacing any existing file.
	Put(ctx context.Context, path string, r io.Reader, contentType string) error
	// Delete removes path. A missing file is not an error.
	Delete(ctx context.Context, path string) error
	// URL returns the public URL of path.
	URL(path string) string
}

// Manager holds the configured disks.
type Manager struct {
	mu          sync.RWMutex
	disks       map[string]Disk
	defaultName string
}

func NewManager(defaultName string) *Manager {
	return &Manager{disks: map[string]Disk{}, defaultName: defaultName}
}

// FromConfig boots the local disk, plus the s3 disk when S3_BUCKET is set.
// An s3 failure is logged and the disk left out; if it was the default,
// the local disk takes over.
func FromConfig(ctx context.Context) (*Manager, error) {
	m := NewManager(config.StorageDefault())

	local, err := NewLocalDisk(config.StorageLocalRoot(), config.StorageURL())
	if err != nil {
		return nil, err
	}
	m.Register("local", local)

	if config.StorageS3Bucket() != "" {
		d, err := NewS3Disk(ctx, S3Options{
			Bucket:   config.StorageS3Bucket(),
			Region:   config.StorageS3Region(),
			Key:      config.StorageS3Key(),
			Secret:   config.StorageS3Secret(),
			Endpoint: config.StorageS3Endpoint(),
			BaseURL:  config.StorageS3URL(),
		})
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			m.Register("s3", d)
		}
	}

	if _, err := m.Disk(m.defaultName); err != nil {
		logger.Warn("storage: falling back to local disk", "wanted", m.defaultName)
		m.defaultName = "local"
	}
	return m, nil
}

// Register adds or replaces a named disk.
func (m *Manager) Register(name string, d Disk) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disks[name] = d
}

// Disk returns the named disk.
func (m *Manager) Disk(name string) (Disk, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.disks[name]
	if !ok {
		return nil, fmt.Errorf("storage: disk %q is not configured", name)
	}
	return d, nil
}

// Default returns the STORAGE_DISK disk. It panics if that disk was never
// registered, which FromConfig rules out.
func (m *Manager) Default() Disk {
	d, err := m.Disk(m.defaultName)
	if err != nil {
		panic(err)
	}
	return d
}

// DefaultName reports which disk Default returns.
func (m *Manager) DefaultName() string { return m.defaultName }

// Local returns the local disk when one is registered.
func (m *Manager) Local() (*LocalDisk, bool) {
	d, err := m.Disk("local")
	if err != nil {
		return nil, false
	}
	l, ok := d.(*LocalDisk)
	return l, ok
}
