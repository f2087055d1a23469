package localizer

import (
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// metadataSetter is implemented by filesystems that can apply permission
// bits and timestamps to a file they hold. The chroot wrappers returned by
// osfs.New and memfs.New expose a Chmod method that fails at runtime, so
// billy.Chmod cannot be used as a capability check.
type metadataSetter interface {
	SetMetadata(name string, mode os.FileMode, mtime time.Time) error
}

// osFilesystem is an osfs filesystem rooted at root that can also copy file
// metadata.
type osFilesystem struct {
	billy.Filesystem
}

// OSFilesystem returns an OS-backed filesystem rooted at root.
func OSFilesystem(root string) billy.Filesystem {
	return &osFilesystem{Filesystem: osfs.New(root)}
}

// SetMetadata sets the permission bits and the modification time of name.
// Access time is not portable across platforms; it is set from mtime too.
func (o *osFilesystem) SetMetadata(name string, mode os.FileMode, mtime time.Time) error {
	path := filepath.Join(o.Root(), name)
	if err := os.Chmod(path, mode); err != nil {
		return err
	}
	return os.Chtimes(path, mtime, mtime)
}
