package localizer

import (
	"io"
	"os"

	"github.com/go-git/go-billy/v5"

	derrors "git.home.luguber.info/inful/docloc/internal/errors"
)

// copyFile copies contents and metadata (permission bits and modification
// time) from src to dst, replacing dst if it exists.
func copyFile(fs billy.Filesystem, src, dst string) error {
	info, err := fs.Stat(src)
	if err != nil {
		return derrors.FileSystemError("stat", src, err)
	}

	in, err := fs.Open(src)
	if err != nil {
		return derrors.FileSystemError("open", src, err)
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return derrors.FileSystemError("create", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return derrors.FileSystemError("copy", dst, err)
	}
	if err := out.Close(); err != nil {
		return derrors.FileSystemError("close", dst, err)
	}

	return copyMetadata(fs, dst, info)
}

// copyMetadata applies info's permission bits and modification time to dst
// when the filesystem supports it. memfs already takes the permission bits
// from OpenFile.
func copyMetadata(fs billy.Filesystem, dst string, info os.FileInfo) error {
	m, ok := fs.(metadataSetter)
	if !ok {
		return nil
	}
	if err := m.SetMetadata(dst, info.Mode().Perm(), info.ModTime()); err != nil {
		return derrors.FileSystemError("set metadata", dst, err)
	}
	return nil
}
