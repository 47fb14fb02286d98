//go:build unix

package fileio

import (
	"os"

	"golang.org/x/sys/unix"
)

func readMapped(f *os.File, size int, consume func([]byte)) error {
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		// Some filesystems (procfs, FUSE) refuse mappings.
		return readAll(f, consume)
	}
	defer unix.Munmap(data)
	consume(data)
	return nil
}
