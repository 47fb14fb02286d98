//go:build !unix

package fileio

import "os"

func readMapped(f *os.File, _ int, consume func([]byte)) error {
	return readAll(f, consume)
}
