package fileio

import (
	"io"
	"os"
)

func readAll(f *os.File, consume func([]byte)) error {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return err
	}
	consume(data)
	return nil
}
