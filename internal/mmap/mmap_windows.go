//go:build windows

package mmap

import (
	"io"
	"os"
)

// Windows lacks the unix mmap syscalls used on other platforms; fall
// back to reading the file into memory.
func mmap(f *os.File, size int) ([]byte, error) {
	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, err
	}
	return data, nil
}

func munmap(data []byte) error {
	return nil
}
