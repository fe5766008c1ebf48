//go:build !windows

package output

import (
	"os"

	"github.com/google/renameio/v2"
)

// writeAtomic: 同目录临时文件 + fsync + rename。
func writeAtomic(dest string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(dest, data, perm)
}
