// Package hash calculates md5 checksums in the same format the remote drive
// reports them.
package hash

import (
	"crypto/md5"
	"fmt"
)

// Bytes returns the hex md5 of data.
func Bytes(data []byte) string {
	return fmt.Sprintf("%x", md5.Sum(data))
}
