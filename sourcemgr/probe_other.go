//go:build !unix

package sourcemgr

import "os"

// probablyReadable is the portable fallback for platforms without access(2):
// a Stat call, still cheaper than reading content we may not use.
func probablyReadable(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
