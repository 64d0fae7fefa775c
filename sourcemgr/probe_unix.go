//go:build unix

package sourcemgr

import "golang.org/x/sys/unix"

// probablyReadable does a cheap access(2) check before paying for a full
// os.ReadFile, the way a load-path search over many candidate roots wants
// to: most candidates in a multi-root search miss, and open+stat for each
// miss is wasted work next to one syscall.
func probablyReadable(path string) bool {
	return unix.Access(path, unix.R_OK) == nil
}
