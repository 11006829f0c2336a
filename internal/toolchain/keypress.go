package toolchain

import (
	"bufio"
	"os"

	"golang.org/x/term"
)

// WaitForKeypress blocks until a single byte is read from f. When f is a
// terminal it is switched to raw mode so the user doesn't have to press
// Enter; otherwise it falls back to reading a line (piped input).
func WaitForKeypress(f *os.File) error {
	fd := int(f.Fd())

	if !term.IsTerminal(fd) {
		_, err := bufio.NewReader(f).ReadString('\n')
		return err
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer term.Restore(fd, oldState) //nolint:errcheck

	var b [1]byte
	_, err = f.Read(b[:])
	return err
}
