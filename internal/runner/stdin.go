package runner

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/dirprobe/dirprobe/internal/scanner"
)

// startStdinToggle reads single keypresses from stdin and toggles the
// returned gate on Enter or Space. The restore function puts the terminal
// back into its original mode. When stdin is not a terminal the gate is nil.
func startStdinToggle(quiet bool) (gate *scanner.Gate, restore func()) {
	fd := int(os.Stdin.Fd())
	if quiet || !term.IsTerminal(fd) {
		return nil, func() {}
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[!] Could not enable raw terminal: %v\n", err)
		return nil, func() {}
	}

	// MakeRaw also clears OPOST, which breaks \n to \r\n translation for
	// everything we print while the scan runs.
	fixOutputProcessing(fd)

	gate = scanner.NewGate()
	restore = func() {
		_ = term.Restore(fd, oldState)
	}

	go func() {
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				return
			}
			if n == 0 {
				continue
			}

			switch buf[0] {
			case 0x03:
				// Ctrl+C arrives as a byte in raw mode; hand it back to the
				// signal handler.
				_ = term.Restore(fd, oldState)
				sendInterrupt()
				return
			case '\r', '\n', ' ':
				if gate.Toggle() {
					fmt.Fprintf(os.Stderr, "\r\033[K[*] Scan paused, press Enter or Space to resume\n")
				} else {
					fmt.Fprintf(os.Stderr, "\r\033[K[*] Scan resumed\n")
				}
			}
		}
	}()

	return gate, restore
}
