package client

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// readPassword is replaced in tests to keep the terminal out of them.
var readPassword = term.ReadPassword

// promptPassword asks for a password on the terminal without echo.
func promptPassword(w io.Writer) (string, error) {
	fmt.Fprint(w, "Password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("error reading password: %w", err)
	}
	return string(pw), nil
}

// passwordOrPrompt returns password, prompting for it when it was not passed as a flag.
func (a *App) passwordOrPrompt(password string) (string, error) {
	if password != "" {
		return password, nil
	}
	return promptPassword(a.out)
}
