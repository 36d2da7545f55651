// Package passphrase obtains keystore passphrases for ledgerctl, either from
// the environment or from the controlling terminal.
package passphrase

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// EnvVar is consulted before any prompt is shown.
const EnvVar = "LEDGERD_KEYSTORE_PASSPHRASE"

const minCreateLength = 8

var (
	ErrEmpty      = errors.New("passphrase: empty passphrase")
	ErrTooShort   = fmt.Errorf("passphrase: new keystores need at least %d characters", minCreateLength)
	ErrMismatch   = errors.New("passphrase: entries do not match")
	ErrNoTerminal = errors.New("passphrase: no terminal to prompt on")
)

// Mode tells the prompter whether the keystore is being opened or written.
type Mode int

const (
	Unlock Mode = iota
	Create
)

// Prompter resolves passphrases. Create asks twice on a terminal and
// enforces a minimum length; Unlock asks once.
type Prompter struct {
	envVar     string
	lookupEnv  func(string) (string, bool)
	isTerminal func() bool
	readSecret func() ([]byte, error)
	out        io.Writer
}

// NewPrompter reads envVar first and falls back to stdin when it is a terminal.
func NewPrompter(envVar string) *Prompter {
	fd := int(os.Stdin.Fd())
	return &Prompter{
		envVar:     strings.TrimSpace(envVar),
		lookupEnv:  os.LookupEnv,
		isTerminal: func() bool { return term.IsTerminal(fd) },
		readSecret: func() ([]byte, error) { return term.ReadPassword(fd) },
		out:        os.Stderr,
	}
}

// Passphrase returns the secret for the keystore at path.
func (p *Prompter) Passphrase(path string, mode Mode) (string, error) {
	if p.envVar != "" {
		if value, ok := p.lookupEnv(p.envVar); ok {
			if err := check(value, mode); err != nil {
				return "", fmt.Errorf("%s: %w", p.envVar, err)
			}
			return value, nil
		}
	}
	if !p.isTerminal() {
		if p.envVar == "" {
			return "", ErrNoTerminal
		}
		return "", fmt.Errorf("%w; set %s", ErrNoTerminal, p.envVar)
	}

	value, err := p.ask(fmt.Sprintf("Passphrase for %s: ", path))
	if err != nil {
		return "", err
	}
	if err := check(value, mode); err != nil {
		return "", err
	}
	if mode == Create {
		again, err := p.ask("Repeat passphrase: ")
		if err != nil {
			return "", err
		}
		if again != value {
			return "", ErrMismatch
		}
	}
	return value, nil
}

func (p *Prompter) ask(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	secret, err := p.readSecret()
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("passphrase: read: %w", err)
	}
	return string(secret), nil
}

func check(value string, mode Mode) error {
	if strings.TrimSpace(value) == "" {
		return ErrEmpty
	}
	if mode == Create && len(value) < minCreateLength {
		return ErrTooShort
	}
	return nil
}
