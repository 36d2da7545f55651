package passphrase

import (
	"errors"
	"io"
	"testing"
)

func scripted(env map[string]string, tty bool, answers ...string) *Prompter {
	return &Prompter{
		envVar: EnvVar,
		lookupEnv: func(name string) (string, bool) {
			v, ok := env[name]
			return v, ok
		},
		isTerminal: func() bool { return tty },
		readSecret: func() ([]byte, error) {
			if len(answers) == 0 {
				return nil, io.EOF
			}
			next := answers[0]
			answers = answers[1:]
			return []byte(next), nil
		},
		out: io.Discard,
	}
}

func TestPassphraseFromEnvironment(t *testing.T) {
	p := scripted(map[string]string{EnvVar: "correct horse"}, false)
	got, err := p.Passphrase("key.json", Create)
	if err != nil {
		t.Fatalf("passphrase: %v", err)
	}
	if got != "correct horse" {
		t.Fatalf("unexpected passphrase %q", got)
	}
}

func TestPassphraseRejectsWeakEnvironment(t *testing.T) {
	if _, err := scripted(map[string]string{EnvVar: "  "}, false).Passphrase("k", Unlock); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
	if _, err := scripted(map[string]string{EnvVar: "short"}, false).Passphrase("k", Create); !errors.Is(err, ErrTooShort) {
		t.Fatalf("expected ErrTooShort, got %v", err)
	}
	if _, err := scripted(map[string]string{EnvVar: "short"}, false).Passphrase("k", Unlock); err != nil {
		t.Fatalf("unlock should accept short passphrase: %v", err)
	}
}

func TestPassphraseCreateConfirms(t *testing.T) {
	got, err := scripted(nil, true, "longenough", "longenough").Passphrase("k", Create)
	if err != nil {
		t.Fatalf("passphrase: %v", err)
	}
	if got != "longenough" {
		t.Fatalf("unexpected passphrase %q", got)
	}

	if _, err := scripted(nil, true, "longenough", "different!").Passphrase("k", Create); !errors.Is(err, ErrMismatch) {
		t.Fatalf("expected ErrMismatch, got %v", err)
	}
}

func TestPassphraseUnlockAsksOnce(t *testing.T) {
	got, err := scripted(nil, true, "secret").Passphrase("k", Unlock)
	if err != nil {
		t.Fatalf("passphrase: %v", err)
	}
	if got != "secret" {
		t.Fatalf("unexpected passphrase %q", got)
	}
}

func TestPassphraseWithoutTerminal(t *testing.T) {
	if _, err := scripted(nil, false).Passphrase("k", Unlock); !errors.Is(err, ErrNoTerminal) {
		t.Fatalf("expected ErrNoTerminal, got %v", err)
	}
}
