package storage

import (
	"testing"

	"go.uber.org/goleak"
)

// Every backend must release its background goroutines on Close.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
