package testutil

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStdoutOutputForFunc(t *testing.T) {
	out := StdoutOutputForFunc(func() {
		fmt.Fprint(os.Stdout, "hello")
	})

	assert.Equal(t, "hello", out)
}

func TestStderrOutputForFunc(t *testing.T) {
	out := StderrOutputForFunc(func() {
		fmt.Fprint(os.Stderr, "oops")
	})

	assert.Equal(t, "oops", out)
}
