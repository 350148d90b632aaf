package monitoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var got string
	SetLogger(func(format string, v ...interface{}) {
		got = fmt.Sprintf(format, v...)
	})
	Logf("total %d", 5)
	assert.Equal(t, "total 5", got)

	got = ""
	SetLogger(nil)
	assert.NotPanics(t, func() { Logf("muted %d", 1) })
	assert.Empty(t, got)
}

func TestLogf_Default(t *testing.T) {
	assert.NotNil(t, Logf)
}
