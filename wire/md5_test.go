package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMD5Password(t *testing.T) {
	got := MD5Password("mosespg", "secret", [4]byte{'a', 'b', 'c', 'd'})
	assert.Equal(t, "md56acb18ff26bb044bc3c5b7ade3695281", got)
}
