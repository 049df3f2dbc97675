package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGravatarURL(t *testing.T) {
	want := "https://www.gravatar.com/avatar/3e3417d7ef77d5932a6734b916515ed5?s=200&r=pg&d=mm"

	assert.Equal(t, want, GravatarURL("ada@example.com"))
}

func TestGravatarURLNormalizesEmail(t *testing.T) {
	base := GravatarURL("ada@example.com")

	assert.Equal(t, base, GravatarURL("ADA@Example.COM"))
	assert.Equal(t, base, GravatarURL("  ada@example.com \n"))
}
