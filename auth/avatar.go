package auth

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// GravatarURL derives the avatar URL for an email address. The digest is
// computed over the trimmed, lowercased address; `d=mm` selects the
// "mystery man" placeholder for addresses without a Gravatar account.
func GravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	hash := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=200&r=pg&d=mm", hash)
}
