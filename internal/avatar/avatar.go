/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package avatar resolves the canonical avatar of a user through a fixed
// fallback chain: explicit upload > non-generated external photo > generated
// fallback > default.
package avatar

import (
	"fmt"
	"math/rand"
	"strings"

	"tandem/internal/entity"
)

const placeholderHost = "avatar.iran.liara.run"

// DefaultURL is the deterministic last resort of the chain.
const DefaultURL = "https://" + placeholderHost + "/public/1.png"

// Generate returns a random placeholder avatar URL.
func Generate() string {
	idx := rand.Intn(100) + 1
	return fmt.Sprintf("https://%s/public/%d.png", placeholderHost, idx)
}

// IsGenerated reports whether the URL points at the placeholder service.
func IsGenerated(url string) bool {
	return strings.Contains(url, placeholderHost)
}

// Resolve walks the fallback chain for the given user. It never fails: when
// every field is empty the default placeholder is returned.
func Resolve(u *entity.User) string {
	switch {
	case u.AvatarURL != "":
		return u.AvatarURL
	case u.ProfilePic != "" && !IsGenerated(u.ProfilePic):
		return u.ProfilePic
	case u.RandomAvatarURL != "":
		return u.RandomAvatarURL
	case u.ProfilePic != "":
		return u.ProfilePic
	default:
		return DefaultURL
	}
}
