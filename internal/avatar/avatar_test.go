/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package avatar

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tandem/internal/entity"
)

func TestGenerateIsRecognized(t *testing.T) {
	for i := 0; i < 50; i++ {
		require.True(t, IsGenerated(Generate()))
	}
	require.False(t, IsGenerated("https://cdn.example.com/me.jpg"))
	require.False(t, IsGenerated(""))
}

func TestResolveChain(t *testing.T) {
	generated := Generate()

	cases := []struct {
		name string
		user entity.User
		want string
	}{
		{"explicit avatar wins", entity.User{AvatarURL: "a", ProfilePic: "b", RandomAvatarURL: generated}, "a"},
		{"custom photo beats fallback", entity.User{ProfilePic: "https://cdn.example.com/me.jpg", RandomAvatarURL: generated}, "https://cdn.example.com/me.jpg"},
		{"generated photo falls through to fallback", entity.User{ProfilePic: generated, RandomAvatarURL: generated}, generated},
		{"fallback alone", entity.User{RandomAvatarURL: generated}, generated},
		{"generated photo without fallback", entity.User{ProfilePic: generated}, generated},
		{"empty user gets the default", entity.User{}, DefaultURL},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Resolve(&tc.user))
		})
	}
}
