/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package config

import (
	"github.com/spf13/viper"
)

// Config carries everything the server needs at startup. Values come from
// flags, environment (TANDEM_*) and an optional config file, in that order of
// precedence, all through viper.
type Config struct {
	ListenAddr     string // address the HTTP server binds to
	DatabasePath   string // sqlite database file
	SessionKey     string // secret for the session cookie store
	MirrorEndpoint string // external chat provider base URL, empty disables the mirror
	LogLevel       string // threshold for jwalterweatherman
}

// SetDefaults registers the default of every known key.
func SetDefaults() {
	viper.SetDefault("listen", ":8080")
	viper.SetDefault("db", "tandem.db")
	viper.SetDefault("session-key", "")
	viper.SetDefault("mirror-endpoint", "")
	viper.SetDefault("log-level", "info")
}

// Load materializes the current viper state into a Config.
func Load() Config {
	return Config{
		ListenAddr:     viper.GetString("listen"),
		DatabasePath:   viper.GetString("db"),
		SessionKey:     viper.GetString("session-key"),
		MirrorEndpoint: viper.GetString("mirror-endpoint"),
		LogLevel:       viper.GetString("log-level"),
	}
}
