/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package main

import (
	"context"
	"crypto/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/sessions"
	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"

	"tandem/internal/config"
	"tandem/internal/handler"
	"tandem/internal/mirror"
	"tandem/internal/repository"
	"tandem/internal/service"
)

var rootCmd = &cobra.Command{
	Use:   "tandemd",
	Short: "Social interaction server",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		initLog(cfg.LogLevel)

		if err := serve(cfg); err != nil {
			jww.FATAL.Printf("Server error: %+v", err)
			os.Exit(1)
		}
	},
}

func init() {
	config.SetDefaults()

	flags := rootCmd.Flags()
	flags.String("listen", ":8080", "address the HTTP server binds to")
	flags.String("db", "tandem.db", "sqlite database file")
	flags.String("session-key", "", "secret for the session cookie store, random when empty")
	flags.String("mirror-endpoint", "", "chat provider base URL, empty disables profile mirroring")
	flags.String("log-level", "info", "one of trace, debug, info, warn, error")

	viper.BindPFlags(flags)
	viper.SetEnvPrefix("tandem")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func initLog(level string) {
	jww.SetStdoutOutput(os.Stdout)
	switch strings.ToLower(level) {
	case "trace":
		jww.SetStdoutThreshold(jww.LevelTrace)
	case "debug":
		jww.SetStdoutThreshold(jww.LevelDebug)
	case "warn":
		jww.SetStdoutThreshold(jww.LevelWarn)
	case "error":
		jww.SetStdoutThreshold(jww.LevelError)
	default:
		jww.SetStdoutThreshold(jww.LevelInfo)
	}
}

func serve(cfg config.Config) error {
	db, err := repository.Open(cfg.DatabasePath)
	if err != nil {
		return err
	}

	sessionKey := []byte(cfg.SessionKey)
	if len(sessionKey) == 0 {
		// Sessions do not survive a restart without a configured key.
		sessionKey = make([]byte, 32)
		if _, err := rand.Read(sessionKey); err != nil {
			return err
		}
		jww.WARN.Printf("No session key configured, generated an ephemeral one")
	}
	cookieStore := sessions.NewCookieStore(sessionKey)
	cookieStore.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(7 * 24 * time.Hour.Seconds()),
	}

	mirrorClient := mirror.NewNoopClient()
	if cfg.MirrorEndpoint != "" {
		mirrorClient = mirror.NewHTTPClient(cfg.MirrorEndpoint)
	}

	// Repositories
	userRepo := repository.NewSQLiteUserRepository(db)
	requestRepo := repository.NewSQLiteFriendRequestRepository(db)
	threadRepo := repository.NewSQLiteThreadRepository(db)
	communityRepo := repository.NewSQLiteCommunityRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, mirrorClient)
	friendService := service.NewFriendService(requestRepo, userRepo)
	threadService := service.NewThreadService(threadRepo, userRepo, communityRepo)
	userService := service.NewUserService(userRepo, requestRepo, threadService)
	communityService := service.NewCommunityService(communityRepo, userRepo, threadService)

	// Handlers
	router := handler.NewRouter(handler.Handlers{
		Auth:      handler.NewAuthHandler(authService, cookieStore),
		User:      handler.NewUserHandler(userService),
		Friend:    handler.NewFriendHandler(friendService),
		Thread:    handler.NewThreadHandler(threadService),
		Community: handler.NewCommunityHandler(communityService),
	}, cookieStore, authService)

	server := &http.Server{
		Addr:           cfg.ListenAddr,
		Handler:        router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		jww.INFO.Printf("HTTP server listening on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		jww.INFO.Printf("Received stop signal. Shutting down...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		jww.FATAL.Printf("%+v", err)
		os.Exit(1)
	}
}
