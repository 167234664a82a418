// Package main implements the SSH server that serves the bouquet
// configurator TUI.
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	gossh "golang.org/x/crypto/ssh"

	"github.com/florista/ramo-terminal-go/internal/auth"
	"github.com/florista/ramo-terminal-go/internal/cache"
	"github.com/florista/ramo-terminal-go/internal/config"
	"github.com/florista/ramo-terminal-go/internal/flora"
	"github.com/florista/ramo-terminal-go/internal/tui"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ensure host key exists
	if err := ensureHostKey(cfg.SSHHostKeyPath); err != nil {
		log.Fatalf("Failed to ensure host key: %v", err)
	}

	// Load allowlist if in allowlist mode
	var allowlist *auth.Allowlist
	if cfg.SSHAuthMode == config.AuthModeAllowlist {
		allowlist, err = auth.Load(cfg.AllowlistPath)
		if err != nil {
			if errors.Is(err, auth.ErrAllowlistNotFound) {
				log.Printf("Creating empty allowlist at %s", cfg.AllowlistPath)
				if err := auth.CreateEmpty(cfg.AllowlistPath); err != nil {
					log.Fatalf("Failed to create allowlist: %v", err)
				}
				log.Printf("Please add your SSH public key to the allowlist and restart")
				os.Exit(1)
			}
			log.Fatalf("Failed to load allowlist: %v", err)
		}
		if allowlist.Len() == 0 {
			log.Printf("WARNING: Allowlist is empty. No connections will be accepted.")
			log.Printf("Add your SSH public key to %s and restart", cfg.AllowlistPath)
		}
		log.Printf("Loaded %d public keys from allowlist", allowlist.Len())
	} else {
		log.Printf("WARNING: Running in PUBLIC mode - anyone can connect!")
		log.Printf("This is NOT safe for internet-facing servers.")
	}

	// Create the order-service client
	clientOpts := []flora.ClientOption{}
	if cfg.FloraAPIToken != "" {
		clientOpts = append(clientOpts, flora.WithToken(cfg.FloraAPIToken))
	}
	floraClient := flora.NewClient(cfg.FloraBaseURL, clientOpts...)

	// The catalog cache is shared by every session
	catalogCache := cache.New[string, *flora.Catalog](cfg.CacheTTL)

	// Create SSH server options
	opts := []ssh.Option{
		wish.WithAddress(cfg.SSHAddr),
		wish.WithHostKeyPath(cfg.SSHHostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
				return tui.NewModel(floraClient, catalogCache, cfg.FoliageCap), []tea.ProgramOption{tea.WithAltScreen()}
			}),
		),
	}

	// Add authentication based on mode
	if cfg.SSHAuthMode == config.AuthModeAllowlist {
		opts = append(opts, wish.WithPublicKeyAuth(func(ctx ssh.Context, key ssh.PublicKey) bool {
			return allowlist.Contains(key)
		}))
	} else {
		// Public mode - accept any public key
		opts = append(opts, wish.WithPublicKeyAuth(func(ctx ssh.Context, key ssh.PublicKey) bool {
			return true
		}))
	}

	// Always disable password auth
	opts = append(opts, wish.WithPasswordAuth(func(ctx ssh.Context, password string) bool {
		return false
	}))

	// Create SSH server
	server, err := wish.NewServer(opts...)
	if err != nil {
		log.Fatalf("Failed to create SSH server: %v", err)
	}

	// Handle shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	// Drop expired catalogs in the background
	janitor := time.NewTicker(cfg.CacheTTL)
	defer janitor.Stop()
	go func() {
		for range janitor.C {
			catalogCache.Prune()
		}
	}()

	log.Printf("Starting SSH server on %s", cfg.SSHAddr)
	log.Printf("Order service: %s", cfg.FloraBaseURL)
	log.Printf("Auth mode: %s", cfg.SSHAuthMode)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Shutdown error: %v", err)
	}
}

// ensureHostKey generates an ED25519 host key if it doesn't exist.
func ensureHostKey(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	log.Printf("Generating new ED25519 host key at %s", path)

	pubKey, privKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return fmt.Errorf("generating key: %w", err)
	}

	sshPrivKey, err := gossh.MarshalPrivateKey(privKey, "")
	if err != nil {
		return fmt.Errorf("marshaling private key: %w", err)
	}

	if err := os.WriteFile(path, pem.EncodeToMemory(sshPrivKey), 0600); err != nil {
		return fmt.Errorf("writing private key: %w", err)
	}

	sshPubKey, err := gossh.NewPublicKey(pubKey)
	if err != nil {
		return fmt.Errorf("creating public key: %w", err)
	}

	pubKeyBytes := gossh.MarshalAuthorizedKey(sshPubKey)
	if err := os.WriteFile(path+".pub", pubKeyBytes, 0644); err != nil {
		return fmt.Errorf("writing public key: %w", err)
	}

	return nil
}
