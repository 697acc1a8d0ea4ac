// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command replsync-server serves one directory as a replica over HTTP.
//
//	replsync-server -a :8080 -r /srv/replica --password-hash "$HASH" --token-sign-key "$KEY"
//	replsync-server hash-password
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/MKhiriev/go-replica-sync/internal/config"
	"github.com/MKhiriev/go-replica-sync/internal/handler"
	"github.com/MKhiriev/go-replica-sync/internal/logger"
	"github.com/MKhiriev/go-replica-sync/internal/server"
	"github.com/MKhiriev/go-replica-sync/internal/service"
	"github.com/MKhiriev/go-replica-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	if len(os.Args) > 1 && os.Args[1] == "hash-password" {
		if err := hashPassword(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	fmt.Println(buildInfo)

	flags := config.BindServerFlags(pflag.CommandLine)
	pflag.Parse()

	log := logger.NewLogger("replsync-server")
	cfg, err := config.GetServerConfig(flags)
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.Version == "" {
		cfg.Version = buildInfo.BuildVersion()
	}

	log.Debug().
		Str("address", cfg.HTTPAddress).
		Str("root", cfg.ReplicaRoot).
		Dur("request_timeout", cfg.RequestTimeout).
		Msg("received configs")

	services, err := service.NewServices(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// hashPassword reads a password from the terminal and prints the bcrypt hash
// to pass as --password-hash.
func hashPassword() error {
	fmt.Fprint(os.Stderr, "Replica password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	if len(password) == 0 {
		return fmt.Errorf("empty password")
	}

	hash, err := bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	fmt.Println(string(hash))
	return nil
}
