package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/social-memo/social-memo/internal/client"
	"github.com/social-memo/social-memo/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	var (
		address     = flag.String("a", "http://localhost:8080", "server address")
		timeout     = flag.Duration("timeout", 15*time.Second, "request timeout")
		token       = flag.String("t", "", "session token for authenticated commands")
		username    = flag.String("u", "", "username (login)")
		password    = flag.String("p", "", "password (login)")
		oldPassword = flag.String("old", "", "current password (change-password)")
		newPassword = flag.String("new", "", "new password (change-password)")
	)
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		usage()
		os.Exit(2)
	}

	log := logger.NewLogger("social-memo-client")

	api, err := client.New(*address, *timeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating api client")
	}
	api.SetToken(*token)

	ctx := context.Background()

	switch command {
	case "login":
		sessionToken, err := api.Login(ctx, *username, *password)
		if err != nil {
			log.Fatal().Err(err).Msg("login failed")
		}
		fmt.Printf("logged in, token: %s\n", sessionToken)

	case "check":
		status, err := api.Check(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("check failed")
		}
		if status.Authenticated {
			fmt.Printf("authenticated as %s\n", status.Username)
		} else {
			fmt.Println("not authenticated")
		}

	case "logout":
		if err := api.Logout(ctx); err != nil {
			log.Fatal().Err(err).Msg("logout failed")
		}
		fmt.Println("logged out")

	case "change-password":
		if err := api.ChangePassword(ctx, *oldPassword, *newPassword); err != nil {
			log.Fatal().Err(err).Msg("password change failed")
		}
		fmt.Println("password changed, please log in again")

	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: client [flags] login|check|logout|change-password")
	flag.PrintDefaults()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
