package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/mythicavalon/EchoLang/clients/discord"
	"github.com/mythicavalon/EchoLang/core/log"
)

type Options struct {
	ApplicationID string `long:"app-id" env:"DISCORD_APPLICATION_ID" required:"true" description:"Application ID from the Discord developer portal"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	log.Info("🔑 Generating bot invite link", "application_id", opts.ApplicationID)
	fmt.Println(discord.InviteURL(opts.ApplicationID))
}
