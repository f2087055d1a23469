package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docloc/cmd/docloc/commands"
	derrors "git.home.luguber.info/inful/docloc/internal/errors"
	"git.home.luguber.info/inful/docloc/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("docloc"),
		kong.Description("Copy the documentation tree into a locale directory, localizing filenames."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	err := parser.Run(commands.NewGlobal(), cli)
	derrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
