package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/Dan9191/tutor-service/internal/repository"
	"github.com/Dan9191/tutor-service/internal/scheduler"
)

var (
	gooseRunFunc = repository.RunMigration // mockable

	errHelp = errors.New("help provided")
)

type userConfirmer interface {
	ConfirmUser(ctx context.Context, phone string) error
}

type reminderRunner interface {
	RunOnce(ctx context.Context) (scheduler.Result, error)
}

type commandLine struct {
	db        *sql.DB
	users     userConfirmer
	reminders reminderRunner
	out       io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS]  - run a goose command (up, down, status, version, redo, up-to N, down-to N)")
	fmt.Fprintln(cli.out, "  confirm-user -phone PHONE - activate a registered account")
	fmt.Fprintln(cli.out, "  remind                  - send the payment reminder digests now")
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	confirmCmd := flag.NewFlagSet("confirm-user", flag.ContinueOnError)
	confirmCmd.SetOutput(cli.out)
	confirmPhone := confirmCmd.String("phone", "", "The phone number the account was registered with.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return gooseRunFunc(ctx, cli.db, args[2], args[3:]...)
	case "confirm-user":
		if err := confirmCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *confirmPhone == "" {
			confirmCmd.Usage()
			return errHelp
		}
		if err := cli.users.ConfirmUser(ctx, *confirmPhone); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "confirmed %s\n", *confirmPhone)
		return nil
	case "remind":
		res, err := cli.reminders.RunOnce(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "checked %d, sent %d, failed %d\n", res.Checked, res.Sent, res.Failed)
		return nil
	default:
		cli.printUsage()
		return errHelp
	}
}
