package main

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Dan9191/tutor-service/internal/repository"
	"github.com/Dan9191/tutor-service/internal/scheduler"
)

type fakeUsers struct {
	confirmed []string
}

func (f *fakeUsers) ConfirmUser(ctx context.Context, phone string) error {
	if phone == "0000" {
		return repository.ErrNotFound
	}
	f.confirmed = append(f.confirmed, phone)
	return nil
}

type fakeReminders struct{}

func (fakeReminders) RunOnce(ctx context.Context) (scheduler.Result, error) {
	return scheduler.Result{Checked: 3, Sent: 2, Failed: 1}, nil
}

type cliTest struct {
	name    string
	args    []string // without program name
	wantErr error
	wantOut string
}

func setup() (*commandLine, *fakeUsers, *bytes.Buffer) {
	var out bytes.Buffer
	users := &fakeUsers{}
	return &commandLine{users: users, reminders: fakeReminders{}, out: &out}, users, &out
}

func Test_commandLine_run(t *testing.T) {
	var gooseCalls []string
	gooseRunFunc = func(ctx context.Context, db *sql.DB, command string, args ...string) error {
		if command == "lol" {
			return errors.New(`"lol": no such command`)
		}
		gooseCalls = append(gooseCalls, command)
		return nil
	}
	t.Cleanup(func() { gooseRunFunc = repository.RunMigration })

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "migrate without subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "migrate up", args: []string{"migrate", "up"}},
		{name: "confirm without phone", args: []string{"confirm-user"}, wantErr: errHelp},
		{name: "confirm unknown phone", args: []string{"confirm-user", "-phone", "0000"}, wantErr: repository.ErrNotFound},
		{name: "confirm", args: []string{"confirm-user", "-phone", "0100"}, wantOut: "confirmed 0100\n"},
		{name: "remind", args: []string{"remind"}, wantOut: "checked 3, sent 2, failed 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, _, out := setup()
			err := cli.run(context.Background(), append([]string{"admin"}, tt.args...))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			if tt.wantOut != "" {
				assert.Equal(t, tt.wantOut, out.String())
			}
		})
	}

	cli, users, _ := setup()
	assert.EqualError(t, cli.run(context.Background(), []string{"admin", "migrate", "lol"}), `"lol": no such command`)
	assert.NoError(t, cli.run(context.Background(), []string{"admin", "confirm-user", "-phone", "0123"}))
	assert.Equal(t, []string{"0123"}, users.confirmed)
	assert.Equal(t, []string{"up"}, gooseCalls)
}
