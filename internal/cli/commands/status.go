package commands

import (
	"WikiGo/internal/cli/auth"
	"WikiGo/internal/config"
	"context"
	"fmt"

	fsrepo "WikiGo/internal/cli/repo/fs"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show server URL and stored auth state" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fmt.Fprintln(Out, "Server:", cfg.ServerURL)

	login, err := (fsrepo.AuthFSStore{}).LoadLogin()
	if err != nil {
		fmt.Fprintln(Out, "Login: (none)")
	} else {
		fmt.Fprintln(Out, "Login:", login)
	}

	if _, err := auth.LoadToken(); err != nil {
		fmt.Fprintln(Out, "Auth: not logged in")
	} else {
		fmt.Fprintln(Out, "Auth: token stored")
	}
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
