package commands

import (
	"WikiGo/internal/cli/api"
	"WikiGo/internal/config"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	fsrepo "WikiGo/internal/cli/repo/fs"
)

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Register a new user and store auth cookie" }
func (registerCmd) Usage() string       { return "register <login> <password>" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	login, password := args[0], args[1]
	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/user/register"
	resp, body, err := api.PostJSON(ctx, endpoint, credentials{Login: login, Password: password}, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK:
		if err := api.PersistAuthFromResponse(resp); err != nil {
			return fmt.Errorf("saving auth: %w", err)
		}
		_ = fsrepo.AuthFSStore{}.SaveLogin(login)
		fmt.Fprintln(Out, "Registered successfully")
		return nil
	case http.StatusConflict:
		return errors.New("login already in use")
	default:
		return fmt.Errorf("server error: %s", strings.TrimSpace(string(body)))
	}
}

func init() { RegisterCmd(registerCmd{}) }
