package commands

import (
	"WikiGo/internal/cli/api"
	"WikiGo/internal/cli/auth"
	"WikiGo/internal/config"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type transferCmd struct{}

func (transferCmd) Name() string { return "transfer" }
func (transferCmd) Description() string {
	return "Push wiki data to the instance that issued the key"
}
func (transferCmd) Usage() string { return "transfer <transfer-key> [collection,...]" }

func (transferCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	payload := map[string]any{"transferKey": args[0]}
	if len(args) > 1 {
		var collections []string
		for _, c := range strings.Split(args[1], ",") {
			if c = strings.TrimSpace(c); c != "" {
				collections = append(collections, c)
			}
		}
		payload["collections"] = collections
	}

	token, _ := auth.LoadToken()
	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/transfer/transfer"
	resp, body, err := api.PostJSON(ctx, endpoint, payload, token)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK:
		fmt.Fprintln(Out, "Transfer completed")
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.New("admin login required, run `wikigo login` first")
	default:
		// сервер отвечает машинным кодом причины, показываем его
		var e struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		}
		if json.Unmarshal(body, &e) == nil && e.Code != "" {
			return fmt.Errorf("%s (%s)", e.Message, e.Code)
		}
		return fmt.Errorf("server error: %s", strings.TrimSpace(string(body)))
	}
}

func init() { RegisterCmd(transferCmd{}) }
