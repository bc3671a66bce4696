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

type generateKeyCmd struct{}

func (generateKeyCmd) Name() string        { return "generate-key" }
func (generateKeyCmd) Description() string { return "Issue a transfer key for this instance" }
func (generateKeyCmd) Usage() string       { return "generate-key [site-url]" }

func (generateKeyCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	payload := map[string]string{}
	if len(args) > 0 {
		payload["appSiteUrl"] = args[0]
	}

	token, _ := auth.LoadToken()
	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/transfer/generate-key"
	resp, body, err := api.PostJSON(ctx, endpoint, payload, token)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK:
		var r struct {
			TransferKey string `json:"transferKey"`
		}
		if err := json.Unmarshal(body, &r); err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		// ключ показывается один раз, дальше его вводят на отправляющем инстансе
		fmt.Fprintln(Out, r.TransferKey)
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.New("admin login required, run `wikigo login` first")
	default:
		return fmt.Errorf("server error: %s", strings.TrimSpace(string(body)))
	}
}

func init() { RegisterCmd(generateKeyCmd{}) }
