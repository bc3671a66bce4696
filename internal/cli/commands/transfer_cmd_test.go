package commands

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"WikiGo/internal/config"
)

func TestGenerateKey_Run(t *testing.T) {
	withTempConfig(t)
	out := captureOut(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/api/transfer/generate-key") {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["appSiteUrl"] != "https://wiki.example" {
			t.Fatalf("appSiteUrl not passed: %v", req)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"transferKey":"https://wiki.example__wikigo_transfer_key__id:secret"}`))
	}))
	defer ts.Close()

	cmd := generateKeyCmd{}
	if err := cmd.Run(context.Background(), &config.Config{ServerURL: ts.URL}, []string{"https://wiki.example"}); err != nil {
		t.Fatalf("generate-key should succeed: %v", err)
	}
	if !strings.Contains(out.String(), "__wikigo_transfer_key__") {
		t.Fatalf("key not printed: %q", out.String())
	}

	// 403 → просим залогиниться администратором
	ts403 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer ts403.Close()
	err := cmd.Run(context.Background(), &config.Config{ServerURL: ts403.URL}, nil)
	if err == nil || !strings.Contains(err.Error(), "admin login required") {
		t.Fatalf("expected admin login error, got %v", err)
	}
}

func TestTransfer_Run(t *testing.T) {
	withTempConfig(t)
	out := captureOut(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/api/transfer/transfer") {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		var req struct {
			TransferKey string   `json:"transferKey"`
			Collections []string `json:"collections"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if req.TransferKey == "" {
			t.Fatalf("transferKey not passed")
		}
		if len(req.Collections) != 2 {
			t.Fatalf("collections not parsed: %v", req.Collections)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"transfer completed"}`))
	}))
	defer ts.Close()

	cmd := transferCmd{}
	err := cmd.Run(context.Background(), &config.Config{ServerURL: ts.URL},
		[]string{"https://wiki.example__wikigo_transfer_key__id:secret", "pages, revisions"})
	if err != nil {
		t.Fatalf("transfer should succeed: %v", err)
	}
	if !strings.Contains(out.String(), "Transfer completed") {
		t.Fatalf("completion not printed: %q", out.String())
	}

	// без аргументов → ErrUsage
	if err := cmd.Run(context.Background(), &config.Config{}, nil); err != ErrUsage {
		t.Fatalf("expected ErrUsage, got %v", err)
	}

	// машинный код причины пробрасывается в ошибку
	tsErr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"transfer to this instance is not allowed","code":"version_mismatch"}`))
	}))
	defer tsErr.Close()
	err = cmd.Run(context.Background(), &config.Config{ServerURL: tsErr.URL}, []string{"some-key"})
	if err == nil || !strings.Contains(err.Error(), "version_mismatch") {
		t.Fatalf("expected version_mismatch in error, got %v", err)
	}
}

func TestDispatch_UnknownAndHelp(t *testing.T) {
	out := captureOut(t)

	if code := Dispatch(context.Background(), &config.Config{}, []string{"no-such-cmd"}); code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(out.String(), "Unknown command") {
		t.Fatalf("usage not printed: %q", out.String())
	}

	out.Reset()
	if code := Dispatch(context.Background(), &config.Config{}, []string{"help", "transfer"}); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(out.String(), "transfer <transfer-key>") {
		t.Fatalf("command usage not printed: %q", out.String())
	}
}
