package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

const clientSecret = `{"installed":{"client_id":"id","client_secret":"secret",
"auth_uri":"https://accounts.google.com/o/oauth2/auth",
"token_uri":"https://oauth2.googleapis.com/token",
"redirect_uris":["urn:ietf:wg:oauth:2.0:oob","http://localhost"]}}`

func TestGetTokenSourceUsesCachedToken(t *testing.T) {
	dir := t.TempDir()
	credentials := filepath.Join(dir, "client_secret.json")
	if err := os.WriteFile(credentials, []byte(clientSecret), 0600); err != nil {
		t.Fatal(err)
	}
	cached := &oauth2.Token{AccessToken: "cached", TokenType: "Bearer", Expiry: time.Now().Add(time.Hour)}
	if err := saveToken(filepath.Join(dir, "token.json"), cached); err != nil {
		t.Fatal(err)
	}

	ts, err := GetTokenSource(context.Background(), Config{Mode: ModeCLI, ConfigDir: dir, CredentialsFile: credentials})
	if err != nil {
		t.Fatal(err)
	}
	tok, err := ts.Token()
	if err != nil {
		t.Fatal(err)
	}
	if tok.AccessToken != "cached" {
		t.Errorf("expected the cached token, got %s", tok.AccessToken)
	}
}

func TestGetTokenSourceUnknownMode(t *testing.T) {
	dir := t.TempDir()
	credentials := filepath.Join(dir, "client_secret.json")
	if err := os.WriteFile(credentials, []byte(clientSecret), 0600); err != nil {
		t.Fatal(err)
	}
	_, err := GetTokenSource(context.Background(), Config{Mode: "carrier-pigeon", ConfigDir: dir, CredentialsFile: credentials})
	if errors.Cause(err) != ErrUnknownMode {
		t.Errorf("expected ErrUnknownMode, got %v", err)
	}
}

func TestGetTokenSourceMissingCredentials(t *testing.T) {
	dir := t.TempDir()
	_, err := GetTokenSource(context.Background(), Config{ConfigDir: dir, CredentialsFile: filepath.Join(dir, "nope.json")})
	if err == nil {
		t.Error("missing credentials must fail")
	}
}

func TestGetTokenFromCLI(t *testing.T) {
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.FormValue("code") != "the-code" {
			http.Error(w, "bad code", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "fresh",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}))
	defer tokenServer.Close()

	cfg := &oauth2.Config{
		ClientID: "id",
		Endpoint: oauth2.Endpoint{AuthURL: "https://example.com/auth", TokenURL: tokenServer.URL},
	}
	var out bytes.Buffer
	tok, err := getTokenFromCLI(context.Background(), cfg, strings.NewReader("the-code\n"), &out)
	if err != nil {
		t.Fatal(err)
	}
	if tok.AccessToken != "fresh" {
		t.Errorf("unexpected token %s", tok.AccessToken)
	}
	if !strings.Contains(out.String(), "https://example.com/auth") {
		t.Errorf("consent url was not printed: %s", out.String())
	}
}

func TestWaitForCode(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	callback := "http://" + listener.Addr().String() + "/?state=" + callbackState + "&code=abc"

	code, err := waitForCode(context.Background(), listener, func(string) {
		go func() {
			resp, err := http.Get(callback)
			if err == nil {
				resp.Body.Close()
			}
		}()
	}, "https://example.com/auth")
	if err != nil {
		t.Fatal(err)
	}
	if code != "abc" {
		t.Errorf("expected code abc, got %s", code)
	}
}

func TestWaitForCodeWrongState(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	callback := "http://" + listener.Addr().String() + "/?state=other&code=abc"

	_, err = waitForCode(context.Background(), listener, func(string) {
		go func() {
			resp, err := http.Get(callback)
			if err == nil {
				resp.Body.Close()
			}
		}()
	}, "https://example.com/auth")
	if err == nil {
		t.Error("a callback with a wrong state must fail")
	}
}

func TestWaitForCodeIgnoresStrayRequests(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	base := "http://" + listener.Addr().String()
	strayStatus := make(chan int, 1)

	code, err := waitForCode(context.Background(), listener, func(string) {
		go func() {
			resp, err := http.Get(base + "/favicon.ico")
			if err != nil {
				strayStatus <- 0
				return
			}
			resp.Body.Close()
			strayStatus <- resp.StatusCode

			resp, err = http.Get(base + "/?state=" + callbackState + "&code=abc")
			if err == nil {
				resp.Body.Close()
			}
		}()
	}, "https://example.com/auth")
	if err != nil {
		t.Fatal(err)
	}
	if code != "abc" {
		t.Errorf("expected code abc, got %s", code)
	}
	if status := <-strayStatus; status != http.StatusNotFound {
		t.Errorf("a request without state and code must get 404, got %d", status)
	}
}
