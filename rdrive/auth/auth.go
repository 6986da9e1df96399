// Package auth gets an oauth2.TokenSource for the Drive API.
package auth

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
)

type Mode string

const (
	// ModeCLI prints the consent URL and reads the code from stdin. It works
	// on remote machines without a browser.
	ModeCLI Mode = "cli"
	// ModeWebserver receives the code on a local callback server.
	ModeWebserver Mode = "webserver"
	// ModeServiceAccount uses a service account key, no user interaction.
	ModeServiceAccount Mode = "service-account"
)

var ErrUnknownMode = errors.New("unknown auth mode")

type Config struct {
	Mode Mode
	// ConfigDir keeps the cached token.json
	ConfigDir string
	// CredentialsFile is the client secret (or the service account key)
	CredentialsFile string
	// CallbackAddr is where the webserver mode listens, e.g. localhost:8090
	CallbackAddr string
}

// GetTokenSource retrieves a token, saves the token, then returns the token source.
func GetTokenSource(ctx context.Context, cfg Config) (oauth2.TokenSource, error) {
	b, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, errors.Wrapf(err, "make sure the key file '%s' exists and is readable", cfg.CredentialsFile)
	}

	if cfg.Mode == ModeServiceAccount {
		creds, err := google.CredentialsFromJSON(ctx, b, drive.DriveScope)
		if err != nil {
			return nil, errors.Wrap(err, "unable to parse service account key")
		}
		return creds.TokenSource, nil
	}

	oauthCfg, err := google.ConfigFromJSON(b, drive.DriveScope)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse client config file")
	}

	// The file token.json stores the user's access and refresh tokens, and is
	// created automatically when the authorization flow completes for the first
	// time.
	tokFile := filepath.Join(cfg.ConfigDir, "token.json")
	tok, err := tokenFromFile(tokFile)
	if err != nil { // if could not read token from file, create it
		switch cfg.Mode {
		case ModeCLI, "":
			tok, err = getTokenFromCLI(ctx, oauthCfg, os.Stdin, os.Stdout)
		case ModeWebserver:
			tok, err = getTokenFromWebserver(ctx, oauthCfg, cfg.CallbackAddr, os.Stdout)
		default:
			return nil, errors.Wrapf(ErrUnknownMode, "%q", cfg.Mode)
		}
		if nil != err {
			return nil, errors.Wrap(err, "could not get token from web")
		}
		if err = saveToken(tokFile, tok); nil != err {
			return nil, err
		}
	}

	return oauthCfg.TokenSource(ctx, tok), nil
}

// getTokenFromCLI requests a token from the web, then returns the retrieved token.
func getTokenFromCLI(ctx context.Context, config *oauth2.Config, in io.Reader, out io.Writer) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Fprintf(out, "Go to the following link in your browser then type the "+
		"authorization code: \n%v\n", authURL)

	var authCode string
	if _, err := fmt.Fscan(bufio.NewReader(in), &authCode); err != nil {
		return nil, errors.Wrap(err, "unable to read authorization code")
	}

	tok, err := config.Exchange(ctx, authCode)
	if err != nil {
		return nil, errors.Wrap(err, "unable to retrieve token from web")
	}
	return tok, nil
}

// tokenFromFile retrieves a token from a local file.
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

// saveToken saves a token to a file path.
func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return errors.Wrapf(err, "unable to save oauth token to %s", path)
	}
	defer f.Close()
	return errors.Wrap(json.NewEncoder(f).Encode(token), "unable to encode oauth token")
}
