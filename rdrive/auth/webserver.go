package auth

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

const callbackState = "state-token"

// getTokenFromWebserver starts a server on addr, asks the user to open the
// consent page and waits for google to redirect back with the code.
func getTokenFromWebserver(ctx context.Context, config *oauth2.Config, addr string, out io.Writer) (*oauth2.Token, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "could not listen on %s", addr)
	}
	cfg := *config
	cfg.RedirectURL = "http://" + listener.Addr().String()

	code, err := waitForCode(ctx, listener, func(url string) {
		fmt.Fprintf(out, "Please navigate to \"%s\" in your browser\n", url)
	}, cfg.AuthCodeURL(callbackState, oauth2.AccessTypeOffline))
	if err != nil {
		return nil, err
	}

	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, errors.Wrap(err, "unable to retrieve token from web")
	}
	return tok, nil
}

// waitForCode serves on listener until a callback request carrying state
// or code arrives and returns its code parameter. Other requests, like the
// browser asking for /favicon.ico, get 404 and are otherwise ignored.
func waitForCode(ctx context.Context, listener net.Listener, show func(url string), authURL string) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu         sync.Mutex
		done       bool
		code       string
		handlerErr error
	)
	finish := func(c string, err error) bool {
		mu.Lock()
		defer mu.Unlock()
		if done {
			return false
		}
		done = true
		code, handlerErr = c, err
		cancel()
		return true
	}

	server := &http.Server{}
	server.Handler = http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			query := r.URL.Query()
			if !query.Has("state") && !query.Has("code") {
				http.NotFound(w, r)
				return
			}
			var (
				c   string
				err error
				msg string
			)
			switch {
			case query.Get("state") != callbackState:
				err, msg = errors.New("callback state does not match"), "Wrong state"
			case query.Get("code") == "":
				err, msg = errors.New("request was missing code URL parameter"), "Missing code"
			default:
				c, msg = query.Get("code"), "Everything's all good. You can close this tab and navigate back to your terminal."
			}
			if !finish(c, err) {
				fmt.Fprint(w, "Authorization is already finished")
				return
			}
			fmt.Fprint(w, msg)
		},
	)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(listener)
	}()
	show(authURL)

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		return "", errors.Wrap(err, "callback server stopped")
	}
	server.Shutdown(context.Background())

	mu.Lock()
	defer mu.Unlock()
	if handlerErr != nil {
		return "", handlerErr
	}
	if code == "" {
		return "", errors.Wrap(ctx.Err(), "no authorization code received")
	}
	return code, nil
}
