package hackernews

import (
	"context"

	"go.opentelemetry.io/otel/codes"
)

// AuthenticatedClient owns a logged-in session. It wraps a plain Client
// rather than being one: reads forward to the inner client, writes live
// here.
type AuthenticatedClient struct {
	client *Client
}

// Login authenticates an existing account. The site answers bad credentials
// with a 200 error page, so the only reliable failure signal is the final
// URL after redirects not landing on the news listing.
func Login(ctx context.Context, opts ClientOptions, username, password string) (*AuthenticatedClient, error) {
	return authenticate(ctx, opts, username, password, false)
}

// Signup creates a new account and returns a session logged into it.
func Signup(ctx context.Context, opts ClientOptions, username, password string) (*AuthenticatedClient, error) {
	return authenticate(ctx, opts, username, password, true)
}

func authenticate(ctx context.Context, opts ClientOptions, username, password string, creating bool) (*AuthenticatedClient, error) {
	ctx, span := tracer.Start(ctx, "client:authenticate")
	defer span.End()

	client, err := NewClient(opts)
	if err != nil {
		return nil, err
	}

	// primes the session cookie before credentials are posted
	res, err := client.Http.R().
		SetContext(ctx).
		Get("login?goto=news")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch login page")
		return nil, err
	}
	if res.IsError() {
		err := StatusError{Code: res.StatusCode()}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	form := map[string]string{
		"goto": "news",
		"acct": username,
		"pw":   password,
	}
	if creating {
		form["creating"] = "t"
	}
	res, err = client.Http.R().
		SetContext(ctx).
		SetFormData(form).
		Post("login")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to make login request")
		return nil, err
	}
	if res.IsError() {
		err := StatusError{Code: res.StatusCode()}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if res.RawResponse.Request.URL.Path != "/news" {
		// TODO: pull the error message out of the response body so bad
		// credentials and banned accounts are distinguishable
		span.SetStatus(codes.Error, ErrLoginFailed.Error())
		return nil, ErrLoginFailed
	}

	return &AuthenticatedClient{client: client}, nil
}

// Reader exposes the underlying unauthenticated client. Pages fetched
// through it share this session, so their vote affordances are usable with
// Vote.
func (a *AuthenticatedClient) Reader() *Client {
	return a.client
}

func (a *AuthenticatedClient) Top(ctx context.Context, page uint) ([]Post, error) {
	return a.client.Top(ctx, page)
}

func (a *AuthenticatedClient) Submission(ctx context.Context, id string) (Post, error) {
	return a.client.Submission(ctx, id)
}

// Vote follows a VoteAction link. The action must come from a page fetched
// with this same session; votes are one-shot and a stale link fails
// server-side without an error status, so callers should refetch to
// confirm.
func (a *AuthenticatedClient) Vote(ctx context.Context, action VoteAction) error {
	ctx, span := tracer.Start(ctx, "client:Vote")
	defer span.End()

	res, err := a.client.Http.R().
		SetContext(ctx).
		Get(action.Href)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to make vote request")
		return err
	}
	if res.IsError() {
		err := StatusError{Code: res.StatusCode()}
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
