// Package access decides whether the current caller may view, create or edit
// a resource. Decisions are plain values; the HTTP layer turns them into a
// response, a redirect or a 404.
package access

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/d60-Lab/postboard/internal/model"
)

// Caller is the identity behind a request. The zero value is anonymous.
type Caller struct {
	UserID   string
	Username string
}

func (c Caller) Authenticated() bool { return c.UserID != "" }

// Is reports whether the caller is the given user.
func (c Caller) Is(userID string) bool { return c.Authenticated() && c.UserID == userID }

type callerKey struct{}

// WithCaller stores the caller on the request context.
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// CallerFrom returns the caller stored on ctx, anonymous if none.
func CallerFrom(ctx context.Context) Caller {
	c, _ := ctx.Value(callerKey{}).(Caller)
	return c
}

type Kind int

const (
	Allow Kind = iota
	Redirect
	NotFound
)

func (k Kind) String() string {
	switch k {
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	case NotFound:
		return "not_found"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Decision is the outcome of an access check. Target is set for redirects.
type Decision struct {
	Kind   Kind
	Target string
}

func (d Decision) Allowed() bool { return d.Kind == Allow }

func allow() Decision { return Decision{Kind: Allow} }

// View allows everyone: feeds, profiles, posts and comments are public.
func View(Caller) Decision { return allow() }

// Found maps a lookup result onto NotFound.
func Found(exists bool) Decision {
	if !exists {
		return Decision{Kind: NotFound}
	}
	return allow()
}

// Create requires an authenticated caller; anonymous callers are sent to the
// login page with the original URI preserved in ?next=.
func Create(c Caller, requestURI, loginURL string) Decision {
	if !c.Authenticated() {
		return Decision{Kind: Redirect, Target: LoginRedirect(loginURL, requestURI)}
	}
	return allow()
}

// EditPost lets only the author edit. Anyone else is sent back to the post.
func EditPost(c Caller, post *model.Post, username, requestURI, loginURL string) Decision {
	if d := Create(c, requestURI, loginURL); !d.Allowed() {
		return d
	}
	if post == nil {
		return Decision{Kind: NotFound}
	}
	if !c.Is(post.AuthorID) {
		return Decision{Kind: Redirect, Target: PostURL(username, post.ID)}
	}
	return allow()
}

// LoginRedirect builds "<loginURL>?next=<requestURI>".
func LoginRedirect(loginURL, requestURI string) string {
	u, err := url.Parse(loginURL)
	if err != nil {
		return loginURL
	}
	q := u.Query()
	q.Set("next", requestURI)
	u.RawQuery = q.Encode()
	return u.String()
}

func PostURL(username, postID string) string {
	return "/posts/" + url.PathEscape(username) + "/" + url.PathEscape(postID)
}

func ProfileURL(username string) string {
	return "/profile/" + url.PathEscape(username)
}

// SafeNext accepts only local absolute paths for post-login redirects.
func SafeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" {
		return "/"
	}
	return next
}
