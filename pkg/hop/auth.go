package hop

import (
	"fmt"
	"strings"
)

// TokenKind identifies which of the supported authentication forms a secret
// is. The set is closed: every switch over TokenKind in this module is
// exhaustive so that adding a kind forces an explicit decision everywhere.
type TokenKind string

const (
	// TokenKindProject is a project token ("ptk_" prefix). It is bound to a
	// single project on the server side, so project-scoped operations may
	// omit an explicit project id.
	TokenKindProject TokenKind = "ptk"

	// TokenKindPersonal is a personal access token ("pat_" prefix).
	TokenKindPersonal TokenKind = "pat"

	// TokenKindBearer is a user bearer token ("bearer_" prefix), typically
	// obtained through an interactive login.
	TokenKindBearer TokenKind = "bearer"
)

// tokenPrefixes lists the recognized secret prefixes in classification
// order.
var tokenPrefixes = []TokenKind{TokenKindProject, TokenKindPersonal, TokenKindBearer}

// Token is a classified credential. Classification happens once, at client
// construction, and the result is immutable for the client's lifetime.
type Token struct {
	kind   TokenKind
	secret string
}

// ParseToken classifies a secret by its literal prefix. It is a pure
// function: no I/O, same input always yields the same result. An empty or
// unrecognized secret fails with ErrInvalidToken.
func ParseToken(secret string) (Token, error) {
	if secret == "" {
		return Token{}, fmt.Errorf("empty secret: %w", ErrInvalidToken)
	}

	for _, kind := range tokenPrefixes {
		if strings.HasPrefix(secret, string(kind)+"_") {
			return Token{kind: kind, secret: secret}, nil
		}
	}

	return Token{}, fmt.Errorf("secret %s: %w", maskSecret(secret), ErrInvalidToken)
}

// Kind returns the classified token kind.
func (t Token) Kind() TokenKind {
	return t.kind
}

// Defined reports whether the token is present. The zero Token is not
// defined; requests made with it carry no authentication header.
func (t Token) Defined() bool {
	return t.secret != ""
}

// Masked returns a masked form of the token suitable for log messages.
func (t Token) Masked() string {
	return maskSecret(t.secret)
}

// String returns the masked form, never the raw secret.
func (t Token) String() string {
	return t.Masked()
}

// AuthorizationValue returns the value to send in the Authorization header
// for this token, or "" when the token is not defined. The scheme is chosen
// by kind; this is the single place the mapping lives.
func (t Token) AuthorizationValue() string {
	if !t.Defined() {
		return ""
	}

	switch t.kind {
	case TokenKindProject, TokenKindPersonal:
		return t.secret
	case TokenKindBearer:
		return "Bearer " + t.secret
	}

	return ""
}

// maskedTailLength is how many trailing characters remain visible when a
// secret is masked for display.
const maskedTailLength = 4

func maskSecret(secret string) string {
	if len(secret) <= maskedTailLength {
		return "****"
	}

	return "****" + secret[len(secret)-maskedTailLength:]
}

// ThisProject is the path value the API accepts in place of an explicit
// project id when the authenticated token is itself bound to a project.
const ThisProject = "@this"

// CheckProjectScope validates that a project-scoped operation can proceed.
// Project tokens may omit the project id (the server infers it from the
// token); for every other kind a missing id is an error. The check is
// purely local and never dispatches a request.
func CheckProjectScope(kind TokenKind, projectID string) error {
	if projectID != "" || kind == TokenKindProject {
		return nil
	}

	return &AuthError{
		Kind:    kind,
		Message: "project id is required unless authenticating with a project token",
	}
}

// CheckUserScope validates that an operation requiring a user identity can
// proceed. Project tokens carry no user identity, so these operations fail
// for them unconditionally, regardless of other parameters.
func CheckUserScope(kind TokenKind) error {
	if kind != TokenKindProject {
		return nil
	}

	return &AuthError{
		Kind:    kind,
		Message: "operation requires a user identity and cannot be performed with a project token",
	}
}

// ResolveProject applies CheckProjectScope and returns the effective project
// path value: the explicit id when one was given, otherwise the @this
// sentinel for project tokens.
func ResolveProject(kind TokenKind, projectID string) (string, error) {
	err := CheckProjectScope(kind, projectID)
	if err != nil {
		return "", err
	}

	if projectID == "" {
		return ThisProject, nil
	}

	return projectID, nil
}
