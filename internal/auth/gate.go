package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the claim-level privilege attached to a session.
type Role string

const (
	RoleAuthenticated Role = "authenticated"
	RoleAdmin         Role = "admin"
)

// Identity is a resolved, provider-confirmed session.
type Identity struct {
	User  User
	Role  Role
	Admin bool
}

// Gate answers the two route-guard questions: is there a live session,
// and is it privileged. Privilege is an explicit role set rather than a
// bare authenticated check, so tightening it later is a config change,
// not a rewrite. Today any authenticated role qualifies as admin, which
// matches the single-owner deployment.
type Gate struct {
	client     *Client
	adminRoles map[Role]bool
}

func NewGate(client *Client) *Gate {
	return &Gate{
		client: client,
		adminRoles: map[Role]bool{
			RoleAuthenticated: true,
			RoleAdmin:         true,
		},
	}
}

// Identify validates the token against the provider and attaches the
// role claim. Fails closed: no client, expired session or a provider
// error all come back as an error.
func (g *Gate) Identify(ctx context.Context, accessToken string) (*Identity, error) {
	if g.client == nil || accessToken == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := g.client.CurrentUser(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	role := roleFromToken(accessToken)
	if role == "" {
		role = Role(user.Role)
	}

	return &Identity{
		User:  *user,
		Role:  role,
		Admin: g.adminRoles[role],
	}, nil
}

func (g *Gate) HasSession(ctx context.Context, accessToken string) bool {
	_, err := g.Identify(ctx, accessToken)
	return err == nil
}

// HasRole checks the session against a specific role claim.
func (g *Gate) HasRole(ctx context.Context, accessToken string, role Role) bool {
	id, err := g.Identify(ctx, accessToken)
	return err == nil && id.Role == role
}

func (g *Gate) IsAdmin(ctx context.Context, accessToken string) bool {
	id, err := g.Identify(ctx, accessToken)
	return err == nil && id.Admin
}

// SignInWithPassword delegates to the provider; without a configured
// provider every login attempt fails as invalid.
func (g *Gate) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	if g.client == nil {
		return nil, ErrInvalidCredentials
	}
	return g.client.SignInWithPassword(ctx, email, password)
}

func (g *Gate) SendMagicLink(ctx context.Context, email string) error {
	if g.client == nil {
		return ErrInvalidCredentials
	}
	return g.client.SendMagicLink(ctx, email)
}

// SignOut revokes the session with the provider. The handler forces a
// full navigation back to the public root afterwards, so nothing
// privileged lingers client-side.
func (g *Gate) SignOut(ctx context.Context, accessToken string) error {
	if g.client == nil {
		return nil
	}
	return g.client.SignOut(ctx, accessToken)
}

// roleFromToken reads the role claim without verifying the signature.
// The session itself was just confirmed with the provider; the local
// parse only extracts the claim the provider signed.
func roleFromToken(accessToken string) Role {
	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(accessToken, jwt.MapClaims{})
	if err != nil {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	role, _ := claims["role"].(string)
	return Role(role)
}
