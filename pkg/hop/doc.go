// Package hop provides types, interfaces, and helpers for working with the
// Hop container-hosting platform API.
//
// # Overview
//
// The hop package defines the domain types (e.g., Deployment, Container,
// Gateway, Channel, Room) and the interfaces for the namespaced clients
// (IgniteClient, ProjectsClient, RegistryClient, ChannelsClient, PipeClient,
// UsersClient). A concrete implementation is provided by the hopclient
// package, which wires configuration, transport, and authentication. Most
// consumers should import hopclient to construct a client and then interact
// with the interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/hopinc/hop-go/pkg/hop"
//	  "github.com/hopinc/hop-go/pkg/hopclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := hopclient.NewWithToken("ptk_xxx")
//	  if err != nil { log.Fatal(err) }
//
//	  deployments, err := cli.Ignite().ListDeployments(ctx, "")
//	  if err != nil { log.Fatal(err) }
//	  _ = deployments
//	}
//
// # Authentication and project scoping
//
// Secrets are classified once, at construction, by prefix: "ptk_" project
// tokens, "pat_" personal access tokens, "bearer_" user tokens. Project
// tokens are bound to a single project, so project-scoped operations accept
// an empty project id with them; every other kind must supply one, either
// per call or through Config.ProjectID, and the omission fails locally as an
// *AuthError before any request is sent. Operations that need a user
// identity (Users, GetCurrentMember) always fail for project tokens.
//
// # Errors
//
// Failures are typed: *APIError for non-2xx responses, *NetworkError for
// transport failures, *DecodeError for response shape mismatches, and
// *AuthError for local policy violations. Helpers such as IsNotFound and
// IsAuthError make it easy to branch on common cases. The client never
// retries on the caller's behalf.
package hop
