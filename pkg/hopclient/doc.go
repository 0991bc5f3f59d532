// Package hopclient provides the main entry point for creating Hop API
// clients.
//
// Most callers only need NewWithToken:
//
//	cli, err := hopclient.NewWithToken("ptk_xxx")
//
// Personal access tokens and bearer tokens are not bound to a project, so
// project-scoped operations with them need a project id. Set a default with
// NewWithProject or pass one per call:
//
//	cli, err := hopclient.NewWithProject("pat_xxx", "project_123")
//
// For full control over configuration (base URL, logging, timeouts, message
// validation), use New with a hop.Config.
package hopclient
