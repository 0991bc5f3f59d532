package hop

import (
	"context"
	"time"
)

// DefaultBaseURL is the production API endpoint used when Config.BaseURL is
// empty.
const DefaultBaseURL = "https://api.hop.io/v1"

// Client is the top-level SDK surface. One Client corresponds to one
// authenticated session; the namespaced clients it exposes hold a
// non-owning reference to it and are safe for concurrent use.
type Client interface {
	Ignite() IgniteClient
	Projects() ProjectsClient
	Registry() RegistryClient
	Channels() ChannelsClient
	Pipe() PipeClient
	Users() UsersClient

	// Token returns the classified credential this client was built with.
	Token() Token
}

// IgniteClient manages deployments, their containers, and gateways.
//
// Operations that take a projectID accept "" to mean "the project bound to
// the token" — valid only for project tokens; other kinds must supply an id
// (per call or via Config.ProjectID) or the call fails locally.
type IgniteClient interface {
	ListDeployments(ctx context.Context, projectID string) ([]Deployment, error)
	GetDeployment(ctx context.Context, deploymentID string) (*Deployment, error)
	GetDeploymentByName(ctx context.Context, projectID, name string) (*Deployment, error)
	CreateDeployment(ctx context.Context, projectID string, config *DeploymentConfig) (*Deployment, error)
	DeleteDeployment(ctx context.Context, deploymentID string) error

	ListContainers(ctx context.Context, deploymentID string) ([]Container, error)
	CreateContainer(ctx context.Context, deploymentID string) (*Container, error)
	StopContainer(ctx context.Context, containerID string) error
	DeleteContainer(ctx context.Context, containerID string) error
	GetContainerLogs(ctx context.Context, containerID string, limit int) ([]ContainerLog, error)

	ListGateways(ctx context.Context, deploymentID string) ([]Gateway, error)
	GetGateway(ctx context.Context, gatewayID string) (*Gateway, error)
	CreateGateway(ctx context.Context, deploymentID string, request *GatewayCreateRequest) (*Gateway, error)
	AddDomain(ctx context.Context, gatewayID, domain string) error
}

// ProjectsClient manages project membership, tokens, secrets, and webhooks.
//
// Tokens were historically also exposed under a "project tokens" name; this
// client provides the single Tokens capability only.
type ProjectsClient interface {
	ListMembers(ctx context.Context, projectID string) ([]Member, error)

	// GetCurrentMember resolves the authenticated user's membership in the
	// project. It requires a user identity and therefore always fails for
	// project tokens.
	GetCurrentMember(ctx context.Context, projectID string) (*Member, error)

	ListTokens(ctx context.Context, projectID string) ([]ProjectToken, error)
	CreateToken(ctx context.Context, projectID string, flags int) (*ProjectToken, error)
	DeleteToken(ctx context.Context, projectID, tokenID string) error

	ListSecrets(ctx context.Context, projectID string) ([]Secret, error)

	// SetSecret stores the raw value verbatim. The value travels as a
	// plain-text request body, never JSON-encoded.
	SetSecret(ctx context.Context, projectID, name, value string) (*Secret, error)
	DeleteSecret(ctx context.Context, projectID, name string) error

	ListWebhooks(ctx context.Context, projectID string) ([]Webhook, error)
	CreateWebhook(ctx context.Context, projectID string, request *WebhookCreateRequest) (*Webhook, error)
	DeleteWebhook(ctx context.Context, projectID, webhookID string) error
	RegenerateWebhookSecret(ctx context.Context, projectID, webhookID string) (string, error)
}

// RegistryClient manages container images in the project registry.
type RegistryClient interface {
	ListImages(ctx context.Context, projectID string) ([]string, error)
	GetImageManifests(ctx context.Context, image string) ([]ImageManifest, error)
	DeleteImage(ctx context.Context, image string) error
}

// ChannelsClient manages realtime channels and channel tokens.
type ChannelsClient interface {
	List(ctx context.Context, projectID string) ([]Channel, error)
	Get(ctx context.Context, channelID string) (*Channel, error)

	// Create creates a channel. A non-empty channelID requests that exact
	// id; an empty one lets the platform assign it.
	Create(ctx context.Context, projectID string, channelType ChannelType, channelID string, state map[string]any) (*Channel, error)
	Delete(ctx context.Context, channelID string) error

	PublishMessage(ctx context.Context, channelID, event string, data any) error
	SubscribeToken(ctx context.Context, channelID, token string) error

	CreateToken(ctx context.Context, projectID string, state map[string]any) (*ChannelToken, error)
	GetToken(ctx context.Context, token string) (*ChannelToken, error)
	SetTokenState(ctx context.Context, token string, state map[string]any) (*ChannelToken, error)
	PublishDirect(ctx context.Context, token, event string, data any) error
}

// PipeClient manages streaming rooms.
type PipeClient interface {
	ListRooms(ctx context.Context, projectID string) ([]Room, error)
	CreateRoom(ctx context.Context, projectID string, request *RoomCreateRequest) (*Room, error)
	DeleteRoom(ctx context.Context, roomID string) error
}

// UsersClient exposes the authenticated user. Every operation here requires
// a user identity and fails locally for project tokens.
type UsersClient interface {
	GetMe(ctx context.Context) (*Me, error)
	ListPersonalTokens(ctx context.Context) ([]PersonalToken, error)
	CreatePersonalToken(ctx context.Context) (*PersonalToken, error)
	DeletePersonalToken(ctx context.Context, tokenID string) error
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// MessageValidator validates a channel message before it is published. When
// Config.MessageValidator is nil, messages are sent as-is.
type MessageValidator func(event string, data any) error

// Config represents client configuration for building a hop.Client.
//
// # Authentication
//
// Token is required and is classified once, by prefix, at construction:
// "ptk_" project tokens, "pat_" personal access tokens, and "bearer_" user
// tokens. An unrecognized secret fails construction with ErrInvalidToken.
//
// # Project scoping
//
// Project tokens are bound to one project server-side, so project-scoped
// calls may omit the project id entirely. For the other kinds, ProjectID
// provides a per-client default; a per-call id always wins. When neither is
// present the call fails locally before any request is sent.
type Config struct {
	// Token is the secret to authenticate with. Required.
	Token string

	// BaseURL overrides the API endpoint. Defaults to DefaultBaseURL. The
	// value is normalized: trailing slash trimmed, "https://" added when no
	// scheme is present.
	BaseURL string

	// ProjectID is the default project for project-scoped operations when
	// the token is not itself project-bound.
	ProjectID string

	// HTTPTimeout bounds each request when the caller's context carries no
	// deadline. Zero means the transport default.
	HTTPTimeout time.Duration

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Debug enables verbose request/response logging when a Logger is set.
	Debug bool

	// Logger receives structured debug logs from the HTTP layer.
	Logger Logger

	// MessageValidator, when set, is applied to every channel message
	// before it is published.
	MessageValidator MessageValidator
}
