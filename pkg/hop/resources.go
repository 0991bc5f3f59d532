package hop

import "time"

// Ignite (containers and deployments)

// RuntimeType describes how containers in a deployment are scheduled.
type RuntimeType string

const (
	// RuntimeTypeEphemeral containers are torn down when they exit.
	RuntimeTypeEphemeral RuntimeType = "ephemeral"
	// RuntimeTypePersistent containers are restarted according to the
	// deployment restart policy.
	RuntimeTypePersistent RuntimeType = "persistent"
	// RuntimeTypeStateful containers keep an attached volume.
	RuntimeTypeStateful RuntimeType = "stateful"
)

// RestartPolicy controls when the platform restarts an exited container.
type RestartPolicy string

const (
	RestartPolicyNever     RestartPolicy = "never"
	RestartPolicyAlways    RestartPolicy = "always"
	RestartPolicyOnFailure RestartPolicy = "on-failure"
)

// ContainerState is the lifecycle state of a single container.
type ContainerState string

const (
	ContainerStatePending     ContainerState = "pending"
	ContainerStateRunning     ContainerState = "running"
	ContainerStateStopped     ContainerState = "stopped"
	ContainerStateFailed      ContainerState = "failed"
	ContainerStateTerminating ContainerState = "terminating"
	ContainerStateExited      ContainerState = "exited"
)

// ContainerResources declares the resource envelope for each container.
type ContainerResources struct {
	VCPU float64 `json:"vcpu" yaml:"vcpu"`
	RAM  string  `json:"ram"  yaml:"ram"`
}

// ImageConfig identifies the image a deployment runs.
type ImageConfig struct {
	Name string `json:"name" yaml:"name"`
}

// DeploymentConfig is the desired state of a deployment. It doubles as the
// request body for deployment creation.
type DeploymentConfig struct {
	Name          string             `json:"name"                    yaml:"name"`
	Type          RuntimeType        `json:"type"                    yaml:"type"`
	Image         ImageConfig        `json:"image"                   yaml:"image"`
	RestartPolicy RestartPolicy      `json:"restart_policy"          yaml:"restart_policy"`
	Resources     ContainerResources `json:"resources"               yaml:"resources"`
	Env           map[string]string  `json:"env,omitempty"           yaml:"env,omitempty"`
	Entrypoint    []string           `json:"entrypoint,omitempty"    yaml:"entrypoint,omitempty"`
	TargetCount   int                `json:"target_count,omitempty"  yaml:"target_count,omitempty"`
}

// Deployment is a group of containers running one image.
type Deployment struct {
	ID             string           `json:"id"              yaml:"id"`
	Name           string           `json:"name"            yaml:"name"`
	ContainerCount int              `json:"container_count" yaml:"container_count"`
	CreatedAt      time.Time        `json:"created_at"      yaml:"created_at"`
	Config         DeploymentConfig `json:"config"          yaml:"config"`
}

// Container is a single running (or exited) instance of a deployment.
type Container struct {
	ID           string         `json:"id"            yaml:"id"`
	DeploymentID string         `json:"deployment_id" yaml:"deployment_id"`
	State        ContainerState `json:"state"         yaml:"state"`
	Region       string         `json:"region"        yaml:"region"`
	Type         RuntimeType    `json:"type"          yaml:"type"`
	InternalIP   string         `json:"internal_ip"   yaml:"internal_ip"`
	CreatedAt    time.Time      `json:"created_at"    yaml:"created_at"`
}

// ContainerLog is one log line emitted by a container.
type ContainerLog struct {
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Level     string    `json:"level"     yaml:"level"`
	Message   string    `json:"message"   yaml:"message"`
	Nonce     string    `json:"nonce"     yaml:"nonce"`
}

// GatewayType distinguishes internet-facing gateways from internal ones.
type GatewayType string

const (
	GatewayTypeExternal GatewayType = "external"
	GatewayTypeInternal GatewayType = "internal"
)

// GatewayCreateRequest is the request body for gateway creation.
type GatewayCreateRequest struct {
	Type       GatewayType `json:"type"        yaml:"type"`
	Name       string      `json:"name"        yaml:"name"`
	Protocol   string      `json:"protocol"    yaml:"protocol"`
	TargetPort int         `json:"target_port" yaml:"target_port"`
}

// Gateway routes traffic to a deployment's containers.
type Gateway struct {
	ID           string      `json:"id"                     yaml:"id"`
	DeploymentID string      `json:"deployment_id"          yaml:"deployment_id"`
	Type         GatewayType `json:"type"                   yaml:"type"`
	Name         string      `json:"name"                   yaml:"name"`
	Protocol     string      `json:"protocol"               yaml:"protocol"`
	TargetPort   int         `json:"target_port"            yaml:"target_port"`
	HopshDomain  string      `json:"hopsh_domain,omitempty" yaml:"hopsh_domain,omitempty"`
	Domains      []Domain    `json:"domains"                yaml:"domains"`
	CreatedAt    time.Time   `json:"created_at"             yaml:"created_at"`
}

// DomainState tracks custom domain verification.
type DomainState string

const (
	DomainStatePending    DomainState = "pending"
	DomainStateValidCname DomainState = "valid_cname"
	DomainStateSSLActive  DomainState = "ssl_active"
	DomainStateDeleting   DomainState = "deleting"
)

// Domain is a custom domain attached to a gateway.
type Domain struct {
	ID        string      `json:"id"         yaml:"id"`
	Domain    string      `json:"domain"     yaml:"domain"`
	State     DomainState `json:"state"      yaml:"state"`
	CreatedAt time.Time   `json:"created_at" yaml:"created_at"`
}

// Projects

// Project is a top-level grouping of platform resources.
type Project struct {
	ID        string    `json:"id"         yaml:"id"`
	Name      string    `json:"name"       yaml:"name"`
	Namespace string    `json:"namespace"  yaml:"namespace"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// MemberRole is the role a member holds within a project.
type MemberRole struct {
	ID    string `json:"id"    yaml:"id"`
	Name  string `json:"name"  yaml:"name"`
	Flags int    `json:"flags" yaml:"flags"`
}

// Member is a user's membership in a project.
type Member struct {
	ID       string     `json:"id"        yaml:"id"`
	Name     string     `json:"name"      yaml:"name"`
	Username string     `json:"username"  yaml:"username"`
	Email    string     `json:"email"     yaml:"email"`
	Role     MemberRole `json:"role"      yaml:"role"`
	JoinedAt time.Time  `json:"joined_at" yaml:"joined_at"`
}

// ProjectToken authenticates server-side workloads against one project. The
// full secret is only present in the creation response; afterwards the API
// returns a redacted form.
type ProjectToken struct {
	ID        string    `json:"id"         yaml:"id"`
	Token     string    `json:"token"      yaml:"token"`
	Flags     int       `json:"flags"      yaml:"flags"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Secret is a named project secret. Values are write-only: the API exposes
// only the digest of what was stored.
type Secret struct {
	ID        string    `json:"id"         yaml:"id"`
	Name      string    `json:"name"       yaml:"name"`
	Digest    string    `json:"digest"     yaml:"digest"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// WebhookCreateRequest is the request body for webhook creation.
type WebhookCreateRequest struct {
	WebhookURL string   `json:"webhook_url" yaml:"webhook_url"`
	Events     []string `json:"events"      yaml:"events"`
}

// Webhook delivers project events to an external URL.
type Webhook struct {
	ID         string    `json:"id"          yaml:"id"`
	WebhookURL string    `json:"webhook_url" yaml:"webhook_url"`
	Events     []string  `json:"events"      yaml:"events"`
	Secret     string    `json:"secret"      yaml:"secret"`
	CreatedAt  time.Time `json:"created_at"  yaml:"created_at"`
}

// Registry

// ImageManifest describes one manifest stored for a registry image.
type ImageManifest struct {
	Digest     ManifestDigest `json:"digest"        yaml:"digest"`
	Tag        *string        `json:"tag"           yaml:"tag"`
	UploadedAt time.Time      `json:"uploaded_at"   yaml:"uploaded_at"`
}

// ManifestDigest is the content-addressed identity of a manifest.
type ManifestDigest struct {
	Digest string `json:"digest" yaml:"digest"`
	Size   int64  `json:"size"   yaml:"size"`
}

// Channels

// ChannelType controls who may subscribe to a channel.
type ChannelType string

const (
	ChannelTypePrivate     ChannelType = "private"
	ChannelTypePublic      ChannelType = "public"
	ChannelTypeUnprotected ChannelType = "unprotected"
)

// Channel is a realtime message channel.
type Channel struct {
	ID        string         `json:"id"         yaml:"id"`
	Type      ChannelType    `json:"type"       yaml:"type"`
	State     map[string]any `json:"state"      yaml:"state"`
	CreatedAt time.Time      `json:"created_at" yaml:"created_at"`
}

// ChannelToken grants a client access to subscribe to channels.
type ChannelToken struct {
	ID        string         `json:"id"         yaml:"id"`
	ProjectID string         `json:"project_id" yaml:"project_id"`
	State     map[string]any `json:"state"      yaml:"state"`
	IsOnline  bool           `json:"is_online"  yaml:"is_online"`
}

// Pipe

// RoomCreateRequest is the request body for pipe room creation.
type RoomCreateRequest struct {
	Name              string   `json:"name"               yaml:"name"`
	IngestProtocol    string   `json:"ingest_protocol"    yaml:"ingest_protocol"`
	DeliveryProtocols []string `json:"delivery_protocols" yaml:"delivery_protocols"`
	Ephemeral         bool     `json:"ephemeral"          yaml:"ephemeral"`
}

// Room is a pipe streaming room.
type Room struct {
	ID                string    `json:"id"                 yaml:"id"`
	Name              string    `json:"name"               yaml:"name"`
	IngestProtocol    string    `json:"ingest_protocol"    yaml:"ingest_protocol"`
	DeliveryProtocols []string  `json:"delivery_protocols" yaml:"delivery_protocols"`
	JoinToken         string    `json:"join_token"         yaml:"join_token"`
	State             string    `json:"state"              yaml:"state"`
	CreatedAt         time.Time `json:"created_at"         yaml:"created_at"`
}

// Users

// User is the identity behind a personal access token or bearer token.
type User struct {
	ID        string    `json:"id"         yaml:"id"`
	Name      string    `json:"name"       yaml:"name"`
	Username  string    `json:"username"   yaml:"username"`
	Email     string    `json:"email"      yaml:"email"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Me is the @me response: the user plus the projects they belong to.
type Me struct {
	User     User      `json:"user"     yaml:"user"`
	Projects []Project `json:"projects" yaml:"projects"`
}

// PersonalToken is a personal access token. As with project tokens, the
// full secret is only present in the creation response.
type PersonalToken struct {
	ID        string    `json:"id"         yaml:"id"`
	Token     string    `json:"pat"        yaml:"pat"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
