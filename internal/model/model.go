package model

// Field is a single attribute on an entity.
type Field struct {
	Name     string
	Type     string
	Required bool
}

// Entity is a named record exported by the importer. Applications lists the
// base names of the applications that own it; an empty list means the entity
// is generated directly into the working directory.
type Entity struct {
	Name         string
	Applications []string
	Fields       []Field

	// Annotations carries arbitrary domain attributes from the source model,
	// preserved verbatim into the entity's config file.
	Annotations map[string]string
}

// ApplicationConfig is the project-settings record of a single application.
type ApplicationConfig struct {
	BaseName          string
	ApplicationType   string
	DatabaseType      string
	ClientFramework   string
	PackageManager    string
	ServerPort        int
	GeneratorVersion  string
	CreationTimestamp int64

	// Entities lists the names of the entities owned by this application, in
	// model order.
	Entities []string

	// Extra preserves model attributes that have no dedicated field.
	Extra map[string]any
}

// ApplicationWithEntities pairs an application's config with its entity records.
type ApplicationWithEntities struct {
	Config   *ApplicationConfig
	Entities []*Entity
}

// Deployment is a single deployment configuration. DeploymentType selects the
// generator subcommand and names the output subdirectory.
type Deployment struct {
	DeploymentType       string
	AppFolders           []string
	KubernetesNamespace  string
	ServiceDiscoveryType string
	MessageBroker        string
	Monitoring           string
	DockerRepositoryName string
	Extra                map[string]any
}

// ImportState is the complete result of a model import. Ordered slices keep
// source order; ApplicationNames preserves a deterministic iteration order for
// the ApplicationsWithEntities map.
type ImportState struct {
	Entities     []*Entity
	Applications []*ApplicationConfig
	Deployments  []*Deployment

	ApplicationNames         []string
	ApplicationsWithEntities map[string]*ApplicationWithEntities
}

// HasApplications reports whether the import produced at least one application.
func (s *ImportState) HasApplications() bool {
	return len(s.Applications) > 0
}

// HasEntities reports whether the import produced at least one entity.
func (s *ImportState) HasEntities() bool {
	return len(s.Entities) > 0
}

// HasDeployments reports whether the import produced at least one deployment.
func (s *ImportState) HasDeployments() bool {
	return len(s.Deployments) > 0
}
