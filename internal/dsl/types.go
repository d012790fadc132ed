package dsl

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Applications []*applicationBlock `hcl:"application,block"`
	Entities     []*entityBlock      `hcl:"entity,block"`
	Deployments  []*deploymentBlock  `hcl:"deployment,block"`
	Remain       hcl.Body            `hcl:",remain"`
}

// applicationBlock is the raw HCL form of an `application "<baseName>"` block.
type applicationBlock struct {
	BaseName        string   `hcl:"base_name,label"`
	ApplicationType string   `hcl:"application_type,optional"`
	DatabaseType    string   `hcl:"database_type,optional"`
	ClientFramework string   `hcl:"client_framework,optional"`
	PackageManager  string   `hcl:"package_manager,optional"`
	ServerPort      int      `hcl:"server_port,optional"`
	Entities        []string `hcl:"entities,optional"`
	Remain          hcl.Body `hcl:",remain"`
}

// entityBlock is the raw HCL form of an `entity "<Name>"` block.
type entityBlock struct {
	Name         string        `hcl:"name,label"`
	Applications []string      `hcl:"applications,optional"`
	Fields       []*fieldBlock `hcl:"field,block"`
	Remain       hcl.Body      `hcl:",remain"`
}

// fieldBlock is the raw HCL form of a `field "<name>"` block inside an entity.
type fieldBlock struct {
	Name     string `hcl:"name,label"`
	Type     string `hcl:"type"`
	Required bool   `hcl:"required,optional"`
}

// deploymentBlock is the raw HCL form of a `deployment` block.
type deploymentBlock struct {
	DeploymentType       string   `hcl:"deployment_type"`
	AppFolders           []string `hcl:"app_folders,optional"`
	KubernetesNamespace  string   `hcl:"kubernetes_namespace,optional"`
	ServiceDiscoveryType string   `hcl:"service_discovery_type,optional"`
	MessageBroker        string   `hcl:"message_broker,optional"`
	Monitoring           string   `hcl:"monitoring,optional"`
	DockerRepositoryName string   `hcl:"docker_repository_name,optional"`
	Remain               hcl.Body `hcl:",remain"`
}
