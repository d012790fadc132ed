// Package orchestrator coordinates an import run: load the existing project
// configuration, import the model, then generate applications, entities, and
// deployments under the run's scheduling policy. The pipeline is linear and
// fail-fast; each stage returns the state the next stage consumes.
package orchestrator
