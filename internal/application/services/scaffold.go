// Package services contains application use cases.
package services

import (
	"log/slog"
	"time"

	apperrors "github.com/stackforge-dev/stackforge/internal/application/errors"
	"github.com/stackforge-dev/stackforge/internal/commit"
	"github.com/stackforge-dev/stackforge/internal/config"
	"github.com/stackforge-dev/stackforge/internal/domain/entities"
	"github.com/stackforge-dev/stackforge/internal/domain/services"
	"github.com/stackforge-dev/stackforge/internal/generate"
	"github.com/stackforge-dev/stackforge/internal/registry"
)

// ScaffoldUseCase orchestrates the complete scaffold workflow: resolve the
// selection against the catalog, merge dependency manifests, stage the
// project tree, commit it, and persist the project state.
type ScaffoldUseCase struct {
	registry  *registry.Registry
	global    *config.Global
	resolver  *services.SpecResolver
	merger    *services.DependencyMerger
	trees     *generate.TreeGenerator
	committer *commit.Controller
	logger    *slog.Logger
}

// NewScaffoldUseCase wires the scaffold workflow over a loaded catalog and
// the user's global configuration.
func NewScaffoldUseCase(reg *registry.Registry, global *config.Global, logger *slog.Logger) *ScaffoldUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	if global == nil {
		global = &config.Global{}
	}

	versions := services.NewVersionResolver(reg.BuiltinVersions())
	return &ScaffoldUseCase{
		registry:  reg,
		global:    global,
		resolver:  services.NewSpecResolver(reg, versions),
		merger:    services.NewDependencyMerger(reg),
		trees:     generate.NewTreeGenerator(reg),
		committer: commit.NewController(logger),
		logger:    logger,
	}
}

// Result is the outcome of a scaffold run.
type Result struct {
	Spec   *entities.ResolvedSpec
	Commit *commit.Result
	Ports  map[string]int
}

// Execute runs the scaffold workflow for a selection. In add mode the
// project's persisted components join the selection so prior choices
// participate in implication and conflict checking, and persisted versions
// and ports stay stable.
func (uc *ScaffoldUseCase) Execute(sel entities.Selection) (*Result, error) {
	start := time.Now()

	if len(sel.Flags) == 0 {
		sel.Flags = uc.global.DefaultFlags
	}

	state := &config.ProjectState{}
	if sel.Mode.IsAdd() {
		loaded, err := config.LoadProjectState(sel.TargetDir)
		if err != nil {
			return nil, apperrors.NewConfigurationError(config.ProjectStateFile, err)
		}
		state = loaded
		sel.Components = append(append([]string{}, state.Components...), sel.Components...)
	}

	spec, err := uc.resolver.Resolve(sel, services.VersionInputs{
		CLIOverrides:    sel.VersionOverrides,
		ProjectVersions: state.Versions,
		GlobalVersions:  uc.global.Versions,
	})
	if err != nil {
		return nil, err
	}
	uc.logger.Info("selection resolved",
		"components", spec.Components, "profile", spec.Profile, "mode", spec.Mode.String())

	deps, err := uc.merger.Merge(spec)
	if err != nil {
		return nil, err
	}

	tree, ports, err := uc.trees.Generate(spec, deps, state.Ports)
	if err != nil {
		return nil, err
	}

	if spec.Mode.IsCreate() {
		// The state file rides along in the atomic rename.
		if err := uc.stageProjectState(tree, spec, ports); err != nil {
			return nil, err
		}
	}

	committed, err := uc.committer.Commit(tree, spec)
	if err != nil {
		return nil, err
	}

	if spec.Mode.IsAdd() {
		if err := config.SaveProjectState(spec.TargetDir, projectState(spec, ports)); err != nil {
			return nil, apperrors.NewConfigurationError(config.ProjectStateFile, err)
		}
	}

	uc.logger.Info("scaffold complete", "target", spec.TargetDir, "duration", time.Since(start))
	return &Result{Spec: spec, Commit: committed, Ports: ports}, nil
}

func (uc *ScaffoldUseCase) stageProjectState(tree *entities.StagedTree, spec *entities.ResolvedSpec, ports map[string]int) error {
	content, err := config.EncodeProjectState(projectState(spec, ports))
	if err != nil {
		return apperrors.NewConfigurationError(config.ProjectStateFile, err)
	}
	return tree.Add(entities.StagedFile{
		Path:    config.ProjectStateFile,
		Content: content,
		Owner:   "project",
	})
}

func projectState(spec *entities.ResolvedSpec, ports map[string]int) *config.ProjectState {
	return &config.ProjectState{
		Components: spec.Components,
		Versions:   spec.Versions,
		Ports:      ports,
	}
}
