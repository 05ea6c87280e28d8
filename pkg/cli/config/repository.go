package config

import (
	"context"
	"log/slog"

	"github.com/dealradar/dealradar/pkg/domain/interfaces"
	"github.com/dealradar/dealradar/pkg/repository/firestore"
	"github.com/dealradar/dealradar/pkg/repository/memory"
	"github.com/dealradar/dealradar/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const (
	BackendMemory    = "memory"
	BackendFirestore = "firestore"
)

// Repository holds CLI flags for the opportunity snapshot provider
type Repository struct {
	backend          string
	projectID        string
	databaseID       string
	collectionPrefix string
	seedFile         string
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Repository backend type (memory or firestore)",
			Category:    "Repository",
			Value:       BackendMemory,
			Sources:     cli.EnvVars("DEALRADAR_REPOSITORY_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore Project ID (required when using firestore backend)",
			Category:    "Repository",
			Sources:     cli.EnvVars("DEALRADAR_FIRESTORE_PROJECT_ID"),
			Destination: &r.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore Database ID",
			Category:    "Repository",
			Sources:     cli.EnvVars("DEALRADAR_FIRESTORE_DATABASE_ID"),
			Destination: &r.databaseID,
		},
		&cli.StringFlag{
			Name:        "firestore-collection-prefix",
			Usage:       "Prefix prepended to Firestore collection names",
			Category:    "Repository",
			Sources:     cli.EnvVars("DEALRADAR_FIRESTORE_COLLECTION_PREFIX"),
			Destination: &r.collectionPrefix,
		},
		&cli.StringFlag{
			Name:        "opportunities-file",
			Usage:       "JSON file of opportunities loaded into the memory backend at startup",
			Category:    "Repository",
			Sources:     cli.EnvVars("DEALRADAR_OPPORTUNITIES_FILE"),
			Destination: &r.seedFile,
		},
	}
}

func (r Repository) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", r.backend),
		slog.String("project_id", r.projectID),
		slog.String("database_id", r.databaseID),
		slog.String("collection_prefix", r.collectionPrefix),
		slog.String("opportunities_file", r.seedFile),
	)
}

// Backend returns the configured backend type
func (r *Repository) Backend() string {
	return r.backend
}

// ProjectID returns the Firestore project ID
func (r *Repository) ProjectID() string {
	return r.projectID
}

// DatabaseID returns the Firestore database ID
func (r *Repository) DatabaseID() string {
	return r.databaseID
}

// CollectionPrefix returns the Firestore collection prefix
func (r *Repository) CollectionPrefix() string {
	return r.collectionPrefix
}

// SeedFile returns the opportunity seed file path
func (r *Repository) SeedFile() string {
	return r.seedFile
}

// Configure initializes and returns a repository based on the configured backend.
// The caller is responsible for calling Close() on the returned repository.
func (r *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	switch r.backend {
	case BackendFirestore:
		if r.projectID == "" {
			return nil, goerr.Wrap(ErrMissingDependency, "firestore-project-id is required when using firestore backend",
				goerr.V(FlagKey, "firestore-project-id"))
		}
		if r.seedFile != "" {
			return nil, goerr.Wrap(ErrConflictingOptions, "opportunities-file is only supported by the memory backend",
				goerr.V(BackendKey, r.backend))
		}

		var opts []firestore.Option
		if r.collectionPrefix != "" {
			opts = append(opts, firestore.WithCollectionPrefix(r.collectionPrefix))
		}
		repo, err := firestore.New(ctx, r.projectID, r.databaseID, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize firestore repository")
		}
		logging.Default().Info("Using Firestore repository",
			"project_id", r.projectID,
			"database_id", r.databaseID,
			"collection_prefix", r.collectionPrefix,
		)
		return repo, nil

	case BackendMemory:
		repo := memory.New()
		if r.seedFile != "" {
			opps, err := memory.LoadOpportunities(r.seedFile)
			if err != nil {
				return nil, err
			}
			if err := repo.Seed(ctx, opps); err != nil {
				return nil, goerr.Wrap(err, "failed to seed memory repository")
			}
			logging.Default().Info("Using in-memory repository", "seeded", len(opps), "file", r.seedFile)
		} else {
			logging.Default().Info("Using in-memory repository (empty)")
		}
		return repo, nil

	default:
		return nil, goerr.Wrap(ErrInvalidBackend, "unknown repository backend", goerr.V(BackendKey, r.backend))
	}
}
