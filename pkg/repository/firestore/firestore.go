// Package firestore provides the durable repository backend on Google
// Cloud Firestore.
package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/constructsafe/constructsafe/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

type Firestore struct {
	client  *firestore.Client
	project *projectRepository
	risk    *riskRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces all collections, used to isolate test
// runs against a shared Firestore project.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.project.collectionPrefix = prefix
		f.risk.collectionPrefix = prefix
	}
}

func New(ctx context.Context, gcpProjectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, gcpProjectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, gcpProjectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("gcpProjectID", gcpProjectID))
	}

	projectRepo := newProjectRepository(client)
	riskRepo := newRiskRepository(client, projectRepo)

	f := &Firestore{
		client:  client,
		project: projectRepo,
		risk:    riskRepo,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Project() interfaces.ProjectRepository {
	return f.project
}

func (f *Firestore) Risk() interfaces.RiskRepository {
	return f.risk
}

func (f *Firestore) Close() error {
	return f.client.Close()
}
