package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"github.com/constructsafe/constructsafe/pkg/domain/model"
	"github.com/constructsafe/constructsafe/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type projectDocument struct {
	ID          int64     `firestore:"id"`
	Name        string    `firestore:"name"`
	Description string    `firestore:"description"`
	Status      string    `firestore:"status"`
	CreatedAt   time.Time `firestore:"created_at"`
	UpdatedAt   time.Time `firestore:"updated_at"`
}

func (d *projectDocument) toModel() *model.Project {
	return &model.Project{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Status:      types.ProjectStatus(d.Status).Normalize(),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type projectRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newProjectRepository(client *firestore.Client) *projectRepository {
	return &projectRepository{client: client}
}

func (r *projectRepository) projectsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_projects"
	}
	return "projects"
}

func (r *projectRepository) countersCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *projectRepository) getNextID(ctx context.Context) (int64, error) {
	counterRef := r.client.Collection(r.countersCollection()).Doc("project_counter")

	var nextID int64
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(counterRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				nextID = 1
				return tx.Set(counterRef, map[string]interface{}{
					"value": nextID,
				})
			}
			return goerr.Wrap(err, "failed to get counter")
		}

		currentValue, err := doc.DataAt("value")
		if err != nil {
			return goerr.Wrap(err, "failed to get counter value")
		}

		nextID = currentValue.(int64) + 1
		return tx.Update(counterRef, []firestore.Update{
			{Path: "value", Value: nextID},
		})
	})

	if err != nil {
		return 0, goerr.Wrap(err, "failed to get next project ID")
	}

	return nextID, nil
}

func (r *projectRepository) Create(ctx context.Context, p *model.Project) (*model.Project, error) {
	id, err := r.getNextID(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := &projectDocument{
		ID:          id,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status.Normalize().String(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	docRef := r.client.Collection(r.projectsCollection()).Doc(fmt.Sprintf("%d", id))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create project")
	}

	return doc.toModel(), nil
}

func (r *projectRepository) Get(ctx context.Context, id int64) (*model.Project, error) {
	docRef := r.client.Collection(r.projectsCollection()).Doc(fmt.Sprintf("%d", id))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrProjectNotFound, "project not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get project", goerr.V("id", id))
	}

	var projectDoc projectDocument
	if err := doc.DataTo(&projectDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal project", goerr.V("id", id))
	}

	return projectDoc.toModel(), nil
}

func (r *projectRepository) List(ctx context.Context) ([]*model.Project, error) {
	iter := r.client.Collection(r.projectsCollection()).OrderBy("id", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var projects []*model.Project
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate projects")
		}

		var projectDoc projectDocument
		if err := doc.DataTo(&projectDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal project")
		}

		projects = append(projects, projectDoc.toModel())
	}

	return projects, nil
}

func (r *projectRepository) Update(ctx context.Context, p *model.Project) (*model.Project, error) {
	docRef := r.client.Collection(r.projectsCollection()).Doc(fmt.Sprintf("%d", p.ID))

	var updated *model.Project
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(model.ErrProjectNotFound, "project not found", goerr.V("id", p.ID))
			}
			return goerr.Wrap(err, "failed to get project", goerr.V("id", p.ID))
		}

		var existing projectDocument
		if err := doc.DataTo(&existing); err != nil {
			return goerr.Wrap(err, "failed to unmarshal project", goerr.V("id", p.ID))
		}

		next := projectDocument{
			ID:          existing.ID,
			Name:        p.Name,
			Description: p.Description,
			Status:      p.Status.Normalize().String(),
			CreatedAt:   existing.CreatedAt,
			UpdatedAt:   time.Now().UTC(),
		}
		updated = next.toModel()
		return tx.Set(docRef, &next)
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *projectRepository) Count(ctx context.Context) (int64, error) {
	return countCollection(ctx, r.client.Collection(r.projectsCollection()).Query)
}

// countCollection runs a server-side count aggregation over the query
func countCollection(ctx context.Context, q firestore.Query) (int64, error) {
	results, err := q.NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to run count aggregation")
	}

	countValue, ok := results["all"]
	if !ok {
		return 0, goerr.New("count aggregation result missing")
	}

	count, ok := countValue.(*firestorepb.Value)
	if !ok {
		return 0, goerr.New("unexpected count aggregation result type")
	}

	return count.GetIntegerValue(), nil
}
