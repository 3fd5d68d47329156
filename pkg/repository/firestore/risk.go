package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/constructsafe/constructsafe/pkg/domain/interfaces"
	"github.com/constructsafe/constructsafe/pkg/domain/model"
	"github.com/constructsafe/constructsafe/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type riskDocument struct {
	ID             int64     `firestore:"id"`
	ProjectID      int64     `firestore:"project_id"`
	Category       string    `firestore:"category"`
	Title          string    `firestore:"title"`
	Description    string    `firestore:"description"`
	Probability    float64   `firestore:"probability"`
	Impact         float64   `firestore:"impact"`
	RiskScore      float64   `firestore:"risk_score"`
	Priority       string    `firestore:"priority"`
	MitigationPlan string    `firestore:"mitigation_plan"`
	Status         string    `firestore:"status"`
	SourceText     string    `firestore:"source_text"`
	CreatedAt      time.Time `firestore:"created_at"`
}

func (d *riskDocument) toModel() *model.Risk {
	return &model.Risk{
		ID:             d.ID,
		ProjectID:      d.ProjectID,
		Category:       d.Category,
		Title:          d.Title,
		Description:    d.Description,
		Probability:    d.Probability,
		Impact:         d.Impact,
		RiskScore:      d.RiskScore,
		Priority:       types.Priority(d.Priority),
		MitigationPlan: d.MitigationPlan,
		Status:         types.RiskStatus(d.Status).Normalize(),
		SourceText:     d.SourceText,
		CreatedAt:      d.CreatedAt,
	}
}

func toRiskDocument(risk *model.Risk) *riskDocument {
	return &riskDocument{
		ID:             risk.ID,
		ProjectID:      risk.ProjectID,
		Category:       risk.Category,
		Title:          risk.Title,
		Description:    risk.Description,
		Probability:    risk.Probability,
		Impact:         risk.Impact,
		RiskScore:      risk.RiskScore,
		Priority:       risk.Priority.String(),
		MitigationPlan: risk.MitigationPlan,
		Status:         risk.Status.Normalize().String(),
		SourceText:     risk.SourceText,
		CreatedAt:      risk.CreatedAt,
	}
}

type riskRepository struct {
	client           *firestore.Client
	collectionPrefix string
	projects         *projectRepository
}

func newRiskRepository(client *firestore.Client, projects *projectRepository) *riskRepository {
	return &riskRepository{client: client, projects: projects}
}

func (r *riskRepository) risksCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_risks"
	}
	return "risks"
}

func (r *riskRepository) countersCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

// BatchCreate writes all records inside one transaction: the project
// existence check, ID allocation and every risk write commit together or
// not at all. Firestore requires all reads before the first write, which
// the read-project/read-counter/write ordering below respects.
func (r *riskRepository) BatchCreate(ctx context.Context, projectID int64, risks []*model.Risk) ([]*model.Risk, error) {
	projectRef := r.client.Collection(r.projects.projectsCollection()).Doc(fmt.Sprintf("%d", projectID))
	counterRef := r.client.Collection(r.countersCollection()).Doc("risk_counter")

	var created []*model.Risk
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		created = created[:0]

		if _, err := tx.Get(projectRef); err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(model.ErrProjectNotFound, "cannot save risks for missing project", goerr.V("projectID", projectID))
			}
			return goerr.Wrap(err, "failed to get project", goerr.V("projectID", projectID))
		}

		var current int64
		counterExists := true
		doc, err := tx.Get(counterRef)
		if err != nil {
			if status.Code(err) != codes.NotFound {
				return goerr.Wrap(err, "failed to get risk counter")
			}
			counterExists = false
		} else {
			value, err := doc.DataAt("value")
			if err != nil {
				return goerr.Wrap(err, "failed to get risk counter value")
			}
			current = value.(int64)
		}

		now := time.Now().UTC()
		for _, risk := range risks {
			current++
			rec := toRiskDocument(risk)
			rec.ID = current
			rec.ProjectID = projectID
			rec.CreatedAt = now

			docRef := r.client.Collection(r.risksCollection()).Doc(fmt.Sprintf("%d", rec.ID))
			if err := tx.Set(docRef, rec); err != nil {
				return goerr.Wrap(err, "failed to create risk", goerr.V("id", rec.ID))
			}
			created = append(created, rec.toModel())
		}

		if counterExists {
			return tx.Update(counterRef, []firestore.Update{
				{Path: "value", Value: current},
			})
		}
		return tx.Set(counterRef, map[string]interface{}{
			"value": current,
		})
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (r *riskRepository) Get(ctx context.Context, id int64) (*model.Risk, error) {
	docRef := r.client.Collection(r.risksCollection()).Doc(fmt.Sprintf("%d", id))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrRiskNotFound, "risk not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get risk", goerr.V("id", id))
	}

	var riskDoc riskDocument
	if err := doc.DataTo(&riskDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal risk", goerr.V("id", id))
	}

	return riskDoc.toModel(), nil
}

func (r *riskRepository) List(ctx context.Context, opts ...interfaces.ListRiskOption) ([]*model.Risk, error) {
	cfg := interfaces.BuildListRiskConfig(opts...)

	query := r.client.Collection(r.risksCollection()).Query
	if cfg.ProjectID() != nil {
		query = query.Where("project_id", "==", *cfg.ProjectID())
	}
	// Secondary order on id makes equal scores come back in insertion
	// order; document IDs are zero-unpadded numeric strings, so the
	// default __name__ tie-break would sort "10" before "2".
	query = query.OrderBy("risk_score", firestore.Desc).OrderBy("id", firestore.Asc)

	iter := query.Documents(ctx)
	defer iter.Stop()

	var risks []*model.Risk
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate risks")
		}

		var riskDoc riskDocument
		if err := doc.DataTo(&riskDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal risk")
		}

		risks = append(risks, riskDoc.toModel())
	}

	return risks, nil
}

func (r *riskRepository) UpdateStatus(ctx context.Context, id int64, riskStatus types.RiskStatus) (*model.Risk, error) {
	docRef := r.client.Collection(r.risksCollection()).Doc(fmt.Sprintf("%d", id))

	var updated *model.Risk
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(model.ErrRiskNotFound, "risk not found", goerr.V("id", id))
			}
			return goerr.Wrap(err, "failed to get risk", goerr.V("id", id))
		}

		var riskDoc riskDocument
		if err := doc.DataTo(&riskDoc); err != nil {
			return goerr.Wrap(err, "failed to unmarshal risk", goerr.V("id", id))
		}

		riskDoc.Status = riskStatus.String()
		updated = riskDoc.toModel()

		return tx.Update(docRef, []firestore.Update{
			{Path: "status", Value: riskStatus.String()},
		})
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *riskRepository) Count(ctx context.Context) (int64, error) {
	return countCollection(ctx, r.client.Collection(r.risksCollection()).Query)
}
