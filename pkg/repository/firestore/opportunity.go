package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/dealradar/dealradar/pkg/domain/model"
	"github.com/dealradar/dealradar/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// OpportunityCollection is the base collection name for opportunities
const OpportunityCollection = "opportunities"

type opportunityDocument struct {
	ID          string     `firestore:"id"`
	Name        string     `firestore:"name"`
	Amount      float64    `firestore:"amount"`
	Stage       string     `firestore:"stage"`
	UpdatedAt   time.Time  `firestore:"updated_at"`
	CloseDate   *time.Time `firestore:"close_date"`
	Probability *int64     `firestore:"probability"`
}

func toOpportunityDocument(opp *model.Opportunity) *opportunityDocument {
	doc := &opportunityDocument{
		ID:        string(opp.ID),
		Name:      opp.Name,
		Amount:    opp.Amount,
		Stage:     string(opp.Stage),
		UpdatedAt: opp.UpdatedAt.UTC(),
	}
	if opp.CloseDate != nil {
		closeDate := opp.CloseDate.UTC()
		doc.CloseDate = &closeDate
	}
	if opp.Probability != nil {
		probability := int64(*opp.Probability)
		doc.Probability = &probability
	}
	return doc
}

func (d *opportunityDocument) toModel() *model.Opportunity {
	opp := &model.Opportunity{
		ID:        model.OpportunityID(d.ID),
		Name:      d.Name,
		Amount:    d.Amount,
		Stage:     types.OpportunityStage(d.Stage),
		UpdatedAt: d.UpdatedAt,
	}
	if d.CloseDate != nil {
		closeDate := *d.CloseDate
		opp.CloseDate = &closeDate
	}
	if d.Probability != nil {
		probability := int(*d.Probability)
		opp.Probability = &probability
	}
	return opp
}

type opportunityRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newOpportunityRepository(client *firestore.Client) *opportunityRepository {
	return &opportunityRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *opportunityRepository) collection() string {
	return CollectionName(r.collectionPrefix, OpportunityCollection)
}

func (r *opportunityRepository) List(ctx context.Context) ([]*model.Opportunity, error) {
	iter := r.client.Collection(r.collection()).
		OrderBy(firestore.DocumentID, firestore.Asc).
		Documents(ctx)
	return collectOpportunities(iter)
}

// ListByStage retrieves opportunities in a single stage, oldest activity first.
// Backed by the (stage ASC, updated_at ASC) composite index created by `migrate`.
func (r *opportunityRepository) ListByStage(ctx context.Context, stage types.OpportunityStage) ([]*model.Opportunity, error) {
	iter := r.client.Collection(r.collection()).
		Where("stage", "==", string(stage)).
		OrderBy("updated_at", firestore.Asc).
		Documents(ctx)
	return collectOpportunities(iter)
}

func collectOpportunities(iter *firestore.DocumentIterator) ([]*model.Opportunity, error) {
	defer iter.Stop()

	var opps []*model.Opportunity
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate opportunities")
		}

		var oppDoc opportunityDocument
		if err := doc.DataTo(&oppDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal opportunity", goerr.V("doc_id", doc.Ref.ID))
		}
		opps = append(opps, oppDoc.toModel())
	}

	return opps, nil
}

func (r *opportunityRepository) Get(ctx context.Context, id model.OpportunityID) (*model.Opportunity, error) {
	doc, err := r.client.Collection(r.collection()).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "opportunity not found", goerr.V(model.OpportunityIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get opportunity", goerr.V(model.OpportunityIDKey, id))
	}

	var oppDoc opportunityDocument
	if err := doc.DataTo(&oppDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal opportunity", goerr.V(model.OpportunityIDKey, id))
	}

	return oppDoc.toModel(), nil
}

func (r *opportunityRepository) Put(ctx context.Context, opp *model.Opportunity) error {
	if opp == nil {
		return goerr.New("opportunity is nil")
	}
	if opp.ID == "" {
		opp.ID = model.NewOpportunityID()
	}
	if opp.UpdatedAt.IsZero() {
		opp.UpdatedAt = time.Now().UTC()
	}
	if err := opp.Validate(); err != nil {
		return goerr.Wrap(err, "failed to put opportunity")
	}

	docRef := r.client.Collection(r.collection()).Doc(string(opp.ID))
	if _, err := docRef.Set(ctx, toOpportunityDocument(opp)); err != nil {
		return goerr.Wrap(err, "failed to save opportunity", goerr.V(model.OpportunityIDKey, opp.ID))
	}

	return nil
}
