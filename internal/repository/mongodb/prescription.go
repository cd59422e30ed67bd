package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medrec/records-api/internal/model"
	"github.com/medrec/records-api/internal/repository"
	apperrors "github.com/medrec/records-api/pkg/errors"
	"github.com/medrec/records-api/pkg/metrics"
)

const prescriptionsCollection = "prescriptions"

type prescriptionRepository struct {
	coll    *mongo.Collection
	metrics *metrics.Metrics
}

func NewPrescriptionRepository(db *mongo.Database, m *metrics.Metrics) repository.PrescriptionRepository {
	return &prescriptionRepository{coll: db.Collection(prescriptionsCollection), metrics: m}
}

func (r *prescriptionRepository) Create(ctx context.Context, prescription *model.Prescription) error {
	start := time.Now()
	res, err := r.coll.InsertOne(ctx, prescription)
	r.metrics.ObserveStore("prescriptions.insert", start, err)
	if err != nil {
		return apperrors.Persistence(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		prescription.ID = oid
	}
	return nil
}

// List returns prescriptions matching the filter in creation order:
// ascending date with ascending _id as tiebreak.
func (r *prescriptionRepository) List(ctx context.Context, filter model.PrescriptionFilter) ([]*model.Prescription, error) {
	query := bson.M{}
	if filter.UID != "" {
		query["uid"] = filter.UID
	}
	if filter.Doctor != "" {
		query["doctor"] = filter.Doctor
	}

	start := time.Now()
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	r.metrics.ObserveStore("prescriptions.find", start, err)
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	defer cursor.Close(ctx)

	prescriptions := []*model.Prescription{}
	if err := cursor.All(ctx, &prescriptions); err != nil {
		return nil, apperrors.Persistence(err)
	}
	return prescriptions, nil
}

// MarkFulfilled sets fulfilled=true unconditionally and returns the updated
// record. Marking an already-fulfilled prescription is a no-op success.
func (r *prescriptionRepository) MarkFulfilled(ctx context.Context, id string) (*model.Prescription, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("prescription", err)
	}

	start := time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var prescription model.Prescription
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"fulfilled": true}},
		opts,
	).Decode(&prescription)
	observeRead(r.metrics, "prescriptions.find_one_and_update", start, err)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("prescription", err)
		}
		return nil, apperrors.Persistence(err)
	}
	return &prescription, nil
}
