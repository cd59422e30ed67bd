package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/medrec/records-api/internal/model"
	"github.com/medrec/records-api/internal/repository"
	apperrors "github.com/medrec/records-api/pkg/errors"
	"github.com/medrec/records-api/pkg/metrics"
)

const usersCollection = "users"

type userRepository struct {
	coll    *mongo.Collection
	metrics *metrics.Metrics
}

func NewUserRepository(db *mongo.Database, m *metrics.Metrics) repository.UserRepository {
	return &userRepository{coll: db.Collection(usersCollection), metrics: m}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	start := time.Now()
	_, err := r.coll.InsertOne(ctx, user)
	r.metrics.ObserveStore("users.insert", start, err)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.DuplicateKey("uid", err)
		}
		return apperrors.Persistence(err)
	}
	return nil
}

func (r *userRepository) GetByUID(ctx context.Context, uid string) (*model.User, error) {
	start := time.Now()
	var user model.User
	err := r.coll.FindOne(ctx, bson.M{"uid": uid}).Decode(&user)
	observeRead(r.metrics, "users.find_one", start, err)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("user", err)
		}
		return nil, apperrors.Persistence(err)
	}
	return &user, nil
}
