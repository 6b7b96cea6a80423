package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"civictrack-be/models"
)

// MongoDepartmentStore backs DepartmentStore with a MongoDB collection.
type MongoDepartmentStore struct {
	coll *mongo.Collection
}

func NewMongoDepartmentStore(db *mongo.Database) *MongoDepartmentStore {
	return &MongoDepartmentStore{coll: db.Collection("departments")}
}

// EnsureDepartmentIndex creates the unique index on department name.
func EnsureDepartmentIndex(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	_, err := db.Collection("departments").Indexes().CreateOne(ctx, indexModel)
	return err
}

func (s *MongoDepartmentStore) Insert(ctx context.Context, dept *models.Department) error {
	if dept.ID.IsZero() {
		dept.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, dept)
	return err
}

func (s *MongoDepartmentStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Department, error) {
	var dept models.Department
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&dept)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (s *MongoDepartmentStore) FindByName(ctx context.Context, name string) (*models.Department, error) {
	var dept models.Department
	err := s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&dept)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (s *MongoDepartmentStore) List(ctx context.Context) ([]models.Department, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	depts := []models.Department{}
	if err := cursor.All(ctx, &depts); err != nil {
		return nil, err
	}
	return depts, nil
}
