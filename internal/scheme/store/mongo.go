package store

import (
	"context"
	"errors"
	"time"

	"github.com/gogotex/schemes/internal/scheme"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps the list as one document per key, replaced on every save.
type MongoStore struct {
	col *mongo.Collection
	key string
}

type mongoDoc struct {
	Key       string          `bson:"_id"`
	Schemes   []scheme.Scheme `bson:"schemes"`
	UpdatedAt time.Time       `bson:"updatedAt"`
}

func NewMongoStore(col *mongo.Collection, key string) *MongoStore {
	return &MongoStore{col: col, key: keyOrDefault(key)}
}

func (m *MongoStore) Driver() string { return "mongo" }

func (m *MongoStore) Load(ctx context.Context) ([]scheme.Scheme, bool, error) {
	var d mongoDoc
	if err := m.col.FindOne(ctx, bson.M{"_id": m.key}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if d.Schemes == nil {
		d.Schemes = []scheme.Scheme{}
	}
	for i := range d.Schemes {
		d.Schemes[i].CreatedAt = d.Schemes[i].CreatedAt.UTC()
	}
	return d.Schemes, true, nil
}

func (m *MongoStore) Save(ctx context.Context, list []scheme.Scheme) error {
	if list == nil {
		list = []scheme.Scheme{}
	}
	d := mongoDoc{Key: m.key, Schemes: list, UpdatedAt: time.Now().UTC()}
	_, err := m.col.ReplaceOne(ctx, bson.M{"_id": m.key}, d, options.Replace().SetUpsert(true))
	return err
}
