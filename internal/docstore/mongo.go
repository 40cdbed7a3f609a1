package docstore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo stores each collection as a MongoDB collection. Identifiers are
// real ObjectIDs on disk and hex strings on the way out, so documents
// written by other MongoDB clients stay readable.
type Mongo struct {
	db *mongo.Database
}

var _ Backend = (*Mongo)(nil)

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{db: db}
}

func (m *Mongo) Insert(ctx context.Context, collection string, doc []byte) ([]byte, error) {
	fields, err := toBSON(doc)
	if err != nil {
		return nil, err
	}

	stored := append(bson.D{{Key: IDField, Value: primitive.NewObjectID()}}, withoutID(fields)...)
	if _, err := m.db.Collection(collection).InsertOne(ctx, stored); err != nil {
		return nil, err
	}

	return fromBSON(stored)
}

func (m *Mongo) Find(ctx context.Context, collection string) ([][]byte, error) {
	opts := options.Find().SetSort(bson.D{{Key: IDField, Value: 1}})

	cursor, err := m.db.Collection(collection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}

	var results []bson.D
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	docs := make([][]byte, 0, len(results))
	for _, result := range results {
		raw, err := fromBSON(result)
		if err != nil {
			return nil, err
		}
		docs = append(docs, raw)
	}
	return docs, nil
}

func (m *Mongo) FindOne(ctx context.Context, collection string, filter Filter) ([]byte, error) {
	query, err := toQuery(filter)
	if err != nil {
		return nil, err
	}

	opts := options.FindOne().SetSort(bson.D{{Key: IDField, Value: 1}})

	var result bson.D
	if err := m.db.Collection(collection).FindOne(ctx, query, opts).Decode(&result); err != nil {
		return nil, notFound(err)
	}
	return fromBSON(result)
}

func (m *Mongo) Replace(ctx context.Context, collection, id string, doc []byte) ([]byte, error) {
	query, err := toQuery(ByID(id))
	if err != nil {
		return nil, err
	}

	fields, err := toBSON(doc)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndReplace().SetReturnDocument(options.After)

	var result bson.D
	if err := m.db.Collection(collection).FindOneAndReplace(ctx, query, withoutID(fields), opts).Decode(&result); err != nil {
		return nil, notFound(err)
	}
	return fromBSON(result)
}

func (m *Mongo) Delete(ctx context.Context, collection, id string) ([]byte, error) {
	query, err := toQuery(ByID(id))
	if err != nil {
		return nil, err
	}

	var result bson.D
	if err := m.db.Collection(collection).FindOneAndDelete(ctx, query).Decode(&result); err != nil {
		return nil, notFound(err)
	}
	return fromBSON(result)
}

func (m *Mongo) Push(ctx context.Context, collection string, filter Filter, field string, item []byte) ([]byte, error) {
	query, err := toQuery(filter)
	if err != nil {
		return nil, err
	}

	value, err := toBSON(item)
	if err != nil {
		return nil, err
	}

	update := bson.D{{Key: "$push", Value: bson.D{{Key: field, Value: value}}}}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetSort(bson.D{{Key: IDField, Value: 1}})

	var result bson.D
	if err := m.db.Collection(collection).FindOneAndUpdate(ctx, query, update, opts).Decode(&result); err != nil {
		return nil, notFound(err)
	}
	return fromBSON(result)
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.db.Client().Ping(ctx, nil)
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.db.Client().Disconnect(ctx)
}

func toQuery(filter Filter) (bson.D, error) {
	if filter.Field != IDField {
		return bson.D{{Key: filter.Field, Value: filter.Value}}, nil
	}

	oid, err := primitive.ObjectIDFromHex(filter.Value)
	if err != nil {
		return nil, fmt.Errorf("%w for value %q at path %q", ErrInvalidID, filter.Value, IDField)
	}
	return bson.D{{Key: IDField, Value: oid}}, nil
}

func toBSON(doc []byte) (bson.D, error) {
	var fields bson.D
	if err := bson.UnmarshalExtJSON(doc, false, &fields); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return fields, nil
}

// fromBSON renders a stored document as relaxed JSON with a hex _id.
func fromBSON(doc bson.D) ([]byte, error) {
	out := make(bson.D, 0, len(doc))
	for _, elem := range doc {
		if elem.Key == IDField {
			if oid, ok := elem.Value.(primitive.ObjectID); ok {
				elem.Value = oid.Hex()
			}
		}
		out = append(out, elem)
	}
	return bson.MarshalExtJSON(out, false, false)
}

func withoutID(doc bson.D) bson.D {
	out := make(bson.D, 0, len(doc))
	for _, elem := range doc {
		if elem.Key != IDField {
			out = append(out, elem)
		}
	}
	return out
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
