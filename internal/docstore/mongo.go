package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore adapts a MongoDB database to the Store contract. The adapter
// never builds $or filters: the interface only accepts flat predicate
// lists, so the no-disjunction constraint holds by construction.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (s *MongoStore) Insert(ctx context.Context, collection string, doc Document) (string, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, bson.M(doc))
	if err != nil {
		return "", err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprintf("%v", res.InsertedID), nil
}

func (s *MongoStore) Set(ctx context.Context, collection, id string, doc Document) error {
	data := bson.M(doc)
	data["_id"] = rawID(id)
	opts := options.Replace().SetUpsert(true)
	_, err := s.db.Collection(collection).ReplaceOne(ctx, bson.M{"_id": rawID(id)}, data, opts)
	return err
}

func (s *MongoStore) Get(ctx context.Context, collection, id string) (Document, error) {
	var raw bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": rawID(id)}).Decode(&raw)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	delete(raw, "_id")
	return normalizeDocument(raw), nil
}

func (s *MongoStore) Update(ctx context.Context, collection, id string, partial Document) error {
	res, err := s.db.Collection(collection).UpdateOne(ctx,
		bson.M{"_id": rawID(id)}, bson.M{"$set": bson.M(partial)})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, collection, id string) error {
	res, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": rawID(id)})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Query(ctx context.Context, collection string, predicates []Predicate, orderBy []Order) ([]Entry, error) {
	filter := bson.M{}
	for _, p := range predicates {
		field := p.Field
		if field == FieldID {
			field = "_id"
		}
		op, err := mongoOperator(p.Op)
		if err != nil {
			return nil, err
		}
		if existing, ok := filter[field].(bson.M); ok {
			existing[op] = p.Value
		} else {
			filter[field] = bson.M{op: p.Value}
		}
	}

	sortDoc := bson.D{}
	for _, o := range orderBy {
		field := o.Field
		if field == FieldID {
			field = "_id"
		}
		dir := 1
		if o.Dir == Descending {
			dir = -1
		}
		sortDoc = append(sortDoc, bson.E{Key: field, Value: dir})
	}

	cursor, err := s.db.Collection(collection).Find(ctx, filter, options.Find().SetSort(sortDoc))
	if err != nil {
		return nil, translateQueryError(err)
	}
	defer cursor.Close(ctx)

	var entries []Entry
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, err
		}
		id := idToString(raw["_id"])
		delete(raw, "_id")
		entries = append(entries, Entry{ID: id, Data: normalizeDocument(raw)})
	}
	if err := cursor.Err(); err != nil {
		return nil, translateQueryError(err)
	}
	return entries, nil
}

func mongoOperator(op Operator) (string, error) {
	switch op {
	case OpEqual:
		return "$eq", nil
	case OpNotEqual:
		return "$ne", nil
	case OpLess:
		return "$lt", nil
	case OpLessOrEqual:
		return "$lte", nil
	case OpGreater:
		return "$gt", nil
	case OpGreaterOrEqual:
		return "$gte", nil
	}
	return "", fmt.Errorf("unsupported operator %q", op)
}

// translateQueryError maps the server's in-memory sort overflow onto
// ErrIndexRequired: the remediation is provisioning an index on the sort
// fields, not retrying.
func translateQueryError(err error) error {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		if cmdErr.Code == 292 || strings.Contains(cmdErr.Message, "Sort exceeded memory limit") {
			return fmt.Errorf("%s: %w", cmdErr.Message, ErrIndexRequired)
		}
	}
	return err
}

// rawID accepts both generated ObjectIDs and reserved literal IDs such as
// the collection placeholder sentinel.
func rawID(id string) interface{} {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return oid
	}
	return id
}

func idToString(id interface{}) string {
	switch v := id.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// normalizeDocument converts BSON decode artifacts back to the value types
// the Store contract traffics in.
func normalizeDocument(raw bson.M) Document {
	out := make(Document, len(raw))
	for k, v := range raw {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case primitive.DateTime:
		return val.Time().UTC()
	case primitive.ObjectID:
		return val.Hex()
	case primitive.A:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = normalizeValue(item)
		}
		return out
	case bson.M:
		return map[string]interface{}(normalizeDocument(val))
	case map[string]interface{}:
		return map[string]interface{}(normalizeDocument(val))
	case time.Time:
		return val.UTC()
	case int32:
		return int(val)
	default:
		return v
	}
}
