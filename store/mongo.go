package store

import (
	"context"
	"time"

	"main/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoGateway implements Gateway on top of MongoDB. Each collection kind
// maps to a mongo collection; per-user sub-collections are flattened into a
// single collection scoped by a user_id field.
type MongoGateway struct {
	db          *mongo.Database
	collections map[string]string
}

func NewMongoGateway(db *mongo.Database, users, notes, credentials string) *MongoGateway {
	return &MongoGateway{
		db: db,
		collections: map[string]string{
			KindUsers:       users,
			KindNotes:       notes,
			KindCredentials: credentials,
		},
	}
}

func (g *MongoGateway) collection(path Path) *mongo.Collection {
	return g.db.Collection(g.collections[path.Kind])
}

// scope returns the base filter for a path, restricting per-user
// collections to their owner.
func (g *MongoGateway) scope(path Path) bson.M {
	filter := bson.M{}
	if path.Owner != "" {
		filter["user_id"] = path.Owner
	}
	return filter
}

func (g *MongoGateway) idFilter(path Path, id string) bson.M {
	filter := g.scope(path)
	filter["_id"] = id
	return filter
}

func (g *MongoGateway) Get(ctx context.Context, path Path, id string) (Document, error) {
	timer := utils.TrackDBOperation("get", path.Kind)
	defer timer.ObserveDuration()

	var raw bson.M
	err := g.collection(path).FindOne(ctx, g.idFilter(path, id)).Decode(&raw)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return Document{}, ErrNotFound
		}
		utils.TrackError("store", "get_failed")
		return Document{}, err
	}
	return docFromRaw(raw), nil
}

func (g *MongoGateway) Query(ctx context.Context, path Path) ([]Document, error) {
	return g.find(ctx, path, g.scope(path))
}

func (g *MongoGateway) QueryField(ctx context.Context, path Path, field string, value interface{}) ([]Document, error) {
	filter := g.scope(path)
	filter[field] = value
	return g.find(ctx, path, filter)
}

func (g *MongoGateway) QueryTimeRange(ctx context.Context, path Path, field string, start, end time.Time) ([]Document, error) {
	filter := g.scope(path)
	filter[field] = bson.M{"$gte": start.UTC(), "$lte": end.UTC()}
	return g.find(ctx, path, filter)
}

func (g *MongoGateway) find(ctx context.Context, path Path, filter bson.M) ([]Document, error) {
	timer := utils.TrackDBOperation("find", path.Kind)
	defer timer.ObserveDuration()

	cursor, err := g.collection(path).Find(ctx, filter)
	if err != nil {
		utils.TrackError("store", "query_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []Document
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			utils.TrackError("store", "decode_failed")
			return nil, err
		}
		docs = append(docs, docFromRaw(raw))
	}
	return docs, cursor.Err()
}

func (g *MongoGateway) Add(ctx context.Context, path Path, fields map[string]interface{}) (string, error) {
	timer := utils.TrackDBOperation("insert", path.Kind)
	defer timer.ObserveDuration()

	id := uuid.NewString()
	doc := bson.M{"_id": id}
	if path.Owner != "" {
		doc["user_id"] = path.Owner
	}
	for k, v := range fields {
		doc[k] = v
	}

	if _, err := g.collection(path).InsertOne(ctx, doc); err != nil {
		utils.TrackError("store", "insert_failed")
		return "", err
	}
	return id, nil
}

func (g *MongoGateway) SetMerge(ctx context.Context, path Path, id string, fields map[string]interface{}) error {
	timer := utils.TrackDBOperation("merge", path.Kind)
	defer timer.ObserveDuration()

	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	if path.Owner != "" {
		set["user_id"] = path.Owner
	}

	_, err := g.collection(path).UpdateOne(ctx,
		g.idFilter(path, id),
		bson.M{"$set": set},
		options.Update().SetUpsert(true))
	if err != nil {
		utils.TrackError("store", "merge_failed")
	}
	return err
}

func (g *MongoGateway) SetOverwrite(ctx context.Context, path Path, id string, fields map[string]interface{}) error {
	timer := utils.TrackDBOperation("replace", path.Kind)
	defer timer.ObserveDuration()

	doc := bson.M{}
	for k, v := range fields {
		doc[k] = v
	}
	if path.Owner != "" {
		doc["user_id"] = path.Owner
	}

	_, err := g.collection(path).ReplaceOne(ctx,
		g.idFilter(path, id), doc,
		options.Replace().SetUpsert(true))
	if err != nil {
		utils.TrackError("store", "replace_failed")
	}
	return err
}

func (g *MongoGateway) Update(ctx context.Context, path Path, id string, fields map[string]interface{}) error {
	timer := utils.TrackDBOperation("update", path.Kind)
	defer timer.ObserveDuration()

	set := bson.M{}
	unset := bson.M{}
	for k, v := range fields {
		if v == nil {
			unset[k] = ""
		} else {
			set[k] = v
		}
	}
	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	result, err := g.collection(path).UpdateOne(ctx, g.idFilter(path, id), update)
	if err != nil {
		utils.TrackError("store", "update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *MongoGateway) Delete(ctx context.Context, path Path, id string) error {
	timer := utils.TrackDBOperation("delete", path.Kind)
	defer timer.ObserveDuration()

	_, err := g.collection(path).DeleteOne(ctx, g.idFilter(path, id))
	if err != nil {
		utils.TrackError("store", "delete_failed")
	}
	return err
}

// docFromRaw strips gateway-internal fields and normalizes driver types so
// callers always see time.Time in UTC.
func docFromRaw(raw bson.M) Document {
	doc := Document{Fields: make(map[string]interface{}, len(raw))}
	for k, v := range raw {
		switch k {
		case "_id":
			if s, ok := v.(string); ok {
				doc.ID = s
			}
		case "user_id":
			// owner scoping field, not part of the document
		default:
			doc.Fields[k] = normalizeValue(v)
		}
	}
	return doc
}

func normalizeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC()
	case time.Time:
		return t.UTC()
	default:
		return v
	}
}
