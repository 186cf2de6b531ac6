package careerinfra

import (
	"context"

	"github.com/Abraxas-365/careerlens/careers/career"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	DefaultAtlasIndex      = "vector_index_1"
	DefaultAtlasCandidates = 100
)

// AtlasVectorIndex searches a MongoDB Atlas collection with $vectorSearch
type AtlasVectorIndex struct {
	coll          *mongo.Collection
	index         string
	numCandidates int
}

// NewAtlasVectorIndex searches coll through the named Atlas vector index.
// numCandidates is the ANN candidate pool per query.
func NewAtlasVectorIndex(coll *mongo.Collection, index string, numCandidates int) *AtlasVectorIndex {
	if index == "" {
		index = DefaultAtlasIndex
	}
	if numCandidates <= 0 {
		numCandidates = DefaultAtlasCandidates
	}
	return &AtlasVectorIndex{coll: coll, index: index, numCandidates: numCandidates}
}

type atlasDoc struct {
	career.Record `bson:",inline"`
	Score         float64 `bson:"score"`
}

// SearchPipeline builds the aggregation run by Search
func (x *AtlasVectorIndex) SearchPipeline(vector []float32, limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$vectorSearch", Value: bson.D{
			{Key: "index", Value: x.index},
			{Key: "path", Value: "embedding"},
			{Key: "queryVector", Value: vector},
			{Key: "numCandidates", Value: max(x.numCandidates, limit)},
			{Key: "limit", Value: limit},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "embedding", Value: 0},
			{Key: "score", Value: bson.D{{Key: "$meta", Value: "vectorSearchScore"}}},
		}}},
	}
}

func (x *AtlasVectorIndex) Search(ctx context.Context, vector []float32, limit int) ([]career.Hit, error) {
	cur, err := x.coll.Aggregate(ctx, x.SearchPipeline(vector, limit))
	if err != nil {
		return nil, career.ErrVectorSearch(err).WithDetail("backend", "atlas")
	}
	defer cur.Close(ctx)

	var docs []atlasDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, career.ErrVectorSearch(err).WithDetail("backend", "atlas")
	}

	hits := make([]career.Hit, 0, len(docs))
	for _, d := range docs {
		hits = append(hits, career.Hit{Record: d.Record, Score: d.Score})
	}
	return hits, nil
}

type atlasInsert struct {
	career.Record `bson:",inline"`
	Embedding     []float32 `bson:"embedding"`
}

func (x *AtlasVectorIndex) Insert(ctx context.Context, records []career.Record, vectors [][]float32) error {
	if len(records) != len(vectors) {
		return career.ErrRegistry.New(career.CodeVectorInsert).
			WithDetail("records", len(records)).
			WithDetail("vectors", len(vectors))
	}
	if len(records) == 0 {
		return nil
	}

	docs := make([]any, len(records))
	for i, rec := range records {
		docs[i] = atlasInsert{Record: rec, Embedding: vectors[i]}
	}
	if _, err := x.coll.InsertMany(ctx, docs); err != nil {
		return career.ErrVectorInsert(err).WithDetail("backend", "atlas")
	}
	return nil
}
