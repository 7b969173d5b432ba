// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/danielhkuo/drivencracy/engine"
	"github.com/danielhkuo/drivencracy/models"
)

const (
	pollCollection   = "poll"
	choiceCollection = "choice"
	voteCollection   = "vote"
)

type pollDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Title    string             `bson:"title"`
	ExpireAt string             `bson:"expireAt"`
}

type choiceDoc struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	Title  string             `bson:"title"`
	PollID primitive.ObjectID `bson:"pollId"`
}

type voteDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	ChoiceID    primitive.ObjectID `bson:"choiceId"`
	ChoiceTitle string             `bson:"choiceTitle"`
	PollID      primitive.ObjectID `bson:"pollId"`
	Vote        int                `bson:"vote"`
	Date        string             `bson:"date"`
}

// Store implements engine.Store on a MongoDB database using the poll,
// choice and vote collections.
type Store struct {
	db *mongo.Database
}

var _ engine.Store = (*Store)(nil)

// Connect opens a client and verifies the server is reachable
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return client, nil
}

func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

// EnsureIndexes creates the unique title index on choices and the lookup
// indexes used by listing and tallying. Safe to call multiple times.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := s.db.Collection(choiceCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "title", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "pollId", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create choice indexes: %w", err)
	}

	_, err = s.db.Collection(voteCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "choiceId", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create vote index: %w", err)
	}
	return nil
}

func (s *Store) InsertPoll(ctx context.Context, poll *models.Poll) error {
	id, err := s.insert(ctx, pollCollection, pollDoc{Title: poll.Title, ExpireAt: poll.ExpireAt})
	if err != nil {
		return err
	}
	poll.ID = id
	return nil
}

func (s *Store) FindPoll(ctx context.Context, id string) (*models.Poll, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, engine.ErrNotFound
	}

	var doc pollDoc
	if err := s.findOne(ctx, pollCollection, bson.M{"_id": oid}, &doc); err != nil {
		return nil, err
	}
	return doc.toPoll(), nil
}

func (s *Store) ListPolls(ctx context.Context) ([]models.Poll, error) {
	var docs []pollDoc
	if err := s.find(ctx, pollCollection, bson.M{}, &docs); err != nil {
		return nil, err
	}

	polls := make([]models.Poll, 0, len(docs))
	for _, d := range docs {
		polls = append(polls, *d.toPoll())
	}
	return polls, nil
}

func (s *Store) InsertChoice(ctx context.Context, choice *models.Choice) error {
	pollID, err := primitive.ObjectIDFromHex(choice.PollID)
	if err != nil {
		return fmt.Errorf("invalid poll id %q: %w", choice.PollID, err)
	}

	id, err := s.insert(ctx, choiceCollection, choiceDoc{Title: choice.Title, PollID: pollID})
	if err != nil {
		return err
	}
	choice.ID = id
	return nil
}

func (s *Store) FindChoice(ctx context.Context, id string) (*models.Choice, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, engine.ErrNotFound
	}

	var doc choiceDoc
	if err := s.findOne(ctx, choiceCollection, bson.M{"_id": oid}, &doc); err != nil {
		return nil, err
	}
	return doc.toChoice(), nil
}

func (s *Store) FindChoiceByTitle(ctx context.Context, title string) (*models.Choice, error) {
	var doc choiceDoc
	if err := s.findOne(ctx, choiceCollection, bson.M{"title": title}, &doc); err != nil {
		return nil, err
	}
	return doc.toChoice(), nil
}

func (s *Store) ListChoices(ctx context.Context, pollID string) ([]models.Choice, error) {
	oid, err := primitive.ObjectIDFromHex(pollID)
	if err != nil {
		return []models.Choice{}, nil
	}

	var docs []choiceDoc
	if err := s.find(ctx, choiceCollection, bson.M{"pollId": oid}, &docs); err != nil {
		return nil, err
	}

	choices := make([]models.Choice, 0, len(docs))
	for _, d := range docs {
		choices = append(choices, *d.toChoice())
	}
	return choices, nil
}

func (s *Store) InsertVote(ctx context.Context, vote *models.Vote) error {
	choiceID, err := primitive.ObjectIDFromHex(vote.ChoiceID)
	if err != nil {
		return fmt.Errorf("invalid choice id %q: %w", vote.ChoiceID, err)
	}
	pollID, err := primitive.ObjectIDFromHex(vote.PollID)
	if err != nil {
		return fmt.Errorf("invalid poll id %q: %w", vote.PollID, err)
	}

	id, err := s.insert(ctx, voteCollection, voteDoc{
		ChoiceID:    choiceID,
		ChoiceTitle: vote.ChoiceTitle,
		PollID:      pollID,
		Vote:        vote.Vote,
		Date:        vote.Date,
	})
	if err != nil {
		return err
	}
	vote.ID = id
	return nil
}

func (s *Store) CountVotes(ctx context.Context, choiceID string) (int, error) {
	oid, err := primitive.ObjectIDFromHex(choiceID)
	if err != nil {
		return 0, nil
	}

	n, err := s.db.Collection(voteCollection).CountDocuments(ctx, bson.M{"choiceId": oid})
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return int(n), nil
}

func (s *Store) insert(ctx context.Context, collection string, doc interface{}) (string, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return "", fmt.Errorf("%w: %w", engine.ErrDuplicate, err)
	}
	if err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", collection, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected %s id type %T", collection, res.InsertedID)
	}
	return oid.Hex(), nil
}

func (s *Store) findOne(ctx context.Context, collection string, filter bson.M, v interface{}) error {
	err := s.db.Collection(collection).FindOne(ctx, filter).Decode(v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return engine.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", collection, err)
	}
	return nil
}

// find returns matches sorted by _id, which follows insertion order
func (s *Store) find(ctx context.Context, collection string, filter bson.M, v interface{}) error {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", collection, err)
	}
	if err := cursor.All(ctx, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", collection, err)
	}
	return nil
}

func (d *pollDoc) toPoll() *models.Poll {
	return &models.Poll{
		ID:       d.ID.Hex(),
		Title:    d.Title,
		ExpireAt: d.ExpireAt,
	}
}

func (d *choiceDoc) toChoice() *models.Choice {
	return &models.Choice{
		ID:     d.ID.Hex(),
		Title:  d.Title,
		PollID: d.PollID.Hex(),
	}
}
