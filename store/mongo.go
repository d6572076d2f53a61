// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/danielhkuo/movie-night/models"
)

const (
	sessionsCollection = "sessions"
	moviesCollection   = "movies"
	votesCollection    = "votes"

	mongoDisconnectTimeout = 10 * time.Second
)

type sessionDoc struct {
	ID        string     `bson:"_id"`
	Name      string     `bson:"name"`
	HostID    string     `bson:"hostId"`
	Status    string     `bson:"status"`
	CreatedAt time.Time  `bson:"createdAt"`
	ClosedAt  *time.Time `bson:"closedAt,omitempty"`
}

type movieDoc struct {
	ID        string    `bson:"_id"`
	SessionID string    `bson:"sessionId"`
	Title     string    `bson:"title"`
	Poster    *string   `bson:"poster,omitempty"`
	Year      *int      `bson:"year,omitempty"`
	Director  *string   `bson:"director,omitempty"`
	Genre     *string   `bson:"genre,omitempty"`
	Rating    *float64  `bson:"rating,omitempty"`
	CreatedAt time.Time `bson:"createdAt"`
}

type voteDoc struct {
	ID        string    `bson:"_id"`
	SessionID string    `bson:"sessionId"`
	MovieID   string    `bson:"movieId"`
	UserID    string    `bson:"userId"`
	Rank      int       `bson:"rank"`
	VotedAt   time.Time `bson:"votedAt"`
}

// MongoStore implements Store on MongoDB.
// ReplaceSlate uses a multi-document transaction, so the server must be a
// replica set or sharded cluster.
type MongoStore struct {
	client   *mongo.Client
	sessions *mongo.Collection
	movies   *mongo.Collection
	votes    *mongo.Collection
}

// NewMongoStore connects to uri, verifies the connection and ensures indexes
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	db := client.Database(database)
	s := &MongoStore{
		client:   client,
		sessions: db.Collection(sessionsCollection),
		movies:   db.Collection(moviesCollection),
		votes:    db.Collection(votesCollection),
	}
	if err := s.EnsureIndexes(ctx); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

// EnsureIndexes creates the lookup and uniqueness indexes. Safe to call repeatedly.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.movies.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "sessionId", Value: 1}, {Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create movie index: %w", err)
	}

	_, err = s.votes.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sessionId", Value: 1}, {Key: "userId", Value: 1}, {Key: "movieId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "sessionId", Value: 1}, {Key: "userId", Value: 1}, {Key: "rank", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create vote indexes: %w", err)
	}
	return nil
}

func (s *MongoStore) CreateSession(ctx context.Context, session models.Session) error {
	_, err := s.sessions.InsertOne(ctx, sessionDoc{
		ID:        session.ID,
		Name:      session.Name,
		HostID:    session.HostID,
		Status:    session.Status,
		CreatedAt: session.CreatedAt,
		ClosedAt:  session.ClosedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (s *MongoStore) GetSession(ctx context.Context, id string) (models.Session, error) {
	var doc sessionDoc
	err := s.sessions.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Session{}, ErrNotFound
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to query session: %w", err)
	}
	return models.Session{
		ID:        doc.ID,
		Name:      doc.Name,
		HostID:    doc.HostID,
		Status:    doc.Status,
		CreatedAt: doc.CreatedAt,
		ClosedAt:  doc.ClosedAt,
	}, nil
}

func (s *MongoStore) CloseSession(ctx context.Context, id string, closedAt time.Time) error {
	result, err := s.sessions.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": models.StatusClosed, "closedAt": closedAt},
	})
	if err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) AddMovie(ctx context.Context, m models.Movie) error {
	_, err := s.movies.InsertOne(ctx, movieDoc{
		ID:        m.ID,
		SessionID: m.SessionID,
		Title:     m.Title,
		Poster:    m.Poster,
		Year:      m.Year,
		Director:  m.Director,
		Genre:     m.Genre,
		Rating:    m.Rating,
		CreatedAt: m.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to insert movie: %w", err)
	}
	return nil
}

func (s *MongoStore) ListMovies(ctx context.Context, sessionID string) ([]models.Movie, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := s.movies.Find(ctx, bson.M{"sessionId": sessionID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	var docs []movieDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to read movies: %w", err)
	}

	movies := make([]models.Movie, 0, len(docs))
	for _, d := range docs {
		movies = append(movies, models.Movie{
			ID:        d.ID,
			SessionID: d.SessionID,
			Title:     d.Title,
			Poster:    d.Poster,
			Year:      d.Year,
			Director:  d.Director,
			Genre:     d.Genre,
			Rating:    d.Rating,
			CreatedAt: d.CreatedAt,
		})
	}
	return movies, nil
}

func (s *MongoStore) ListVotes(ctx context.Context, sessionID string) ([]models.Vote, error) {
	return s.findVotes(ctx, bson.M{"sessionId": sessionID},
		bson.D{{Key: "userId", Value: 1}, {Key: "rank", Value: 1}})
}

func (s *MongoStore) ListUserVotes(ctx context.Context, sessionID, userID string) ([]models.Vote, error) {
	return s.findVotes(ctx, bson.M{"sessionId": sessionID, "userId": userID},
		bson.D{{Key: "rank", Value: 1}})
}

func (s *MongoStore) findVotes(ctx context.Context, filter bson.M, sort bson.D) ([]models.Vote, error) {
	cursor, err := s.votes.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	var docs []voteDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to read votes: %w", err)
	}

	votes := make([]models.Vote, 0, len(docs))
	for _, d := range docs {
		votes = append(votes, models.Vote{
			ID:        d.ID,
			SessionID: d.SessionID,
			MovieID:   d.MovieID,
			UserID:    d.UserID,
			Rank:      d.Rank,
			VotedAt:   d.VotedAt,
		})
	}
	return votes, nil
}

func (s *MongoStore) ReplaceSlate(ctx context.Context, sessionID, userID string, votes []models.Vote) error {
	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start mongo session: %w", err)
	}
	defer session.EndSession(ctx)

	docs := make([]interface{}, 0, len(votes))
	for _, v := range votes {
		docs = append(docs, voteDoc{
			ID:        v.ID,
			SessionID: sessionID,
			MovieID:   v.MovieID,
			UserID:    userID,
			Rank:      v.Rank,
			VotedAt:   v.VotedAt,
		})
	}

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		// Writing the session document makes a concurrent close conflict with this transaction
		touched, err := s.sessions.UpdateOne(sc,
			bson.M{"_id": sessionID, "status": models.StatusOpen},
			bson.M{"$set": bson.M{"lastVoteAt": time.Now().UTC()}},
		)
		if err != nil {
			return nil, fmt.Errorf("failed to check session status: %w", err)
		}
		if touched.MatchedCount == 0 {
			n, err := s.sessions.CountDocuments(sc, bson.M{"_id": sessionID})
			if err != nil {
				return nil, fmt.Errorf("failed to check session status: %w", err)
			}
			if n == 0 {
				return nil, ErrNotFound
			}
			return nil, ErrSessionClosed
		}

		if _, err := s.votes.DeleteMany(sc, bson.M{"sessionId": sessionID, "userId": userID}); err != nil {
			return nil, fmt.Errorf("failed to delete previous votes: %w", err)
		}
		if len(docs) == 0 {
			return nil, nil
		}
		if _, err := s.votes.InsertMany(sc, docs); err != nil {
			return nil, fmt.Errorf("failed to insert votes: %w", err)
		}
		return nil, nil
	})
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrSessionClosed) {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to replace slate: %w", err)
	}
	return nil
}

func (s *MongoStore) DeleteAllVotes(ctx context.Context) (int64, error) {
	result, err := s.votes.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to delete votes: %w", err)
	}
	return result.DeletedCount, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoDisconnectTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Drop removes every collection the store owns. Used by tests.
func (s *MongoStore) Drop(ctx context.Context) error {
	for _, c := range []*mongo.Collection{s.sessions, s.movies, s.votes} {
		if err := c.Drop(ctx); err != nil {
			return fmt.Errorf("failed to drop %s: %w", c.Name(), err)
		}
	}
	return nil
}
