// Package mongodb guarda usuarios, perfiles y posts como documentos, con los
// perfiles embebiendo mascotas e historial. DeleteAccount usa una transacción
// de sesión, así que el servidor tiene que ser un replica set.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection    = "users"
	profilesCollection = "profiles"
	postsCollection    = "posts"

	DefaultDatabase = "petvet"
)

// Connect abre el cliente y verifica con ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewStore(client *mongo.Client, database string) *Store {
	if database == "" {
		database = DefaultDatabase
	}
	return &Store{client: client, db: client.Database(database)}
}

func (s *Store) Users() *UsersRepo       { return &UsersRepo{coll: s.db.Collection(usersCollection)} }
func (s *Store) Profiles() *ProfilesRepo { return &ProfilesRepo{coll: s.db.Collection(profilesCollection)} }
func (s *Store) Posts() *PostsRepo       { return &PostsRepo{coll: s.db.Collection(postsCollection)} }

// EnsureIndexes crea los índices únicos (email, perfil por usuario) y los de listado.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if _, err := s.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("users index: %w", err)
	}
	if _, err := s.db.Collection(profilesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("profiles index: %w", err)
	}
	if _, err := s.db.Collection(postsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}}},
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "date", Value: -1}}},
	}); err != nil {
		return fmt.Errorf("posts index: %w", err)
	}
	return nil
}

// DeleteAccount borra posts, perfil y usuario en una transacción.
func (s *Store) DeleteAccount(ctx context.Context, userID string) error {
	sess, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		if _, err := s.db.Collection(postsCollection).DeleteMany(sc, bson.M{"user": userID}); err != nil {
			return nil, err
		}
		if _, err := s.db.Collection(profilesCollection).DeleteOne(sc, bson.M{"user": userID}); err != nil {
			return nil, err
		}
		if _, err := s.db.Collection(usersCollection).DeleteOne(sc, bson.M{"_id": userID}); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}
