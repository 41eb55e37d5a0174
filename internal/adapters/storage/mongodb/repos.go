package mongodb

import (
	"context"
	"errors"

	"pet-vet-reviews/internal/domain/posts"
	"pet-vet-reviews/internal/domain/profiles"
	"pet-vet-reviews/internal/domain/users"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// -------------------------
// Users
// -------------------------

type UsersRepo struct {
	coll *mongo.Collection
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.coll.InsertOne(ctx, toUserDoc(u))
	if mongo.IsDuplicateKeyError(err) {
		return users.ErrEmailTaken
	}
	return err
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UsersRepo) findOne(ctx context.Context, filter bson.M) (users.User, error) {
	var d userDoc
	err := r.coll.FindOne(ctx, filter).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return users.User{}, users.ErrNotFound
	}
	if err != nil {
		return users.User{}, err
	}
	return d.toDomain(), nil
}

// -------------------------
// Profiles
// -------------------------

type ProfilesRepo struct {
	coll *mongo.Collection
}

func (r *ProfilesRepo) Create(ctx context.Context, p profiles.Profile) error {
	_, err := r.coll.InsertOne(ctx, toProfileDoc(p))
	if mongo.IsDuplicateKeyError(err) {
		return profiles.ErrAlreadyExists
	}
	return err
}

// Update reemplaza el documento solo si version coincide.
func (r *ProfilesRepo) Update(ctx context.Context, p profiles.Profile) error {
	doc := toProfileDoc(p)
	doc.Version = p.Version + 1

	res, err := r.coll.ReplaceOne(ctx, bson.M{"user": p.UserID, "version": p.Version}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"user": p.UserID})
	if err != nil {
		return err
	}
	if n == 0 {
		return profiles.ErrNotFound
	}
	return profiles.ErrVersionConflict
}

func (r *ProfilesRepo) GetByUser(ctx context.Context, userID string) (profiles.Profile, error) {
	var d profileDoc
	err := r.coll.FindOne(ctx, bson.M{"user": userID}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return profiles.Profile{}, profiles.ErrNotFound
	}
	if err != nil {
		return profiles.Profile{}, err
	}
	return d.toDomain(), nil
}

func (r *ProfilesRepo) List(ctx context.Context) ([]profiles.Profile, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []profileDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]profiles.Profile, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// -------------------------
// Posts
// -------------------------

type PostsRepo struct {
	coll *mongo.Collection
}

func (r *PostsRepo) Create(ctx context.Context, p posts.Post) error {
	_, err := r.coll.InsertOne(ctx, toPostDoc(p))
	return err
}

func (r *PostsRepo) GetByID(ctx context.Context, id string) (posts.Post, error) {
	var d postDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return posts.Post{}, posts.ErrNotFound
	}
	if err != nil {
		return posts.Post{}, err
	}
	return d.toDomain(), nil
}

// Update solo persiste las listas de toggles, con compare-and-swap sobre version.
func (r *PostsRepo) Update(ctx context.Context, p posts.Post) error {
	set := bson.M{"version": p.Version + 1}
	for name, list := range toToggleDocs(p.Toggles) {
		set[name] = list
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": p.ID, "version": p.Version}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": p.ID})
	if err != nil {
		return err
	}
	if n == 0 {
		return posts.ErrNotFound
	}
	return posts.ErrVersionConflict
}

func (r *PostsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return posts.ErrNotFound
	}
	return nil
}

func (r *PostsRepo) List(ctx context.Context, f posts.ListFilter) (posts.Page, error) {
	filter := bson.M{}
	if f.UserID != "" {
		filter["user"] = f.UserID
	}

	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return posts.Page{}, err
	}
	out := posts.Page{Posts: []posts.Post{}, Count: int(count)}
	if int64(f.Offset) >= count {
		return out, nil
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(f.Offset)).
		SetLimit(int64(f.Limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return posts.Page{}, err
	}
	var docs []postDoc
	if err := cur.All(ctx, &docs); err != nil {
		return posts.Page{}, err
	}
	for _, d := range docs {
		out.Posts = append(out.Posts, d.toDomain())
	}
	return out, nil
}
