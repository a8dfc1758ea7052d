package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderik79/home-work-63/config"
	"github.com/alexanderik79/home-work-63/database"
	"github.com/alexanderik79/home-work-63/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotOwned signals that no task matched both the id and the requesting
// owner. The caller cannot learn whether the task exists under someone else.
var ErrNotOwned = errors.New("task not found for this owner")

// TaskRepository performs all task access. Ownership is never checked by a
// separate read: every mutation is one atomic filtered write whose filter
// carries both _id and owner_id.
type TaskRepository struct{}

// TaskPatch is a partial update; nil fields are left untouched.
type TaskPatch struct {
	Title     *string
	Completed *bool
}

func (TaskRepository) Create(ctx context.Context, ownerID primitive.ObjectID, title string) (*models.Task, error) {
	collection := database.GetCollection(config.DB_Collection.Tasks)

	task := models.Task{
		Title:     title,
		Completed: false,
		OwnerID:   ownerID,
		CreatedAt: time.Now(),
	}

	res, err := collection.InsertOne(ctx, task)
	if err != nil {
		return nil, err
	}
	task.ID = res.InsertedID.(primitive.ObjectID)
	return &task, nil
}

func (TaskRepository) Delete(ctx context.Context, ownerID, taskID primitive.ObjectID) error {
	collection := database.GetCollection(config.DB_Collection.Tasks)

	res, err := collection.DeleteOne(ctx, bson.M{"_id": taskID, "owner_id": ownerID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotOwned
	}
	return nil
}

// Update applies a partial $set and reports Mongo's matched and modified
// counts separately, so the caller can distinguish "not yours" (matched 0)
// from "yours but nothing changed" (matched 1, modified 0).
func (TaskRepository) Update(ctx context.Context, ownerID, taskID primitive.ObjectID, patch TaskPatch) (matched, modified int64, err error) {
	collection := database.GetCollection(config.DB_Collection.Tasks)

	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Completed != nil {
		set["completed"] = *patch.Completed
	}
	if len(set) == 0 {
		// Nothing to set; still verify ownership so the caller gets the
		// same matched/forbidden signal as a real update.
		count, err := collection.CountDocuments(ctx, bson.M{"_id": taskID, "owner_id": ownerID})
		return count, 0, err
	}

	res, err := collection.UpdateOne(ctx,
		bson.M{"_id": taskID, "owner_id": ownerID},
		bson.M{"$set": set},
	)
	if err != nil {
		return 0, 0, err
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

// Replace swaps the full document, keeping the id and owner and restarting
// the created_at clock.
func (TaskRepository) Replace(ctx context.Context, ownerID, taskID primitive.ObjectID, title string, completed bool) (int64, error) {
	collection := database.GetCollection(config.DB_Collection.Tasks)

	replacement := models.Task{
		ID:        taskID,
		Title:     title,
		Completed: completed,
		OwnerID:   ownerID,
		CreatedAt: time.Now(),
	}

	res, err := collection.ReplaceOne(ctx, bson.M{"_id": taskID, "owner_id": ownerID}, replacement)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// InsertMany stamps every draft with the owner before insertion. Partial
// application on failure is the store's native behavior and is surfaced
// through the returned count.
func (TaskRepository) InsertMany(ctx context.Context, ownerID primitive.ObjectID, drafts []models.TaskDraft) (int, error) {
	collection := database.GetCollection(config.DB_Collection.Tasks)

	now := time.Now()
	docs := make([]interface{}, 0, len(drafts))
	for _, draft := range drafts {
		docs = append(docs, models.Task{
			Title:     draft.Title,
			Completed: draft.Completed,
			OwnerID:   ownerID,
			CreatedAt: now,
		})
	}

	res, err := collection.InsertMany(ctx, docs)
	if res != nil {
		return len(res.InsertedIDs), err
	}
	return 0, err
}

// CompleteAll marks every still-pending task of the owner completed and
// returns how many actually flipped.
func (TaskRepository) CompleteAll(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	collection := database.GetCollection(config.DB_Collection.Tasks)

	res, err := collection.UpdateMany(ctx,
		bson.M{"owner_id": ownerID, "completed": false},
		bson.M{"$set": bson.M{"completed": true}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// PurgeCompleted deletes the owner's completed tasks and reports the count.
func (TaskRepository) PurgeCompleted(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	collection := database.GetCollection(config.DB_Collection.Tasks)

	res, err := collection.DeleteMany(ctx, bson.M{"owner_id": ownerID, "completed": true})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// List returns all of the owner's tasks, newest first.
func (TaskRepository) List(ctx context.Context, ownerID primitive.ObjectID) ([]models.Task, error) {
	collection := database.GetCollection(config.DB_Collection.Tasks)

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := collection.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Stream produces the same sequence as List one record at a time, backed by
// a live cursor. The cursor is closed on every exit path: normal
// exhaustion, decode error, or context cancellation when the consumer goes
// away. The sequence is forward-only and cannot be restarted.
func (TaskRepository) Stream(ctx context.Context, ownerID primitive.ObjectID) (<-chan models.Task, <-chan error) {
	tasks := make(chan models.Task)
	errc := make(chan error, 1)

	go func() {
		defer close(tasks)
		defer close(errc)

		collection := database.GetCollection(config.DB_Collection.Tasks)
		opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

		cursor, err := collection.Find(ctx, bson.M{"owner_id": ownerID}, opts)
		if err != nil {
			errc <- err
			return
		}
		defer cursor.Close(ctx)

		for cursor.Next(ctx) {
			var task models.Task
			if err := cursor.Decode(&task); err != nil {
				errc <- err
				return
			}
			select {
			case tasks <- task:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		if err := cursor.Err(); err != nil {
			errc <- err
		}
	}()

	return tasks, errc
}

// Stats runs one aggregation over the owner's tasks. An owner with no tasks
// gets zero counts and no earliest/latest timestamps.
func (TaskRepository) Stats(ctx context.Context, ownerID primitive.ObjectID) (*models.TaskStats, error) {
	collection := database.GetCollection(config.DB_Collection.Tasks)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "owner_id", Value: ownerID}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalTasks", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "completedTasks", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$cond", Value: bson.A{"$completed", 1, 0}},
			}}}},
			{Key: "earliestTask", Value: bson.D{{Key: "$min", Value: "$created_at"}}},
			{Key: "latestTask", Value: bson.D{{Key: "$max", Value: "$created_at"}}},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "pendingTasks", Value: bson.D{
				{Key: "$subtract", Value: bson.A{"$totalTasks", "$completedTasks"}},
			}},
		}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, err
		}
		return &models.TaskStats{}, nil
	}

	var stats models.TaskStats
	if err := cursor.Decode(&stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
