package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task is an owner-scoped todo item. Every read and write against the
// tasks collection filters by owner_id.
type Task struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	Completed bool               `json:"completed" bson:"completed"`
	OwnerID   primitive.ObjectID `json:"owner_id" bson:"owner_id"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}

// TaskDraft is the per-item payload accepted by bulk insertion. Only the
// title is required; the owner stamp is always applied server-side.
type TaskDraft struct {
	Title     string `json:"title" binding:"required"`
	Completed bool   `json:"completed"`
}

// TaskStats is the aggregate shape for one owner's tasks. Earliest and
// latest are omitted when the owner has no tasks.
type TaskStats struct {
	TotalTasks     int64      `json:"totalTasks" bson:"totalTasks"`
	CompletedTasks int64      `json:"completedTasks" bson:"completedTasks"`
	PendingTasks   int64      `json:"pendingTasks" bson:"pendingTasks"`
	EarliestTask   *time.Time `json:"earliestTask,omitempty" bson:"earliestTask,omitempty"`
	LatestTask     *time.Time `json:"latestTask,omitempty" bson:"latestTask,omitempty"`
}
