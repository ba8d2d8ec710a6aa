package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Todo is the business entity. It carries bson tags for the document store
// but knows nothing about Gin or HTTP.
type Todo struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Completed   bool               `bson:"completed"`

	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// TodoPatch is a partial update: nil fields are left unchanged. A patch with
// no fields is still a legal update; the store refreshes updatedAt and
// nothing else.
type TodoPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}
