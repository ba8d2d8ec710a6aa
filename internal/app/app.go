package app

import (
	"context"
	"fmt"
	"time"

	"github.com/kbimsara/todo-infrastructure/internal/config"
	"github.com/kbimsara/todo-infrastructure/internal/repo"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const todosCollection = "todos"

// App owns the process-wide resources: one Mongo client, constructed once at
// startup and shared by every request, and the HTTP router wired to it.
type App struct {
	cfg    config.Config
	client *mongo.Client
	router *gin.Engine
}

// New connects to the document store and wires the router. The client is the
// only shared handle; the driver owns pooling and reconnects.
func New(cfg config.Config) (*App, error) {
	a := &App{cfg: cfg}

	client, err := newMongo(cfg.Mongo)
	if err != nil {
		return nil, err
	}
	a.client = client

	col := client.Database(cfg.Mongo.Database).Collection(todosCollection)
	a.router = newRouter(cfg, repo.NewMongoTodoRepo(col))
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Close(ctx context.Context) error {
	if a.client != nil {
		return a.client.Disconnect(ctx)
	}
	return nil
}

func newMongo(cfg config.MongoConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout.Duration())
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

func newRouter(cfg config.Config, todoRepo repo.TodoRepo) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}))

	Setup(r, cfg, todoRepo)
	return r
}
