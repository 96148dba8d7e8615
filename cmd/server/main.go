package main

import (
	"context"
	"net/http"
	"os"

	"github.com/Luismorlan/chirper/auth"
	"github.com/Luismorlan/chirper/feed"
	"github.com/Luismorlan/chirper/filestore"
	"github.com/Luismorlan/chirper/notification"
	"github.com/Luismorlan/chirper/server"
	"github.com/Luismorlan/chirper/server/middlewares"
	"github.com/Luismorlan/chirper/server/rest"
	"github.com/Luismorlan/chirper/store"
	"github.com/Luismorlan/chirper/utils"
	"github.com/Luismorlan/chirper/utils/dotenv"
	. "github.com/Luismorlan/chirper/utils/flag"
	. "github.com/Luismorlan/chirper/utils/log"
	"github.com/DataDog/datadog-go/statsd"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
)

func cleanup() {
	utils.CloseProfiler()
	utils.CloseTracer()
	Log.Info("api server shutdown")
}

func newFileStore() filestore.FileStore {
	if bucket := os.Getenv("ATTACHMENT_BUCKET"); bucket != "" {
		fs, err := filestore.NewS3FileStore(bucket)
		if err != nil {
			Log.Fatal("fail to initialize s3 file store: ", err)
		}
		return fs
	}
	fs, err := filestore.NewLocalFileStore(os.TempDir())
	if err != nil {
		Log.Fatal("fail to initialize local file store: ", err)
	}
	return fs
}

func newNotifier() notification.Sender {
	if url := os.Getenv("SLACK_WEBHOOK_URL"); url != "" {
		return notification.NewSlackSender(url)
	}
	return notification.LogSender{}
}

func main() {
	defer cleanup()

	Parse()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	db, err := utils.GetDBConnection()
	if err != nil {
		Log.Fatal("fail to connect database: ", err)
	}
	if err := utils.DatabaseSetupAndMigration(db); err != nil {
		Log.Fatal("fail to migrate database: ", err)
	}

	authProvider, err := auth.NewProviderFromEnv()
	if err != nil {
		Log.Fatal("fail to initialize auth provider: ", err)
	}

	// In-process event bus: the store publishes content-created events,
	// the feed generator turns them into news feed rows. The standalone
	// feed_generator binary consumes the same events from SQS instead.
	bus := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer bus.Close()

	s := store.NewStore(db, bus)

	statsdClient, err := statsd.New("127.0.0.1:8125")
	if err != nil {
		Log.Warn("fail to initialize statsd client, metrics disabled: ", err)
	}

	generator := feed.NewGenerator(db, statsdClient, utils.GetRedisClient())
	go func() {
		if err := generator.Run(context.Background(), bus); err != nil {
			Log.Error("feed generator stopped: ", err)
		}
	}()

	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()

	router.Use(cors.Default())
	router.Use(gintrace.Middleware(ServiceName))

	graphqlHandler := server.GraphqlHandler(s, authProvider)
	router.POST("/graphql", middlewares.JWT(authProvider), graphqlHandler)

	restHandler := &rest.Handler{
		Store:    s,
		Auth:     authProvider,
		Files:    newFileStore(),
		Notifier: newNotifier(),
	}
	public := router.Group("/api/v1")
	restHandler.RegisterPublic(public)

	api := router.Group("/api/v1")
	api.Use(middlewares.JWT(authProvider))
	restHandler.Register(api)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	Log.Info("api server starts up")
	router.Run(":8080")
}
