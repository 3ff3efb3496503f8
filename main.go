package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"tablelens/adapters/source"
	"tablelens/adapters/stats/engine"
	"tablelens/app"
	"tablelens/internal/config"
	"tablelens/internal/errors"
	"tablelens/internal/testkit"
	"tablelens/ports"
	"tablelens/ui"
)

// initDatabase connects to PostgreSQL when a URL is configured
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}
	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	// In-memory snapshots: the startup data file if configured, otherwise
	// a deterministic demo table so the UI has something to show.
	store := source.NewMemoryStore()
	if appConfig.Data.File != "" {
		snapshot, err := source.NewFileReader(appConfig.Data.File).Read()
		if err != nil {
			log.Fatalf("Failed to load data file: %v", err)
		}
		store.Put(snapshot)
	} else {
		store.Put(testkit.DemoTable("demo", 120))
		log.Println("No DATA_FILE configured, registered demo table")
	}

	sources := []ports.ColumnSource{store}
	if appConfig.Database.URL != "" {
		db, err := initDatabase(appConfig)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()
		sources = append(sources, source.NewPostgresSource(db, appConfig.Database.Schema))
		log.Printf("Connected to PostgreSQL, schema %s", appConfig.Database.Schema)
	}
	columnSource := source.NewMulti(sources...)

	analysisEngine := engine.New(columnSource)
	runner := app.NewBatchRunner(analysisEngine, appConfig.Engine.MaxConcurrentAnalyses)

	reports := ui.NewApp(analysisEngine, columnSource)
	go func() {
		if err := reports.Start(":" + appConfig.Server.ReportPort); err != nil {
			log.Fatalf("Report server failed: %v", err)
		}
	}()

	server := ui.NewServer(analysisEngine, runner, columnSource)
	if err := server.Start(":" + appConfig.Server.Port); err != nil {
		log.Fatalf("API server failed: %v", err)
	}
}
