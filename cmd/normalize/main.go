// Command normalize ingests a file of scraped listings into the suburb's
// property info and price record stores, or seeds Redis with a country's
// postcode table.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"homeinsight-listings/internal/models"
	"homeinsight-listings/internal/repositories"
	"homeinsight-listings/internal/services"
	"homeinsight-listings/internal/transformers"
	"homeinsight-listings/internal/validators"
	"homeinsight-listings/pkg/cache"
	"homeinsight-listings/pkg/config"
	"homeinsight-listings/pkg/logger"
	"homeinsight-listings/pkg/metrics"

	"github.com/joho/godotenv"
)

type options struct {
	configPath string
	in         string
	country    string
	state      string
	suburb     string
	seed       bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", envOr("CONFIG_PATH", "configs/config.yaml"), "path to the YAML config file")
	flag.StringVar(&opts.in, "in", "", "JSONL file of raw listings; defaults to the suburb's file under the raw listings dir")
	flag.StringVar(&opts.country, "country", "australia", "country of the listings")
	flag.StringVar(&opts.state, "state", "", "state code, e.g. VIC")
	flag.StringVar(&opts.suburb, "suburb", "", "suburb name")
	flag.BoolVar(&opts.seed, "seed-postcodes", false, "copy the country's postcode CSV into Redis and exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, relying on system environment variables: %v", err)
	}
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.InitLogger(os.Stderr, cfg.Log.Level)
	metrics.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	country, err := models.ParseCountry(opts.country)
	if err != nil {
		logger.L().Fatalf("%v", err)
	}

	if opts.seed {
		err = seedPostcodes(ctx, cfg, country)
	} else {
		err = ingest(ctx, cfg, models.Location{Country: country, State: opts.state, Suburb: opts.suburb}, opts.in)
	}
	if err != nil {
		logger.L().Fatalf("%v", err)
	}
}

func seedPostcodes(ctx context.Context, cfg *config.Config, country models.Country) error {
	entries, err := repositories.NewFilePostcodeRepository(cfg.PostcodesTemplate()).LoadPostcodes(ctx, country)
	if err != nil {
		return err
	}

	client, err := cache.Connect(ctx, cache.RedisConfigFrom(cfg))
	if err != nil {
		return err
	}
	defer cache.Close(client)

	var writer repositories.PostcodeWriter = repositories.NewRedisPostcodeRepository(cache.NewStore(client))
	if err := writer.StorePostcodes(ctx, country, entries); err != nil {
		return err
	}
	logger.L().Printf("seeded %d %s postcodes into Redis at %s", len(entries), country, cfg.RedisAddr())
	return nil
}

func ingest(ctx context.Context, cfg *config.Config, loc models.Location, in string) error {
	if err := validators.NewLocationValidator().ValidateLocation(loc); err != nil {
		return err
	}
	labels, err := models.ParseLabelMapping(cfg.Taxonomy.LabelMapping)
	if err != nil {
		return err
	}

	postcodes, closeSource, err := postcodeSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	directory := services.NewPostcodeDirectory(postcodes)
	assembler := transformers.NewListingTransformer(transformers.NewAddressTransformer(), loc.Country, labels)
	svc := services.NewIngestService(
		repositories.NewFileRawListingRepository(cfg.RawListingsRoot()),
		repositories.NewFilePropertyInfoRepository(cfg.PropertiesInfoTemplate(), validators.NewPropertyInfoValidator(directory)),
		repositories.NewFilePriceRecordRepository(cfg.PriceRecordsTemplate(), directory),
		services.NewListingService(assembler, cfg.Ingest.Workers),
	).WithStoredValidation(cfg.ValidateStoredRows())

	summary, err := svc.Ingest(ctx, loc, in)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func postcodeSource(ctx context.Context, cfg *config.Config) (repositories.PostcodeRepository, func(), error) {
	if cfg.Postcodes.Source != config.PostcodeSourceRedis {
		return repositories.NewFilePostcodeRepository(cfg.PostcodesTemplate()), func() {}, nil
	}
	client, err := cache.Connect(ctx, cache.RedisConfigFrom(cfg))
	if err != nil {
		return nil, nil, err
	}
	return repositories.NewRedisPostcodeRepository(cache.NewStore(client)), func() { cache.Close(client) }, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
