package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"text2phenotype.com/ukstem/api"
	"text2phenotype.com/ukstem/logger"
	"text2phenotype.com/ukstem/pipeline"
	"text2phenotype.com/ukstem/types"
	"text2phenotype.com/ukstem/worker"
)

type Config struct {
	ConfigPath    string `envconfig:"UKSTEM_CONFIG_PATH" required:"true"`
	RestAPIActive bool   `envconfig:"UKSTEM_REST_API_ACTIVE" default:"false"`
	RestAPIPort   string `envconfig:"UKSTEM_REST_API_PORT" default:"10000"`
	WorkerActive  bool   `envconfig:"UKSTEM_WORKER_ACTIVE" default:"true"`
	CacheSize     int    `envconfig:"UKSTEM_CACHE_SIZE" default:"100000"`
}

const (
	pipelineStartMaxRetries = 5

	demoPassage = "Привіт,як твої  справи?  (це ж тест??) Зберігайте спокойствіе.Оплатіте ласка, " +
		"зробіть погашення боргу/заборгованостей. Рефлексивного и тямущий"
)

func main() {
	logger.SetupLogging()
	mainLogger := logger.NewLogger("Main")
	demo := flag.Bool("demo", false, "stem a sample passage and exit")
	supervise := flag.Bool("supervise", false, "run as a child process and relay its logs")
	flag.Parse()

	if *demo {
		runDemo()
		return
	}

	if *supervise {
		var args []string
		for _, arg := range os.Args[1:] {
			if arg != "-supervise" && arg != "--supervise" {
				args = append(args, arg)
			}
		}
		logger.WrapProcess(os.Args[0], args...)
		return
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		mainLogger.Fatal().Caller().Err(err).Msg("Failed to read environment")
	}

	ppln := loadPipeline(config, mainLogger)

	if config.RestAPIActive {
		go func() {
			mainLogger.Info().Msg("Starting API service")
			apiRequest := &api.Request{
				Pipeline: ppln,
			}
			mux := http.NewServeMux()
			apiRequest.Routes(mux)
			host := fmt.Sprintf(":%s", config.RestAPIPort)
			mainLogger.Info().Msgf("REST API on %s", host)
			err := http.ListenAndServe(host, mux)
			mainLogger.Fatal().Caller().Err(err).Msg("REST API stopped with error")
		}()
	}

	if !config.WorkerActive {
		mainLogger.Info().Msg("Worker is disabled, serving REST API only")
		select {}
	}

	mainLogger.Info().Msg("Start Stemmer Worker")
	for {
		rmqWorker, err := worker.New(ppln)
		if err != nil {
			mainLogger.Fatal().Err(err).Msg("Could not initialize RMQ worker")
		}
		err = rmqWorker.StartWorker()
		if err != nil {
			mainLogger.Err(err).Msg("Worker returned with error. Launching new in 5 seconds")
			time.Sleep(5 * time.Second)
		}
	}
}

// loadPipeline blocks until the configurations load and the pipeline starts.
func loadPipeline(config Config, mainLogger zerolog.Logger) pipeline.Pipeline {
	for retry := 0; retry < pipelineStartMaxRetries; retry++ {
		cfgs, err := types.LoadConfigurations(config.ConfigPath)
		if err != nil {
			mainLogger.Err(err).Msg("Failed to load configurations. Retrying in 5 sec")
			time.Sleep(5 * time.Second)
			continue
		}
		mainLogger.Info().Msgf("Loaded %d configurations", len(cfgs))

		ppln, err := pipeline.NewStemming(pipeline.StemmingParams{
			Configurations: cfgs,
			CacheSize:      config.CacheSize,
		})
		if err != nil {
			mainLogger.Err(err).Msg("Failed to start stemming pipeline. Retrying in 5 sec")
			time.Sleep(5 * time.Second)
			continue
		}
		mainLogger.Info().Msg("Pipelines loaded")
		return ppln
	}
	mainLogger.Fatal().Caller().Msgf("Could not start pipelines after %d retries, exiting", pipelineStartMaxRetries)
	return nil
}

func runDemo() {
	start := time.Now()
	stemmed := pipeline.StemText(demoPassage)
	elapsed := time.Since(start)

	fmt.Println(demoPassage)
	fmt.Println(stemmed)
	fmt.Printf("stemmed in %s\n", elapsed)
}
