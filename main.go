package main

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/getsentry/sentry-go"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"googlemaps.github.io/maps"

	"github.com/jurandifr/AcheiPet/api"
	"github.com/jurandifr/AcheiPet/external/gemini"
	"github.com/jurandifr/AcheiPet/geo"
	"github.com/jurandifr/AcheiPet/imageproc"
	"github.com/jurandifr/AcheiPet/ingest"
	"github.com/jurandifr/AcheiPet/schema"
	"github.com/jurandifr/AcheiPet/store"
)

var (
	server *api.Server
	ormDB  *gorm.DB
)

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func loadConfig(file string) {
	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("acheipet")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

// loadJWTKey reads the RSA session key; without one configured an ephemeral
// key is generated, so sessions do not survive a restart.
func loadJWTKey() *rsa.PrivateKey {
	keyfile := viper.GetString("jwt.keyfile")
	if keyfile == "" {
		log.WithField("prefix", "init").Warn("No jwt keyfile configured, generating ephemeral key")
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			log.Panic(err)
		}
		return key
	}

	jwtSecretByte, err := os.ReadFile(keyfile)
	if err != nil {
		log.Panic(err)
	}

	var jwtPrivateKey *rsa.PrivateKey
	if password := viper.GetString("jwt.password"); password != "" {
		jwtPrivateKey, err = jwt.ParseRSAPrivateKeyFromPEMWithPassword(jwtSecretByte, password)
	} else {
		jwtPrivateKey, err = jwt.ParseRSAPrivateKeyFromPEM(jwtSecretByte)
	}
	if err != nil {
		log.Panic(err)
	}

	return jwtPrivateKey
}

func main() {
	var configFile string

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Server is preparing to shutdown")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if server != nil {
			log.Info("Shutdown api server")
			if err := server.Shutdown(ctx); err != nil {
				log.Error("Server Shutdown:", err)
			}
		}

		if ormDB != nil {
			log.Info("Shutting down db store")
			if err := ormDB.Close(); err != nil {
				log.Error(err)
			}
		}

		os.Exit(1)
	}()

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	httpClient := &http.Client{
		Timeout: 10 * time.Second,
	}

	// Sentry
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
	}); err != nil {
		log.Error(err)
	}
	log.WithField("prefix", "init").Info("Initialized sentry")

	// Load JWT private key
	jwtPrivateKey := loadJWTKey()
	log.WithField("prefix", "init").Info("Loaded session jwt key")

	// Report store: postgres when configured, in-memory otherwise
	var petStore store.PetCore
	if conn := viper.GetString("orm.conn"); conn != "" {
		var err error
		ormDB, err = gorm.Open("postgres", conn)
		if err != nil {
			log.Panic(err)
		}

		if err := ormDB.AutoMigrate(&schema.AnimalReport{}, &schema.User{}).Error; err != nil {
			log.Panic(err)
		}

		petStore = store.NewPetStore(ormDB)
		log.WithField("prefix", "init").Info("Initialized postgres store")
	} else {
		petStore = store.NewMemStore()
		log.WithField("prefix", "init").Warn("No orm.conn configured, using in-memory store")
	}

	// Reverse geocoding: Nominatim, with Google Maps as fallback when keyed
	var resolver geo.LocationResolver = geo.NewNominatimResolver(httpClient, viper.GetString("geocoding.endpoint"))
	if mapsKey := viper.GetString("googlemaps.key"); mapsKey != "" {
		mapsClient, err := maps.NewClient(maps.WithAPIKey(mapsKey), maps.WithHTTPClient(httpClient))
		if err != nil {
			log.Panic(err)
		}
		resolver = geo.NewMultipleLocationResolver(resolver, geo.NewMapsResolver(mapsClient))
		log.WithField("prefix", "init").Info("Initialized google maps geocoding fallback")
	}

	// AI classifier; an empty key degrades every classification to the default
	if viper.GetString("gemini.key") == "" {
		log.WithField("prefix", "init").Warn("No gemini key configured, classification will fall back to defaults")
	}
	classifier := gemini.New(
		viper.GetString("gemini.key"),
		viper.GetString("gemini.endpoint"),
		viper.GetString("gemini.model"),
		nil)

	uploadsDir := viper.GetString("storage.uploads")
	if uploadsDir == "" {
		uploadsDir = "imagens_recebidas"
	}
	images, err := imageproc.NewProcessor(uploadsDir)
	if err != nil {
		log.Panic(err)
	}

	pipeline := ingest.NewPipeline(images, geo.NewBestEffortResolver(resolver), classifier, petStore)

	// Init http server
	server = api.NewServer(petStore, pipeline, images, jwtPrivateKey)
	log.WithField("prefix", "init").Info("Initialized http server")

	port := viper.GetString("server.port")
	if port == "" {
		port = "5000"
	}
	log.Fatal(server.Run(":" + port))
}
