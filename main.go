package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

// resolverConfigFromEnv builds the resolver config from the environment once
// at startup. The resolver itself never reads ambient state — an empty key
// here simply pins it to the static-fallback path.
func resolverConfigFromEnv() ResolverConfig {
	cfg := ResolverConfig{
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		BaseURL: os.Getenv("OPENAI_BASE_URL"),
	}
	if models := os.Getenv("OPENAI_MODELS"); models != "" {
		for _, m := range strings.Split(models, ",") {
			if m = strings.TrimSpace(m); m != "" {
				cfg.Models = append(cfg.Models, m)
			}
		}
	}
	if timeout := os.Getenv("OPENAI_TIMEOUT_SECONDS"); timeout != "" {
		if d, err := time.ParseDuration(timeout + "s"); err == nil {
			cfg.Timeout = d
		}
	}
	return cfg
}

func main() {
	// .env is optional in deployed environments where config comes from the
	// process environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	log.SetPrefix("healthmate-api: ")
	log.SetFlags(0)

	pool := getDBPool()
	h := &Handler{
		db:       pool,
		history:  newPGHistoryStore(pool),
		resolver: NewPlanResolver(resolverConfigFromEnv()),
	}

	router := gin.Default()
	router.SetTrustedProxies(nil)
	h.registerRoutes(router)

	// The dashboard frontend is served from a different origin.
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: strings.Split(envOr("CORS_ORIGINS", "*"), ","),
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders: []string{"*"},
	}).Handler(router)

	port := envOr("PORT", "3000")
	log.Printf("listening on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}

// envOr returns the env var's value or a default when unset.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
