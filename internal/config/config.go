package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Keys    APIKeys
	Ai      AIConfig
	Storage StorageConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type APIKeys struct {
	Cohere   string
	Groq     string
	Pinecone string
}

type AIConfig struct {
	EmbeddingModel string
	LLMProvider    string
	LLMModel       string
	IndexName      string
	IndexHost      string
	ChunkSize      int
	ChunkOverlap   int
	TopK           int
}

type StorageConfig struct {
	UploadDir  string
	SessionDir string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "5000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Keys: APIKeys{
			Cohere:   getEnv("COHERE_API_KEY", ""),
			Groq:     getEnv("GROQ_API_KEY", ""),
			Pinecone: getEnv("PINECONE_API_KEY", ""),
		},
		Ai: AIConfig{
			EmbeddingModel: getEnv("EMBEDDING_MODEL", "embed-english-v3.0"),
			LLMProvider:    getEnv("LLM_PROVIDER", "groq"),
			LLMModel:       getEnv("LLM_MODEL", "llama-3.3-70b-versatile"),
			IndexName:      getEnv("PINECONE_INDEX_NAME", "lucy-rag-index"),
			IndexHost:      getEnv("PINECONE_INDEX_HOST", ""),
			ChunkSize:      getEnvAsInt("CHUNK_SIZE", 800),
			ChunkOverlap:   getEnvAsInt("CHUNK_OVERLAP", 150),
			TopK:           getEnvAsInt("RETRIEVAL_TOP_K", 10),
		},
		Storage: StorageConfig{
			UploadDir:  getEnv("UPLOAD_DIR", "uploads"),
			SessionDir: getEnv("SESSION_DIR", "sessions"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
