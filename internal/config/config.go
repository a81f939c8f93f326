package config

import (
	"log"
	"os"

	"github.com/BurntSushi/toml"
)

type MainConfig struct {
	AppName string `toml:"appName"`
}

type LogConfig struct {
	LogPath string `toml:"logPath"`
}

type QdrantConfig struct {
	BaseURL          string `toml:"baseURL"`
	APIKey           string `toml:"apiKey"`
	CollectionName   string `toml:"collectionName"`
	DenseSize        int    `toml:"denseSize"`
	VerifySampleSize int    `toml:"verifySampleSize"`
	TimeoutSeconds   int    `toml:"timeoutSeconds"`
}

type AIEmbeddingConfig struct {
	Provider        string `toml:"provider"`
	APIKey          string `toml:"apiKey"`
	BaseURL         string `toml:"baseURL"`
	Model           string `toml:"model"`
	Dimensions      int    `toml:"dimensions"`
	TimeoutSeconds  int    `toml:"timeoutSeconds"`
	ByAzure         bool   `toml:"byAzure"`
	AzureAPIVersion string `toml:"azureApiVersion"`
}

type AIChatModelConfig struct {
	Provider        string `toml:"provider"`
	APIKey          string `toml:"apiKey"`
	AccessKey       string `toml:"accessKey"`
	SecretKey       string `toml:"secretKey"`
	BaseURL         string `toml:"baseURL"`
	Region          string `toml:"region"`
	Model           string `toml:"model"`
	TimeoutSeconds  int    `toml:"timeoutSeconds"`
	ByAzure         bool   `toml:"byAzure"`
	AzureAPIVersion string `toml:"azureApiVersion"`
}

type AIConfig struct {
	Embedding AIEmbeddingConfig `toml:"embedding"`
	ChatModel AIChatModelConfig `toml:"chatModel"`
}

type PipelineConfig struct {
	BatchSize    int    `toml:"batchSize"`
	MaxRefine    int    `toml:"maxRefine"`
	ExamplesPath string `toml:"examplesPath"`
}

type Config struct {
	MainConfig     `toml:"mainConfig"`
	LogConfig      `toml:"logConfig"`
	QdrantConfig   `toml:"qdrantConfig"`
	AIConfig       `toml:"aiConfig"`
	PipelineConfig `toml:"pipelineConfig"`
}

var config *Config

func LoadConfig() error {
	configPath := os.Getenv("DOCUQA_CONFIG")
	if configPath == "" {
		configPath = "configs/config_local.toml"
	}
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		log.Printf("failed to load config file: %v, falling back to defaults", err)
		return err
	}
	return nil
}

func GetConfig() *Config {
	if config == nil {
		config = new(Config)
		_ = LoadConfig()
	}
	return config
}
