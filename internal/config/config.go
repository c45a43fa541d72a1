package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const (
	StorePostgres = "postgres"
	StoreFile     = "file"
	StoreRedis    = "redis"
)

type Application struct {
	Server   Server   `koanf:"server"`
	Store    Store    `koanf:"store"`
	Database Database `koanf:"db"`
	Ranking  Ranking  `koanf:"ranking"`
}

type Server struct {
	Addr string `koanf:"addr"`
}

// Store selects the event record backend. It is read once at startup.
type Store struct {
	Type  string    `koanf:"type"`
	File  FileStore `koanf:"file"`
	Redis Redis     `koanf:"redis"`
}

type FileStore struct {
	Path string `koanf:"path"`
}

type Redis struct {
	Addr       string `koanf:"addr"`
	Password   string `koanf:"password"`
	DB         int    `koanf:"db"`
	Prefix     string `koanf:"prefix"`
	MaxRetries int    `koanf:"maxretries"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type Ranking struct {
	TopN           int     `koanf:"topn"`
	IfNeededWeight float64 `koanf:"ifneededweight"`
}

func defaults() Application {
	return Application{
		Server: Server{
			Addr: ":8181",
		},
		Store: Store{
			Type: StoreFile,
			File: FileStore{Path: "data/events.json"},
			Redis: Redis{
				Addr:       "localhost:6379",
				Prefix:     "gathertime:event:",
				MaxRetries: 10,
			},
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "gathertime",
			Pass:   "",
			Name:   "gathertime",
			Schema: "gathertime",
		},
		Ranking: Ranking{
			TopN:           3,
			IfNeededWeight: 0.75,
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "GATHERTIME_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "GATHERTIME_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
