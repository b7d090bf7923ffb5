package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/philippgille/redisdata"
	"github.com/philippgille/redisdata/encoding"
)

type Config struct {
	Address  string
	Password string
	DB       int
	Encoding string
}

func readConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("address", redisdata.DefaultOptions.Address)
	v.SetDefault("encoding", "json")

	if err := v.ReadInConfig(); err != nil {
		// A missing config file just means defaults.
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	return &Config{
		Address:  v.GetString("address"),
		Password: v.GetString("password"),
		DB:       v.GetInt("db"),
		Encoding: v.GetString("encoding"),
	}, nil
}

func newClient(conf Config) (*redisdata.Client, error) {
	var codec encoding.Codec
	switch conf.Encoding {
	case "json":
		codec = encoding.JSON
	case "gob":
		codec = encoding.Gob
	case "msgpack":
		codec = encoding.MsgPack
	case "toml":
		codec = encoding.TOML
	default:
		return nil, fmt.Errorf("unknown encoding: %s", conf.Encoding)
	}

	return redisdata.NewClient(redisdata.Options{
		Address:  conf.Address,
		Password: conf.Password,
		DB:       conf.DB,
		Codec:    codec,
	})
}
