package main

import "time"

type Config struct {
	Host                 string        `env:"HOST,default=localhost"`
	Port                 int           `env:"PORT,default=8080"`
	DebugPort            *int          `env:"DEBUG_PORT"`
	BadgerFilepath       string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel             string        `env:"LOG_LEVEL,required=true"`
	SendBufferSize       int           `env:"SEND_BUFFER_SIZE,required=true"`
	WriteTimeout         time.Duration `env:"WRITE_TIMEOUT,required=true"`
	AccessTokenDuration  time.Duration `env:"ACCESS_TOKEN_DURATION,required=true"`
	RefreshTokenDuration time.Duration `env:"REFRESH_TOKEN_DURATION,required=true"`
	ShutdownTimeout      time.Duration `env:"SHUTDOWN_TIMEOUT,default=5s"`
}
