package backend

import (
	"fmt"
	"time"
)

// MinJWTKeyBytes is the minimum length of jwt.key.
const MinJWTKeyBytes = 32

type Marshalled[S any] interface {
	trySeal(string) S
}

// seal marshalled object.
//
// this function CAN CAUSE PANIC if misconfiguration is found.
//
// All types named `pkg/configs/backend.XxxMarshall` are `Marshalled[*Xxx]` .
func TrySeal[S any](conf Marshalled[S]) S {
	return conf.trySeal("(root)")
}

type BackendConfigMarshall struct {
	Server   *ServerConfigMarshall `yaml:"server"`
	Database string                `yaml:"database"`
	Redis    *RedisConfigMarshall  `yaml:"redis"`
	JWT      *JWTConfigMarshall    `yaml:"jwt"`
	Novels   *NovelsConfigMarshall `yaml:"novels,omitempty"`
}

var _ Marshalled[*BackendConfig] = &BackendConfigMarshall{}

func (b *BackendConfigMarshall) trySeal(path string) *BackendConfig {
	novels := b.Novels
	if novels == nil {
		novels = &NovelsConfigMarshall{}
	}
	return &BackendConfig{
		server:   nonnil(b.Server, path+".server").trySeal(path + ".server"),
		database: required(b.Database, path+".database"),
		redis:    nonnil(b.Redis, path+".redis").trySeal(path + ".redis"),
		jwt:      nonnil(b.JWT, path+".jwt").trySeal(path + ".jwt"),
		novels:   novels.trySeal(path + ".novels"),
	}
}

type ServerConfigMarshall struct {
	Port               int32    `yaml:"port"`
	AllowOrigins       []string `yaml:"allowOrigins,omitempty"`
	LoginRatePerSecond float64  `yaml:"loginRatePerSecond,omitempty"`
}

func (s *ServerConfigMarshall) trySeal(path string) *ServerConfig {
	rate := defaults(s.LoginRatePerSecond, 5)
	return &ServerConfig{
		port:               positive(required(s.Port, path+".port"), path+".port"),
		allowOrigins:       append([]string{}, s.AllowOrigins...),
		loginRatePerSecond: positive(rate, path+".loginRatePerSecond"),
	}
}

type RedisConfigMarshall struct {
	Addr         string `yaml:"addr"`
	Password     string `yaml:"password,omitempty"`
	DB           int    `yaml:"db,omitempty"`
	InstanceName string `yaml:"instanceName,omitempty"`
}

func (r *RedisConfigMarshall) trySeal(path string) *RedisConfig {
	if r.DB < 0 {
		panic(path + ".db should not be negative")
	}
	return &RedisConfig{
		addr:         required(r.Addr, path+".addr"),
		password:     r.Password,
		db:           r.DB,
		instanceName: r.InstanceName,
	}
}

type JWTConfigMarshall struct {
	Key                      string `yaml:"key"`
	Issuer                   string `yaml:"issuer"`
	Audience                 string `yaml:"audience"`
	AccessTokenExpireMinutes int    `yaml:"accessTokenExpireMinutes"`
	RefreshTokenExpireDays   int    `yaml:"refreshTokenExpireDays"`
}

func (j *JWTConfigMarshall) trySeal(path string) *JWTConfig {
	key := required(j.Key, path+".key")
	if len(key) < MinJWTKeyBytes {
		panic(fmt.Sprintf("%s.key is too short: it should have %d bytes at least", path, MinJWTKeyBytes))
	}
	access := positive(required(j.AccessTokenExpireMinutes, path+".accessTokenExpireMinutes"), path+".accessTokenExpireMinutes")
	refresh := positive(required(j.RefreshTokenExpireDays, path+".refreshTokenExpireDays"), path+".refreshTokenExpireDays")
	return &JWTConfig{
		key:                []byte(key),
		issuer:             required(j.Issuer, path+".issuer"),
		audience:           required(j.Audience, path+".audience"),
		accessTokenExpire:  time.Duration(access) * time.Minute,
		refreshTokenExpire: time.Duration(refresh) * 24 * time.Hour,
	}
}

type NovelsConfigMarshall struct {
	CacheMinutes           int   `yaml:"cacheMinutes,omitempty"`
	PopularCount           int   `yaml:"popularCount,omitempty"`
	DeleteRetentionDays    int   `yaml:"deleteRetentionDays,omitempty"`
	RankingIntervalHours   int   `yaml:"rankingIntervalHours,omitempty"`
	MaxProfilePictureBytes int64 `yaml:"maxProfilePictureBytes,omitempty"`
}

func (n *NovelsConfigMarshall) trySeal(path string) *NovelsConfig {
	return &NovelsConfig{
		cacheTTL:               time.Duration(positive(defaults(n.CacheMinutes, 30), path+".cacheMinutes")) * time.Minute,
		popularCount:           positive(defaults(n.PopularCount, 10), path+".popularCount"),
		deleteRetention:        time.Duration(positive(defaults(n.DeleteRetentionDays, 7), path+".deleteRetentionDays")) * 24 * time.Hour,
		rankingInterval:        time.Duration(positive(defaults(n.RankingIntervalHours, 24), path+".rankingIntervalHours")) * time.Hour,
		maxProfilePictureBytes: positive(defaults(n.MaxProfilePictureBytes, 2<<20), path+".maxProfilePictureBytes"),
	}
}

func nonnil[T any](v *T, path string) *T {
	if v == nil {
		panic(path + " is required")
	}
	return v
}

func required[T comparable](v T, path string) T {
	if v == *new(T) {
		panic(path + " is required")
	}
	return v
}

func defaults[T comparable](v T, d T) T {
	if v == *new(T) {
		return d
	}
	return v
}

func positive[T int | int32 | int64 | float64](v T, path string) T {
	if v <= 0 {
		panic(path + " should be positive")
	}
	return v
}
