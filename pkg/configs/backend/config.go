package backend

import "time"

// BackendConfig is the configuration for the novel server and its loops.
//
// To get `BackendConfig` instance, use `Unmarshal` or `LoadBackendConfig`.
type BackendConfig struct {
	server   *ServerConfig
	database string
	redis    *RedisConfig
	jwt      *JWTConfig
	novels   *NovelsConfig
}

func (c *BackendConfig) Server() *ServerConfig {
	return c.server
}

// Connection string for database.
func (c *BackendConfig) Database() string {
	return c.database
}

func (c *BackendConfig) Redis() *RedisConfig {
	return c.redis
}

func (c *BackendConfig) JWT() *JWTConfig {
	return c.jwt
}

func (c *BackendConfig) Novels() *NovelsConfig {
	return c.novels
}

type ServerConfig struct {
	port               int32
	allowOrigins       []string
	loginRatePerSecond float64
}

func (s *ServerConfig) Port() int32 {
	return s.port
}

// Origins allowed by CORS. Credentials are allowed for them.
func (s *ServerConfig) AllowOrigins() []string {
	return append([]string{}, s.allowOrigins...)
}

// Rate of login and register requests per second, per client address.
func (s *ServerConfig) LoginRatePerSecond() float64 {
	return s.loginRatePerSecond
}

type RedisConfig struct {
	addr         string
	password     string
	db           int
	instanceName string
}

// host:port of redis.
func (r *RedisConfig) Addr() string {
	return r.addr
}

func (r *RedisConfig) Password() string {
	return r.password
}

func (r *RedisConfig) DB() int {
	return r.db
}

// prefix of all keys.
func (r *RedisConfig) InstanceName() string {
	return r.instanceName
}

type JWTConfig struct {
	key                []byte
	issuer             string
	audience           string
	accessTokenExpire  time.Duration
	refreshTokenExpire time.Duration
}

// HS256 signing key.
func (j *JWTConfig) Key() []byte {
	return append([]byte{}, j.key...)
}

func (j *JWTConfig) Issuer() string {
	return j.issuer
}

func (j *JWTConfig) Audience() string {
	return j.audience
}

func (j *JWTConfig) AccessTokenExpire() time.Duration {
	return j.accessTokenExpire
}

func (j *JWTConfig) RefreshTokenExpire() time.Duration {
	return j.refreshTokenExpire
}

type NovelsConfig struct {
	cacheTTL               time.Duration
	popularCount           int
	deleteRetention        time.Duration
	rankingInterval        time.Duration
	maxProfilePictureBytes int64
}

// TTL of cached novel lists.
func (n *NovelsConfig) CacheTTL() time.Duration {
	return n.cacheTTL
}

// How many novels are listed as popular.
func (n *NovelsConfig) PopularCount() int {
	return n.popularCount
}

// How long soft-deleted novels are kept before purged.
func (n *NovelsConfig) DeleteRetention() time.Duration {
	return n.deleteRetention
}

// Interval of ranking recompute, and TTL of cached rankings.
func (n *NovelsConfig) RankingInterval() time.Duration {
	return n.rankingInterval
}

func (n *NovelsConfig) MaxProfilePictureBytes() int64 {
	return n.maxProfilePictureBytes
}
