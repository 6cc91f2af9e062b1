package container

import "fmt"

// Options holds the process-wide configuration, populated once at startup from
// command-line flags or SERVICE_-prefixed environment variables (words joined
// with "_", e.g. SERVICE_DB_MAX_CONNS) and immutable thereafter.
type Options struct {
	Host   string `default:"0.0.0.0"        help:"Host interface to listen on"`
	Port   int    `default:"8888"           help:"Port to listen on"                        short:"p"`
	Domain string `default:"localhost:8888" help:"Public domain used to compose short URLs"`

	DBHost           string `default:"localhost" help:"PostgreSQL host"                          name:"db-host"`
	DBPort           int    `default:"5432"      help:"PostgreSQL port"                          name:"db-port"`
	DBUser           string `default:"postgres"  help:"PostgreSQL user"                          name:"db-user"`
	DBPassword       string `default:"postgres"  help:"PostgreSQL password"                      name:"db-password"`
	DBName           string `default:"rapid_url" help:"PostgreSQL database name"                 name:"db-name"`
	DBMaxConns       int    `default:"10"        help:"Maximum pooled connections"               name:"db-max-conns"`
	DBMinConns       int    `default:"2"         help:"Minimum pooled connections"               name:"db-min-conns"`
	DBConnectTimeout int    `default:"5"         help:"Connection acquire timeout in seconds"    name:"db-connect-timeout"`

	RedisAddr string `default:"" help:"Redis address; empty disables caching" name:"redis-addr"`
	CacheTTL  int    `default:"3600" help:"Redis cache TTL in seconds"        name:"cache-ttl"`

	JWTSecret      string `default:""   help:"HMAC signing secret for bearer tokens" name:"jwt-secret"`
	JWTExpiryHours int    `default:"24" help:"Issued token lifetime in hours"        name:"jwt-expiry-hours"`

	LogFormat     string `default:"console"      enum:"console,json" help:"Log output format" name:"log-format"`
	MigrationsDir string `default:"./migrations" help:"Directory holding schema files"        name:"migrations-dir"`
}

// DSN is the connection string for the application database.
func (o *Options) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		o.DBUser, o.DBPassword, o.DBHost, o.DBPort, o.DBName)
}

// AdminDSN is the connection string for the maintenance database, used to
// create the application database during migration.
func (o *Options) AdminDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/postgres",
		o.DBUser, o.DBPassword, o.DBHost, o.DBPort)
}
