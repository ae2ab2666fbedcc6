package config

import (
	"flag"
	"os"
	"time"

	"github.com/stnkworkshop/auth-service/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT access-token HMAC secret
//	-k string   JWT refresh-token HMAC secret
//	-t int      access token validity, hours
//	-r int      refresh token validity, hours
//	-w int      bcrypt cost for password hashing
//	-o string   comma-separated CORS origins
//	-m string   SMTP host
//	-n int      SMTP port
//	-u string   SMTP user
//	-p string   SMTP password
//
// os.Args is pre-filtered with flagx.FilterArgs so the set here does not
// collide with flags owned by other components (such as -c/-config).
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-k", "-t", "-r", "-w", "-o", "-m", "-n", "-u", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.JWTAccessSecret, "s", config.JWTAccessSecret, "JWT access secret")
	fs.StringVar(&config.JWTRefreshSecret, "k", config.JWTRefreshSecret, "JWT refresh secret")

	accessValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Hours()), "access token validity (in hours)")
	refreshValidity := fs.Int("r", int(config.RefreshTokenValidityDuration.Hours()), "refresh token validity (in hours)")

	fs.IntVar(&config.PasswordHashCost, "w", config.PasswordHashCost, "bcrypt cost for password hashing")
	fs.StringVar(&config.CORSOrigins, "o", config.CORSOrigins, "comma-separated CORS origins")
	fs.StringVar(&config.SMTPHost, "m", config.SMTPHost, "SMTP host")
	fs.IntVar(&config.SMTPPort, "n", config.SMTPPort, "SMTP port")
	fs.StringVar(&config.SMTPUser, "u", config.SMTPUser, "SMTP user")
	fs.StringVar(&config.SMTPPassword, "p", config.SMTPPassword, "SMTP password")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessValidity) * time.Hour
	config.RefreshTokenValidityDuration = time.Duration(*refreshValidity) * time.Hour
}
